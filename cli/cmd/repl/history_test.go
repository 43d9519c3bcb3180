package repl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func historyPath(t *testing.T) string {
	t.Helper()

	return filepath.Join(t.TempDir(), baseHistory)
}

func TestHistory_LoadMissingFile(t *testing.T) {
	h := NewHistory(historyPath(t))

	if err := h.Load(); err != nil {
		t.Fatalf("Load() on missing file: %v", err)
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_WriteAndLoad(t *testing.T) {
	path := historyPath(t)

	h := NewHistory(path)
	for _, entry := range []string{"3d6", "4d6kh3", "1d20 + 5"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q): %v", entry, err)
		}
	}

	reloaded := NewHistory(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	want := []string{"3d6", "4d6kh3", "1d20 + 5"}
	got := reloaded.Entries()

	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestHistory_SkipsBlankAndWhitespace(t *testing.T) {
	h := NewHistory(historyPath(t))

	for _, entry := range []string{"", "   ", "\t"} {
		if n, err := h.Write(entry); err != nil || n != 0 {
			t.Errorf("Write(%q) = (%d, %v), want (0, nil)", entry, n, err)
		}
	}

	if h.Len() != 0 {
		t.Errorf("Len() = %d, want 0", h.Len())
	}
}

func TestHistory_ConsecutiveDuplicateDropped(t *testing.T) {
	h := NewHistory(historyPath(t))

	if _, err := h.Write("2d8"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	if _, err := h.Write("2d8"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}

func TestHistory_DuplicateMovesToEnd(t *testing.T) {
	path := historyPath(t)
	h := NewHistory(path)

	for _, entry := range []string{"1d4", "1d6", "1d8", "1d4"} {
		if _, err := h.Write(entry); err != nil {
			t.Fatalf("Write(%q): %v", entry, err)
		}
	}

	want := []string{"1d6", "1d8", "1d4"}
	got := h.Entries()

	if len(got) != len(want) {
		t.Fatalf("Entries() = %v, want %v", got, want)
	}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entries()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// The rewrite must also be reflected on disk.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}

	if got := strings.TrimSpace(string(data)); got != "1d6\n1d8\n1d4" {
		t.Errorf("file contents = %q, want %q", got, "1d6\n1d8\n1d4")
	}
}

func TestHistory_Get(t *testing.T) {
	h := NewHistory(historyPath(t))

	if _, err := h.Write("2d10"); err != nil {
		t.Fatalf("Write(): %v", err)
	}

	entry, err := h.Get(0)
	if err != nil {
		t.Fatalf("Get(0): %v", err)
	}

	if entry != "2d10" {
		t.Errorf("Get(0) = %q, want %q", entry, "2d10")
	}

	for _, i := range []int{-1, 1, 100} {
		if _, err := h.Get(i); err != ErrOutOfBounds {
			t.Errorf("Get(%d) error = %v, want ErrOutOfBounds", i, err)
		}
	}
}

func TestHistory_LoadSkipsBlankLines(t *testing.T) {
	path := historyPath(t)

	content := "3d6\n\n   \n4d8\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("WriteFile(): %v", err)
	}

	h := NewHistory(path)
	if err := h.Load(); err != nil {
		t.Fatalf("Load(): %v", err)
	}

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}
}
