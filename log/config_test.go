package log

import (
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		input string
		want  Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"debug", LevelDebug},
		{"info", LevelInfo},
		{"WARN", LevelWarn},
		{"error", LevelError},
		{" info ", LevelInfo},
		{"bogus", DefaultLevel},
		{"", DefaultLevel},
	}

	for _, tc := range cases {
		if got := ParseLevel(tc.input); got != tc.want {
			t.Errorf("ParseLevel(%q): expected %v, got %v",
				tc.input, tc.want, got)
		}
	}
}

func TestLevel_String(t *testing.T) {
	cases := []struct {
		level Level
		want  string
	}{
		{LevelTrace, "trace"},
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
	}

	for _, tc := range cases {
		if got := tc.level.String(); got != tc.want {
			t.Errorf("Level(%d).String(): expected %q, got %q",
				tc.level, tc.want, got)
		}
	}
}

func TestParseLevel_RoundTrip(t *testing.T) {
	for _, name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("level %q round-tripped to %q", name, got)
		}
	}
}

func TestParseFormat(t *testing.T) {
	cases := []struct {
		input string
		want  Format
	}{
		{"json", FormatJSON},
		{"JSON", FormatJSON},
		{"text", FormatText},
		{"", FormatText},
		{"bogus", FormatText},
	}

	for _, tc := range cases {
		if got := ParseFormat(tc.input); got != tc.want {
			t.Errorf("ParseFormat(%q): expected %v, got %v",
				tc.input, tc.want, got)
		}
	}
}

func TestResolveLayout(t *testing.T) {
	cases := []struct {
		input string
		want  string
	}{
		{"RFC3339", time.RFC3339},
		{"rfc3339nano", time.RFC3339Nano},
		{"stampmilli", time.StampMilli},
		{"kitchen", time.Kitchen},
		{"none", ""},
		{"", ""},
		{"2006-01-02", "2006-01-02"},
	}

	for _, tc := range cases {
		if got := resolveLayout(tc.input); got != tc.want {
			t.Errorf("resolveLayout(%q): expected %q, got %q",
				tc.input, tc.want, got)
		}
	}
}
