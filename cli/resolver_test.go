package cli

import (
	"strings"
	"testing"

	"github.com/alecthomas/kong"
)

func resolverFrom(t *testing.T, source string) kong.Resolver {
	t.Helper()

	r, err := resolveYAML(strings.NewReader(source))
	if err != nil {
		t.Fatalf("resolver error: %v", err)
	}

	return r
}

func resolveFlag(t *testing.T, r kong.Resolver, name string) any {
	t.Helper()

	v, err := r.Resolve(nil, nil, &kong.Flag{
		Value: &kong.Value{Name: name},
	})
	if err != nil {
		t.Fatalf("resolve %q: %v", name, err)
	}

	return v
}

func TestResolveYAML_FlatKeys(t *testing.T) {
	r := resolverFrom(t, "log-level: debug\nlog_format: json\nseed: 42\n")

	if got := resolveFlag(t, r, "log-level"); got != "debug" {
		t.Errorf("log-level: expected debug, got %v", got)
	}

	// Underscores normalize to hyphens.
	if got := resolveFlag(t, r, "log-format"); got != "json" {
		t.Errorf("log-format: expected json, got %v", got)
	}

	// Numbers resolve as strings for Kong.
	if got := resolveFlag(t, r, "seed"); got != "42" {
		t.Errorf("seed: expected \"42\", got %v (%T)", got, got)
	}
}

func TestResolveYAML_NestedKeys(t *testing.T) {
	r := resolverFrom(t, "log:\n  level: warn\n  color: true\n")

	if got := resolveFlag(t, r, "log-level"); got != "warn" {
		t.Errorf("log-level: expected warn, got %v", got)
	}

	if got := resolveFlag(t, r, "log-color"); got != true {
		t.Errorf("log-color: expected true, got %v", got)
	}
}

func TestResolveYAML_UnknownFlag(t *testing.T) {
	r := resolverFrom(t, "log-level: info\n")

	if got := resolveFlag(t, r, "missing"); got != nil {
		t.Errorf("expected nil for unknown flag, got %v", got)
	}
}

func TestResolveYAML_MalformedInput(t *testing.T) {
	// A broken file contributes no values but does not error.
	r := resolverFrom(t, "log-level: [unclosed\n")

	if got := resolveFlag(t, r, "log-level"); got != nil {
		t.Errorf("expected nil from malformed config, got %v", got)
	}
}
