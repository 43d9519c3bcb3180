package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"
)

// resolveYAML is a [kong.ConfigurationLoader] that reads flag defaults
// from a YAML mapping. Keys match flag names; hyphens in flag names may
// be written as underscores in the file:
//
//	log-level: debug
//	log_format: text
//	seed: 42
//
// Nested mappings are flattened with hyphen-joined keys, so the above can
// equivalently be written as:
//
//	log:
//	  level: debug
//	  format: text
//
// Command-line flags always override config file values. A file that
// fails to parse contributes no values rather than aborting the command.
func resolveYAML(r io.Reader) (kong.Resolver, error) {
	var root map[string]any

	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&root); err != nil {
		return yamlConfig{}, nil
	}

	values := make(yamlConfig)
	flatten("", root, values)

	return values, nil
}

// yamlConfig implements [kong.Resolver] over flattened YAML values.
type yamlConfig map[string]any

// flatten walks nested mappings, joining key segments with hyphens and
// normalizing underscores so lookup by flag name is uniform.
func flatten(prefix string, node map[string]any, out yamlConfig) {
	for key, value := range node {
		name := strings.ReplaceAll(key, "_", "-")
		if prefix != "" {
			name = prefix + "-" + name
		}

		if child, ok := value.(map[string]any); ok {
			flatten(name, child, out)

			continue
		}

		out[name] = value
	}
}

// Validate implements [kong.Resolver].
func (r yamlConfig) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (r yamlConfig) Resolve(
	_ *kong.Context,
	_ *kong.Path,
	flag *kong.Flag,
) (any, error) {
	value, ok := r[flag.Name]
	if !ok {
		return nil, nil
	}

	// Kong parses numeric defaults from strings.
	switch v := value.(type) {
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case bool, string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}
