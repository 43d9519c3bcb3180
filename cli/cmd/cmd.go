package cmd

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
)

type contextKey struct{}

// WithContext returns a new context.Context containing the given
// kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, contextKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, ok := ctx.Value(contextKey{}).(*kong.Context)
	if !ok || ktx == nil {
		return nil
	}

	return ktx
}

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// readExpression resolves the expression text for a command: positional
// arguments joined by spaces take precedence, then the --file flag (or
// stdin when the flag is "-"). Whitespace-only input is an error.
func readExpression(args []string, file string) (string, error) {
	if len(args) > 0 {
		input := strings.TrimSpace(strings.Join(args, " "))
		if input != "" {
			return input, nil
		}
	}

	if file == "" {
		return "", ErrNoExpression
	}

	var r io.Reader

	if file == stdinSource {
		r = os.Stdin
	} else {
		f, err := os.Open(file)
		if err != nil {
			return "", ErrReadInput.Wrap(err)
		}
		defer f.Close()

		r = f
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadInput.Wrap(err)
	}

	input := strings.TrimSpace(string(data))
	if input == "" {
		return "", ErrNoExpression
	}

	return input, nil
}
