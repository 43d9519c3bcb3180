package cmd

import (
	"context"

	"github.com/ardnew/rollkit/cli/cmd/repl"
	"github.com/ardnew/rollkit/log"
)

// Repl starts an interactive evaluation session with history persistence
// and completion.
type Repl struct {
	Seed *uint64 `help:"Seed the random source for reproducible rolls" short:"s"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		panic("internal error: command context undefined")
	}

	cacheDir, ok := ktx.Model.Vars()[CacheIdentifier]
	if !ok {
		panic("internal error: cache directory undefined")
	}

	return repl.Run(ctx, cacheDir, r.Seed, log.Default())
}
