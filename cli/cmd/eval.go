package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/ardnew/rollkit/lang"
	"github.com/ardnew/rollkit/log"
)

// Eval parses a dice expression, rolls it, and prints the result.
type Eval struct {
	Expr []string `arg:"" help:"Dice expression to evaluate" name:"expr" optional:""`

	File    string  `default:"" help:"Read the expression from a file or '-' for stdin" short:"f"`
	Seed    *uint64 `           help:"Seed the random source for reproducible rolls"    short:"s"`
	Explain bool    `           help:"Print the expression structure before rolling"    short:"x"`
}

// Run executes the eval command.
func (e *Eval) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := readExpression(e.Expr, e.File)
	if err != nil {
		return err
	}

	expr, err := lang.Parse(input)
	if err != nil {
		return err
	}

	if e.Explain {
		fmt.Println(lang.Explain(expr))
	}

	var opts []lang.EvalOption

	if e.Seed != nil {
		log.DebugContext(ctx, "seeded random source",
			slog.Uint64("seed", *e.Seed),
		)

		opts = append(opts,
			lang.WithSource(rand.New(rand.NewPCG(*e.Seed, *e.Seed))))
	}

	result, err := lang.Eval(expr, opts...)
	if err != nil {
		return err
	}

	fmt.Println(result.String())

	return nil
}
