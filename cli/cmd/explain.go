package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/rollkit/lang"
)

// Explain parses a dice expression and prints its structural breakdown
// without evaluating it. No dice are rolled.
type Explain struct {
	Expr []string `arg:"" help:"Dice expression to explain" name:"expr" optional:""`

	File string `default:"" help:"Read the expression from a file or '-' for stdin" short:"f"`
}

// Run executes the explain command.
func (e *Explain) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := readExpression(e.Expr, e.File)
	if err != nil {
		return err
	}

	expr, err := lang.Parse(input)
	if err != nil {
		return err
	}

	fmt.Println(lang.FormatInline(expr))
	fmt.Println(lang.Explain(expr))

	return nil
}
