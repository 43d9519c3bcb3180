package cmd

import (
	"context"
	"fmt"

	"github.com/ardnew/rollkit/lang"
)

// Fmt parses a dice expression and reprints it in canonical single-line
// form with explicit parenthesization.
type Fmt struct {
	Expr []string `arg:"" help:"Dice expression to format" name:"expr" optional:""`

	File string `default:"" help:"Read the expression from a file or '-' for stdin" short:"f"`
}

// Run executes the fmt command.
func (f *Fmt) Run(ctx context.Context) (err error) {
	_, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	input, err := readExpression(f.Expr, f.File)
	if err != nil {
		return err
	}

	expr, err := lang.Parse(input)
	if err != nil {
		return err
	}

	fmt.Println(lang.FormatInline(expr))

	return nil
}
