package lang

import (
	"strconv"
	"strings"
)

// FormatInline renders an expression tree as canonical single-line
// source: binary operations fully parenthesized, lists and ranges in
// literal syntax, strong wraps re-braced.
func FormatInline(expr Expr) string {
	var buf strings.Builder

	formatInline(&buf, expr)

	return buf.String()
}

func formatInline(buf *strings.Builder, expr Expr) {
	switch e := expr.(type) {
	case *IntegerLit:
		buf.WriteString(strconv.FormatInt(e.Value, 10))

	case *ListLit:
		buf.WriteRune('{')
		formatInlineSeq(buf, e.Elems)

		// A one-element list needs its trailing comma, or the output
		// would re-parse as a strong wrap.
		if len(e.Elems) == 1 {
			buf.WriteRune(',')
		}

		buf.WriteRune('}')

	case *RangeLit:
		buf.WriteRune('[')
		formatInline(buf, e.Start)
		buf.WriteString(", ")
		formatInline(buf, e.End)

		if e.Step != nil {
			buf.WriteString(", ")
			formatInline(buf, e.Step)
		}

		buf.WriteRune(']')

	case *StrongWrap:
		buf.WriteRune('{')
		formatInline(buf, e.Inner)
		buf.WriteRune('}')

	case *BinaryExpr:
		buf.WriteRune('(')
		formatInline(buf, e.Left)
		buf.WriteRune(' ')
		buf.WriteString(e.Op.String())
		buf.WriteRune(' ')
		formatInline(buf, e.Right)
		buf.WriteRune(')')

	case *CallExpr:
		buf.WriteString(e.Name)
		buf.WriteRune('(')
		formatInlineSeq(buf, e.Args)
		buf.WriteRune(')')
	}
}

func formatInlineSeq(buf *strings.Builder, exprs []Expr) {
	for i, e := range exprs {
		if i > 0 {
			buf.WriteString(", ")
		}

		formatInline(buf, e)
	}
}
