package lang

import (
	"math"
	"strconv"
	"strings"
)

// Explain renders a human-readable structural dump of an expression tree:
// a pre-order walk, indented by nesting depth, labelling each node with
// its structural category.
//
// Explain never evaluates the tree and consumes no randomness; the same
// AST always yields the same text.
func Explain(expr Expr) string {
	ex := &explainer{}
	ex.node(expr)

	return strings.Join(ex.lines, "\n")
}

// explainer accumulates output lines during the walk.
type explainer struct {
	lines []string
	depth int
}

func (ex *explainer) emit(text string) {
	ex.lines = append(ex.lines, strings.Repeat("  ", ex.depth)+text)
}

func (ex *explainer) nested(fn func()) {
	ex.depth++
	fn()
	ex.depth--
}

func (ex *explainer) node(expr Expr) {
	switch e := expr.(type) {
	case *IntegerLit:
		ex.emit("Literal: " + strconv.FormatInt(e.Value, 10) + " (Integer)")

	case *ListLit:
		ex.listLit(e)

	case *RangeLit:
		ex.rangeLit(e)

	case *StrongWrap:
		ex.emit("Strong List:")
		ex.nested(func() { ex.node(e.Inner) })

	case *BinaryExpr:
		ex.emit("Binary Operation: " + e.Op.String() +
			" (" + e.Op.Desc() + ")")
		ex.nested(func() {
			ex.node(e.Left)
			ex.node(e.Right)
		})

	case *CallExpr:
		ex.emit("Function Call: " + e.Name +
			" (" + strconv.Itoa(len(e.Args)) + " args)")
		ex.nested(func() {
			for _, arg := range e.Args {
				ex.node(arg)
			}
		})
	}
}

// listLit renders an explicit list inline when every element is an
// integer literal, or structurally otherwise.
func (ex *explainer) listLit(e *ListLit) {
	if vals, ok := literalInts(e.Elems); ok {
		ex.emit("Literal: {" + joinInts(vals) + "} (List with " +
			strconv.Itoa(len(vals)) + " elements)")

		return
	}

	ex.emit("List Literal: (" + strconv.Itoa(len(e.Elems)) + " elements)")
	ex.nested(func() {
		for _, elem := range e.Elems {
			ex.node(elem)
		}
	})
}

// rangeLit renders a range inline, with its element count computed
// arithmetically, when start, end, and step are all integer literals.
func (ex *explainer) rangeLit(e *RangeLit) {
	parts := []Expr{e.Start, e.End}
	if e.Step != nil {
		parts = append(parts, e.Step)
	}

	if vals, ok := literalInts(parts); ok {
		if count, ok := rangeCount(vals); ok {
			ex.emit("Literal: [" + joinInts(vals) + "] (Range with " +
				strconv.FormatUint(count, 10) + " elements)")

			return
		}
	}

	ex.emit("Range Literal:")
	ex.nested(func() {
		for _, part := range parts {
			ex.node(part)
		}
	})
}

// rangeCount computes the element count of a literal range without
// overflowing. It reports false for a zero step or when the count itself
// exceeds uint64, in which case the range renders structurally.
func rangeCount(vals []int64) (uint64, bool) {
	step := int64(1)
	if len(vals) == 3 {
		step = vals[2]
	}

	if step == 0 {
		return 0, false
	}

	mag := uint64(step)
	if step < 0 {
		mag = -mag
	}

	lo, hi := vals[0], vals[1]
	if lo > hi {
		lo, hi = hi, lo
	}

	// Two's complement subtraction yields the exact magnitude even when
	// the int64 difference would overflow.
	span := uint64(hi) - uint64(lo)

	count := span / mag
	if count == math.MaxUint64 {
		return 0, false
	}

	return count + 1, true
}

// literalInts extracts the values of a node sequence when every node is
// an integer literal.
func literalInts(exprs []Expr) ([]int64, bool) {
	vals := make([]int64, len(exprs))

	for i, e := range exprs {
		lit, ok := e.(*IntegerLit)
		if !ok {
			return nil, false
		}

		vals[i] = lit.Value
	}

	return vals, true
}

func joinInts(vals []int64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = strconv.FormatInt(v, 10)
	}

	return strings.Join(parts, ", ")
}
