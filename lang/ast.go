package lang

// Expr is an expression node in the RollKit AST.
//
// The tree is built once by the parser and never mutated; each node owns
// its children exclusively. The evaluator and explainer only read it.
type Expr interface {
	// Pos returns the source position of the node's first token.
	Pos() Position

	expr()
}

// Op identifies a binary operator.
type Op int

const (
	// Dice operations.

	OpDice     Op = iota // d
	OpKeepHigh           // kh
	OpKeepLow            // kl
	OpDropHigh           // dh
	OpDropLow            // dl

	// Arithmetic operations.

	OpMul // *
	OpAdd // +
	OpSub // -

	// Comparison operations.

	OpEq // ==
	OpNe // !=
	OpLt // <
	OpLe // <=
	OpGt // >
	OpGe // >=
)

// Operator precedence levels, highest binds tightest.
const (
	precDice     = 150
	precKeepDrop = 130
	precMul      = 90
	precAddSub   = 70
	precCompare  = 50
)

// precedence returns the binding strength of the operator.
func (op Op) precedence() int {
	switch op {
	case OpDice:
		return precDice
	case OpKeepHigh, OpKeepLow, OpDropHigh, OpDropLow:
		return precKeepDrop
	case OpMul:
		return precMul
	case OpAdd, OpSub:
		return precAddSub
	default:
		return precCompare
	}
}

// rightAssoc reports whether the operator is right-associative.
// Only the dice operator is; all others associate left.
func (op Op) rightAssoc() bool {
	return op == OpDice
}

// String returns the source representation of the operator.
func (op Op) String() string {
	switch op {
	case OpDice:
		return "d"
	case OpKeepHigh:
		return "kh"
	case OpKeepLow:
		return "kl"
	case OpDropHigh:
		return "dh"
	case OpDropLow:
		return "dl"
	case OpMul:
		return "*"
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpEq:
		return "=="
	case OpNe:
		return "!="
	case OpLt:
		return "<"
	case OpLe:
		return "<="
	case OpGt:
		return ">"
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// Desc returns a human-readable name for the operator, used by the
// explainer.
func (op Op) Desc() string {
	switch op {
	case OpDice:
		return "Dice Roll"
	case OpKeepHigh:
		return "Keep Highest"
	case OpKeepLow:
		return "Keep Lowest"
	case OpDropHigh:
		return "Drop Highest"
	case OpDropLow:
		return "Drop Lowest"
	case OpMul:
		return "Multiplication"
	case OpAdd:
		return "Addition"
	case OpSub:
		return "Subtraction"
	case OpEq:
		return "Equal"
	case OpNe:
		return "Not Equal"
	case OpLt:
		return "Less Than"
	case OpLe:
		return "Less or Equal"
	case OpGt:
		return "Greater Than"
	case OpGe:
		return "Greater or Equal"
	default:
		return "Unknown"
	}
}

// IntegerLit is an integer literal.
type IntegerLit struct {
	Value    int64
	Position Position
}

// ListLit is an explicit list literal: zero or more comma-separated
// expressions inside braces. Each element must evaluate to an integer.
type ListLit struct {
	Elems    []Expr
	Position Position
}

// RangeLit is a range list literal: [start, end] or [start, end, step].
// Step is nil when omitted.
type RangeLit struct {
	Start    Expr
	End      Expr
	Step     Expr
	Position Position
}

// StrongWrap is the brace-wrapping of a single list-valued expression,
// producing a strong list.
type StrongWrap struct {
	Inner    Expr
	Position Position
}

// BinaryExpr is a binary operation.
type BinaryExpr struct {
	Op    Op
	Left  Expr
	Right Expr
}

// CallExpr is a function call by name with ordered arguments.
type CallExpr struct {
	Name     string
	Args     []Expr
	Position Position
}

func (e *IntegerLit) Pos() Position { return e.Position }
func (e *ListLit) Pos() Position    { return e.Position }
func (e *RangeLit) Pos() Position   { return e.Position }
func (e *StrongWrap) Pos() Position { return e.Position }
func (e *BinaryExpr) Pos() Position { return e.Left.Pos() }
func (e *CallExpr) Pos() Position   { return e.Position }

func (*IntegerLit) expr() {}
func (*ListLit) expr()    {}
func (*RangeLit) expr()   {}
func (*StrongWrap) expr() {}
func (*BinaryExpr) expr() {}
func (*CallExpr) expr()   {}
