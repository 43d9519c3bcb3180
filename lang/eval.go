package lang

import (
	"cmp"
	"log/slog"
	"math/rand/v2"
	"slices"
)

// Source draws uniform random integers for dice rolls. Int64N must return
// a value in [0, n) for n > 0.
//
// *math/rand/v2.Rand satisfies Source, so a seeded PCG source gives fully
// reproducible rolls:
//
//	src := rand.New(rand.NewPCG(seed, seed))
//	result, err := lang.Eval(expr, lang.WithSource(src))
//
// The source is consumed strictly one draw at a time, in left-to-right
// evaluation order, so a freshly re-seeded source yields the same
// sequence on every run.
type Source interface {
	Int64N(n int64) int64
}

// systemSource draws from the process-global auto-seeded generator.
type systemSource struct{}

func (systemSource) Int64N(n int64) int64 { return rand.Int64N(n) }

// EvalOption configures a single evaluation.
type EvalOption func(*evaluator)

// WithSource supplies a caller-owned random source, enabling deterministic
// seeded evaluation. The evaluator takes exclusive use of the source for
// the duration of the call.
func WithSource(src Source) EvalOption {
	return func(ev *evaluator) { ev.src = src }
}

// WithFuncs substitutes the function registry consulted for call
// expressions. The default is the package registry returned by
// [DefaultRegistry].
func WithFuncs(reg *Registry) EvalOption {
	return func(ev *evaluator) { ev.funcs = reg }
}

// Eval evaluates an expression tree to a Value.
//
// Evaluation is a single depth-first pass with no state other than the
// random source; errors abort the entire evaluation with no partial
// result. The AST is never mutated.
func Eval(expr Expr, opts ...EvalOption) (Value, error) {
	ev := &evaluator{
		src:   systemSource{},
		funcs: DefaultRegistry(),
	}

	for _, opt := range opts {
		opt(ev)
	}

	return ev.eval(expr)
}

// evaluator holds the per-call evaluation state.
type evaluator struct {
	src   Source
	funcs *Registry
}

func (ev *evaluator) eval(expr Expr) (Value, error) {
	switch e := expr.(type) {
	case *IntegerLit:
		return IntegerValue(e.Value), nil

	case *ListLit:
		return ev.evalList(e)

	case *RangeLit:
		return ev.evalRange(e)

	case *StrongWrap:
		return ev.evalStrongWrap(e)

	case *BinaryExpr:
		return ev.evalBinary(e)

	case *CallExpr:
		return ev.evalCall(e)

	default:
		// Unreachable for trees built by Parse.
		return Value{}, NewError("unknown expression node")
	}
}

// evalScalar evaluates an expression and reduces it to an integer: normal
// lists reduce by sum, strong lists refuse.
func (ev *evaluator) evalScalar(expr Expr) (int64, error) {
	v, err := ev.eval(expr)
	if err != nil {
		return 0, err
	}

	s, ok := v.scalar()
	if !ok {
		return 0, ErrExpectedInteger.With(
			slog.String("got", v.Kind.String()),
		)
	}

	return s, nil
}

// evalList evaluates an explicit list literal. Elements evaluate in order
// and must each yield a scalar; list literals hold integers, not lists,
// so a strong list element is an error.
func (ev *evaluator) evalList(e *ListLit) (Value, error) {
	elems := make([]int64, 0, len(e.Elems))

	for i, elem := range e.Elems {
		v, err := ev.eval(elem)
		if err != nil {
			return Value{}, err
		}

		s, ok := v.scalar()
		if !ok {
			return Value{}, ErrNonScalarListElement.With(
				slog.Int("index", i),
			)
		}

		elems = append(elems, s)
	}

	return ListValue(NormalList, elems), nil
}

// evalRange evaluates a range literal to the inclusive arithmetic
// sequence from start to end. The step's magnitude is taken and its
// direction follows from comparing start and end.
func (ev *evaluator) evalRange(e *RangeLit) (Value, error) {
	start, err := ev.evalScalar(e.Start)
	if err != nil {
		return Value{}, err
	}

	end, err := ev.evalScalar(e.End)
	if err != nil {
		return Value{}, err
	}

	mag := int64(1)

	if e.Step != nil {
		mag, err = ev.evalScalar(e.Step)
		if err != nil {
			return Value{}, err
		}

		if mag < 0 {
			mag = -mag
		}

		if mag == 0 {
			return Value{}, ErrInvalidStep
		}
	}

	return ListValue(NormalList, rangeSeq(start, end, mag)), nil
}

// rangeSeq generates start, start±mag, ... up to and including end.
// Additions that wrap around int64 terminate the sequence rather than
// cycling.
func rangeSeq(start, end, mag int64) []int64 {
	step := mag

	asc := start <= end
	if !asc {
		step = -mag
	}

	elems := []int64{start}

	for cur := start; ; {
		next := cur + step
		if asc && (next > end || next < cur) {
			break
		}

		if !asc && (next < end || next > cur) {
			break
		}

		elems = append(elems, next)
		cur = next
	}

	return elems
}

// evalStrongWrap promotes a list result to a strong list. Wrapping a
// scalar is an error: braces around a single expression assert that the
// inner value is list-typed.
func (ev *evaluator) evalStrongWrap(e *StrongWrap) (Value, error) {
	v, err := ev.eval(e.Inner)
	if err != nil {
		return Value{}, err
	}

	if !v.IsList() {
		return Value{}, ErrStrongWrapOfScalar
	}

	return ListValue(StrongList, v.Elems), nil
}

func (ev *evaluator) evalBinary(e *BinaryExpr) (Value, error) {
	switch e.Op {
	case OpDice:
		return ev.evalDice(e)

	case OpKeepHigh, OpKeepLow, OpDropHigh, OpDropLow:
		return ev.evalKeepDrop(e)

	default:
		left, err := ev.eval(e.Left)
		if err != nil {
			return Value{}, err
		}

		right, err := ev.eval(e.Right)
		if err != nil {
			return Value{}, err
		}

		return combine(opFunc(e.Op), left, right)
	}
}

// evalDice rolls count dice. Integer sides draw uniformly from 1..sides;
// a list draws uniformly by index from its elements, the list's own
// subtype being irrelevant. Draws happen in sequential order, one call to
// the source per die.
func (ev *evaluator) evalDice(e *BinaryExpr) (Value, error) {
	count, err := ev.evalScalar(e.Left)
	if err != nil {
		return Value{}, err
	}

	if count < 0 {
		return Value{}, ErrNegativeDiceCount.With(
			slog.Int64("count", count),
		)
	}

	right, err := ev.eval(e.Right)
	if err != nil {
		return Value{}, err
	}

	var roll func() int64

	if right.IsList() {
		faces := right.Elems
		if len(faces) == 0 {
			return Value{}, ErrEmptyFaceList
		}

		roll = func() int64 {
			return faces[ev.src.Int64N(int64(len(faces)))]
		}
	} else {
		sides := right.Int
		if sides < 1 {
			return Value{}, ErrInvalidSides.With(
				slog.Int64("sides", sides),
			)
		}

		roll = func() int64 {
			return 1 + ev.src.Int64N(sides)
		}
	}

	rolls := make([]int64, count)
	for i := range rolls {
		rolls[i] = roll()
	}

	return ListValue(NormalList, rolls), nil
}

// evalKeepDrop retains or removes the top or bottom k elements of the
// left list. Selection sorts a copy (stable, ties broken by original
// index); survivors are re-emitted in their original relative order, and
// the list's subtype is preserved.
func (ev *evaluator) evalKeepDrop(e *BinaryExpr) (Value, error) {
	left, err := ev.eval(e.Left)
	if err != nil {
		return Value{}, err
	}

	if !left.IsList() {
		return Value{}, ErrExpectedList.With(
			slog.String("operator", e.Op.String()),
		)
	}

	k, err := ev.evalScalar(e.Right)
	if err != nil {
		return Value{}, err
	}

	available := int64(len(left.Elems))
	if k < 0 || k > available {
		return Value{}, ErrCountOutOfRange.With(
			slog.String("operator", e.Op.String()),
			slog.Int64("requested", k),
			slog.Int64("available", available),
		)
	}

	keep := e.Op == OpKeepHigh || e.Op == OpKeepLow
	highest := e.Op == OpKeepHigh || e.Op == OpDropHigh

	// Sort indices rather than values so survivors can be re-emitted in
	// their original order.
	order := make([]int, len(left.Elems))
	for i := range order {
		order[i] = i
	}

	slices.SortStableFunc(order, func(a, b int) int {
		if highest {
			return cmp.Compare(left.Elems[b], left.Elems[a])
		}

		return cmp.Compare(left.Elems[a], left.Elems[b])
	})

	selected := order[:k]
	if !keep {
		selected = order[k:]
	}

	survives := make([]bool, len(left.Elems))
	for _, i := range selected {
		survives[i] = true
	}

	elems := make([]int64, 0, len(selected))

	for i, v := range left.Elems {
		if survives[i] {
			elems = append(elems, v)
		}
	}

	return ListValue(left.Kind, elems), nil
}

// evalCall evaluates arguments left to right, then invokes the named
// function from the registry. Errors from the callee propagate unchanged.
func (ev *evaluator) evalCall(e *CallExpr) (Value, error) {
	args := make([]Value, len(e.Args))

	for i, arg := range e.Args {
		v, err := ev.eval(arg)
		if err != nil {
			return Value{}, err
		}

		args[i] = v
	}

	return ev.funcs.Call(e.Name, args)
}

// bool01 encodes a comparison result as the integer 1 or 0.
func bool01(b bool) int64 {
	if b {
		return 1
	}

	return 0
}

// opFunc returns the integer operation for an arithmetic or comparison
// operator. Arithmetic wraps on overflow.
func opFunc(op Op) func(a, b int64) int64 {
	switch op {
	case OpMul:
		return func(a, b int64) int64 { return a * b }
	case OpAdd:
		return func(a, b int64) int64 { return a + b }
	case OpSub:
		return func(a, b int64) int64 { return a - b }
	case OpEq:
		return func(a, b int64) int64 { return bool01(a == b) }
	case OpNe:
		return func(a, b int64) int64 { return bool01(a != b) }
	case OpLt:
		return func(a, b int64) int64 { return bool01(a < b) }
	case OpLe:
		return func(a, b int64) int64 { return bool01(a <= b) }
	case OpGt:
		return func(a, b int64) int64 { return bool01(a > b) }
	default: // OpGe
		return func(a, b int64) int64 { return bool01(a >= b) }
	}
}
