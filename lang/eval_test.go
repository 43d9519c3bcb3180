package lang

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"
)

// fixedSource returns a scripted sequence of draws, each reduced modulo
// the requested bound. It fails the test if more draws are requested than
// scripted.
type fixedSource struct {
	t     *testing.T
	draws []int64
	next  int
}

func (s *fixedSource) Int64N(n int64) int64 {
	s.t.Helper()

	if s.next >= len(s.draws) {
		s.t.Fatalf("random source exhausted after %d draws", s.next)
	}

	draw := s.draws[s.next] % n
	s.next++

	return draw
}

func evalString(t *testing.T, input string, opts ...EvalOption) Value {
	t.Helper()

	v, err := Eval(mustParse(t, input), opts...)
	if err != nil {
		t.Fatalf("Eval(%q) error: %v", input, err)
	}

	return v
}

func evalErr(t *testing.T, input string, opts ...EvalOption) error {
	t.Helper()

	_, err := Eval(mustParse(t, input), opts...)
	if err == nil {
		t.Fatalf("Eval(%q): expected error, got none", input)
	}

	return err
}

func wantInteger(t *testing.T, input string, want int64) {
	t.Helper()

	v := evalString(t, input)
	if v.Kind != Integer {
		t.Fatalf("Eval(%q): expected Integer, got %v", input, v.Kind)
	}

	if v.Int != want {
		t.Errorf("Eval(%q): expected %d, got %d", input, want, v.Int)
	}
}

func wantList(t *testing.T, v Value, kind ValueKind, want []int64) {
	t.Helper()

	if v.Kind != kind {
		t.Fatalf("expected %v, got %v", kind, v.Kind)
	}

	if !slices.Equal(v.Elems, want) {
		t.Errorf("expected elements %v, got %v", want, v.Elems)
	}
}

func TestEval_Arithmetic(t *testing.T) {
	cases := []struct {
		input string
		want  int64
	}{
		{"1 + 2", 3},
		{"7 - 10", -3},
		{"6 * 7", 42},
		{"-7 + 3", -4},
		{"2 + 3 * 4", 14},
		{"(2 + 3) * 4", 20},
		{"1 == 1", 1},
		{"1 == 2", 0},
		{"1 != 2", 1},
		{"3 < 4", 1},
		{"4 <= 4", 1},
		{"5 > 6", 0},
		{"6 >= 6", 1},
		{"1 < 2 < 3", 1}, // (1<2) -> 1, 1 < 3 -> 1
	}

	for _, tc := range cases {
		wantInteger(t, tc.input, tc.want)
	}
}

func TestEval_NormalListReduces(t *testing.T) {
	// A normal list reduces to its sum when combined.
	wantInteger(t, "{1, 2, 3} + 5", 11)
	wantInteger(t, "{1, 2, 3} * 2", 12)
	wantInteger(t, "[1, 10] + 0", 55)
	wantInteger(t, "{} + 5", 5) // empty list sums to 0
}

func TestEval_StrongListBroadcast(t *testing.T) {
	v := evalString(t, "{{1, 2, 3}} + 5")
	wantList(t, v, StrongList, []int64{6, 7, 8})

	if v.Sum() != 21 {
		t.Errorf("expected sum 21, got %d", v.Sum())
	}

	// Scalar on the left preserves operand order for subtraction.
	v = evalString(t, "10 - {{1, 2, 3}}")
	wantList(t, v, StrongList, []int64{9, 8, 7})

	// Comparison broadcasts element-wise, encoding 1/0.
	v = evalString(t, "{{1, 5, 3}} > 2")
	wantList(t, v, StrongList, []int64{0, 1, 1})
}

func TestEval_StrongListPairwise(t *testing.T) {
	v := evalString(t, "{{1, 2}} + {{10, 20}}")
	wantList(t, v, StrongList, []int64{11, 22})

	err := evalErr(t, "{{1, 2}} + {{1, 2, 3}}")
	if !errors.Is(err, ErrLengthMismatch) {
		t.Errorf("expected ErrLengthMismatch, got %v", err)
	}

	// A normal list reduces to a scalar before combining with a strong
	// list.
	v = evalString(t, "{{1, 2}} + {3, 4}")
	wantList(t, v, StrongList, []int64{8, 9})
}

func TestEval_RangeLiteral(t *testing.T) {
	wantList(t, evalString(t, "[1, 10, 2]"), NormalList,
		[]int64{1, 3, 5, 7, 9})
	wantList(t, evalString(t, "[1, 10, -2]"), NormalList,
		[]int64{1, 3, 5, 7, 9})
	wantList(t, evalString(t, "[10, 5]"), NormalList,
		[]int64{10, 9, 8, 7, 6, 5})
	wantList(t, evalString(t, "[3, 3]"), NormalList, []int64{3})
	wantList(t, evalString(t, "[1, 10, 4]"), NormalList, []int64{1, 5, 9})
}

func TestEval_RangeComputedParts(t *testing.T) {
	// Range parts are full expressions evaluated at roll time.
	wantList(t, evalString(t, "[1 + 1, 2 * 4]"), NormalList,
		[]int64{2, 3, 4, 5, 6, 7, 8})

	// A step that only evaluates to zero fails at evaluation time.
	err := evalErr(t, "[1, 10, 1 - 1]")
	if !errors.Is(err, ErrInvalidStep) {
		t.Errorf("expected ErrInvalidStep, got %v", err)
	}
}

func TestEval_StrongWrapOfScalar(t *testing.T) {
	err := evalErr(t, "{5}")
	if !errors.Is(err, ErrStrongWrapOfScalar) {
		t.Errorf("expected ErrStrongWrapOfScalar, got %v", err)
	}

	err = evalErr(t, "{1 + 2}")
	if !errors.Is(err, ErrStrongWrapOfScalar) {
		t.Errorf("expected ErrStrongWrapOfScalar, got %v", err)
	}

	// Wrapping an already-strong list keeps it strong.
	v := evalString(t, "{{{1, 2}}}")
	wantList(t, v, StrongList, []int64{1, 2})
}

func TestEval_ListElementCoercion(t *testing.T) {
	// Elements that evaluate to normal lists reduce to their sums.
	v := evalString(t, "{1 + 1, {2, 3}, 4}")
	wantList(t, v, NormalList, []int64{2, 5, 4})

	// A strong list element is not a scalar.
	err := evalErr(t, "{1, {{2, 3}}, 4}")
	if !errors.Is(err, ErrNonScalarListElement) {
		t.Errorf("expected ErrNonScalarListElement, got %v", err)
	}
}

func TestEval_DiceRoll(t *testing.T) {
	// Draws 2, 5, 1 against 6 sides yield faces 3, 6, 2.
	src := &fixedSource{t: t, draws: []int64{2, 5, 1}}

	v := evalString(t, "3d6", WithSource(src))
	wantList(t, v, NormalList, []int64{3, 6, 2})

	if src.next != 3 {
		t.Errorf("expected 3 draws, got %d", src.next)
	}
}

func TestEval_DiceRollFaceList(t *testing.T) {
	// Draws index the face list directly.
	src := &fixedSource{t: t, draws: []int64{0, 4, 2, 1}}

	v := evalString(t, "4d{1, 2, 3, 5, 8}", WithSource(src))
	wantList(t, v, NormalList, []int64{1, 8, 3, 2})

	// The face list's subtype is irrelevant.
	src = &fixedSource{t: t, draws: []int64{1}}

	v = evalString(t, "1d{{10, 20}}", WithSource(src))
	wantList(t, v, NormalList, []int64{20})
}

func TestEval_DiceRollCount(t *testing.T) {
	// Zero dice roll to an empty list without consuming the source.
	src := &fixedSource{t: t}

	v := evalString(t, "0d6", WithSource(src))
	wantList(t, v, NormalList, []int64{})

	// A normal-list count reduces by sum.
	src = &fixedSource{t: t, draws: []int64{0, 0, 0}}

	v = evalString(t, "{1, 2}d6", WithSource(src))

	if len(v.Elems) != 3 {
		t.Errorf("expected 3 rolls, got %d", len(v.Elems))
	}
}

func TestEval_DiceRollErrors(t *testing.T) {
	cases := []struct {
		input string
		want  error
	}{
		{"-1d6", ErrNegativeDiceCount},
		{"(0 - 2)d6", ErrNegativeDiceCount},
		{"3d0", ErrInvalidSides},
		{"3d-2", ErrInvalidSides},
		{"3d{}", ErrEmptyFaceList},
		{"{{1, 2}}d6", ErrExpectedInteger},
	}

	for _, tc := range cases {
		err := evalErr(t, tc.input)
		if !errors.Is(err, tc.want) {
			t.Errorf("Eval(%q): expected %v, got %v", tc.input, tc.want, err)
		}
	}
}

func TestEval_DiceRollReproducible(t *testing.T) {
	expr := mustParse(t, "10d20")

	const seed = 42

	first, err := Eval(expr,
		WithSource(rand.New(rand.NewPCG(seed, seed))))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	second, err := Eval(expr,
		WithSource(rand.New(rand.NewPCG(seed, seed))))
	if err != nil {
		t.Fatalf("eval error: %v", err)
	}

	if !slices.Equal(first.Elems, second.Elems) {
		t.Errorf("same seed produced %v then %v", first.Elems, second.Elems)
	}

	for _, roll := range first.Elems {
		if roll < 1 || roll > 20 {
			t.Errorf("roll %d out of range [1, 20]", roll)
		}
	}
}

func TestEval_KeepDrop(t *testing.T) {
	cases := []struct {
		input string
		want  []int64
	}{
		// Survivors keep their original relative order.
		{"{3, 1, 4, 1, 5}kh2", []int64{4, 5}},
		{"{3, 1, 4, 1, 5}kl2", []int64{1, 1}},
		{"{3, 1, 4, 1, 5}dh2", []int64{3, 1, 1}},
		{"{3, 1, 4, 1, 5}dl2", []int64{3, 4, 5}},
		// Boundary counts.
		{"{1, 2, 3}kh0", []int64{}},
		{"{1, 2, 3}kh3", []int64{1, 2, 3}},
		{"{1, 2, 3}dh0", []int64{1, 2, 3}},
		{"{1, 2, 3}dh3", []int64{}},
		// Ties break by original index: keeping one of two equal
		// highest values keeps the earlier one.
		{"{2, 5, 5}kh1", []int64{5}},
		{"{5, 2, 5}kh2", []int64{5, 5}},
	}

	for _, tc := range cases {
		v := evalString(t, tc.input)
		if !slices.Equal(v.Elems, tc.want) {
			t.Errorf("Eval(%q): expected %v, got %v",
				tc.input, tc.want, v.Elems)
		}
	}
}

func TestEval_KeepDropSubtypePreserved(t *testing.T) {
	if v := evalString(t, "{1, 2, 3}kh2"); v.Kind != NormalList {
		t.Errorf("expected normal list, got %v", v.Kind)
	}

	if v := evalString(t, "{{1, 2, 3}}kh2"); v.Kind != StrongList {
		t.Errorf("expected strong list, got %v", v.Kind)
	}
}

func TestEval_KeepDropErrors(t *testing.T) {
	cases := []struct {
		input string
		want  error
	}{
		{"5kh2", ErrExpectedList},
		{"{1, 2, 3}kh4", ErrCountOutOfRange},
		{"{1, 2, 3}kh-1", ErrCountOutOfRange},
		{"{1, 2, 3}dl4", ErrCountOutOfRange},
		{"{1, 2}kh{{1, 2}}", ErrExpectedInteger},
	}

	for _, tc := range cases {
		err := evalErr(t, tc.input)
		if !errors.Is(err, tc.want) {
			t.Errorf("Eval(%q): expected %v, got %v", tc.input, tc.want, err)
		}
	}
}

func TestEval_KeepPartitionProperty(t *testing.T) {
	// The kept elements of 4d6kh3, re-sorted, must match the top 3 of
	// the full sorted roll.
	src := rand.New(rand.NewPCG(7, 7))

	for range 50 {
		rolled, err := Eval(mustParse(t, "4d6"), WithSource(src))
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}

		kept, err := Eval(&BinaryExpr{
			Op:    OpKeepHigh,
			Left:  literalList(rolled.Elems),
			Right: &IntegerLit{Value: 3},
		})
		if err != nil {
			t.Fatalf("eval error: %v", err)
		}

		if len(kept.Elems) != 3 {
			t.Fatalf("expected 3 kept elements, got %d", len(kept.Elems))
		}

		full := slices.Clone(rolled.Elems)
		slices.Sort(full)
		top := full[1:] // top 3 of 4, ascending

		keptSorted := slices.Clone(kept.Elems)
		slices.Sort(keptSorted)

		if !slices.Equal(keptSorted, top) {
			t.Errorf("rolled %v: kept %v does not match top 3 %v",
				rolled.Elems, kept.Elems, top)
		}
	}
}

// literalList builds an explicit list literal node from integer values.
func literalList(vals []int64) *ListLit {
	elems := make([]Expr, len(vals))
	for i, v := range vals {
		elems[i] = &IntegerLit{Value: v}
	}

	return &ListLit{Elems: elems}
}

func TestEval_EvaluationOrder(t *testing.T) {
	// Left operand's rolls are drawn fully before the right operand's.
	src := &fixedSource{t: t, draws: []int64{3, 0}}

	v := evalString(t, "1d6 + 1d6", WithSource(src))

	if v.Kind != Integer || v.Int != 5 {
		t.Errorf("expected 4 + 1 = 5, got %v", v)
	}
}

func TestEval_FunctionCalls(t *testing.T) {
	wantInteger(t, "max(1, 2, 3)", 3)
	wantInteger(t, "max({4, 7, 2})", 7)
	wantInteger(t, "min({4, 7, 2}, 1)", 1)
	wantInteger(t, "sum({1, 2, 3}, 4)", 10)
	wantInteger(t, "sum()", 0)
	wantInteger(t, "count({1, 2, 3}, 4)", 4)
	wantInteger(t, "abs(0 - 5)", 5)
	wantInteger(t, "abs(-7)", 7)
}

func TestEval_UnknownFunction(t *testing.T) {
	err := evalErr(t, "nope(1)")
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestEval_RegisteredFunction(t *testing.T) {
	reg := NewRegistry()
	reg.Register("double", 1, func(args []Value) (Value, error) {
		return IntegerValue(args[0].Sum() * 2), nil
	})

	v := evalString(t, "double({1, 2, 3})", WithFuncs(reg))
	if v.Int != 12 {
		t.Errorf("expected 12, got %d", v.Int)
	}

	// The substituted registry does not know the defaults.
	err := evalErr(t, "max(1)", WithFuncs(reg))
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestEval_ArityMismatch(t *testing.T) {
	err := evalErr(t, "abs(1, 2)")
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestEval_CalleeErrorPropagates(t *testing.T) {
	boom := NewError("boom")

	reg := NewRegistry()
	reg.Register("fail", Variadic, func([]Value) (Value, error) {
		return Value{}, boom
	})

	err := evalErr(t, "fail()", WithFuncs(reg))
	if !errors.Is(err, boom) {
		t.Errorf("expected callee error to propagate, got %v", err)
	}
}
