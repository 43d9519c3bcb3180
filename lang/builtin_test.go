package lang

import (
	"errors"
	"slices"
	"testing"
)

func TestRegistry_Call(t *testing.T) {
	reg := NewRegistry()
	reg.Register("two", 0, func([]Value) (Value, error) {
		return IntegerValue(2), nil
	})

	v, err := reg.Call("two", nil)
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Int != 2 {
		t.Errorf("expected 2, got %d", v.Int)
	}
}

func TestRegistry_Unknown(t *testing.T) {
	_, err := NewRegistry().Call("missing", nil)
	if !errors.Is(err, ErrUnknownFunction) {
		t.Errorf("expected ErrUnknownFunction, got %v", err)
	}
}

func TestRegistry_Arity(t *testing.T) {
	reg := NewRegistry()
	reg.Register("one", 1, func(args []Value) (Value, error) {
		return args[0], nil
	})

	_, err := reg.Call("one", nil)
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}

	_, err = reg.Call("one", []Value{IntegerValue(1), IntegerValue(2)})
	if !errors.Is(err, ErrArityMismatch) {
		t.Errorf("expected ErrArityMismatch, got %v", err)
	}
}

func TestRegistry_Replace(t *testing.T) {
	reg := NewRegistry()
	reg.Register("f", 0, func([]Value) (Value, error) {
		return IntegerValue(1), nil
	})
	reg.Register("f", 0, func([]Value) (Value, error) {
		return IntegerValue(2), nil
	})

	v, err := reg.Call("f", nil)
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Int != 2 {
		t.Errorf("expected replacement binding, got %d", v.Int)
	}
}

func TestRegistry_NamesSorted(t *testing.T) {
	reg := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		reg.Register(name, Variadic, func([]Value) (Value, error) {
			return Value{}, nil
		})
	}

	want := []string{"alpha", "mid", "zeta"}
	if got := reg.Names(); !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestDefaultRegistry_Names(t *testing.T) {
	names := DefaultRegistry().Names()

	for _, name := range []string{"abs", "count", "max", "min", "sum"} {
		if !slices.Contains(names, name) {
			t.Errorf("expected builtin %q in %v", name, names)
		}
	}
}

func TestBuiltin_Aggregates(t *testing.T) {
	list := ListValue(NormalList, []int64{4, -2, 7})

	cases := []struct {
		name string
		args []Value
		want int64
	}{
		{"max", []Value{list}, 7},
		{"max", []Value{list, IntegerValue(10)}, 10},
		{"min", []Value{list}, -2},
		{"min", []Value{IntegerValue(-5), list}, -5},
		{"sum", []Value{list}, 9},
		{"sum", []Value{list, IntegerValue(1)}, 10},
		{"sum", nil, 0},
		{"count", []Value{list}, 3},
		{"count", []Value{list, IntegerValue(1)}, 4},
		{"count", nil, 0},
		{"abs", []Value{IntegerValue(-9)}, 9},
		{"abs", []Value{ListValue(NormalList, []int64{-1, -2})}, 3},
	}

	for _, tc := range cases {
		v, err := DefaultRegistry().Call(tc.name, tc.args)
		if err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)

			continue
		}

		if v.Kind != Integer || v.Int != tc.want {
			t.Errorf("%s: expected %d, got %v", tc.name, tc.want, v)
		}
	}
}

func TestBuiltin_AbsStrongList(t *testing.T) {
	v, err := DefaultRegistry().Call("abs", []Value{
		ListValue(StrongList, []int64{-1, 2, -3}),
	})
	if err != nil {
		t.Fatalf("call error: %v", err)
	}

	if v.Kind != StrongList {
		t.Fatalf("expected strong list, got %v", v.Kind)
	}

	if !slices.Equal(v.Elems, []int64{1, 2, 3}) {
		t.Errorf("expected {1, 2, 3}, got %v", v.Elems)
	}
}

func TestBuiltin_EmptyAggregate(t *testing.T) {
	for _, name := range []string{"max", "min"} {
		if _, err := DefaultRegistry().Call(name, nil); err == nil {
			t.Errorf("%s(): expected error on empty input", name)
		}
	}
}
