package lang

import (
	"log/slog"
	"strconv"
	"strings"
)

// ValueKind classifies a runtime value.
type ValueKind int

const (
	// Integer is a scalar integer value.
	Integer ValueKind = iota

	// NormalList is a list that auto-reduces to its element sum when
	// combined with another value by an arithmetic or comparison operator.
	NormalList

	// StrongList is a list that never auto-reduces: operators apply
	// element-wise, or broadcast against a scalar.
	StrongList
)

// String returns a human-readable name for the value kind.
func (k ValueKind) String() string {
	switch k {
	case Integer:
		return "Integer"
	case NormalList:
		return "List"
	case StrongList:
		return "Strong List"
	default:
		return "Unknown"
	}
}

// Value is the result of evaluating an expression: either a scalar integer
// or a list of integers with normal or strong semantics.
//
// A Value is immutable once produced; operators always construct new
// Values, never mutate operands.
type Value struct {
	Kind  ValueKind
	Int   int64   // set when Kind is Integer
	Elems []int64 // set when Kind is NormalList or StrongList
}

// IntegerValue constructs a scalar integer value.
func IntegerValue(i int64) Value {
	return Value{Kind: Integer, Int: i}
}

// ListValue constructs a list value of the given kind. The elements slice
// is owned by the returned Value and must not be mutated by the caller.
func ListValue(kind ValueKind, elems []int64) Value {
	return Value{Kind: kind, Elems: elems}
}

// IsList reports whether the value is a list of either kind.
func (v Value) IsList() bool {
	return v.Kind == NormalList || v.Kind == StrongList
}

// Sum returns the element sum for lists (an empty list sums to 0), or the
// scalar itself for integers.
func (v Value) Sum() int64 {
	if v.Kind == Integer {
		return v.Int
	}

	var sum int64
	for _, e := range v.Elems {
		sum += e
	}

	return sum
}

// scalar reduces the value to an integer under the generic combination
// rule: integers pass through, normal lists reduce to their sum, and
// strong lists refuse reduction.
func (v Value) scalar() (int64, bool) {
	switch v.Kind {
	case Integer:
		return v.Int, true
	case NormalList:
		return v.Sum(), true
	default:
		return 0, false
	}
}

// combine applies a binary integer operation to two values under the
// coercion rules: scalars (and normal lists, reduced by sum) combine
// directly; a strong list broadcasts against a scalar or zips pairwise
// with another strong list, producing a strong list either way.
func combine(fn func(a, b int64) int64, left, right Value) (Value, error) {
	l, lok := left.scalar()
	r, rok := right.scalar()

	switch {
	case lok && rok:
		return IntegerValue(fn(l, r)), nil

	case lok: // scalar op strong list
		elems := make([]int64, len(right.Elems))
		for i, e := range right.Elems {
			elems[i] = fn(l, e)
		}

		return ListValue(StrongList, elems), nil

	case rok: // strong list op scalar
		elems := make([]int64, len(left.Elems))
		for i, e := range left.Elems {
			elems[i] = fn(e, r)
		}

		return ListValue(StrongList, elems), nil

	default: // strong list op strong list
		if len(left.Elems) != len(right.Elems) {
			return Value{}, ErrLengthMismatch.With(
				slog.Int("left_len", len(left.Elems)),
				slog.Int("right_len", len(right.Elems)),
			)
		}

		elems := make([]int64, len(left.Elems))
		for i, e := range left.Elems {
			elems[i] = fn(e, right.Elems[i])
		}

		return ListValue(StrongList, elems), nil
	}
}

// String implements the display rule for evaluation results: an integer
// prints bare, a list prints its element sum alongside the elements and
// their count.
func (v Value) String() string {
	if v.Kind == Integer {
		return strconv.FormatInt(v.Int, 10)
	}

	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = strconv.FormatInt(e, 10)
	}

	var buf strings.Builder

	buf.WriteString(strconv.FormatInt(v.Sum(), 10))
	buf.WriteString(" (from list with ")
	buf.WriteString(strconv.Itoa(len(v.Elems)))
	buf.WriteString(" elements: {")
	buf.WriteString(strings.Join(parts, ", "))
	buf.WriteString("})")

	return buf.String()
}
