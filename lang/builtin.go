package lang

import (
	"log/slog"
	"slices"
	"sync"
)

// Func is the callable signature for registered functions: evaluated
// argument Values in, a Value or an error out.
type Func func(args []Value) (Value, error)

// Variadic is the arity of a function accepting any number of arguments.
const Variadic = -1

type binding struct {
	arity int
	fn    Func
}

// Registry maps names to callables invoked for call expressions. Lookup
// is exact-match and case-sensitive.
//
// A Registry is safe for concurrent use, but registration is expected to
// happen before any evaluation that references the name.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]binding
}

// NewRegistry creates an empty function registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[string]binding)}
}

// Register binds a name to a callable. Arity fixes the required argument
// count; pass Variadic to accept any count. Re-registering a name
// replaces the previous binding.
func (r *Registry) Register(name string, arity int, fn Func) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.funcs[name] = binding{arity: arity, fn: fn}
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

// Call invokes the named function with the given evaluated arguments.
// It fails with ErrUnknownFunction for unregistered names and
// ErrArityMismatch when a fixed arity is violated; errors from the
// callee propagate unchanged.
func (r *Registry) Call(name string, args []Value) (Value, error) {
	r.mu.RLock()
	b, ok := r.funcs[name]
	r.mu.RUnlock()

	if !ok {
		return Value{}, ErrUnknownFunction.With(slog.String("name", name))
	}

	if b.arity != Variadic && len(args) != b.arity {
		return Value{}, ErrArityMismatch.With(
			slog.String("name", name),
			slog.Int("expected", b.arity),
			slog.Int("got", len(args)),
		)
	}

	return b.fn(args)
}

var errNoValues = NewError("no values to aggregate")

// defaultRegistry builds the registry of built-in functions once.
var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()

	r.Register("max", Variadic, maxFunc)
	r.Register("min", Variadic, minFunc)
	r.Register("sum", Variadic, sumFunc)
	r.Register("count", Variadic, countFunc)
	r.Register("abs", 1, absFunc)

	return r
})

// DefaultRegistry returns the registry of built-in functions used by Eval
// unless overridden with WithFuncs. Callers may register additional
// functions on it before evaluating.
func DefaultRegistry() *Registry {
	return defaultRegistry()
}

// flatten expands argument values into their scalar elements: integers
// contribute themselves, lists of either kind contribute their elements.
func flatten(args []Value) []int64 {
	out := make([]int64, 0, len(args))

	for _, v := range args {
		if v.IsList() {
			out = append(out, v.Elems...)
		} else {
			out = append(out, v.Int)
		}
	}

	return out
}

// maxFunc returns the largest element across all arguments.
func maxFunc(args []Value) (Value, error) {
	vals := flatten(args)
	if len(vals) == 0 {
		return Value{}, errNoValues.With(slog.String("name", "max"))
	}

	return IntegerValue(slices.Max(vals)), nil
}

// minFunc returns the smallest element across all arguments.
func minFunc(args []Value) (Value, error) {
	vals := flatten(args)
	if len(vals) == 0 {
		return Value{}, errNoValues.With(slog.String("name", "min"))
	}

	return IntegerValue(slices.Min(vals)), nil
}

// sumFunc returns the sum of all elements across all arguments.
// The empty sum is 0.
func sumFunc(args []Value) (Value, error) {
	var sum int64
	for _, v := range flatten(args) {
		sum += v
	}

	return IntegerValue(sum), nil
}

// countFunc returns the number of elements across all arguments, lists
// counting their length and integers counting 1.
func countFunc(args []Value) (Value, error) {
	return IntegerValue(int64(len(flatten(args)))), nil
}

// absFunc returns the absolute value of its argument. A strong list maps
// element-wise; anything else reduces to a scalar first.
func absFunc(args []Value) (Value, error) {
	v := args[0]

	if v.Kind == StrongList {
		elems := make([]int64, len(v.Elems))
		for i, e := range v.Elems {
			if e < 0 {
				e = -e
			}

			elems[i] = e
		}

		return ListValue(StrongList, elems), nil
	}

	s, _ := v.scalar()
	if s < 0 {
		s = -s
	}

	return IntegerValue(s), nil
}
