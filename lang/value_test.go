package lang

import "testing"

func TestValue_String(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{IntegerValue(42), "42"},
		{IntegerValue(-7), "-7"},
		{
			ListValue(NormalList, []int64{3, 1, 4}),
			"8 (from list with 3 elements: {3, 1, 4})",
		},
		{
			ListValue(StrongList, []int64{6, 7, 8}),
			"21 (from list with 3 elements: {6, 7, 8})",
		},
		{
			ListValue(NormalList, []int64{}),
			"0 (from list with 0 elements: {})",
		},
		{
			ListValue(NormalList, []int64{9}),
			"9 (from list with 1 elements: {9})",
		},
	}

	for _, tc := range cases {
		if got := tc.value.String(); got != tc.want {
			t.Errorf("String(): expected %q, got %q", tc.want, got)
		}
	}
}

func TestValue_Sum(t *testing.T) {
	if got := IntegerValue(5).Sum(); got != 5 {
		t.Errorf("integer sum: expected 5, got %d", got)
	}

	if got := ListValue(NormalList, nil).Sum(); got != 0 {
		t.Errorf("empty list sum: expected 0, got %d", got)
	}

	if got := ListValue(StrongList, []int64{-3, 3, 10}).Sum(); got != 10 {
		t.Errorf("list sum: expected 10, got %d", got)
	}
}

func TestValue_KindString(t *testing.T) {
	cases := []struct {
		kind ValueKind
		want string
	}{
		{Integer, "Integer"},
		{NormalList, "List"},
		{StrongList, "Strong List"},
	}

	for _, tc := range cases {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("ValueKind(%d): expected %q, got %q",
				tc.kind, tc.want, got)
		}
	}
}

func TestValue_IsList(t *testing.T) {
	if IntegerValue(1).IsList() {
		t.Error("integer reported as list")
	}

	if !ListValue(NormalList, nil).IsList() {
		t.Error("normal list not reported as list")
	}

	if !ListValue(StrongList, nil).IsList() {
		t.Error("strong list not reported as list")
	}
}
