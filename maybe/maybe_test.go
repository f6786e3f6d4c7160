package maybe

import (
	stderrors "errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/kbukum/lazykit/errors"
)

func TestSome_RejectsNilReferences(t *testing.T) {
	var p *int
	var m map[string]int
	var s []int
	var f func()
	var e error

	tests := []struct {
		name string
		run  func() error
	}{
		{"pointer", func() error { _, err := Some(p); return err }},
		{"map", func() error { _, err := Some(m); return err }},
		{"slice", func() error { _, err := Some(s); return err }},
		{"func", func() error { _, err := Some(f); return err }},
		{"interface", func() error { _, err := Some(e); return err }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.run(); !stderrors.Is(err, errors.ErrNullArgument) {
				t.Errorf("got %v, want NULL_ARGUMENT", err)
			}
		})
	}
}

func TestSome_ZeroValueIsAValue(t *testing.T) {
	m, err := Some(0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !m.IsSome() {
		t.Error("Some(0) should hold a value")
	}
}

func TestOf_NilBecomesNone(t *testing.T) {
	var p *string
	if Of(p).IsSome() {
		t.Error("Of(nil) should be None")
	}
	v := "x"
	if got := Of(&v).Match(nil); got != &v {
		t.Errorf("got %v, want %v", got, &v)
	}
}

func TestZeroValueIsNone(t *testing.T) {
	var m Maybe[int]
	if !m.IsNone() {
		t.Error("zero Maybe should be None")
	}
	if m.String() != "None" {
		t.Errorf("got %q, want None", m.String())
	}
}

func TestFromOkAndFromPtr(t *testing.T) {
	lookup := map[string]int{"a": 1}
	v, ok := lookup["a"]
	if got := FromOk(v, ok).Match(-1); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
	v, ok = lookup["b"]
	if FromOk(v, ok).IsSome() {
		t.Error("missing key should be None")
	}

	n := 7
	if got := FromPtr(&n).Match(0); got != 7 {
		t.Errorf("got %d, want 7", got)
	}
	if FromPtr[int](nil).IsSome() {
		t.Error("nil pointer should be None")
	}
}

func TestMatchErr(t *testing.T) {
	sentinel := fmt.Errorf("missing")

	got, err := Of(3).MatchErr(sentinel)
	if err != nil || got != 3 {
		t.Errorf("got (%d, %v), want (3, nil)", got, err)
	}

	_, err = None[int]().MatchErr(sentinel)
	if err != sentinel {
		t.Errorf("got %v, want caller error", err)
	}

	_, err = None[int]().MatchErr(nil)
	if !stderrors.Is(err, errors.ErrEmptyValue) {
		t.Errorf("got %v, want EMPTY_VALUE", err)
	}
}

func TestFilter(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }

	tests := []struct {
		name string
		in   Maybe[int]
		want bool
	}{
		{"passes", Of(4), true},
		{"fails", Of(3), false},
		{"none", None[int](), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.in.Filter(even)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.IsSome() != tc.want {
				t.Errorf("got %v, want some=%v", got, tc.want)
			}
		})
	}

	if _, err := Of(1).Filter(nil); !stderrors.Is(err, errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", err)
	}
}

func TestMap_NoneSkipsFunction(t *testing.T) {
	called := false
	got, err := Map(None[int](), func(n int) string {
		called = true
		return strconv.Itoa(n)
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if called {
		t.Error("selector must not run for None")
	}
	if got.IsSome() {
		t.Error("expected None")
	}
}

func TestMap_NilSelector(t *testing.T) {
	if _, err := Map[int, int](Of(1), nil); !stderrors.Is(err, errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", err)
	}
}

func TestMatchWith(t *testing.T) {
	got, err := MatchWith(Of(21), func(n int) int { return n * 2 }, 0)
	if err != nil || got != 42 {
		t.Errorf("got (%d, %v), want (42, nil)", got, err)
	}
	got, _ = MatchWith(None[int](), func(n int) int { return n * 2 }, -1)
	if got != -1 {
		t.Errorf("got %d, want -1", got)
	}
}

func TestBindAndSelectMany(t *testing.T) {
	parse := func(s string) Maybe[int] {
		n, err := strconv.Atoi(s)
		return FromOk(n, err == nil)
	}

	got, err := Bind(Of("12"), parse)
	if err != nil || got.Match(0) != 12 {
		t.Errorf("got (%v, %v), want Some(12)", got, err)
	}
	got, _ = Bind(Of("x"), parse)
	if got.IsSome() {
		t.Error("expected None for unparsable input")
	}

	sum, err := SelectMany(Of("4"), parse, func(s string, n int) string { return s + "=" + strconv.Itoa(n) })
	if err != nil || sum.Match("") != "4=4" {
		t.Errorf("got (%v, %v), want Some(4=4)", sum, err)
	}
	if _, err := SelectMany[string, int, int](Of("1"), parse, nil); !stderrors.Is(err, errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", err)
	}
}

func TestOfType(t *testing.T) {
	var v any = "text"
	if got := OfType[string](Of(v)).Match(""); got != "text" {
		t.Errorf("got %q, want text", got)
	}
	if OfType[int](Of(v)).IsSome() {
		t.Error("expected None for mismatched type")
	}
}

func TestFlatten(t *testing.T) {
	if got := Flatten(Of(Of(5))).Match(0); got != 5 {
		t.Errorf("got %d, want 5", got)
	}
	if Flatten(Of(None[int]())).IsSome() {
		t.Error("expected None")
	}
}

func TestSequenceHelpers(t *testing.T) {
	ms := []Maybe[int]{Of(1), None[int](), Of(4)}

	doubled, err := MapEach(ms, func(n int) int { return n * 2 })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := MatchEach(doubled, 0); fmt.Sprint(got) != "[2 0 8]" {
		t.Errorf("got %v, want [2 0 8]", got)
	}

	evens, _ := FilterEach(ms, func(n int) bool { return n%2 == 0 })
	if got := SomeEach(evens); fmt.Sprint(got) != "[4]" {
		t.Errorf("got %v, want [4]", got)
	}

	first, _ := FirstOrNone([]int{3, 5, 6, 8}, func(n int) bool { return n%2 == 0 })
	if first.Match(0) != 6 {
		t.Errorf("got %v, want Some(6)", first)
	}
	if _, err := FirstOrNone[int](nil, nil); !stderrors.Is(err, errors.ErrNullArgument) {
		t.Errorf("got %v, want NULL_ARGUMENT", err)
	}
}
