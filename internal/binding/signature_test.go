package binding

import (
	"errors"
	"testing"
)

func TestParseSignature(t *testing.T) {
	sig, err := ParseSignature([]string{"fst", "snd", "thd", "fth=..."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sig.Len() != 4 {
		t.Fatalf("Len() = %d, want 4", sig.Len())
	}
	if got := sig.VariadicIndex(); got != 3 {
		t.Errorf("VariadicIndex() = %d, want 3", got)
	}
	if got := sig.Name(3); got != "fth" {
		t.Errorf("Name(3) = %q, want fth", got)
	}
	if got := sig.String(); got != "(fst, snd, thd, fth=...)" {
		t.Errorf("String() = %q", got)
	}
}

func TestParseSignature_AnonymousVariadic(t *testing.T) {
	sig, err := ParseSignature([]string{"x", "..."})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !sig.IsVariadic(1) || sig.IsVariadic(0) {
		t.Errorf("variadic flags wrong: %+v", sig.Params)
	}
	if sig.Index("...") != 1 {
		t.Errorf(`Index("...") = %d, want 1`, sig.Index("..."))
	}
}

func TestParseSignature_Errors(t *testing.T) {
	testCases := []struct {
		name   string
		params []string
		want   error
	}{
		{"duplicate", []string{"a", "b", "a"}, ErrDuplicateParameter},
		{"two_variadic", []string{"...", "rest=..."}, ErrMultipleVariadic},
		{"empty", []string{"a", ""}, ErrEmptyParameter},
		{"empty_variadic_name", []string{"=..."}, ErrEmptyParameter},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSignature(tc.params)
			if !errors.Is(err, tc.want) {
				t.Errorf("err = %v, want %v", err, tc.want)
			}
		})
	}
}

func TestMustSignature_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustSignature did not panic on a duplicate name")
		}
	}()
	MustSignature("a", "a")
}

func TestSignature_OutOfRange(t *testing.T) {
	sig := MustSignature("a")
	if sig.Name(-1) != "" || sig.Name(5) != "" {
		t.Error("Name should be empty out of range")
	}
	if sig.IsVariadic(7) {
		t.Error("IsVariadic(7) = true")
	}
	if sig.Index("zz") != Unmatched {
		t.Error("Index of unknown name should be Unmatched")
	}
	if MustSignature().VariadicIndex() != Unmatched {
		t.Error("empty signature has a rest slot")
	}
}

func TestSignature_Equal(t *testing.T) {
	a := MustSignature("x", "...")
	b := MustSignature("x", "...")
	c := MustSignature("x", "rest=...")
	if !a.Equal(b) {
		t.Error("identical signatures differ")
	}
	if a.Equal(c) {
		t.Error("rest slots with different names compare equal")
	}
}
