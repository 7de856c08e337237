package argmatch_test

import (
	"reflect"
	"strings"
	"testing"

	"github.com/funvibe/argmatch/internal/ast"
	"github.com/funvibe/argmatch/internal/binding"
	"github.com/funvibe/argmatch/internal/prettyprinter"
	"github.com/funvibe/argmatch/pkg/argmatch"
)

func sig(t *testing.T, names ...string) *binding.Signature {
	t.Helper()
	s, err := binding.ParseSignature(names)
	if err != nil {
		t.Fatalf("ParseSignature(%v): %v", names, err)
	}
	return &s
}

func num(v string) *ast.NumberLiteral { return ast.Number(v) }

func literal(e ast.Expression) string {
	if e == nil {
		return "<nil>"
	}
	return e.TokenLiteral()
}

func TestScenario_PositionalInOrder(t *testing.T) {
	call := ast.CallNamed("foo", ast.Positional(num("40")), ast.Positional(num("41")), ast.Positional(num("43")))
	m := argmatch.New().Match(call, sig(t, "fst", "snd", "thd"))

	if got := m.Binding().Slots(); !reflect.DeepEqual(got, []int{0, 1, 2}) {
		t.Errorf("Slots() = %v, want [0 1 2]", got)
	}
	if !m.IsValid() {
		t.Error("IsValid() = false")
	}
	if got := literal(m.ArgumentForName("snd")); got != "41" {
		t.Errorf("ArgumentForName(snd) = %s, want 41", got)
	}
}

func TestScenario_NamedAndVariadicOverflow(t *testing.T) {
	trailing := num("42")
	call := ast.CallNamed("foo",
		ast.Positional(num("40")),
		ast.Named("thd", num("41")),
		ast.Named("snd", num("43")),
		ast.Positional(trailing),
	)
	m := argmatch.New().Match(call, sig(t, "fst", "snd", "thd", "fth=..."))

	want := map[string]string{"fst": "40", "snd": "43", "thd": "41", "fth": "42"}
	for name, value := range want {
		if got := literal(m.ArgumentForName(name)); got != value {
			t.Errorf("ArgumentForName(%s) = %s, want %s", name, got, value)
		}
	}
	if got := m.UnboundParameters(); len(got) != 0 {
		t.Errorf("UnboundParameters() = %v, want none", got)
	}
	if name, ok := m.ParameterFor(trailing); !ok || name != "fth" {
		t.Errorf("ParameterFor(42) = %q, %v; want fth", name, ok)
	}
	if !m.IsValid() {
		t.Error("IsValid() = false")
	}
}

func TestScenario_DuplicateName(t *testing.T) {
	call := ast.CallNamed("foo", ast.Named("aa", num("10")), ast.Named("aa", num("20")))
	m := argmatch.New().Match(call, sig(t, "aa", "bb"))

	if got := literal(m.ArgumentFor(0)); got != "10" {
		t.Errorf("ArgumentFor(0) = %s, want 10", got)
	}
	if got := m.ParameterIndexFor(1, false); got != argmatch.Unmatched {
		t.Errorf("second aa bound to %d, want Unmatched", got)
	}
	if m.IsValid() {
		t.Error("IsValid() = true")
	}
	problems := m.Problems()
	if len(problems) != 1 || problems[0].Index != 1 || problems[0].Argument != call.Arguments[1] {
		t.Fatalf("Problems() = %+v", problems)
	}
	if !strings.Contains(problems[0].Message, "matched by multiple actual arguments") {
		t.Errorf("Message = %q", problems[0].Message)
	}
}

func TestScenario_PipeIntoVariadic(t *testing.T) {
	a, b, c := ast.Ident("a"), ast.Ident("b"), ast.Ident("c")
	call := ast.CallNamed("f", ast.Positional(b), ast.Positional(c))
	ast.Infix(a, "%>%", call)

	m := argmatch.New().Match(call, sig(t, "x", "..."))

	if m.PipeValue() != a {
		t.Fatalf("PipeValue() = %v, want a", m.PipeValue())
	}
	if got := m.Binding().Slots(); !reflect.DeepEqual(got, []int{0, 1, 1}) {
		t.Errorf("effective Slots() = %v, want [0 1 1]", got)
	}
	if m.ArgumentFor(0) != a {
		t.Errorf("ArgumentFor(x) = %v, want a", m.ArgumentFor(0))
	}
	if got := m.VariadicArguments(); !reflect.DeepEqual(got, []ast.Expression{b, c}) {
		t.Errorf("VariadicArguments() = %v, want [b c]", got)
	}
	if m.ArgumentForName("...") != b {
		t.Errorf(`ArgumentForName("...") = %v, want b`, m.ArgumentForName("..."))
	}
	// Written-argument indices do not count the pipe value.
	if got := m.ParameterIndexFor(0, false); got != 1 {
		t.Errorf("ParameterIndexFor(0, false) = %d, want 1", got)
	}
	if got := m.ParameterIndexFor(0, true); got != 0 {
		t.Errorf("ParameterIndexFor(0, true) = %d, want 0", got)
	}
	if name, ok := m.PipeParameter(); !ok || name != "x" {
		t.Errorf("PipeParameter() = %q, %v; want x", name, ok)
	}
	if name, ok := m.ParameterFor(a); !ok || name != "x" {
		t.Errorf("ParameterFor(a) = %q, %v; want x", name, ok)
	}
	if m.ArgumentNodeFor(0) != nil {
		t.Error("ArgumentNodeFor(x) should be nil when only the pipe value fills x")
	}
}

func TestScenario_NoParameters(t *testing.T) {
	call := ast.CallNamed("foo", ast.Positional(num("1")))
	m := argmatch.New().Match(call, sig(t))

	if got := m.ParameterIndexFor(0, false); got != argmatch.Unmatched {
		t.Errorf("ParameterIndexFor(0) = %d, want Unmatched", got)
	}
	if m.IsValid() {
		t.Error("IsValid() = true")
	}
}

func TestPipe_FillsFirstParameter(t *testing.T) {
	for _, extra := range [][]*ast.Argument{
		nil,
		{ast.Positional(ast.Ident("b"))},
		{ast.Positional(ast.Ident("b")), ast.Positional(ast.Ident("c"))},
	} {
		call := ast.CallNamed("f", extra...)
		ast.Infix(ast.Ident("a"), "%>%", call)
		m := argmatch.New().Match(call, sig(t, "x", "y"))

		if got := literal(m.ArgumentForName("x")); got != "a" {
			t.Errorf("%d extra: x = %s, want a", len(extra), got)
		}
		if len(extra) > 0 {
			if got := literal(m.ArgumentForName("y")); got != "b" {
				t.Errorf("%d extra: y = %s, want b", len(extra), got)
			}
		}
	}
}

func TestPipe_PipedValueUnmatched(t *testing.T) {
	call := ast.CallNamed("f")
	ast.Infix(ast.Ident("a"), "%>%", call)
	m := argmatch.New().Match(call, sig(t))

	problems := m.Problems()
	if len(problems) != 1 || problems[0].Index != -1 || problems[0].Argument != nil {
		t.Fatalf("Problems() = %+v, want the pipe value", problems)
	}
	if _, ok := m.PipeParameter(); ok {
		t.Error("PipeParameter() reported a parameter")
	}
}

func TestWithoutPipe(t *testing.T) {
	call := ast.CallNamed("f", ast.Positional(ast.Ident("b")))
	ast.Infix(ast.Ident("a"), "%>%", call)
	m := argmatch.New(argmatch.WithoutPipe()).Match(call, sig(t, "x", "y"))

	if m.PipeValue() != nil {
		t.Error("PipeValue() set with pipe handling disabled")
	}
	if got := literal(m.ArgumentForName("x")); got != "b" {
		t.Errorf("x = %s, want b", got)
	}
}

func TestMatch_Idempotent(t *testing.T) {
	r := argmatch.New()
	call := ast.CallNamed("f", ast.Positional(num("1")), ast.Named("y", num("2")))
	s := sig(t, "x", "y")

	first := r.Match(call, s)
	second := r.Match(call, sig(t, "x", "y"))

	if first.Binding() != second.Binding() {
		t.Error("unchanged call and equal signature did not reuse the cached binding")
	}
	if st := r.Cache().Stats(); st.Hits != 1 || st.Misses != 1 {
		t.Errorf("Stats() = %+v", st)
	}
}

func TestMatch_EditInvalidates(t *testing.T) {
	r := argmatch.New()
	call := ast.CallNamed("f", ast.Positional(num("1")))
	s := sig(t, "x", "y")

	before := r.Match(call, s)
	call.InsertArgument(0, ast.Named("x", num("0")))
	after := r.Match(call, s)

	if before.Binding() == after.Binding() {
		t.Fatal("edited call reused the stale binding")
	}
	if got := literal(after.ArgumentForName("y")); got != "1" {
		t.Errorf("after edit y = %s, want 1", got)
	}
}

func TestMatch_MovedIntoPipe(t *testing.T) {
	r := argmatch.New()
	call := ast.CallNamed("f", ast.Positional(ast.Ident("b")))
	s := sig(t, "x", "y")
	r.Match(call, s)

	ast.Infix(ast.Ident("a"), "%>%", call)
	m := r.Match(call, s)

	if got := literal(m.ArgumentForName("x")); got != "a" {
		t.Errorf("x = %s, want a after the call became a pipe target", got)
	}
}

func TestMatch_Absent(t *testing.T) {
	r := argmatch.New()
	call := ast.CallNamed("f", ast.Positional(num("1")))
	m := r.Match(call, nil)

	if m != nil {
		t.Fatal("Match with nil signature should be absent")
	}
	if m.IsValid() || m.ArgumentFor(0) != nil || m.ArgumentForName("x") != nil ||
		m.VariadicArguments() != nil || m.UnboundParameters() != nil || m.Problems() != nil ||
		m.ParameterIndexFor(0, false) != argmatch.Unmatched || m.PipeValue() != nil ||
		m.ActiveParameter(0) != argmatch.Unmatched || m.Call() != nil {
		t.Error("absent Match answered a query")
	}
	if _, ok := m.ParameterFor(call.Arguments[0]); ok {
		t.Error("absent Match resolved a parameter")
	}
	if r.Match(nil, sig(t, "x")) != nil {
		t.Error("Match(nil call) should be absent")
	}
}

func TestMatchNames(t *testing.T) {
	r := argmatch.New()
	call := ast.CallNamed("f", ast.Positional(num("1")))

	m, err := r.MatchNames(call, []string{"x", "..."})
	if err != nil || m == nil {
		t.Fatalf("MatchNames: %v, %v", m, err)
	}
	if m, err := r.MatchNames(call, nil); m != nil || err != nil {
		t.Errorf("nil names: %v, %v; want absent and no error", m, err)
	}
	if _, err := r.MatchNames(call, []string{"x", "x"}); err == nil {
		t.Error("duplicate parameter names accepted")
	}
}

func TestQueries_OutOfRange(t *testing.T) {
	call := ast.CallNamed("f", ast.Positional(num("1")))
	m := argmatch.New().Match(call, sig(t, "x"))

	if m.ArgumentFor(-1) != nil || m.ArgumentFor(9) != nil {
		t.Error("ArgumentFor out of range returned a value")
	}
	if m.ArgumentForName("nope") != nil {
		t.Error("ArgumentForName(unknown) returned a value")
	}
	if m.ParameterIndexFor(-3, false) != argmatch.Unmatched || m.ParameterIndexFor(5, true) != argmatch.Unmatched {
		t.Error("ParameterIndexFor out of range returned an index")
	}
	if _, ok := m.ParameterFor(ast.Ident("stranger")); ok {
		t.Error("ParameterFor(foreign node) resolved")
	}
	if _, ok := m.ParameterFor(nil); ok {
		t.Error("ParameterFor(nil) resolved")
	}
	if m.VariadicArguments() != nil {
		t.Error("VariadicArguments() without a rest slot returned values")
	}
}

func TestParameterFor_ResolvesThroughNamedArgument(t *testing.T) {
	value := num("41")
	arg := ast.Named("thd", value)
	call := ast.CallNamed("foo", arg)
	m := argmatch.New().Match(call, sig(t, "fst", "snd", "thd"))

	for _, node := range []ast.Node{arg, value, arg.Name} {
		if name, ok := m.ParameterFor(node); !ok || name != "thd" {
			t.Errorf("ParameterFor(%T) = %q, %v; want thd", node, name, ok)
		}
	}
	if got := m.ParameterIndexOf(value); got != 2 {
		t.Errorf("ParameterIndexOf = %d, want 2", got)
	}
	if m.ArgumentNodeFor(2) != arg {
		t.Error("ArgumentNodeFor(thd) is not the named argument")
	}
	if got := m.UnboundParameters(); !reflect.DeepEqual(got, []string{"fst", "snd"}) {
		t.Errorf("UnboundParameters() = %v", got)
	}
}

func TestActiveParameter(t *testing.T) {
	call := ast.CallNamed("foo",
		ast.Positional(num("40")),
		ast.Named("thd", num("41")),
		ast.Named("snd", num("43")),
		ast.Positional(num("42")),
	)
	src := prettyprinter.Print(call)
	if src != "foo(40, thd = 41, snd = 43, 42)" {
		t.Fatalf("Print() = %q", src)
	}
	m := argmatch.New().Match(call, sig(t, "fst", "snd", "thd", "fth=..."))

	testCases := []struct {
		caret string // text right after the caret
		want  int
	}{
		{"40, thd", 0},
		{"hd = 41", 2},
		{"43, 42", 1},
		{"42)", 3},
		{"foo(", argmatch.Unmatched},
	}
	for _, tc := range testCases {
		offset := strings.Index(src, tc.caret)
		if got := m.ActiveParameter(offset); got != tc.want {
			t.Errorf("caret before %q: ActiveParameter = %d, want %d", tc.caret, got, tc.want)
		}
	}
	if got := argmatch.CallAt(call, strings.Index(src, "41")); got != call {
		t.Errorf("CallAt = %v, want the call", got)
	}
}

func TestCallAt_Nested(t *testing.T) {
	inner := ast.CallNamed("c", ast.Named("name", ast.String("character")))
	outer := ast.CallNamed("setClass", ast.Positional(ast.String("Person")), ast.Named("slots", inner))
	src := prettyprinter.Print(outer)

	if got := argmatch.CallAt(outer, strings.Index(src, "character")); got != inner {
		t.Errorf("CallAt inside c(...) = %v, want the inner call", got)
	}
	if got := argmatch.CallAt(outer, strings.Index(src, "Person")); got != outer {
		t.Errorf("CallAt on the first argument = %v, want the outer call", got)
	}
	if got := argmatch.CallAt(outer, len(src)+10); got != nil {
		t.Errorf("CallAt past the end = %v, want nil", got)
	}
}
