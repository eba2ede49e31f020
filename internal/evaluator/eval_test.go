package evaluator

import (
	"strconv"
	"strings"
	"testing"

	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/lexer"
	"github.com/pyrotek45/avon/internal/parser"
)

func runSrc(t *testing.T, src string) (Value, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	if err != nil {
		return Value{}, err
	}
	node, err := parser.Parse(toks)
	if err != nil {
		return Value{}, err
	}
	env := InitialEnv("linux", nil)
	return Eval(node, env)
}

func mustEval(t *testing.T, src string) Value {
	t.Helper()
	v, err := runSrc(t, src)
	if err != nil {
		t.Fatalf("eval %q: %v", src, err)
	}
	return v
}

func mustDisplay(t *testing.T, src string) string {
	t.Helper()
	v := mustEval(t, src)
	return ToDisplayString(v, 0, 200, 100)
}

// Spec §8 S1: arithmetic & comparison
func TestS1ArithmeticAndComparison(t *testing.T) {
	cases := map[string]string{
		`1 + 2 * 3`:   "7",
		`1 == 1`:      "true",
		`"a" + "b"`:   "ab",
		`[1,2] + [3,4]`: "[1, 2, 3, 4]",
	}
	for src, want := range cases {
		if got := mustDisplay(t, src); got != want {
			t.Errorf("%q => %q, want %q", src, got, want)
		}
	}
}

// Spec §8 S2: let, closures, no recursion
func TestS2LetClosuresNoRecursion(t *testing.T) {
	if got := mustDisplay(t, `let x = 5 in x + 1`); got != "6" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `let f = \x x + 1 in f (f 10)`); got != "12" {
		t.Errorf("got %q", got)
	}
	_, err := runSrc(t, `let f = \x f x in f 1`)
	if err == nil {
		t.Fatal("expected unknown symbol error for recursive reference")
	}
	if !strings.Contains(err.Error(), "unknown symbol") {
		t.Errorf("got error %v", err)
	}
}

// Spec §8 S3: higher-order functions
func TestS3HigherOrder(t *testing.T) {
	if got := mustDisplay(t, `map (\x x * 2) [1, 2, 3]`); got != "[2, 4, 6]" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `fold (\a \b a + b) 0 [1,2,3,4]`); got != "10" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `filter (\x x != "") ["", "x"]`); got != "[x]" {
		t.Errorf("got %q", got)
	}
}

// Spec §8 S4: template interpolation and list splice
func TestS4TemplateInterpolation(t *testing.T) {
	if got := mustDisplay(t, `let hello = "WORLD" in {"A {hello} B"}`); got != "A WORLD B" {
		t.Errorf("got %q", got)
	}
	got := mustDisplay(t, `let xs = [1,2,3] in {"  - {xs}"}`)
	want := "- 1\n  - 2\n  - 3"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

// Spec §8 S5: nested-brace templates
func TestS5NestedBraceTemplates(t *testing.T) {
	if got := mustDisplay(t, `let hello = "W" in {{"X {{hello}} Y"}}`); got != "X W Y" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `let hello = "nope" in {{"literal {hello} here"}}`); got != "literal {hello} here" {
		t.Errorf("got %q", got)
	}
}

// Spec §8 S7: dedent preserves relative indent
func TestS7DedentPreservesIndent(t *testing.T) {
	src := "{\"\n    level1\n        level2\n    level1b\n\"}"
	got := mustDisplay(t, src)
	want := "level1\n    level2\nlevel1b"
	if got != want {
		t.Errorf("got %q want %q", got, want)
	}
}

func TestIdentifierLookupFailure(t *testing.T) {
	_, err := runSrc(t, "doesnotexist")
	if err == nil {
		t.Fatal("expected unknown symbol error")
	}
}

func TestLetForbidsRebinding(t *testing.T) {
	_, err := runSrc(t, "let x = 1 in let x = 2 in x")
	if err == nil {
		t.Fatal("expected scope error for rebinding x")
	}
}

func TestLetAllowsReusingUnderscore(t *testing.T) {
	got := mustDisplay(t, "let _ = 1 in let _ = 2 in 3")
	if got != "3" {
		t.Errorf("got %q", got)
	}
}

func TestUnderscoreCannotBeReferenced(t *testing.T) {
	_, err := runSrc(t, "let _ = 1 in _")
	if err == nil {
		t.Fatal("expected error referencing _")
	}
}

func TestConditionalRequiresBool(t *testing.T) {
	_, err := runSrc(t, "if 1 then 2 else 3")
	if err == nil {
		t.Fatal("expected type mismatch for non-bool condition")
	}
}

func TestDictMemberAccess(t *testing.T) {
	if got := mustDisplay(t, `let d = {a: 1, b: 2} in d.a`); got != "1" {
		t.Errorf("got %q", got)
	}
}

func TestDictMemberAccessMissingKey(t *testing.T) {
	_, err := runSrc(t, `let d = {a: 1} in d.b`)
	if err == nil {
		t.Fatal("expected error for missing dict key")
	}
}

func TestRangeBasic(t *testing.T) {
	if got := mustDisplay(t, `[1..5]`); got != "[1, 2, 3, 4, 5]" {
		t.Errorf("got %q", got)
	}
}

func TestRangeWithStep(t *testing.T) {
	if got := mustDisplay(t, `[0..2..6]`); got != "[0, 2, 4, 6]" {
		t.Errorf("got %q", got)
	}
}

func TestRangeNegativeStepReverses(t *testing.T) {
	if got := mustDisplay(t, `[5..(0 - 1)..1]`); got != "[5, 4, 3, 2, 1]" {
		t.Errorf("got %q", got)
	}
}

func TestRangeZeroStepIsError(t *testing.T) {
	_, err := runSrc(t, `[1..0..5]`)
	if err == nil {
		t.Fatal("expected error for zero step")
	}
}

func TestLambdaParameterCannotShadowBuiltin(t *testing.T) {
	_, err := runSrc(t, `let f = \map map in f 1`)
	if err == nil {
		t.Fatal("expected error for parameter shadowing builtin")
	}
}

func TestApplyingNonFunctionIsError(t *testing.T) {
	_, err := runSrc(t, `let x = 5 in x 1`)
	if err == nil {
		t.Fatal("expected type mismatch applying a non-function")
	}
}

func TestBuiltinPartialApplication(t *testing.T) {
	// map is arity-2; applying one arg should return a partial Builtin.
	v := mustEval(t, `map (\x x * 2)`)
	if v.Kind != KindBuiltin {
		t.Fatalf("got kind %s", v.Kind.String())
	}
	if len(v.BuiltinArgs) != 1 {
		t.Fatalf("got %d accumulated args", len(v.BuiltinArgs))
	}
}

func TestIntegerDivisionFloorsTowardNegativeInfinity(t *testing.T) {
	if got := mustDisplay(t, `(0 - 7) / 2`); got != "-4" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `7 / 2`); got != "3" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `(0 - 7) / (0 - 2)`); got != "3" {
		t.Errorf("got %q", got)
	}
}

func TestIntegerDivisionByZeroIsFatal(t *testing.T) {
	_, err := runSrc(t, `1 / 0`)
	if err == nil {
		t.Fatal("expected arithmetic error")
	}
}

func TestIntMinDivNegOneWraps(t *testing.T) {
	v := mustEval(t, `(0 - 9223372036854775807 - 1) / (0 - 1)`)
	if v.Int != -9223372036854775808 {
		t.Errorf("got %d", v.Int)
	}
}

func TestArithmeticPromotesToFloat(t *testing.T) {
	v := mustEval(t, `1 + 2.5`)
	if !v.IsFloat {
		t.Fatal("expected float result")
	}
	if v.Float != 3.5 {
		t.Errorf("got %v", v.Float)
	}
}

func TestCrossTypeEqualityIsFalse(t *testing.T) {
	if got := mustDisplay(t, `1 == "1"`); got != "false" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `1 != "1"`); got != "true" {
		t.Errorf("got %q", got)
	}
}

func TestLogicalOperatorsEvaluateBothSides(t *testing.T) {
	if got := mustDisplay(t, `true || false`); got != "true" {
		t.Errorf("got %q", got)
	}
	if got := mustDisplay(t, `true && false`); got != "false" {
		t.Errorf("got %q", got)
	}
}

func TestPipelineIsSugarForApplication(t *testing.T) {
	if got := mustDisplay(t, `5 -> (\x x + 1)`); got != "6" {
		t.Errorf("got %q", got)
	}
}

func TestFunctionDefaultEvaluatedAtConstruction(t *testing.T) {
	// default expr closes over environment present at construction time
	got := mustDisplay(t, `let a = 10 in let f = \x ? (a + 1) x in f 99`)
	if got != "99" {
		t.Errorf("got %q", got)
	}
	got2 := mustDisplay(t, `let a = 10 in let f = \x ? (a + 1) x in (let fn = f in fn) (f -> (\g g))`)
	_ = got2 // sanity that nothing panics on nested pipelines; value not asserted
}

func TestMaxEnvEntriesGuardExists(t *testing.T) {
	env := NewEnv()
	for i := 0; i < 3; i++ {
		if err := env.Insert(stringsRepeat("x", i+1), Int(int64(i))); err != nil {
			t.Fatalf("unexpected error inserting: %v", err)
		}
	}
	for i := env.Len(); i < avonconfig.MaxEnvEntries; i++ {
		if err := env.Insert("n"+strconv.Itoa(i), Int(int64(i))); err != nil {
			t.Fatalf("unexpected error inserting entry %d: %v", i, err)
		}
	}
	if err := env.Insert("overflow", Int(0)); err == nil {
		t.Fatalf("expected symbol-table-too-large error past %d entries", avonconfig.MaxEnvEntries)
	}
}

func stringsRepeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
