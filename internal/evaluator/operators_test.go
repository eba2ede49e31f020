package evaluator

import (
	"testing"

	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/token"
)

func TestOpPlusTemplateConcatenationUnionsCaptures(t *testing.T) {
	capA := NewEnv()
	_ = capA.Insert("a", Int(1))
	capB := NewEnv()
	_ = capB.Insert("b", Int(2))

	l := Value{Kind: KindTemplate, Captured: capA}
	r := Value{Kind: KindTemplate, Captured: capB}

	out, err := applyBinary(token.PLUS, l, r, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Captured.Has("a") || !out.Captured.Has("b") {
		t.Errorf("captured = %v", out.Captured.Names())
	}
}

func TestOpPlusPathSmartJoin(t *testing.T) {
	cases := []struct{ l, r, want string }{
		{"a/", "b", "a/b"},
		{"a", "/b", "a/b"},
		{"a", "b", "a/b"},
	}
	for _, c := range cases {
		lVal := Value{Kind: KindPath, Chunks: []ast.Chunk{{Text: c.l}}, Captured: NewEnv()}
		rVal := Value{Kind: KindPath, Chunks: []ast.Chunk{{Text: c.r}}, Captured: NewEnv()}
		out, err := applyBinary(token.PLUS, lVal, rVal, 0)
		if err != nil {
			t.Fatalf("%v+%v: unexpected error: %v", c.l, c.r, err)
		}
		got, err := RenderPathValue(out)
		if err != nil {
			t.Fatalf("render: %v", err)
		}
		if got != c.want {
			t.Errorf("%q + %q = %q, want %q", c.l, c.r, got, c.want)
		}
	}
}

func TestOpArithTypeMismatch(t *testing.T) {
	_, err := applyBinary(token.MINUS, Str("a"), Int(1), 0)
	if err == nil {
		t.Fatal("expected type mismatch")
	}
}

func TestOpLogicalRequiresBool(t *testing.T) {
	_, err := applyBinary(token.AND, Int(1), Bool(true), 0)
	if err == nil {
		t.Fatal("expected type mismatch for non-bool operand")
	}
}

func TestOpOrderStringLexicographic(t *testing.T) {
	out, err := applyBinary(token.LT, Str("apple"), Str("banana"), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !out.Bool {
		t.Error("expected apple < banana")
	}
}

func TestOpOrderRejectsBoolComparison(t *testing.T) {
	_, err := applyBinary(token.LT, Bool(true), Bool(false), 0)
	if err == nil {
		t.Fatal("expected error for bool ordering comparison")
	}
}

func TestEqualValuesListElementwise(t *testing.T) {
	a := List([]Value{Int(1), Str("x")})
	b := List([]Value{Int(1), Str("x")})
	if !equalValues(a, b) {
		t.Error("expected equal lists")
	}
	c := List([]Value{Int(1), Str("y")})
	if equalValues(a, c) {
		t.Error("expected unequal lists")
	}
}

func TestEqualValuesNoneOnlyEqComparisons(t *testing.T) {
	if !equalValues(None(), None()) {
		t.Error("none should equal none")
	}
}
