package evaluator

import (
	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
	"github.com/pyrotek45/avon/internal/token"
)

// applyBinary implements spec.md §4.4 "Arithmetic (binary)".
func applyBinary(op token.Type, l, r Value, line int) (Value, error) {
	switch op {
	case token.PLUS:
		return opPlus(l, r, line)
	case token.MINUS, token.STAR, token.SLASH, token.PCT:
		return opArith(op, l, r, line)
	case token.AND, token.OR:
		return opLogical(op, l, r, line)
	case token.EQ:
		return Bool(equalValues(l, r)), nil
	case token.NOT_EQ:
		return Bool(!equalValues(l, r)), nil
	case token.LT, token.GT, token.LTE, token.GTE:
		return opOrder(op, l, r, line)
	default:
		return Value{}, avonerr.Newf(line, "unknown operator %s", op)
	}
}

func opPlus(l, r Value, line int) (Value, error) {
	switch {
	case l.Kind == KindNumber && r.Kind == KindNumber:
		if l.IsFloat || r.IsFloat {
			return Float(l.AsFloat() + r.AsFloat()), nil
		}
		return Int(l.Int + r.Int), nil
	case l.Kind == KindString && r.Kind == KindString:
		return Str(l.Str + r.Str), nil
	case l.Kind == KindList && r.Kind == KindList:
		out := make([]Value, 0, len(l.List)+len(r.List))
		out = append(out, l.List...)
		out = append(out, r.List...)
		return List(out), nil
	case l.Kind == KindTemplate && r.Kind == KindTemplate:
		return concatChunked(l, r, KindTemplate, line)
	case l.Kind == KindPath && r.Kind == KindPath:
		return joinPaths(l, r, line)
	default:
		return Value{}, errType(l.Kind.String(), r.Kind.String(), line)
	}
}

// concatChunked implements Template+Template concatenation (spec.md
// §4.4): chunk sequences concatenate, captured symbol tables union, and
// both the per-side and the unioned size are checked against the cap.
func concatChunked(l, r Value, kind Kind, line int) (Value, error) {
	merged := make([]ast.Chunk, 0, len(l.Chunks)+len(r.Chunks))
	merged = append(merged, l.Chunks...)
	merged = append(merged, r.Chunks...)
	if len(merged) > avonconfig.MaxTemplateChunks {
		return Value{}, avonerr.NewBoundExceeded(line, "template concatenation exceeds max chunk count")
	}
	env := unionEnv(l.Captured, r.Captured)
	if env.Len() > avonconfig.MaxTemplateCaptureSize {
		return Value{}, avonerr.NewBoundExceeded(line, "template capture set exceeds max size")
	}
	return Value{Kind: kind, Chunks: merged, Captured: env}, nil
}

// joinPaths implements the "smart join" rule of spec.md §4.4: insert a
// single '/' between segments unless one side already supplies it. Both
// sides are rendered eagerly (paths are short, and + on two Path values
// is a constant-folding convenience, not a lazy template) and the result
// is wrapped back into a single-chunk literal Path carrying the unioned
// captured table.
func joinPaths(l, r Value, line int) (Value, error) {
	lRendered, err := RenderChunks(l.Chunks, l.Captured, 0, avonconfig.MaxTemplateDepth)
	if err != nil {
		return Value{}, err
	}
	rRendered, err := RenderChunks(r.Chunks, r.Captured, 0, avonconfig.MaxTemplateDepth)
	if err != nil {
		return Value{}, err
	}
	var joined string
	switch {
	case len(lRendered) > 0 && lRendered[len(lRendered)-1] == '/':
		joined = lRendered + rRendered
	case len(rRendered) > 0 && rRendered[0] == '/':
		joined = lRendered + rRendered
	default:
		joined = lRendered + "/" + rRendered
	}
	env := unionEnv(l.Captured, r.Captured)
	return Value{
		Kind:     KindPath,
		Chunks:   []ast.Chunk{{IsExpr: false, Text: joined}},
		Captured: env,
	}, nil
}

func opArith(op token.Type, l, r Value, line int) (Value, error) {
	if l.Kind != KindNumber || r.Kind != KindNumber {
		return Value{}, errType("Number", l.Kind.String()+"/"+r.Kind.String(), line)
	}
	useFloat := l.IsFloat || r.IsFloat
	switch op {
	case token.MINUS:
		if useFloat {
			return Float(l.AsFloat() - r.AsFloat()), nil
		}
		return Int(l.Int - r.Int), nil
	case token.STAR:
		if useFloat {
			return Float(l.AsFloat() * r.AsFloat()), nil
		}
		return Int(l.Int * r.Int), nil
	case token.SLASH:
		if useFloat {
			if r.AsFloat() == 0 {
				return Value{}, errArith(line, "division by zero")
			}
			return Float(l.AsFloat() / r.AsFloat()), nil
		}
		if r.Int == 0 {
			return Value{}, errArith(line, "integer division by zero")
		}
		return Int(floorDiv(l.Int, r.Int)), nil
	case token.PCT:
		if useFloat {
			lf, rf := l.AsFloat(), r.AsFloat()
			if rf == 0 {
				return Value{}, errArith(line, "division by zero")
			}
			return Float(floatMod(lf, rf)), nil
		}
		if r.Int == 0 {
			return Value{}, errArith(line, "integer division by zero")
		}
		return Int(l.Int % r.Int), nil
	default:
		return Value{}, avonerr.Newf(line, "unknown arithmetic operator %s", op)
	}
}

// floorDiv implements spec.md §3's floor-toward-negative-infinity integer
// division, including the i64::MIN / -1 wrap case.
func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

func floatMod(a, b float64) float64 {
	m := a - b*float64(int64(a/b))
	return m
}

func opLogical(op token.Type, l, r Value, line int) (Value, error) {
	if l.Kind != KindBool || r.Kind != KindBool {
		return Value{}, errType("Bool", l.Kind.String()+"/"+r.Kind.String(), line)
	}
	// spec.md §4.4: "short-circuit semantics are not required (both sides
	// are evaluated before combining, matching the reference)"; both
	// operands are already evaluated by evalBinary before this is called.
	if op == token.AND {
		return Bool(l.Bool && r.Bool), nil
	}
	return Bool(l.Bool || r.Bool), nil
}

func opOrder(op token.Type, l, r Value, line int) (Value, error) {
	var cmp int
	switch {
	case l.Kind == KindNumber && r.Kind == KindNumber:
		lf, rf := l.AsFloat(), r.AsFloat()
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		default:
			cmp = 0
		}
	case l.Kind == KindString && r.Kind == KindString:
		switch {
		case l.Str < r.Str:
			cmp = -1
		case l.Str > r.Str:
			cmp = 1
		default:
			cmp = 0
		}
	default:
		return Value{}, errType("Number or String", l.Kind.String()+"/"+r.Kind.String(), line)
	}
	switch op {
	case token.LT:
		return Bool(cmp < 0), nil
	case token.GT:
		return Bool(cmp > 0), nil
	case token.LTE:
		return Bool(cmp <= 0), nil
	case token.GTE:
		return Bool(cmp >= 0), nil
	default:
		return Value{}, avonerr.Newf(line, "unknown comparison operator %s", op)
	}
}
