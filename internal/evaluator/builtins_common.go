package evaluator

import "github.com/pyrotek45/avon/internal/avonerr"

func wantKind(v Value, k Kind, line int) error {
	if v.Kind != k {
		return avonerr.NewTypeMismatch(k.String(), v.Kind.String(), line)
	}
	return nil
}

func asString(v Value, line int) (string, error) {
	switch v.Kind {
	case KindString:
		return v.Str, nil
	case KindTemplate:
		return RenderTemplateValue(v)
	case KindPath:
		return RenderPathValue(v)
	default:
		return "", avonerr.NewTypeMismatch("String", v.Kind.String(), line)
	}
}

func asList(v Value, line int) ([]Value, error) {
	if v.Kind != KindList {
		return nil, avonerr.NewTypeMismatch("List", v.Kind.String(), line)
	}
	return v.List, nil
}

func asNumber(v Value, line int) (Value, error) {
	if v.Kind != KindNumber {
		return Value{}, avonerr.NewTypeMismatch("Number", v.Kind.String(), line)
	}
	return v, nil
}

func asInt(v Value, line int) (int64, error) {
	if v.Kind != KindNumber {
		return 0, avonerr.NewTypeMismatch("Number", v.Kind.String(), line)
	}
	if v.IsFloat {
		return int64(v.Float), nil
	}
	return v.Int, nil
}

// clampSlice implements spec.md §4.6's slice contract: a > b yields
// empty, out-of-range indices clamp. spec.md leaves the clamp direction
// for negative indices unspecified; original_source/src/eval/builtins/string.rs's
// "slice" arm casts the index to usize (`*i as usize`) before taking
// `.min(len)`, so a negative index wraps to a huge unsigned value and
// clamps toward len, not toward 0 — matched here rather than clamping
// negatives to 0.
func clampSlice(n, a, b int) (int, int) {
	clamp := func(i int) int {
		if i < 0 || i > n {
			return n
		}
		return i
	}
	a, b = clamp(a), clamp(b)
	if a > b {
		return 0, 0
	}
	return a, b
}
