package evaluator

import "github.com/pyrotek45/avon/internal/avonerr"

// execAggregate implements the aggregate category (spec.md §4.6).
func execAggregate(name string, args []Value, line int) (Value, error) {
	switch name {
	case "sum":
		return reduceNumeric(args[0], line, 0, 1,
			func(acc, n int64) int64 { return acc + n },
			func(acc, f float64) float64 { return acc + f })
	case "product":
		return reduceNumeric(args[0], line, 1, 1,
			func(acc, n int64) int64 { return acc * n },
			func(acc, f float64) float64 { return acc * f })
	case "min":
		return minMax(args[0], line, true)
	case "max":
		return minMax(args[0], line, false)
	case "all":
		return allAny(args, line, true)
	case "any":
		return allAny(args, line, false)
	case "count":
		return countPred(args, line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented aggregate builtin %q", name)
	}
}

// reduceNumeric folds a Number list two ways at once: intAcc stays exact
// int64 arithmetic for the common all-Int case, floatAcc tracks the
// promoted result for when any element is a Float. Only one of the two
// is used for the final result, decided by whether a Float was seen
// (spec.md §4.4 "promote to Float if either operand is Float" applied
// across the whole fold rather than pairwise, to avoid losing integer
// precision through an unnecessary float64 round-trip).
func reduceNumeric(v Value, line int, initInt int64, initFloat float64,
	combineInt func(acc, n int64) int64, combineFloat func(acc, f float64) float64) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	anyFloat := false
	intAcc := initInt
	floatAcc := initFloat
	for _, e := range list {
		if e.Kind != KindNumber {
			return Value{}, avonerr.NewTypeMismatch("Number", e.Kind.String(), line)
		}
		if e.IsFloat {
			anyFloat = true
		}
		intAcc = combineInt(intAcc, e.Int)
		floatAcc = combineFloat(floatAcc, e.AsFloat())
	}
	if anyFloat {
		return Float(floatAcc), nil
	}
	return Int(intAcc), nil
}

func minMax(v Value, line int, wantMin bool) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	if len(list) == 0 {
		return None(), nil
	}
	allStrings := true
	for _, e := range list {
		if e.Kind != KindString {
			allStrings = false
			break
		}
	}
	if allStrings {
		best := list[0].Str
		for _, e := range list[1:] {
			if (wantMin && e.Str < best) || (!wantMin && e.Str > best) {
				best = e.Str
			}
		}
		return Str(best), nil
	}
	for _, e := range list {
		if e.Kind != KindNumber {
			return Value{}, avonerr.NewTypeMismatch("all-Number or all-String list", e.Kind.String(), line)
		}
	}
	best := list[0]
	for _, e := range list[1:] {
		if (wantMin && e.AsFloat() < best.AsFloat()) || (!wantMin && e.AsFloat() > best.AsFloat()) {
			best = e
		}
	}
	return best, nil
}

func allAny(args []Value, line int, wantAll bool) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	for _, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Kind != KindBool {
			return Value{}, avonerr.NewTypeMismatch("Bool", r.Kind.String(), line)
		}
		if wantAll && !r.Bool {
			return Bool(false), nil
		}
		if !wantAll && r.Bool {
			return Bool(true), nil
		}
	}
	return Bool(wantAll), nil
}

func countPred(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	n := int64(0)
	for _, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Kind != KindBool {
			return Value{}, avonerr.NewTypeMismatch("Bool", r.Kind.String(), line)
		}
		if r.Bool {
			n++
		}
	}
	return Int(n), nil
}
