package evaluator

import (
	"golang.org/x/exp/slices"

	"github.com/pyrotek45/avon/internal/avonerr"
)

// execList implements the list category (spec.md §4.6). sort and sort_by
// both use golang.org/x/exp/slices.SortStableFunc (promoted from the
// teacher's indirect x/exp requirement, given a concrete home here)
// rather than the stdlib sort package, matching SPEC_FULL.md's
// domain-stack wiring.
func execList(name string, args []Value, line int) (Value, error) {
	switch name {
	case "drop":
		list, err := asList(args[1], line)
		if err != nil {
			return Value{}, err
		}
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		if int(n) > len(list) {
			n = int64(len(list))
		}
		if n < 0 {
			n = 0
		}
		out := make([]Value, len(list)-int(n))
		copy(out, list[n:])
		return List(out), nil
	case "enumerate":
		list, err := asList(args[0], line)
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(list))
		for i, v := range list {
			out[i] = List([]Value{Int(int64(i)), v})
		}
		return List(out), nil
	case "filter":
		return listFilter(args, line)
	case "flatmap":
		return listFlatmap(args, line)
	case "flatten":
		return listFlatten(args[0], line)
	case "fold":
		return listFold(args, line)
	case "head":
		list, err := asList(args[0], line)
		if err != nil {
			return Value{}, err
		}
		if len(list) == 0 {
			return None(), nil
		}
		return list[0], nil
	case "map":
		return listMap(args, line)
	case "partition":
		return listPartition(args, line)
	case "range":
		return listRange(args, line)
	case "reverse":
		list, err := asList(args[0], line)
		if err != nil {
			return Value{}, err
		}
		out := make([]Value, len(list))
		for i, v := range list {
			out[len(list)-1-i] = v
		}
		return List(out), nil
	case "sort":
		return listSort(args[0], line)
	case "sort_by":
		return listSortBy(args, line)
	case "split_at":
		list, err := asList(args[1], line)
		if err != nil {
			return Value{}, err
		}
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		_, hi := clampSlice(len(list), 0, int(n))
		left := append([]Value{}, list[:hi]...)
		right := append([]Value{}, list[hi:]...)
		return List([]Value{List(left), List(right)}), nil
	case "tail":
		list, err := asList(args[0], line)
		if err != nil {
			return Value{}, err
		}
		if len(list) == 0 {
			return List(nil), nil
		}
		out := make([]Value, len(list)-1)
		copy(out, list[1:])
		return List(out), nil
	case "take":
		list, err := asList(args[1], line)
		if err != nil {
			return Value{}, err
		}
		n, err := asInt(args[0], line)
		if err != nil {
			return Value{}, err
		}
		_, hi := clampSlice(len(list), 0, int(n))
		out := make([]Value, hi)
		copy(out, list[:hi])
		return List(out), nil
	case "unique":
		return listUnique(args[0], line)
	case "unzip":
		return listUnzip(args[0], line)
	case "zip":
		return listZip(args, line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented list builtin %q", name)
	}
}

func listMap(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	out := make([]Value, len(list))
	for i, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		out[i] = r
	}
	return List(out), nil
}

func listFilter(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Kind != KindBool {
			return Value{}, avonerr.NewTypeMismatch("Bool", r.Kind.String(), line)
		}
		if r.Bool {
			out = append(out, v)
		}
	}
	return List(out), nil
}

func listFlatmap(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Kind != KindList {
			return Value{}, avonerr.NewTypeMismatch("List", r.Kind.String(), line)
		}
		out = append(out, r.List...)
	}
	return List(out), nil
}

func listFlatten(v Value, line int) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	for _, e := range list {
		if e.Kind == KindList {
			out = append(out, e.List...)
		} else {
			out = append(out, e)
		}
	}
	return List(out), nil
}

func listFold(args []Value, line int) (Value, error) {
	fn := args[0]
	acc := args[1]
	list, err := asList(args[2], line)
	if err != nil {
		return Value{}, err
	}
	for _, v := range list {
		partial, err := Apply(fn, acc, line, nil)
		if err != nil {
			return Value{}, err
		}
		acc, err = Apply(partial, v, line, nil)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func listPartition(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	var yes, no []Value
	for _, v := range list {
		r, err := Apply(fn, v, line, nil)
		if err != nil {
			return Value{}, err
		}
		if r.Kind != KindBool {
			return Value{}, avonerr.NewTypeMismatch("Bool", r.Kind.String(), line)
		}
		if r.Bool {
			yes = append(yes, v)
		} else {
			no = append(no, v)
		}
	}
	return List([]Value{List(yes), List(no)}), nil
}

func listRange(args []Value, line int) (Value, error) {
	start, err := asInt(args[0], line)
	if err != nil {
		return Value{}, err
	}
	end, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	var out []Value
	if start <= end {
		for i := start; i <= end; i++ {
			out = append(out, Int(i))
		}
	} else {
		for i := start; i >= end; i-- {
			out = append(out, Int(i))
		}
	}
	return List(out), nil
}

func listSort(v Value, line int) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	out := append([]Value{}, list...)
	var sortErr error
	slices.SortStableFunc(out, func(a, b Value) int {
		less, err := lessValues(a, b, line)
		if err != nil {
			sortErr = err
			return 0
		}
		if less {
			return -1
		}
		if greater, _ := lessValues(b, a, line); greater {
			return 1
		}
		return 0
	})
	if sortErr != nil {
		return Value{}, sortErr
	}
	return List(out), nil
}

func lessValues(a, b Value, line int) (bool, error) {
	switch {
	case a.Kind == KindNumber && b.Kind == KindNumber:
		return a.AsFloat() < b.AsFloat(), nil
	case a.Kind == KindString && b.Kind == KindString:
		return a.Str < b.Str, nil
	default:
		return false, avonerr.NewTypeMismatch("comparable Numbers or Strings", a.Kind.String()+"/"+b.Kind.String(), line)
	}
}

func listSortBy(args []Value, line int) (Value, error) {
	fn := args[0]
	list, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	out := append([]Value{}, list...)
	var sortErr error
	slices.SortStableFunc(out, func(a, b Value) int {
		ra, err := Apply(fn, a, line, nil)
		if err != nil {
			sortErr = err
			return 0
		}
		rb, err := Apply(fn, b, line, nil)
		if err != nil {
			sortErr = err
			return 0
		}
		less, err := lessValues(ra, rb, line)
		if err != nil {
			sortErr = err
			return 0
		}
		if less {
			return -1
		}
		if greater, _ := lessValues(rb, ra, line); greater {
			return 1
		}
		return 0
	})
	if sortErr != nil {
		return Value{}, sortErr
	}
	return List(out), nil
}

func listUnique(v Value, line int) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	seen := make(map[string]bool, len(list))
	var out []Value
	for _, e := range list {
		key := ToDisplayString(e, 0, 200, 100)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, e)
	}
	return List(out), nil
}

func listUnzip(v Value, line int) (Value, error) {
	list, err := asList(v, line)
	if err != nil {
		return Value{}, err
	}
	var firsts, seconds []Value
	for _, pair := range list {
		if pair.Kind != KindList || len(pair.List) != 2 {
			return Value{}, avonerr.NewTypeMismatch("2-element List", pair.Kind.String(), line)
		}
		firsts = append(firsts, pair.List[0])
		seconds = append(seconds, pair.List[1])
	}
	return List([]Value{List(firsts), List(seconds)}), nil
}

func listZip(args []Value, line int) (Value, error) {
	a, err := asList(args[0], line)
	if err != nil {
		return Value{}, err
	}
	b, err := asList(args[1], line)
	if err != nil {
		return Value{}, err
	}
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]Value, n)
	for i := 0; i < n; i++ {
		out[i] = List([]Value{a[i], b[i]})
	}
	return List(out), nil
}
