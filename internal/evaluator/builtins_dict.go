package evaluator

import (
	"github.com/pyrotek45/avon/internal/avonerr"
)

// execDict implements the dict category (spec.md §4.6). keys/values walk
// the sorted key order dictKeys already establishes for stringification,
// rather than golang.org/x/exp/maps.Keys/Values directly: Go's map
// iteration order is re-randomized on every range, which would violate
// spec.md §3's "iteration order is unspecified but deterministic within
// one process run" the moment a caller invoked keys() on the same dict
// twice.
func execDict(name string, args []Value, line int) (Value, error) {
	switch name {
	case "get":
		d, key, err := dictAndKey(args[0], args[1], line)
		if err != nil {
			return Value{}, err
		}
		v, ok := d[key]
		if !ok {
			return None(), nil
		}
		return v, nil
	case "set":
		d, key, err := dictAndKey(args[0], args[1], line)
		if err != nil {
			return Value{}, err
		}
		out := make(map[string]Value, len(d)+1)
		for k, v := range d {
			out[k] = v
		}
		out[key] = args[2]
		return Dict(out), nil
	case "has_key":
		d, key, err := dictAndKey(args[0], args[1], line)
		if err != nil {
			return Value{}, err
		}
		_, ok := d[key]
		return Bool(ok), nil
	case "keys":
		if err := wantKind(args[0], KindDict, line); err != nil {
			return Value{}, err
		}
		ks := dictKeys(args[0].Dict)
		out := make([]Value, len(ks))
		for i, k := range ks {
			out[i] = Str(k)
		}
		return List(out), nil
	case "values":
		if err := wantKind(args[0], KindDict, line); err != nil {
			return Value{}, err
		}
		ks := dictKeys(args[0].Dict)
		out := make([]Value, len(ks))
		for i, k := range ks {
			out[i] = args[0].Dict[k]
		}
		return List(out), nil
	case "dict_merge":
		if err := wantKind(args[0], KindDict, line); err != nil {
			return Value{}, err
		}
		if err := wantKind(args[1], KindDict, line); err != nil {
			return Value{}, err
		}
		out := make(map[string]Value, len(args[0].Dict)+len(args[1].Dict))
		for k, v := range args[0].Dict {
			out[k] = v
		}
		for k, v := range args[1].Dict {
			out[k] = v
		}
		return Dict(out), nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented dict builtin %q", name)
	}
}

// dictAndKey accepts either a genuine Dict value or the "list of 2-element
// lists" alternate form spec.md §4.6 requires every dict operation to
// also accept, plus a String or Number key.
func dictAndKey(dv, keyV Value, line int) (map[string]Value, string, error) {
	var d map[string]Value
	switch dv.Kind {
	case KindDict:
		d = dv.Dict
	case KindList:
		d = make(map[string]Value, len(dv.List))
		for _, pair := range dv.List {
			if pair.Kind != KindList || len(pair.List) != 2 {
				return nil, "", avonerr.NewTypeMismatch("Dict or list of 2-element lists", dv.Kind.String(), line)
			}
			d[ToDisplayString(pair.List[0], 0, 200, 100)] = pair.List[1]
		}
	default:
		return nil, "", avonerr.NewTypeMismatch("Dict or list of 2-element lists", dv.Kind.String(), line)
	}
	key := ToDisplayString(keyV, 0, 200, 100)
	return d, key, nil
}
