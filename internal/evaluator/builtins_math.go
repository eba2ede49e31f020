package evaluator

import "github.com/pyrotek45/avon/internal/avonerr"

// execMath implements the math category; spec.md §4.6 notes this
// category is nearly empty because the language's own binary operators
// cover the rest of arithmetic (see operators.go).
func execMath(name string, args []Value, line int) (Value, error) {
	switch name {
	case "neg":
		v, err := asNumber(args[0], line)
		if err != nil {
			return Value{}, err
		}
		if v.IsFloat {
			return Float(-v.Float), nil
		}
		return Int(-v.Int), nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented math builtin %q", name)
	}
}
