package evaluator

import (
	"fmt"
	"os"

	"github.com/pyrotek45/avon/internal/avonerr"
)

// execEnv implements the env category (spec.md §4.6).
func execEnv(name string, args []Value, line int) (Value, error) {
	switch name {
	case "env_var":
		key, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		v, ok := os.LookupEnv(key)
		if !ok {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("env_var: %q is not set", key))
		}
		return Str(v), nil
	case "env_var_or":
		key, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		if v, ok := os.LookupEnv(key); ok {
			return Str(v), nil
		}
		return args[1], nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented env builtin %q", name)
	}
}
