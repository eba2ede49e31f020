package evaluator

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
)

// execTypes implements the types category (spec.md §4.6).
func execTypes(name string, args []Value, line int) (Value, error) {
	switch name {
	case "typeof":
		return Str(args[0].Kind.String()), nil
	case "is_none":
		return Bool(args[0].Kind == KindNone), nil
	case "is_bool":
		return Bool(args[0].Kind == KindBool), nil
	case "is_number":
		return Bool(args[0].Kind == KindNumber), nil
	case "is_string":
		return Bool(args[0].Kind == KindString), nil
	case "is_template":
		return Bool(args[0].Kind == KindTemplate), nil
	case "is_path":
		return Bool(args[0].Kind == KindPath), nil
	case "is_list":
		return Bool(args[0].Kind == KindList), nil
	case "is_dict":
		return Bool(args[0].Kind == KindDict), nil
	case "is_function":
		return Bool(args[0].Kind == KindFunction), nil
	case "is_builtin":
		return Bool(args[0].Kind == KindBuiltin), nil
	case "is_file_template":
		return Bool(args[0].Kind == KindFileTemplate), nil
	case "to_string":
		return Str(ToDisplayString(args[0], 0, avonconfig.MaxStringifyDepth, avonconfig.MaxDictStringifyEntries)), nil
	case "to_int":
		return toInt(args[0], line)
	case "to_float":
		return toFloat(args[0], line)
	case "to_bool":
		return toBool(args[0]), nil
	case "to_char":
		return toChar(args[0], line)
	case "to_list":
		return toList(args[0], line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented types builtin %q", name)
	}
}

func toInt(v Value, line int) (Value, error) {
	switch v.Kind {
	case KindNumber:
		if v.IsFloat {
			return Int(int64(v.Float)), nil
		}
		return v, nil
	case KindString:
		n, err := strconv.ParseInt(strings.TrimSpace(v.Str), 10, 64)
		if err != nil {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("to_int: cannot parse %q as an integer", v.Str))
		}
		return Int(n), nil
	case KindBool:
		if v.Bool {
			return Int(1), nil
		}
		return Int(0), nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String, Number, or Bool", v.Kind.String(), line)
	}
}

func toFloat(v Value, line int) (Value, error) {
	switch v.Kind {
	case KindNumber:
		return Float(v.AsFloat()), nil
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return Value{}, avonerr.NewFileError(line, fmt.Sprintf("to_float: cannot parse %q as a float", v.Str))
		}
		return Float(f), nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String or Number", v.Kind.String(), line)
	}
}

var truthyTokens = map[string]bool{"true": true, "yes": true, "1": true, "on": true}
var falsyTokens = map[string]bool{"false": true, "no": true, "0": true, "off": true, "": true}

// toBool implements spec.md §4.6's ASCII-insensitive token set.
func toBool(v Value) Value {
	switch v.Kind {
	case KindBool:
		return v
	case KindNone:
		return Bool(false)
	case KindNumber:
		return Bool(v.AsFloat() != 0)
	case KindList:
		return Bool(len(v.List) > 0)
	case KindString:
		lower := strings.ToLower(v.Str)
		if truthyTokens[lower] {
			return Bool(true)
		}
		if falsyTokens[lower] {
			return Bool(false)
		}
		return Bool(v.Str != "")
	default:
		return Bool(true)
	}
}

func toChar(v Value, line int) (Value, error) {
	n, err := asInt(v, line)
	if err != nil {
		return Value{}, err
	}
	if n < 0 || n > 0x10FFFF {
		return Value{}, avonerr.NewArithmeticError(line, "to_char: codepoint out of Unicode range")
	}
	return Str(string(rune(n))), nil
}

func toList(v Value, line int) (Value, error) {
	switch v.Kind {
	case KindString:
		runes := []rune(v.Str)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return List(out), nil
	case KindList:
		return v, nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String or List", v.Kind.String(), line)
	}
}
