package evaluator

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pyrotek45/avon/internal/avonerr"
)

// execString implements the string category (spec.md §4.6). upper/lower
// go through golang.org/x/text/cases rather than strings.ToUpper/ToLower
// for proper Unicode title/case folding instead of a byte-wise ASCII
// transform, the same dependency the teacher's go.mod already carries.
func execString(name string, args []Value, line int) (Value, error) {
	switch name {
	case "concat":
		a, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		b, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Str(a + b), nil
	case "upper":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(cases.Upper(language.Und).String(s)), nil
	case "lower":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(cases.Lower(language.Und).String(s)), nil
	case "trim":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strings.TrimSpace(s)), nil
	case "contains":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		sub, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.Contains(s, sub)), nil
	case "starts_with":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		p, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.HasPrefix(s, p)), nil
	case "ends_with":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		p, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		return Bool(strings.HasSuffix(s, p)), nil
	case "split":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		sep, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		parts := strings.Split(s, sep)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = Str(p)
		}
		return List(out), nil
	case "join":
		list, err := asList(args[0], line)
		if err != nil {
			return Value{}, err
		}
		sep, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		parts := make([]string, len(list))
		for i, v := range list {
			parts[i] = ToDisplayString(v, 0, 200, 100)
		}
		return Str(strings.Join(parts, sep)), nil
	case "replace":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		old, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		nw, err := asString(args[2], line)
		if err != nil {
			return Value{}, err
		}
		return Str(strings.ReplaceAll(s, old, nw)), nil
	case "length":
		return stringLength(args[0], line)
	case "repeat":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		n, err := asInt(args[1], line)
		if err != nil {
			return Value{}, err
		}
		if n < 0 {
			n = 0
		}
		return Str(strings.Repeat(s, int(n))), nil
	case "pad_left":
		return pad(args, line, true)
	case "pad_right":
		return pad(args, line, false)
	case "indent":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		n, err := asInt(args[1], line)
		if err != nil {
			return Value{}, err
		}
		prefix := strings.Repeat(" ", int(n))
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			if l == "" {
				continue
			}
			lines[i] = prefix + l
		}
		return Str(strings.Join(lines, "\n")), nil
	case "is_alpha":
		return charPredicate(args[0], line, unicode.IsLetter)
	case "is_digit":
		return charPredicate(args[0], line, unicode.IsDigit)
	case "is_alnum":
		return charPredicate(args[0], line, func(r rune) bool { return unicode.IsLetter(r) || unicode.IsDigit(r) })
	case "is_space":
		return charPredicate(args[0], line, unicode.IsSpace)
	case "is_upper":
		return charPredicate(args[0], line, unicode.IsUpper)
	case "is_lower":
		return charPredicate(args[0], line, unicode.IsLower)
	case "is_empty":
		return isEmpty(args[0], line)
	case "slice":
		return stringOrListSlice(args, line)
	case "char_at":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		idx, err := asInt(args[1], line)
		if err != nil {
			return Value{}, err
		}
		runes := []rune(s)
		if idx < 0 || int(idx) >= len(runes) {
			return None(), nil
		}
		return Str(string(runes[idx])), nil
	case "chars":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		runes := []rune(s)
		out := make([]Value, len(runes))
		for i, r := range runes {
			out[i] = Str(string(r))
		}
		return List(out), nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented string builtin %q", name)
	}
}

func stringLength(v Value, line int) (Value, error) {
	switch v.Kind {
	case KindString:
		return Int(int64(len(v.Str))), nil
	case KindTemplate:
		s, err := RenderTemplateValue(v)
		if err != nil {
			return Value{}, err
		}
		return Int(int64(len(s))), nil
	case KindList:
		return Int(int64(len(v.List))), nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String, Template, or List", v.Kind.String(), line)
	}
}

func pad(args []Value, line int, left bool) (Value, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return Value{}, err
	}
	width, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	fill, err := asString(args[2], line)
	if err != nil {
		return Value{}, err
	}
	if fill == "" {
		fill = " "
	}
	need := int(width) - utf8.RuneCountInString(s)
	if need <= 0 {
		return Str(s), nil
	}
	padStr := strings.Repeat(fill, need)
	if utf8.RuneCountInString(padStr) > need {
		padRunes := []rune(padStr)
		padStr = string(padRunes[:need])
	}
	if left {
		return Str(padStr + s), nil
	}
	return Str(s + padStr), nil
}

func charPredicate(v Value, line int, pred func(rune) bool) (Value, error) {
	s, err := asString(v, line)
	if err != nil {
		return Value{}, err
	}
	if s == "" {
		return Bool(false), nil
	}
	for _, r := range s {
		if !pred(r) {
			return Bool(false), nil
		}
	}
	return Bool(true), nil
}

func isEmpty(v Value, line int) (Value, error) {
	switch v.Kind {
	case KindString:
		return Bool(v.Str == ""), nil
	case KindTemplate:
		s, err := RenderTemplateValue(v)
		if err != nil {
			return Value{}, err
		}
		return Bool(s == ""), nil
	case KindList:
		return Bool(len(v.List) == 0), nil
	case KindDict:
		return Bool(len(v.Dict) == 0), nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String, Template, List, or Dict", v.Kind.String(), line)
	}
}

func stringOrListSlice(args []Value, line int) (Value, error) {
	a, err := asInt(args[1], line)
	if err != nil {
		return Value{}, err
	}
	b, err := asInt(args[2], line)
	if err != nil {
		return Value{}, err
	}
	switch args[0].Kind {
	case KindString:
		runes := []rune(args[0].Str)
		lo, hi := clampSlice(len(runes), int(a), int(b))
		return Str(string(runes[lo:hi])), nil
	case KindList:
		lo, hi := clampSlice(len(args[0].List), int(a), int(b))
		out := make([]Value, hi-lo)
		copy(out, args[0].List[lo:hi])
		return List(out), nil
	default:
		return Value{}, avonerr.NewTypeMismatch("String or List", args[0].Kind.String(), line)
	}
}
