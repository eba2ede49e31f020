package evaluator

import (
	"fmt"
	"regexp"

	"github.com/pyrotek45/avon/internal/avonerr"
)

// execRegex implements the regex category. There is no regex library in
// the example pack that improves on the standard library's RE2 engine
// (spec.md treats regex as "opaque external library primitives"), so
// this category stays on regexp — recorded as a stdlib justification in
// DESIGN.md rather than silently reached for.
func execRegex(name string, args []Value, line int) (Value, error) {
	switch name {
	case "regex_match":
		s, pat, err := stringAndPattern(args, line)
		if err != nil {
			return Value{}, err
		}
		re, err := compileRegex(pat, line)
		if err != nil {
			return Value{}, err
		}
		return Bool(re.MatchString(s)), nil
	case "regex_replace":
		s, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		pat, err := asString(args[1], line)
		if err != nil {
			return Value{}, err
		}
		repl, err := asString(args[2], line)
		if err != nil {
			return Value{}, err
		}
		re, err := compileRegex(pat, line)
		if err != nil {
			return Value{}, err
		}
		return Str(re.ReplaceAllString(s, repl)), nil
	case "regex_split":
		s, pat, err := stringAndPattern(args, line)
		if err != nil {
			return Value{}, err
		}
		re, err := compileRegex(pat, line)
		if err != nil {
			return Value{}, err
		}
		parts := re.Split(s, -1)
		out := make([]Value, len(parts))
		for i, p := range parts {
			out[i] = Str(p)
		}
		return List(out), nil
	case "scan":
		return regexScan(args, line)
	default:
		return Value{}, avonerr.Newf(line, "unimplemented regex builtin %q", name)
	}
}

func stringAndPattern(args []Value, line int) (string, string, error) {
	s, err := asString(args[0], line)
	if err != nil {
		return "", "", err
	}
	pat, err := asString(args[1], line)
	if err != nil {
		return "", "", err
	}
	return s, pat, nil
}

func compileRegex(pattern string, line int) (*regexp.Regexp, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, avonerr.NewFileError(line, fmt.Sprintf("invalid regex %q: %s", pattern, err.Error()))
	}
	return re, nil
}

// regexScan implements spec.md §4.6: "returns full match if no groups,
// else list-of-groups per match".
func regexScan(args []Value, line int) (Value, error) {
	s, pat, err := stringAndPattern(args, line)
	if err != nil {
		return Value{}, err
	}
	re, err := compileRegex(pat, line)
	if err != nil {
		return Value{}, err
	}
	matches := re.FindAllStringSubmatch(s, -1)
	out := make([]Value, len(matches))
	for i, m := range matches {
		if len(m) == 1 {
			out[i] = Str(m[0])
			continue
		}
		groups := make([]Value, len(m)-1)
		for j, g := range m[1:] {
			groups[j] = Str(g)
		}
		out[i] = List(groups)
	}
	return List(out), nil
}
