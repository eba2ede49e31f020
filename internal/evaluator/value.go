// Package evaluator implements Avon's tree-walking evaluator: the Value
// model, the environment, the core Eval function, operator semantics, the
// template/path renderer, the builtin registry and its category executors,
// and the file-template collector (spec.md §3, §4.4-§4.7). It plays the
// role the teacher's internal/evaluator package plays for funxy, but walks
// a single-production expression AST instead of a statement/type-checked
// program.
package evaluator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pyrotek45/avon/internal/ast"
)

// Kind tags a Value's dynamic type for typeof/is_* and error messages.
type Kind int

const (
	KindNone Kind = iota
	KindBool
	KindNumber
	KindString
	KindFunction
	KindBuiltin
	KindTemplate
	KindPath
	KindFileTemplate
	KindList
	KindDict
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindBool:
		return "Bool"
	case KindNumber:
		return "Number"
	case KindString:
		return "String"
	case KindFunction:
		return "Function"
	case KindBuiltin:
		return "Builtin"
	case KindTemplate:
		return "Template"
	case KindPath:
		return "Path"
	case KindFileTemplate:
		return "FileTemplate"
	case KindList:
		return "List"
	case KindDict:
		return "Dict"
	default:
		return "?"
	}
}

// Value is the dynamic runtime value every expression evaluates to
// (spec.md §3 "Value"). A single struct with a Kind tag plays the role the
// teacher's object.go interface hierarchy plays for funxy's richer type
// system; Avon's value set is small and flat enough that one tagged struct
// is clearer than a dozen one-method interfaces.
type Value struct {
	Kind Kind

	Bool    bool
	IsFloat bool
	Int     int64
	Float   float64
	Str     string

	// Function
	FnName    string // bound-name, set by `let`; empty for anonymous lambdas
	Param     string
	Default   *Value // evaluated default, or nil
	Body      ast.Node
	Env       *Env

	// Builtin: name plus accumulated partial-application arguments.
	BuiltinName string
	BuiltinArgs []Value

	// Template / Path / FileTemplate
	Chunks     []ast.Chunk
	Captured   *Env
	FilePath   *Value // Path value
	FileBody   *Value // Template value

	List []Value
	Dict map[string]Value
}

func None() Value { return Value{Kind: KindNone} }

func Bool(b bool) Value { return Value{Kind: KindBool, Bool: b} }

func Int(n int64) Value { return Value{Kind: KindNumber, Int: n} }

func Float(f float64) Value { return Value{Kind: KindNumber, IsFloat: true, Float: f} }

func Str(s string) Value { return Value{Kind: KindString, Str: s} }

func List(vs []Value) Value { return Value{Kind: KindList, List: vs} }

func Dict(m map[string]Value) Value { return Value{Kind: KindDict, Dict: m} }

// AsFloat returns the value's numeric view promoted to float64, for any
// Number (spec.md §3 "Binary arithmetic promotes to Float iff either
// operand is Float").
func (v Value) AsFloat() float64 {
	if v.IsFloat {
		return v.Float
	}
	return float64(v.Int)
}

func (v Value) IsTruthy() bool {
	return v.Kind == KindBool && v.Bool
}

// dictKeys returns a stable-sorted key slice for iteration; spec.md leaves
// dict order unspecified but requires it be "deterministic within one
// process run" (§3), which a sort satisfies trivially.
func dictKeys(m map[string]Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToDisplayString implements the recursive stringifier described in
// spec.md §4.5 ("Stringification of values"): depth-capped, dict-entry
// capped, with fixed renderings for function/builtin values.
func ToDisplayString(v Value, depth int, maxDepth, maxDictEntries int) string {
	if depth > maxDepth {
		return "<recursion limit exceeded>"
	}
	switch v.Kind {
	case KindNone:
		return "none"
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindNumber:
		if v.IsFloat {
			return formatFloatDefault(v.Float)
		}
		return fmt.Sprintf("%d", v.Int)
	case KindString:
		return v.Str
	case KindFunction:
		return "<function>"
	case KindBuiltin:
		return fmt.Sprintf("<builtin:%s>", v.BuiltinName)
	case KindTemplate:
		rendered, err := RenderTemplateValue(v)
		if err != nil {
			return "<render error>"
		}
		return rendered
	case KindPath:
		rendered, err := RenderPathValue(v)
		if err != nil {
			return "<render error>"
		}
		return rendered
	case KindFileTemplate:
		return "<file-template>"
	case KindList:
		parts := make([]string, len(v.List))
		for i, e := range v.List {
			parts[i] = ToDisplayString(e, depth+1, maxDepth, maxDictEntries)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindDict:
		if len(v.Dict) > maxDictEntries {
			return fmt.Sprintf("<dict with %d entries>", len(v.Dict))
		}
		keys := dictKeys(v.Dict)
		parts := make([]string, len(keys))
		for i, k := range keys {
			val := v.Dict[k]
			rendered := ToDisplayString(val, depth+1, maxDepth, maxDictEntries)
			if val.Kind == KindString {
				rendered = strconvQuote(rendered)
			}
			parts[i] = fmt.Sprintf("%s: %s", k, rendered)
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

func strconvQuote(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

func formatFloatDefault(f float64) string {
	s := fmt.Sprintf("%g", f)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}

// equalValues implements spec.md §4.4's cross-type comparison semantics
// for `==`/`!=`: same-kind structural equality (lists/dicts elementwise by
// stringified value), any cross-type pair compares unequal.
func equalValues(a, b Value) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindNone:
		return true
	case KindBool:
		return a.Bool == b.Bool
	case KindNumber:
		return a.AsFloat() == b.AsFloat()
	case KindString:
		return a.Str == b.Str
	case KindList:
		if len(a.List) != len(b.List) {
			return false
		}
		for i := range a.List {
			if ToDisplayString(a.List[i], 0, 200, 100) != ToDisplayString(b.List[i], 0, 200, 100) {
				return false
			}
		}
		return true
	case KindDict:
		if len(a.Dict) != len(b.Dict) {
			return false
		}
		for k, av := range a.Dict {
			bv, ok := b.Dict[k]
			if !ok {
				return false
			}
			if ToDisplayString(av, 0, 200, 100) != ToDisplayString(bv, 0, 200, 100) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
