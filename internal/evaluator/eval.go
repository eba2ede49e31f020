package evaluator

import (
	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
)

// state threads the process-wide depth/step bounds through one top-level
// Eval call (spec.md §4.4 "Two process-wide bounds guard termination").
// It is created fresh at the top of Eval, mirroring the teacher's
// per-call evaluator state rather than a package-level mutable counter,
// so concurrent top-level evaluations (e.g. nested `import`) don't race.
type state struct {
	depth int
	steps int
}

func (s *state) enter(line int) (*avonerr.Error, func()) {
	s.depth++
	s.steps++
	if s.depth > avonconfig.MaxEvalDepth {
		return errDepth(line), func() { s.depth-- }
	}
	if s.steps > avonconfig.MaxEvalSteps {
		return errSteps(line), func() { s.depth-- }
	}
	return nil, func() { s.depth-- }
}

// Eval walks node to a Value in env (spec.md §4.4), starting a fresh
// depth and step count.
func Eval(node ast.Node, env *Env) (Value, error) {
	s := &state{}
	return eval(node, env, s)
}

func eval(node ast.Node, env *Env, s *state) (Value, error) {
	if boundErr, leave := s.enter(node.Line()); boundErr != nil {
		leave()
		return Value{}, boundErr
	} else {
		defer leave()
	}

	switch n := node.(type) {
	case *ast.None:
		return None(), nil
	case *ast.Bool:
		return Bool(n.Value), nil
	case *ast.Number:
		if n.IsFloat {
			return Float(n.Float), nil
		}
		return Int(n.Int), nil
	case *ast.String:
		return Str(n.Value), nil
	case *ast.Identifier:
		return evalIdentifier(n, env, s)
	case *ast.Let:
		return evalLet(n, env, s)
	case *ast.Function:
		return evalFunction(n, env, s)
	case *ast.Application:
		return evalApplication(n, env, s)
	case *ast.Conditional:
		return evalConditional(n, env, s)
	case *ast.Binary:
		return evalBinary(n, env, s)
	case *ast.Member:
		return evalMember(n, env, s)
	case *ast.Pipeline:
		return evalPipeline(n, env, s)
	case *ast.List:
		return evalList(n, env, s)
	case *ast.Range:
		return evalRange(n, env, s)
	case *ast.Dict:
		return evalDict(n, env, s)
	case *ast.Template:
		return evalTemplate(n, env, s)
	case *ast.Path:
		return evalPath(n, env, s)
	case *ast.FileTemplate:
		return evalFileTemplate(n, env, s)
	default:
		return Value{}, avonerr.Newf(node.Line(), "unhandled AST node %T", node)
	}
}

func evalIdentifier(n *ast.Identifier, env *Env, s *state) (Value, error) {
	v, ok := env.Get(n.Name)
	if !ok {
		return Value{}, avonerr.NewUnknownSymbol(n.Name, n.Line(), allNames(env))
	}
	// spec.md §4.4 "Identifier lookup": a zero-arity Builtin is invoked
	// immediately on lookup (e.g. `now`, `timestamp`, `os` is a plain
	// String constant rather than a Builtin so it needs no such check).
	if v.Kind == KindBuiltin && len(v.BuiltinArgs) == 0 && Arity(v.BuiltinName) == 0 {
		return ExecuteBuiltin(v.BuiltinName, nil, n.Line())
	}
	return v, nil
}

func allNames(env *Env) []string {
	names := env.Names()
	for name := range registryArity {
		names = append(names, name)
	}
	return names
}

func evalLet(n *ast.Let, env *Env, s *state) (Value, error) {
	if n.Name != "_" && env.Has(n.Name) {
		return Value{}, errScope(n.Line(), "identifier '"+n.Name+"' is already bound in this scope")
	}
	val, err := eval(n.Value, env, s)
	if err != nil {
		return Value{}, err
	}
	if val.Kind == KindFunction && val.FnName == "" {
		val.FnName = n.Name
	}
	if n.Name != "_" {
		if ierr := env.Insert(n.Name, val); ierr != nil {
			return Value{}, ierr
		}
		defer env.Remove(n.Name)
	}
	return eval(n.Body, env, s)
}

// ResolveDefaults repeatedly applies v with its own default value while v is
// still an unapplied Function, the mechanism spec.md §8 S6 describes as "the
// driver applies defaults": a top-level program like `\name ? "alice" \age ?
// "30" @...` evaluates to a curried Function, not a FileTemplate, until
// something supplies arguments. A front-end collecting file templates drives
// this resolution instead of requiring the caller to apply every parameter
// by hand. A parameter with no default expression cannot be resolved this
// way and surfaces as a type mismatch naming the missing parameter.
func ResolveDefaults(v Value, line int) (Value, error) {
	for v.Kind == KindFunction {
		if v.Default == nil {
			return Value{}, errType("argument for parameter '"+v.Param+"' (no default supplied)", "Function", line)
		}
		next, err := Apply(v, *v.Default, line, nil)
		if err != nil {
			return Value{}, err
		}
		v = next
	}
	return v, nil
}

func evalFunction(n *ast.Function, env *Env, s *state) (Value, error) {
	var def *Value
	if n.Default != nil {
		d, err := eval(n.Default, env, s)
		if err != nil {
			return Value{}, err
		}
		def = &d
	}
	return Value{
		Kind:    KindFunction,
		Param:   n.Param,
		Default: def,
		Body:    n.Body,
		Env:     env.Clone(),
	}, nil
}

func evalApplication(n *ast.Application, env *Env, s *state) (Value, error) {
	fn, err := eval(n.Fn, env, s)
	if err != nil {
		return Value{}, err
	}
	arg, err := eval(n.Arg, env, s)
	if err != nil {
		return Value{}, err
	}
	return Apply(fn, arg, n.Line(), s)
}

// Apply implements spec.md §6's `apply_function` entry point and §4.4's
// "Application" evaluation rule.
func Apply(fn, arg Value, line int, s *state) (Value, error) {
	switch fn.Kind {
	case KindFunction:
		if IsBuiltin(fn.Param) {
			return Value{}, errScope(line, "parameter '"+fn.Param+"' shadows builtin '"+fn.Param+"'")
		}
		callEnv := fn.Env.Clone()
		if err := callEnv.Insert(fn.Param, arg); err != nil {
			return Value{}, err
		}
		if s == nil {
			s = &state{}
		}
		return eval(fn.Body, callEnv, s)
	case KindBuiltin:
		args := append(append([]Value{}, fn.BuiltinArgs...), arg)
		if len(args) < Arity(fn.BuiltinName) {
			return Value{Kind: KindBuiltin, BuiltinName: fn.BuiltinName, BuiltinArgs: args}, nil
		}
		return ExecuteBuiltin(fn.BuiltinName, args, line)
	default:
		return Value{}, errType("function", fn.Kind.String(), line)
	}
}

func evalConditional(n *ast.Conditional, env *Env, s *state) (Value, error) {
	cond, err := eval(n.Cond, env, s)
	if err != nil {
		return Value{}, err
	}
	if cond.Kind != KindBool {
		return Value{}, errType("Bool", cond.Kind.String(), n.Line())
	}
	if cond.Bool {
		return eval(n.Then, env, s)
	}
	return eval(n.Else, env, s)
}

func evalBinary(n *ast.Binary, env *Env, s *state) (Value, error) {
	left, err := eval(n.Left, env, s)
	if err != nil {
		return Value{}, err
	}
	right, err := eval(n.Right, env, s)
	if err != nil {
		return Value{}, err
	}
	return applyBinary(n.Op, left, right, n.Line())
}

func evalMember(n *ast.Member, env *Env, s *state) (Value, error) {
	obj, err := eval(n.Object, env, s)
	if err != nil {
		return Value{}, err
	}
	if obj.Kind != KindDict {
		return Value{}, errType("Dict", obj.Kind.String(), n.Line())
	}
	v, ok := obj.Dict[n.Field]
	if !ok {
		return Value{}, avonerr.Newf(n.Line(), "dict has no key %q", n.Field)
	}
	return v, nil
}

func evalPipeline(n *ast.Pipeline, env *Env, s *state) (Value, error) {
	left, err := eval(n.Left, env, s)
	if err != nil {
		return Value{}, err
	}
	right, err := eval(n.Right, env, s)
	if err != nil {
		return Value{}, err
	}
	return Apply(right, left, n.Line(), s)
}

func evalList(n *ast.List, env *Env, s *state) (Value, error) {
	out := make([]Value, len(n.Elements))
	for i, e := range n.Elements {
		v, err := eval(e, env, s)
		if err != nil {
			return Value{}, err
		}
		out[i] = v
	}
	return List(out), nil
}

func evalDict(n *ast.Dict, env *Env, s *state) (Value, error) {
	m := make(map[string]Value, len(n.Pairs))
	for _, p := range n.Pairs {
		v, err := eval(p.Value, env, s)
		if err != nil {
			return Value{}, err
		}
		m[p.Key] = v
	}
	return Dict(m), nil
}

func evalRange(n *ast.Range, env *Env, s *state) (Value, error) {
	startV, err := eval(n.Start, env, s)
	if err != nil {
		return Value{}, err
	}
	endV, err := eval(n.End, env, s)
	if err != nil {
		return Value{}, err
	}
	step := int64(1)
	if n.Step != nil {
		stepV, err := eval(n.Step, env, s)
		if err != nil {
			return Value{}, err
		}
		if stepV.Kind != KindNumber {
			return Value{}, errType("Number", stepV.Kind.String(), n.Line())
		}
		step = stepV.Int
	}
	if startV.Kind != KindNumber || endV.Kind != KindNumber {
		return Value{}, errType("Number", "non-Number", n.Line())
	}
	if step == 0 {
		return Value{}, errArith(n.Line(), "range step must not be zero")
	}
	start, end := startV.Int, endV.Int
	var out []Value
	if step > 0 {
		for i := start; i <= end; i += step {
			out = append(out, Int(i))
		}
	} else {
		for i := start; i >= end; i += step {
			out = append(out, Int(i))
		}
	}
	return List(out), nil
}
