// Package avon is the public embedding API named in spec.md §6: the
// engine entry points a front-end (CLI, REPL, task runner, or any other
// external collaborator) uses to run an Avon program end to end, mirroring
// the shape of the teacher's own top-level pipeline package that wires
// lexer → parser → evaluator behind a handful of named functions.
package avon

import (
	"github.com/pyrotek45/avon/internal/ast"
	"github.com/pyrotek45/avon/internal/avonerr"
	"github.com/pyrotek45/avon/internal/evaluator"
	"github.com/pyrotek45/avon/internal/lexer"
	"github.com/pyrotek45/avon/internal/parser"
	"github.com/pyrotek45/avon/internal/token"
)

// Env is re-exported so callers can build, inspect, and seed environments
// (e.g. overriding `args`) without reaching into internal/evaluator.
type Env = evaluator.Env

// Value is re-exported for the same reason: callers inspecting a result
// value (e.g. a REPL echoing it) need the type without an internal import.
type Value = evaluator.Value

// FilePair is one rendered (path, content) output of CollectFileTemplates.
type FilePair = evaluator.FilePair

// Tokenize implements spec.md §6 `tokenize(source) -> [Token] | Error`.
func Tokenize(source string) ([]token.Token, error) {
	return lexer.Tokenize(source)
}

// Parse implements spec.md §6 `parse(tokens) -> AST`.
func Parse(toks []token.Token) (ast.Node, error) {
	return parser.Parse(toks)
}

// ParseWithError implements spec.md §6's `parse_with_error` variant,
// identical to Parse in this implementation (see internal/parser).
func ParseWithError(toks []token.Token) (ast.Node, error) {
	return parser.ParseWithError(toks)
}

// Eval implements spec.md §6 `eval(program_expr, env, source) -> Value |
// Error`. source is accepted for interface symmetry with the spec but is
// not otherwise needed by this implementation's error paths, which carry
// their own line numbers.
func Eval(program ast.Node, env *Env, source string) (Value, error) {
	return evaluator.Eval(program, env)
}

// ApplyFunction implements spec.md §6 `apply_function(fn_value, arg_value,
// source, line) -> Value | Error`.
func ApplyFunction(fn, arg Value, source string, line int) (Value, error) {
	return evaluator.Apply(fn, arg, line, nil)
}

// CollectFileTemplates implements spec.md §6
// `collect_file_templates(value, source) -> [(path, content)] | Error`.
func CollectFileTemplates(v Value, source string) ([]FilePair, error) {
	return evaluator.CollectFileTemplates(v)
}

// InitialBuiltins implements spec.md §6 `initial_builtins() -> env`: the
// standard symbol table including `os` and `args=[]`. osName is the host
// OS string bound to the `os` constant; cliArgs seeds `args` (spec.md §6
// "Environment seeds the front-end is expected to provide").
func InitialBuiltins(osName string, cliArgs []string) *Env {
	return evaluator.InitialEnv(osName, cliArgs)
}

// Run is a convenience wrapper gluing Tokenize → Parse → Eval together
// for the common case (used by cmd/avon), returning the single
// avonerr.Error type on any stage's failure.
func Run(source string, env *Env) (Value, error) {
	toks, err := Tokenize(source)
	if err != nil {
		return Value{}, avonerr.New(0, err.Error())
	}
	prog, err := Parse(toks)
	if err != nil {
		return Value{}, avonerr.New(0, err.Error())
	}
	return Eval(prog, env, source)
}
