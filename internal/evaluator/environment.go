package evaluator

import "github.com/pyrotek45/avon/internal/avonconfig"

// Env is a shared-immutable environment handle (spec.md §3 "Environment",
// §9 "Environment sharing without garbage cycles"): a mapping from
// identifier to Value. Unlike the teacher's environment.go, which chains
// child scopes to a parent pointer and walks the chain on lookup, Avon's
// spec is explicit that a `let` binding is inserted and removed by stack
// discipline on the *same* map, and that closures capture a one-time
// snapshot clone rather than a link back to a live parent. A flat
// map[string]Value is the literal reading of that description: no parent
// chain, just clone-on-capture and clone-on-apply.
type Env struct {
	vars map[string]Value
}

// NewEnv returns an empty environment.
func NewEnv() *Env {
	return &Env{vars: make(map[string]Value)}
}

// Clone returns a new Env holding a shallow copy of e's bindings — the
// "clone the snapshot once" operation spec.md requires at function
// construction and at application time.
func (e *Env) Clone() *Env {
	cp := make(map[string]Value, len(e.vars))
	for k, v := range e.vars {
		cp[k] = v
	}
	return &Env{vars: cp}
}

// Get looks up name, returning ok=false if absent.
func (e *Env) Get(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

// Has reports whether name is currently bound.
func (e *Env) Has(name string) bool {
	_, ok := e.vars[name]
	return ok
}

// Insert binds name to v, growing the map in place (used by `let`'s
// stack-discipline push and by function application's single-parameter
// bind). Returns a bound-exceeded error if MaxEnvEntries would be
// exceeded (spec.md §4.4 "Additional memory guard").
func (e *Env) Insert(name string, v Value) error {
	if _, exists := e.vars[name]; !exists && len(e.vars) >= avonconfig.MaxEnvEntries {
		return errBoundEnv()
	}
	e.vars[name] = v
	return nil
}

// Remove deletes name from e, the stack-discipline pop matching a `let`'s
// Insert on entry (spec.md §3 "Environment").
func (e *Env) Remove(name string) {
	delete(e.vars, name)
}

// Len returns the number of bound names.
func (e *Env) Len() int {
	return len(e.vars)
}

// Names returns every bound identifier, used to build unknown-symbol typo
// suggestions.
func (e *Env) Names() []string {
	out := make([]string, 0, len(e.vars))
	for k := range e.vars {
		out = append(out, k)
	}
	return out
}

// unionEnv merges two captured environments, used by Template+Template
// and Path+Path concatenation (spec.md §4.4: "unions captured symbol
// tables"). nil operands are treated as empty.
func unionEnv(a, b *Env) *Env {
	out := NewEnv()
	if a != nil {
		for k, v := range a.vars {
			out.vars[k] = v
		}
	}
	if b != nil {
		for k, v := range b.vars {
			out.vars[k] = v
		}
	}
	return out
}
