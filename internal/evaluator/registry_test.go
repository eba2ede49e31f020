package evaluator

import (
	"strings"
	"testing"
)

func TestIsBuiltinKnownAndUnknown(t *testing.T) {
	if !IsBuiltin("map") {
		t.Error("map should be a builtin")
	}
	if IsBuiltin("not_a_real_builtin") {
		t.Error("unregistered name reported as builtin")
	}
}

func TestArityMatchesRegistrationAndUnknownIsNegativeOne(t *testing.T) {
	cases := map[string]int{
		"concat": 2, "neg": 1, "now": 0, "fold": 3, "csv_parse": 2,
	}
	for name, want := range cases {
		if got := Arity(name); got != want {
			t.Errorf("Arity(%q) = %d, want %d", name, got, want)
		}
	}
	if got := Arity("nope"); got != -1 {
		t.Errorf("Arity(unknown) = %d, want -1", got)
	}
}

func TestExecuteBuiltinUnregisteredNameErrors(t *testing.T) {
	_, err := ExecuteBuiltin("definitely_not_registered", nil, 0)
	if err == nil {
		t.Fatal("expected error for unregistered builtin")
	}
}

func TestExecuteBuiltinDispatchesToCategory(t *testing.T) {
	v, err := ExecuteBuiltin("upper", []Value{Str("ab")}, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.Str != "AB" {
		t.Errorf("got %q", v.Str)
	}
}

func TestExecuteBuiltinWrapsErrorWithNameContext(t *testing.T) {
	_, err := ExecuteBuiltin("neg", []Value{Str("x")}, 0)
	if err == nil {
		t.Fatal("expected type-mismatch error")
	}
	if !strings.Contains(err.Error(), "neg: ") {
		t.Errorf("error not prefixed with builtin name: %v", err)
	}
}

func TestInitialEnvSeedsEveryRegisteredBuiltin(t *testing.T) {
	env := InitialEnv("linux", nil)
	for name := range registryArity {
		v, ok := env.Get(name)
		if !ok {
			t.Fatalf("builtin %q not seeded in initial env", name)
		}
		if v.Kind != KindBuiltin || v.BuiltinName != name {
			t.Errorf("builtin %q seeded incorrectly: %+v", name, v)
		}
	}
}

func TestInitialEnvSeedsOsAndArgs(t *testing.T) {
	env := InitialEnv("plan9", []string{"x", "y", "z"})
	osVal, ok := env.Get("os")
	if !ok || osVal.Str != "plan9" {
		t.Errorf("os got %+v", osVal)
	}
	argsVal, ok := env.Get("args")
	if !ok || len(argsVal.List) != 3 {
		t.Fatalf("args got %+v", argsVal)
	}
	if argsVal.List[0].Str != "x" || argsVal.List[2].Str != "z" {
		t.Errorf("args contents got %+v", argsVal.List)
	}
}

func TestInitialEnvWithNilArgsIsEmptyList(t *testing.T) {
	env := InitialEnv("linux", nil)
	argsVal, ok := env.Get("args")
	if !ok {
		t.Fatal("args not seeded")
	}
	if len(argsVal.List) != 0 {
		t.Errorf("expected empty args list, got %+v", argsVal.List)
	}
}
