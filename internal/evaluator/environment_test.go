package evaluator

import (
	"strconv"
	"testing"

	"github.com/pyrotek45/avon/internal/avonconfig"
)

func TestEnvInsertGetHas(t *testing.T) {
	e := NewEnv()
	if e.Has("x") {
		t.Fatal("fresh env should not have x")
	}
	if err := e.Insert("x", Int(5)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v, ok := e.Get("x")
	if !ok || v.Int != 5 {
		t.Errorf("got %v, %v", v, ok)
	}
	if !e.Has("x") {
		t.Error("expected x to be bound")
	}
}

func TestEnvRemoveStackDiscipline(t *testing.T) {
	e := NewEnv()
	_ = e.Insert("x", Int(1))
	e.Remove("x")
	if e.Has("x") {
		t.Error("expected x removed")
	}
}

func TestEnvCloneIsIndependentSnapshot(t *testing.T) {
	e := NewEnv()
	_ = e.Insert("x", Int(1))
	clone := e.Clone()
	_ = e.Insert("y", Int(2))
	if clone.Has("y") {
		t.Error("clone should not see bindings added to original after cloning")
	}
	if !clone.Has("x") {
		t.Error("clone should carry the pre-existing binding")
	}
}

func TestEnvInsertEnforcesMaxEntries(t *testing.T) {
	e := NewEnv()
	for i := 0; i < 10; i++ {
		if err := e.Insert(string(rune('a'+i)), Int(int64(i))); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if e.Len() != 10 {
		t.Errorf("len = %d", e.Len())
	}
	for i := e.Len(); i < avonconfig.MaxEnvEntries; i++ {
		if err := e.Insert("k"+strconv.Itoa(i), Int(int64(i))); err != nil {
			t.Fatalf("unexpected error at %d: %v", i, err)
		}
	}
	if err := e.Insert("one_too_many", Int(0)); err == nil {
		t.Errorf("expected bound-exceeded error past %d entries", avonconfig.MaxEnvEntries)
	}
}

func TestEnvInsertOverwriteDoesNotCountAsNewEntry(t *testing.T) {
	e := NewEnv()
	_ = e.Insert("x", Int(1))
	if err := e.Insert("x", Int(2)); err != nil {
		t.Fatalf("overwrite should not error: %v", err)
	}
	v, _ := e.Get("x")
	if v.Int != 2 {
		t.Errorf("got %d", v.Int)
	}
}

func TestUnionEnvMergesAndNilIsEmpty(t *testing.T) {
	a := NewEnv()
	_ = a.Insert("x", Int(1))
	out := unionEnv(a, nil)
	if !out.Has("x") {
		t.Error("expected x present")
	}
	b := NewEnv()
	_ = b.Insert("y", Int(2))
	out2 := unionEnv(a, b)
	if !out2.Has("x") || !out2.Has("y") {
		t.Errorf("names = %v", out2.Names())
	}
}

func TestEnvNamesListsAllBound(t *testing.T) {
	e := NewEnv()
	_ = e.Insert("a", Int(1))
	_ = e.Insert("b", Int(2))
	names := e.Names()
	if len(names) != 2 {
		t.Errorf("got %v", names)
	}
}
