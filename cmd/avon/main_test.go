package main

import (
	"os"
	"path/filepath"
	"testing"
)

func TestRunWritesCollectedFileTemplates(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "site.avon")
	root := filepath.Join(dir, "out")

	src := "\\name ? \"alice\"\n@pages/{name}.txt {\"Hello, {name}!\"}"
	if err := os.WriteFile(srcPath, []byte(src), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := run(srcPath, root, nil); err != nil {
		t.Fatalf("run returned error: %v", err)
	}

	written := filepath.Join(root, "pages", "alice.txt")
	data, err := os.ReadFile(written)
	if err != nil {
		t.Fatalf("expected output file: %v", err)
	}
	if string(data) != "Hello, alice!" {
		t.Errorf("got %q", string(data))
	}
}

func TestRunMissingSourceFileIsError(t *testing.T) {
	dir := t.TempDir()
	err := run(filepath.Join(dir, "missing.avon"), dir, nil)
	if err == nil {
		t.Fatal("expected error for missing source file")
	}
}

func TestRunEvaluationErrorPropagates(t *testing.T) {
	dir := t.TempDir()
	srcPath := filepath.Join(dir, "bad.avon")
	if err := os.WriteFile(srcPath, []byte("1 + "), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := run(srcPath, dir, nil); err == nil {
		t.Fatal("expected parse error to propagate")
	}
}
