// Command avon is the minimal driver named in SPEC_FULL.md §D: it reads a
// source file, evaluates it, collects any file templates the result value
// yields, and writes each (path, content) pair under --root. The full CLI
// front-end (REPL, task runner, watch mode) is out of scope per spec.md §1.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/pyrotek45/avon/pkg/avon"
)

func main() {
	root := flag.String("root", ".", "directory collected file templates are written relative to")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "usage: avon [--root DIR] SOURCE.avon")
		os.Exit(2)
	}

	if err := run(args[0], *root, os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(sourcePath, root string, cliArgs []string) error {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return err
	}

	env := avon.InitialBuiltins(runtime.GOOS, cliArgs)
	result, err := avon.Run(string(data), env)
	if err != nil {
		return err
	}

	pairs, err := avon.CollectFileTemplates(result, string(data))
	if err != nil {
		return err
	}

	for _, p := range pairs {
		dest := filepath.Join(root, p.Path)
		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(dest, []byte(p.Content), 0o644); err != nil {
			return err
		}
		fmt.Println(dest)
	}
	return nil
}
