package evaluator

import (
	"fmt"
	"sync/atomic"

	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
)

// spyCounter is the process-wide auto-numbering counter `spy` uses
// (spec.md §4.6; confirmed against original_source/src/eval/builtins/debug.rs
// as "a simple incrementing counter printed alongside the value and
// label").
var spyCounter int64

// execDebug implements the debug/assert category.
func execDebug(name string, args []Value, line int) (Value, error) {
	switch name {
	case "not":
		if err := wantKind(args[0], KindBool, line); err != nil {
			return Value{}, err
		}
		return Bool(!args[0].Bool), nil
	case "assert":
		if err := wantKind(args[0], KindBool, line); err != nil {
			return Value{}, err
		}
		if !args[0].Bool {
			return Value{}, avonerr.Newf(line, "assertion failed")
		}
		return args[1], nil
	case "error":
		msg, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		return Value{}, avonerr.New(line, msg)
	case "trace":
		label, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		fmt.Printf("[trace:%s] %s\n", label, display(args[1]))
		return args[1], nil
	case "debug":
		label, err := asString(args[0], line)
		if err != nil {
			return Value{}, err
		}
		fmt.Printf("[debug:%s] %s\n", label, display(args[1]))
		return args[1], nil
	case "spy":
		n := atomic.AddInt64(&spyCounter, 1)
		fmt.Printf("[spy #%d] %s\n", n, display(args[0]))
		return args[0], nil
	case "tap":
		// tap runs fn purely for its side effect and always returns the
		// original value, even if fn's own return differs (confirmed
		// against original_source/src/eval/builtins/debug.rs).
		if _, err := Apply(args[0], args[1], line, nil); err != nil {
			return Value{}, err
		}
		return args[1], nil
	default:
		return Value{}, avonerr.Newf(line, "unimplemented debug builtin %q", name)
	}
}

func display(v Value) string {
	return ToDisplayString(v, 0, avonconfig.MaxStringifyDepth, avonconfig.MaxDictStringifyEntries)
}
