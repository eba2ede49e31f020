package evaluator

import (
	"fmt"

	"github.com/pyrotek45/avon/internal/avonconfig"
	"github.com/pyrotek45/avon/internal/avonerr"
)

func errBoundEnv() *avonerr.Error {
	return avonerr.NewBoundExceeded(0, fmt.Sprintf("symbol table exceeds %d entries", avonconfig.MaxEnvEntries))
}

func errDepth(line int) *avonerr.Error {
	return avonerr.NewBoundExceeded(line, fmt.Sprintf("evaluation depth exceeds %d", avonconfig.MaxEvalDepth))
}

func errSteps(line int) *avonerr.Error {
	return avonerr.NewBoundExceeded(line, fmt.Sprintf("evaluation steps exceed %d", avonconfig.MaxEvalSteps))
}

func errType(expected, found string, line int) *avonerr.Error {
	return avonerr.NewTypeMismatch(expected, found, line)
}

func errScope(line int, msg string) *avonerr.Error {
	return avonerr.NewScopeError(line, msg)
}

func errArith(line int, msg string) *avonerr.Error {
	return avonerr.NewArithmeticError(line, msg)
}
