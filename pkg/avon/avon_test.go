package avon

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pyrotek45/avon/internal/evaluator"
)

func TestRunEndToEndArithmetic(t *testing.T) {
	env := InitialBuiltins("linux", nil)
	v, err := Run("1 + 2 * 3", env)
	require.NoError(t, err)
	require.Equal(t, int64(7), v.Int)
}

func TestRunEndToEndFileTemplateCollectionThroughPublicAPI(t *testing.T) {
	env := InitialBuiltins("linux", nil)
	src := "\\name ? \"alice\" \\age ? \"30\"\n@tmp/{name}_{age}.txt {\"Name: {name}, Age: {age}\"}"
	v, err := Run(src, env)
	require.NoError(t, err)
	pairs, err := CollectFileTemplates(v, src)
	require.NoError(t, err)
	require.Len(t, pairs, 1)
	require.Equal(t, "tmp/alice_30.txt", pairs[0].Path)
	require.Equal(t, "Name: alice, Age: 30", pairs[0].Content)
}

func TestRunParseErrorSurfaces(t *testing.T) {
	env := InitialBuiltins("linux", nil)
	_, err := Run("let x = in x", env)
	require.Error(t, err)
}

func TestApplyFunctionPublicAPI(t *testing.T) {
	env := InitialBuiltins("linux", nil)
	fnVal, err := Run(`\x x + 1`, env)
	require.NoError(t, err)
	result, err := ApplyFunction(fnVal, evaluator.Int(10), "", 0)
	require.NoError(t, err)
	require.Equal(t, int64(11), result.Int)
}

func TestInitialBuiltinsSeedsOsAndArgs(t *testing.T) {
	env := InitialBuiltins("darwin", []string{"a", "b"})
	osVal, ok := env.Get("os")
	require.True(t, ok)
	require.Equal(t, "darwin", osVal.Str)

	argsVal, ok := env.Get("args")
	require.True(t, ok)
	require.Len(t, argsVal.List, 2)
	require.Equal(t, "a", argsVal.List[0].Str)
	require.Equal(t, "b", argsVal.List[1].Str)
}
