package exprgraph_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-exprgraph"
	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

func TestLanguages(t *testing.T) {
	t.Parallel()
	languages := exprgraph.Languages()
	assert.Contains(t, languages, "risor")
	assert.Contains(t, languages, "starlark")
}

func TestFromRisorString(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("double")
	in, err := node.AddInput("x", graph.INT)
	require.NoError(t, err)
	out, err := node.AddOutput("y", graph.INT)
	require.NoError(t, err)

	e, err := exprgraph.FromRisorString(node, `parent["y"] = parent["x"] * 2`)
	require.NoError(t, err)

	text, language := e.GetExpression()
	assert.Equal(t, `parent["y"] = parent["x"] * 2`, text)
	assert.Equal(t, "risor", language)

	require.NoError(t, in.SetValue(21))
	require.NoError(t, e.Evaluate(context.Background(), graph.NewContext()))
	assert.Equal(t, int64(42), out.Value())
}

func TestFromStarlarkString(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("greet")
	in, err := node.AddInput("name", graph.STRING)
	require.NoError(t, err)
	out, err := node.AddOutput("greeting", graph.STRING)
	require.NoError(t, err)

	e, err := exprgraph.FromStarlarkString(node,
		`parent["greeting"] = "hello " + parent["name"] + "/" + context["take"]`)
	require.NoError(t, err)

	_, language := e.GetExpression()
	assert.Equal(t, "starlark", language)

	require.NoError(t, in.SetValue("world"))
	evalCtx := graph.NewContext()
	require.NoError(t, evalCtx.Set("take", "3"))
	require.NoError(t, e.Evaluate(context.Background(), evalCtx))
	assert.Equal(t, "hello world/3", out.Value())
}

func TestDefaultLanguageIsRisor(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("test")
	_, err := node.AddOutput("out", graph.INT)
	require.NoError(t, err)

	e, err := exprgraph.New(node)
	require.NoError(t, err)
	require.NoError(t, e.SetExpression(`parent["out"] = 1`, ""))

	_, language := e.GetExpression()
	assert.Equal(t, exprgraph.DefaultLanguage, language)
}

func TestSwitchingLanguagesRebindsEngine(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("test")
	out, err := node.AddOutput("out", graph.INT)
	require.NoError(t, err)

	e, err := exprgraph.New(node)
	require.NoError(t, err)

	require.NoError(t, e.SetExpression(`parent["out"] = 1`, "risor"))
	require.NoError(t, e.Evaluate(context.Background(), graph.NewContext()))
	assert.Equal(t, int64(1), out.Value())

	require.NoError(t, e.SetExpression(`parent["out"] = 2`, "starlark"))
	_, language := e.GetExpression()
	assert.Equal(t, "starlark", language)
	require.NoError(t, e.Evaluate(context.Background(), graph.NewContext()))
	assert.Equal(t, int64(2), out.Value())
}

func TestTypeMismatchIsDeterministic(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("test")
	_, err := node.AddOutput("count", graph.INT)
	require.NoError(t, err)

	e, err := exprgraph.FromRisorString(node, `parent["count"] = "nope"`)
	require.NoError(t, err, "the mismatch is a runtime property, parse succeeds")

	for range 3 {
		err = e.Evaluate(context.Background(), graph.NewContext())
		require.Error(t, err)
		assert.ErrorIs(t, err, platform.ErrTypeMismatch,
			"writing a string into an int plug must always raise a type mismatch")
	}
}

func TestFailingExpressionBlocksOutputs(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("test")
	in, err := node.AddInput("divisor", graph.INT)
	require.NoError(t, err)
	require.NoError(t, in.SetValue(0))
	out, err := node.AddOutput("out", graph.INT)
	require.NoError(t, err)
	require.NoError(t, out.SetValue(int64(10)))

	e, err := exprgraph.FromRisorString(node, `parent["out"] = 1 / parent["divisor"]`)
	require.NoError(t, err)

	err = e.Evaluate(context.Background(), graph.NewContext())
	require.Error(t, err)
	assert.ErrorIs(t, err, platform.ErrExecution,
		"the failure is reported with its originating kind")
	assert.Equal(t, int64(10), out.Value(), "a failing expression produces no value")
}
