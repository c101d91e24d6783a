package platform_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

func TestUnimplementedEngine(t *testing.T) {
	t.Parallel()
	engine := platform.UnimplementedEngine{}
	node := graph.NewNode("test")
	out, err := node.AddOutput("out", graph.INT)
	require.NoError(t, err)

	_, err = engine.Parse(node, "1 + 1")
	require.Error(t, err, "Parse without an override should fail")
	assert.ErrorIs(t, err, platform.ErrNotImplemented, "Parse should fail with ErrNotImplemented")

	_, err = engine.Execute(context.Background(), graph.NewContext(), nil)
	require.Error(t, err, "Execute without an override should fail")
	assert.ErrorIs(t, err, platform.ErrNotImplemented, "Execute should fail with ErrNotImplemented")

	err = engine.Apply(out, int64(1))
	require.Error(t, err, "Apply without an override should fail")
	assert.ErrorIs(t, err, platform.ErrNotImplemented, "Apply should fail with ErrNotImplemented")
}

// partialEngine overrides only Parse; the embedded base must keep failing the
// other operations rather than crashing.
type partialEngine struct {
	platform.UnimplementedEngine
}

func (partialEngine) Parse(node *graph.Node, source string) (*platform.ParseResult, error) {
	return &platform.ParseResult{}, nil
}

func TestPartialEngineOverride(t *testing.T) {
	t.Parallel()
	var engine platform.Engine = partialEngine{}

	result, err := engine.Parse(graph.NewNode("test"), "")
	require.NoError(t, err, "overridden Parse should succeed")
	require.NotNil(t, result)
	assert.Empty(t, result.Inputs)
	assert.Empty(t, result.Outputs)
	assert.Empty(t, result.ContextVariables)

	_, err = engine.Execute(context.Background(), graph.NewContext(), nil)
	assert.ErrorIs(t, err, platform.ErrNotImplemented,
		"Execute should keep the embedded failing default")
}
