package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robbyt/go-exprgraph/platform/graph"
)

func TestPlugSetValueCoercion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		kind    graph.Kind
		input   any
		want    any
		wantErr bool
	}{
		{"bool", graph.BOOL, true, true, false},
		{"bool from int", graph.BOOL, 1, nil, true},
		{"int from int", graph.INT, 7, int64(7), false},
		{"int from int64", graph.INT, int64(7), int64(7), false},
		{"int from float", graph.INT, 7.5, nil, true},
		{"float from float", graph.FLOAT, 2.5, 2.5, false},
		{"float widened from int", graph.FLOAT, 2, 2.0, false},
		{"float widened from int64", graph.FLOAT, int64(2), 2.0, false},
		{"string", graph.STRING, "hello", "hello", false},
		{"string from int", graph.STRING, 42, nil, true},
		{"list", graph.LIST, []any{int64(1), "two"}, []any{int64(1), "two"}, false},
		{"list from string", graph.LIST, "not a list", nil, true},
		{"map", graph.MAP, map[string]any{"k": int64(1)}, map[string]any{"k": int64(1)}, false},
		{"map from list", graph.MAP, []any{}, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			node := graph.NewNode("test")
			plug, err := node.AddOutput("out", tt.kind)
			require.NoError(t, err)

			err = plug.SetValue(tt.input)
			if tt.wantErr {
				require.Error(t, err, "SetValue should reject %T for a %s plug", tt.input, tt.kind)
				assert.ErrorIs(t, err, graph.ErrTypeMismatch)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, plug.Value())
		})
	}
}

func TestPlugZeroValues(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("test")

	intPlug, err := node.AddInput("i", graph.INT)
	require.NoError(t, err)
	assert.Equal(t, int64(0), intPlug.Value())

	strPlug, err := node.AddInput("s", graph.STRING)
	require.NoError(t, err)
	assert.Equal(t, "", strPlug.Value())

	boolPlug, err := node.AddInput("b", graph.BOOL)
	require.NoError(t, err)
	assert.Equal(t, false, boolPlug.Value())
}

func TestPlugAccessors(t *testing.T) {
	t.Parallel()
	node := graph.NewNode("accessors")
	plug, err := node.AddInput("value", graph.FLOAT)
	require.NoError(t, err)

	assert.Equal(t, "value", plug.Name())
	assert.Equal(t, graph.In, plug.Direction())
	assert.Equal(t, graph.FLOAT, plug.Kind())
	assert.Same(t, node, plug.Node())
}
