// Package mocks provides testify mocks of the core contracts, for tests of
// code that embeds the expression system.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

// Engine is a mock implementation of platform.Engine.
type Engine struct {
	mock.Mock
}

// Parse is a mock implementation of the Parse method.
func (m *Engine) Parse(node *graph.Node, source string) (*platform.ParseResult, error) {
	args := m.Called(node, source)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*platform.ParseResult), args.Error(1)
}

// Execute is a mock implementation of the Execute method.
func (m *Engine) Execute(
	ctx context.Context,
	evalCtx *graph.Context,
	inputs []*graph.Plug,
) ([]any, error) {
	args := m.Called(ctx, evalCtx, inputs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]any), args.Error(1)
}

// Apply is a mock implementation of the Apply method.
func (m *Engine) Apply(plug *graph.Plug, value any) error {
	args := m.Called(plug, value)
	return args.Error(0)
}
