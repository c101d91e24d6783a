package platform

import (
	"context"
	"fmt"

	"github.com/robbyt/go-exprgraph/platform/graph"
)

// ParseResult holds the static dependencies discovered by Engine.Parse.
// All three sequences are ordered: the position of a plug in Inputs is the
// position of its value in the slice later passed to Execute, and the
// position of a plug in Outputs is the position of its result value.
type ParseResult struct {
	Inputs           []*graph.Plug
	Outputs          []*graph.Plug
	ContextVariables []string
}

// Engine is the contract every expression language adapter implements.
// A concrete engine is selected purely by language name via the registry;
// callers never inspect engine internals.
//
// Lifecycle per instance: Parse must succeed before Execute or Apply are
// meaningful, and re-parsing resets any compiled state. Calls on a single
// instance are sequenced by the owning expression's evaluation discipline;
// the engine itself is not required to be safe for concurrent use.
type Engine interface {
	// Parse inspects source against the owning node and reports the graph
	// inputs, outputs and context variables the expression depends on.
	// Failures are reported with ErrInvalidExpression (or ErrNotImplemented
	// when the engine omits parsing), never as silently empty sequences.
	Parse(node *graph.Node, source string) (*ParseResult, error)

	// Execute evaluates the parsed expression against the evaluation context
	// and the current input plug values, returning one result value per
	// declared output, in output order. Execute must not mutate graph state.
	Execute(ctx context.Context, evalCtx *graph.Context, inputs []*graph.Plug) ([]any, error)

	// Apply writes one previously computed result value into the output
	// plug's typed storage, coercing as the plug's kind demands. Values that
	// cannot be coerced fail with ErrTypeMismatch.
	Apply(plug *graph.Plug, value any) error
}

// UnimplementedEngine is an embeddable base providing a failing default for
// every Engine operation. Adapters embed it and override the operations they
// support; anything left alone fails with ErrNotImplemented instead of
// crashing or fabricating results.
type UnimplementedEngine struct{}

func (UnimplementedEngine) Parse(node *graph.Node, source string) (*ParseResult, error) {
	return nil, fmt.Errorf("Parse: %w", ErrNotImplemented)
}

func (UnimplementedEngine) Execute(
	ctx context.Context,
	evalCtx *graph.Context,
	inputs []*graph.Plug,
) ([]any, error) {
	return nil, fmt.Errorf("Execute: %w", ErrNotImplemented)
}

func (UnimplementedEngine) Apply(plug *graph.Plug, value any) error {
	return fmt.Errorf("Apply: %w", ErrNotImplemented)
}
