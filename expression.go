package exprgraph

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/robbyt/go-exprgraph/internal/helpers"
	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

// DefaultLanguage is assumed when SetExpression is called with an empty
// language tag.
const DefaultLanguage = "risor"

// Expression binds expression text and a language tag to a graph node.
// It resolves the matching engine through a registry, drives Parse whenever
// the text or language changes, and drives Execute/Apply during evaluation.
//
// The stored (text, language) pair and the live engine are kept mutually
// consistent: a failed SetExpression discards the previous binding entirely
// rather than leaving a stale engine behind. Methods on a single Expression
// are expected to be sequenced by the owning node's evaluation discipline;
// they are not safe for concurrent use with each other.
type Expression struct {
	node            *graph.Node
	registry        *platform.Registry
	defaultLanguage string

	text     string
	language string
	engine   platform.Engine
	parsed   *platform.ParseResult

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an Expression for node with no expression set.
func New(node *graph.Node, opts ...Option) (*Expression, error) {
	if node == nil {
		return nil, fmt.Errorf("node is nil")
	}

	e := &Expression{
		node:            node,
		registry:        platform.DefaultRegistry,
		defaultLanguage: DefaultLanguage,
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying option: %w", err)
		}
	}
	e.logHandler, e.logger = helpers.SetupLogger(e.logHandler, "exprgraph", "Expression")
	return e, nil
}

// Node returns the graph node this expression is bound to.
func (e *Expression) Node() *graph.Node {
	return e.node
}

func (e *Expression) String() string {
	return fmt.Sprintf("Expression{%s %q}", e.language, e.text)
}

// SetExpression stores the (text, language) pair, rebinds to the matching
// engine via the registry, and re-runs Parse. An empty language selects the
// default. On failure the previous binding is discarded and the error is
// returned with its originating kind intact (ErrUnknownLanguage,
// ErrInvalidExpression, ErrNotImplemented).
func (e *Expression) SetExpression(text, language string) error {
	if language == "" {
		language = e.defaultLanguage
	}

	engine := e.engine
	if engine == nil || language != e.language {
		var err error
		engine, err = e.registry.NewEngine(language)
		if err != nil {
			e.clearBinding()
			return err
		}
	}

	parsed, err := engine.Parse(e.node, text)
	if err != nil {
		e.clearBinding()
		return fmt.Errorf("parsing %q expression: %w", language, err)
	}
	if parsed == nil {
		parsed = &platform.ParseResult{}
	}
	if err := e.validateParseResult(parsed); err != nil {
		e.clearBinding()
		return err
	}

	e.text = text
	e.language = language
	e.engine = engine
	e.parsed = parsed
	e.logger.Debug("expression set",
		"node", e.node.Name(),
		"language", language,
		"inputs", len(parsed.Inputs),
		"outputs", len(parsed.Outputs),
		"contextVariables", len(parsed.ContextVariables))
	return nil
}

// GetExpression returns the current (text, language) pair. Both are empty
// when no expression is set.
func (e *Expression) GetExpression() (text, language string) {
	return e.text, e.language
}

// Inputs returns the input plugs discovered by the last successful parse,
// in parameter-position order.
func (e *Expression) Inputs() []*graph.Plug {
	if e.parsed == nil {
		return nil
	}
	return slices.Clone(e.parsed.Inputs)
}

// Outputs returns the output plugs discovered by the last successful parse,
// in result-position order.
func (e *Expression) Outputs() []*graph.Plug {
	if e.parsed == nil {
		return nil
	}
	return slices.Clone(e.parsed.Outputs)
}

// ContextVariables returns the context variable names discovered by the last
// successful parse.
func (e *Expression) ContextVariables() []string {
	if e.parsed == nil {
		return nil
	}
	return slices.Clone(e.parsed.ContextVariables)
}

// Evaluate computes the expression against the evaluation context and the
// current input plug values, then writes each result into its output plug.
// The engine must return exactly one result per declared output; a count
// mismatch fails before any output is written. Errors from the engine
// propagate synchronously with their originating kind; nothing is retried.
func (e *Expression) Evaluate(ctx context.Context, evalCtx *graph.Context) error {
	if e.engine == nil || e.parsed == nil {
		return fmt.Errorf("%w: no expression set on node %q", platform.ErrExecution, e.node.Name())
	}

	results, err := e.engine.Execute(ctx, evalCtx, e.parsed.Inputs)
	if err != nil {
		return fmt.Errorf("evaluating %q expression: %w", e.language, err)
	}
	if len(results) != len(e.parsed.Outputs) {
		return fmt.Errorf(
			"%w: engine returned %d results for %d declared outputs",
			platform.ErrExecution, len(results), len(e.parsed.Outputs))
	}

	for i, out := range e.parsed.Outputs {
		if err := e.engine.Apply(out, results[i]); err != nil {
			return fmt.Errorf("writing output %q: %w", out.Name(), err)
		}
	}
	return nil
}

// validateParseResult checks that every reference the engine returned
// resolves against the owning node and that directions line up.
func (e *Expression) validateParseResult(parsed *platform.ParseResult) error {
	// Inputs may be either direction: reading back a previously computed
	// output is allowed, so only ownership is checked.
	for _, p := range parsed.Inputs {
		if p == nil || p.Node() != e.node {
			return fmt.Errorf(
				"%w: input reference does not belong to node %q",
				platform.ErrInvalidExpression, e.node.Name())
		}
	}
	for _, p := range parsed.Outputs {
		if p == nil || p.Node() != e.node {
			return fmt.Errorf(
				"%w: output reference does not belong to node %q",
				platform.ErrInvalidExpression, e.node.Name())
		}
		if p.Direction() != graph.Out {
			return fmt.Errorf(
				"%w: plug %q is not an output", platform.ErrInvalidExpression, p.Name())
		}
	}
	return nil
}

func (e *Expression) clearBinding() {
	e.text = ""
	e.language = ""
	e.engine = nil
	e.parsed = nil
}
