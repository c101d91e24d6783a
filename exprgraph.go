// Package exprgraph embeds pluggable expression evaluation inside a
// dependency-graph node system. An Expression owns a piece of expression
// text plus a language tag; the matching language engine turns the text into
// a static set of plug and context-variable dependencies at parse time, and
// into per-evaluation results that are written back into typed plug storage.
//
// Language engines are selected by name through a process-wide registry.
// This package links the Risor and Starlark engines, which register
// themselves at load time; additional languages register through
// platform.RegisterEngine.
package exprgraph

import (
	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"

	risorEngine "github.com/robbyt/go-exprgraph/engines/risor"
	starlarkEngine "github.com/robbyt/go-exprgraph/engines/starlark"
)

// Languages returns the names of the expression languages available to
// Expressions created through this package, in registration order. This is
// the Expression-level view; an Expression created with a custom registry
// resolves names against that registry instead, so the two lists are not
// guaranteed to agree.
func Languages() []string {
	return platform.RegisteredEngines()
}

// FromRisorString creates an Expression on node from a Risor expression.
func FromRisorString(node *graph.Node, text string, opts ...Option) (*Expression, error) {
	e, err := New(node, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.SetExpression(text, risorEngine.Language); err != nil {
		return nil, err
	}
	return e, nil
}

// FromStarlarkString creates an Expression on node from a Starlark
// expression.
func FromStarlarkString(node *graph.Node, text string, opts ...Option) (*Expression, error) {
	e, err := New(node, opts...)
	if err != nil {
		return nil, err
	}
	if err := e.SetExpression(text, starlarkEngine.Language); err != nil {
		return nil, err
	}
	return e, nil
}
