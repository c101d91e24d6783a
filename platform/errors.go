package platform

import (
	"errors"

	"github.com/robbyt/go-exprgraph/platform/graph"
)

var (
	// ErrUnknownLanguage is returned by registry lookups for a language name
	// that no engine factory has been registered under.
	ErrUnknownLanguage = errors.New("unknown expression language")

	// ErrNotImplemented is returned by engine operations the concrete engine
	// does not provide. Engines fail loudly rather than returning empty
	// results for operations they omit.
	ErrNotImplemented = errors.New("engine operation not implemented")

	// ErrInvalidExpression is returned by Parse when the expression text is
	// rejected, syntactically or semantically.
	ErrInvalidExpression = errors.New("invalid expression")

	// ErrExecution is returned by Execute when evaluation of a previously
	// parsed expression fails at runtime.
	ErrExecution = errors.New("expression execution failed")

	// ErrTypeMismatch is returned by Apply when a result value cannot be
	// coerced into the output plug's typed storage.
	ErrTypeMismatch = graph.ErrTypeMismatch
)
