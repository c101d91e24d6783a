package exprgraph

import (
	"fmt"
	"log/slog"

	"github.com/robbyt/go-exprgraph/platform"
)

// Option configures an Expression during construction.
type Option func(*Expression) error

// WithLogHandler sets the slog handler used by the Expression and passed on
// to components it creates.
func WithLogHandler(handler slog.Handler) Option {
	return func(e *Expression) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		e.logHandler = handler
		return nil
	}
}

// WithRegistry sets the engine registry used to resolve language names,
// instead of the process-wide default.
func WithRegistry(registry *platform.Registry) Option {
	return func(e *Expression) error {
		if registry == nil {
			return fmt.Errorf("registry cannot be nil")
		}
		e.registry = registry
		return nil
	}
}

// WithDefaultLanguage sets the language assumed when SetExpression is called
// with an empty language tag.
func WithDefaultLanguage(language string) Option {
	return func(e *Expression) error {
		if language == "" {
			return fmt.Errorf("default language cannot be empty")
		}
		e.defaultLanguage = language
		return nil
	}
}
