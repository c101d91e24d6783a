package helpers

import (
	"log/slog"
	"os"
)

// SetupLogger creates a configured logger for a language adapter.
// A nil handler falls back to a text handler on stdout, grouped under the
// adapter's language name so log lines from different engines stay
// distinguishable.
//
// Returns the handler actually in use along with a logger created from it,
// so the caller can pass the handler on to sub-components.
func SetupLogger(handler slog.Handler, language string, groupName string) (slog.Handler, *slog.Logger) {
	if handler == nil {
		defaultHandler := slog.NewTextHandler(os.Stdout, nil)
		handler = defaultHandler.WithGroup(language)
		defaultLogger := slog.New(handler)
		defaultLogger.Warn("Handler is nil, using the default logger configuration.")
	}

	if groupName != "" {
		return handler, slog.New(handler.WithGroup(groupName))
	}
	return handler, slog.New(handler)
}
