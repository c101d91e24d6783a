// Package starlark implements the expression engine contract on top of the
// Starlark configuration language.
//
// Expressions read input plugs with parent["name"], write output plugs with
// parent["name"] = value, and read context variables with context["name"].
// Plug and variable references must be string literals so the dependencies
// can be discovered statically at parse time.
//
// Unlike interpreter runtimes with a global execution lock, starlark-go is
// safe for concurrent programs, so this engine takes no runtime lock; the
// per-instance sequencing discipline of the owning expression is enough.
package starlark

import (
	"context"
	"fmt"
	"log/slog"

	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/robbyt/go-exprgraph/internal/helpers"
	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

// Language is the name this engine registers under.
const Language = "starlark"

const (
	parentKey  = "parent"
	contextKey = "context"
)

func init() {
	platform.RegisterEngine(Language, func() platform.Engine {
		return New(nil)
	})
}

// Engine evaluates Starlark expressions against a graph node. Parse compiles
// the source to a Program once; Execute runs the program with fresh
// predeclared dicts on each call.
type Engine struct {
	platform.UnimplementedEngine

	program     *starlarkLib.Program
	outputNames []string

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates an unparsed Engine. A nil handler falls back to the default
// logger configuration.
func New(handler slog.Handler) *Engine {
	handler, logger := helpers.SetupLogger(handler, Language, "Engine")
	return &Engine{
		logHandler: handler,
		logger:     logger,
	}
}

func (e *Engine) String() string {
	return "starlark.Engine"
}

// Parse parses source, discovers the plug and context-variable references by
// walking the syntax tree, and compiles the file for later Execute calls.
// Any previously compiled state is discarded.
func (e *Engine) Parse(node *graph.Node, source string) (*platform.ParseResult, error) {
	logger := e.logger.WithGroup("Parse")
	e.program = nil
	e.outputNames = nil

	// Expressions are statement lists, not Bazel-style modules, so control
	// flow is allowed at top level and globals may be reassigned.
	opts := &syntax.FileOptions{
		TopLevelControl: true,
		While:           true,
		GlobalReassign:  true,
	}
	file, err := opts.Parse("<expression>", []byte(source), 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrInvalidExpression, err)
	}

	refs, err := findReferences(file)
	if err != nil {
		return nil, err
	}
	result, outputNames, err := resolveReferences(node, refs)
	if err != nil {
		return nil, err
	}

	isPredeclared := func(name string) bool {
		return name == parentKey || name == contextKey
	}
	program, err := starlarkLib.FileProgram(file, isPredeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrInvalidExpression, err)
	}

	e.program = program
	e.outputNames = outputNames
	logger.Debug("parse complete",
		"node", node.Name(),
		"inputs", len(result.Inputs),
		"outputs", len(result.Outputs),
		"contextVariables", len(result.ContextVariables))
	return result, nil
}

// Execute runs the compiled program with the current input plug values and
// evaluation context injected as the parent and context dicts, then reads
// the declared outputs back out of the parent dict.
func (e *Engine) Execute(
	ctx context.Context,
	evalCtx *graph.Context,
	inputs []*graph.Plug,
) ([]any, error) {
	logger := e.logger.WithGroup("Execute")
	if e.program == nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrExecution, ErrNotParsed)
	}

	inputValues := make(map[string]any, len(inputs))
	for _, p := range inputs {
		inputValues[p.Name()] = p.Value()
	}
	ctxValues := make(map[string]any)
	if evalCtx != nil {
		ctxValues = evalCtx.Values()
	}

	parentDict, err := toStarlarkDict(inputValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrExecution, err)
	}
	contextDict, err := toStarlarkDict(ctxValues)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrExecution, err)
	}
	predeclared := starlarkLib.StringDict{
		parentKey:  parentDict,
		contextKey: contextDict,
	}

	thread := &starlarkLib.Thread{
		Name: "expression",
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}
	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	defer stop()

	if _, err := e.program.Init(thread, predeclared); err != nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrExecution, err)
	}

	results := make([]any, 0, len(e.outputNames))
	for _, name := range e.outputNames {
		obj, found, err := parentDict.Get(starlarkLib.String(name))
		if err != nil || !found {
			return nil, fmt.Errorf(
				"%w: %s: %q", platform.ErrExecution, ErrOutputUnassigned, name)
		}
		v, err := fromStarlarkValue(obj)
		if err != nil {
			return nil, fmt.Errorf("%w: output %q: %s", platform.ErrExecution, name, err)
		}
		results = append(results, v)
	}

	logger.DebugContext(ctx, "execute complete", "results", len(results))
	return results, nil
}

// Apply writes one Execute result into the output plug's typed storage.
func (e *Engine) Apply(plug *graph.Plug, value any) error {
	if err := plug.SetValue(value); err != nil {
		return fmt.Errorf("applying starlark expression result: %w", err)
	}
	return nil
}
