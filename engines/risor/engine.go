// Package risor implements the expression engine contract on top of the
// Risor scripting language.
//
// Expressions read input plugs with parent["name"], write output plugs with
// parent["name"] = value, and read context variables with context["name"].
// Plug and variable references must be string literals so the dependencies
// can be discovered statically at parse time.
package risor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	risorLib "github.com/risor-io/risor"
	risorCompiler "github.com/risor-io/risor/compiler"
	risorErrors "github.com/risor-io/risor/errz"
	risorParser "github.com/risor-io/risor/parser"

	"github.com/robbyt/go-exprgraph/internal/depscan"
	"github.com/robbyt/go-exprgraph/internal/helpers"
	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
	"github.com/robbyt/go-exprgraph/platform/interplock"
)

// Language is the name this engine registers under.
const Language = "risor"

const (
	parentKey  = "parent"
	contextKey = "context"
)

// runtimeLock serializes all entry into the Risor runtime, across every
// engine instance in the process. Native graph state is always gathered
// before the lock is taken, and the lock is never held across a return into
// caller code.
var runtimeLock = interplock.New()

func init() {
	platform.RegisterEngine(Language, func() platform.Engine {
		return New(nil)
	})
}

// Engine evaluates Risor expressions against a graph node. Parse compiles
// the source once; Execute runs the compiled code with fresh globals on each
// call.
type Engine struct {
	platform.UnimplementedEngine

	code        *risorCompiler.Code
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
	return "risor.Engine"
}

// Parse validates source with the Risor parser, discovers the plug and
// context-variable references, and compiles the source for later Execute
// calls. Any previously compiled state is discarded.
func (e *Engine) Parse(node *graph.Node, source string) (*platform.ParseResult, error) {
	logger := e.logger.WithGroup("Parse")
	e.code = nil
	e.outputNames = nil

	// Syntax check and compile happen inside the runtime, under its lock.
	var code *risorCompiler.Code
	err := runtimeLock.With(func() error {
		ast, err := risorParser.Parse(context.Background(), source)
		if err != nil {
			errMsg := err.Error()
			var friendlyErr risorErrors.FriendlyError
			if errors.As(err, &friendlyErr) {
				errMsg = friendlyErr.FriendlyErrorMessage()
			}
			return fmt.Errorf("%w: %s", platform.ErrInvalidExpression, errMsg)
		}

		globalNames := append(risorLib.NewConfig().GlobalNames(), parentKey, contextKey)
		code, err = risorCompiler.Compile(ast, risorCompiler.WithGlobalNames(globalNames))
		if err != nil {
			return fmt.Errorf("%w: %s", platform.ErrInvalidExpression, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result, outputNames, err := resolveReferences(node, source)
	if err != nil {
		return nil, err
	}

	e.code = code
	e.outputNames = outputNames
	logger.Debug("parse complete",
		"node", node.Name(),
		"inputs", len(result.Inputs),
		"outputs", len(result.Outputs),
		"contextVariables", len(result.ContextVariables))
	return result, nil
}

// resolveReferences scans source for parent/context subscripts and resolves
// plug references against node. First appearance determines sequence order;
// repeated references are folded.
func resolveReferences(
	node *graph.Node,
	source string,
) (*platform.ParseResult, []string, error) {
	refs, err := depscan.Scan(source, parentKey, contextKey)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %s", platform.ErrInvalidExpression, err)
	}

	result := &platform.ParseResult{}
	var outputNames []string
	seenInputs := make(map[string]bool)
	seenOutputs := make(map[string]bool)
	for _, ref := range refs[parentKey] {
		plug, ok := node.Plug(ref.Name)
		if !ok {
			return nil, nil, fmt.Errorf(
				"%w: node %q has no plug %q",
				platform.ErrInvalidExpression, node.Name(), ref.Name)
		}
		if ref.Written {
			if !seenOutputs[ref.Name] {
				seenOutputs[ref.Name] = true
				outputNames = append(outputNames, ref.Name)
				result.Outputs = append(result.Outputs, plug)
			}
			continue
		}
		if !seenInputs[ref.Name] {
			seenInputs[ref.Name] = true
			result.Inputs = append(result.Inputs, plug)
		}
	}

	seenVars := make(map[string]bool)
	for _, ref := range refs[contextKey] {
		if ref.Written {
			return nil, nil, fmt.Errorf(
				"%w: %s: %q", platform.ErrInvalidExpression, ErrContextWrite, ref.Name)
		}
		if !seenVars[ref.Name] {
			seenVars[ref.Name] = true
			result.ContextVariables = append(result.ContextVariables, ref.Name)
		}
	}

	return result, outputNames, nil
}

// Execute runs the compiled expression. Input plug values and the evaluation
// context are snapshotted into plain Go values before the runtime lock is
// taken; the lock is held only across the interpreter call itself.
func (e *Engine) Execute(
	ctx context.Context,
	evalCtx *graph.Context,
	inputs []*graph.Plug,
) ([]any, error) {
	logger := e.logger.WithGroup("Execute")
	if e.code == nil {
		return nil, fmt.Errorf("%w: %s", platform.ErrExecution, ErrNotParsed)
	}

	// Native graph state is read outside the lock.
	inputValues := make(map[string]any, len(inputs))
	for _, p := range inputs {
		inputValues[p.Name()] = p.Value()
	}
	ctxValues := make(map[string]any)
	if evalCtx != nil {
		ctxValues = evalCtx.Values()
	}

	results := make([]any, 0, len(e.outputNames))
	err := runtimeLock.With(func() error {
		parentMap, err := toRisorMap(inputValues)
		if err != nil {
			return fmt.Errorf("%w: %s", platform.ErrExecution, err)
		}
		contextMap, err := toRisorMap(ctxValues)
		if err != nil {
			return fmt.Errorf("%w: %s", platform.ErrExecution, err)
		}

		_, err = risorLib.EvalCode(ctx, e.code,
			risorLib.WithGlobal(parentKey, parentMap),
			risorLib.WithGlobal(contextKey, contextMap),
		)
		if err != nil {
			return fmt.Errorf("%w: %s", platform.ErrExecution, err)
		}

		// Collect the values the script assigned into parent, in output
		// order.
		assigned := parentMap.Value()
		for _, name := range e.outputNames {
			obj, ok := assigned[name]
			if !ok {
				return fmt.Errorf(
					"%w: %s: %q", platform.ErrExecution, ErrOutputUnassigned, name)
			}
			v, err := fromRisorValue(obj)
			if err != nil {
				return fmt.Errorf("%w: output %q: %s", platform.ErrExecution, name, err)
			}
			results = append(results, v)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.DebugContext(ctx, "execute complete", "results", len(results))
	return results, nil
}

// Apply writes one Execute result into the output plug's typed storage.
func (e *Engine) Apply(plug *graph.Plug, value any) error {
	if err := plug.SetValue(value); err != nil {
		return fmt.Errorf("applying risor expression result: %w", err)
	}
	return nil
}
