package graph

import (
	"fmt"
)

// Plug is a typed input or output slot on a Node. Engines receive plugs as
// lightweight handles: they may read values and (for outputs) write values,
// but they never own the plug or the node behind it.
type Plug struct {
	name      string
	direction Direction
	kind      Kind
	node      *Node
	value     any
}

func (p *Plug) Name() string {
	return p.name
}

func (p *Plug) Direction() Direction {
	return p.direction
}

func (p *Plug) Kind() Kind {
	return p.kind
}

// Node returns the node that owns this plug.
func (p *Plug) Node() *Node {
	return p.node
}

// Value returns the current typed storage. The zero value of the plug's kind
// is returned before any SetValue call.
func (p *Plug) Value() any {
	return p.value
}

func (p *Plug) String() string {
	return fmt.Sprintf("Plug{%s.%s %s %s}", p.node.Name(), p.name, p.direction, p.kind)
}

// SetValue writes v into the plug's typed storage, coercing where the kind
// allows it (numeric widening into float plugs). Values that cannot be
// represented by the plug's kind fail with ErrTypeMismatch.
func (p *Plug) SetValue(v any) error {
	converted, err := coerce(p.kind, v)
	if err != nil {
		return fmt.Errorf("plug %q: %w", p.name, err)
	}
	p.value = converted
	return nil
}

// coerce converts v to the Go representation of kind, or fails with
// ErrTypeMismatch.
func coerce(kind Kind, v any) (any, error) {
	switch kind {
	case BOOL:
		if b, ok := v.(bool); ok {
			return b, nil
		}
	case INT:
		switch n := v.(type) {
		case int:
			return int64(n), nil
		case int32:
			return int64(n), nil
		case int64:
			return n, nil
		}
	case FLOAT:
		switch n := v.(type) {
		case float64:
			return n, nil
		case float32:
			return float64(n), nil
		case int:
			return float64(n), nil
		case int32:
			return float64(n), nil
		case int64:
			return float64(n), nil
		}
	case STRING:
		if s, ok := v.(string); ok {
			return s, nil
		}
	case LIST:
		if l, ok := v.([]any); ok {
			return l, nil
		}
	case MAP:
		if m, ok := v.(map[string]any); ok {
			return m, nil
		}
	default:
		return nil, fmt.Errorf("%w: unknown plug kind %q", ErrTypeMismatch, kind)
	}
	return nil, fmt.Errorf("%w: cannot store %T in a %s plug", ErrTypeMismatch, v, kind)
}

// zeroValue returns the initial storage for a kind.
func zeroValue(kind Kind) any {
	switch kind {
	case BOOL:
		return false
	case INT:
		return int64(0)
	case FLOAT:
		return float64(0)
	case STRING:
		return ""
	case LIST:
		return []any(nil)
	case MAP:
		return map[string]any(nil)
	}
	return nil
}
