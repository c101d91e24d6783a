package graph

import (
	"fmt"
	"maps"
	"slices"
)

// Context is the key/value environment visible to an expression during
// evaluation. Insertion order is preserved so that the variable sequence
// reported by an engine's parse step lines up with iteration here.
type Context struct {
	values map[string]any
	order  []string
}

// NewContext creates an empty evaluation context.
func NewContext() *Context {
	return &Context{values: make(map[string]any)}
}

// Set stores a value under name, replacing any previous value. Empty names
// are rejected.
func (c *Context) Set(name string, value any) error {
	if name == "" {
		return ErrEmptyKey
	}
	if _, exists := c.values[name]; !exists {
		c.order = append(c.order, name)
	}
	c.values[name] = value
	return nil
}

// Get returns the value stored under name.
func (c *Context) Get(name string) (any, bool) {
	v, ok := c.values[name]
	return v, ok
}

// Names returns the variable names in insertion order.
func (c *Context) Names() []string {
	return slices.Clone(c.order)
}

// Values returns a copy of the environment as a plain map, suitable for
// handing to an interpreter.
func (c *Context) Values() map[string]any {
	return maps.Clone(c.values)
}

func (c *Context) String() string {
	return fmt.Sprintf("Context{%d vars}", len(c.values))
}
