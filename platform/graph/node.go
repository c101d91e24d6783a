package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Node is a minimal stand-in for a dependency-graph node: a named owner of an
// ordered set of typed plugs. The embedding graph system supplies the real
// thing; expression engines only need this surface.
type Node struct {
	id    string
	name  string
	plugs map[string]*Plug
	order []string
}

// NewNode creates a node with no plugs.
func NewNode(name string) *Node {
	return &Node{
		id:    uuid.NewString(),
		name:  name,
		plugs: make(map[string]*Plug),
	}
}

// ID returns the node's unique identity, assigned at creation.
func (n *Node) ID() string {
	return n.id
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) String() string {
	return fmt.Sprintf("Node{%s}", n.name)
}

// AddInput adds an input plug of the given kind. Plug names are unique per
// node across both directions.
func (n *Node) AddInput(name string, kind Kind) (*Plug, error) {
	return n.addPlug(name, In, kind)
}

// AddOutput adds an output plug of the given kind.
func (n *Node) AddOutput(name string, kind Kind) (*Plug, error) {
	return n.addPlug(name, Out, kind)
}

func (n *Node) addPlug(name string, direction Direction, kind Kind) (*Plug, error) {
	if name == "" {
		return nil, fmt.Errorf("adding plug to node %q: %w", n.name, ErrEmptyKey)
	}
	if _, exists := n.plugs[name]; exists {
		return nil, fmt.Errorf("adding plug %q to node %q: %w", name, n.name, ErrDuplicatePlug)
	}

	p := &Plug{
		name:      name,
		direction: direction,
		kind:      kind,
		node:      n,
		value:     zeroValue(kind),
	}
	n.plugs[name] = p
	n.order = append(n.order, name)
	return p, nil
}

// Plug looks up a plug by name.
func (n *Node) Plug(name string) (*Plug, bool) {
	p, ok := n.plugs[name]
	return p, ok
}

// Plugs returns all plugs in the order they were added.
func (n *Node) Plugs() []*Plug {
	out := make([]*Plug, 0, len(n.order))
	for _, name := range n.order {
		out = append(out, n.plugs[name])
	}
	return out
}
