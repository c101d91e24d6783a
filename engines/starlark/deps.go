package starlark

import (
	"fmt"

	"go.starlark.net/syntax"

	"github.com/robbyt/go-exprgraph/platform"
	"github.com/robbyt/go-exprgraph/platform/graph"
)

// reference is one parent[...] or context[...] subscript found in the syntax
// tree, in source order.
type reference struct {
	ident   string
	name    string
	written bool
}

// findReferences walks the parsed file and collects every subscript of the
// parent and context identifiers. Subscripts must be string literals;
// anything else fails with ErrInvalidExpression because the dependency set
// could not be discovered statically.
func findReferences(file *syntax.File) ([]reference, error) {
	// First pass: mark the index expressions that are assignment targets.
	// Augmented assignments (parent["x"] += 1) both read and write.
	writes := make(map[*syntax.IndexExpr]bool)
	reads := make(map[*syntax.IndexExpr]bool)
	syntax.Walk(file, func(n syntax.Node) bool {
		assign, ok := n.(*syntax.AssignStmt)
		if !ok {
			return true
		}
		markTargets(assign.LHS, assign.Op != syntax.EQ, writes, reads)
		return true
	})

	var refs []reference
	var walkErr error
	syntax.Walk(file, func(n syntax.Node) bool {
		if walkErr != nil {
			return false
		}
		index, ok := n.(*syntax.IndexExpr)
		if !ok {
			return true
		}
		ident, ok := index.X.(*syntax.Ident)
		if !ok || (ident.Name != parentKey && ident.Name != contextKey) {
			return true
		}

		name, ok := stringLiteral(index.Y)
		if !ok {
			walkErr = fmt.Errorf(
				"%w: subscript of %q must be a string literal",
				platform.ErrInvalidExpression, ident.Name)
			return false
		}

		if writes[index] {
			refs = append(refs, reference{ident: ident.Name, name: name, written: true})
		}
		if !writes[index] || reads[index] {
			refs = append(refs, reference{ident: ident.Name, name: name})
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}
	return refs, nil
}

// markTargets records the index expressions assigned to by an assignment
// LHS, descending through tuple and paren forms like
// parent["a"], parent["b"] = 1, 2.
func markTargets(e syntax.Expr, augmented bool, writes, reads map[*syntax.IndexExpr]bool) {
	switch e := e.(type) {
	case *syntax.IndexExpr:
		writes[e] = true
		if augmented {
			reads[e] = true
		}
	case *syntax.TupleExpr:
		for _, elem := range e.List {
			markTargets(elem, augmented, writes, reads)
		}
	case *syntax.ListExpr:
		for _, elem := range e.List {
			markTargets(elem, augmented, writes, reads)
		}
	case *syntax.ParenExpr:
		markTargets(e.X, augmented, writes, reads)
	}
}

// stringLiteral extracts the value of a string literal expression.
func stringLiteral(e syntax.Expr) (string, bool) {
	lit, ok := e.(*syntax.Literal)
	if !ok || lit.Token != syntax.STRING {
		return "", false
	}
	s, ok := lit.Value.(string)
	return s, ok
}

// resolveReferences folds the reference stream into an ordered ParseResult,
// resolving plug names against node. First appearance determines sequence
// order.
func resolveReferences(
	node *graph.Node,
	refs []reference,
) (*platform.ParseResult, []string, error) {
	result := &platform.ParseResult{}
	var outputNames []string
	seenInputs := make(map[string]bool)
	seenOutputs := make(map[string]bool)
	seenVars := make(map[string]bool)

	for _, ref := range refs {
		if ref.ident == contextKey {
			if ref.written {
				return nil, nil, fmt.Errorf(
					"%w: %s: %q", platform.ErrInvalidExpression, ErrContextWrite, ref.name)
			}
			if !seenVars[ref.name] {
				seenVars[ref.name] = true
				result.ContextVariables = append(result.ContextVariables, ref.name)
			}
			continue
		}

		plug, ok := node.Plug(ref.name)
		if !ok {
			return nil, nil, fmt.Errorf(
				"%w: node %q has no plug %q",
				platform.ErrInvalidExpression, node.Name(), ref.name)
		}
		if ref.written {
			if !seenOutputs[ref.name] {
				seenOutputs[ref.name] = true
				outputNames = append(outputNames, ref.name)
				result.Outputs = append(result.Outputs, plug)
			}
		} else if !seenInputs[ref.name] {
			seenInputs[ref.name] = true
			result.Inputs = append(result.Inputs, plug)
		}
	}

	return result, outputNames, nil
}
