// Package ast defines the abstract syntax tree for Tiger programs.  The tree
// is produced by the parser and consumed by the escape analyzer, the semantic
// analyzer, and the IR generator.  Escape flags on variable declarations,
// for-loops, and parameters are the only parts of the tree that are mutated
// after parsing.
package ast

import "tigerc/report"

// Node is the abstract interface for all AST nodes.
type Node interface {
	// Span returns the text span of the node.
	Span() *report.TextSpan
}

// NodeBase is a utility base struct for all AST nodes.
type NodeBase struct {
	span *report.TextSpan
}

// NewNodeBaseOn creates a new node base with the given span.
func NewNodeBaseOn(span *report.TextSpan) NodeBase {
	return NodeBase{span: span}
}

// NewNodeBaseOver creates a new node base spanning over two spans.
func NewNodeBaseOver(start, end *report.TextSpan) NodeBase {
	return NodeBase{span: report.NewSpanOver(start, end)}
}

func (nb NodeBase) Span() *report.TextSpan {
	return nb.span
}
