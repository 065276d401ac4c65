// Package ast defines the typed intermediate representation (C6) every
// downstream pass (resolver, inferencer, CFG builder) consumes: Expression,
// Reference, and Declaration node variants, each owning its children and
// carrying a precise core.Loc.
package ast

import "github.com/sorbet/sorbet-sub003/core"

// Node is the common interface every AST variant implements: it carries a
// source Loc and can be walked generically.
type Node interface {
	Loc() core.Loc
	nodeTag() string
}

// Expression is satisfied by every expression-category node (leaves,
// composites) — the bulk of the tree.
type Expression interface {
	Node
	isExpression()
}

// Reference is satisfied by nodes that name a binding without themselves
// being a full expression production in the original grammar (locals,
// unresolved idents). In this IR references also implement Expression,
// since every place a Reference can appear, an Expression is expected.
type Reference interface {
	Expression
	isReference()
}

// Declaration is satisfied by ClassDef and MethodDef: top-level or
// nested definitions that carry a SymbolRef.
type Declaration interface {
	Node
	isDeclaration()
	Sym() core.SymbolRef
}

// base is embedded by every concrete node to provide Loc() and the Node tag.
type base struct {
	loc core.Loc
	tag string
}

func (b base) Loc() core.Loc   { return b.loc }
func (b base) nodeTag() string { return b.tag }

func mkBase(tag string, loc core.Loc) base { return base{loc: loc, tag: tag} }

// Walk traverses n in depth-first pre/post order, calling in at node entry
// (skipping the subtree if in returns false) and out at node exit. Mirrors
// the teacher's node.Walk shape for AST traversal.
func Walk(n Node, in func(Node) bool, out func(Node)) {
	if n == nil {
		return
	}
	if in != nil && !in(n) {
		return
	}
	for _, child := range Children(n) {
		Walk(child, in, out)
	}
	if out != nil {
		out(n)
	}
}
