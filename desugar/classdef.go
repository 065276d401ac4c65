package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// classDef lowers `class C < S; body; end` per §4.5.9. A missing
// superclass uses the well-known `<todo>` placeholder class.
func (t *Translator) classDef(n parser.Node) ast.Expression {
	loc := n.Loc()
	nameNode := n.Field("name")
	nameExpr := t.expr(nameNode)
	nameRef := t.classConstName(nameNode)

	sym := t.gs.EnterClassSymbol(t.currentOwner(), nameRef)

	declLoc := core.Loc{File: loc.File, Begin: loc.Begin, End: nameNode.Loc().End}
	var ancestors []ast.Expression
	if sc := n.Field("superclass"); sc != nil {
		ancestors = []ast.Expression{t.expr(sc)}
		declLoc = declLoc.Join(sc.Loc())
	} else {
		ancestors = []ast.Expression{ast.NewConstantLit(core.NoneLoc(t.file), t.gs.WKS.Todo, nil)}
	}

	t.pushOwner(sym)
	rhs := t.classBodyStatements(n.Field("body"))
	t.popOwner()

	return ast.NewClassDef(loc, declLoc, sym, ast.ClassDefClass, nameExpr, ancestors, rhs)
}

// moduleDef lowers `module M; body; end` per §4.5.9.
func (t *Translator) moduleDef(n parser.Node) ast.Expression {
	loc := n.Loc()
	nameNode := n.Field("name")
	nameExpr := t.expr(nameNode)
	nameRef := t.classConstName(nameNode)

	sym := t.gs.EnterClassSymbol(t.currentOwner(), nameRef)

	t.pushOwner(sym)
	rhs := t.classBodyStatements(n.Field("body"))
	t.popOwner()

	declLoc := core.Loc{File: loc.File, Begin: loc.Begin, End: nameNode.Loc().End}
	return ast.NewClassDef(loc, declLoc, sym, ast.ClassDefModule, nameExpr, nil, rhs)
}

// singletonClassDef lowers `class << self; body; end` per §4.5.9; only a
// `self` receiver is supported, mirroring the original's restriction. Any
// other receiver emits InvalidSingletonDef and becomes EmptyTree.
func (t *Translator) singletonClassDef(n parser.Node) ast.Expression {
	loc := n.Loc()
	recv := n.Field("value")
	if recv == nil || recv.Tag() != "self" {
		t.errs.InvalidSingletonDefError(loc)
		return ast.NewEmptyTree(loc)
	}

	sym := t.gs.EnterClassSymbol(t.currentOwner(), t.gs.WK.SingletonClass)
	nameExpr := ast.NewUnresolvedConstantLit(loc, nil, t.gs.WK.SingletonClass)

	t.pushOwner(sym)
	rhs := t.classBodyStatements(n.Field("body"))
	t.popOwner()

	declLoc := core.Loc{File: loc.File, Begin: loc.Begin, End: recv.Loc().End}
	return ast.NewClassDef(loc, declLoc, sym, ast.ClassDefClass, nameExpr, nil, rhs)
}

// classBodyStatements flattens a class/module body into its top-level
// statement list (ClassDef.Rhs is a slice, not a single InsSeq).
func (t *Translator) classBodyStatements(body parser.Node) []ast.Expression {
	if body == nil {
		return nil
	}
	kids := body.Children("")
	out := make([]ast.Expression, 0, len(kids))
	for _, k := range kids {
		out = append(out, t.expr(k))
	}
	return out
}

func (t *Translator) classConstName(n parser.Node) core.NameRef {
	if n.Tag() == "scope_resolution" {
		if nameField := n.Field("name"); nameField != nil {
			return t.gs.EnterNameUTF8([]byte(nameField.Text()))
		}
	}
	return t.gs.EnterNameUTF8([]byte(n.Text()))
}

// methodDef lowers `def name(params) rhs end` / `def self.name(params) rhs
// end` per §4.5.9.
func (t *Translator) methodDef(n parser.Node, isSelf bool) ast.Expression {
	loc := n.Loc()
	nameNode := n.Field("name")
	nameRef := t.gs.EnterNameUTF8([]byte(nameNode.Text()))

	sym := t.gs.EnterSymbol(t.currentOwner(), nameRef, true)

	declLoc := core.Loc{File: loc.File, Begin: loc.Begin, End: nameNode.Loc().End}
	var params []ast.Expression
	if p := n.Field("parameters"); p != nil {
		params = t.blockParams(p)
		declLoc = declLoc.Join(p.Loc())
	}

	t.pushOwner(sym)
	rhs := t.stmts(n.Field("body"))
	t.popOwner()

	flags := ast.MethodDefFlags{IsSelfMethod: isSelf}
	return ast.NewMethodDef(loc, declLoc, sym, nameRef, params, rhs, flags)
}
