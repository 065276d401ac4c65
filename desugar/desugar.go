// Package desugar implements C8: the translator that lowers a tagged
// parse tree (produced by the parser package's tree-sitter adapter) into
// the typed ast IR. Node-kind cases that fold one-to-one onto an ast
// construct live in this file; the non-trivial multi-node rewrites each
// get their own file (send.go, hash.go, massign.go, blocks.go,
// casewhen.go, rescue.go, strings.go, classdef.go, builtins.go).
package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/errors"
	"github.com/sorbet/sorbet-sub003/parser"
)

// Translator lowers one file's parse tree at a time. It is not safe for
// concurrent use by multiple goroutines against the same Translator value,
// but distinct Translators sharing a GlobalState are (per §5's single-writer
// model: all GlobalState mutation they trigger goes through gs's own lock).
type Translator struct {
	gs   *core.GlobalState
	errs *errors.Reporter
	file core.FileRef

	// owners is the lexical scope stack (class/module nesting); class and
	// method definitions register themselves under owners[len(owners)-1].
	owners []core.SymbolRef
}

func New(gs *core.GlobalState, errs *errors.Reporter, file core.FileRef) *Translator {
	return &Translator{gs: gs, errs: errs, file: file, owners: []core.SymbolRef{gs.WKS.Root}}
}

func (t *Translator) currentOwner() core.SymbolRef {
	return t.owners[len(t.owners)-1]
}

func (t *Translator) pushOwner(sym core.SymbolRef) {
	t.owners = append(t.owners, sym)
}

func (t *Translator) popOwner() {
	t.owners = t.owners[:len(t.owners)-1]
}

// Translate lowers tree's root into a single ast.Expression, wrapping a
// multi-statement body in an InsSeq.
func (t *Translator) Translate(tree *parser.Tree) ast.Expression {
	if tree == nil || tree.Root == nil {
		return ast.NewEmptyTree(core.NoneLoc(t.file))
	}
	return t.stmts(tree.Root)
}

// stmts lowers a node that may itself be a statement list (a "program" or
// "body_statement" production) into a single Expression, folding a
// single-statement body down to that statement rather than wrapping it in
// a trivial InsSeq.
func (t *Translator) stmts(n parser.Node) ast.Expression {
	if n == nil {
		return ast.NewEmptyTree(core.NoneLoc(t.file))
	}
	switch n.Tag() {
	case "program", "body_statement", "then", "else", "ensure":
		children := n.Children("")
		return t.sequence(n.Loc(), children)
	default:
		return t.expr(n)
	}
}

// sequence lowers a list of statement nodes to one Expression: empty means
// EmptyTree, one statement collapses to itself, otherwise an InsSeq whose
// terminal Expr is the last statement.
func (t *Translator) sequence(loc core.Loc, stmts []parser.Node) ast.Expression {
	if len(stmts) == 0 {
		return ast.NewEmptyTree(loc)
	}
	exprs := make([]ast.Expression, 0, len(stmts))
	for _, s := range stmts {
		exprs = append(exprs, t.expr(s))
	}
	return t.sequenceExprs(loc, exprs)
}

func (t *Translator) sequenceExprs(loc core.Loc, exprs []ast.Expression) ast.Expression {
	if len(exprs) == 0 {
		return ast.NewEmptyTree(loc)
	}
	if len(exprs) == 1 {
		return exprs[0]
	}
	return ast.NewInsSeq(loc, exprs[:len(exprs)-1], exprs[len(exprs)-1])
}

// expr is the primary per-node-kind dispatch. Any tag not handled here
// falls through to unsupported, producing an EmptyTree plus a diagnostic
// per §6.1.
func (t *Translator) expr(n parser.Node) ast.Expression {
	loc := n.Loc()
	switch n.Tag() {
	case "integer":
		return t.integerLiteral(loc, n.Text())
	case "float":
		return t.floatLiteral(loc, n.Text())
	case "true":
		return ast.NewBoolLiteral(loc, true)
	case "false":
		return ast.NewBoolLiteral(loc, false)
	case "nil":
		return ast.NewNilLiteral(loc)
	case "self":
		return ast.NewSelf(loc)
	case "retry":
		return ast.NewRetry(loc)
	case "string":
		return t.stringLiteral(n)
	case "symbol", "simple_symbol":
		return t.symbolLiteral(n)
	case "regex":
		return t.regexLiteral(n)
	case "identifier":
		if lit, ok := t.builtinIdent(loc, n.Text()); ok {
			return lit
		}
		return ast.NewUnresolvedIdent(loc, ast.IdentLocal, t.gs.EnterNameUTF8([]byte(n.Text())))
	case "instance_variable":
		return ast.NewUnresolvedIdent(loc, ast.IdentInstance, t.gs.EnterNameUTF8([]byte(n.Text())))
	case "class_variable":
		return ast.NewUnresolvedIdent(loc, ast.IdentClass, t.gs.EnterNameUTF8([]byte(n.Text())))
	case "global_variable":
		return ast.NewUnresolvedIdent(loc, ast.IdentGlobal, t.gs.EnterNameUTF8([]byte(n.Text())))
	case "constant", "scope_resolution":
		return t.constant(n)
	case "array":
		return t.arrayLiteral(n)
	case "hash":
		return t.hashLiteral(n)
	case "if", "unless", "if_modifier", "unless_modifier", "ternary":
		return t.ifExpr(n)
	case "while", "until", "while_modifier", "until_modifier":
		return t.whileExpr(n)
	case "break":
		return ast.NewBreak(loc, t.optionalFirst(n))
	case "next":
		return ast.NewNext(loc, t.optionalFirst(n))
	case "return":
		return ast.NewReturn(loc, t.optionalFirst(n))
	case "binary":
		return t.binaryOp(n)
	case "unary":
		return t.unaryOp(n)
	case "assignment":
		return t.assignment(n)
	case "operator_assignment":
		return t.compoundAssignment(n)
	case "call", "method_call":
		return t.sendExpr(n)
	case "class":
		return t.classDef(n)
	case "module":
		return t.moduleDef(n)
	case "singleton_class":
		return t.singletonClassDef(n)
	case "method":
		return t.methodDef(n, false)
	case "singleton_method":
		return t.methodDef(n, true)
	case "begin":
		return t.beginRescue(n)
	case "case", "case_match":
		return t.caseExpr(n)
	default:
		t.errs.UnsupportedNodeError(loc, n.Tag())
		return ast.NewEmptyTree(loc)
	}
}

func (t *Translator) optionalFirst(n parser.Node) ast.Expression {
	kids := n.Children("")
	if len(kids) == 0 {
		return nil
	}
	return t.expr(kids[0])
}

func (t *Translator) constant(n parser.Node) ast.Expression {
	loc := n.Loc()
	if n.Tag() == "scope_resolution" {
		scope := n.Field("scope")
		var scopeExpr ast.Expression
		if scope != nil {
			scopeExpr = t.expr(scope)
		}
		name := n.Field("name")
		return ast.NewUnresolvedConstantLit(loc, scopeExpr, t.gs.EnterNameUTF8([]byte(name.Text())))
	}
	return ast.NewUnresolvedConstantLit(loc, nil, t.gs.EnterNameUTF8([]byte(n.Text())))
}

func (t *Translator) arrayLiteral(n parser.Node) ast.Expression {
	kids := n.Children("")
	elems := make([]ast.Expression, 0, len(kids))
	for _, k := range kids {
		elems = append(elems, t.expr(k))
	}
	return ast.NewArray(n.Loc(), elems)
}

func (t *Translator) ifExpr(n parser.Node) ast.Expression {
	loc := n.Loc()
	cond := t.expr(n.Field("condition"))
	then := t.stmts(n.Field("consequence"))
	var els ast.Expression = ast.NewEmptyTree(core.NoneLoc(t.file))
	if e := n.Field("alternative"); e != nil {
		els = t.stmts(e)
	}
	if n.Tag() == "unless" || n.Tag() == "unless_modifier" {
		then, els = els, then
	}
	return ast.NewIf(loc, cond, then, els)
}

func (t *Translator) whileExpr(n parser.Node) ast.Expression {
	loc := n.Loc()
	cond := t.expr(n.Field("condition"))
	body := t.stmts(n.Field("body"))
	if n.Tag() == "until" || n.Tag() == "until_modifier" {
		cond = ast.NewSend(cond.Loc(), cond, t.gs.WK.Bang, nil, nil, ast.SendFlags{})
	}
	return ast.NewWhile(loc, cond, body)
}

func (t *Translator) binaryOp(n parser.Node) ast.Expression {
	loc := n.Loc()
	lhs := t.expr(n.Field("left"))
	rhs := t.expr(n.Field("right"))
	opNode := n.Field("operator")
	opText := n.Text()
	if opNode != nil {
		opText = opNode.Text()
	}
	switch opText {
	case "&&", "and":
		return ast.NewIf(loc, lhs, rhs, ast.NewBoolLiteral(core.NoneLoc(t.file), false))
	case "||", "or":
		return ast.NewIf(loc, lhs, ast.NewBoolLiteral(core.NoneLoc(t.file), true), rhs)
	default:
		fun := t.gs.EnterNameUTF8([]byte(opText))
		return ast.NewSend(loc, lhs, fun, []ast.Expression{rhs}, nil, ast.SendFlags{})
	}
}

func (t *Translator) unaryOp(n parser.Node) ast.Expression {
	loc := n.Loc()
	operand := t.expr(n.Field("operand"))
	opText := n.Text()
	if op := n.Field("operator"); op != nil {
		opText = op.Text()
	}
	name := "@+"
	if opText == "-" {
		name = "@-"
	} else if opText == "!" || opText == "not" {
		name = "!"
	}
	fun := t.gs.EnterNameUTF8([]byte(name))
	return ast.NewSend(loc, operand, fun, nil, nil, ast.SendFlags{})
}
