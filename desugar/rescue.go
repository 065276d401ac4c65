package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// beginRescue lowers a `begin body rescue ... else ... ensure ... end`
// block per §4.5.7. Missing clauses become EmptyTree. The Rescue node's Loc
// spans from the earliest of body/rescue/ensure to the latest clause that
// carries content.
func (t *Translator) beginRescue(n parser.Node) ast.Expression {
	bodyNode := n.Field("body")
	body := t.stmts(bodyNode)

	var cases []*ast.RescueCase
	var elseBody ast.Expression = ast.NewEmptyTree(core.NoneLoc(t.file))
	var ensureBody ast.Expression = ast.NewEmptyTree(core.NoneLoc(t.file))

	for _, c := range n.Children("") {
		switch c.Tag() {
		case "rescue":
			cases = append(cases, t.rescueCase(c))
		case "else":
			elseBody = t.stmts(c)
		case "ensure":
			ensureBody = t.stmts(c)
		}
	}

	if len(cases) == 0 && elseBody.Loc().IsNone() && ensureBody.Loc().IsNone() {
		return body
	}
	loc := body.Loc()
	for _, c := range cases {
		loc = loc.Join(c.Loc())
	}
	loc = loc.Join(elseBody.Loc()).Join(ensureBody.Loc())
	if loc.IsNone() {
		loc = n.Loc()
	}
	return ast.NewRescue(loc, body, cases, elseBody, ensureBody)
}

// rescueCase lowers one `rescue E1, E2 => v then body` clause. A missing
// variable binds a fresh `<rescueTemp$N>`; a non-local assignment target
// (`@x`, `$x`) instead binds to that same fresh temp and prepends `@x =
// tmp` to the handler body.
func (t *Translator) rescueCase(c parser.Node) *ast.RescueCase {
	loc := c.Loc()
	var exceptions []ast.Expression
	if excList := c.Field("exceptions"); excList != nil {
		for _, e := range excList.Children("") {
			exceptions = append(exceptions, t.expr(e))
		}
	}

	body := t.stmts(c.Field("body"))
	varNode := c.Field("variable")

	if varNode == nil {
		return ast.NewRescueCase(loc, exceptions, localAt(loc, t.newTemp("rescueTemp")), body)
	}

	if varNode.Tag() == "identifier" {
		name := t.gs.EnterNameUTF8([]byte(varNode.Text()))
		v := ast.NewLocal(varNode.Loc(), ast.LocalVariable{Name: name})
		return ast.NewRescueCase(loc, exceptions, v, body)
	}

	// Non-local target (ivar/cvar/gvar): bind a fresh temp and prepend the
	// write-back into the handler body.
	tmp := t.newTemp("rescueTemp")
	target := t.expr(varNode)
	writeBack := t.assign(varNode.Loc(), target, localAt(varNode.Loc(), tmp))
	body = ast.NewInsSeq(body.Loc(), []ast.Expression{writeBack}, body)
	return ast.NewRescueCase(loc, exceptions, localAt(varNode.Loc(), tmp), body)
}
