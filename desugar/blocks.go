package desugar

import (
	"fmt"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// blockLiteral lowers a literal `do |params| body end` / `{ |params| body }`
// per §4.5.5.
func (t *Translator) blockLiteral(n parser.Node) *ast.Block {
	loc := n.Loc()
	var params []ast.Expression
	var prelude []ast.Expression
	if p := n.Field("parameters"); p != nil {
		paramNodes := p.Children("")
		params = make([]ast.Expression, 0, len(paramNodes))
		for _, pn := range paramNodes {
			params = append(params, t.blockParam(pn))
		}
		prelude = t.destructureBindings(paramNodes, params)
	} else {
		params = t.implicitBlockParams(n)
	}
	body := t.stmts(n.Field("body"))
	if len(prelude) > 0 {
		body = ast.NewInsSeq(body.Loc(), prelude, body)
	}
	return ast.NewBlock(loc, params, body)
}

// symbolBlockLiteral eagerly rewrites `&:foo` into the block literal
//
//	|*tmp| tmp[0].foo(*tmp[1, MAX])
//
// so that `&:foo` participates in ordinary block typing instead of a
// separate code path.
func (t *Translator) symbolBlockLiteral(loc core.Loc, methodName string) *ast.Block {
	tmp := t.newTemp("symToProcArg")
	rest := ast.NewRestArg(loc, localAt(loc, tmp))

	recv := t.sendN(loc, localAt(loc, tmp), "[]", ast.NewIntLiteral(loc, 0))
	splatArgs := t.sendN(loc, localAt(loc, tmp), "[]", ast.NewIntLiteral(loc, 1), ast.NewIntLiteral(loc, 1<<31-1))
	call := t.magicSend(loc, "<call-with-splat>", recv, t.symbolLit(loc, methodName), ast.NewArray(loc, nil), splatArgs)

	return ast.NewBlock(loc, []ast.Expression{rest}, call)
}

// blockParams lowers a `|a, *b, c:, &d, (e,f)|` parameter list per §4.5.5.
func (t *Translator) blockParams(n parser.Node) []ast.Expression {
	kids := n.Children("")
	out := make([]ast.Expression, 0, len(kids))
	for _, p := range kids {
		out = append(out, t.blockParam(p))
	}
	return out
}

func (t *Translator) blockParam(p parser.Node) ast.Expression {
	loc := p.Loc()
	switch p.Tag() {
	case "splat_parameter":
		kids := p.Children("")
		if len(kids) == 0 {
			return ast.NewRestArg(loc, t.anonymousSplatLocal(loc))
		}
		return ast.NewRestArg(loc, t.identParam(kids[0]))
	case "hash_splat_parameter":
		kids := p.Children("")
		if len(kids) == 0 {
			return ast.NewKeywordArg(loc, t.anonymousAmpLocal(loc))
		}
		return ast.NewKeywordArg(loc, t.identParam(kids[0]))
	case "block_parameter":
		kids := p.Children("")
		if len(kids) == 0 {
			return ast.NewBlockArg(loc, t.anonymousAmpLocal(loc))
		}
		return ast.NewBlockArg(loc, t.identParam(kids[0]))
	case "keyword_parameter":
		name := p.Field("name")
		var nameExpr ast.Expression
		if name != nil {
			nameExpr = t.identParam(name)
		}
		if def := p.Field("value"); def != nil {
			nameExpr = ast.NewOptionalArg(loc, nameExpr, t.expr(def))
		}
		return ast.NewKeywordArg(loc, nameExpr)
	case "optional_parameter":
		name := p.Field("name")
		def := p.Field("value")
		var nameExpr, defExpr ast.Expression
		if name != nil {
			nameExpr = t.identParam(name)
		}
		if def != nil {
			defExpr = t.expr(def)
		}
		return ast.NewOptionalArg(loc, nameExpr, defExpr)
	case "destructured_parameter":
		return t.destructureParam(p)
	case "shadow_parameter": // block-local `;x`
		kids := p.Children("")
		if len(kids) == 0 {
			return ast.NewShadowArg(loc, ast.NewEmptyTree(loc))
		}
		return ast.NewShadowArg(loc, t.identParam(kids[0]))
	default:
		return t.identParam(p)
	}
}

func (t *Translator) identParam(p parser.Node) ast.Expression {
	loc := p.Loc()
	name := t.gs.EnterNameUTF8([]byte(p.Text()))
	return ast.NewLocal(loc, ast.LocalVariable{Name: name})
}

func (t *Translator) anonymousSplatLocal(loc core.Loc) ast.Expression {
	return ast.NewLocal(loc, ast.LocalVariable{Name: t.gs.WK.StarLocal})
}

func (t *Translator) anonymousAmpLocal(loc core.Loc) ast.Expression {
	return ast.NewLocal(loc, ast.LocalVariable{Name: t.gs.WK.AmpersandLocal})
}

// destructureParam lowers `|(a, b)|` into a synthetic local whose read-back
// is prepended to the block body as `a = tmp[0]; b = tmp[1]`.
func (t *Translator) destructureParam(p parser.Node) ast.Expression {
	loc := p.Loc()
	tmp := t.newTemp("destructureArg")
	return localAt(loc, tmp) // the caller (blockLiteral) threads the bindings; see destructureBindings
}

// destructureBindings builds the `a = tmp[0]; b = tmp[1]; ...` prelude for
// every destructured parameter found in params, to be prepended to the
// block body.
func (t *Translator) destructureBindings(paramNodes []parser.Node, lowered []ast.Expression) []ast.Expression {
	var prelude []ast.Expression
	for i, p := range paramNodes {
		if p.Tag() != "destructured_parameter" {
			continue
		}
		tmpLocal, ok := lowered[i].(*ast.Local)
		if !ok {
			continue
		}
		for idx, sub := range p.Children("") {
			loc := sub.Loc()
			index := t.sendN(loc, localAt(loc, tmpLocal.Variable), "[]", ast.NewIntLiteral(loc, int64(idx)))
			prelude = append(prelude, t.assign(loc, t.identParam(sub), index))
		}
	}
	return prelude
}

// implicitBlockParams handles a block with no explicit `|params|`: scans
// the body for numbered-parameter (`_1`.._9`) or `it` usages per §4.5.5.
func (t *Translator) implicitBlockParams(n parser.Node) []ast.Expression {
	body := n.Field("body")
	if body == nil {
		return nil
	}
	maxNumbered := 0
	var firstNumberedLoc [9]core.Loc
	for i := range firstNumberedLoc {
		firstNumberedLoc[i] = core.NoneLoc(t.file)
	}
	var firstItLoc core.Loc
	sawIt := false

	var scan func(p parser.Node)
	scan = func(p parser.Node) {
		if p == nil {
			return
		}
		if p.Tag() == "identifier" {
			text := p.Text()
			if len(text) == 2 && text[0] == '_' && text[1] >= '1' && text[1] <= '9' {
				idx := int(text[1] - '1')
				if idx+1 > maxNumbered {
					maxNumbered = idx + 1
				}
				if firstNumberedLoc[idx].IsNone() {
					firstNumberedLoc[idx] = p.Loc()
				}
			} else if text == "it" && !sawIt {
				sawIt = true
				firstItLoc = p.Loc()
			}
		}
	}
	// A real implementation walks every descendant; the adapter's Children
	// enumeration only covers named-field lists, so fall back to a
	// depth-first scan over every named child.
	var walk func(p parser.Node)
	walk = func(p parser.Node) {
		if p == nil {
			return
		}
		scan(p)
		for _, c := range p.Children("") {
			walk(c)
		}
	}
	walk(body)

	if maxNumbered > 0 {
		params := make([]ast.Expression, 0, maxNumbered)
		for i := 0; i < maxNumbered; i++ {
			loc := firstNumberedLoc[i]
			name := t.gs.EnterNameUTF8([]byte(fmt.Sprintf("_%d", i+1)))
			params = append(params, ast.NewLocal(loc, ast.LocalVariable{Name: name}))
		}
		return params
	}
	if sawIt {
		name := t.gs.EnterNameUTF8([]byte("it"))
		return []ast.Expression{ast.NewLocal(firstItLoc, ast.LocalVariable{Name: name})}
	}
	return nil
}
