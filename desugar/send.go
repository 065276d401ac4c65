package desugar

import (
	"strings"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// sendExpr lowers a parse-tree call node per §4.5.1: a plain Send in the
// common case, or one of the <call-with-splat>/<call-with-block-pass>
// Magic helpers when the argument list needs runtime expansion.
func (t *Translator) sendExpr(n parser.Node) ast.Expression {
	loc := n.Loc()

	var recv ast.Expression = ast.NewSelf(loc)
	if r := n.Field("receiver"); r != nil {
		recv = t.expr(r)
	}

	methodText := n.Text()
	if m := n.Field("method"); m != nil {
		methodText = m.Text()
	}
	if methodText == "defined?" {
		return t.definedCall(n)
	}
	fun := t.gs.EnterNameUTF8([]byte(methodText))

	var positional []ast.Expression
	var splatExpr ast.Expression
	var blockPassExpr ast.Expression
	var symbolBlockName string
	var kwEntries []hashEntry

	if argsNode := n.Field("arguments"); argsNode != nil {
		for _, a := range argsNode.Children("") {
			switch a.Tag() {
			case "splat_argument":
				splatExpr = t.splatOperand(a)
			case "hash_splat_argument":
				kwEntries = append(kwEntries, hashEntry{isSplat: true, splat: t.splatOperand(a), loc: a.Loc()})
			case "pair":
				k, v := t.hashPair(a)
				kwEntries = append(kwEntries, hashEntry{key: k, value: v, loc: a.Loc(), keyText: literalKeyText(t, k)})
			case "block_argument":
				kids := a.Children("")
				if len(kids) > 0 && (kids[0].Tag() == "symbol" || kids[0].Tag() == "simple_symbol") {
					symbolBlockName = strings.TrimPrefix(kids[0].Text(), ":")
				} else if len(kids) > 0 {
					blockPassExpr = t.expr(kids[0])
				}
			case "forward_argument": // bare `...`
				fwdArgs := t.gs.WK.FwdArgs
				fwdKwargs := t.gs.WK.FwdKwargs
				fwdBlock := t.gs.WK.FwdBlock
				splatExpr = ast.NewLocal(a.Loc(), ast.LocalVariable{Name: fwdArgs})
				kwEntries = append(kwEntries, hashEntry{isSplat: true, splat: ast.NewLocal(a.Loc(), ast.LocalVariable{Name: fwdKwargs}), loc: a.Loc()})
				blockPassExpr = ast.NewLocal(a.Loc(), ast.LocalVariable{Name: fwdBlock})
			default:
				positional = append(positional, t.expr(a))
			}
		}
	}

	var block *ast.Block
	if symbolBlockName != "" {
		block = t.symbolBlockLiteral(loc, symbolBlockName)
	} else if b := n.Field("block"); b != nil {
		block = t.blockLiteral(b)
	}

	if len(kwEntries) > 0 {
		positional = append(positional, t.buildHash(loc, kwEntries))
	}

	flags := ast.SendFlags{HasBlock: block != nil}
	if _, isSelf := recv.(*ast.Self); isSelf {
		flags.IsPrivateOk = true
	}

	switch {
	case splatExpr != nil && blockPassExpr != nil:
		return t.magicSend(loc, "<call-with-splat-and-block-pass>", recv, t.symbolLit(loc, methodText), blockPassExpr, ast.NewArray(loc, positional), splatExpr)
	case splatExpr != nil:
		return t.magicSend(loc, "<call-with-splat>", recv, t.symbolLit(loc, methodText), ast.NewArray(loc, positional), splatExpr)
	case blockPassExpr != nil:
		args := append([]ast.Expression{recv, t.symbolLit(loc, methodText), blockPassExpr}, positional...)
		return t.magicSend(loc, "<call-with-block-pass>", args...)
	}

	if n.Flag("safe-navigation") {
		return t.safeNav(n, recv, fun, positional, block, flags)
	}

	return ast.NewSend(loc, recv, fun, positional, block, flags)
}

func (t *Translator) symbolLit(loc core.Loc, name string) ast.Expression {
	return ast.NewSymbolLiteral(loc, t.gs.EnterNameUTF8([]byte(name)))
}

// safeNav lowers `a&.b(args)` per §4.5.1:
//
//	tmp = a; if NilClass === tmp then Magic.<nil-for-safe-nav>(tmp) else tmp.b(args) end
//
// preserving the receiver's own Loc on the temp assignment and collapsing
// the `if`'s own Loc to the `&.` site (approximated here as the call node's
// start, since the parser adapter does not expose the operator token's
// range on its own).
func (t *Translator) safeNav(n parser.Node, recv ast.Expression, fun core.NameRef, args []ast.Expression, block *ast.Block, flags ast.SendFlags) ast.Expression {
	recvLoc := recv.Loc()
	tmp := t.newTemp("safeNavRecv")
	assignStat := t.assign(recvLoc, localAt(recvLoc, tmp), recv)

	opLoc := core.Loc{File: n.Loc().File, Begin: n.Loc().Begin, End: n.Loc().Begin}
	nilClass := ast.NewConstantLit(opLoc, t.gs.WKS.NilClass, nil)
	tripleEq := t.gs.EnterNameUTF8([]byte("==="))
	cond := ast.NewSend(opLoc, nilClass, tripleEq, []ast.Expression{localAt(opLoc, tmp)}, nil, ast.SendFlags{})

	thenBranch := t.magicSend(opLoc, "<nil-for-safe-nav>", localAt(opLoc, tmp))
	elseBranch := ast.NewSend(n.Loc(), localAt(n.Loc(), tmp), fun, args, block, flags)

	ifExpr := ast.NewIf(n.Loc(), cond, thenBranch, elseBranch)
	return ast.NewInsSeq(n.Loc(), []ast.Expression{assignStat}, ifExpr)
}
