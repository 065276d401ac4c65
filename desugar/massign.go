package desugar

import (
	"strings"

	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// assignment lowers a plain `lhs = rhs`, dispatching to multiAssign when
// lhs is a `left_assignment_list` (the mlhs form) per §4.5.3, and guarding
// a constant target against dynamic-constant-assignment-inside-a-method
// per §4.5.4.
func (t *Translator) assignment(n parser.Node) ast.Expression {
	loc := n.Loc()
	left := n.Field("left")
	rhsNode := n.Field("right")

	if left != nil && left.Tag() == "left_assignment_list" {
		rhs := t.expr(rhsNode)
		return t.multiAssign(loc, left, rhs)
	}

	if left != nil && (left.Tag() == "constant" || left.Tag() == "scope_resolution") && t.gs.Syms.Info(t.currentOwner()).IsMethod() {
		return t.dynamicConstAssign(loc, left, rhsNode)
	}

	lhs := t.expr(left)
	rhs := t.expr(rhsNode)
	return t.assign(loc, lhs, rhs)
}

// dynamicConstAssign handles `C = …` written inside a method body per
// §4.5.4: the assignment target is swapped for the synthetic local
// `<dynamicConstAssign>` so the rest of the pipeline can keep going, and a
// diagnostic is raised alongside.
func (t *Translator) dynamicConstAssign(loc core.Loc, left parser.Node, rhsNode parser.Node) ast.Expression {
	t.errs.NoConstantReassignmentError(loc, left.Text())
	rhs := t.expr(rhsNode)
	target := ast.NewLocal(left.Loc(), ast.LocalVariable{Name: t.gs.WK.DynamicConstAssign})
	return t.assign(loc, target, rhs)
}

// multiAssign lowers `a, *b, c = rhs` per §4.5.3.
func (t *Translator) multiAssign(loc core.Loc, leftList parser.Node, rhs ast.Expression) ast.Expression {
	targets := leftList.Children("")

	splatIdx := -1
	splatCount := 0
	for i, tgt := range targets {
		if tgt.Tag() == "rest_assignment" || tgt.Tag() == "splat_argument" {
			splatCount++
			if splatIdx == -1 {
				splatIdx = i
			}
		}
	}
	if splatCount > 1 {
		t.errs.UnsupportedRestArgsDestructureError(loc)
	}

	before := len(targets)
	after := 0
	if splatIdx >= 0 {
		before = splatIdx
		after = len(targets) - splatIdx - 1
	}

	tmpRhs := t.newTemp("mlhsRhs")
	tmpExp := t.newTemp("mlhsExpanded")

	stats := []ast.Expression{
		t.assign(loc, localAt(loc, tmpRhs), rhs),
		t.assign(loc, localAt(loc, tmpExp), t.magicSend(loc, "<expand-splat>", localAt(loc, tmpRhs), ast.NewIntLiteral(loc, int64(before)), ast.NewIntLiteral(loc, int64(after)))),
	}

	for i, tgt := range targets {
		tgtLoc := tgt.Loc()
		var valueExpr ast.Expression
		switch {
		case i == splatIdx:
			valueExpr = t.sendN(tgtLoc, localAt(tgtLoc, tmpExp), "to_ary")
		case splatIdx >= 0 && i > splatIdx:
			offsetFromEnd := int64(len(targets) - 1 - i)
			valueExpr = t.sendN(tgtLoc, localAt(tgtLoc, tmpExp), "[]", ast.NewIntLiteral(tgtLoc, -(offsetFromEnd+1)))
		default:
			valueExpr = t.sendN(tgtLoc, localAt(tgtLoc, tmpExp), "[]", ast.NewIntLiteral(tgtLoc, int64(i)))
		}

		target := tgt
		if (tgt.Tag() == "rest_assignment" || tgt.Tag() == "splat_argument") && len(tgt.Children("")) > 0 {
			target = tgt.Children("")[0]
		}

		if target.Tag() == "destructured_left_assignment" {
			stats = append(stats, t.multiAssign(tgtLoc, target, valueExpr))
		} else {
			stats = append(stats, t.assign(tgtLoc, t.expr(target), valueExpr))
		}
	}

	return ast.NewInsSeq(loc, stats, localAt(loc, tmpRhs))
}

// compoundAssignment lowers `lhs op= rhs` per §4.5.4, dispatching on lhs's
// shape and op's spelling.
func (t *Translator) compoundAssignment(n parser.Node) ast.Expression {
	loc := n.Loc()
	left := n.Field("left")
	rhsNode := n.Field("right")
	opText := n.Text()
	if opNode := n.Field("operator"); opNode != nil {
		opText = opNode.Text()
	}

	switch opText {
	case "||=":
		return t.compoundConditionalAssign(loc, left, rhsNode, false)
	case "&&=":
		return t.compoundConditionalAssign(loc, left, rhsNode, true)
	default:
		op := strings.TrimSuffix(opText, "=")
		rhs := t.expr(rhsNode)
		return t.compoundOpAssign(loc, left, op, rhs)
	}
}

func (t *Translator) compoundOpAssign(loc core.Loc, left parser.Node, op string, rhs ast.Expression) ast.Expression {
	switch left.Tag() {
	case "call":
		return t.compoundCallOpAssign(loc, left, op, rhs)
	case "element_reference":
		return t.compoundIndexOpAssign(loc, left, op, rhs)
	case "constant", "scope_resolution":
		if t.gs.Syms.Info(t.currentOwner()).IsMethod() {
			t.errs.NoConstantReassignmentError(loc, left.Text())
			target := ast.NewLocal(left.Loc(), ast.LocalVariable{Name: t.gs.WK.DynamicConstAssign})
			return t.assign(loc, target, t.sendN(loc, target, op, rhs))
		}
		ref := t.expr(left)
		return t.assign(loc, t.expr(left), t.sendN(loc, ref, op, rhs))
	default:
		// Local/ivar/cvar/gvar: one evaluation is safe.
		ref := t.expr(left)
		return t.assign(loc, t.expr(left), t.sendN(loc, ref, op, rhs))
	}
}

// compoundCallOpAssign lowers `recv.m op= rhs`: tmp holds recv so it's read
// exactly once, then `tmp.m=(tmp.m op rhs)`.
func (t *Translator) compoundCallOpAssign(loc core.Loc, left parser.Node, op string, rhs ast.Expression) ast.Expression {
	recvNode := left.Field("receiver")
	methodNode := left.Field("method")
	methodName := left.Text()
	if methodNode != nil {
		methodName = methodNode.Text()
	}

	var recvExpr ast.Expression = ast.NewSelf(loc)
	if recvNode != nil {
		recvExpr = t.expr(recvNode)
	}

	tmp := t.newTemp("opAsgnRecv")
	assignRecv := t.assign(loc, localAt(loc, tmp), recvExpr)
	getter := t.send0(loc, localAt(loc, tmp), methodName)
	newVal := t.sendN(loc, getter, op, rhs)
	setter := t.sendN(loc, localAt(loc, tmp), methodName+"=", newVal)

	return ast.NewInsSeq(loc, []ast.Expression{assignRecv}, setter)
}

// compoundIndexOpAssign lowers `recv[i, j] op= rhs` via `[]`/`[]=`, reading
// recv and every index argument into a temp exactly once.
func (t *Translator) compoundIndexOpAssign(loc core.Loc, left parser.Node, op string, rhs ast.Expression) ast.Expression {
	kids := left.Children("")
	if len(kids) == 0 {
		t.errs.InternalError(loc, "element_reference with no children")
		return ast.NewEmptyTree(loc)
	}
	recvExpr := t.expr(kids[0])
	idxNodes := kids[1:]

	tmpRecv := t.newTemp("opAsgnRecv")
	stats := []ast.Expression{t.assign(loc, localAt(loc, tmpRecv), recvExpr)}

	idxVars := make([]ast.LocalVariable, len(idxNodes))
	for i, idxN := range idxNodes {
		v := t.newTemp("opAsgnIdx")
		idxVars[i] = v
		stats = append(stats, t.assign(loc, localAt(loc, v), t.expr(idxN)))
	}

	getArgs := make([]ast.Expression, len(idxVars))
	for i, v := range idxVars {
		getArgs[i] = localAt(loc, v)
	}
	getter := t.sendN(loc, localAt(loc, tmpRecv), "[]", getArgs...)
	newVal := t.sendN(loc, getter, op, rhs)

	setArgs := make([]ast.Expression, 0, len(idxVars)+1)
	for _, v := range idxVars {
		setArgs = append(setArgs, localAt(loc, v))
	}
	setArgs = append(setArgs, newVal)
	setter := t.sendN(loc, localAt(loc, tmpRecv), "[]=", setArgs...)

	return ast.NewInsSeq(loc, stats, setter)
}

// compoundConditionalAssign lowers `lhs &&= rhs` / `lhs ||= rhs` per
// §4.5.4. isAnd selects `if lhs then lhs=rhs else lhs end`; the `||=`
// mirror swaps the branches. A T.let RHS on an ivar/cvar gets the special
// `@x = T.let(@x, type); tmp = expr; @x = tmp` treatment so the typed
// declaration survives the conditional.
func (t *Translator) compoundConditionalAssign(loc core.Loc, left parser.Node, rhsNode parser.Node, isAnd bool) ast.Expression {
	if !isAnd && isIvarOrCvar(left) && isTLetCall(rhsNode) {
		return t.orAssignWithLet(loc, left, rhsNode)
	}

	switch left.Tag() {
	case "call":
		return t.compoundConditionalCallAssign(loc, left, rhsNode, isAnd)
	default:
		ref1 := t.expr(left)
		ref2 := t.expr(left)
		rhs := t.expr(rhsNode)
		assignBranch := t.assign(loc, t.expr(left), rhs)
		if isAnd {
			return ast.NewIf(loc, ref1, assignBranch, ref2)
		}
		return ast.NewIf(loc, ref1, ref2, assignBranch)
	}
}

func isIvarOrCvar(n parser.Node) bool {
	return n != nil && (n.Tag() == "instance_variable" || n.Tag() == "class_variable")
}

func isTLetCall(n parser.Node) bool {
	if n == nil || n.Tag() != "call" {
		return false
	}
	m := n.Field("method")
	r := n.Field("receiver")
	return m != nil && m.Text() == "let" && r != nil && r.Text() == "T"
}

func (t *Translator) orAssignWithLet(loc core.Loc, left parser.Node, rhsNode parser.Node) ast.Expression {
	args := n0Args(rhsNode)
	if len(args) < 2 {
		t.errs.InternalError(loc, "T.let with fewer than 2 arguments")
		return ast.NewEmptyTree(loc)
	}
	typeExpr := t.expr(args[1])
	tConst := ast.NewUnresolvedConstantLit(loc, nil, t.gs.EnterNameUTF8([]byte("T")))

	letAssign := t.assign(loc, t.expr(left), t.sendN(loc, tConst, "let", t.expr(left), typeExpr))
	tmp := t.newTemp("letOrAssignTmp")
	tmpAssign := t.assign(loc, localAt(loc, tmp), t.expr(args[0]))
	finalAssign := t.assign(loc, t.expr(left), localAt(loc, tmp))

	return ast.NewInsSeq(loc, []ast.Expression{letAssign, tmpAssign}, finalAssign)
}

func n0Args(call parser.Node) []parser.Node {
	argsNode := call.Field("arguments")
	if argsNode == nil {
		return call.Children("")
	}
	return argsNode.Children("")
}

// compoundConditionalCallAssign lowers `recv.m &&= rhs` / `recv.m ||= rhs`:
// the same tmp-recv plumbing as compoundCallOpAssign, plus a read-into-temp
// then conditional write.
func (t *Translator) compoundConditionalCallAssign(loc core.Loc, left parser.Node, rhsNode parser.Node, isAnd bool) ast.Expression {
	recvNode := left.Field("receiver")
	methodNode := left.Field("method")
	methodName := left.Text()
	if methodNode != nil {
		methodName = methodNode.Text()
	}

	var recvExpr ast.Expression = ast.NewSelf(loc)
	if recvNode != nil {
		recvExpr = t.expr(recvNode)
	}

	tmpRecv := t.newTemp("opAsgnRecv")
	tmpVal := t.newTemp("opAsgnVal")
	stats := []ast.Expression{
		t.assign(loc, localAt(loc, tmpRecv), recvExpr),
		t.assign(loc, localAt(loc, tmpVal), t.send0(loc, localAt(loc, tmpRecv), methodName)),
	}

	rhs := t.expr(rhsNode)
	setter := t.sendN(loc, localAt(loc, tmpRecv), methodName+"=", rhs)

	var ifExpr ast.Expression
	if isAnd {
		ifExpr = ast.NewIf(loc, localAt(loc, tmpVal), setter, localAt(loc, tmpVal))
	} else {
		ifExpr = ast.NewIf(loc, localAt(loc, tmpVal), localAt(loc, tmpVal), setter)
	}

	return ast.NewInsSeq(loc, stats, ifExpr)
}
