package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
	"github.com/sorbet/sorbet-sub003/parser"
)

// caseExpr lowers classic `case/when` and pattern-matching `case/in` per
// §4.5.6.
func (t *Translator) caseExpr(n parser.Node) ast.Expression {
	loc := n.Loc()
	subject := n.Field("value")

	clauses := n.Children("")
	isPatternMatch := false
	for _, c := range clauses {
		if c.Tag() == "in_clause" {
			isPatternMatch = true
			break
		}
	}

	if subject == nil {
		return t.caseWhenNoSubject(loc, clauses)
	}

	subjExpr := t.expr(subject)
	if isPatternMatch {
		return t.casePatternMatch(loc, subjExpr, clauses)
	}
	return t.caseWhen(loc, subjExpr, clauses)
}

// caseWhen lowers a subject-bearing classic case into the `tmp = e; if
// p1===tmp then b1 elsif ... else eb end` ladder.
func (t *Translator) caseWhen(loc core.Loc, subject ast.Expression, clauses []parser.Node) ast.Expression {
	tmp := t.newTemp("caseTemp")
	assignStat := t.assign(loc, localAt(loc, tmp), subject)

	ladder := t.buildWhenLadder(clauses, func(l core.Loc) ast.Expression { return localAt(l, tmp) })
	return ast.NewInsSeq(loc, []ast.Expression{assignStat}, ladder)
}

// caseWhenNoSubject lowers a subject-less `case when cond1 then b1 ...`
// directly: each `when` pattern is evaluated as a boolean.
func (t *Translator) caseWhenNoSubject(loc core.Loc, clauses []parser.Node) ast.Expression {
	return t.buildWhenLadder(clauses, nil)
}

// buildWhenLadder folds a list of `when_clause`/`else` children into a
// right-leaning If chain. subjectAt, if non-nil, supplies the tmp the
// pattern is compared against (`pattern === tmp`); if nil, the pattern
// itself is the condition.
func (t *Translator) buildWhenLadder(clauses []parser.Node, subjectAt func(core.Loc) ast.Expression) ast.Expression {
	var elseBody ast.Expression
	type whenClause struct {
		cond ast.Expression
		body ast.Expression
	}
	var whens []whenClause

	for _, c := range clauses {
		switch c.Tag() {
		case "when":
			loc := c.Loc()
			patterns := c.Field("pattern")
			var patternNodes []parser.Node
			if patterns != nil {
				patternNodes = patterns.Children("")
			} else {
				patternNodes = c.Children("")
			}
			var cond ast.Expression
			for _, p := range patternNodes {
				var one ast.Expression
				if p.Tag() == "splat_argument" {
					operand := t.splatOperand(p)
					if subjectAt != nil {
						one = t.magicSend(p.Loc(), "<check-match-array>", subjectAt(p.Loc()), operand)
					} else {
						one = operand
					}
				} else {
					patExpr := t.expr(p)
					if subjectAt != nil {
						tripleEq := t.gs.EnterNameUTF8([]byte("==="))
						one = ast.NewSend(p.Loc(), patExpr, tripleEq, []ast.Expression{subjectAt(p.Loc())}, nil, ast.SendFlags{})
					} else {
						one = patExpr
					}
				}
				if cond == nil {
					cond = one
				} else {
					cond = ast.NewIf(loc, cond, ast.NewBoolLiteral(core.NoneLoc(t.file), true), one)
				}
			}
			body := t.stmts(c.Field("body"))
			whens = append(whens, whenClause{cond: cond, body: body})
		case "else":
			elseBody = t.stmts(c)
		}
	}

	if elseBody == nil {
		elseBody = ast.NewEmptyTree(core.NoneLoc(t.file))
	}

	result := elseBody
	for i := len(whens) - 1; i >= 0; i-- {
		w := whens[i]
		result = ast.NewIf(w.cond.Loc(), w.cond, w.body, result)
	}
	return result
}

// casePatternMatch lowers `case e in p1 then b1 in p2 then b2 end` into
// nested `if Magic.<pattern-match>(...) then {bindings; body} else
// next-clause end`. Per §4.5.6 the desugarer only guarantees the pattern's
// variable bindings exist; their values come from the external matcher, so
// each binding is initialized via a `raise_unimplemented` placeholder send.
func (t *Translator) casePatternMatch(loc core.Loc, subject ast.Expression, clauses []parser.Node) ast.Expression {
	tmp := t.newTemp("caseInSubject")
	assignStat := t.assign(loc, localAt(loc, tmp), subject)

	var elseBody ast.Expression = t.magicSend(core.NoneLoc(t.file), "<raise-unimplemented>")
	var inClauses []parser.Node
	for _, c := range clauses {
		if c.Tag() == "in_clause" {
			inClauses = append(inClauses, c)
		}
		if c.Tag() == "else" {
			elseBody = t.stmts(c)
		}
	}

	result := elseBody
	for i := len(inClauses) - 1; i >= 0; i-- {
		in := inClauses[i]
		loc := in.Loc()
		pattern := in.Field("pattern")
		var bindings []ast.Expression
		var vars []core.NameRef
		if pattern != nil {
			vars = t.collectPatternVars(pattern)
		}
		for _, v := range vars {
			bindings = append(bindings, t.assign(loc, ast.NewLocal(loc, ast.LocalVariable{Name: v}), t.magicSend(loc, "<raise-unimplemented>")))
		}
		body := t.stmts(in.Field("body"))
		thenBranch := body
		if len(bindings) > 0 {
			thenBranch = ast.NewInsSeq(loc, bindings, body)
		}
		matchCall := t.magicSend(loc, "<pattern-match>", localAt(loc, tmp))
		result = ast.NewIf(loc, matchCall, thenBranch, result)
	}

	return ast.NewInsSeq(loc, []ast.Expression{assignStat}, result)
}

// collectPatternVars walks a pattern node collecting every variable binding
// it introduces: plain identifiers, `Type => x` captures, array/hash
// destructuring, and both sides of a `|` alternation.
func (t *Translator) collectPatternVars(p parser.Node) []core.NameRef {
	if p == nil {
		return nil
	}
	var out []core.NameRef
	switch p.Tag() {
	case "identifier":
		out = append(out, t.gs.EnterNameUTF8([]byte(p.Text())))
	case "splat_parameter", "splat_argument":
		for _, k := range p.Children("") {
			out = append(out, t.collectPatternVars(k)...)
		}
	case "pin":
		// `^x` references an existing binding; it introduces nothing new.
	case "alternative_pattern":
		for _, k := range p.Children("") {
			out = append(out, t.collectPatternVars(k)...)
		}
	default:
		if target := p.Field("target"); target != nil {
			out = append(out, t.collectPatternVars(target)...)
		}
		for _, k := range p.Children("") {
			out = append(out, t.collectPatternVars(k)...)
		}
	}
	return out
}
