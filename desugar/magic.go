package desugar

import (
	"github.com/sorbet/sorbet-sub003/ast"
	"github.com/sorbet/sorbet-sub003/core"
)

// magicRecv builds the receiver every compiler-internal <magic-helper> call
// is sent to: a resolved reference to the well-known Magic class.
func (t *Translator) magicRecv(loc core.Loc) ast.Expression {
	return ast.NewConstantLit(loc, t.gs.WKS.Magic, nil)
}

// magicSend builds `Magic.<name>(args...)`, interning name fresh each call
// (names like `<call-with-splat>` are rare enough that re-interning beats
// the bookkeeping of caching them on Translator).
func (t *Translator) magicSend(loc core.Loc, name string, args ...ast.Expression) ast.Expression {
	fun := t.gs.EnterNameUTF8([]byte(name))
	return ast.NewSend(loc, t.magicRecv(loc), fun, args, nil, ast.SendFlags{})
}

// newTemp mints a collision-free LocalVariable, named after hint for
// readability in dumps/diagnostics. A LocalVariable is a value, not a
// node: callers needing to reference the same temp at several tree
// positions should hold onto the LocalVariable and build a fresh *ast.Local
// (via localAt) at each occurrence, since an ast.Node belongs to exactly
// one parent.
func (t *Translator) newTemp(hint string) ast.LocalVariable {
	orig := t.gs.EnterNameUTF8([]byte(hint))
	name := t.gs.NextUniqueDesugarName(orig)
	return ast.LocalVariable{Name: name, UniqueID: uint32(name)}
}

// localAt builds a reference to an already-minted LocalVariable at loc.
func localAt(loc core.Loc, v ast.LocalVariable) *ast.Local {
	return ast.NewLocal(loc, v)
}

// freshLocal mints a temp and immediately builds its sole reference; use
// this when the temp is only ever read back once.
func (t *Translator) freshLocal(loc core.Loc, hint string) *ast.Local {
	return localAt(loc, t.newTemp(hint))
}

// assign builds `lhs = rhs` at loc.
func (t *Translator) assign(loc core.Loc, lhs, rhs ast.Expression) ast.Expression {
	return ast.NewAssign(loc, lhs, rhs)
}

// send0 builds a zero-arg `recv.fun` send.
func (t *Translator) send0(loc core.Loc, recv ast.Expression, fun string) ast.Expression {
	return ast.NewSend(loc, recv, t.gs.EnterNameUTF8([]byte(fun)), nil, nil, ast.SendFlags{})
}

// sendN builds an n-arg `recv.fun(args...)` send.
func (t *Translator) sendN(loc core.Loc, recv ast.Expression, fun string, args ...ast.Expression) ast.Expression {
	return ast.NewSend(loc, recv, t.gs.EnterNameUTF8([]byte(fun)), args, nil, ast.SendFlags{})
}
