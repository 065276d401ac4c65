package ast

import "github.com/sorbet/sorbet-sub003/core"

// EmptyTree stands in for a subtree the desugarer declined to produce (an
// unsupported node, a non-self singleton-class receiver, a pattern-match
// binder placeholder). Never an error by itself; see the errors package for
// the diagnostic that accompanies one.
type EmptyTree struct {
	base
}

func NewEmptyTree(loc core.Loc) *EmptyTree { return &EmptyTree{mkBase("EmptyTree", loc)} }

func (*EmptyTree) isExpression() {}

// LiteralKind discriminates the payload of a Literal node.
type LiteralKind uint8

const (
	LiteralInteger LiteralKind = iota
	LiteralFloat
	LiteralString
	LiteralSymbol
	LiteralTrue
	LiteralFalse
	LiteralNil
)

// Literal is a literal value node: an Int/Float/String/Symbol/true/false/nil
// constant. The original carries a full TypePtr (a singleton type); since
// inference is out of scope here, Literal carries just enough payload for
// the desugarer and any downstream consumer to recover the literal's value.
type Literal struct {
	base
	Kind  LiteralKind
	Int   int64
	Float float64
	// Name holds the interned payload for LiteralString/LiteralSymbol.
	Name core.NameRef
}

func NewIntLiteral(loc core.Loc, v int64) *Literal {
	return &Literal{base: mkBase("Literal", loc), Kind: LiteralInteger, Int: v}
}

func NewFloatLiteral(loc core.Loc, v float64) *Literal {
	return &Literal{base: mkBase("Literal", loc), Kind: LiteralFloat, Float: v}
}

func NewStringLiteral(loc core.Loc, name core.NameRef) *Literal {
	return &Literal{base: mkBase("Literal", loc), Kind: LiteralString, Name: name}
}

func NewSymbolLiteral(loc core.Loc, name core.NameRef) *Literal {
	return &Literal{base: mkBase("Literal", loc), Kind: LiteralSymbol, Name: name}
}

func NewBoolLiteral(loc core.Loc, v bool) *Literal {
	k := LiteralFalse
	if v {
		k = LiteralTrue
	}
	return &Literal{base: mkBase("Literal", loc), Kind: k}
}

func NewNilLiteral(loc core.Loc) *Literal {
	return &Literal{base: mkBase("Literal", loc), Kind: LiteralNil}
}

func (*Literal) isExpression() {}

// LocalVariable names a block-scoped variable: a NameRef plus a uniquifying
// counter so that two lexically distinct locals with the same surface name
// (e.g. across nested blocks) remain distinguishable.
type LocalVariable struct {
	Name     core.NameRef
	UniqueID uint32
}

// Local is a reference to an already-bound local variable.
type Local struct {
	base
	Variable LocalVariable
}

func NewLocal(loc core.Loc, v LocalVariable) *Local {
	return &Local{base: mkBase("Local", loc), Variable: v}
}

func (*Local) isExpression() {}
func (*Local) isReference()  {}

// IdentKind discriminates the sigil of an UnresolvedIdent.
type IdentKind uint8

const (
	IdentLocal IdentKind = iota
	IdentInstance
	IdentClass
	IdentGlobal
)

// UnresolvedIdent is an identifier the desugarer has not yet bound to a
// Local/ivar/cvar/gvar symbol (that binding happens in the namer, out of
// scope here).
type UnresolvedIdent struct {
	base
	Kind IdentKind
	Name core.NameRef
}

func NewUnresolvedIdent(loc core.Loc, kind IdentKind, name core.NameRef) *UnresolvedIdent {
	return &UnresolvedIdent{base: mkBase("UnresolvedIdent", loc), Kind: kind, Name: name}
}

func (*UnresolvedIdent) isExpression() {}
func (*UnresolvedIdent) isReference()  {}

// ConstantLit is a resolved reference to a constant's symbol. Original, if
// non-nil, is the surface expression this was desugared from (kept so an
// IDE can still highlight the original token range even after resolution
// collapses it to a symbol reference).
type ConstantLit struct {
	base
	Symbol   core.SymbolRef
	Original Expression
}

func NewConstantLit(loc core.Loc, sym core.SymbolRef, original Expression) *ConstantLit {
	return &ConstantLit{base: mkBase("ConstantLit", loc), Symbol: sym, Original: original}
}

func (*ConstantLit) isExpression() {}

// UnresolvedConstantLit is `scope::cnst` before the resolver binds it to a
// symbol.
type UnresolvedConstantLit struct {
	base
	Scope Expression // nil both for an unscoped `Cnst` and a root-relative `::Cnst`; the two are not distinguished
	Name  core.NameRef
}

func NewUnresolvedConstantLit(loc core.Loc, scope Expression, name core.NameRef) *UnresolvedConstantLit {
	return &UnresolvedConstantLit{base: mkBase("UnresolvedConstantLit", loc), Scope: scope, Name: name}
}

func (*UnresolvedConstantLit) isExpression() {}
func (*UnresolvedConstantLit) isReference()  {}

// Self is the implicit or explicit `self` reference; also used as a Send's
// receiver whenever the surface call had none.
type Self struct {
	base
}

func NewSelf(loc core.Loc) *Self { return &Self{mkBase("Self", loc)} }

func (*Self) isExpression() {}

// ZSuperArgs marks a bare `super` call's argument list: "forward whatever
// the enclosing method was called with."
type ZSuperArgs struct {
	base
}

func NewZSuperArgs(loc core.Loc) *ZSuperArgs { return &ZSuperArgs{mkBase("ZSuperArgs", loc)} }

func (*ZSuperArgs) isExpression() {}

// Retry is a bare `retry` inside a rescue clause.
type Retry struct {
	base
}

func NewRetry(loc core.Loc) *Retry { return &Retry{mkBase("Retry", loc)} }

func (*Retry) isExpression() {}
