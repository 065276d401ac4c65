package ast

import "github.com/sorbet/sorbet-sub003/core"

// ClassDefKind discriminates `class` from `module`.
type ClassDefKind uint8

const (
	ClassDefClass ClassDefKind = iota
	ClassDefModule
)

// ClassDef is `class Name < Ancestor ... end` / `module Name ... end`.
// DeclLoc spans only the header line(s); Loc (from base) spans the whole
// definition including its body.
type ClassDef struct {
	base
	DeclLoc   core.Loc
	Symbol    core.SymbolRef
	Kind      ClassDefKind
	Name      Expression // UnresolvedConstantLit/ConstantLit naming the class
	Ancestors []Expression
	Rhs       []Expression
}

func NewClassDef(loc, declLoc core.Loc, sym core.SymbolRef, kind ClassDefKind, name Expression, ancestors, rhs []Expression) *ClassDef {
	return &ClassDef{
		base: mkBase("ClassDef", loc), DeclLoc: declLoc, Symbol: sym, Kind: kind,
		Name: name, Ancestors: ancestors, Rhs: rhs,
	}
}

func (*ClassDef) isDeclaration()        {}
func (c *ClassDef) Sym() core.SymbolRef { return c.Symbol }

// MethodDefFlags carries the boolean modifiers a method definition sets.
type MethodDefFlags struct {
	IsSelfMethod     bool // `def self.foo`
	IsDSLSynthesized bool
}

// MethodDef is `def name(args) rhs end` / `def self.name(args) rhs end`.
// DeclLoc spans only the header line; Loc spans the whole definition.
type MethodDef struct {
	base
	DeclLoc core.Loc
	Symbol  core.SymbolRef
	Name    core.NameRef
	Args    []Expression // RestArg/KeywordArg/OptionalArg/BlockArg/ShadowArg/Local
	Rhs     Expression
	Flags   MethodDefFlags
}

func NewMethodDef(loc, declLoc core.Loc, sym core.SymbolRef, name core.NameRef, args []Expression, rhs Expression, flags MethodDefFlags) *MethodDef {
	return &MethodDef{
		base: mkBase("MethodDef", loc), DeclLoc: declLoc, Symbol: sym,
		Name: name, Args: args, Rhs: rhs, Flags: flags,
	}
}

func (*MethodDef) isDeclaration()        {}
func (m *MethodDef) Sym() core.SymbolRef { return m.Symbol }

// RestArg is `*name` in a parameter list.
type RestArg struct {
	base
	Expr Expression
}

func NewRestArg(loc core.Loc, expr Expression) *RestArg { return &RestArg{mkBase("RestArg", loc), expr} }
func (*RestArg) isExpression()                          {}

// KeywordArg is `name:` / `name: default` in a parameter list.
type KeywordArg struct {
	base
	Expr Expression
}

func NewKeywordArg(loc core.Loc, expr Expression) *KeywordArg {
	return &KeywordArg{mkBase("KeywordArg", loc), expr}
}
func (*KeywordArg) isExpression() {}

// OptionalArg is `name = default` in a parameter list.
type OptionalArg struct {
	base
	Expr    Expression
	Default Expression
}

func NewOptionalArg(loc core.Loc, expr, def Expression) *OptionalArg {
	return &OptionalArg{base: mkBase("OptionalArg", loc), Expr: expr, Default: def}
}
func (*OptionalArg) isExpression() {}

// BlockArg is `&name` in a parameter list.
type BlockArg struct {
	base
	Expr Expression
}

func NewBlockArg(loc core.Loc, expr Expression) *BlockArg { return &BlockArg{mkBase("BlockArg", loc), expr} }
func (*BlockArg) isExpression()                            {}

// ShadowArg is a block-local `;x` shadow parameter.
type ShadowArg struct {
	base
	Expr Expression
}

func NewShadowArg(loc core.Loc, expr Expression) *ShadowArg {
	return &ShadowArg{mkBase("ShadowArg", loc), expr}
}
func (*ShadowArg) isExpression() {}
