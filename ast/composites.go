package ast

import "github.com/sorbet/sorbet-sub003/core"

// If is `cond ? then : else` in all its surface forms (if/unless/ternary).
type If struct {
	base
	Cond Expression
	Then Expression
	Else Expression
}

func NewIf(loc core.Loc, cond, then, els Expression) *If {
	return &If{base: mkBase("If", loc), Cond: cond, Then: then, Else: els}
}

func (*If) isExpression() {}

// While is a pre-tested loop (while/until, both modifier and block forms).
type While struct {
	base
	Cond Expression
	Body Expression
}

func NewWhile(loc core.Loc, cond, body Expression) *While {
	return &While{base: mkBase("While", loc), Cond: cond, Body: body}
}

func (*While) isExpression() {}

// Break is `break [expr]`.
type Break struct {
	base
	Expr Expression
}

func NewBreak(loc core.Loc, expr Expression) *Break { return &Break{mkBase("Break", loc), expr} }

func (*Break) isExpression() {}

// Next is `next [expr]`.
type Next struct {
	base
	Expr Expression
}

func NewNext(loc core.Loc, expr Expression) *Next { return &Next{mkBase("Next", loc), expr} }

func (*Next) isExpression() {}

// Return is `return [expr]`.
type Return struct {
	base
	Expr Expression
}

func NewReturn(loc core.Loc, expr Expression) *Return { return &Return{mkBase("Return", loc), expr} }

func (*Return) isExpression() {}

// RescueCase is one `rescue E1, E2 => var then body` clause.
type RescueCase struct {
	base
	Exceptions []Expression
	Var        Expression // nil, or an lvalue (Local/UnresolvedIdent) to bind the exception to
	Body       Expression
}

func NewRescueCase(loc core.Loc, exceptions []Expression, v Expression, body Expression) *RescueCase {
	return &RescueCase{base: mkBase("RescueCase", loc), Exceptions: exceptions, Var: v, Body: body}
}

func (*RescueCase) isExpression() {}

// Rescue wraps a `begin body rescue ... else ... ensure ... end` block.
// Missing clauses are represented as EmptyTree, never nil, so a generic
// walker never needs a nil check on them.
type Rescue struct {
	base
	Body    Expression
	Cases   []*RescueCase
	Else    Expression
	Ensure  Expression
}

func NewRescue(loc core.Loc, body Expression, cases []*RescueCase, els, ensure Expression) *Rescue {
	return &Rescue{base: mkBase("Rescue", loc), Body: body, Cases: cases, Else: els, Ensure: ensure}
}

func (*Rescue) isExpression() {}

// Assign is `lhs = rhs`.
type Assign struct {
	base
	Lhs Expression
	Rhs Expression
}

func NewAssign(loc core.Loc, lhs, rhs Expression) *Assign {
	return &Assign{base: mkBase("Assign", loc), Lhs: lhs, Rhs: rhs}
}

func (*Assign) isExpression() {}

// SendFlags carries the boolean modifiers a Send surface form can set.
type SendFlags struct {
	IsPrivateOk bool // call may dispatch to a private method (receiver is self, implicit or explicit)
	HasBlock    bool
}

// Send is a method call: recv.fun(args...) { block }. Every Send's Recv is
// non-nil; an implicit receiver is represented with Self.
type Send struct {
	base
	Recv  Expression
	Fun   core.NameRef
	Args  []Expression
	Block *Block // nil if no literal block is attached
	Flags SendFlags
}

func NewSend(loc core.Loc, recv Expression, fun core.NameRef, args []Expression, block *Block, flags SendFlags) *Send {
	return &Send{base: mkBase("Send", loc), Recv: recv, Fun: fun, Args: args, Block: block, Flags: flags}
}

func (*Send) isExpression() {}

// CastKind discriminates a T.let/T.cast/T.assert_type! node.
type CastKind uint8

const (
	CastLet CastKind = iota
	CastCast
	CastAssertType
)

// Cast is `T.let(arg, type)` / `T.cast(arg, type)` / `T.assert_type!(arg, type)`.
type Cast struct {
	base
	Arg  Expression
	Type Expression
	Kind CastKind
}

func NewCast(loc core.Loc, arg, typ Expression, kind CastKind) *Cast {
	return &Cast{base: mkBase("Cast", loc), Arg: arg, Type: typ, Kind: kind}
}

func (*Cast) isExpression() {}

// Hash is a hash literal with parallel Keys/Values slices (same index i is
// one k:v pair). Produced only for the splat-free case; a hash literal
// containing a `**splat` is lowered to the InsSeq pipeline in §4.5.2 and
// never appears as a single Hash node.
type Hash struct {
	base
	Keys   []Expression
	Values []Expression
}

func NewHash(loc core.Loc, keys, values []Expression) *Hash {
	return &Hash{base: mkBase("Hash", loc), Keys: keys, Values: values}
}

func (*Hash) isExpression() {}

// Array is an array literal.
type Array struct {
	base
	Elems []Expression
}

func NewArray(loc core.Loc, elems []Expression) *Array {
	return &Array{base: mkBase("Array", loc), Elems: elems}
}

func (*Array) isExpression() {}

// InsSeq is a statement run followed by a trailing result expression: the
// desugarer's primary vehicle for multi-step rewrites (multi-assign, hash
// splats, safe-nav). Per §6.2, an InsSeq's terminal Expr is never itself an
// InsSeq unless AllowNestedTerm is set (the safe-nav rewrite is the one
// place that's intentional).
type InsSeq struct {
	base
	Stats           []Expression
	Expr            Expression
	AllowNestedTerm bool
}

func NewInsSeq(loc core.Loc, stats []Expression, expr Expression) *InsSeq {
	return &InsSeq{base: mkBase("InsSeq", loc), Stats: stats, Expr: expr}
}

func (*InsSeq) isExpression() {}

// Block is a literal `do |args| body end` / `{ |args| body }` attached to a
// Send. Its Loc spans the whole `do...end`/`{...}` including the param list.
type Block struct {
	base
	Args []Expression // RestArg/KeywordArg/OptionalArg/BlockArg/ShadowArg/Local
	Body Expression
}

func NewBlock(loc core.Loc, args []Expression, body Expression) *Block {
	return &Block{base: mkBase("Block", loc), Args: args, Body: body}
}

func (*Block) isExpression() {}
