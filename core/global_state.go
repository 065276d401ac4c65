package core

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// WellKnownNames holds the fixed-order NameRefs reserved at GlobalState
// construction. Compiled builds and the desugarer reference these by field,
// not by a raw numeric literal, but the order they are entered in (and
// therefore their numeric identity within one GlobalState) is part of the
// external interface: see §6.3.
type WellKnownNames struct {
	Initialize NameRef // initialize
	AndAnd     NameRef // &&
	OrOr       NameRef // ||
	ToS        NameRef // to_s
	ToAry      NameRef // to_ary
	ToHash     NameRef // to_hash
	Concat     NameRef // concat
	Call       NameRef // call
	Bang       NameRef // !
	Squares    NameRef // []
	SquaresEq  NameRef // []=
	UnaryPlus  NameRef // @+
	UnaryMinus NameRef // @-
	Star       NameRef // *
	StarStar   NameRef // **
	New        NameRef // new
	Lambda     NameRef // lambda
	Super      NameRef // super
	UntypedSuper NameRef // untypedSuper
	Intern     NameRef // intern
	Each       NameRef // each
	Merge      NameRef // merge
	Include    NameRef // include
	CurrentFile NameRef // __FILE__

	// compiler-internal temporaries
	WhileTemp      NameRef // <whileTemp>
	IfTemp         NameRef // <ifTemp>
	ReturnTemp     NameRef // <returnTemp>
	StatTemp       NameRef // <statTemp>
	AssignTemp     NameRef // <assignTemp>
	ReturnMethodTemp NameRef // <returnMethodTemp>
	BlockReturnTemp NameRef // <blockRet>
	SelfMethodTemp NameRef // <selfMethodTemp>
	DestructureArg NameRef // <destructureArg>
	FwdArgs        NameRef // <fwdArgs>
	FwdKwargs      NameRef // <fwdKwargs>
	FwdBlock       NameRef // <fwdBlock>
	Magic          NameRef // <magic>
	AmpersandLocal NameRef // & (anonymous block-pass local)
	StarLocal      NameRef // *local (anonymous splat local)
	DynamicConstAssign NameRef // <dynamicConstAssign>

	// singleton/attached-class member keys
	SingletonClass NameRef // <singleton>
	AttachedClass  NameRef // <attached>
}

// WellKnownSymbols holds the fixed-order SymbolRefs reserved at GlobalState
// construction.
type WellKnownSymbols struct {
	Top  SymbolRef
	Bottom SymbolRef
	Root SymbolRef
	Nil  SymbolRef
	Todo SymbolRef

	NilClass     SymbolRef
	TrueClass    SymbolRef
	FalseClass   SymbolRef
	Integer      SymbolRef
	Float        SymbolRef
	String       SymbolRef
	Symbol       SymbolRef
	Array        SymbolRef
	Hash         SymbolRef
	Regexp       SymbolRef
	Proc         SymbolRef
	Range        SymbolRef
	Object       SymbolRef
	BasicObject  SymbolRef
	Kernel       SymbolRef
	Module       SymbolRef
	Class        SymbolRef
	Exception    SymbolRef
	StandardError SymbolRef
	Magic        SymbolRef
	T            SymbolRef
}

// GlobalState is the multi-tenant context owned by the driver and passed by
// reference into every pass: it owns the Names, Symbols, and Files tables
// (C1-C4) and is the single writer for symbol/name mutation (C7).
type GlobalState struct {
	Names *NameTable
	Syms  *SymbolTable
	Files *FileTable

	WK  WellKnownNames
	WKS WellKnownSymbols

	logger *zap.Logger

	// mu guards all name/symbol mutation. Per §5, only the indexer/main
	// thread writes; parse workers only read already-interned data, which
	// is lock-free. mu exists so a misbehaving caller gets a clear
	// exclusion rather than silent corruption, not to make concurrent
	// writers a supported mode.
	mu sync.Mutex

	uniqueDesugarCounter uint32
	uniqueParserCounter  uint32
	uniqueCFGCounter     uint32
}

// New constructs a GlobalState with the well-known names/symbols installed
// at their reserved indices.
func New(logger *zap.Logger) *GlobalState {
	if logger == nil {
		logger = zap.NewNop()
	}
	gs := &GlobalState{
		Names:  newNameTable(),
		Syms:   newSymbolTable(),
		Files:  newFileTable(),
		logger: logger,
	}
	gs.bootstrap()
	return gs
}

// Logger returns the GlobalState's structured logger.
func (gs *GlobalState) Logger() *zap.Logger { return gs.logger }

func (gs *GlobalState) enterUTF8(s string) NameRef {
	return gs.Names.EnterNameUTF8([]byte(s))
}

func (gs *GlobalState) bootstrap() {
	wk := &gs.WK
	wk.Initialize = gs.enterUTF8("initialize")
	wk.AndAnd = gs.enterUTF8("&&")
	wk.OrOr = gs.enterUTF8("||")
	wk.ToS = gs.enterUTF8("to_s")
	wk.ToAry = gs.enterUTF8("to_ary")
	wk.ToHash = gs.enterUTF8("to_hash")
	wk.Concat = gs.enterUTF8("concat")
	wk.Call = gs.enterUTF8("call")
	wk.Bang = gs.enterUTF8("!")
	wk.Squares = gs.enterUTF8("[]")
	wk.SquaresEq = gs.enterUTF8("[]=")
	wk.UnaryPlus = gs.enterUTF8("@+")
	wk.UnaryMinus = gs.enterUTF8("@-")
	wk.Star = gs.enterUTF8("*")
	wk.StarStar = gs.enterUTF8("**")
	wk.New = gs.enterUTF8("new")
	wk.Lambda = gs.enterUTF8("lambda")
	wk.Super = gs.enterUTF8("super")
	wk.UntypedSuper = gs.enterUTF8("untypedSuper")
	wk.Intern = gs.enterUTF8("intern")
	wk.Each = gs.enterUTF8("each")
	wk.Merge = gs.enterUTF8("merge")
	wk.Include = gs.enterUTF8("include")
	wk.CurrentFile = gs.enterUTF8("__FILE__")

	wk.WhileTemp = gs.enterUTF8("<whileTemp>")
	wk.IfTemp = gs.enterUTF8("<ifTemp>")
	wk.ReturnTemp = gs.enterUTF8("<returnTemp>")
	wk.StatTemp = gs.enterUTF8("<statTemp>")
	wk.AssignTemp = gs.enterUTF8("<assignTemp>")
	wk.ReturnMethodTemp = gs.enterUTF8("<returnMethodTemp>")
	wk.BlockReturnTemp = gs.enterUTF8("<blockRet>")
	wk.SelfMethodTemp = gs.enterUTF8("<selfMethodTemp>")
	wk.DestructureArg = gs.enterUTF8("<destructureArg>")
	wk.FwdArgs = gs.enterUTF8("<fwdArgs>")
	wk.FwdKwargs = gs.enterUTF8("<fwdKwargs>")
	wk.FwdBlock = gs.enterUTF8("<fwdBlock>")
	wk.Magic = gs.enterUTF8("<magic>")
	wk.AmpersandLocal = gs.enterUTF8("&")
	wk.StarLocal = gs.enterUTF8("*local")
	wk.DynamicConstAssign = gs.enterUTF8("<dynamicConstAssign>")

	wk.SingletonClass = gs.enterUTF8("<singleton>")
	wk.AttachedClass = gs.enterUTF8("<attached>")

	wks := &gs.WKS
	wks.Top = gs.synthesizeClass("<top>")
	wks.Bottom = gs.synthesizeClass("<bottom>")
	wks.Root = gs.synthesizeClass("<root>")
	wks.Nil = gs.synthesizeClass("<nil>")
	wks.Todo = gs.synthesizeClass("<todo>")

	wks.NilClass = gs.synthesizeClass("NilClass")
	wks.TrueClass = gs.synthesizeClass("TrueClass")
	wks.FalseClass = gs.synthesizeClass("FalseClass")
	wks.Integer = gs.synthesizeClass("Integer")
	wks.Float = gs.synthesizeClass("Float")
	wks.String = gs.synthesizeClass("String")
	wks.Symbol = gs.synthesizeClass("Symbol")
	wks.Array = gs.synthesizeClass("Array")
	wks.Hash = gs.synthesizeClass("Hash")
	wks.Regexp = gs.synthesizeClass("Regexp")
	wks.Proc = gs.synthesizeClass("Proc")
	wks.Range = gs.synthesizeClass("Range")
	wks.Object = gs.synthesizeClass("Object")
	wks.BasicObject = gs.synthesizeClass("BasicObject")
	wks.Kernel = gs.synthesizeClass("Kernel")
	wks.Module = gs.synthesizeClass("Module")
	wks.Class = gs.synthesizeClass("Class")
	wks.Exception = gs.synthesizeClass("Exception")
	wks.StandardError = gs.synthesizeClass("StandardError")
	wks.Magic = gs.synthesizeClass("Magic")
	wks.T = gs.synthesizeClass("T")
}

// synthesizeClass interns name and allocates (or returns, if it already
// exists) the corresponding top-level class symbol, marking it completed
// with no mixins/parent. Used only for the bootstrap built-ins; user
// classes always go through EnterSymbol.
func (gs *GlobalState) synthesizeClass(name string) SymbolRef {
	nameRef := gs.enterUTF8(name)
	sym := gs.GetTopLevelClassSymbol(nameRef)
	info := gs.Syms.Info(sym)
	info.setKind(symKindClass)
	info.setCompleted()
	return sym
}

// EnterNameUTF8 interns bytes under the indexer lock.
func (gs *GlobalState) EnterNameUTF8(b []byte) NameRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Names.EnterNameUTF8(b)
}

// EnterNameUnique interns a raw UNIQUE tuple under the indexer lock.
func (gs *GlobalState) EnterNameUnique(separator NameRef, num uint16, kind UniqueNameKind, original NameRef) NameRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Names.EnterNameUnique(separator, num, kind, original)
}

// NextUniqueDesugarName mints a fresh name for the desugarer, e.g. a rescue
// temp (`rescueTemp$17`) or an mlhs temp. The tuple's number is a uint16, so
// after 65535 calls the counter wraps and an earlier tuple (and NameRef) is
// returned again for the same original.
func (gs *GlobalState) NextUniqueDesugarName(original NameRef) NameRef {
	gs.mu.Lock()
	gs.uniqueDesugarCounter++
	num := gs.uniqueDesugarCounter
	gs.mu.Unlock()
	return gs.EnterNameUnique(noName, uint16(num), UniqueDesugar, original)
}

// NextUniqueParserName mints a fresh name for the parser adapter layer,
// with the same 16-bit wrap as NextUniqueDesugarName.
func (gs *GlobalState) NextUniqueParserName(original NameRef) NameRef {
	gs.mu.Lock()
	gs.uniqueParserCounter++
	num := gs.uniqueParserCounter
	gs.mu.Unlock()
	return gs.EnterNameUnique(noName, uint16(num), UniqueParser, original)
}

// NextUniqueCFGName mints a fresh name for CFG construction, with the same
// 16-bit wrap as NextUniqueDesugarName.
func (gs *GlobalState) NextUniqueCFGName(original NameRef) NameRef {
	gs.mu.Lock()
	gs.uniqueCFGCounter++
	num := gs.uniqueCFGCounter
	gs.mu.Unlock()
	return gs.EnterNameUnique(noName, uint16(num), UniqueCFG, original)
}

// GetTopLevelClassSymbol looks up name among root's members; if absent, it
// allocates a new class SymbolInfo, registers it under root, and returns it.
// Idempotent: repeated calls with the same name return the same SymbolRef.
// Used only for bootstrap/built-in classes; user classes go through
// EnterSymbol.
func (gs *GlobalState) GetTopLevelClassSymbol(name NameRef) SymbolRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	root := gs.WKS.Root
	if root.Exists() {
		if existing, ok := gs.Syms.Info(root).Member(name); ok {
			return existing
		}
	}

	ref := gs.Syms.allocate(root, name)
	info := gs.Syms.Info(ref)
	info.setKind(symKindClass)

	if root.Exists() {
		gs.Syms.Info(root).setMember(name, ref)
	}
	return ref
}

// EnterSymbol allocates and registers a symbol under owner.members.
// Idempotent on (owner, name) for the same kind; re-entering an existing
// member with a different kind is an error.
func (gs *GlobalState) EnterSymbol(owner SymbolRef, name NameRef, isMethod bool) SymbolRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	kind := symKindField
	if isMethod {
		kind = symKindMethod
	}

	if owner.Exists() {
		if existing, ok := gs.Syms.Info(owner).Member(name); ok {
			existingInfo := gs.Syms.Info(existing)
			if existingInfo.flags.kind != symKindUnset && existingInfo.flags.kind != kind {
				gs.logger.Error("EnterSymbol kind conflict",
					zap.Uint32("owner", uint32(owner)), zap.Uint32("existing", uint32(existing)))
				panic(fmt.Sprintf("core: EnterSymbol kind conflict for existing member %d", existing))
			}
			return existing
		}
	}

	ref := gs.Syms.allocate(owner, name)
	info := gs.Syms.Info(ref)
	info.setKind(kind)

	if owner.Exists() {
		gs.Syms.Info(owner).setMember(name, ref)
	}
	return ref
}

// EnterClassSymbol is the class-flavored sibling of EnterSymbol, used by the
// desugarer/namer for ClassDef/ModuleDef nodes.
func (gs *GlobalState) EnterClassSymbol(owner SymbolRef, name NameRef) SymbolRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if owner.Exists() {
		if existing, ok := gs.Syms.Info(owner).Member(name); ok {
			existingInfo := gs.Syms.Info(existing)
			if existingInfo.flags.kind != symKindUnset && existingInfo.flags.kind != symKindClass {
				gs.logger.Error("EnterClassSymbol kind conflict",
					zap.Uint32("owner", uint32(owner)), zap.Uint32("existing", uint32(existing)))
				panic(fmt.Sprintf("core: EnterClassSymbol kind conflict for existing member %d", existing))
			}
			return existing
		}
	}

	ref := gs.Syms.allocate(owner, name)
	info := gs.Syms.Info(ref)
	info.setKind(symKindClass)

	if owner.Exists() {
		gs.Syms.Info(owner).setMember(name, ref)
	}
	return ref
}

// EnterFile loads a source file into the file table under the indexer lock.
func (gs *GlobalState) EnterFile(path, source string) FileRef {
	gs.mu.Lock()
	defer gs.mu.Unlock()
	return gs.Files.EnterFile(path, source)
}

// NameString renders a NameRef to its human-readable text, resolving a
// UNIQUE name's separator/original chain.
func (gs *GlobalState) NameString(r NameRef) string {
	n := gs.Names.Name(r)
	switch n.Kind() {
	case UTF8Name:
		return string(n.UTF8())
	case UniqueName:
		sep, num, kind, original := n.Unique()
		sepStr := ""
		if sep.Exists() {
			sepStr = gs.NameString(sep)
		}
		return fmt.Sprintf("%s%s$%d", gs.NameString(original), pick(sepStr, kind), num)
	default:
		return "<invalid-name>"
	}
}

func pick(sep string, kind UniqueNameKind) string {
	if sep != "" {
		return sep
	}
	return kind.String()
}

// NamesUsed reports the number of interned names, for diagnostics/tests.
func (gs *GlobalState) NamesUsed() int { return gs.Names.namesUsed() }

// SymbolsUsed reports the number of allocated symbols, for diagnostics/tests.
func (gs *GlobalState) SymbolsUsed() int { return gs.Syms.symbolsUsed() }
