package core

// SymbolRef is a stable u32 handle into the Symbol arena. Index 0 is the
// reserved "no symbol" sentinel.
type SymbolRef uint32

// NoSymbol is the reserved sentinel SymbolRef.
const NoSymbol SymbolRef = 0

// Exists reports whether r refers to an actual symbol.
func (r SymbolRef) Exists() bool { return r != NoSymbol }

// symKind is the exactly-one-of-four kind tag packed into SymbolInfo.flags.
type symKind uint8

const (
	symKindUnset symKind = iota
	symKindClass
	symKindMethod
	symKindField
	symKindArray
)

// completionState is the four-state completion machine packed into flags.
type completionState uint8

const (
	completionUninitialized completionState = iota
	completionLoadingFromFile
	completionLoadingFromJar
	completionCompleted
)

// Symbol bit-packed flags layout (specification, not bit-exact with the
// original C++ packing, but same partition): kind (not independent bits --
// modeled as an enum so "exactly one kind" is structurally enforced),
// completion state, and independent modifier booleans.
type symbolFlags struct {
	kind       symKind
	completion completionState

	isAbstract       bool
	isOverride        bool
	isOverloadable    bool
	isPrivate         bool
	isProtected       bool
	isSelfMethod      bool
	isDSLSynthesized  bool
}

// SymbolInfo records one declaration: a class/module, method, field, or
// array-element placeholder.
type SymbolInfo struct {
	owner SymbolRef
	name  NameRef
	flags symbolFlags

	// argumentsOrMixins is a reused slot: for classes, mixin/ancestor refs
	// in linearization order; for methods, positional+keyword+block
	// argument symbols in declaration order.
	argumentsOrMixins []SymbolRef

	// resultOrParentOrLoader: for methods, the return type symbol; for
	// classes, the superclass; while loading, a caller-defined loader tag
	// (any non-zero SymbolRef the loader callback can interpret).
	resultOrParentOrLoader SymbolRef
	loader                 func(*GlobalState, SymbolRef)

	// members is an insertion-ordered, last-write-wins mapping from NameRef
	// to nested SymbolRef (nested classes, methods, constants).
	members []memberEntry
}

type memberEntry struct {
	name NameRef
	sym  SymbolRef
}

// Owner returns the enclosing lexical scope, or NoSymbol for roots.
func (s *SymbolInfo) Owner() SymbolRef { return s.owner }

// Name returns the declared name.
func (s *SymbolInfo) Name() NameRef { return s.name }

func (s *SymbolInfo) IsClass() bool  { return s.flags.kind == symKindClass }
func (s *SymbolInfo) IsMethod() bool { return s.flags.kind == symKindMethod }
func (s *SymbolInfo) IsField() bool  { return s.flags.kind == symKindField }
func (s *SymbolInfo) IsArray() bool  { return s.flags.kind == symKindArray }

func (s *SymbolInfo) IsAbstract() bool      { return s.flags.isAbstract }
func (s *SymbolInfo) IsOverride() bool      { return s.flags.isOverride }
func (s *SymbolInfo) IsOverloadable() bool  { return s.flags.isOverloadable }
func (s *SymbolInfo) IsPrivate() bool       { return s.flags.isPrivate }
func (s *SymbolInfo) IsProtected() bool     { return s.flags.isProtected }
func (s *SymbolInfo) IsSelfMethod() bool    { return s.flags.isSelfMethod }
func (s *SymbolInfo) IsDSLSynthesized() bool { return s.flags.isDSLSynthesized }

func (s *SymbolInfo) SetAbstract()      { s.flags.isAbstract = true }
func (s *SymbolInfo) SetOverride()      { s.flags.isOverride = true }
func (s *SymbolInfo) SetOverloadable()  { s.flags.isOverloadable = true }
func (s *SymbolInfo) SetPrivate()       { s.flags.isPrivate = true }
func (s *SymbolInfo) SetProtected()     { s.flags.isProtected = true }
func (s *SymbolInfo) SetSelfMethod()    { s.flags.isSelfMethod = true }
func (s *SymbolInfo) SetDSLSynthesized() { s.flags.isDSLSynthesized = true }

// IsCompleted reports whether the completion state machine has reached
// Completed.
func (s *SymbolInfo) IsCompleted() bool { return s.flags.completion == completionCompleted }

// setKind sets the kind exactly once; a later call with a different kind is
// a logic error (kind exclusivity is monotonic, per invariant).
func (s *SymbolInfo) setKind(k symKind) {
	if s.flags.kind != symKindUnset && s.flags.kind != k {
		panic("core: symbol kind downgrade/conflict: cannot change an already-kinded symbol")
	}
	s.flags.kind = k
}

// setCompleted must be preceded by setKind; it is a logic error to complete
// an unkinded symbol.
func (s *SymbolInfo) setCompleted() {
	if s.flags.kind == symKindUnset {
		panic("core: cannot complete a symbol before its kind is set")
	}
	s.flags.completion = completionCompleted
	s.loader = nil
}

func (s *SymbolInfo) setLoading(state completionState, loader func(*GlobalState, SymbolRef)) {
	if s.flags.completion == completionCompleted {
		panic("core: cannot move a completed symbol back to a loading state")
	}
	s.flags.completion = state
	s.loader = loader
}

// Arguments returns the method's positional+keyword+block argument symbols
// in declaration order. Panics if s is a class.
func (s *SymbolInfo) Arguments() []SymbolRef {
	if s.flags.kind == symKindClass {
		panic("core: Arguments called on a class symbol; use Mixins")
	}
	return s.argumentsOrMixins
}

// SetArguments replaces the method's argument list.
func (s *SymbolInfo) SetArguments(args []SymbolRef) {
	if s.flags.kind == symKindClass {
		panic("core: SetArguments called on a class symbol; use SetMixins")
	}
	s.argumentsOrMixins = args
}

// Result returns a method's return-type symbol. Panics if s is a class.
func (s *SymbolInfo) Result() SymbolRef {
	if s.flags.kind == symKindClass {
		panic("core: Result called on a class symbol; use Parent")
	}
	return s.resultOrParentOrLoader
}

func (s *SymbolInfo) SetResult(r SymbolRef) { s.resultOrParentOrLoader = r }

// ensureCompleted drives a lazily-loading symbol to completion by invoking
// its registered loader, if any and if not already complete.
func (s *SymbolInfo) ensureCompleted(gs *GlobalState, self SymbolRef) {
	if s.flags.completion == completionCompleted {
		return
	}
	if s.loader != nil {
		loader := s.loader
		s.loader = nil
		loader(gs, self)
	}
}

// Mixins returns a completed class's mixin/ancestor refs, auto-driving
// completion via the registered loader if called while still loading.
// Panics if s is not a class.
func (s *SymbolInfo) Mixins(gs *GlobalState, self SymbolRef) []SymbolRef {
	if s.flags.kind != symKindClass {
		panic("core: Mixins called on a non-class symbol")
	}
	s.ensureCompleted(gs, self)
	return s.argumentsOrMixins
}

func (s *SymbolInfo) SetMixins(mixins []SymbolRef) {
	if s.flags.kind != symKindClass {
		panic("core: SetMixins called on a non-class symbol")
	}
	s.argumentsOrMixins = mixins
}

// Parent returns a completed class's superclass, auto-driving completion
// via the registered loader if called while still loading. Panics if s is
// not a class.
func (s *SymbolInfo) Parent(gs *GlobalState, self SymbolRef) SymbolRef {
	if s.flags.kind != symKindClass {
		panic("core: Parent called on a non-class symbol")
	}
	s.ensureCompleted(gs, self)
	return s.resultOrParentOrLoader
}

func (s *SymbolInfo) SetParent(p SymbolRef) {
	if s.flags.kind != symKindClass {
		panic("core: SetParent called on a non-class symbol")
	}
	s.resultOrParentOrLoader = p
}

// Member looks up a name among this symbol's nested scope entries.
func (s *SymbolInfo) Member(name NameRef) (SymbolRef, bool) {
	for i := len(s.members) - 1; i >= 0; i-- {
		if s.members[i].name == name {
			return s.members[i].sym, true
		}
	}
	return NoSymbol, false
}

// Members returns the insertion-ordered (name, symbol) pairs, deduplicated
// by last-write-wins on a duplicate NameRef.
func (s *SymbolInfo) Members() []struct {
	Name NameRef
	Sym  SymbolRef
} {
	seen := make(map[NameRef]int, len(s.members))
	out := make([]struct {
		Name NameRef
		Sym  SymbolRef
	}, 0, len(s.members))
	for _, e := range s.members {
		if idx, ok := seen[e.name]; ok {
			out[idx].Sym = e.sym
			continue
		}
		seen[e.name] = len(out)
		out = append(out, struct {
			Name NameRef
			Sym  SymbolRef
		}{e.name, e.sym})
	}
	return out
}

// setMember records (or overwrites, last-write-wins) a member entry. Only
// `owner.members[name] == self` is permitted for every non-root symbol; the
// owner is the source of truth, so this is the only place members are
// mutated.
func (s *SymbolInfo) setMember(name NameRef, sym SymbolRef) {
	s.members = append(s.members, memberEntry{name: name, sym: sym})
}

// SymbolTable is an arena of SymbolInfo addressed by stable SymbolRef
// handles.
type SymbolTable struct {
	symbols []SymbolInfo // index 0 unused (NoSymbol sentinel)
}

func newSymbolTable() *SymbolTable {
	return &SymbolTable{symbols: make([]SymbolInfo, 1, 4096)}
}

// Info resolves a SymbolRef to its SymbolInfo.
func (t *SymbolTable) Info(r SymbolRef) *SymbolInfo {
	return &t.symbols[r]
}

func (t *SymbolTable) symbolsUsed() int { return len(t.symbols) }

// allocate appends a zero-value SymbolInfo and returns its ref. Growth is an
// ordinary Go slice append; no separate "expand" step is needed because
// append already preserves prior indices across reallocation.
func (t *SymbolTable) allocate(owner SymbolRef, name NameRef) SymbolRef {
	ref := SymbolRef(len(t.symbols))
	t.symbols = append(t.symbols, SymbolInfo{owner: owner, name: name})
	return ref
}
