package core

import "testing"

func TestGetTopLevelClassSymbolIdempotent(t *testing.T) {
	gs := New(nil)
	name := gs.enterUTF8("Foo")
	r1 := gs.GetTopLevelClassSymbol(name)
	r2 := gs.GetTopLevelClassSymbol(name)
	if r1 != r2 {
		t.Fatalf("expected idempotent class symbol, got %d != %d", r1, r2)
	}
	if !gs.Syms.Info(r1).IsClass() {
		t.Errorf("expected synthesized top-level symbol to be a class")
	}
}

func TestEnterSymbolKindConflict(t *testing.T) {
	gs := New(nil)
	owner := gs.WKS.Object
	name := gs.enterUTF8("conflicted")
	gs.EnterSymbol(owner, name, true) // method

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic re-entering an existing member with a different kind")
		}
	}()
	gs.EnterClassSymbol(owner, name) // re-enter as class: should panic
}

func TestSymbolKindExclusive(t *testing.T) {
	gs := New(nil)
	owner := gs.WKS.Object
	name := gs.enterUTF8("m")
	sym := gs.EnterSymbol(owner, name, true)
	info := gs.Syms.Info(sym)
	if !info.IsMethod() || info.IsClass() || info.IsField() || info.IsArray() {
		t.Fatalf("expected exactly-one-kind for method symbol, got method=%v class=%v field=%v array=%v",
			info.IsMethod(), info.IsClass(), info.IsField(), info.IsArray())
	}
}

func TestCompletionStateMachine(t *testing.T) {
	gs := New(nil)
	owner := gs.WKS.Object
	name := gs.enterUTF8("Loaded")
	sym := gs.EnterClassSymbol(owner, name)
	info := gs.Syms.Info(sym)

	loaded := false
	info.setLoading(completionLoadingFromFile, func(gs *GlobalState, self SymbolRef) {
		loaded = true
		gs.Syms.Info(self).SetMixins(nil)
		gs.Syms.Info(self).setCompleted()
	})
	if info.IsCompleted() {
		t.Fatal("should not be completed yet")
	}

	_ = info.Mixins(gs, sym) // should auto-drive completion via the loader
	if !loaded {
		t.Fatal("expected Mixins to invoke the registered loader")
	}
	if !info.IsCompleted() {
		t.Fatal("expected symbol to be completed after Mixins auto-drives the loader")
	}
}

func TestMembersLastWriteWins(t *testing.T) {
	gs := New(nil)
	owner := gs.EnterClassSymbol(gs.WKS.Object, gs.enterUTF8("Scope"))
	name := gs.enterUTF8("dup")
	info := gs.Syms.Info(owner)

	a := gs.Syms.allocate(owner, name)
	b := gs.Syms.allocate(owner, name)
	info.setMember(name, a)
	info.setMember(name, b)

	members := info.Members()
	if len(members) != 1 {
		t.Fatalf("expected 1 deduplicated member, got %d", len(members))
	}
	if members[0].Sym != b {
		t.Fatalf("expected last-write-wins to keep %d, got %d", b, members[0].Sym)
	}
}

func TestNoSymbolReservedSentinel(t *testing.T) {
	if NoSymbol.Exists() {
		t.Fatal("SymbolRef(0) must not exist")
	}
}
