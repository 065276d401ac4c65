package core

import "testing"

func TestBootstrapReservesWellKnowns(t *testing.T) {
	gs := New(nil)

	if !gs.WK.Initialize.Exists() || gs.NameString(gs.WK.Initialize) != "initialize" {
		t.Fatalf("expected <initialize> reserved name")
	}
	if !gs.WKS.Object.Exists() {
		t.Fatalf("expected Object reserved class symbol")
	}
	if !gs.Syms.Info(gs.WKS.Object).IsClass() {
		t.Fatalf("expected Object to be a class symbol")
	}
	if !gs.Syms.Info(gs.WKS.Object).IsCompleted() {
		t.Fatalf("expected bootstrap classes to be completed")
	}
}

func TestNameIdempotenceAcrossGlobalState(t *testing.T) {
	gs := New(nil)
	r1 := gs.EnterNameUTF8([]byte("hello"))
	r2 := gs.EnterNameUTF8([]byte("hello"))
	if r1 != r2 {
		t.Fatalf("expected idempotent intern through GlobalState, got %d != %d", r1, r2)
	}
}

func TestUniqueDesugarNamesDoNotCollide(t *testing.T) {
	gs := New(nil)
	orig := gs.enterUTF8("rescueTemp")
	a := gs.NextUniqueDesugarName(orig)
	b := gs.NextUniqueDesugarName(orig)
	if a == b {
		t.Fatalf("expected successive unique desugar names to differ")
	}
}

func TestEnterFileReservesNoFileSentinel(t *testing.T) {
	gs := New(nil)
	if NoFile.Exists() {
		t.Fatal("FileRef(0) must not exist")
	}
	ref := gs.EnterFile("a.rb", "puts 1")
	if !ref.Exists() {
		t.Fatal("expected a real FileRef from EnterFile")
	}
}
