package ast

import (
	"testing"

	"github.com/sorbet/sorbet-sub003/core"
)

func newGS() *core.GlobalState { return core.New(nil) }

func TestWalkVisitsEveryChild(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "1 + 2")
	loc := core.Loc{File: file, Begin: 0, End: 5}

	lhs := NewIntLiteral(loc, 1)
	rhs := NewIntLiteral(loc, 2)
	send := NewSend(loc, lhs, gs.WK.Call, []Expression{rhs}, nil, SendFlags{})

	var seen []string
	Walk(send, func(n Node) bool {
		seen = append(seen, n.nodeTag())
		return true
	}, nil)

	if len(seen) != 3 {
		t.Fatalf("expected 3 nodes visited (Send, lhs, rhs), got %d: %v", len(seen), seen)
	}
	if seen[0] != "Send" {
		t.Fatalf("expected pre-order root first, got %v", seen)
	}
}

func TestWalkInFalseSkipsSubtree(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "1 + 2")
	loc := core.Loc{File: file, Begin: 0, End: 5}

	lhs := NewIntLiteral(loc, 1)
	rhs := NewIntLiteral(loc, 2)
	send := NewSend(loc, lhs, gs.WK.Call, []Expression{rhs}, nil, SendFlags{})

	count := 0
	Walk(send, func(n Node) bool {
		count++
		return n.nodeTag() != "Send"
	}, nil)

	if count != 1 {
		t.Fatalf("expected traversal to stop after the root, got %d visits", count)
	}
}

func TestWalkOutFiresAfterChildren(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "1")
	loc := core.Loc{File: file, Begin: 0, End: 1}
	lit := NewIntLiteral(loc, 1)

	var order []string
	Walk(lit, func(n Node) bool {
		order = append(order, "in:"+n.nodeTag())
		return true
	}, func(n Node) {
		order = append(order, "out:"+n.nodeTag())
	})

	want := []string{"in:Literal", "out:Literal"}
	if len(order) != len(want) || order[0] != want[0] || order[1] != want[1] {
		t.Fatalf("got %v, want %v", order, want)
	}
}

func TestCheckSanityRejectsNilSendRecv(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "x")
	loc := core.Loc{File: file, Begin: 0, End: 1}

	send := NewSend(loc, nil, gs.WK.Call, nil, nil, SendFlags{})
	if err := CheckSanity(send); err == nil {
		t.Fatal("expected CheckSanity to reject a Send with a nil receiver")
	}
}

func TestCheckSanityRejectsUnsymboledClassDef(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "class Foo; end")
	loc := core.Loc{File: file, Begin: 0, End: 15}

	name := NewUnresolvedConstantLit(loc, nil, gs.EnterNameUTF8([]byte("Foo")))
	cd := NewClassDef(loc, loc, core.NoSymbol, ClassDefClass, name, nil, nil)
	if err := CheckSanity(cd); err == nil {
		t.Fatal("expected CheckSanity to reject a ClassDef with no Symbol")
	}
}

func TestCheckSanityAcceptsWellFormedTree(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "class Foo; def bar; 1; end; end")
	loc := core.Loc{File: file, Begin: 0, End: 32}

	fooName := gs.EnterNameUTF8([]byte("Foo"))
	fooSym := gs.EnterClassSymbol(gs.WKS.Root, fooName)
	barName := gs.EnterNameUTF8([]byte("bar"))
	barSym := gs.EnterSymbol(fooSym, barName, true)

	body := NewIntLiteral(loc, 1)
	method := NewMethodDef(loc, loc, barSym, barName, nil, body, MethodDefFlags{})
	nameExpr := NewUnresolvedConstantLit(loc, nil, fooName)
	cd := NewClassDef(loc, loc, fooSym, ClassDefClass, nameExpr, nil, []Expression{method})

	if err := CheckSanity(cd); err != nil {
		t.Fatalf("expected a well-formed tree to pass, got %v", err)
	}
}

func TestCheckSanityRejectsInvertedLoc(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "x")
	bad := core.Loc{File: file, Begin: 5, End: 1}
	lit := NewIntLiteral(bad, 1)
	if err := CheckSanity(lit); err == nil {
		t.Fatal("expected CheckSanity to reject an inverted Loc")
	}
}

func TestCheckSanityRejectsUnmarkedNestedInsSeq(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "x")
	loc := core.Loc{File: file, Begin: 0, End: 1}

	inner := NewInsSeq(loc, nil, NewIntLiteral(loc, 1))
	outer := NewInsSeq(loc, nil, inner)
	if err := CheckSanity(outer); err == nil {
		t.Fatal("expected CheckSanity to reject an InsSeq nesting another InsSeq without AllowNestedTerm")
	}

	outer.AllowNestedTerm = true
	if err := CheckSanity(outer); err != nil {
		t.Fatalf("expected AllowNestedTerm to permit nesting, got %v", err)
	}
}

func TestChildrenHashPairsKeysWithValues(t *testing.T) {
	gs := newGS()
	file := gs.EnterFile("foo.rb", "{a: 1}")
	loc := core.Loc{File: file, Begin: 0, End: 6}

	k := NewSymbolLiteral(loc, gs.EnterNameUTF8([]byte("a")))
	v := NewIntLiteral(loc, 1)
	h := NewHash(loc, []Expression{k}, []Expression{v})

	kids := Children(h)
	if len(kids) != 2 || kids[0] != Node(k) || kids[1] != Node(v) {
		t.Fatalf("expected [key, value] pairing, got %v", kids)
	}
}
