package parser

import (
	"context"
	"testing"

	"github.com/sorbet/sorbet-sub003/core"
)

func TestParseSimpleMethodCall(t *testing.T) {
	gs := core.New(nil)
	src := []byte("puts(1)")
	file := gs.EnterFile("a.rb", string(src))

	tree, err := New().Parse(context.Background(), gs, file, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if tree.Root == nil {
		t.Fatal("expected a non-nil root node")
	}
	if tree.Root.Tag() != "program" {
		t.Fatalf("expected root tag %q, got %q", "program", tree.Root.Tag())
	}

	loc := tree.Root.Loc()
	if loc.File != file {
		t.Fatalf("expected root Loc.File == %v, got %v", file, loc.File)
	}
	if loc.Begin != 0 || int(loc.End) != len(src) {
		t.Fatalf("expected root Loc to span the whole source, got [%d,%d)", loc.Begin, loc.End)
	}
}

func TestParseClassDefShape(t *testing.T) {
	gs := core.New(nil)
	src := []byte("class Foo\n  def bar\n    1\n  end\nend\n")
	file := gs.EnterFile("a.rb", string(src))

	tree, err := New().Parse(context.Background(), gs, file, src)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	stmts := tree.Root.Children("")
	if len(stmts) == 0 {
		t.Fatal("expected at least one top-level statement")
	}
	class := stmts[0]
	if class.Tag() != "class" {
		t.Fatalf("expected first statement tag %q, got %q", "class", class.Tag())
	}
	name := class.Field("name")
	if name == nil || name.Text() != "Foo" {
		t.Fatalf("expected class name field %q, got %v", "Foo", name)
	}
}
