package core

import (
	"strconv"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"
)

func TestOffset2Pos(t *testing.T) {
	src := "abc\ndef\nghi"
	cases := []struct {
		off  uint32
		want Detail
	}{
		{0, Detail{Line: 1, Column: 0}},
		{3, Detail{Line: 1, Column: 3}},
		{4, Detail{Line: 2, Column: 0}},
		{7, Detail{Line: 2, Column: 3}},
		{8, Detail{Line: 3, Column: 0}},
	}
	for _, c := range cases {
		got := offset2Pos(src, c.off)
		if got != c.want {
			t.Errorf("offset2Pos(%d) = %+v, want %+v", c.off, got, c.want)
		}
	}
}

func TestLocNoneAndJoin(t *testing.T) {
	f := FileRef(1)
	none := NoneLoc(f)
	if !none.IsNone() {
		t.Fatal("NoneLoc must report IsNone")
	}

	a := Loc{File: f, Begin: 2, End: 5}
	b := Loc{File: f, Begin: 10, End: 20}
	joined := a.Join(b)
	if joined.Begin != 2 || joined.End != 20 {
		t.Errorf("Join = %+v, want begin=2 end=20", joined)
	}

	if got := none.Join(a); got != a {
		t.Errorf("Join with None should return the other loc unchanged, got %+v", got)
	}
	if got := a.Join(none); got != a {
		t.Errorf("Join with None should return the other loc unchanged, got %+v", got)
	}
}

func TestFileTableEnterAndPosition(t *testing.T) {
	ft := newFileTable()
	ref := ft.EnterFile("foo.rb", "a\nb")
	if !ref.Exists() {
		t.Fatal("expected a real FileRef")
	}
	loc := Loc{File: ref, Begin: 2, End: 3}
	begin, end := ft.Position(loc)
	if begin.Line != 2 || begin.Column != 0 {
		t.Errorf("begin = %+v, want line=2 col=0", begin)
	}
	if end.Line != 2 || end.Column != 1 {
		t.Errorf("end = %+v, want line=2 col=1", end)
	}
}

// TestOffset2PosGoldenFixtures reads golden (source, offset->Detail) cases
// out of a txtar archive rather than hardcoding them as Go literals, so a new
// case is a diff to the archive, not to test code.
func TestOffset2PosGoldenFixtures(t *testing.T) {
	archive := txtar.Parse([]byte(`
-- source.rb --
abc
def
ghi
-- offsets.txt --
0 1 0
3 1 3
4 2 0
7 2 3
8 3 0
`))

	var source, offsetsTable string
	for _, f := range archive.Files {
		switch f.Name {
		case "source.rb":
			source = string(f.Data)
		case "offsets.txt":
			offsetsTable = string(f.Data)
		}
	}
	if source == "" || offsetsTable == "" {
		t.Fatal("golden archive missing source.rb or offsets.txt")
	}

	for _, line := range strings.Split(strings.TrimSpace(offsetsTable), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 3 {
			t.Fatalf("malformed offsets.txt line %q", line)
		}
		off, err := strconv.ParseUint(fields[0], 10, 32)
		if err != nil {
			t.Fatalf("bad offset in %q: %v", line, err)
		}
		wantLine, err := strconv.ParseUint(fields[1], 10, 32)
		if err != nil {
			t.Fatalf("bad line in %q: %v", line, err)
		}
		wantCol, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			t.Fatalf("bad column in %q: %v", line, err)
		}

		got := offset2Pos(source, uint32(off))
		want := Detail{Line: uint32(wantLine), Column: uint32(wantCol)}
		if got != want {
			t.Errorf("offset2Pos(%d) = %+v, want %+v", off, got, want)
		}
	}
}
