package core

import "testing"

func TestEnterNameUTF8Idempotent(t *testing.T) {
	nt := newNameTable()
	r1 := nt.EnterNameUTF8([]byte("foo"))
	r2 := nt.EnterNameUTF8([]byte("foo"))
	if r1 != r2 {
		t.Fatalf("expected idempotent intern, got %d != %d", r1, r2)
	}
	if got := nt.Name(r1).String(); got != "foo" {
		t.Errorf("Name(%d) = %q, want %q", r1, got, "foo")
	}
}

func TestEnterNameUTF8Distinct(t *testing.T) {
	nt := newNameTable()
	r1 := nt.EnterNameUTF8([]byte("foo"))
	r2 := nt.EnterNameUTF8([]byte("bar"))
	if r1 == r2 {
		t.Fatalf("expected distinct names to get distinct refs")
	}
}

func TestEnterNameUniqueIdempotent(t *testing.T) {
	nt := newNameTable()
	orig := nt.EnterNameUTF8([]byte("x"))
	r1 := nt.EnterNameUnique(noName, 17, UniqueDesugar, orig)
	r2 := nt.EnterNameUnique(noName, 17, UniqueDesugar, orig)
	if r1 != r2 {
		t.Fatalf("expected idempotent unique intern, got %d != %d", r1, r2)
	}

	// A different num must produce a distinct name.
	r3 := nt.EnterNameUnique(noName, 18, UniqueDesugar, orig)
	if r3 == r1 {
		t.Fatalf("expected different num to produce a distinct name")
	}
}

func TestNameTableGrowthPreservesContents(t *testing.T) {
	nt := newNameTable()
	refs := make([]NameRef, 0, 2000)
	for i := 0; i < 2000; i++ {
		b := []byte{byte(i), byte(i >> 8), byte(i >> 16), 'x'}
		refs = append(refs, nt.EnterNameUTF8(b))
	}
	for i, r := range refs {
		b := []byte{byte(i), byte(i >> 8), byte(i >> 16), 'x'}
		if string(nt.Name(r).UTF8()) != string(b) {
			t.Fatalf("name %d corrupted after growth", i)
		}
	}
	// No reuse: re-interning any prior name returns the same ref.
	for i, r := range refs {
		b := []byte{byte(i), byte(i >> 8), byte(i >> 16), 'x'}
		if got := nt.EnterNameUTF8(b); got != r {
			t.Fatalf("re-interning name %d returned a different ref: %d != %d", i, got, r)
		}
	}
}

func TestNoNameReservedSentinel(t *testing.T) {
	if noName.Exists() {
		t.Fatal("NameRef(0) must not exist")
	}
}
