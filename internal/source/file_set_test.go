package source

import (
	"testing"
)

func TestResolveLineCol(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("abc\ndef\n"))

	start, end := fs.Resolve(Span{File: id, Start: 4, End: 7})
	if start.Line != 2 || start.Col != 1 {
		t.Fatalf("unexpected start: %+v", start)
	}
	if end.Line != 2 || end.Col != 4 {
		t.Fatalf("unexpected end: %+v", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Fatalf("line %d: got %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestGetLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("a.py", []byte("x = 1\n"))
	second := fs.AddVirtual("a.py", []byte("x = 2\n"))

	id, ok := fs.GetLatest("a.py")
	if !ok || id != second {
		t.Fatalf("expected latest id %d, got %d (ok=%v)", second, id, ok)
	}
}

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("spam")
	b := in.Intern("spam")
	if a != b {
		t.Fatalf("expected stable IDs, got %d and %d", a, b)
	}
	if got := in.MustLookup(a); got != "spam" {
		t.Fatalf("unexpected lookup: %q", got)
	}
	if in.Intern("eggs") == a {
		t.Fatal("distinct strings must get distinct IDs")
	}
}
