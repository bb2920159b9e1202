package lexer_test

import (
	"strings"
	"testing"

	"adder/internal/diag"
	"adder/internal/lexer"
	"adder/internal/source"
	"adder/internal/token"
)

// makeTestLexer builds a lexer over a virtual file.
func makeTestLexer(t *testing.T, input string, opts lexer.Options) *lexer.Lexer {
	t.Helper()
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.adr", []byte(input))
	return lexer.New(fs.Get(fileID), opts)
}

// collectKinds tokenizes to ENDMARKER and fails the test on any error detail.
func collectKinds(t *testing.T, input string) []token.Kind {
	t.Helper()
	lx := makeTestLexer(t, input, lexer.Options{})
	var kinds []token.Kind
	for {
		tok, det := lx.Next()
		if det != nil {
			t.Fatalf("unexpected error detail %v on input %q", det.Kind, input)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EndMarker {
			return kinds
		}
	}
}

// tokenizeUntilError drives the lexer until it reports a detail.
func tokenizeUntilError(t *testing.T, input string) *diag.Detail {
	t.Helper()
	lx := makeTestLexer(t, input, lexer.Options{})
	for i := 0; i < 10000; i++ {
		tok, det := lx.Next()
		if det != nil {
			return det
		}
		if tok.Kind == token.EndMarker {
			t.Fatalf("input %q tokenized cleanly, wanted an error", input)
		}
	}
	t.Fatalf("lexer did not terminate on %q", input)
	return nil
}

func assertKinds(t *testing.T, got, want []token.Kind) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: got %s, want %s (full: %v)", i, got[i], want[i], got)
		}
	}
}

func TestSimpleStatement(t *testing.T) {
	got := collectKinds(t, "x = 1 + 2\n")
	assertKinds(t, got, []token.Kind{
		token.Name, token.Assign, token.Number, token.Plus, token.Number,
		token.Newline, token.Newline, token.EndMarker,
	})
}

func TestIndentDedentBalance(t *testing.T) {
	src := "if x:\n    if y:\n        pass\n    pass\npass\n"
	got := collectKinds(t, src)
	assertKinds(t, got, []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwPass, token.Newline,
		token.Dedent, token.KwPass, token.Newline,
		token.Dedent, token.KwPass, token.Newline,
		token.Newline, token.EndMarker,
	})
}

func TestMultipleDedentsAtOnce(t *testing.T) {
	src := "if x:\n    if y:\n        pass\npass\n"
	got := collectKinds(t, src)
	assertKinds(t, got, []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwPass, token.Newline,
		token.Dedent, token.Dedent, token.KwPass, token.Newline,
		token.Newline, token.EndMarker,
	})
}

func TestBlankLinesAndCommentsAreSkipped(t *testing.T) {
	src := "# leading comment\n\n   \nx = 1  # trailing\n\n# only a comment"
	got := collectKinds(t, src)
	assertKinds(t, got, []token.Kind{
		token.Name, token.Assign, token.Number, token.Newline,
		token.Newline, token.EndMarker,
	})
}

func TestParenthesesSuppressNewline(t *testing.T) {
	src := "f(a,\n  b)\n"
	got := collectKinds(t, src)
	assertKinds(t, got, []token.Kind{
		token.Name, token.LParen, token.Name, token.Comma, token.Name,
		token.RParen, token.Newline, token.Newline, token.EndMarker,
	})
}

func TestLineContinuation(t *testing.T) {
	got := collectKinds(t, "x = 1 + \\\n2\n")
	assertKinds(t, got, []token.Kind{
		token.Name, token.Assign, token.Number, token.Plus, token.Number,
		token.Newline, token.Newline, token.EndMarker,
	})

	det := tokenizeUntilError(t, "x = 1 + \\ 2\n")
	if det.Kind != diag.KindLineCont {
		t.Fatalf("got %v, want KindLineCont", det.Kind)
	}
}

func TestImpliedDedentAtEOF(t *testing.T) {
	got := collectKinds(t, "if x:\n    pass")
	assertKinds(t, got, []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwPass, token.Newline, token.Dedent,
		token.Newline, token.EndMarker,
	})
}

func TestDontImplyDedent(t *testing.T) {
	lx := makeTestLexer(t, "if x:\n    pass", lexer.Options{DontImplyDedent: true})
	var kinds []token.Kind
	for {
		tok, det := lx.Next()
		if det != nil {
			t.Fatalf("unexpected detail %v", det.Kind)
		}
		kinds = append(kinds, tok.Kind)
		if tok.Kind == token.EndMarker {
			break
		}
	}
	assertKinds(t, kinds, []token.Kind{
		token.KwIf, token.Name, token.Colon, token.Newline,
		token.Indent, token.KwPass, token.EndMarker,
	})
}

func TestInconsistentTabsAndSpaces(t *testing.T) {
	det := tokenizeUntilError(t, "if x:\n\tpass\n        pass\n")
	if det.Kind != diag.KindTabSpace {
		t.Fatalf("got %v, want KindTabSpace", det.Kind)
	}
	if det.Line != 3 {
		t.Fatalf("error line = %d, want 3", det.Line)
	}
}

func TestDedentMismatch(t *testing.T) {
	det := tokenizeUntilError(t, "if x:\n    pass\n  pass\n")
	if det.Kind != diag.KindDedent {
		t.Fatalf("got %v, want KindDedent", det.Kind)
	}
}

func TestIndentTooDeep(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < lexer.MaxIndent+1; i++ {
		sb.WriteString(strings.Repeat(" ", i))
		sb.WriteString("if x:\n")
	}
	det := tokenizeUntilError(t, sb.String())
	if det.Kind != diag.KindTooDeep {
		t.Fatalf("got %v, want KindTooDeep", det.Kind)
	}
}

func TestUnterminatedStrings(t *testing.T) {
	det := tokenizeUntilError(t, "x = \"abc\ny = 2\n")
	if det.Kind != diag.KindEOLString {
		t.Fatalf("got %v, want KindEOLString", det.Kind)
	}

	det = tokenizeUntilError(t, "x = \"\"\"abc\ndef\n")
	if det.Kind != diag.KindEOFString {
		t.Fatalf("got %v, want KindEOFString", det.Kind)
	}
	if det.Line != 1 {
		t.Fatalf("triple-quote error line = %d, want opening line 1", det.Line)
	}
}

func TestStringLiterals(t *testing.T) {
	cases := []struct {
		input string
		text  string
	}{
		{`x = 'a'` + "\n", `'a'`},
		{`x = ''` + "\n", `''`},
		{`x = "a\"b"` + "\n", `"a\"b"`},
		{`x = r'\n'` + "\n", `r'\n'`},
		{`x = b"bytes"` + "\n", `b"bytes"`},
		{`x = rb'\x00'` + "\n", `rb'\x00'`},
		{"x = '''line\nline''' \n", "'''line\nline'''"},
		{`x = """emb'edded"quote"""` + "\n", `"""emb'edded"quote"""`},
	}
	for _, tc := range cases {
		lx := makeTestLexer(t, tc.input, lexer.Options{})
		var str *token.Token
		for {
			tok, det := lx.Next()
			if det != nil {
				t.Fatalf("input %q: unexpected detail %v", tc.input, det.Kind)
			}
			if tok.Kind == token.String {
				str = &tok
			}
			if tok.Kind == token.EndMarker {
				break
			}
		}
		if str == nil {
			t.Fatalf("input %q: no STRING token", tc.input)
		}
		if str.Text != tc.text {
			t.Fatalf("input %q: STRING text %q, want %q", tc.input, str.Text, tc.text)
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"42", token.Number},
		{"0x1F", token.Number},
		{"0o755", token.Number},
		{"0b1010", token.Number},
		{"1_000_000", token.Number},
		{"3.14", token.Number},
		{".5", token.Number},
		{"1.", token.Number},
		{"1e10", token.Number},
		{"1e-5", token.Number},
		{"2.5E+3", token.Number},
		{"0b102", token.ErrorToken},
		{"0x", token.ErrorToken},
		{"1_", token.ErrorToken},
		{"1__0", token.ErrorToken},
		{"1_.5", token.ErrorToken},
		{"1e", token.ErrorToken},
		{"1e+", token.ErrorToken},
		{"123abc", token.ErrorToken},
	}
	for _, tc := range cases {
		lx := makeTestLexer(t, tc.input+"\n", lexer.Options{})
		tok, det := lx.Next()
		if det != nil {
			t.Fatalf("input %q: unexpected detail %v", tc.input, det.Kind)
		}
		if tok.Kind != tc.kind {
			t.Fatalf("input %q: kind %s, want %s", tc.input, tok.Kind, tc.kind)
		}
		if tok.Text != tc.input {
			t.Fatalf("input %q: text %q", tc.input, tok.Text)
		}
	}
}

func TestOperators(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"+", token.Plus},
		{"+=", token.PlusAssign},
		{"**", token.DoubleStar},
		{"**=", token.DoubleStarAssign},
		{"//", token.DoubleSlash},
		{"//=", token.DoubleSlashAssign},
		{"<", token.Lt},
		{"<=", token.LtEq},
		{"<>", token.NotEq},
		{"!=", token.NotEq},
		{"==", token.EqEq},
		{"=", token.Assign},
		{"!", token.ErrorToken},
		{"$", token.ErrorToken},
		{"?", token.ErrorToken},
	}
	for _, tc := range cases {
		lx := makeTestLexer(t, "x "+tc.input+" y\n", lexer.Options{})
		if _, det := lx.Next(); det != nil { // x
			t.Fatalf("input %q: unexpected detail", tc.input)
		}
		tok, det := lx.Next()
		if det != nil {
			t.Fatalf("input %q: unexpected detail %v", tc.input, det.Kind)
		}
		if tok.Kind != tc.kind {
			t.Fatalf("input %q: kind %s, want %s", tc.input, tok.Kind, tc.kind)
		}
		if tok.Text != tc.input {
			t.Fatalf("input %q: text %q", tc.input, tok.Text)
		}
	}
}

func TestKeywordsAndNames(t *testing.T) {
	got := collectKinds(t, "while not done: pass\n")
	assertKinds(t, got, []token.Kind{
		token.KwWhile, token.KwNot, token.Name, token.Colon, token.KwPass,
		token.Newline, token.Newline, token.EndMarker,
	})
}

func TestUnicodeIdentifiers(t *testing.T) {
	lx := makeTestLexer(t, "héllo = 1\n", lexer.Options{})
	tok, det := lx.Next()
	if det != nil {
		t.Fatalf("unexpected detail %v", det.Kind)
	}
	if tok.Kind != token.Name || tok.Text != "héllo" {
		t.Fatalf("got %s %q, want NAME héllo", tok.Kind, tok.Text)
	}

	errDet := tokenizeUntilError(t, "€ = 1\n")
	if errDet.Kind != diag.KindIdentifier {
		t.Fatalf("got %v, want KindIdentifier", errDet.Kind)
	}
}

func TestErrorDetailIsLatched(t *testing.T) {
	lx := makeTestLexer(t, "x = \"abc\n", lexer.Options{})
	var first *diag.Detail
	for i := 0; i < 100 && first == nil; i++ {
		_, first = lx.Next()
	}
	if first == nil {
		t.Fatal("no detail produced")
	}
	_, second := lx.Next()
	if second != first {
		t.Fatal("detail not latched across calls")
	}
}

func TestStringPrefixBeforeQuote(t *testing.T) {
	// A name that merely starts with a prefix letter stays a name.
	got := collectKinds(t, "fx = f'v'\n")
	assertKinds(t, got, []token.Kind{
		token.Name, token.Assign, token.String, token.Newline,
		token.Newline, token.EndMarker,
	})
}
