package driver

import (
	"adder/internal/ast"
)

type inputKind uint8

const (
	inputText inputKind = iota
	inputBytes
	inputTree
)

// Input is the tagged source variant accepted by Compile. The variant is
// resolved once here, at the entry boundary; the pipeline never inspects
// the caller's value again.
type Input struct {
	kind        inputKind
	text        string
	bytes       []byte
	declaredLen int
	tree        *ast.Tree
}

// TextInput wraps source that arrived as a string. It is taken to be UTF-8
// already; encoding cookies are not honored on this path.
func TextInput(s string) Input {
	return Input{kind: inputText, text: s, declaredLen: -1}
}

// BytesInput wraps raw source bytes. Encoding cookies and BOMs apply.
func BytesInput(b []byte) Input {
	return Input{kind: inputBytes, bytes: b, declaredLen: -1}
}

// ViewInput wraps a byte view together with the length the caller claims it
// has. A mismatch is a content-integrity error, reported before any parsing.
func ViewInput(b []byte, declaredLen int) Input {
	return Input{kind: inputBytes, bytes: b, declaredLen: declaredLen}
}

// TreeInput wraps an already-built syntax tree. Tokenizing and parsing are
// skipped; the tree goes straight to validation.
func TreeInput(t *ast.Tree) Input {
	return Input{kind: inputTree, tree: t}
}
