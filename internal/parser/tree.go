package parser

import (
	"adder/internal/grammar"
	"adder/internal/source"
	"adder/internal/token"
)

// NodeID is a 1-based handle into a Tree's node arena. The zero value means
// "no node".
type NodeID uint32

// NoNode is the absent-node sentinel.
const NoNode NodeID = 0

// MaxNodes bounds the concrete tree. Crossing it is reported as an
// overflow, not a panic.
const MaxNodes = 1 << 20

type node struct {
	sym      grammar.Symbol
	tok      token.Token // terminals only
	span     source.Span
	children []NodeID
}

// Tree is the concrete parse tree. Nodes live in one arena and reference
// each other by NodeID.
type Tree struct {
	nodes []node
	root  NodeID
	limit int
}

// NewTree creates an empty tree with the given node budget. A non-positive
// budget selects MaxNodes.
func NewTree(limit int) *Tree {
	if limit <= 0 {
		limit = MaxNodes
	}
	return &Tree{nodes: make([]node, 0, 64), limit: limit}
}

// Root returns the start-symbol node.
func (t *Tree) Root() NodeID {
	return t.root
}

// Len returns the number of allocated nodes.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Sym returns the grammar symbol of a node.
func (t *Tree) Sym(id NodeID) grammar.Symbol {
	return t.nodes[id-1].sym
}

// IsTerminal reports whether the node is a token leaf.
func (t *Tree) IsTerminal(id NodeID) bool {
	return !t.nodes[id-1].sym.IsNonterminal()
}

// Tok returns the token of a terminal node.
func (t *Tree) Tok(id NodeID) token.Token {
	return t.nodes[id-1].tok
}

// Span returns the source extent of a node. Nonterminal spans cover all of
// their children.
func (t *Tree) Span(id NodeID) source.Span {
	return t.nodes[id-1].span
}

// NumChildren returns the child count of a node.
func (t *Tree) NumChildren(id NodeID) int {
	return len(t.nodes[id-1].children)
}

// Child returns the i-th child of a node.
func (t *Tree) Child(id NodeID, i int) NodeID {
	return t.nodes[id-1].children[i]
}

// Children returns the child slice of a node. Callers must not mutate it.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id-1].children
}

// addNonterminal allocates an interior node; ok is false when the node
// budget is exhausted.
func (t *Tree) addNonterminal(sym grammar.Symbol, parent NodeID) (NodeID, bool) {
	if len(t.nodes) >= t.limit {
		return NoNode, false
	}
	t.nodes = append(t.nodes, node{sym: sym})
	id := NodeID(len(t.nodes))
	if parent != NoNode {
		t.attach(parent, id)
	}
	return id, true
}

// addTerminal allocates a token leaf under parent.
func (t *Tree) addTerminal(tok token.Token, parent NodeID) (NodeID, bool) {
	if len(t.nodes) >= t.limit {
		return NoNode, false
	}
	t.nodes = append(t.nodes, node{sym: grammar.Term(tok.Kind), tok: tok, span: tok.Span})
	id := NodeID(len(t.nodes))
	t.attach(parent, id)
	return id, true
}

func (t *Tree) attach(parent, child NodeID) {
	p := &t.nodes[parent-1]
	p.children = append(p.children, child)
}

// finalize sets an interior node's span once all of its children are in
// place. The parser calls it when the node's rule completes.
func (t *Tree) finalize(id NodeID) {
	n := &t.nodes[id-1]
	for i, c := range n.children {
		cs := t.nodes[c-1].span
		if i == 0 {
			n.span = cs
		} else {
			n.span = n.span.Cover(cs)
		}
	}
}
