package parser

import (
	"adder/internal/diag"
	"adder/internal/grammar"
	"adder/internal/source"
	"adder/internal/token"
)

// MaxStackDepth bounds the pushdown stack. Deeply nested input trips it
// long before the goroutine stack is in danger.
const MaxStackDepth = 1500

// Options configures one parse.
type Options struct {
	// BarryAsBDFL makes '<>' the only accepted inequality spelling.
	BarryAsBDFL bool
	// DontImplyDedent suppresses the implied trailing NEWLINE/DEDENT
	// tokens (interactive mode).
	DontImplyDedent bool
	// MaxNodes overrides the parse tree node budget; zero means MaxNodes.
	MaxNodes int
}

type stackEntry struct {
	dfa   *grammar.DFA
	state uint8
	node  NodeID
}

// Parser is a pushdown automaton over the grammar tables. Tokens are fed
// one at a time with AddToken; the concrete tree grows as rules complete.
type Parser struct {
	g     *grammar.Grammar
	file  *source.File
	tree  *Tree
	stack []stackEntry
	opts  Options
	done  bool
}

// New creates a parser for the given start rule.
func New(file *source.File, start grammar.Symbol, opts Options) *Parser {
	g := grammar.Tables()
	tree := NewTree(opts.MaxNodes)
	root, _ := tree.addNonterminal(start, NoNode)
	tree.root = root
	return &Parser{
		g:     g,
		file:  file,
		tree:  tree,
		stack: []stackEntry{{dfa: g.DFA(start), state: 0, node: root}},
		opts:  opts,
	}
}

// Done reports whether the start rule has been completed.
func (p *Parser) Done() bool {
	return p.done
}

// Tree returns the concrete parse tree built so far.
func (p *Parser) Tree() *Tree {
	return p.tree
}

// AddToken feeds one token to the automaton.
func (p *Parser) AddToken(tok token.Token) *diag.Detail {
	for {
		if len(p.stack) == 0 {
			p.done = true
			return nil
		}
		e := &p.stack[len(p.stack)-1]
		st := &e.dfa.States[e.state]

		arc, found := p.selectArc(st, tok.Kind)
		if found {
			if arc.Label.IsNonterminal() {
				if len(p.stack) >= MaxStackDepth {
					return p.detailFor(diag.KindTooDeep, tok)
				}
				child, ok := p.tree.addNonterminal(arc.Label, e.node)
				if !ok {
					return p.detailFor(diag.KindOverflow, tok)
				}
				e.state = arc.Target
				p.stack = append(p.stack, stackEntry{dfa: p.g.DFA(arc.Label), state: 0, node: child})
				continue
			}

			if det := p.checkInequality(tok); det != nil {
				return det
			}
			if _, ok := p.tree.addTerminal(tok, e.node); !ok {
				return p.detailFor(diag.KindOverflow, tok)
			}
			e.state = arc.Target
			p.popCompleted()
			return nil
		}

		if st.Accept {
			// The rule is complete here; hand the token to the caller.
			p.tree.finalize(e.node)
			p.stack = p.stack[:len(p.stack)-1]
			if len(p.stack) == 0 {
				p.done = true
				return nil
			}
			continue
		}

		return p.syntaxDetail(st, tok)
	}
}

// selectArc picks the unique arc the lookahead can take.
func (p *Parser) selectArc(st *grammar.State, k token.Kind) (grammar.Arc, bool) {
	for _, a := range st.Arcs {
		if p.g.StartsWith(a.Label, k) {
			return a, true
		}
	}
	return grammar.Arc{}, false
}

// popCompleted unwinds frames whose state accepts and has no way forward.
func (p *Parser) popCompleted() {
	for len(p.stack) > 0 {
		top := &p.stack[len(p.stack)-1]
		s := &top.dfa.States[top.state]
		if !s.Accept || len(s.Arcs) > 0 {
			return
		}
		p.tree.finalize(top.node)
		p.stack = p.stack[:len(p.stack)-1]
	}
	p.done = true
}

// checkInequality enforces the inequality spelling. Both '!=' and '<>'
// tokenize as NotEq; which one is legal depends on the flag.
func (p *Parser) checkInequality(tok token.Token) *diag.Detail {
	if tok.Kind != token.NotEq {
		return nil
	}
	if p.opts.BarryAsBDFL {
		if tok.Text != "<>" {
			det := p.detailFor(diag.KindSyntax, tok)
			det.Expected = token.NotEq
			return det
		}
		return nil
	}
	if tok.Text == "<>" {
		return p.detailFor(diag.KindSyntax, tok)
	}
	return nil
}

// syntaxDetail classifies a token the automaton cannot consume.
func (p *Parser) syntaxDetail(st *grammar.State, tok token.Token) *diag.Detail {
	switch tok.Kind {
	case token.ErrorToken:
		return p.detailFor(diag.KindToken, tok)
	case token.EndMarker:
		return p.detailFor(diag.KindEOF, tok)
	}
	det := p.detailFor(diag.KindSyntax, tok)
	det.Token = tok.Kind
	if len(st.Arcs) == 1 && !st.Arcs[0].Label.IsNonterminal() {
		det.Expected = st.Arcs[0].Label.Kind()
	}
	return det
}

// detailFor builds a detail anchored at the token's start position.
func (p *Parser) detailFor(kind diag.Kind, tok token.Token) *diag.Detail {
	pos := p.file.Pos(tok.Span.Start)
	return &diag.Detail{
		Kind:     kind,
		Line:     int(pos.Line),
		Offset:   int(pos.Col - 1),
		Text:     p.file.GetLine(pos.Line),
		Filename: p.file.Path,
	}
}
