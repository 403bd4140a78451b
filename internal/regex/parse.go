package regex

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

type altNode struct {
	Seqs []*seqNode `parser:"@@ ( '|' @@ )*"`
}

type seqNode struct {
	Items []*repNode `parser:"@@+"`
}

type repNode struct {
	Atom  *atomNode `parser:"@@"`
	Stars []string  `parser:"( @'*' )*"`
}

type atomNode struct {
	Epsilon bool     `parser:"  @Epsilon"`
	Empty   bool     `parser:"| @Empty"`
	Escaped *string  `parser:"| @Escaped"`
	Char    *string  `parser:"| @Char"`
	Group   *altNode `parser:"| '(' @@ ')'"`
}

func buildParser(g Glyphs) *participle.Parser[altNode] {
	rules := []lexer.SimpleRule{
		{Name: "Whitespace", Pattern: `\s+`},
		{Name: "Escaped", Pattern: `\\.`},
	}
	if g.Epsilon != "" {
		rules = append(rules, lexer.SimpleRule{Name: "Epsilon", Pattern: regexp.QuoteMeta(g.Epsilon)})
	}
	if g.Empty != "" {
		rules = append(rules, lexer.SimpleRule{Name: "Empty", Pattern: regexp.QuoteMeta(g.Empty)})
	}
	rules = append(rules,
		lexer.SimpleRule{Name: "Punct", Pattern: `[|*()]`},
		lexer.SimpleRule{Name: "Char", Pattern: `.`},
	)
	return participle.MustBuild[altNode](
		participle.Lexer(lexer.MustSimple(rules)),
		participle.Elide("Whitespace"),
	)
}

var defaultParser = buildParser(DefaultGlyphs)

// Parse reads the notation produced by Term.Format: | for union,
// juxtaposition for concatenation, postfix *, parentheses, a backslash to
// quote a metacharacter, and the epsilon and empty glyphs. Whitespace is
// ignored and a blank input is ε.
func Parse(s string, opts ...Option) (*Term, error) {
	if strings.TrimSpace(s) == "" {
		return Epsilon(), nil
	}
	o := newOptions(opts)
	p := defaultParser
	if o.glyphs != DefaultGlyphs {
		p = buildParser(o.glyphs)
	}
	ast, err := p.ParseString("", s)
	if err != nil {
		return nil, ErrSyntax.Clone().
			WithMetadata(map[string]any{"input": s, "reason": err.Error()})
	}
	return ast.term(), nil
}

func (n *altNode) term() *Term {
	if len(n.Seqs) == 1 {
		return n.Seqs[0].term()
	}
	parts := make([]*Term, 0, len(n.Seqs))
	for _, s := range n.Seqs {
		parts = append(parts, s.term())
	}
	return Union(parts...)
}

func (n *seqNode) term() *Term {
	if len(n.Items) == 1 {
		return n.Items[0].term()
	}
	parts := make([]*Term, 0, len(n.Items))
	for _, it := range n.Items {
		parts = append(parts, it.term())
	}
	return Concat(parts...)
}

func (n *repNode) term() *Term {
	t := n.Atom.term()
	for range n.Stars {
		t = Star(t)
	}
	return t
}

func (n *atomNode) term() *Term {
	switch {
	case n.Epsilon:
		return Epsilon()
	case n.Empty:
		return Empty()
	case n.Escaped != nil:
		return Symbol(strings.TrimPrefix(*n.Escaped, `\`))
	case n.Char != nil:
		return Symbol(*n.Char)
	case n.Group != nil:
		return n.Group.term()
	}
	return Empty()
}
