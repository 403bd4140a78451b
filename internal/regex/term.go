package regex

import (
	"slices"
	"strings"
)

type Kind int

const (
	KindEmpty Kind = iota // ∅, matches nothing
	KindEpsilon
	KindSymbol
	KindConcat
	KindUnion
	KindStar
)

// Term is an immutable regular expression tree.
type Term struct {
	kind Kind
	sym  string
	subs []*Term
}

var (
	emptyTerm   = &Term{kind: KindEmpty}
	epsilonTerm = &Term{kind: KindEpsilon}
)

func Empty() *Term   { return emptyTerm }
func Epsilon() *Term { return epsilonTerm }

func Symbol(s string) *Term { return &Term{kind: KindSymbol, sym: s} }

func Concat(parts ...*Term) *Term {
	return &Term{kind: KindConcat, subs: slices.Clone(parts)}
}

func Union(parts ...*Term) *Term {
	return &Term{kind: KindUnion, subs: slices.Clone(parts)}
}

func Star(t *Term) *Term { return &Term{kind: KindStar, subs: []*Term{t}} }

func (t *Term) Kind() Kind        { return t.kind }
func (t *Term) Symbol() string    { return t.sym }
func (t *Term) Subterms() []*Term { return slices.Clone(t.subs) }

// Equal is syntactic tree equality, not language equality.
func Equal(a, b *Term) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil || a.kind != b.kind || a.sym != b.sym || len(a.subs) != len(b.subs) {
		return false
	}
	for i := range a.subs {
		if !Equal(a.subs[i], b.subs[i]) {
			return false
		}
	}
	return true
}

// Size counts the nodes of the tree.
func (t *Term) Size() int {
	n := 1
	for _, s := range t.subs {
		n += s.Size()
	}
	return n
}

// Glyphs are the printed forms of the two constant terms.
type Glyphs struct {
	Epsilon string
	Empty   string
}

var DefaultGlyphs = Glyphs{Epsilon: "ε", Empty: "∅"}

const metachars = `|*()\`

func (t *Term) String() string { return t.Format(DefaultGlyphs) }

// Format renders t with | for union, juxtaposition for concatenation and a
// postfix *, adding parentheses only where precedence needs them.
func (t *Term) Format(g Glyphs) string {
	var sb strings.Builder
	t.write(&sb, g)
	return sb.String()
}

func (t *Term) write(sb *strings.Builder, g Glyphs) {
	switch t.kind {
	case KindEmpty:
		sb.WriteString(g.Empty)
	case KindEpsilon:
		sb.WriteString(g.Epsilon)
	case KindSymbol:
		if strings.ContainsAny(t.sym, metachars) || strings.TrimSpace(t.sym) == "" || t.sym == g.Epsilon || t.sym == g.Empty {
			sb.WriteByte('\\')
		}
		sb.WriteString(t.sym)
	case KindConcat:
		if len(t.subs) == 0 {
			sb.WriteString(g.Epsilon)
			return
		}
		for _, s := range t.subs {
			s.writeWrapped(sb, g, s.precedence() < 2)
		}
	case KindUnion:
		if len(t.subs) == 0 {
			sb.WriteString(g.Empty)
			return
		}
		for i, s := range t.subs {
			if i > 0 {
				sb.WriteByte('|')
			}
			s.write(sb, g)
		}
	case KindStar:
		sub := t.subs[0]
		sub.writeWrapped(sb, g, sub.precedence() < 3)
		sb.WriteByte('*')
	}
}

func (t *Term) writeWrapped(sb *strings.Builder, g Glyphs, wrap bool) {
	if wrap {
		sb.WriteByte('(')
	}
	t.write(sb, g)
	if wrap {
		sb.WriteByte(')')
	}
}

// precedence is 1 for union, 2 for concatenation and 3 for atoms.
func (t *Term) precedence() int {
	switch t.kind {
	case KindUnion:
		if len(t.subs) > 1 {
			return 1
		}
		if len(t.subs) == 1 {
			return t.subs[0].precedence()
		}
	case KindConcat:
		if len(t.subs) > 1 {
			return 2
		}
		if len(t.subs) == 1 {
			return t.subs[0].precedence()
		}
	}
	return 3
}
