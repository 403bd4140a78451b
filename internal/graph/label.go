package graph

import (
	"regexp"
	"strings"

	"github.com/alecthomas/participle/v2/lexer"

	"fap/internal/automaton"
)

// DefaultEpsilonGlyph is how an editor writes the empty move on an edge.
const DefaultEpsilonGlyph = "ε"

func labelLexer(glyph string) *lexer.StatefulDefinition {
	rules := make([]lexer.SimpleRule, 0, 3)
	if glyph != "" {
		rules = append(rules, lexer.SimpleRule{Name: "Epsilon", Pattern: regexp.QuoteMeta(glyph)})
	}
	rules = append(rules,
		lexer.SimpleRule{Name: "Sep", Pattern: `[\s,]+`},
		lexer.SimpleRule{Name: "Char", Pattern: `.`},
	)
	return lexer.MustSimple(rules)
}

var defaultLabelLexer = labelLexer(DefaultEpsilonGlyph)

// ParseLabel splits an edge label into its symbols. Every rune is a symbol,
// commas and whitespace separate, and glyph stands for epsilon. Duplicates
// are kept once, in order of first appearance.
func ParseLabel(label, glyph string) []string {
	def := defaultLabelLexer
	if glyph != DefaultEpsilonGlyph {
		def = labelLexer(glyph)
	}
	lex, err := def.Lex("", strings.NewReader(label))
	if err != nil {
		return nil
	}
	tokens, err := lexer.ConsumeAll(lex)
	if err != nil {
		return nil
	}
	types := def.Symbols()
	seen := map[string]bool{}
	var out []string
	for _, tok := range tokens {
		var sym string
		switch tok.Type {
		case types["Char"]:
			sym = tok.Value
		case types["Epsilon"]:
			sym = automaton.Epsilon
		default:
			continue
		}
		if !seen[sym] {
			seen[sym] = true
			out = append(out, sym)
		}
	}
	return out
}

// FormatLabel is the inverse of ParseLabel.
func FormatLabel(symbols []string, glyph string) string {
	parts := make([]string, 0, len(symbols))
	for _, sym := range symbols {
		if sym == automaton.Epsilon {
			sym = glyph
		}
		parts = append(parts, sym)
	}
	return strings.Join(parts, ",")
}
