package regex

import "slices"

// DefaultMaxPasses bounds the number of rewrite passes Simplify runs.
const DefaultMaxPasses = 64

// Simplify rewrites t into a language-equivalent term that is usually
// smaller. It is best effort: the result need not be minimal.
func Simplify(t *Term) *Term {
	out, _ := SimplifyN(t, DefaultMaxPasses)
	return out
}

// SimplifyN runs at most maxPasses bottom-up passes and reports whether a
// fixpoint was reached. When it was not, the last pass is returned.
func SimplifyN(t *Term, maxPasses int) (*Term, bool) {
	cur := t
	for i := 0; i < maxPasses; i++ {
		next := rewrite(cur)
		if Equal(next, cur) {
			return next, true
		}
		cur = next
	}
	return cur, false
}

func rewrite(t *Term) *Term {
	switch t.kind {
	case KindStar:
		return rewriteStar(rewrite(t.subs[0]))
	case KindConcat:
		return rewriteConcat(t.subs)
	case KindUnion:
		return rewriteUnion(t.subs)
	}
	return t
}

func rewriteStar(sub *Term) *Term {
	switch sub.kind {
	case KindEmpty, KindEpsilon:
		return Epsilon()
	case KindStar:
		return sub
	case KindUnion:
		// (ε|x)* = x*
		parts := make([]*Term, 0, len(sub.subs))
		for _, p := range sub.subs {
			if p.kind != KindEpsilon {
				parts = append(parts, p)
			}
		}
		if len(parts) < len(sub.subs) {
			return Star(unionOf(parts))
		}
	}
	return Star(sub)
}

func rewriteConcat(subs []*Term) *Term {
	parts := make([]*Term, 0, len(subs))
	push := func(p *Term) {
		// x*x* = x*
		if p.kind == KindStar && len(parts) > 0 && Equal(parts[len(parts)-1], p) {
			return
		}
		parts = append(parts, p)
	}
	for _, s := range subs {
		r := rewrite(s)
		switch r.kind {
		case KindEmpty:
			return Empty()
		case KindEpsilon:
			continue
		case KindConcat:
			for _, p := range r.subs {
				push(p)
			}
		default:
			push(r)
		}
	}
	switch len(parts) {
	case 0:
		return Epsilon()
	case 1:
		return parts[0]
	}
	return &Term{kind: KindConcat, subs: parts}
}

func rewriteUnion(subs []*Term) *Term {
	parts := make([]*Term, 0, len(subs))
	push := func(p *Term) {
		for _, q := range parts {
			if Equal(p, q) {
				return
			}
		}
		parts = append(parts, p)
	}
	for _, s := range subs {
		r := rewrite(s)
		switch r.kind {
		case KindEmpty:
			continue
		case KindUnion:
			for _, p := range r.subs {
				push(p)
			}
		default:
			push(r)
		}
	}
	// ε|xx* = x* and ε|x*x = x*
	if slices.ContainsFunc(parts, func(p *Term) bool { return p.kind == KindEpsilon }) {
		for i, p := range parts {
			if base, ok := plusOf(p); ok {
				parts[i] = Star(base)
			}
		}
	}
	// ε is redundant next to another alternative that already matches it.
	if len(parts) > 1 {
		hasOtherNullable := false
		for _, p := range parts {
			if p.kind != KindEpsilon && nullable(p) {
				hasOtherNullable = true
				break
			}
		}
		if hasOtherNullable {
			kept := parts[:0]
			for _, p := range parts {
				if p.kind != KindEpsilon {
					kept = append(kept, p)
				}
			}
			parts = kept
		}
	}
	return unionOf(parts)
}

// plusOf recognizes xx* and x*x, returning x.
func plusOf(t *Term) (*Term, bool) {
	if t.kind != KindConcat || len(t.subs) < 2 {
		return nil, false
	}
	n := len(t.subs)
	if last := t.subs[n-1]; last.kind == KindStar && Equal(last.subs[0], concatOf(t.subs[:n-1])) {
		return last.subs[0], true
	}
	if first := t.subs[0]; first.kind == KindStar && Equal(first.subs[0], concatOf(t.subs[1:])) {
		return first.subs[0], true
	}
	return nil, false
}

func concatOf(parts []*Term) *Term {
	if len(parts) == 1 {
		return parts[0]
	}
	return &Term{kind: KindConcat, subs: parts}
}

func unionOf(parts []*Term) *Term {
	switch len(parts) {
	case 0:
		return Empty()
	case 1:
		return parts[0]
	}
	return &Term{kind: KindUnion, subs: parts}
}

// nullable reports whether the empty word is in the language of t.
func nullable(t *Term) bool {
	switch t.kind {
	case KindEpsilon, KindStar:
		return true
	case KindConcat:
		for _, s := range t.subs {
			if !nullable(s) {
				return false
			}
		}
		return true
	case KindUnion:
		for _, s := range t.subs {
			if nullable(s) {
				return true
			}
		}
	}
	return false
}
