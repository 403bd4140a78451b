package dfa

import (
	"fmt"
	"slices"
	"strings"
)

// prune drops states unreachable from the start.
func (t *table) prune() {
	seen := map[string]bool{t.start: true}
	queue := []string{t.start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, sym := range t.alphabet {
			if to, ok := t.next[cur][sym]; ok && !seen[to] {
				seen[to] = true
				queue = append(queue, to)
			}
		}
	}
	t.keep(seen)
}

func (t *table) keep(alive map[string]bool) {
	kept := t.states[:0]
	for _, s := range t.states {
		if alive[s] {
			kept = append(kept, s)
			continue
		}
		delete(t.next, s)
		delete(t.final, s)
	}
	t.states = kept
	for _, moves := range t.next {
		for sym, to := range moves {
			if !alive[to] {
				delete(moves, sym)
			}
		}
	}
}

// minimize merges equivalent states by iterative partition refinement: the
// first partition splits on finality, then each round splits classes whose
// members reach different classes on some symbol. A merged class is named
// after its smallest member.
func (t *table) minimize() {
	class := make(map[string]int, len(t.states))
	count := 0
	for _, s := range t.states {
		if t.final[s] {
			class[s] = 1
		} else {
			class[s] = 0
		}
	}
	for _, c := range class {
		if c+1 > count {
			count = c + 1
		}
	}

	order := slices.Clone(t.states)
	slices.SortFunc(order, naturalCompare)
	for {
		sigs := map[string]int{}
		next := make(map[string]int, len(order))
		for _, s := range order {
			var sb strings.Builder
			fmt.Fprintf(&sb, "%d", class[s])
			for _, sym := range t.alphabet {
				to, ok := t.next[s][sym]
				if !ok {
					sb.WriteString(",-")
					continue
				}
				fmt.Fprintf(&sb, ",%d", class[to])
			}
			sig := sb.String()
			id, ok := sigs[sig]
			if !ok {
				id = len(sigs)
				sigs[sig] = id
			}
			next[s] = id
		}
		stable := len(sigs) == count
		class, count = next, len(sigs)
		if stable {
			break
		}
	}

	rep := make(map[int]string, count)
	for _, s := range order {
		if _, ok := rep[class[s]]; !ok {
			rep[class[s]] = s
		}
	}
	merged := newTable(t.alphabet)
	merged.start = rep[class[t.start]]
	for _, s := range order {
		if rep[class[s]] != s {
			continue
		}
		merged.add(s, t.final[s])
		for sym, to := range t.next[s] {
			merged.next[s][sym] = rep[class[to]]
		}
	}
	*t = *merged
}

// rename orders states start first, then by name, and renames them q0, q1, ...
func (t *table) rename() {
	order := make([]string, 0, len(t.states))
	rest := make([]string, 0, len(t.states))
	for _, s := range t.states {
		if s != t.start {
			rest = append(rest, s)
		}
	}
	slices.SortFunc(rest, naturalCompare)
	if t.has(t.start) {
		order = append(order, t.start)
	}
	order = append(order, rest...)

	names := make(map[string]string, len(order))
	for i, s := range order {
		names[s] = fmt.Sprintf("q%d", i)
	}
	renamed := newTable(t.alphabet)
	renamed.start = names[t.start]
	for _, s := range order {
		renamed.add(names[s], t.final[s])
		for sym, to := range t.next[s] {
			renamed.next[names[s]][sym] = names[to]
		}
	}
	*t = *renamed
}

// dropDead removes states from which no final state is reachable. The start
// state always stays.
func (t *table) dropDead() {
	reverse := map[string][]string{}
	for from, moves := range t.next {
		for _, to := range moves {
			reverse[to] = append(reverse[to], from)
		}
	}
	alive := map[string]bool{t.start: true}
	var stack []string
	for _, s := range t.states {
		if t.final[s] {
			stack = append(stack, s)
		}
	}
	live := map[string]bool{}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if live[cur] {
			continue
		}
		live[cur] = true
		stack = append(stack, reverse[cur]...)
	}
	for s := range live {
		alive[s] = true
	}
	t.keep(alive)
	for _, moves := range t.next {
		for sym, to := range moves {
			if !live[to] {
				delete(moves, sym)
			}
		}
	}
}

// naturalCompare orders strings byte-wise except that runs of digits compare
// by value, so q2 sorts before q10.
func naturalCompare(a, b string) int {
	for a != "" && b != "" {
		if isDigit(a[0]) && isDigit(b[0]) {
			na, ra := leadingDigits(a)
			nb, rb := leadingDigits(b)
			ta, tb := strings.TrimLeft(na, "0"), strings.TrimLeft(nb, "0")
			if len(ta) != len(tb) {
				return compareInt(len(ta), len(tb))
			}
			if c := strings.Compare(ta, tb); c != 0 {
				return c
			}
			if c := strings.Compare(na, nb); c != 0 {
				return c
			}
			a, b = ra, rb
			continue
		}
		if a[0] != b[0] {
			return compareInt(int(a[0]), int(b[0]))
		}
		a, b = a[1:], b[1:]
	}
	return compareInt(len(a), len(b))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func leadingDigits(s string) (string, string) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	return s[:i], s[i:]
}

func compareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
