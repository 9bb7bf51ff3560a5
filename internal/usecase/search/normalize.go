package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Match score tiers. Rules are evaluated in this order; the first hit wins.
const (
	scoreExact       = 100
	scorePrefix      = 90
	scoreWholeWord   = 80
	scoreSubstring   = 70
	scoreSubsequence = 50
)

// Normalize lowercases, trims, and strips combining diacritical marks after
// NFD decomposition, so "café" and "cafe" compare equal.
func Normalize(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	decomposed := norm.NFD.String(s)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Score rates how well query matches text on the 0-100 tier scale.
// Both inputs are normalized before comparison.
func Score(query, text string) int {
	return scoreNorm(Normalize(query), Normalize(text))
}

// scoreNorm rates pre-normalized inputs. Zero means no match.
func scoreNorm(q, t string) int {
	if q == "" || t == "" {
		return 0
	}

	switch {
	case q == t:
		return scoreExact
	case strings.HasPrefix(t, q):
		return scorePrefix
	case strings.Contains(t, " "+q) || strings.Contains(t, q+" "):
		return scoreWholeWord
	case strings.Contains(t, q):
		return scoreSubstring
	case isSubsequence(q, t):
		return scoreSubsequence
	}
	return 0
}

// isSubsequence reports whether every rune of q appears in t in order,
// not necessarily contiguously.
func isSubsequence(q, t string) bool {
	qr := []rune(q)
	i := 0
	for _, r := range t {
		if i == len(qr) {
			break
		}
		if r == qr[i] {
			i++
		}
	}
	return i == len(qr)
}
