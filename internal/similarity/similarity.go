// Package similarity scores how close two strings are as character sequences.
package similarity

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Ratio returns the Ratcliff/Obershelp ratio of a and b after lower-casing
// both: twice the number of characters in matching blocks divided by the
// combined length. Identical strings score 1.0, disjoint strings 0.0.
//
// The matcher indexes b, so Ratio(query, key) measures the query against the key.
func Ratio(a, b string) float64 {
	m := difflib.NewMatcher(chars(strings.ToLower(a)), chars(strings.ToLower(b)))
	return m.Ratio()
}

// chars splits s into one element per rune so the matcher compares
// characters rather than lines.
func chars(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}
