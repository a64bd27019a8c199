package suggest

import (
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// Filter trims raw suggestions, drops blanks and anything that duplicates an existing
// item or an earlier suggestion (ignoring case, spacing and plural tails), and caps the batch at max.
func Filter(raw, existing []string, max int) []string {
	seen := make([]string, 0, len(existing)+len(raw))
	for _, e := range existing {
		if k := foldKey(e); k != "" {
			seen = append(seen, k)
		}
	}
	out := make([]string, 0, len(raw))
	for _, r := range raw {
		r = strings.Join(strings.Fields(r), " ")
		k := foldKey(r)
		if k == "" || nearAny(k, seen) {
			continue
		}
		seen = append(seen, k)
		out = append(out, r)
		if max > 0 && len(out) == max {
			break
		}
	}
	return out
}

func foldKey(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

// nearAny matches exact duplicates and short tails on a shared prefix, such as a
// plural of an existing item. Words that differ inside, like BEEF and BEER, are
// distinct products.
func nearAny(k string, seen []string) bool {
	for _, s := range seen {
		if k == s {
			return true
		}
		short, long := k, s
		if len(short) > len(long) {
			short, long = long, short
		}
		if utf8.RuneCountInString(short) < 3 || !strings.HasPrefix(long, short) {
			continue
		}
		limit := 1
		if utf8.RuneCountInString(short) > 6 {
			limit = 2
		}
		if levenshtein.ComputeDistance(short, long) <= limit {
			return true
		}
	}
	return false
}

// RemoveMatching drops chips equal to text, ignoring case and spacing.
func RemoveMatching(chips []string, text string) []string {
	k := foldKey(text)
	out := make([]string, 0, len(chips))
	for _, c := range chips {
		if foldKey(c) == k {
			continue
		}
		out = append(out, c)
	}
	return out
}
