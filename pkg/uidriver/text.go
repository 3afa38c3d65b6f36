package uidriver

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize returns s in Unicode NFC so that composed and decomposed
// accents ("ñ" vs "n"+U+0303) compare equal.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// ContainsAny reports whether haystack contains any non-empty needle after
// normalisation, and returns the first one found.
func ContainsAny(haystack string, needles ...string) (string, bool) {
	haystack = Normalize(haystack)
	for _, n := range needles {
		if n == "" {
			continue
		}
		if strings.Contains(haystack, Normalize(n)) {
			return n, true
		}
	}
	return "", false
}
