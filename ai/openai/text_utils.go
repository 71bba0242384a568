package openai

import "strings"

// scrubTerm lowercases a term, strips punctuation that confuses the model,
// and collapses surrounding whitespace.
func scrubTerm(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:\"'()[]{}", r) {
			return -1
		}
		return r
	}, s)
	return strings.ToLower(strings.TrimSpace(s))
}
