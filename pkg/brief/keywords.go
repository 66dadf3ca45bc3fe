package brief

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Keywords returns up to MaxKeywords distinct tokens of at least four word
// characters, minus stop words, in order of first appearance.
func Keywords(text string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	out := make([]string, 0, MaxKeywords)
	for _, tok := range tokens {
		if utf8.RuneCountInString(tok) < minKeywordLen || IsStopWord(tok) {
			continue
		}
		if _, dup := seen[tok]; dup {
			continue
		}
		seen[tok] = struct{}{}
		out = append(out, tok)
		if len(out) == MaxKeywords {
			break
		}
	}
	return out
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}
