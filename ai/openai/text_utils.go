package openai

import "strings"

// normalizeText turns icon names and tag lists into plain words.
// Hyphens and underscores separate words in icon names, and embedding
// models tokenize "document text" far better than "document-text".
func normalizeText(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("-_,;:|/", r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func normalizeTexts(texts []string) []string {
	out := make([]string, len(texts))
	for i, t := range texts {
		out[i] = normalizeText(t)
	}
	return out
}
