package lfposts

import (
	"strings"
	"unicode/utf8"

	stripmd "github.com/writeas/go-strip-markdown"
)

const excerptLength = 160

// ExcerptFromContent génère le résumé depuis le contenu Markdown :
// Markdown supprimé puis tronqué aux premiers caractères
func ExcerptFromContent(content string) string {
	plain := strings.TrimSpace(stripmd.Strip(content))
	if utf8.RuneCountInString(plain) <= excerptLength {
		return plain
	}
	runes := []rune(plain)
	return strings.TrimSpace(string(runes[:excerptLength]))
}

// KeywordsFromTitle extrait les mots-clés SEO du titre : mots de plus de
// trois caractères, en minuscules
func KeywordsFromTitle(title string) []string {
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(title)) {
		if utf8.RuneCountInString(word) > 3 {
			keywords = append(keywords, word)
		}
	}
	return keywords
}
