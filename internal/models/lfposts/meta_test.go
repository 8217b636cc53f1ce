package lfposts

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestExcerptFromContent(t *testing.T) {
	// Le markdown est supprimé avant troncature
	assert.Equal(t, "Gras et du texte", ExcerptFromContent("**Gras** et du texte"))

	// Contenu court retourné tel quel
	assert.Equal(t, "court", ExcerptFromContent("court"))

	// Contenu long tronqué à 160 caractères
	long := strings.Repeat("mot ", 100)
	excerpt := ExcerptFromContent(long)
	assert.LessOrEqual(t, utf8.RuneCountInString(excerpt), 160)
	assert.True(t, strings.HasPrefix(excerpt, "mot mot"))
}

func TestKeywordsFromTitle(t *testing.T) {
	// Seuls les mots de plus de trois caractères sont retenus
	keywords := KeywordsFromTitle("Un titre avec des mots")
	assert.Equal(t, []string{"titre", "avec", "mots"}, keywords)

	assert.Nil(t, KeywordsFromTitle("a b c"))
	assert.Equal(t, []string{"golang"}, KeywordsFromTitle("GOLANG"))
}
