package lfposts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateSlug(t *testing.T) {
	assert.Equal(t, "hello-world", GenerateSlug("Hello, World!"))
	assert.Equal(t, "mon-premier-article", GenerateSlug("Mon premier article"))
	assert.Equal(t, "go-1-25", GenerateSlug("Go 1.25"))
	assert.Equal(t, "", GenerateSlug(""))
	assert.Equal(t, "", GenerateSlug("   "))
	assert.Equal(t, "", GenerateSlug("!!!"))
}

func TestGenerateSlugIdempotent(t *testing.T) {
	for _, title := range []string{"Hello, World!", "déjà-vu", "A  B   C"} {
		once := GenerateSlug(title)
		assert.Equal(t, once, GenerateSlug(once))
	}
}

func TestGenerateSlugNonAscii(t *testing.T) {
	// Les lettres accentuées sont hors [a-z0-9] et deviennent des tirets
	assert.Equal(t, "crire-du-go", GenerateSlug("Écrire du Go"))
}
