package lfposts

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyFormChangeTitle(t *testing.T) {
	d := PostDraft{}

	// Changer le titre rafraîchit le slug et le meta title
	d = ApplyFormChange(d, "title", "Mon Premier Article")
	assert.Equal(t, "Mon Premier Article", d.Title)
	assert.Equal(t, "mon-premier-article", d.Slug)
	assert.Equal(t, "Mon Premier Article", d.MetaTitle)

	// Le slug peut ensuite être fixé manuellement
	d = ApplyFormChange(d, "slug", "article-1")
	assert.Equal(t, "article-1", d.Slug)

	// Rechanger le titre écrase le slug manuel
	d = ApplyFormChange(d, "title", "Autre Titre")
	assert.Equal(t, "autre-titre", d.Slug)
}

func TestApplyFormChangeLists(t *testing.T) {
	d := PostDraft{}

	d = ApplyFormChange(d, "tags", "go, web , ")
	assert.Equal(t, []string{"go", "web"}, d.Tags)

	d = ApplyFormChange(d, "meta_keywords", "blog,portfolio")
	assert.Equal(t, []string{"blog", "portfolio"}, d.MetaKeywords)
}

func TestApplyFormChangeIsPure(t *testing.T) {
	original := PostDraft{Title: "Titre"}
	_ = ApplyFormChange(original, "title", "Nouveau")
	assert.Equal(t, "Titre", original.Title)
}

func TestDraftFromPost(t *testing.T) {
	post := &Post{
		ID:           3,
		Title:        "Titre",
		Slug:         "titre",
		Content:      "contenu",
		KeywordsList: []string{"titre"},
		TagsList:     []string{"go"},
		Published:    true,
	}

	d := DraftFromPost(post)
	assert.Equal(t, uint(3), d.ID)
	assert.Equal(t, "titre", d.Slug)
	assert.Equal(t, []string{"go"}, d.Tags)
	assert.True(t, d.Published)
}
