package lfposts

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupLifecycle(t *testing.T) (*Lifecycle, *Repository) {
	repo := NewRepository(setupTestDB(t))
	return NewLifecycle(repo), repo
}

func TestSaveDraftValidation(t *testing.T) {
	lc, _ := setupLifecycle(t)

	_, err := lc.SaveDraft(PostDraft{Title: "   "}, "admin")
	var validation *ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "title", validation.Field)

	// Titre tout en ponctuation : slug vide après génération
	_, err = lc.SaveDraft(PostDraft{Title: "!!!"}, "admin")
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "slug", validation.Field)
}

func TestSaveDraftAutoSlug(t *testing.T) {
	lc, _ := setupLifecycle(t)

	post, err := lc.SaveDraft(PostDraft{Title: "Mon Article", Content: "texte"}, "admin")
	require.NoError(t, err)
	assert.Equal(t, "mon-article", post.Slug)
	assert.False(t, post.Published)
	assert.Nil(t, post.PublishedAt)
	assert.Equal(t, "admin", post.UserID)
}

func TestPublishFillsSeoFields(t *testing.T) {
	lc, _ := setupLifecycle(t)

	post, err := lc.Publish(PostDraft{
		Title:   "Un titre assez long",
		Content: "**Gras** et la suite du contenu",
	}, "admin")
	require.NoError(t, err)

	assert.True(t, post.Published)
	assert.Equal(t, "Gras et la suite du contenu", post.Excerpt)
	assert.Equal(t, post.Excerpt, post.MetaDescription)
	assert.Equal(t, "Un titre assez long", post.MetaTitle)
	assert.Equal(t, []string{"titre", "assez", "long"}, post.KeywordsList)
	require.NotNil(t, post.PublishedAt)
}

func TestPublishedAtStampedOnce(t *testing.T) {
	lc, _ := setupLifecycle(t)

	t1 := time.Date(2026, 1, 10, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2026, 2, 20, 9, 0, 0, 0, time.UTC)

	lc.now = func() time.Time { return t1 }
	post, err := lc.Publish(PostDraft{Title: "Article", Content: "v1"}, "admin")
	require.NoError(t, err)
	require.NotNil(t, post.PublishedAt)
	first := *post.PublishedAt

	// Dépublier conserve published_at : la colonne garde la première
	// publication
	post, err = lc.Unpublish(post.ID)
	require.NoError(t, err)
	assert.False(t, post.Published)
	require.NotNil(t, post.PublishedAt)

	// Republier plus tard ne change pas la date
	lc.now = func() time.Time { return t2 }
	draft := DraftFromPost(post)
	draft.Content = "v2"
	post, err = lc.Publish(draft, "admin")
	require.NoError(t, err)
	assert.True(t, post.Published)
	require.NotNil(t, post.PublishedAt)
	assert.Equal(t, first.Unix(), post.PublishedAt.Unix())
}

func TestPublishDuplicateSlug(t *testing.T) {
	lc, _ := setupLifecycle(t)

	_, err := lc.Publish(PostDraft{Title: "Titre", Content: "a"}, "admin")
	require.NoError(t, err)

	// Même titre, donc même slug
	_, err = lc.Publish(PostDraft{Title: "Titre", Content: "b"}, "admin")
	assert.ErrorIs(t, err, ErrDuplicateSlug)
}

func TestSaveDraftUpdatesExisting(t *testing.T) {
	lc, _ := setupLifecycle(t)

	post, err := lc.SaveDraft(PostDraft{Title: "Avant", Content: "v1"}, "admin")
	require.NoError(t, err)

	draft := DraftFromPost(post)
	draft = ApplyFormChange(draft, "title", "Après Modification")
	draft = ApplyFormChange(draft, "content", "v2")

	updated, err := lc.SaveDraft(draft, "admin")
	require.NoError(t, err)
	assert.Equal(t, post.ID, updated.ID)
	assert.Equal(t, "Après Modification", updated.Title)
	assert.Equal(t, "apr-s-modification", updated.Slug)
	assert.Equal(t, "v2", updated.Content)
}
