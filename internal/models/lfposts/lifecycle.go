package lfposts

import (
	"strings"
	"time"
)

// Lifecycle orchestre les transitions Draft/Published d'un article.
// Le brouillon est passé par valeur : en cas d'échec du dépôt, l'état
// en mémoire de l'appelant reste intact pour réessayer.
type Lifecycle struct {
	repo *Repository
	now  func() time.Time
}

func NewLifecycle(repo *Repository) *Lifecycle {
	return &Lifecycle{
		repo: repo,
		now:  time.Now,
	}
}

// validate contrôle titre et slug avant tout accès au dépôt.
// Le slug est auto-généré depuis le titre s'il est absent.
func (lc *Lifecycle) validate(d *PostDraft) error {
	if strings.TrimSpace(d.Title) == "" {
		return newValidationError("title", "le titre ne peut pas être vide")
	}
	if d.Slug == "" {
		d.Slug = GenerateSlug(d.Title)
	}
	if d.Slug == "" {
		return newValidationError("slug", "le slug ne peut pas être vide")
	}
	return nil
}

// SaveDraft persiste le brouillon sans le publier
func (lc *Lifecycle) SaveDraft(d PostDraft, owner string) (*Post, error) {
	if err := lc.validate(&d); err != nil {
		return nil, err
	}
	return lc.persist(d, owner, false)
}

// Publish valide, complète les champs SEO laissés vides par l'auteur et
// publie. published_at n'est estampillé qu'à la première transition vers
// Published ; republier est idempotent.
func (lc *Lifecycle) Publish(d PostDraft, owner string) (*Post, error) {
	if err := lc.validate(&d); err != nil {
		return nil, err
	}

	if d.Excerpt == "" {
		d.Excerpt = ExcerptFromContent(d.Content)
	}
	if d.MetaDescription == "" {
		d.MetaDescription = d.Excerpt
	}
	if len(d.MetaKeywords) == 0 {
		d.MetaKeywords = KeywordsFromTitle(d.Title)
	}
	if d.MetaTitle == "" {
		d.MetaTitle = d.Title
	}

	return lc.persist(d, owner, true)
}

// Unpublish repasse l'article en brouillon. published_at est conservé :
// la colonne enregistre la première publication.
func (lc *Lifecycle) Unpublish(id uint) (*Post, error) {
	return lc.repo.Update(id, map[string]any{"published": false})
}

func (lc *Lifecycle) persist(d PostDraft, owner string, publish bool) (*Post, error) {
	if d.ID == 0 {
		post := &Post{
			Title:           d.Title,
			Slug:            d.Slug,
			Content:         d.Content,
			Excerpt:         d.Excerpt,
			FeaturedImage:   d.FeaturedImage,
			MetaTitle:       d.MetaTitle,
			MetaDescription: d.MetaDescription,
			KeywordsList:    d.MetaKeywords,
			TagsList:        d.Tags,
			Published:       publish,
			UserID:          owner,
		}
		if publish {
			now := lc.now()
			post.PublishedAt = &now
		}
		return lc.repo.Create(post)
	}

	existing, err := lc.repo.GetByID(d.ID)
	if err != nil {
		return nil, err
	}

	patch := map[string]any{
		"title":            d.Title,
		"slug":             d.Slug,
		"content":          d.Content,
		"excerpt":          d.Excerpt,
		"featured_image":   d.FeaturedImage,
		"meta_title":       d.MetaTitle,
		"meta_description": d.MetaDescription,
		"meta_keywords":    strings.Join(d.MetaKeywords, ","),
		"tags":             strings.Join(d.Tags, ","),
		"published":        publish,
	}

	// Première transition vers Published seulement
	if publish && existing.PublishedAt == nil {
		patch["published_at"] = lc.now()
	}

	return lc.repo.Update(d.ID, patch)
}
