package lfposts

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// Repository est la façade CRUD sur la table blogs. Chaque opération est
// une requête mono-ligne ; les échecs du store sont traduits dans la
// taxonomie d'erreurs et jamais avalés.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// translate convertit une erreur GORM en erreur du domaine
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateSlug
	default:
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
}

// Create insère un nouvel article. Un slug déjà pris remonte
// ErrDuplicateSlug via la contrainte d'unicité, jamais un écrasement.
func (r *Repository) Create(post *Post) (*Post, error) {
	if err := translate(r.db.Create(post).Error); err != nil {
		return nil, err
	}
	return r.GetByID(post.ID)
}

// Update applique un patch partiel (clés = colonnes) sur un article
func (r *Repository) Update(id uint, patch map[string]any) (*Post, error) {
	var existing Post
	if err := translate(r.db.First(&existing, id).Error); err != nil {
		return nil, err
	}

	if err := translate(r.db.Model(&Post{}).Where("id = ?", id).Updates(patch).Error); err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// Delete supprime un article ; un id inconnu remonte ErrNotFound,
// jamais un succès silencieux
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&Post{}, id)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Repository) GetByID(id uint) (*Post, error) {
	var post Post
	if err := translate(r.db.First(&post, id).Error); err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug lit un article par slug, éventuellement restreint aux publiés
func (r *Repository) GetBySlug(slug string, publishedOnly bool) (*Post, error) {
	query := r.db.Where("slug = ?", slug)
	if publishedOnly {
		query = query.Where("published = ?", true)
	}

	var post Post
	if err := translate(query.First(&post).Error); err != nil {
		return nil, err
	}
	return &post, nil
}

// ListByOwner retourne les articles d'un auteur, du plus récent au plus ancien
func (r *Repository) ListByOwner(owner string) ([]Post, error) {
	var posts []Post
	err := r.db.Where("user_id = ?", owner).
		Order("created_at desc").
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}

// ListPublished retourne les derniers articles publiés
func (r *Repository) ListPublished(limit int) ([]Post, error) {
	var posts []Post
	err := r.db.Where("published = ?", true).
		Order("created_at desc").
		Limit(limit).
		Find(&posts).Error
	if err != nil {
		return nil, translate(err)
	}
	return posts, nil
}
