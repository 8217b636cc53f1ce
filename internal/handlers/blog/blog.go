package handlers_blog

import (
	"errors"
	handlers_auth "littlefolio/internal/handlers/auth"
	"littlefolio/internal/models/lffolio"
	"littlefolio/internal/models/lfposts"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// writeError traduit la taxonomie d'erreurs du dépôt en statut HTTP
func writeError(c *gin.Context, err error) {
	var validation *lfposts.ValidationError
	switch {
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validation.Message,
			"field": validation.Field,
		})
	case errors.Is(err, lfposts.ErrDuplicateSlug):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, lfposts.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, lfposts.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "base de données indisponible"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "erreur interne"})
	}
}

func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "identifiant invalide"})
		return 0, false
	}
	return uint(id), true
}

// ListPostsHandler liste tous les articles de l'administrateur,
// brouillons inclus
func ListPostsHandler(c *gin.Context) {
	posts, err := lffolio.GetInstance().Posts.ListByOwner(handlers_auth.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostHandler retourne un article par id, brouillon inclus
func GetPostHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	post, err := lffolio.GetInstance().Posts.GetByID(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post, "draft": lfposts.DraftFromPost(post)})
}

// SaveDraftHandler crée ou met à jour un brouillon sans le publier
func SaveDraftHandler(c *gin.Context) {
	var draft lfposts.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	post, err := lffolio.GetInstance().Lifecycle.SaveDraft(draft, handlers_auth.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// PublishHandler publie un brouillon. published_at n'est posé qu'à la
// première publication, republier ne le change pas.
func PublishHandler(c *gin.Context) {
	var draft lfposts.PostDraft
	if err := c.ShouldBindJSON(&draft); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Données invalides"})
		return
	}

	post, err := lffolio.GetInstance().Lifecycle.Publish(draft, handlers_auth.Username(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// UnpublishHandler repasse un article en brouillon, published_at est conservé
func UnpublishHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	post, err := lffolio.GetInstance().Lifecycle.Unpublish(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"post": post})
}

// DeletePostHandler supprime définitivement un article
func DeletePostHandler(c *gin.Context) {
	id, ok := paramID(c)
	if !ok {
		return
	}
	if err := lffolio.GetInstance().Posts.Delete(id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Article supprimé"})
}
