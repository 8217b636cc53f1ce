package handlers_public

import (
	"errors"
	"littlefolio/internal/models/lffolio"
	"littlefolio/internal/models/lfposts"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const defaultPostsLimit = 20

// PortfolioHandler retourne l'identité du site et les sections rendues
// au démarrage
func PortfolioHandler(c *gin.Context) {
	lf := lffolio.GetInstance()

	sections := make([]gin.H, 0, len(lf.Sections))
	for _, section := range lf.Sections {
		sections = append(sections, gin.H{
			"key":   section.Key,
			"title": section.Title,
			"html":  section.HTML,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"name":        lf.Configuration.Site.Name,
		"description": lf.Configuration.Site.Description,
		"sections":    sections,
		"version":     lf.Version,
	})
}

// ListPostsHandler liste les articles publiés, du plus récent au plus ancien
func ListPostsHandler(c *gin.Context) {
	limit := defaultPostsLimit
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}

	posts, err := lffolio.GetInstance().Posts.ListPublished(limit)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "base de données indisponible"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPostHandler retourne un article publié par son slug, avec le
// contenu rendu en HTML. Les brouillons restent invisibles ici.
func GetPostHandler(c *gin.Context) {
	slug := c.Param("slug")

	post, err := lffolio.GetInstance().Posts.GetBySlug(slug, true)
	if err != nil {
		if errors.Is(err, lfposts.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "article non trouvé"})
			return
		}
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "base de données indisponible"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

// SearchPostsHandler cherche dans les articles publiés
func SearchPostsHandler(c *gin.Context) {
	query := strings.ToLower(strings.TrimSpace(c.Query("q")))
	if query == "" {
		c.JSON(http.StatusOK, []lfposts.Post{})
		return
	}

	var posts []lfposts.Post

	searchTerm := "%" + query + "%"
	result := lffolio.GetInstance().Db.Where(
		"published = ? AND (LOWER(title) LIKE ? OR LOWER(content) LIKE ? OR LOWER(excerpt) LIKE ? OR LOWER(tags) LIKE ?)",
		true, searchTerm, searchTerm, searchTerm, searchTerm,
	).Order("created_at desc").Find(&posts)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur recherche"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// CaptchaHandler génère un captcha pour le formulaire de contact
func CaptchaHandler(c *gin.Context) {
	lf := lffolio.GetInstance()
	lf.Captcha.CaptchaHandler(c, lf.Configuration.Production)
}
