package handlers_rss

import (
	"encoding/xml"
	"fmt"
	"littlefolio/internal/models/lffolio"
	"littlefolio/internal/models/lfrss"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	stripmd "github.com/writeas/go-strip-markdown"
)

func getImageInfo(imagePath string) (size int64, mimeType string, err error) {
	fileInfo, err := os.Stat(imagePath)
	if err != nil {
		return 0, "", err
	}

	size = fileInfo.Size()

	// Type MIME basé sur l'extension
	ext := filepath.Ext(imagePath)
	mimeType = mime.TypeByExtension(ext)

	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return size, mimeType, nil
}

// RssHandler génère le flux RSS des articles publiés
func RssHandler(c *gin.Context) {
	lf := lffolio.GetInstance()

	// Récupérer les 20 derniers articles publiés
	posts, err := lf.Posts.ListPublished(20)
	if err != nil {
		c.XML(http.StatusInternalServerError, gin.H{"error": "Erreur récupération posts"})
		return
	}

	// Obtenir l'URL de base depuis la requête
	baseURL := lf.Configuration.Site.BaseURL
	if baseURL == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}

	// Construire le flux RSS
	rss := lfrss.RSS{
		Version: "2.0",
		Channel: lfrss.Channel{
			Title:         lf.Configuration.Site.Name,
			Link:          baseURL,
			Description:   stripmd.Strip(lf.Configuration.Site.Description),
			Language:      "fr-FR",
			Generator:     fmt.Sprintf("Littlefolio v%s", lf.Version),
			LastBuildDate: time.Now().Format(time.RFC1123Z),
			Items:         make([]lfrss.RSSItem, 0, len(posts)),
		},
	}

	rss.Channel.Copyright = fmt.Sprintf("© %d %s", time.Now().Year(), lf.Configuration.Site.Name)

	for _, post := range posts {
		// Préparer la description (excerpt ou début du contenu)
		description := post.Excerpt
		if description == "" {
			if len(post.Content) > 200 {
				description = post.Content[:200] + "..."
			} else {
				description = post.Content
			}
		}

		// RSS 2.0 ne supporte qu'une catégorie par item, on prend le 1er tag
		category := ""
		if len(post.TagsList) > 0 {
			category = post.TagsList[0]
		}

		pubDate := post.CreatedAt
		if post.PublishedAt != nil {
			pubDate = *post.PublishedAt
		}

		item := lfrss.RSSItem{
			Title:       post.Title,
			Link:        fmt.Sprintf("%s/post/%s", baseURL, post.Slug),
			Description: stripmd.Strip(description),
			Category:    category,
			GUID:        fmt.Sprintf("%s/post/%s", baseURL, post.Slug),
			PubDate:     pubDate.Format(time.RFC1123Z),
			Enclosure:   nil,
		}

		// on génère l'image dans le rss si il y en a une de présente
		if post.FeaturedImage != "" {
			realpath := strings.Replace(post.FeaturedImage, "/static", lf.Configuration.StaticPath, 1)
			size, mimeType, err := getImageInfo(realpath)
			if err == nil {
				item.Enclosure = &lfrss.RSSEnclosure{
					URL:    post.FeaturedImage,
					Length: size,
					Type:   mimeType,
				}
			}
		}

		rss.Channel.Items = append(rss.Channel.Items, item)
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")

	output, err := xml.MarshalIndent(rss, "", "  ")
	if err != nil {
		c.XML(http.StatusInternalServerError, gin.H{"error": "Erreur génération RSS"})
		return
	}

	xmlWithHeader := []byte(xml.Header + string(output))

	c.Data(http.StatusOK, "application/rss+xml; charset=utf-8", xmlWithHeader)
}
