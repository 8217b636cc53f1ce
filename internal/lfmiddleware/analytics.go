package lfmiddleware

import (
	"context"
	"strings"
	"time"

	"littlefolio/internal/models/lfanalytics"
	"littlefolio/internal/models/lfgeo"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionCookie = "_lf_session"

// Analytics trace les vues de pages publiques. L'identifiant de session
// vit dans un cookie de session (pas de durée de vie) : chaque visite
// du navigateur ouvre une nouvelle session. L'enregistrement part en
// goroutine pour ne jamais bloquer la réponse.
func Analytics(service *lfanalytics.Service, geo lfgeo.Resolver, production bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Ne pas tracker les assets statiques ni l'administration
		if strings.HasPrefix(c.Request.URL.Path, "/static/") ||
			strings.HasPrefix(c.Request.URL.Path, "/admin/") ||
			strings.HasPrefix(c.Request.URL.Path, "/files/") {
			c.Next()
			return
		}
		if c.Request.Method != "GET" {
			c.Next()
			return
		}

		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || sessionID == "" {
			sessionID = uuid.NewString()
			// MaxAge 0 : cookie de session, expiré à la fermeture du navigateur
			c.SetCookie(
				sessionCookie,
				sessionID,
				0,
				"/",
				"",
				production,
				true,
			)
		}

		pagePath := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			pagePath += "?" + c.Request.URL.RawQuery
		}

		event := lfanalytics.Event{
			PagePath:  pagePath,
			SessionID: sessionID,
			Referrer:  c.Request.Referer(),
			UserAgent: c.Request.UserAgent(),
		}
		clientIP := c.ClientIP()

		// Enregistrer de manière asynchrone pour ne pas bloquer la requête
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			// Géolocalisation best-effort, l'événement part sans
			// localisation en cas d'échec
			if geo != nil {
				if loc, err := geo.Resolve(ctx, clientIP); err == nil {
					event.Country = loc.Country
					event.City = loc.City
				}
			}

			service.Record(ctx, event)
		}()

		c.Next()
	}
}
