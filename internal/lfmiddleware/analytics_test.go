package lfmiddleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"littlefolio/internal/models/lfanalytics"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupAnalytics(t *testing.T) (*gorm.DB, *lfanalytics.Service) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&lfanalytics.Event{}))

	service := lfanalytics.NewService(db, nil, 30)
	t.Cleanup(service.Stop)

	return db, service
}

func setupAnalyticsRouter(service *lfanalytics.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Analytics(service, nil, false))
	ok := func(c *gin.Context) { c.Status(http.StatusOK) }
	r.GET("/post/:slug", ok)
	r.GET("/static/app.css", ok)
	r.GET("/admin/posts", ok)
	r.GET("/files/app.js", ok)
	r.POST("/api/contact", ok)
	return r
}

func findSessionCookie(w *httptest.ResponseRecorder) *http.Cookie {
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			return ck
		}
	}
	return nil
}

func countEvents(db *gorm.DB) int64 {
	var count int64
	db.Model(&lfanalytics.Event{}).Count(&count)
	return count
}

func TestAnalyticsSessionCookieReused(t *testing.T) {
	db, service := setupAnalytics(t)
	r := setupAnalyticsRouter(service)

	// Première visite : un cookie de session est posé
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/post/go", nil))
	require.Equal(t, http.StatusOK, w.Code)

	cookie := findSessionCookie(w)
	require.NotNil(t, cookie)
	require.NotEmpty(t, cookie.Value)

	// Deuxième visite avec le cookie : même session, pas de nouveau cookie
	req := httptest.NewRequest("GET", "/post/web", nil)
	req.AddCookie(cookie)
	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, req)
	require.Equal(t, http.StatusOK, w2.Code)
	assert.Nil(t, findSessionCookie(w2))

	// L'enregistrement est asynchrone
	require.Eventually(t, func() bool {
		return countEvents(db) == 2
	}, 2*time.Second, 10*time.Millisecond)

	// Les deux écritures partent en goroutine, l'ordre d'insertion
	// n'est pas garanti
	var events []lfanalytics.Event
	require.NoError(t, db.Find(&events).Error)
	paths := []string{}
	for _, ev := range events {
		assert.Equal(t, cookie.Value, ev.SessionID)
		paths = append(paths, ev.PagePath)
	}
	assert.ElementsMatch(t, []string{"/post/go", "/post/web"}, paths)
}

func TestAnalyticsSkipsUntrackedRequests(t *testing.T) {
	db, service := setupAnalytics(t)
	r := setupAnalyticsRouter(service)

	// Assets, administration et écritures ne sont jamais tracés
	for _, req := range []*http.Request{
		httptest.NewRequest("GET", "/static/app.css", nil),
		httptest.NewRequest("GET", "/admin/posts", nil),
		httptest.NewRequest("GET", "/files/app.js", nil),
		httptest.NewRequest("POST", "/api/contact", nil),
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Nil(t, findSessionCookie(w))
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(0), countEvents(db))
}

func TestAnalyticsSurvivesWriteFailure(t *testing.T) {
	// Base sans table analytics : chaque insertion échoue
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	service := lfanalytics.NewService(db, nil, 30)
	t.Cleanup(service.Stop)
	r := setupAnalyticsRouter(service)

	// L'échec d'écriture est avalé, la réponse part normalement
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/post/go", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	time.Sleep(100 * time.Millisecond)
}
