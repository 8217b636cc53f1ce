package lfanalytics

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Service regroupe l'écriture append-only des événements et la lecture
// agrégée. L'enregistrement est best-effort : un échec est logué puis
// avalé, jamais remonté à la page visitée.
type Service struct {
	db    *gorm.DB
	redis *redis.Client
	cron  *cron.Cron
}

func NewService(db *gorm.DB, redisClient *redis.Client, retentionDays int) *Service {
	return &Service{
		db:    db,
		redis: redisClient,
		cron:  setupCleanupCron(db, retentionDays),
	}
}

// Record insère un événement et incrémente les compteurs Redis du jour.
// created_at est assigné ici, à l'écriture.
func (s *Service) Record(ctx context.Context, event Event) {
	now := time.Now()
	event.CreatedAt = now

	if err := s.db.WithContext(ctx).Create(&event).Error; err != nil {
		// Log l'erreur mais ne pas faire échouer la requête
		log.Error().Err(err).Str("page_path", event.PagePath).Msg("Erreur enregistrement page view")
		return
	}

	if s.redis == nil {
		return
	}

	// Compteurs Redis du jour pour un accès rapide, cache de 31 jours
	day := now.Format("2006-01-02")
	cacheKey := fmt.Sprintf("analytics:daily:%s", day)
	s.redis.HIncrBy(ctx, cacheKey, "page_views", 1)
	s.redis.Expire(ctx, cacheKey, 31*24*time.Hour)

	// Marquer la session comme vue aujourd'hui
	sessionKey := fmt.Sprintf("analytics:sessions:%s", day)
	s.redis.SAdd(ctx, sessionKey, event.SessionID)
	s.redis.Expire(ctx, sessionKey, 31*24*time.Hour)
}

// GetRealtimeStats récupère les compteurs du jour depuis Redis
func (s *Service) GetRealtimeStats(ctx context.Context) (map[string]any, error) {
	if s.redis == nil {
		return map[string]any{}, nil
	}

	day := time.Now().Format("2006-01-02")

	pageViews, err := s.redis.HGet(ctx, fmt.Sprintf("analytics:daily:%s", day), "page_views").Int64()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	sessions, err := s.redis.SCard(ctx, fmt.Sprintf("analytics:sessions:%s", day)).Result()
	if err != nil && err != redis.Nil {
		return nil, err
	}

	return map[string]any{
		"today_page_views": pageViews,
		"today_sessions":   sessions,
	}, nil
}

// Stop arrête le cron de rétention
func (s *Service) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
