package lfanalytics

import (
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// cleanupOldEvents purge les événements plus vieux que la rétention
func cleanupOldEvents(db *gorm.DB, retentionDays int) error {
	cutoff := time.Now().AddDate(0, 0, -retentionDays)

	result := db.Where("created_at < ?", cutoff).Delete(&Event{})
	if result.Error != nil {
		return result.Error
	}

	log.Info().Int64("deleted", result.RowsAffected).Msg("Purge des anciens événements analytics")
	return nil
}

// setupCleanupCron planifie la purge tous les jours à 2h du matin
func setupCleanupCron(db *gorm.DB, retentionDays int) *cron.Cron {
	c := cron.New()

	if _, err := c.AddFunc("0 2 * * *", func() {
		if err := cleanupOldEvents(db, retentionDays); err != nil {
			log.Error().Err(err).Msg("Échec de la purge analytics")
		}
	}); err != nil {
		// Sans planification la rétention n'est plus appliquée
		log.Error().Err(err).Msg("Impossible de planifier la purge analytics")
	}

	c.Start()
	return c
}
