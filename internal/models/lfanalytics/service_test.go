package lfanalytics

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = testDB.AutoMigrate(&Event{})
	require.NoError(t, err)

	return testDB
}

func TestServiceRecord(t *testing.T) {
	service := NewService(setupTestDB(t), nil, 30)
	defer service.Stop()

	service.Record(context.Background(), Event{
		PagePath:  "/post/go",
		SessionID: "abc",
		Country:   "FR",
		City:      "Paris",
	})

	var count int64
	service.db.Model(&Event{}).Count(&count)
	assert.Equal(t, int64(1), count)

	var stored Event
	require.NoError(t, service.db.First(&stored).Error)
	assert.Equal(t, "/post/go", stored.PagePath)
	assert.False(t, stored.CreatedAt.IsZero())
}

func TestServiceRealtimeStatsWithoutRedis(t *testing.T) {
	service := NewService(setupTestDB(t), nil, 30)
	defer service.Stop()

	stats, err := service.GetRealtimeStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats)
}

func TestSummarizeSinceWindow(t *testing.T) {
	service := NewService(setupTestDB(t), nil, 30)
	defer service.Stop()

	now := time.Now()
	events := []Event{
		{PagePath: "/vieux", SessionID: "a", CreatedAt: now.AddDate(0, 0, -45)},
		{PagePath: "/recent", SessionID: "b", Country: "FR", City: "Lyon", CreatedAt: now.AddDate(0, 0, -2)},
		{PagePath: "/recent", SessionID: "c", Country: "FR", City: "Nice", CreatedAt: now.AddDate(0, 0, -1)},
	}
	require.NoError(t, service.db.Create(&events).Error)

	summary, err := service.SummarizeSince(now.AddDate(0, 0, -30), 10)
	require.NoError(t, err)

	// L'événement hors fenêtre est ignoré
	assert.Equal(t, 2, summary.PageViews)
	assert.Equal(t, 1, summary.UniqueViews)
	require.Len(t, summary.RecentVisitors, 2)
	assert.Equal(t, "Nice", summary.RecentVisitors[0].City)
}

func TestSetupCleanupCron(t *testing.T) {
	c := setupCleanupCron(setupTestDB(t), 30)
	defer c.Stop()

	// La purge quotidienne est bien enregistrée auprès du planificateur
	assert.Len(t, c.Entries(), 1)
}

func TestCleanupOldEvents(t *testing.T) {
	db := setupTestDB(t)

	now := time.Now()
	events := []Event{
		{PagePath: "/a", SessionID: "a", CreatedAt: now.AddDate(0, 0, -60)},
		{PagePath: "/b", SessionID: "b", CreatedAt: now.AddDate(0, 0, -10)},
	}
	require.NoError(t, db.Create(&events).Error)

	require.NoError(t, cleanupOldEvents(db, 30))

	var remaining []Event
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, "/b", remaining[0].PagePath)
}
