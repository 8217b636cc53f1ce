package lfconfig

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateExampleAndLoad(t *testing.T) {
	file := filepath.Join(t.TempDir(), "config.yaml")

	_, err := CreateExampleConfig(file)
	require.NoError(t, err)

	conf, err := LoadConfig(file)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", conf.Database.Db)
	assert.Equal(t, "admin", conf.User.Login)
	assert.NotEmpty(t, conf.Sections)
	// Rétention par défaut appliquée au chargement
	assert.Equal(t, 30, conf.Analytics.RetentionDays)

	assert.NoError(t, conf.Validate())
}

func TestValidate(t *testing.T) {
	base := Config{Database: DatabaseConfig{Db: "sqlite", Path: "./x.db"}}
	assert.NoError(t, base.Validate())

	invalid := base
	invalid.Database.Db = "postgres"
	assert.Error(t, invalid.Validate())

	invalid = base
	invalid.Database.Db = "mysql"
	assert.Error(t, invalid.Validate())

	invalid = base
	invalid.Geo.Provider = "mmdb"
	assert.Error(t, invalid.Validate())

	invalid = base
	invalid.Geo.Provider = "http"
	assert.Error(t, invalid.Validate())

	valid := base
	valid.Geo = GeoConfig{Provider: "http", Endpoint: "https://ipapi.co"}
	assert.NoError(t, valid.Validate())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig("/nexiste/pas.yaml")
	assert.Error(t, err)
}
