package config

import (
	"testing"
	"time"

	"github.com/farellandr/fyyur/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_NAME", "")
	t.Setenv("PORT", "")

	cfg, err := LoadConfig(AppTrivia)
	require.NoError(t, err)

	assert.Equal(t, "trivia", cfg.DBName)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.False(t, cfg.TriviaRequireAuth)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_NAME", "fyyur_test")
	t.Setenv("PORT", "5000")
	t.Setenv("CACHE_TTL", "2m")
	t.Setenv("TRIVIA_REQUIRE_AUTH", "true")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig(AppFyyur)
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "fyyur_test", cfg.DBName)
	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, 2*time.Minute, cfg.CacheTTL)
	assert.True(t, cfg.TriviaRequireAuth)
}

func TestLoadConfigRejectsBadInput(t *testing.T) {
	_, err := LoadConfig("blog")
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "mysql")
	_, err = LoadConfig(AppFyyur)
	assert.Error(t, err)

	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("TRIVIA_REQUIRE_AUTH", "true")
	t.Setenv("JWT_SECRET", "")
	_, err = LoadConfig(AppTrivia)
	assert.Error(t, err)
}

func TestMigrateSeedsRolesOnce(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, Migrate(db, AppTrivia))
	require.NoError(t, Migrate(db, AppTrivia))

	var count int64
	require.NoError(t, db.Model(&models.Role{}).Count(&count).Error)
	assert.Equal(t, int64(2), count)

	require.NoError(t, Migrate(db, AppFyyur))
	assert.True(t, db.Migrator().HasTable(&models.Show{}))
}

func TestNewRedisClientDisabled(t *testing.T) {
	assert.Nil(t, NewRedisClient(&Config{}))
}
