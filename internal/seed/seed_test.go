package seed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T, app string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:?_foreign_keys=on"), &gorm.Config{Logger: logger.Discard})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, config.Migrate(db, app))
	return db
}

func TestLoadFyyurFixtureIsIdempotent(t *testing.T) {
	db := openDB(t, config.AppFyyur)
	data, err := DefaultFixture(config.AppFyyur)
	require.NoError(t, err)

	first, err := Load(db, config.AppFyyur, data)
	require.NoError(t, err)
	assert.Equal(t, 11, first.Created)
	assert.Zero(t, first.Skipped)

	second, err := Load(db, config.AppFyyur, data)
	require.NoError(t, err)
	assert.Zero(t, second.Created)
	assert.Equal(t, 11, second.Skipped)

	var venues, artists, shows int64
	db.Model(&models.Venue{}).Count(&venues)
	db.Model(&models.Artist{}).Count(&artists)
	db.Model(&models.Show{}).Count(&shows)
	assert.EqualValues(t, 3, venues)
	assert.EqualValues(t, 3, artists)
	assert.EqualValues(t, 5, shows)

	var hop models.Venue
	require.NoError(t, db.Where("name = ?", "The Musical Hop").First(&hop).Error)
	assert.Equal(t, []string{"Jazz", "Reggae", "Classical", "Folk"}, hop.GenreList())
	assert.True(t, hop.SeekingTalent)
}

func TestLoadTriviaFixture(t *testing.T) {
	db := openDB(t, config.AppTrivia)
	data, err := DefaultFixture(config.AppTrivia)
	require.NoError(t, err)

	res, err := Load(db, config.AppTrivia, data)
	require.NoError(t, err)
	assert.Equal(t, 23, res.Created)

	var science models.Category
	require.NoError(t, db.Where("type = ?", "Science").First(&science).Error)

	var count int64
	db.Model(&models.Question{}).Where("category_id = ?", science.ID).Count(&count)
	assert.EqualValues(t, 3, count)
}

func TestLoadRejectsDanglingReferences(t *testing.T) {
	db := openDB(t, config.AppFyyur)

	_, err := LoadFyyur(db, FyyurFixtures{
		Venues: []VenueFixture{{Name: "Hall", City: "Austin", State: "TX"}},
		Shows:  []ShowFixture{{Artist: "Nobody", Venue: "Hall", StartTime: "2030-01-01 20:00:00"}},
	})
	assert.ErrorIs(t, err, ErrUnknownArtist)

	var venues int64
	db.Model(&models.Venue{}).Count(&venues)
	assert.Zero(t, venues, "failed load must roll back")

	tdb := openDB(t, config.AppTrivia)
	_, err = LoadTrivia(tdb, TriviaFixtures{
		Categories: []string{"Science"},
		Questions:  []QuestionFixture{{Question: "Q?", Answer: "A", Difficulty: 1, Category: "Art"}},
	})
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = LoadTrivia(tdb, TriviaFixtures{
		Categories: []string{"Science"},
		Questions:  []QuestionFixture{{Question: "Q?", Answer: "A", Difficulty: 9, Category: "Science"}},
	})
	assert.ErrorIs(t, err, ErrBadDifficulty)
}

func TestReadFixture(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trivia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: [Art]\n"), 0o644))

	data, err := ReadFixture(config.AppTrivia, path)
	require.NoError(t, err)
	assert.Equal(t, "categories: [Art]\n", string(data))

	_, err = ReadFixture(config.AppTrivia, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = DefaultFixture("blog")
	assert.Error(t, err)

	db := openDB(t, config.AppTrivia)
	_, err = Load(db, config.AppTrivia, []byte("categories: [unterminated"))
	assert.Error(t, err)
}

func TestEnsureAdmin(t *testing.T) {
	db := openDB(t, config.AppTrivia)

	created, err := EnsureAdmin(db, " Root@Example.com ", "secret1")
	require.NoError(t, err)
	assert.True(t, created)

	var user models.User
	require.NoError(t, db.Preload("Role").Where("email = ?", "root@example.com").First(&user).Error)
	assert.Equal(t, models.RoleAdmin, user.Role.Name)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("secret1")))

	created, err = EnsureAdmin(db, "root@example.com", "secret1")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = EnsureAdmin(db, "other@example.com", "123")
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = EnsureAdmin(db, "  ", "secret1")
	assert.ErrorIs(t, err, ErrMissingName)
}
