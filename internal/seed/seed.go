// Package seed loads YAML fixtures into the Fyyur and Trivia databases.
// Loading is idempotent: rows are matched by their natural key (venue and
// artist name, show artist/venue/start time, category type, question text)
// and only missing rows are inserted.
package seed

import (
	"embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/farellandr/fyyur/config"
	"github.com/farellandr/fyyur/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
)

//go:embed fixtures/*.yaml
var fixtureFS embed.FS

var (
	ErrUnknownArtist   = errors.New("show references an unknown artist")
	ErrUnknownVenue    = errors.New("show references an unknown venue")
	ErrUnknownCategory = errors.New("question references an unknown category")
	ErrMissingName     = errors.New("name is required")
	ErrBadDifficulty   = errors.New("difficulty must be between 1 and 5")
	ErrWeakPassword    = errors.New("admin password must be at least 6 characters")
)

type VenueFixture struct {
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Address            string   `yaml:"address"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	Website            string   `yaml:"website"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingTalent      bool     `yaml:"seeking_talent"`
	SeekingDescription string   `yaml:"seeking_description"`
}

type ArtistFixture struct {
	Name               string   `yaml:"name"`
	City               string   `yaml:"city"`
	State              string   `yaml:"state"`
	Phone              string   `yaml:"phone"`
	Genres             []string `yaml:"genres"`
	Website            string   `yaml:"website"`
	FacebookLink       string   `yaml:"facebook_link"`
	ImageLink          string   `yaml:"image_link"`
	SeekingVenue       bool     `yaml:"seeking_venue"`
	SeekingDescription string   `yaml:"seeking_description"`
}

// ShowFixture refers to its artist and venue by name.
type ShowFixture struct {
	Artist    string `yaml:"artist"`
	Venue     string `yaml:"venue"`
	StartTime string `yaml:"start_time"`
}

type FyyurFixtures struct {
	Venues  []VenueFixture  `yaml:"venues"`
	Artists []ArtistFixture `yaml:"artists"`
	Shows   []ShowFixture   `yaml:"shows"`
}

type QuestionFixture struct {
	Question   string `yaml:"question"`
	Answer     string `yaml:"answer"`
	Difficulty int    `yaml:"difficulty"`
	Category   string `yaml:"category"`
}

type TriviaFixtures struct {
	Categories []string          `yaml:"categories"`
	Questions  []QuestionFixture `yaml:"questions"`
}

// Result counts the rows one load inserted and the rows it found already present.
type Result struct {
	Created int
	Skipped int
}

// ensure returns the row matching query, inserting want when none exists.
func ensure[T any](tx *gorm.DB, res *Result, want T, query string, args ...any) (T, error) {
	var found T
	err := tx.Where(query, args...).First(&found).Error
	if err == nil {
		res.Skipped++
		return found, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return found, err
	}
	if err := tx.Create(&want).Error; err != nil {
		return want, err
	}
	res.Created++
	return want, nil
}

// DefaultFixture returns the embedded fixture for app.
func DefaultFixture(app string) ([]byte, error) {
	switch app {
	case config.AppFyyur, config.AppTrivia:
		return fixtureFS.ReadFile("fixtures/" + app + ".yaml")
	}
	return nil, fmt.Errorf("unknown app %q", app)
}

// ReadFixture returns the file at path, or the embedded fixture when path is empty.
func ReadFixture(app, path string) ([]byte, error) {
	if path == "" {
		return DefaultFixture(app)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return data, nil
}

// Load parses data and inserts it into db in a single transaction.
func Load(db *gorm.DB, app string, data []byte) (Result, error) {
	switch app {
	case config.AppFyyur:
		var fx FyyurFixtures
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return Result{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return LoadFyyur(db, fx)
	case config.AppTrivia:
		var fx TriviaFixtures
		if err := yaml.Unmarshal(data, &fx); err != nil {
			return Result{}, fmt.Errorf("failed to parse YAML: %w", err)
		}
		return LoadTrivia(db, fx)
	}
	return Result{}, fmt.Errorf("unknown app %q", app)
}

func LoadFyyur(db *gorm.DB, fx FyyurFixtures) (Result, error) {
	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		venueIDs := make(map[string]uint, len(fx.Venues))
		for _, v := range fx.Venues {
			if v.Name == "" {
				return fmt.Errorf("venue: %w", ErrMissingName)
			}
			venue := models.Venue{
				Name:               v.Name,
				City:               v.City,
				State:              v.State,
				Address:            v.Address,
				Phone:              v.Phone,
				Genres:             models.JoinGenres(v.Genres),
				Website:            v.Website,
				FacebookLink:       v.FacebookLink,
				ImageLink:          v.ImageLink,
				SeekingTalent:      v.SeekingTalent,
				SeekingDescription: v.SeekingDescription,
			}
			row, err := ensure(tx, &res, venue, "name = ?", v.Name)
			if err != nil {
				return err
			}
			venueIDs[v.Name] = row.ID
		}

		artistIDs := make(map[string]uint, len(fx.Artists))
		for _, a := range fx.Artists {
			if a.Name == "" {
				return fmt.Errorf("artist: %w", ErrMissingName)
			}
			artist := models.Artist{
				Name:               a.Name,
				City:               a.City,
				State:              a.State,
				Phone:              a.Phone,
				Genres:             models.JoinGenres(a.Genres),
				Website:            a.Website,
				FacebookLink:       a.FacebookLink,
				ImageLink:          a.ImageLink,
				SeekingVenue:       a.SeekingVenue,
				SeekingDescription: a.SeekingDescription,
			}
			row, err := ensure(tx, &res, artist, "name = ?", a.Name)
			if err != nil {
				return err
			}
			artistIDs[a.Name] = row.ID
		}

		for _, s := range fx.Shows {
			artistID, ok := artistIDs[s.Artist]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownArtist, s.Artist)
			}
			venueID, ok := venueIDs[s.Venue]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownVenue, s.Venue)
			}
			startTime, err := models.NormalizeShowTime(s.StartTime)
			if err != nil {
				return err
			}
			show := models.Show{ArtistID: artistID, VenueID: venueID, StartTime: startTime}
			if _, err := ensure(tx, &res, show,
				"artist_id = ? AND venue_id = ? AND start_time = ?", artistID, venueID, startTime); err != nil {
				return err
			}
		}
		return nil
	})
	return res, err
}

func LoadTrivia(db *gorm.DB, fx TriviaFixtures) (Result, error) {
	var res Result
	err := db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]uint, len(fx.Categories))
		for _, name := range fx.Categories {
			if name == "" {
				return fmt.Errorf("category: %w", ErrMissingName)
			}
			row, err := ensure(tx, &res, models.Category{Type: name}, "type = ?", name)
			if err != nil {
				return err
			}
			categoryIDs[name] = row.ID
		}

		for _, q := range fx.Questions {
			categoryID, ok := categoryIDs[q.Category]
			if !ok {
				return fmt.Errorf("%w: %q", ErrUnknownCategory, q.Category)
			}
			if q.Difficulty < 1 || q.Difficulty > 5 {
				return fmt.Errorf("%w: %q", ErrBadDifficulty, q.Question)
			}
			question := models.Question{
				Question:   q.Question,
				Answer:     q.Answer,
				Difficulty: q.Difficulty,
				CategoryID: categoryID,
			}
			if _, err := ensure(tx, &res, question, "question = ?", q.Question); err != nil {
				return err
			}
		}
		return nil
	})
	return res, err
}

// EnsureAdmin creates an admin account for email unless one already exists.
// It is the only way to create the first admin; later ones go through
// POST /auth/admins.
func EnsureAdmin(db *gorm.DB, email, password string) (created bool, err error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return false, fmt.Errorf("admin: %w", ErrMissingName)
	}
	if len(password) < 6 {
		return false, ErrWeakPassword
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.Where("name = ?", models.RoleAdmin).First(&role).Error; err != nil {
			return fmt.Errorf("failed to load admin role: %w", err)
		}

		var existing models.User
		err := tx.Where("email = ?", email).First(&existing).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		user := models.User{Email: email, Password: string(hashed), RoleID: role.ID}
		if err := tx.Omit("Role").Create(&user).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}
