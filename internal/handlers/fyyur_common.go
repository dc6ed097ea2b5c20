package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/middleware"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ShowEntry is a show as listed on venue, artist and show pages.
type ShowEntry struct {
	ShowID          uint
	ArtistID        uint
	ArtistName      string
	ArtistImageLink string
	VenueID         uint
	VenueName       string
	VenueImageLink  string
	StartTime       string
}

// Summary is a search or listing row.
type Summary struct {
	ID               uint
	Name             string
	NumUpcomingShows int
}

type SearchResults struct {
	Count int
	Data  []Summary
}

func showEntry(s models.Show) ShowEntry {
	return ShowEntry{
		ShowID:          s.ID,
		ArtistID:        s.ArtistID,
		ArtistName:      s.Artist.Name,
		ArtistImageLink: s.Artist.ImageLink,
		VenueID:         s.VenueID,
		VenueName:       s.Venue.Name,
		VenueImageLink:  s.Venue.ImageLink,
		StartTime:       s.StartTime,
	}
}

func showEntries(shows []models.Show) []ShowEntry {
	out := make([]ShowEntry, 0, len(shows))
	for _, s := range shows {
		out = append(out, showEntry(s))
	}
	return out
}

// upcomingCounts counts upcoming shows per owner id, where column is
// "venue_id" or "artist_id".
func upcomingCounts(db *gorm.DB, column string, ids []uint) (map[uint]int, error) {
	counts := make(map[uint]int, len(ids))
	if len(ids) == 0 {
		return counts, nil
	}

	var shows []models.Show
	if err := db.Where(column+" IN ?", ids).Find(&shows).Error; err != nil {
		return nil, err
	}

	_, upcoming := models.SplitShows(shows, time.Now())
	for _, s := range upcoming {
		if column == "artist_id" {
			counts[s.ArtistID]++
		} else {
			counts[s.VenueID]++
		}
	}
	return counts, nil
}

// checkbox reports whether a WTForms-style checkbox was ticked.
func checkbox(value string) bool {
	return value == "y"
}

func checkboxValue(checked bool) string {
	if checked {
		return "y"
	}
	return ""
}

// uploadImage stores the optional "image" file and returns its link, or ""
// when no file was sent.
func uploadImage(c *gin.Context, uploadType string) (string, error) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return "", nil
	}
	cfg := helpers.ImageUploadConfig(middleware.GetSettings(c).UploadDir)
	return helpers.UploadFile(c, fileHeader, uploadType, cfg)
}

func removeImage(c *gin.Context, link string) {
	if err := helpers.DeleteUpload(link, middleware.GetSettings(c).UploadDir); err != nil {
		zap.L().Warn("failed to remove uploaded image", zap.String("link", link), zap.Error(err))
	}
}

func publish(c *gin.Context, routingKey string, event any) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(c.Request.Context()), 2*time.Second)
	defer cancel()
	if err := middleware.GetPublisher(c).Publish(ctx, routingKey, event); err != nil {
		zap.L().Warn("failed to publish event", zap.String("routing_key", routingKey), zap.Error(err))
	}
}

func listedAt() string {
	return time.Now().UTC().Format(time.RFC3339)
}

func fyyurDB(c *gin.Context) (*gorm.DB, bool) {
	db, ok := middleware.GetDB(c)
	if !ok {
		zap.L().Error("database connection not found in request context")
		helpers.RenderError(c, http.StatusInternalServerError)
		return nil, false
	}
	return db, true
}

func renderHome(c *gin.Context, status int, flash string) {
	c.HTML(status, "home.html", gin.H{"flash": flash})
}

func Home(c *gin.Context) {
	renderHome(c, http.StatusOK, helpers.PopFlash(c))
}

func NotFoundPage(c *gin.Context) {
	helpers.RenderError(c, http.StatusNotFound)
}

func MethodNotAllowedPage(c *gin.Context) {
	helpers.RenderError(c, http.StatusMethodNotAllowed)
}
