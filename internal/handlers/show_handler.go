package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ShowForm struct {
	ArtistID  uint   `form:"artist_id" binding:"required"`
	VenueID   uint   `form:"venue_id" binding:"required"`
	StartTime string `form:"start_time" binding:"required,showtime"`
}

func renderShowForm(c *gin.Context, status int, form ShowForm, errs []string) {
	c.HTML(status, "new_show.html", gin.H{"form": form, "errors": errs})
}

func ListShows(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var shows []models.Show
	if err := db.Preload("Artist").Preload("Venue").Order("start_time, id").Find(&shows).Error; err != nil {
		zap.L().Error("failed to list shows", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "shows.html", gin.H{"shows": showEntries(shows), "title": "Shows"})
}

func CreateShowForm(c *gin.Context) {
	renderShowForm(c, http.StatusOK, ShowForm{}, nil)
}

func CreateShowSubmission(c *gin.Context) {
	var form ShowForm
	if err := c.ShouldBind(&form); err != nil {
		renderShowForm(c, http.StatusBadRequest, form, validation.Messages(err))
		return
	}

	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	startTime, err := models.NormalizeShowTime(form.StartTime)
	if err != nil {
		renderShowForm(c, http.StatusBadRequest, form, []string{err.Error()})
		return
	}

	show := models.Show{ArtistID: form.ArtistID, VenueID: form.VenueID, StartTime: startTime}
	var missing []string
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&show.Artist, form.ArtistID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = append(missing, "Artist ID does not match an existing artist")
			} else {
				return err
			}
		}
		if err := tx.First(&show.Venue, form.VenueID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				missing = append(missing, "Venue ID does not match an existing venue")
			} else {
				return err
			}
		}
		if len(missing) > 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Omit("Artist", "Venue").Create(&show).Error
	})
	if len(missing) > 0 {
		renderShowForm(c, http.StatusBadRequest, form, missing)
		return
	}
	if err != nil {
		zap.L().Error("failed to create show",
			zap.Uint("artist_id", form.ArtistID),
			zap.Uint("venue_id", form.VenueID),
			zap.Error(err),
		)
		renderHome(c, http.StatusInternalServerError, "An error occurred. Show could not be listed.")
		return
	}

	publish(c, events.ShowListed, events.ShowListedEvent{
		ShowID:     show.ID,
		ArtistID:   show.ArtistID,
		ArtistName: show.Artist.Name,
		VenueID:    show.VenueID,
		VenueName:  show.Venue.Name,
		StartTime:  show.StartTime,
		ListedAt:   listedAt(),
	})

	renderHome(c, http.StatusOK, "Show was successfully listed!")
}
