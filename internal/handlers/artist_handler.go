package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/farellandr/fyyur/internal/events"
	"github.com/farellandr/fyyur/internal/helpers"
	"github.com/farellandr/fyyur/internal/models"
	"github.com/farellandr/fyyur/internal/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ArtistForm struct {
	Name               string   `form:"name" binding:"required"`
	City               string   `form:"city" binding:"required"`
	State              string   `form:"state" binding:"required,usstate"`
	Phone              string   `form:"phone" binding:"omitempty,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url"`
	Website            string   `form:"website" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1,unique,dive,genre"`
	SeekingVenue       string   `form:"seeking_venue"`
	SeekingDescription string   `form:"seeking_description"`
}

func artistFormFrom(a models.Artist) ArtistForm {
	return ArtistForm{
		Name:               a.Name,
		City:               a.City,
		State:              a.State,
		Phone:              a.Phone,
		ImageLink:          a.ImageLink,
		FacebookLink:       a.FacebookLink,
		Website:            a.Website,
		Genres:             a.GenreList(),
		SeekingVenue:       checkboxValue(a.SeekingVenue),
		SeekingDescription: a.SeekingDescription,
	}
}

func (f *ArtistForm) sanitize() []string {
	f.Name = helpers.SanitizeText(f.Name)
	f.City = helpers.SanitizeText(f.City)
	f.SeekingDescription = helpers.SanitizeText(f.SeekingDescription)
	if f.Name == "" {
		return []string{"Name is required"}
	}
	return nil
}

func (f ArtistForm) apply(a *models.Artist) {
	a.Name = f.Name
	a.City = f.City
	a.State = f.State
	a.Phone = f.Phone
	a.ImageLink = f.ImageLink
	a.FacebookLink = f.FacebookLink
	a.Website = f.Website
	a.Genres = models.JoinGenres(f.Genres)
	a.SeekingVenue = checkbox(f.SeekingVenue)
	a.SeekingDescription = f.SeekingDescription
}

type ArtistDetail struct {
	models.Artist
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

func renderArtistForm(c *gin.Context, status int, page string, id uint, form ArtistForm, errs []string) {
	c.HTML(status, page, gin.H{
		"form":   form,
		"id":     id,
		"errors": errs,
		"genres": models.Genres,
		"states": models.States,
	})
}

func ListArtists(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var artists []models.Artist
	if err := db.Select("id", "name").Order("id").Find(&artists).Error; err != nil {
		zap.L().Error("failed to list artists", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "artists.html", gin.H{"artists": artists, "title": "Artists"})
}

func SearchArtists(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	searchTerm := c.PostForm("search_term")

	var artists []models.Artist
	err := db.Where("LOWER(name) LIKE ? ESCAPE '\\'", helpers.LikePattern(searchTerm)).Order("id").Find(&artists).Error
	if err != nil {
		zap.L().Error("failed to search artists", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	ids := make([]uint, 0, len(artists))
	for _, a := range artists {
		ids = append(ids, a.ID)
	}
	counts, err := upcomingCounts(db, "artist_id", ids)
	if err != nil {
		zap.L().Error("failed to count upcoming shows", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	results := SearchResults{Count: len(artists), Data: make([]Summary, 0, len(artists))}
	for _, a := range artists {
		results.Data = append(results.Data, Summary{ID: a.ID, Name: a.Name, NumUpcomingShows: counts[a.ID]})
	}

	c.HTML(http.StatusOK, "search_artists.html", gin.H{"results": results, "search_term": searchTerm})
}

func findArtist(c *gin.Context, db *gorm.DB) (models.Artist, bool) {
	var artist models.Artist
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RenderError(c, http.StatusNotFound)
		return artist, false
	}
	if err := db.First(&artist, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderError(c, http.StatusNotFound)
			return artist, false
		}
		zap.L().Error("failed to load artist", zap.Uint("artist_id", id), zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return artist, false
	}
	return artist, true
}

func GetArtist(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	artist, ok := findArtist(c, db)
	if !ok {
		return
	}

	var shows []models.Show
	if err := db.Preload("Venue").Where("artist_id = ?", artist.ID).Order("start_time").Find(&shows).Error; err != nil {
		zap.L().Error("failed to load artist shows", zap.Uint("artist_id", artist.ID), zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	past, upcoming := models.SplitShows(shows, time.Now())

	c.HTML(http.StatusOK, "show_artist.html", gin.H{
		"artist": ArtistDetail{
			Artist:             artist,
			PastShows:          showEntries(past),
			UpcomingShows:      showEntries(upcoming),
			PastShowsCount:     len(past),
			UpcomingShowsCount: len(upcoming),
		},
		"title": artist.Name,
		"flash": helpers.PopFlash(c),
	})
}

func CreateArtistForm(c *gin.Context) {
	renderArtistForm(c, http.StatusOK, "new_artist.html", 0, ArtistForm{}, nil)
}

func CreateArtistSubmission(c *gin.Context) {
	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		renderArtistForm(c, http.StatusBadRequest, "new_artist.html", 0, form, validation.Messages(err))
		return
	}
	if errs := form.sanitize(); errs != nil {
		renderArtistForm(c, http.StatusBadRequest, "new_artist.html", 0, form, errs)
		return
	}

	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var artist models.Artist
	form.apply(&artist)

	link, err := uploadImage(c, "artists")
	if err != nil {
		renderArtistForm(c, http.StatusBadRequest, "new_artist.html", 0, form, []string{err.Error()})
		return
	}
	if link != "" {
		artist.ImageLink = link
	}

	if err := db.Create(&artist).Error; err != nil {
		zap.L().Error("failed to create artist", zap.String("name", artist.Name), zap.Error(err))
		if link != "" {
			removeImage(c, link)
		}
		renderHome(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred. Artist %s could not be listed.", form.Name))
		return
	}

	publish(c, events.ArtistListed, events.ArtistListedEvent{
		ArtistID: artist.ID,
		Name:     artist.Name,
		City:     artist.City,
		State:    artist.State,
		ListedAt: listedAt(),
	})

	renderHome(c, http.StatusOK, fmt.Sprintf("Artist %s was successfully listed!", artist.Name))
}

func EditArtistForm(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	artist, ok := findArtist(c, db)
	if !ok {
		return
	}
	renderArtistForm(c, http.StatusOK, "edit_artist.html", artist.ID, artistFormFrom(artist), nil)
}

func EditArtistSubmission(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	artist, ok := findArtist(c, db)
	if !ok {
		return
	}

	var form ArtistForm
	if err := c.ShouldBind(&form); err != nil {
		renderArtistForm(c, http.StatusBadRequest, "edit_artist.html", artist.ID, form, validation.Messages(err))
		return
	}
	if errs := form.sanitize(); errs != nil {
		renderArtistForm(c, http.StatusBadRequest, "edit_artist.html", artist.ID, form, errs)
		return
	}

	oldImage := artist.ImageLink
	form.apply(&artist)

	link, err := uploadImage(c, "artists")
	if err != nil {
		renderArtistForm(c, http.StatusBadRequest, "edit_artist.html", artist.ID, form, []string{err.Error()})
		return
	}
	if link != "" {
		artist.ImageLink = link
	}

	if err := db.Save(&artist).Error; err != nil {
		zap.L().Error("failed to update artist", zap.Uint("artist_id", artist.ID), zap.Error(err))
		if link != "" {
			removeImage(c, link)
		}
		helpers.SetFlash(c, fmt.Sprintf("An error occurred. Artist %s could not be updated.", form.Name))
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", artist.ID))
		return
	}
	if oldImage != artist.ImageLink {
		removeImage(c, oldImage)
	}

	helpers.SetFlash(c, fmt.Sprintf("Artist %s was successfully updated!", artist.Name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/artists/%d", artist.ID))
}

func DeleteArtist(c *gin.Context) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
		return
	}

	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var artist models.Artist
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&artist, id).Error; err != nil {
			return err
		}
		if err := tx.Where("artist_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&artist).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Artist not found.")
			return
		}
		zap.L().Error("failed to delete artist", zap.Uint("artist_id", id), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete artist.")
		return
	}
	removeImage(c, artist.ImageLink)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"message": fmt.Sprintf("Artist %s was successfully deleted.", artist.Name),
	})
}
