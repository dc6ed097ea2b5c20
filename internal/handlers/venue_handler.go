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

type VenueForm struct {
	Name               string   `form:"name" binding:"required"`
	City               string   `form:"city" binding:"required"`
	State              string   `form:"state" binding:"required,usstate"`
	Address            string   `form:"address" binding:"required"`
	Phone              string   `form:"phone" binding:"omitempty,phone"`
	ImageLink          string   `form:"image_link" binding:"omitempty,url"`
	FacebookLink       string   `form:"facebook_link" binding:"omitempty,url"`
	Website            string   `form:"website" binding:"omitempty,url"`
	Genres             []string `form:"genres" binding:"required,min=1,unique,dive,genre"`
	SeekingTalent      string   `form:"seeking_talent"`
	SeekingDescription string   `form:"seeking_description"`
}

func venueFormFrom(v models.Venue) VenueForm {
	return VenueForm{
		Name:               v.Name,
		City:               v.City,
		State:              v.State,
		Address:            v.Address,
		Phone:              v.Phone,
		ImageLink:          v.ImageLink,
		FacebookLink:       v.FacebookLink,
		Website:            v.Website,
		Genres:             v.GenreList(),
		SeekingTalent:      checkboxValue(v.SeekingTalent),
		SeekingDescription: v.SeekingDescription,
	}
}

func (f *VenueForm) sanitize() []string {
	f.Name = helpers.SanitizeText(f.Name)
	f.City = helpers.SanitizeText(f.City)
	f.Address = helpers.SanitizeText(f.Address)
	f.SeekingDescription = helpers.SanitizeText(f.SeekingDescription)
	if f.Name == "" {
		return []string{"Name is required"}
	}
	return nil
}

func (f VenueForm) apply(v *models.Venue) {
	v.Name = f.Name
	v.City = f.City
	v.State = f.State
	v.Address = f.Address
	v.Phone = f.Phone
	v.ImageLink = f.ImageLink
	v.FacebookLink = f.FacebookLink
	v.Website = f.Website
	v.Genres = models.JoinGenres(f.Genres)
	v.SeekingTalent = checkbox(f.SeekingTalent)
	v.SeekingDescription = f.SeekingDescription
}

// VenueArea groups the venues of one city.
type VenueArea struct {
	City   string
	State  string
	Venues []Summary
}

type VenueDetail struct {
	models.Venue
	PastShows          []ShowEntry
	UpcomingShows      []ShowEntry
	PastShowsCount     int
	UpcomingShowsCount int
}

func renderVenueForm(c *gin.Context, status int, page string, id uint, form VenueForm, errs []string) {
	c.HTML(status, page, gin.H{
		"form":   form,
		"id":     id,
		"errors": errs,
		"genres": models.Genres,
		"states": models.States,
	})
}

func ListVenues(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var venues []models.Venue
	if err := db.Order("state, city, id").Find(&venues).Error; err != nil {
		zap.L().Error("failed to list venues", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	ids := make([]uint, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	counts, err := upcomingCounts(db, "venue_id", ids)
	if err != nil {
		zap.L().Error("failed to count upcoming shows", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	areas := []VenueArea{}
	for _, v := range venues {
		if n := len(areas); n == 0 || areas[n-1].City != v.City || areas[n-1].State != v.State {
			areas = append(areas, VenueArea{City: v.City, State: v.State})
		}
		last := &areas[len(areas)-1]
		last.Venues = append(last.Venues, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}

	c.HTML(http.StatusOK, "venues.html", gin.H{"areas": areas, "title": "Venues"})
}

func SearchVenues(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	searchTerm := c.PostForm("search_term")

	var venues []models.Venue
	err := db.Where("LOWER(name) LIKE ? ESCAPE '\\'", helpers.LikePattern(searchTerm)).Order("id").Find(&venues).Error
	if err != nil {
		zap.L().Error("failed to search venues", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	ids := make([]uint, 0, len(venues))
	for _, v := range venues {
		ids = append(ids, v.ID)
	}
	counts, err := upcomingCounts(db, "venue_id", ids)
	if err != nil {
		zap.L().Error("failed to count upcoming shows", zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	results := SearchResults{Count: len(venues), Data: make([]Summary, 0, len(venues))}
	for _, v := range venues {
		results.Data = append(results.Data, Summary{ID: v.ID, Name: v.Name, NumUpcomingShows: counts[v.ID]})
	}

	c.HTML(http.StatusOK, "search_venues.html", gin.H{"results": results, "search_term": searchTerm})
}

func findVenue(c *gin.Context, db *gorm.DB) (models.Venue, bool) {
	var venue models.Venue
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RenderError(c, http.StatusNotFound)
		return venue, false
	}
	if err := db.First(&venue, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RenderError(c, http.StatusNotFound)
			return venue, false
		}
		zap.L().Error("failed to load venue", zap.Uint("venue_id", id), zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return venue, false
	}
	return venue, true
}

func GetVenue(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	venue, ok := findVenue(c, db)
	if !ok {
		return
	}

	var shows []models.Show
	if err := db.Preload("Artist").Where("venue_id = ?", venue.ID).Order("start_time").Find(&shows).Error; err != nil {
		zap.L().Error("failed to load venue shows", zap.Uint("venue_id", venue.ID), zap.Error(err))
		helpers.RenderError(c, http.StatusInternalServerError)
		return
	}

	past, upcoming := models.SplitShows(shows, time.Now())
	detail := VenueDetail{
		Venue:              venue,
		PastShows:          showEntries(past),
		UpcomingShows:      showEntries(upcoming),
		PastShowsCount:     len(past),
		UpcomingShowsCount: len(upcoming),
	}

	c.HTML(http.StatusOK, "show_venue.html", gin.H{
		"venue": detail,
		"title": venue.Name,
		"flash": helpers.PopFlash(c),
	})
}

func CreateVenueForm(c *gin.Context) {
	renderVenueForm(c, http.StatusOK, "new_venue.html", 0, VenueForm{}, nil)
}

func CreateVenueSubmission(c *gin.Context) {
	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		renderVenueForm(c, http.StatusBadRequest, "new_venue.html", 0, form, validation.Messages(err))
		return
	}
	if errs := form.sanitize(); errs != nil {
		renderVenueForm(c, http.StatusBadRequest, "new_venue.html", 0, form, errs)
		return
	}

	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var venue models.Venue
	form.apply(&venue)

	link, err := uploadImage(c, "venues")
	if err != nil {
		renderVenueForm(c, http.StatusBadRequest, "new_venue.html", 0, form, []string{err.Error()})
		return
	}
	if link != "" {
		venue.ImageLink = link
	}

	if err := db.Create(&venue).Error; err != nil {
		zap.L().Error("failed to create venue", zap.String("name", venue.Name), zap.Error(err))
		if link != "" {
			removeImage(c, link)
		}
		renderHome(c, http.StatusInternalServerError, fmt.Sprintf("An error occurred. Venue %s could not be listed.", form.Name))
		return
	}

	publish(c, events.VenueListed, events.VenueListedEvent{
		VenueID:  venue.ID,
		Name:     venue.Name,
		City:     venue.City,
		State:    venue.State,
		ListedAt: listedAt(),
	})

	renderHome(c, http.StatusOK, fmt.Sprintf("Venue %s was successfully listed!", venue.Name))
}

func EditVenueForm(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	venue, ok := findVenue(c, db)
	if !ok {
		return
	}
	renderVenueForm(c, http.StatusOK, "edit_venue.html", venue.ID, venueFormFrom(venue), nil)
}

func EditVenueSubmission(c *gin.Context) {
	db, ok := fyyurDB(c)
	if !ok {
		return
	}
	venue, ok := findVenue(c, db)
	if !ok {
		return
	}

	var form VenueForm
	if err := c.ShouldBind(&form); err != nil {
		renderVenueForm(c, http.StatusBadRequest, "edit_venue.html", venue.ID, form, validation.Messages(err))
		return
	}
	if errs := form.sanitize(); errs != nil {
		renderVenueForm(c, http.StatusBadRequest, "edit_venue.html", venue.ID, form, errs)
		return
	}

	oldImage := venue.ImageLink
	form.apply(&venue)

	link, err := uploadImage(c, "venues")
	if err != nil {
		renderVenueForm(c, http.StatusBadRequest, "edit_venue.html", venue.ID, form, []string{err.Error()})
		return
	}
	if link != "" {
		venue.ImageLink = link
	}

	if err := db.Save(&venue).Error; err != nil {
		zap.L().Error("failed to update venue", zap.Uint("venue_id", venue.ID), zap.Error(err))
		if link != "" {
			removeImage(c, link)
		}
		helpers.SetFlash(c, fmt.Sprintf("An error occurred. Venue %s could not be updated.", form.Name))
		c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", venue.ID))
		return
	}
	if oldImage != venue.ImageLink {
		removeImage(c, oldImage)
	}

	helpers.SetFlash(c, fmt.Sprintf("Venue %s was successfully updated!", venue.Name))
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/venues/%d", venue.ID))
}

// DeleteVenue removes the venue and its shows in one transaction.
func DeleteVenue(c *gin.Context) {
	id, ok := helpers.ParseID(c.Param("id"))
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound, "Venue not found.")
		return
	}

	db, ok := fyyurDB(c)
	if !ok {
		return
	}

	var venue models.Venue
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&venue, id).Error; err != nil {
			return err
		}
		if err := tx.Where("venue_id = ?", id).Delete(&models.Show{}).Error; err != nil {
			return err
		}
		return tx.Delete(&venue).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Venue not found.")
			return
		}
		zap.L().Error("failed to delete venue", zap.Uint("venue_id", id), zap.Error(err))
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete venue.")
		return
	}
	removeImage(c, venue.ImageLink)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"id":      id,
		"message": fmt.Sprintf("Venue %s was successfully deleted.", venue.Name),
	})
}
