package models

import (
	"fmt"
	"time"
)

// ShowTimeLayout is the layout start times are stored in.
const ShowTimeLayout = "2006-01-02 15:04:05"

var showTimeInputLayouts = []string{
	ShowTimeLayout,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	time.RFC3339,
}

type Show struct {
	ID        uint   `gorm:"primaryKey"`
	ArtistID  uint   `gorm:"not null;index"`
	Artist    Artist `gorm:"foreignKey:ArtistID"`
	VenueID   uint   `gorm:"not null;index"`
	Venue     Venue  `gorm:"foreignKey:VenueID"`
	StartTime string `gorm:"not null"`
}

// ParseShowTime accepts the layouts produced by the show form and by the
// fixtures. Zoned values are converted to local time before the zone is dropped.
func ParseShowTime(value string) (time.Time, error) {
	for _, layout := range showTimeInputLayouts {
		if layout == time.RFC3339 {
			if t, err := time.Parse(layout, value); err == nil {
				return t.Local(), nil
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid show time %q", value)
}

// NormalizeShowTime returns value in ShowTimeLayout.
func NormalizeShowTime(value string) (string, error) {
	t, err := ParseShowTime(value)
	if err != nil {
		return "", err
	}
	return t.Format(ShowTimeLayout), nil
}

// SplitShows classifies shows into past and upcoming relative to now.
// Shows with an unparseable start time are dropped.
func SplitShows(shows []Show, now time.Time) (past, upcoming []Show) {
	past = []Show{}
	upcoming = []Show{}
	for _, s := range shows {
		start, err := ParseShowTime(s.StartTime)
		if err != nil {
			continue
		}
		if start.Before(now) {
			past = append(past, s)
		} else {
			upcoming = append(upcoming, s)
		}
	}
	return past, upcoming
}
