// Package events defines the messages published when listings change.
package events

const (
	VenueListed  = "fyyur.venue.listed"
	ArtistListed = "fyyur.artist.listed"
	ShowListed   = "fyyur.show.listed"
)

type VenueListedEvent struct {
	VenueID  uint   `json:"venue_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	ListedAt string `json:"listed_at"`
}

type ArtistListedEvent struct {
	ArtistID uint   `json:"artist_id"`
	Name     string `json:"name"`
	City     string `json:"city"`
	State    string `json:"state"`
	ListedAt string `json:"listed_at"`
}

type ShowListedEvent struct {
	ShowID     uint   `json:"show_id"`
	ArtistID   uint   `json:"artist_id"`
	ArtistName string `json:"artist_name"`
	VenueID    uint   `json:"venue_id"`
	VenueName  string `json:"venue_name"`
	StartTime  string `json:"start_time"`
	ListedAt   string `json:"listed_at"`
}
