package models

import "strings"

const genreSeparator = ","

var Genres = []string{
	"Alternative",
	"Blues",
	"Classical",
	"Country",
	"Electronic",
	"Folk",
	"Funk",
	"Hip-Hop",
	"Heavy Metal",
	"Instrumental",
	"Jazz",
	"Musical Theatre",
	"Pop",
	"Punk",
	"R&B",
	"Reggae",
	"Rock n Roll",
	"Soul",
	"Other",
}

var States = []string{
	"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "DC", "FL",
	"GA", "HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME",
	"MT", "NE", "NV", "NH", "NJ", "NM", "NY", "NC", "ND", "OH",
	"OK", "OR", "MD", "MA", "MI", "MN", "MS", "MO", "PA", "RI",
	"SC", "SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI",
	"WY",
}

func IsGenre(s string) bool {
	for _, g := range Genres {
		if g == s {
			return true
		}
	}
	return false
}

func IsState(s string) bool {
	for _, st := range States {
		if st == s {
			return true
		}
	}
	return false
}

func JoinGenres(genres []string) string {
	return strings.Join(genres, genreSeparator)
}

func SplitGenres(genres string) []string {
	out := []string{}
	for _, g := range strings.Split(genres, genreSeparator) {
		if g = strings.TrimSpace(g); g != "" {
			out = append(out, g)
		}
	}
	return out
}
