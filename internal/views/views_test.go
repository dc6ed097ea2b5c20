package views

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDateTime(t *testing.T) {
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDateTime("2019-05-21 21:30:00"))
	assert.Equal(t, "Tue 05, 21, 2019 9:30PM", FormatDateTime("2019-05-21 21:30:00", "medium"))
	assert.Equal(t, "Tuesday May, 21, 2019 at 9:30PM", FormatDateTime("2019-05-21 21:30:00", "full"))
	assert.Equal(t, "soon", FormatDateTime("soon"))
}

func TestLoadParsesAllPages(t *testing.T) {
	tmpl, err := Load()
	require.NoError(t, err)

	for _, name := range []string{
		"home.html", "venues.html", "search_venues.html", "show_venue.html",
		"artists.html", "search_artists.html", "show_artist.html", "shows.html",
		"new_venue.html", "edit_venue.html", "new_artist.html", "edit_artist.html",
		"new_show.html", "404.html", "405.html", "500.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), name)
	}

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, "home.html", map[string]any{"flash": "Hello <b>there</b>"}))
	assert.Contains(t, buf.String(), "Hello &lt;b&gt;there&lt;/b&gt;")
}
