package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeShowTime(t *testing.T) {
	cases := map[string]string{
		"2035-04-01 20:00:00": "2035-04-01 20:00:00",
		"2035-04-01T20:00":    "2035-04-01 20:00:00",
		"2035-04-01T20:00:30": "2035-04-01 20:00:30",
		"2035-04-01 20:00":    "2035-04-01 20:00:00",
	}
	for in, want := range cases {
		got, err := NormalizeShowTime(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := NormalizeShowTime("next friday")
	assert.Error(t, err)
}

func TestSplitShows(t *testing.T) {
	now := time.Date(2026, 10, 16, 12, 0, 0, 0, time.Local)
	shows := []Show{
		{ID: 1, StartTime: "2019-05-21 21:30:00"},
		{ID: 2, StartTime: "2035-04-01 20:00:00"},
		{ID: 3, StartTime: "2026-10-16 12:00:00"},
		{ID: 4, StartTime: "garbage"},
	}

	past, upcoming := SplitShows(shows, now)

	require.Len(t, past, 1)
	assert.Equal(t, uint(1), past[0].ID)
	require.Len(t, upcoming, 2)
	assert.Equal(t, uint(2), upcoming[0].ID)
	assert.Equal(t, uint(3), upcoming[1].ID)
}

func TestSplitShowsEmpty(t *testing.T) {
	past, upcoming := SplitShows(nil, time.Now())
	assert.NotNil(t, past)
	assert.NotNil(t, upcoming)
	assert.Empty(t, past)
	assert.Empty(t, upcoming)
}

func TestGenres(t *testing.T) {
	joined := JoinGenres([]string{"Jazz", "R&B", "Hip-Hop"})
	assert.Equal(t, "Jazz,R&B,Hip-Hop", joined)
	assert.Equal(t, []string{"Jazz", "R&B", "Hip-Hop"}, SplitGenres(joined))
	assert.Equal(t, []string{}, SplitGenres(""))
	assert.Equal(t, []string{"Rock n Roll"}, SplitGenres(" Rock n Roll , "))

	assert.True(t, IsGenre("Musical Theatre"))
	assert.False(t, IsGenre("jazz"))
	assert.True(t, IsState("CA"))
	assert.False(t, IsState("XX"))
}

func TestEveryGenreFitsGenresColumn(t *testing.T) {
	// Venue.Genres and Artist.Genres are size:500.
	assert.LessOrEqual(t, len(JoinGenres(Genres)), 500)
}
