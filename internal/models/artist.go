package models

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"size:120"`
	State              string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	Genres             string `gorm:"size:500"`
	Website            string `gorm:"size:120"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	SeekingVenue       bool   `gorm:"not null;default:false"`
	SeekingDescription string
}

func (a Artist) GenreList() []string {
	return SplitGenres(a.Genres)
}
