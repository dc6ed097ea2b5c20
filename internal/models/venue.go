package models

type Venue struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"size:120;index:idx_venue_area"`
	State              string `gorm:"size:120;index:idx_venue_area"`
	Address            string `gorm:"size:120"`
	Phone              string `gorm:"size:120"`
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	Website            string `gorm:"size:120"`
	Genres             string `gorm:"size:500"`
	SeekingTalent      bool   `gorm:"not null;default:false"`
	SeekingDescription string
}

func (v Venue) GenreList() []string {
	return SplitGenres(v.Genres)
}
