package models

type Question struct {
	ID         uint     `gorm:"primaryKey" json:"id"`
	Question   string   `gorm:"not null" json:"question"`
	Answer     string   `gorm:"not null" json:"answer"`
	Difficulty int      `gorm:"not null" json:"difficulty"`
	CategoryID uint     `gorm:"not null;index" json:"category"`
	Category   Category `gorm:"foreignKey:CategoryID" json:"-"`
}
