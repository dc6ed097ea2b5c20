package models

type Category struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Type string `gorm:"not null" json:"type"`
}
