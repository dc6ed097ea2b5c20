package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleCurator = "curator"
)

type Role struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"unique;not null" json:"name"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

func (role *Role) BeforeCreate(tx *gorm.DB) (err error) {
	if role.ID == uuid.Nil {
		role.ID = uuid.New()
	}
	return
}
