package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Location is the address a booking is served at. One row is created per
// booking; rows are not deduplicated.
type Location struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID string    `gorm:"size:64;index;not null" json:"companyId"`

	Name       string `json:"name"`
	Address    string `gorm:"not null" json:"address"`
	City       string `json:"city"`
	PostalCode string `gorm:"size:16" json:"postalCode"`
	Country    string `gorm:"size:64" json:"country"`

	CreatedAt time.Time `json:"createdAt"`
}

func (l *Location) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return
}
