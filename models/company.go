package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Company is the organizational tenant owning services, locations, staff
// and bookings. Catalog entities use free-form string ids so seeded rows
// ("default-company", "service-1") keep readable identifiers.
type Company struct {
	ID      string `gorm:"primaryKey;size:64" json:"id"`
	Name    string `gorm:"not null" json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`

	IsActive bool `gorm:"default:true" json:"isActive"`

	Users    []User    `gorm:"foreignKey:CompanyID" json:"-"`
	Services []Service `gorm:"foreignKey:CompanyID" json:"-"`
	Bookings []Booking `gorm:"foreignKey:CompanyID" json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (co *Company) BeforeCreate(tx *gorm.DB) (err error) {
	if co.ID == "" {
		co.ID = uuid.New().String()
	}
	return
}
