package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Service struct {
	ID          string  `gorm:"primaryKey;size:64" json:"id"`
	CompanyID   string  `gorm:"size:64;index;not null;uniqueIndex:idx_company_service_name,priority:1" json:"companyId"`
	Name        string  `gorm:"not null;uniqueIndex:idx_company_service_name,priority:2" json:"name"`
	Description string  `json:"description"`
	Price       float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration    int     `json:"duration"` // in minutes
	MinCapacity int     `gorm:"default:0" json:"minCapacity"`
	MaxCapacity int     `gorm:"default:0" json:"maxCapacity"`
	IsActive    bool    `gorm:"default:true" json:"isActive"`

	Extras []ServiceExtra `gorm:"foreignKey:ServiceID" json:"extras,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return
}

type ServiceExtra struct {
	ID        string  `gorm:"primaryKey;size:64" json:"id"`
	ServiceID string  `gorm:"size:64;index;not null" json:"serviceId"`
	Name      string  `gorm:"not null" json:"name"`
	Price     float64 `gorm:"type:decimal(10,2);not null" json:"price"`
	Duration  int     `json:"duration"`
	IsActive  bool    `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *ServiceExtra) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return
}
