package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending    = "PENDING"
	BookingConfirmed  = "CONFIRMED"
	BookingInProgress = "IN_PROGRESS"
	BookingCompleted  = "COMPLETED"
	BookingCancelled  = "CANCELLED"
)

// bookingTransitions is the allowed status lifecycle. CANCELLED is only
// reachable from PENDING or CONFIRMED.
var bookingTransitions = map[string][]string{
	BookingPending:    {BookingConfirmed, BookingCancelled},
	BookingConfirmed:  {BookingInProgress, BookingCancelled},
	BookingInProgress: {BookingCompleted},
}

// CanTransition reports whether a booking may move from one status to
// another.
func CanTransition(from, to string) bool {
	for _, next := range bookingTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type Booking struct {
	ID         uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  string     `gorm:"size:64;index;not null" json:"companyId"`
	CustomerID uuid.UUID  `gorm:"type:uuid;index;not null" json:"customerId"`
	LocationID uuid.UUID  `gorm:"type:uuid;not null" json:"locationId"`
	VehicleID  *uuid.UUID `gorm:"type:uuid;index" json:"vehicleId,omitempty"`

	ScheduledAt time.Time `gorm:"not null" json:"scheduledAt"`
	Duration    int       `gorm:"not null" json:"duration"` // in minutes

	TotalPrice float64 `gorm:"type:decimal(10,2);not null" json:"totalPrice"`
	VAT        float64 `gorm:"type:decimal(10,2);default:0.0" json:"vat"`
	Notes      string  `json:"notes"`

	Status string `gorm:"type:varchar(20);not null;default:'PENDING'" json:"status"`

	// Which submission shape produced the booking ("enhanced" or
	// "wizard"); kept for analytics, never branched on.
	SourceFormat string `gorm:"type:varchar(20)" json:"sourceFormat"`

	Services []BookingService `gorm:"foreignKey:BookingID" json:"services,omitempty"`
	Payments []Payment        `gorm:"foreignKey:BookingID" json:"payments,omitempty"`
	Customer *User            `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Location *Location        `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) (err error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return
}

// BookingService is one priced line on a booking (base service or extra).
type BookingService struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	ServiceID string    `gorm:"size:64;index" json:"serviceId"`
	Name      string    `gorm:"not null" json:"name"`
	Quantity  int       `gorm:"default:1" json:"quantity"`
	UnitPrice float64   `gorm:"type:decimal(10,2);not null" json:"unitPrice"`
	Total     float64   `gorm:"type:decimal(10,2);not null" json:"total"`
}

func (bs *BookingService) BeforeCreate(tx *gorm.DB) (err error) {
	if bs.ID == uuid.Nil {
		bs.ID = uuid.New()
	}
	return
}
