package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentCompleted = "COMPLETED"
	PaymentFailed    = "FAILED"
)

// Payment is written only after the processor confirms success. The unique
// index on (booking_id, provider_ref) makes confirmation idempotent.
type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_booking_provider_ref,priority:1" json:"bookingId"`

	Amount      float64 `gorm:"type:decimal(10,2);not null" json:"amount"`
	Currency    string  `gorm:"size:3;default:'DKK'" json:"currency"`
	ProviderRef string  `gorm:"size:200;not null;uniqueIndex:idx_booking_provider_ref,priority:2" json:"providerRef"`
	Status      string  `gorm:"size:20;not null" json:"status"`

	CreatedAt time.Time `json:"createdAt"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return
}
