// models/notification_log.go
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CompanyID  string    `gorm:"size:64;index;not null" json:"companyId"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	BookingID  uuid.UUID `gorm:"type:uuid;index;not null" json:"bookingId"`
	Type       string    `gorm:"type:varchar(20)" json:"type"` // reminder, confirmation
	Message    string    `gorm:"type:text" json:"message"`
	Status     string    `gorm:"type:varchar(20)" json:"status"` // sent, failed
	ErrorMsg   string    `gorm:"type:text" json:"errorMsg,omitempty"`
	Channel    string    `gorm:"type:varchar(20)" json:"channel"` // sms, whatsapp
	SentAt     time.Time `json:"sentAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (n *NotificationLog) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return
}
