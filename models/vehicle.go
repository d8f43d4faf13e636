package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Vehicle struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID uuid.UUID `gorm:"type:uuid;index;not null" json:"customerId"`
	CompanyID  string    `gorm:"size:64;index;not null;uniqueIndex:idx_company_plate,priority:1" json:"companyId"`

	Brand string `gorm:"not null" json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color"`
	// Plates are unique per tenant; empty plates are exempt.
	LicensePlate string `gorm:"size:32;uniqueIndex:idx_company_plate,priority:2,where:license_plate <> ''" json:"licensePlate"`

	// At most one default vehicle per customer; SetDefault swaps the flag
	// atomically.
	IsDefault bool `json:"isDefault"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (v *Vehicle) BeforeCreate(tx *gorm.DB) (err error) {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return
}

// SetDefault marks the vehicle as the customer's default and unsets the
// previous one inside a single transaction.
func SetDefault(db *gorm.DB, customerID, vehicleID uuid.UUID) error {
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&Vehicle{}).
			Where("customer_id = ? AND is_default = true", customerID).
			Update("is_default", false).Error; err != nil {
			return err
		}
		res := tx.Model(&Vehicle{}).
			Where("customer_id = ? AND id = ?", customerID, vehicleID).
			Update("is_default", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
