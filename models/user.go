package models

import (
	"time"

	"cleanfoss-backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleCustomer   = "customer"
	RoleAgent      = "agent"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "superadmin"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`
	Name  string    `gorm:"not null" json:"name"`
	Phone string    `json:"phone"`

	// Empty for guest identities created by booking intake.
	Password string `json:"-"`

	Role      string  `gorm:"type:varchar(20);not null;default:'customer'" json:"role"`
	CompanyID *string `gorm:"size:64;index" json:"companyId,omitempty"`

	Vehicles []Vehicle `gorm:"foreignKey:CustomerID" json:"-"`
	Bookings []Booking `gorm:"foreignKey:CustomerID" json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	IsActive  bool       `gorm:"default:true" json:"isActive"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Initialize UUID and hash the password before creating
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Password != "" {
		hashed, err := utils.HashPassword(u.Password)
		if err != nil {
			return err
		}
		u.Password = hashed
	}
	return
}

// Session is a login session row. Deleted on logout and when the owning
// account is deleted.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (s *Session) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return
}

// OAuthAccount links a user to an external identity provider.
type OAuthAccount struct {
	ID                uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID            uuid.UUID `gorm:"type:uuid;index;not null" json:"userId"`
	Provider          string    `gorm:"size:50;not null;uniqueIndex:idx_provider_account,priority:1" json:"provider"`
	ProviderAccountID string    `gorm:"size:100;not null;uniqueIndex:idx_provider_account,priority:2" json:"providerAccountId"`
	CreatedAt         time.Time `json:"createdAt"`
}

func (a *OAuthAccount) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return
}
