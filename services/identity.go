// services/identity.go
package services

import (
	"errors"

	"cleanfoss-backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrCustomerNotFound = errors.New("identity not found")

// ResolveCustomer returns the identity a booking should be attributed to.
//
// With an authenticated id the account must exist; its contact fields are
// refreshed from the submission where non-empty. Without one the identity
// is upserted by email, creating a guest account on first contact. The
// upsert is idempotent per email.
func ResolveCustomer(tx *gorm.DB, authUserID *uuid.UUID, contact ContactInfo) (*models.User, error) {
	if authUserID != nil {
		var user models.User
		if err := tx.First(&user, "id = ?", *authUserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCustomerNotFound
			}
			return nil, err
		}
		updates := map[string]interface{}{}
		if contact.Name != "" && contact.Name != user.Name {
			updates["name"] = contact.Name
			user.Name = contact.Name
		}
		if contact.Phone != "" && contact.Phone != user.Phone {
			updates["phone"] = contact.Phone
			user.Phone = contact.Phone
		}
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}

	var user models.User
	err := tx.First(&user, "email = ?", contact.Email).Error
	if err == nil {
		updates := map[string]interface{}{}
		if contact.Name != "" && contact.Name != user.Name {
			updates["name"] = contact.Name
			user.Name = contact.Name
		}
		if contact.Phone != "" && contact.Phone != user.Phone {
			updates["phone"] = contact.Phone
			user.Phone = contact.Phone
		}
		if len(updates) > 0 {
			if err := tx.Model(&user).Updates(updates).Error; err != nil {
				return nil, err
			}
		}
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	guest := models.User{
		Email:    contact.Email,
		Name:     contact.Name,
		Phone:    contact.Phone,
		Role:     models.RoleCustomer,
		IsActive: true,
	}
	if err := tx.Create(&guest).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}
