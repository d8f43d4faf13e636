// controllers/company.go
package controllers

import (
	"errors"
	"net/http"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateCompanyInput struct {
	ID      string `json:"id"`
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type UpdateCompanyInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Phone    *string `json:"phone"`
	Address  *string `json:"address"`
	IsActive *bool   `json:"isActive"`
}

// CreateCompany registers a new tenant. Superadmin only.
func CreateCompany(c *gin.Context) {
	var input CreateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if input.ID != "" {
		var existing models.Company
		if err := config.DB.First(&existing, "id = ?", input.ID).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Company with this ID already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	company := models.Company{
		ID:       input.ID,
		Name:     input.Name,
		Email:    input.Email,
		Phone:    input.Phone,
		Address:  input.Address,
		IsActive: true,
	}

	if err := config.DB.Create(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create company")
		return
	}

	c.JSON(http.StatusCreated, company)
}

// GetCompanies lists all tenants. Superadmin only.
func GetCompanies(c *gin.Context) {
	var companies []models.Company
	if err := config.DB.Find(&companies).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve companies")
		return
	}

	c.JSON(http.StatusOK, companies)
}

// GetCompany retrieves one tenant by id. Superadmin only.
func GetCompany(c *gin.Context) {
	var company models.Company
	if err := config.DB.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, company)
}

// UpdateCompany updates a tenant. Superadmin only.
func UpdateCompany(c *gin.Context) {
	var input UpdateCompanyInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var company models.Company
	if err := config.DB.First(&company, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil {
		company.Name = *input.Name
	}
	if input.Email != nil {
		company.Email = *input.Email
	}
	if input.Phone != nil {
		company.Phone = *input.Phone
	}
	if input.Address != nil {
		company.Address = *input.Address
	}
	if input.IsActive != nil {
		company.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&company).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update company")
		return
	}

	c.JSON(http.StatusOK, company)
}

// DeleteCompany removes a tenant together with its catalog and locations.
// Tenants with booking history cannot be deleted. Superadmin only.
func DeleteCompany(c *gin.Context) {
	companyID := c.Param("id")

	var company models.Company
	if err := config.DB.First(&company, "id = ?", companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Company not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bookings int64
	if err := config.DB.Model(&models.Booking{}).
		Where("company_id = ?", companyID).Count(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if bookings > 0 {
		utils.RespondWithError(c, http.StatusConflict, "Company has bookings and cannot be deleted")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		serviceIDs := tx.Model(&models.Service{}).Select("id").Where("company_id = ?", companyID)
		if err := tx.Where("service_id IN (?)", serviceIDs).Delete(&models.ServiceExtra{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&models.Service{}).Error; err != nil {
			return err
		}
		if err := tx.Where("company_id = ?", companyID).Delete(&models.Location{}).Error; err != nil {
			return err
		}
		return tx.Delete(&company).Error
	})
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete company")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Company deleted"})
}
