// controllers/service.go
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

// CreateServiceInput defines the expected JSON structure for creating a service
type CreateServiceInput struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,min=0"`
	Duration    int     `json:"duration" binding:"min=0"` // in minutes
	MinCapacity int     `json:"minCapacity" binding:"min=0"`
	MaxCapacity int     `json:"maxCapacity" binding:"min=0"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	Duration    *int     `json:"duration"`
	MinCapacity *int     `json:"minCapacity"`
	MaxCapacity *int     `json:"maxCapacity"`
	IsActive    *bool    `json:"isActive"`
}

// CreateService creates a new service in the company's catalog
func CreateService(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	// Service names are unique per company
	var existing models.Service
	if err := config.DB.Where("company_id = ? AND name = ?", companyID, input.Name).
		First(&existing).Error; err == nil {
		utils.RespondWithError(c, http.StatusConflict, "Service with this name already exists")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	service := models.Service{
		CompanyID:   companyID,
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Duration:    input.Duration,
		MinCapacity: input.MinCapacity,
		MaxCapacity: input.MaxCapacity,
		IsActive:    true,
	}

	if err := config.DB.Create(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create service")
		return
	}

	c.JSON(http.StatusCreated, service)
}

// GetServices retrieves all services for the company
func GetServices(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var services []models.Service
	if err := config.DB.Preload("Extras").Where("company_id = ?", companyID).
		Find(&services).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve services")
		return
	}

	c.JSON(http.StatusOK, services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var service models.Service
	if err := config.DB.Preload("Extras").
		Where("company_id = ? AND id = ?", companyID, c.Param("id")).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, service)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service models.Service
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, c.Param("id")).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Name != nil && *input.Name != service.Name {
		var existing models.Service
		if err := config.DB.Where("company_id = ? AND name = ?", companyID, *input.Name).
			First(&existing).Error; err == nil {
			utils.RespondWithError(c, http.StatusConflict, "Service with this name already exists")
			return
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
		service.Name = *input.Name
	}
	if input.Description != nil {
		service.Description = *input.Description
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.MinCapacity != nil {
		service.MinCapacity = *input.MinCapacity
	}
	if input.MaxCapacity != nil {
		service.MaxCapacity = *input.MaxCapacity
	}
	if input.IsActive != nil {
		service.IsActive = *input.IsActive
	}

	if err := config.DB.Save(&service).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update service")
		return
	}

	c.JSON(http.StatusOK, service)
}

// DeleteService removes a service from the catalog
func DeleteService(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	result := config.DB.Where("company_id = ? AND id = ?", companyID, c.Param("id")).
		Delete(&models.Service{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete service")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}

type CreateExtraInput struct {
	Name     string  `json:"name" binding:"required"`
	Price    float64 `json:"price" binding:"required,min=0"`
	Duration int     `json:"duration" binding:"min=0"`
}

// AddServiceExtra attaches an extra to a service
func AddServiceExtra(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var service models.Service
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, c.Param("id")).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var input CreateExtraInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	extra := models.ServiceExtra{
		ServiceID: service.ID,
		Name:      input.Name,
		Price:     input.Price,
		Duration:  input.Duration,
		IsActive:  true,
	}

	if err := config.DB.Create(&extra).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create extra")
		return
	}

	c.JSON(http.StatusCreated, extra)
}

// DeleteServiceExtra removes an extra from a service
func DeleteServiceExtra(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var service models.Service
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, c.Param("id")).
		First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	result := config.DB.Where("service_id = ? AND id = ?", service.ID, c.Param("extraId")).
		Delete(&models.ServiceExtra{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete extra")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Extra not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Extra deleted successfully"})
}
