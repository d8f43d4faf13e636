// controllers/vehicle.go
package controllers

import (
	"errors"
	"net/http"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/services"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateVehicleInput struct {
	Brand        string `json:"brand" binding:"required"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	Color        string `json:"color"`
	LicensePlate string `json:"licensePlate"`
	IsDefault    bool   `json:"isDefault"`
}

type UpdateVehicleInput struct {
	Brand        *string `json:"brand"`
	Model        *string `json:"model"`
	Year         *int    `json:"year"`
	Color        *string `json:"color"`
	LicensePlate *string `json:"licensePlate"`
}

// CreateVehicle adds a vehicle to the logged-in customer's garage.
func CreateVehicle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var input CreateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	companyID, _ := currentCompanyID(c)
	tenantID := services.ResolveTenant(nil, companyID)

	if input.LicensePlate != "" {
		var existing models.Vehicle
		err := config.DB.First(&existing, "company_id = ? AND license_plate = ?",
			tenantID, input.LicensePlate).Error
		if err == nil {
			utils.RespondWithError(c, http.StatusConflict, "License plate already registered")
			return
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
			return
		}
	}

	vehicle := models.Vehicle{
		CustomerID:   userID,
		CompanyID:    tenantID,
		Brand:        input.Brand,
		Model:        input.Model,
		Year:         input.Year,
		Color:        input.Color,
		LicensePlate: input.LicensePlate,
	}

	if err := config.DB.Create(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create vehicle")
		return
	}

	if input.IsDefault {
		if err := models.SetDefault(config.DB, userID, vehicle.ID); err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to set default vehicle")
			return
		}
		vehicle.IsDefault = true
	}

	c.JSON(http.StatusCreated, vehicle)
}

// GetVehicles lists the logged-in customer's vehicles.
func GetVehicles(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var vehicles []models.Vehicle
	if err := config.DB.Where("customer_id = ?", userID).Find(&vehicles).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve vehicles")
		return
	}

	c.JSON(http.StatusOK, vehicles)
}

// UpdateVehicle updates one of the logged-in customer's vehicles.
func UpdateVehicle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	var input UpdateVehicleInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var vehicle models.Vehicle
	if err := config.DB.Where("customer_id = ? AND id = ?", userID, vehicleID).
		First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if input.Brand != nil {
		vehicle.Brand = *input.Brand
	}
	if input.Model != nil {
		vehicle.Model = *input.Model
	}
	if input.Year != nil {
		vehicle.Year = *input.Year
	}
	if input.Color != nil {
		vehicle.Color = *input.Color
	}
	if input.LicensePlate != nil {
		vehicle.LicensePlate = *input.LicensePlate
	}

	if err := config.DB.Save(&vehicle).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update vehicle")
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// SetDefaultVehicle makes the vehicle the customer's default; the previous
// default is unset in the same transaction.
func SetDefaultVehicle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	if err := models.SetDefault(config.DB, userID, vehicleID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to set default vehicle")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Default vehicle updated"})
}

// DeleteVehicle removes one of the logged-in customer's vehicles.
func DeleteVehicle(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid vehicle ID format")
		return
	}

	result := config.DB.Where("customer_id = ? AND id = ?", userID, vehicleID).
		Delete(&models.Vehicle{})

	if result.Error != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to delete vehicle")
		return
	}
	if result.RowsAffected == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Vehicle not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
}
