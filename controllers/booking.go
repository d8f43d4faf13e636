// controllers/booking.go
package controllers

import (
	"errors"
	"net/http"
	"time"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/services"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CreateBooking accepts both known submission shapes, validates them and
// persists the booking in one transaction. Works for guests and for
// authenticated customers alike.
func CreateBooking(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read request body")
		return
	}

	draft, fieldErrs, err := services.ParseBookingRequest(body)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Unrecognized booking format")
		return
	}
	if len(fieldErrs) > 0 {
		utils.RespondWithValidationErrors(c, fieldErrs)
		return
	}

	var authUserID *uuid.UUID
	if id, ok := currentUserID(c); ok {
		authUserID = &id
	}
	var authCompanyID *string
	if companyID, ok := currentCompanyID(c); ok {
		authCompanyID = &companyID
	}

	booking, err := services.WriteBooking(config.DB, authUserID, authCompanyID, draft)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrServiceNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, "Service not found")
		case errors.Is(err, services.ErrCompanyNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, "Company not found")
		case errors.Is(err, services.ErrVehicleNotFound):
			utils.RespondWithError(c, http.StatusBadRequest, "Vehicle not found")
		case errors.Is(err, services.ErrCustomerNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Identity not found")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"bookingId": booking.ID,
		"booking":   gin.H{"id": booking.ID},
		"message":   "Booking created successfully",
		"format":    booking.SourceFormat,
	})
}

// GetBooking retrieves a booking by id with its line items.
func GetBooking(c *gin.Context) {
	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var booking models.Booking
	if err := config.DB.Preload("Services").Preload("Location").
		First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	c.JSON(http.StatusOK, booking)
}

// GetBookings lists the company's bookings, optionally filtered by status
// and by scheduled day.
func GetBookings(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	query := config.DB.Preload("Services").Where("company_id = ?", companyID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if date := c.Query("date"); date != "" {
		day, err := time.Parse("2006-01-02", date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid date format, expected YYYY-MM-DD")
			return
		}
		query = query.Where("scheduled_at >= ? AND scheduled_at < ?", day, day.Add(24*time.Hour))
	}

	var bookings []models.Booking
	if err := query.Order("scheduled_at DESC").Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}

	c.JSON(http.StatusOK, bookings)
}

type UpdateBookingStatusInput struct {
	Status string `json:"status" binding:"required,oneof=PENDING CONFIRMED IN_PROGRESS COMPLETED CANCELLED"`
}

// UpdateBookingStatus moves a booking through its lifecycle. Transitions
// outside the allowed set are rejected.
func UpdateBookingStatus(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	var input UpdateBookingStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var booking models.Booking
	if err := config.DB.Where("company_id = ? AND id = ?", companyID, bookingID).
		First(&booking).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if !models.CanTransition(booking.Status, input.Status) {
		utils.RespondWithError(c, http.StatusBadRequest,
			"Invalid status transition from "+booking.Status+" to "+input.Status)
		return
	}

	if err := config.DB.Model(&booking).Update("status", input.Status).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update booking")
		return
	}
	booking.Status = input.Status

	c.JSON(http.StatusOK, booking)
}
