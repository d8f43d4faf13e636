// controllers/payment.go
package controllers

import (
	"errors"
	"net/http"

	"cleanfoss-backend/services"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Payments is the configured payment bridge; wired in routes.SetupRouter.
var Payments *services.PaymentService

type CreateIntentInput struct {
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Currency      string  `json:"currency"`
	BookingID     string  `json:"bookingId"`
	CustomerEmail string  `json:"customerEmail" binding:"required,email"`
	CustomerName  string  `json:"customerName" binding:"required"`
	Description   string  `json:"description"`
}

// CreatePaymentIntent asks the processor for a payment handle.
func CreatePaymentIntent(c *gin.Context) {
	var input CreateIntentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	clientSecret, intentID, err := Payments.CreateIntent(
		input.Amount, input.Currency, input.CustomerEmail,
		input.CustomerName, input.Description, input.BookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadGateway, "Payment processor error: "+err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"clientSecret":    clientSecret,
		"paymentIntentId": intentID,
	})
}

type ConfirmPaymentInput struct {
	PaymentIntentID string `json:"paymentIntentId" binding:"required"`
	BookingID       string `json:"bookingId" binding:"required"`
}

// ConfirmPayment verifies the intent with the processor and, only on an
// authoritative success, confirms the booking and records the payment.
func ConfirmPayment(c *gin.Context) {
	var input ConfirmPaymentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	bookingID, err := uuid.Parse(input.BookingID)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid booking ID format")
		return
	}

	booking, payment, err := Payments.ConfirmPayment(bookingID, input.PaymentIntentID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPaymentNotSucceeded):
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		case errors.Is(err, services.ErrBookingNotFound):
			utils.RespondWithError(c, http.StatusNotFound, "Booking not found")
		case errors.Is(err, services.ErrBookingNotPayable):
			utils.RespondWithError(c, http.StatusConflict, "Booking is not awaiting payment")
		default:
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to confirm payment")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"booking": booking,
		"payment": payment,
		"message": "Payment confirmed",
	})
}
