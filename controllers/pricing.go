// controllers/pricing.go
package controllers

import (
	"errors"
	"net/http"

	"cleanfoss-backend/config"
	"cleanfoss-backend/services"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
)

type PricingPreviewInput struct {
	ServiceID   string   `json:"serviceId" binding:"required"`
	VehicleType string   `json:"vehicleType"`
	Extras      []string `json:"extras"`
}

// PricingPreview prices a selection without creating anything. The same
// arithmetic runs at booking creation, so what the client previews is what
// gets persisted.
func PricingPreview(c *gin.Context) {
	var input PricingPreviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	quote, _, _, err := services.QuoteService(config.DB, input.ServiceID, input.VehicleType, input.Extras)
	if err != nil {
		if errors.Is(err, services.ErrServiceNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to compute pricing")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"pricing": quote,
	})
}
