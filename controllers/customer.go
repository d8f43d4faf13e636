// controllers/customer.go
package controllers

import (
	"errors"
	"net/http"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetCustomers lists every identity that has booked with the company.
func GetCustomers(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	var customers []models.User
	if err := config.DB.Model(&models.User{}).
		Joins("JOIN bookings ON bookings.customer_id = users.id").
		Where("bookings.company_id = ?", companyID).
		Distinct("users.*").
		Find(&customers).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve customers")
		return
	}

	c.JSON(http.StatusOK, customers)
}

// GetCustomer retrieves one of the company's customers with their bookings.
func GetCustomer(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var customer models.User
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	var bookings []models.Booking
	if err := config.DB.Preload("Services").
		Where("company_id = ? AND customer_id = ?", companyID, customerID).
		Order("scheduled_at DESC").
		Find(&bookings).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to retrieve bookings")
		return
	}
	if len(bookings) == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"customer": customer,
		"bookings": bookings,
	})
}

type UpdateCustomerInput struct {
	Name  *string `json:"name"`
	Phone *string `json:"phone"`
}

// UpdateCustomer lets back-office staff fix a customer's contact details.
func UpdateCustomer(c *gin.Context) {
	companyID, ok := currentCompanyID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "Company ID not found in context")
		return
	}

	customerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid customer ID format")
		return
	}

	var count int64
	if err := config.DB.Model(&models.Booking{}).
		Where("company_id = ? AND customer_id = ?", companyID, customerID).
		Count(&count).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}
	if count == 0 {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	var input UpdateCustomerInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var customer models.User
	if err := config.DB.First(&customer, "id = ?", customerID).Error; err != nil {
		utils.RespondWithError(c, http.StatusNotFound, "Customer not found")
		return
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		if !utils.ValidatePhone(*input.Phone) {
			utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
			return
		}
		customer.Phone = *input.Phone
	}

	if err := config.DB.Save(&customer).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to update customer")
		return
	}

	c.JSON(http.StatusOK, customer)
}
