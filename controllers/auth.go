// controllers/auth.go
package controllers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"cleanfoss-backend/config"
	"cleanfoss-backend/models"
	"cleanfoss-backend/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type RegisterInput struct {
	Email    string `json:"email" binding:"required,email"`
	Phone    string `json:"phone" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"` // Can be email or phone
	Password   string `json:"password" binding:"required"`
}

func Register(c *gin.Context) {
	var input RegisterInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	if !utils.ValidatePhone(input.Phone) {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid phone number format")
		return
	}

	// A guest identity created by booking intake may already hold this
	// email; registration claims it by setting a password.
	var existing models.User
	result := config.DB.Where("email = ?", input.Email).First(&existing)

	if result.Error == nil {
		if existing.Password != "" {
			utils.RespondWithError(c, http.StatusConflict, "Email already registered")
			return
		}
		hashed, err := utils.HashPassword(input.Password)
		if err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}
		updates := map[string]interface{}{
			"name":     input.Name,
			"phone":    input.Phone,
			"password": hashed,
		}
		if err := config.DB.Model(&existing).Updates(updates).Error; err != nil {
			utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
			return
		}
		issueToken(c, &existing, http.StatusCreated, "Registration successful")
		return
	} else if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		return
	}

	newUser := models.User{
		Email:    input.Email,
		Phone:    input.Phone,
		Name:     input.Name,
		Password: input.Password, // Will be hashed in BeforeCreate hook
		Role:     models.RoleCustomer,
	}

	if err := config.DB.Create(&newUser).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create user")
		return
	}

	issueToken(c, &newUser, http.StatusCreated, "Registration successful")
}

func Login(c *gin.Context) {
	var input LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input")
		return
	}

	identifier := strings.TrimSpace(input.Identifier)

	var user models.User
	result := config.DB.Where("email = ? OR phone = ?", identifier, identifier).First(&user)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		} else {
			utils.RespondWithError(c, http.StatusInternalServerError, "Database error")
		}
		return
	}

	if user.Password == "" || !utils.CheckPasswordHash(input.Password, user.Password) {
		utils.RespondWithError(c, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	now := time.Now()
	config.DB.Model(&user).Update("last_login", &now)

	issueToken(c, &user, http.StatusOK, "")
}

func issueToken(c *gin.Context, user *models.User, status int, message string) {
	companyID := ""
	if user.CompanyID != nil {
		companyID = *user.CompanyID
	}

	token, err := utils.GenerateToken(user.ID.String(), companyID, user.Role)
	if err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	expiryHours := 24
	session := models.Session{
		UserID:    user.ID,
		Token:     utils.GenerateRandomString(48),
		ExpiresAt: time.Now().Add(time.Duration(expiryHours) * time.Hour),
	}
	if err := config.DB.Create(&session).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to create session")
		return
	}

	maxAge := expiryHours * 3600
	c.SetCookie("token", token, maxAge, "/", "", true, true)

	resp := gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"email": user.Email,
			"name":  user.Name,
			"role":  user.Role,
		},
	}
	if message != "" {
		resp["message"] = message
	}
	c.JSON(status, resp)
}

func Logout(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	if err := config.DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
		utils.RespondWithError(c, http.StatusInternalServerError, "Failed to end session")
		return
	}

	c.SetCookie("token", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func Me(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		utils.RespondWithError(c, http.StatusUnauthorized, "User ID not found in context")
		return
	}

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		utils.RespondWithError(c, http.StatusUnauthorized, "User not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"email":     user.Email,
			"name":      user.Name,
			"phone":     user.Phone,
			"role":      user.Role,
			"companyId": user.CompanyID,
		},
	})
}
