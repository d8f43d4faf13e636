package utils

import "github.com/gin-gonic/gin"

// FieldError is one aggregated validation violation (field path + message).
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func RespondWithError(c *gin.Context, code int, message string) {
	c.JSON(code, gin.H{"error": message})
}

// RespondWithValidationErrors returns every violation at once so clients
// can show multiple form errors together.
func RespondWithValidationErrors(c *gin.Context, errs []FieldError) {
	c.JSON(400, gin.H{"error": "Validation failed", "details": errs})
}
