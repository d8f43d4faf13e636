package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Claims are stored in the gin context by the auth middleware as strings.

func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get("userId")
	if !exists {
		return uuid.Nil, false
	}
	s, ok := v.(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

func currentCompanyID(c *gin.Context) (string, bool) {
	v, exists := c.Get("companyId")
	if !exists {
		return "", false
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

func currentRole(c *gin.Context) string {
	v, exists := c.Get("role")
	if !exists {
		return ""
	}
	s, _ := v.(string)
	return s
}
