package auth

import "github.com/gin-gonic/gin"

// GetResidentID returns the authenticated resident's ID or empty string.
func GetResidentID(c *gin.Context) string {
	if v, ok := c.Get("residentID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetResidentEmail returns the authenticated resident's email or empty string.
func GetResidentEmail(c *gin.Context) string {
	if v, ok := c.Get("residentEmail"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
