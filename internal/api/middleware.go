package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/condokit/amenity-booking-backend/internal/auth"
	"github.com/condokit/amenity-booking-backend/internal/resident"
)

// RequireAdmin ensures the authenticated resident has admin privileges.
// It MUST be used after auth.AuthRequired middleware.
func RequireAdmin(residentService resident.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		residentID := auth.GetResidentID(c)
		if residentID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		// Check permissions
		res, err := residentService.GetByID(c.Request.Context(), residentID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "resident not found"})
			return
		}

		if !res.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden: admin access required"})
			return
		}

		c.Next()
	}
}
