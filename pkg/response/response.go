package response

import (
	"log"
	"net/http"

	"anoa.com/lifesaver/pkg/apperror"
	"github.com/gin-gonic/gin"
)

// GetPhone retrieves the authenticated device phone from the context.
// It is set by the DeviceAuth middleware.
func GetPhone(c *gin.Context) (string, error) {
	phone, exists := c.Get("phone")
	if !exists {
		return "", apperror.ErrUnauthorized
	}

	phoneStr, ok := phone.(string)
	if !ok || phoneStr == "" {
		return "", apperror.ErrUnauthorized
	}

	return phoneStr, nil
}

// ResponseError standardized error response
func ResponseError(c *gin.Context, err error) {
	code := apperror.MapErrorToStatus(err)

	// Log internal errors
	if code == http.StatusInternalServerError {
		log.Printf("[Internal Error]: %v", err)
	}

	c.JSON(code, gin.H{"error": err.Error()})
}
