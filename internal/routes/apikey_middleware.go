package routes

import (
	"github.com/gin-gonic/gin"
)

const API_KEY_HEADER = "x-api-key"

// RequireAPIKey rejects requests whose x-api-key header does not match a
// stored API key.
func RequireAPIKey() gin.HandlerFunc {
	return func(c *gin.Context) {
		svc, err := getService(c)
		if err != nil {
			AbortWithError(c, err)
			return
		}

		if !svc.Keys.IsValid(c.Request.Context(), c.GetHeader(API_KEY_HEADER)) {
			AbortWithError(c, ErrUnauthorized)
			return
		}
		c.Next()
	}
}
