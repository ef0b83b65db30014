package routes

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"status-page/internal/utils"
)

const healthTimeout = 2 * time.Second

func Health(r *gin.RouterGroup) {
	r.GET("/health", func(c *gin.Context) {
		response := gin.H{
			"status":  "ok",
			"version": utils.GetVersion(),
		}

		provider, err := getStorage(c)
		if err == nil {
			ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
			defer cancel()
			err = provider.Ping(ctx)
		}
		if err != nil {
			// Recorded for ErrorHandler logging, the body stays the health report
			err = fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
			c.Error(err)
			response["status"] = "unavailable"
			c.JSON(GetErrorStatus(err), response)
			return
		}

		c.JSON(http.StatusOK, response)
	})
}
