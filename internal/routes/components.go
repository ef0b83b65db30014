package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

type addComponentRequest struct {
	Name    string `json:"name"`
	Website string `json:"website"`
}

type updateStatusRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
	Date   string `json:"date"`
}

// ComponentRoutes mounts the write API and the status listing.
func ComponentRoutes(r *gin.RouterGroup) {
	r.Use(JSONErrors())
	r.POST("/add", RequireAPIKey(), addComponent)
	r.POST("/update", RequireAPIKey(), updateStatus)
	r.GET("/list", listComponents)
}

func addComponent(c *gin.Context) {
	svc, err := getService(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req addComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if req.Name == "" || req.Website == "" {
		AbortWithError(c, ErrMissingFields)
		return
	}

	if _, err := svc.AddComponent(c.Request.Context(), req.Name, req.Website); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Component added successfully"})
}

func updateStatus(c *gin.Context) {
	svc, err := getService(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrInvalidRequest, err))
		return
	}
	if req.Name == "" || req.Status == "" || req.Date == "" {
		AbortWithError(c, ErrMissingFields)
		return
	}

	if err := svc.UpdateStatus(c.Request.Context(), req.Name, req.Status, req.Date); err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated successfully"})
}

func listComponents(c *gin.Context) {
	svc, err := getService(c)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	list, err := svc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, list)
}
