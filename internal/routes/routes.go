package routes

import (
	"strings"

	"github.com/gin-gonic/gin"

	"status-page/internal/statuspage"
	"status-page/internal/storage"
	"status-page/internal/utils"
)

const (
	ctxService = "Service"
	ctxStorage = "Storage"
	ctxBaseURL = "BaseURL"
)

// Inject puts the status service and storage provider into every request
// context. baseURL overrides the URL detected from the request when set.
func Inject(svc *statuspage.Service, provider storage.Provider, baseURL string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(ctxService, svc)
		c.Set(ctxStorage, provider)
		c.Set(ctxBaseURL, strings.TrimSuffix(utils.GetBaseURL(c, baseURL), "/"))
		c.Next()
	}
}

func getService(c *gin.Context) (*statuspage.Service, error) {
	if svc, ok := c.Get(ctxService); ok {
		if svc, ok := svc.(*statuspage.Service); ok && svc != nil {
			return svc, nil
		}
	}
	return nil, utils.ErrStorageProviderNotFound
}

func getStorage(c *gin.Context) (storage.Provider, error) {
	if p, ok := c.Get(ctxStorage); ok {
		if p, ok := p.(storage.Provider); ok && p != nil {
			return p, nil
		}
	}
	return nil, utils.ErrStorageProviderNotFound
}

// Merge into existing gin.H
func H(c *gin.Context, data gin.H) gin.H {
	if data == nil {
		data = gin.H{}
	}
	data["BaseURL"] = c.GetString(ctxBaseURL)
	data["AppVersion"] = utils.GetVersion()
	return data
}

// Returns a HTML response with merged data
func HTML(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data = H(c, data)
	c.HTML(code, name, data)
}

// RegisterRoutes mounts every status page route on r.
func RegisterRoutes(r *gin.Engine) {
	r.Use(ErrorHandler())

	ComponentRoutes(r.Group("/"))
	PageRoutes(r.Group("/"))
	Health(r.Group("/"))
}
