package app

import (
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"status-page/internal/config"
	routes "status-page/internal/routes"
	"status-page/internal/statuspage"
	"status-page/internal/storage"
)

func securityHeaders(c *gin.Context) {
	c.Header("X-Content-Type-Options", "nosniff")
	c.Header("X-Frame-Options", "DENY")
	c.Header("X-XSS-Protection", "1; mode=block")

	// Status changes must show up on reload
	c.Header("Cache-Control", "no-store, no-cache, must-revalidate, proxy-revalidate")
	c.Header("Pragma", "no-cache")
	c.Header("Expires", "0")
	c.Next()
}

// Middleware to check if the IP is allowed.
func IPAccessControl(allowedCIDRs []string) gin.HandlerFunc {
	// Parse allowed CIDRs
	var parsedCIDRs []*net.IPNet

	// Allow local networks in debug mode
	if os.Getenv("GIN_MODE") != "release" {
		localhostCIDRs := []string{"127.0.0.1/8", "::1/128"}
		allowedCIDRs = append(allowedCIDRs, localhostCIDRs...)
	}

	for _, cidr := range allowedCIDRs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			slog.Warn("Invalid CIDR", "cidr", cidr)
			continue
		}
		slog.Debug("Allowed CIDR", "cidr", cidr)
		parsedCIDRs = append(parsedCIDRs, network)
	}

	return func(c *gin.Context) {
		clientIP := net.ParseIP(c.ClientIP())
		if clientIP == nil {
			// Should not happen
			slog.Warn("Invalid client IP", "ip", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
			return
		}

		for _, cidr := range parsedCIDRs {
			if cidr.Contains(clientIP) {
				c.Next()
				return
			}
		}
		slog.Warn("IP not allowed", "ip", clientIP)
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	}
}

// ParseNetworks splits a comma separated CIDR list, dropping blanks.
func ParseNetworks(networks string) []string {
	var allowedCIDRs []string
	for cidr := range strings.SplitSeq(networks, ",") {
		// Remove spaces and ignore empty sets
		if cidr := strings.TrimSpace(cidr); cidr != "" {
			allowedCIDRs = append(allowedCIDRs, cidr)
		}
	}
	return allowedCIDRs
}

// HTTPServer builds the gin engine serving the status page.
func HTTPServer(cfg *config.Config, svc *statuspage.Service, provider storage.Provider) (*gin.Engine, error) {
	r := gin.Default()

	renderer, err := routes.NewRenderer(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize templates: %w", err)
	}
	r.HTMLRender = renderer

	if cfg.AllowedNetworks != "" {
		slog.Debug("Enabling IP access control", "allowed_networks", cfg.AllowedNetworks)
		r.Use(IPAccessControl(ParseNetworks(cfg.AllowedNetworks)))
	}
	r.Use(securityHeaders)
	r.Use(routes.Inject(svc, provider, cfg.BaseURL))

	routes.SetAssetsDir(cfg.AssetsDir)
	r.Static("/assets/", cfg.AssetsDir)

	routes.RegisterRoutes(r)

	return r, nil
}
