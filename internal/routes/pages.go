package routes

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"

	. "status-page/internal/config"
	"status-page/internal/docs"
	"status-page/internal/storage"
)

const DEFAULT_TITLE = "Status Page"

// PageRoutes mounts the landing page, documentation and static images.
func PageRoutes(r *gin.RouterGroup) {
	r.GET("/", index)
	r.GET("/docs", apiDocs)
	r.GET("/logo", func(c *gin.Context) { serveAsset(c, Cfg.LogoImg) })
	r.GET("/favicon", func(c *gin.Context) { serveAsset(c, Cfg.FaviconImg) })
	r.GET("/qr", statusPageQR)
}

func index(c *gin.Context) {
	title, description := DEFAULT_TITLE, ""

	if provider, err := getStorage(c); err == nil {
		info, err := provider.GetSiteInfo(c.Request.Context())
		switch {
		case err == nil:
			if info.Title != "" {
				title = info.Title
			}
			description = info.Description
		case !errors.Is(err, storage.ErrNotFound):
			AbortWithError(c, err)
			return
		}
	}

	HTML(c, http.StatusOK, "index.html.tmpl", gin.H{
		"Title":       title,
		"Description": description,
		"QRCodeURL":   c.GetString(ctxBaseURL) + "/qr",
	})
}

// wantsText reports whether the client asked for plain text.
func wantsText(c *gin.Context) bool {
	if c.Query("format") == "text" {
		return true
	}
	accept := c.GetHeader("Accept")
	return strings.Contains(accept, "text/plain") && !strings.Contains(accept, "text/html")
}

func apiDocs(c *gin.Context) {
	content, err := docs.Render(Cfg.DocsFile)
	if err != nil {
		AbortWithError(c, fmt.Errorf("%w: %v", ErrDocsNotFound, err))
		return
	}

	if wantsText(c) {
		text, err := docs.PlainText(content)
		if err != nil {
			AbortWithError(c, err)
			return
		}
		c.String(http.StatusOK, text)
		return
	}

	HTML(c, http.StatusOK, "docs.html.tmpl", gin.H{
		"Title":   "API Documentation",
		"Content": content,
	})
}

func serveAsset(c *gin.Context, path string) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		AbortWithError(c, fmt.Errorf("%w: %s", ErrAssetNotFound, path))
		return
	}
	c.File(path)
}

// statusPageQR returns a PNG QR code linking to the status page.
func statusPageQR(c *gin.Context) {
	url := c.GetString(ctxBaseURL) + "/"

	png, err := qrcode.Encode(url, qrcode.Medium, QR_IMAGE_SIZE)
	if err != nil {
		AbortWithHTTPError(c, http.StatusInternalServerError, fmt.Errorf("%w: %v", ErrQRCode, err), "Failed to generate QR code")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
