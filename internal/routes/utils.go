package routes

import (
	"crypto/sha512"
	"encoding/base64"
	"fmt"
	"html"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gin-contrib/multitemplate"
)

// Layout wrapped around every page template.
const LAYOUT_TEMPLATE = "base.html.tmpl"

// Page templates rendered through the layout.
var pageTemplates = []string{
	"index.html.tmpl",
	"docs.html.tmpl",
	"error.html.tmpl",
}

// sriCache caches computed SRI integrity strings keyed by the src path.
var sriCache sync.Map // map[string]string

// assetsDir is where /assets/ URLs are served from.
var assetsDir = filepath.Join("web", "assets")

// SetAssetsDir points /assets/ URLs at dir and drops cached integrity hashes.
func SetAssetsDir(dir string) {
	assetsDir = dir
	sriCache.Clear()
}

// computeLocalSRI computes the sha384 SRI for a local asset path under /assets/.
func computeLocalSRI(src string) (string, error) {
	if !strings.HasPrefix(src, "/assets/") {
		return "", nil
	}

	rel := strings.TrimPrefix(src, "/assets/")
	f, err := os.Open(filepath.Join(assetsDir, filepath.FromSlash(rel)))
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha512.New384()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return "sha384-" + base64.StdEncoding.EncodeToString(h.Sum(nil)), nil
}

// ScriptTag returns a safe HTML script tag for use in html/templates.
// Local assets under /assets/ get a cached SRI integrity hash and
// crossorigin="anonymous".
func ScriptTag(src string) template.HTML {
	escSrc := html.EscapeString(src)

	var integrity string
	if v, ok := sriCache.Load(src); ok {
		integrity = v.(string)
	} else {
		sri, err := computeLocalSRI(src)
		if err == nil && sri != "" {
			sriCache.Store(src, sri)
			integrity = sri
		}
	}

	attr := ""
	crossorigin := ""
	if integrity != "" {
		attr = fmt.Sprintf(" integrity=\"%s\"", html.EscapeString(integrity))
		crossorigin = " crossorigin=\"anonymous\""
	}

	tag := fmt.Sprintf("<script src=\"%s\"%s%s></script>", escSrc, attr, crossorigin)
	return template.HTML(tag)
}

// TemplateFuncs returns a FuncMap with template helpers for routes templates.
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"script_tag": ScriptTag,
	}
}

// NewRenderer loads the page templates from dir, each combined with the layout.
func NewRenderer(dir string) (multitemplate.Renderer, error) {
	r := multitemplate.NewRenderer()
	layout := filepath.Join(dir, LAYOUT_TEMPLATE)
	if _, err := os.Stat(layout); err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	for _, name := range pageTemplates {
		page := filepath.Join(dir, name)
		if _, err := os.Stat(page); err != nil {
			return nil, fmt.Errorf("failed to load template %s: %w", name, err)
		}
		r.AddFromFilesFuncs(name, TemplateFuncs(), layout, page)
	}
	return r, nil
}
