// Package docs renders the Markdown API documentation served at /docs.
package docs

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"os"
	"sync"

	"github.com/inbucket/html2text"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// markdown is shared; goldmark keeps per-call state out of the instance.
var (
	markdown     goldmark.Markdown
	markdownOnce sync.Once
)

func getMarkdown() goldmark.Markdown {
	markdownOnce.Do(func() {
		markdown = goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
			),
		)
	})
	return markdown
}

// Render reads the Markdown file at path and converts it to HTML. The file
// is read on every call so edits show up without a restart.
func Render(path string) (template.HTML, error) {
	source, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read docs: %w", err)
	}
	return RenderBytes(source)
}

// RenderBytes converts Markdown source to HTML.
func RenderBytes(source []byte) (template.HTML, error) {
	var buf bytes.Buffer
	if err := getMarkdown().Convert(source, &buf); err != nil {
		return "", fmt.Errorf("failed to render docs: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// PlainText converts rendered documentation HTML to plain text.
func PlainText(html template.HTML) (string, error) {
	text, err := html2text.FromString(string(html), html2text.Options{
		PrettyTables: true,
		OmitLinks:    false,
	})
	if err != nil {
		slog.Error("failed to convert HTML to text", "error", err)
		return "", err
	}
	return text, nil
}
