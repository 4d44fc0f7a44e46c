package utils

import (
	"bytes"
	"html"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

var (
	markdownEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))
	markdownPolicy = bluemonday.UGCPolicy()
)

// RenderMarkdown converts untrusted Markdown to sanitized HTML.
// If conversion fails the escaped source is returned.
func RenderMarkdown(src string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(src), &buf); err != nil {
		return html.EscapeString(src)
	}
	return markdownPolicy.Sanitize(buf.String())
}
