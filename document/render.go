package document

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// engine is the fixed rendering configuration: GFM tables and fenced code
// (language classes double as syntax-highlighting hooks), hard wraps so
// single newlines become <br>, auto heading IDs for TOC anchors, and raw
// HTML passthrough. Goldmark instances are stateless and safe for
// concurrent use.
var engine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		html.WithHardWraps(),
		html.WithUnsafe(),
	),
)

// ToHTML renders the markdown body to HTML.
func (d *Document) ToHTML() (string, error) {
	var buf bytes.Buffer
	if err := engine.Convert([]byte(d.body), &buf); err != nil {
		return "", fmt.Errorf("document: render html: %w", err)
	}
	return buf.String(), nil
}
