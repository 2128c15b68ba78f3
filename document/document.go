// Package document models a markdown post with YAML frontmatter.
// It extracts the metadata WordPress cares about (title, excerpt, taxonomy,
// SEO fields), finds image references in the body, and renders the body to
// HTML. Documents degrade gracefully: a missing or malformed frontmatter
// block is never an error, accessors fall back to content-based heuristics.
package document

import (
	"bytes"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"
)

// yamlFormat parses the frontmatter block with yaml.v3 so the custom
// scalar-or-sequence unmarshalers in Metadata take effect.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// DefaultTitle is returned when neither frontmatter nor the body yields a title.
const DefaultTitle = "Untitled Post"

// excerptLimit is the maximum excerpt length in runes, including the ellipsis.
const excerptLimit = 200

var (
	reHeading = regexp.MustCompile(`(?m)^#\s+(.+)$`)
	// ![alt](path "optional title"); path capture stops at the quoted
	// title or the closing paren.
	reImage = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+?)(?:\s+"([^"]*)")?\)`)
)

// ImageReference is one markdown image occurrence in the document body.
type ImageReference struct {
	Alt    string
	Path   string // as written: bare filename or relative path
	Title  string // optional title attribute, empty when absent
	Syntax string // the exact matched markdown text
}

// Document is a parsed markdown post. The raw content is immutable once
// loaded; the body is mutable exactly once, via SetBody, after image
// references have been rewritten.
type Document struct {
	raw  string
	meta Metadata
	body string
}

// New parses a document from raw markdown bytes. Empty input is an error.
func New(content []byte) (*Document, error) {
	if len(content) == 0 {
		return nil, fmt.Errorf("document: content is empty")
	}

	d := &Document{raw: string(content)}

	rest, err := frontmatter.Parse(bytes.NewReader(content), &d.meta, yamlFormat)
	if err != nil {
		// A malformed frontmatter block is not fatal: treat the whole
		// input as body and let accessors fall back to heuristics.
		d.meta = Metadata{}
		d.body = string(content)
		return d, nil
	}
	d.body = string(rest)
	return d, nil
}

// Open reads and parses a markdown file.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("document: read %s: %w", path, err)
	}
	return New(data)
}

// Raw returns the original content, frontmatter included.
func (d *Document) Raw() string { return d.raw }

// Body returns the markdown body following the frontmatter block.
func (d *Document) Body() string { return d.body }

// SetBody commits a rewritten body. This is the document's single mutation
// point, used after ReplaceImageReferences.
func (d *Document) SetBody(body string) { d.body = body }

// Title returns the frontmatter title, the first level-1 heading, or
// DefaultTitle, in that order.
func (d *Document) Title() string {
	if d.meta.Title != "" {
		return d.meta.Title
	}
	if m := reHeading.FindStringSubmatch(d.body); m != nil {
		return strings.TrimSpace(m[1])
	}
	return DefaultTitle
}

// Excerpt returns the frontmatter excerpt or description, or the first body
// paragraph truncated to 200 runes with a trailing ellipsis. Empty when the
// body has no leading text.
func (d *Document) Excerpt() string {
	if d.meta.Excerpt != "" {
		return d.meta.Excerpt
	}
	if d.meta.Description != "" {
		return d.meta.Description
	}
	para := firstParagraph(d.body)
	if para == "" {
		return ""
	}
	runes := []rune(para)
	if len(runes) > excerptLimit {
		return string(runes[:excerptLimit-3]) + "..."
	}
	return para
}

// firstParagraph returns the first run of non-blank, non-heading-led lines.
func firstParagraph(body string) string {
	var para []string
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if len(para) == 0 {
			if trimmed == "" || strings.HasPrefix(line, "#") {
				continue
			}
			para = append(para, line)
			continue
		}
		if trimmed == "" {
			break
		}
		para = append(para, line)
	}
	return strings.TrimSpace(strings.Join(para, "\n"))
}

// Categories returns the frontmatter categories. A comma-delimited scalar is
// split and trimmed; absence yields an empty slice.
func (d *Document) Categories() []string { return d.meta.Categories }

// Tags returns the frontmatter tags with the same shape rules as Categories.
func (d *Document) Tags() []string { return d.meta.Tags }

// FeaturedImage returns the declared featured image path, preferring
// featured_image over the generic image key. Empty when neither is set.
func (d *Document) FeaturedImage() string {
	if d.meta.FeaturedImage != "" {
		return d.meta.FeaturedImage
	}
	return d.meta.Image
}

// Status returns the frontmatter status, defaulting to "draft".
func (d *Document) Status() string {
	if d.meta.Status != "" {
		return d.meta.Status
	}
	return "draft"
}

// SEO assembles SEO fields from the frontmatter priority chains. Fields
// absent from every source stay empty and callers should omit them.
func (d *Document) SEO() SEOFields {
	var seo SEOFields
	switch {
	case d.meta.SEOTitle != "":
		seo.Title = d.meta.SEOTitle
	case d.meta.MetaTitle != "":
		seo.Title = d.meta.MetaTitle
	}
	switch {
	case d.meta.SEODescription != "":
		seo.Description = d.meta.SEODescription
	case d.meta.MetaDescription != "":
		seo.Description = d.meta.MetaDescription
	case d.meta.Description != "":
		seo.Description = d.meta.Description
	}
	seo.Keywords = string(d.meta.Keywords)
	seo.FocusKeyword = d.meta.FocusKeyword
	return seo
}

// CustomFields returns frontmatter keys outside the recognized schema,
// preserved verbatim for forward compatibility.
func (d *Document) CustomFields() map[string]any {
	if d.meta.Custom == nil {
		return map[string]any{}
	}
	return d.meta.Custom
}

// ImageReferences scans the body for markdown image syntax and returns the
// references in document order.
func (d *Document) ImageReferences() []ImageReference {
	var refs []ImageReference
	for _, m := range reImage.FindAllStringSubmatch(d.body, -1) {
		refs = append(refs, ImageReference{
			Alt:    m[1],
			Path:   m[2],
			Title:  m[3],
			Syntax: m[0],
		})
	}
	return refs
}

// ReplaceImageReferences replaces every occurrence of each map key in the
// body with its remote URL and returns the rewritten body. Keys are tried
// longest-first so overlapping path spellings rewrite cleanly, and the
// replacement is single-pass so substituted URLs are never rewritten again.
// The document itself is not modified; commit the result with SetBody if
// desired.
func (d *Document) ReplaceImageReferences(urls map[string]string) string {
	keys := make([]string, 0, len(urls))
	for k := range urls {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, len(keys)*2)
	for _, k := range keys {
		pairs = append(pairs, k, urls[k])
	}
	return strings.NewReplacer(pairs...).Replace(d.body)
}
