// Package publisher sequences one end-to-end publish: credential check,
// image uploads, in-body reference rewriting, HTML rendering, taxonomy
// resolution, and the final post creation. A publish is request-scoped and
// synchronous; the publisher holds no mutable state and is safe to use
// concurrently across independent requests.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/eringen/mdpress/document"
	"github.com/eringen/mdpress/wordpress"
)

// imageExtensions is the upload allowlist. Files outside it are skipped,
// never uploaded.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
	".svg":  true,
}

// documentExtensions is the allowlist for markdown uploads in the web layer.
var documentExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// AllowedImage reports whether filename has an allowed image extension.
func AllowedImage(filename string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(filename))]
}

// AllowedDocument reports whether filename has an allowed markdown extension.
func AllowedDocument(filename string) bool {
	return documentExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Image is one local image supplied alongside a document. Set either Path
// for a file on disk or Reader plus Name for an in-memory file.
type Image struct {
	Path   string
	Reader io.Reader
	Name   string
}

// Request is the input to one publish operation.
type Request struct {
	Document  *document.Document
	Images    []Image
	Elementor bool // wrap the rendered HTML in a page-builder payload
}

// Result is the outcome of one publish operation.
type Result struct {
	Success    bool
	PostID     int
	URL        string
	Status     string
	Title      string
	Error      string
	HTTPStatus int // remote status code, when the failure was a remote rejection
}

// Logger is the minimal logging surface the publisher needs. Both the
// standard library's *log.Logger and echo's logger satisfy it.
type Logger interface {
	Printf(format string, args ...any)
}

// Publisher runs publish operations against one WordPress site.
type Publisher struct {
	client *wordpress.Client
	logger Logger
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithLogger sets the logger used for per-image and per-term skip messages.
func WithLogger(l Logger) Option {
	return func(p *Publisher) { p.logger = l }
}

// New creates a Publisher backed by the given client.
func New(client *wordpress.Client, opts ...Option) *Publisher {
	p := &Publisher{client: client}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Publisher) logf(format string, args ...any) {
	if p.logger != nil {
		p.logger.Printf(format, args...)
	}
}

// Publish runs the pipeline in fixed order. Credential or post-creation
// failures short-circuit to a failure Result; per-image and per-term
// failures are logged and skipped. Media and taxonomy terms already created
// on the remote side are not rolled back on a later failure.
func (p *Publisher) Publish(ctx context.Context, req Request) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Error: fmt.Sprintf("publish failed: %v", r)}
		}
	}()

	doc := req.Document
	if doc == nil {
		return Result{Error: "no document provided"}
	}

	if _, err := p.client.ValidateCredentials(ctx); err != nil {
		return failure("authentication failed", err)
	}

	featuredPath := doc.FeaturedImage()

	urls := make(map[string]string)
	var featuredID int
	for _, img := range req.Images {
		media, name, err := p.uploadImage(ctx, img)
		if err != nil {
			p.logf("publisher: skipping image %q: %v", name, err)
			continue
		}
		// Record the asset under every plausible local spelling so that
		// reference rewriting works regardless of how the author wrote
		// the path.
		urls[name] = media.URL
		urls["images/"+name] = media.URL
		urls["./images/"+name] = media.URL
		if featuredID == 0 && featuredPath != "" && strings.Contains(featuredPath, name) {
			featuredID = media.ID
		}
	}

	if len(urls) > 0 {
		doc.SetBody(doc.ReplaceImageReferences(urls))
	}

	html, err := doc.ToHTML()
	if err != nil {
		return failure("render failed", err)
	}

	catIDs := p.resolveTerms(ctx, doc.Categories(), p.client.GetOrCreateCategory)
	tagIDs := p.resolveTerms(ctx, doc.Tags(), p.client.GetOrCreateTag)

	var elementor any
	if req.Elementor {
		elementor = ElementorPayload(html)
	}

	post, err := p.client.CreatePost(ctx, wordpress.PostParams{
		Title:         doc.Title(),
		Content:       html,
		Status:        doc.Status(),
		FeaturedMedia: featuredID,
		Categories:    catIDs,
		Tags:          tagIDs,
		Excerpt:       doc.Excerpt(),
		Meta:          seoMeta(doc.SEO()),
		Elementor:     elementor,
	})
	if err != nil {
		return failure("post creation failed", err)
	}

	return Result{
		Success: true,
		PostID:  post.ID,
		URL:     post.URL,
		Status:  post.Status,
		Title:   post.Title,
	}
}

// uploadImage validates, sanitizes, and uploads one image. The returned name
// is the sanitized filename the asset was recorded under.
func (p *Publisher) uploadImage(ctx context.Context, img Image) (*wordpress.Media, string, error) {
	name := img.Name
	var src io.Reader = img.Reader
	if img.Path != "" {
		f, err := os.Open(img.Path)
		if err != nil {
			return nil, img.Path, err
		}
		defer f.Close()
		src = f
		name = filepath.Base(img.Path)
	}
	clean := SanitizeFilename(name)
	if clean == "" {
		return nil, name, fmt.Errorf("empty filename")
	}
	if !AllowedImage(clean) {
		return nil, clean, fmt.Errorf("disallowed file type")
	}
	if src == nil {
		return nil, clean, fmt.Errorf("no file source")
	}

	media, err := p.client.UploadMedia(ctx, wordpress.MediaUpload{
		Reader:   src,
		Filename: clean,
		AltText:  AltTextFor(clean),
	})
	if err != nil {
		return nil, clean, err
	}
	return media, clean, nil
}

// resolveTerms maps taxonomy names to remote ids, silently dropping names
// that fail to resolve.
func (p *Publisher) resolveTerms(ctx context.Context, names []string, resolve func(context.Context, string) (int, error)) []int {
	var ids []int
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		id, err := resolve(ctx, name)
		if err != nil {
			p.logf("publisher: skipping term %q: %v", name, err)
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// Yoast SEO meta keys.
const (
	metaSEOTitle       = "_yoast_wpseo_title"
	metaSEODescription = "_yoast_wpseo_metadesc"
	metaSEOFocusKW     = "_yoast_wpseo_focuskw"
)

// seoMeta maps assembled SEO fields onto Yoast meta keys. The focus keyword
// falls back to the plain keywords string. Returns nil when nothing is set.
func seoMeta(seo document.SEOFields) map[string]any {
	if seo.Empty() {
		return nil
	}
	meta := make(map[string]any)
	if seo.Title != "" {
		meta[metaSEOTitle] = seo.Title
	}
	if seo.Description != "" {
		meta[metaSEODescription] = seo.Description
	}
	switch {
	case seo.FocusKeyword != "":
		meta[metaSEOFocusKW] = seo.FocusKeyword
	case seo.Keywords != "":
		meta[metaSEOFocusKW] = seo.Keywords
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}

// SanitizeFilename strips path components and reduces a filename to a safe
// character set. Spaces become underscores; anything else outside
// [A-Za-z0-9._-] is dropped.
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.TrimSpace(name))
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9',
			r == '.', r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteByte('_')
		}
	}
	return strings.TrimLeft(b.String(), "._-")
}

// AltTextFor derives a human-readable alt text from a filename by replacing
// hyphens and underscores in the stem with spaces.
func AltTextFor(filename string) string {
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	stem = strings.ReplaceAll(stem, "-", " ")
	stem = strings.ReplaceAll(stem, "_", " ")
	return strings.TrimSpace(stem)
}

// failure builds a failure Result, surfacing the remote status code when the
// underlying error was an API rejection.
func failure(prefix string, err error) Result {
	res := Result{Error: prefix + ": " + err.Error()}
	var apiErr *wordpress.APIError
	if errors.As(err, &apiErr) {
		res.HTTPStatus = apiErr.StatusCode
	}
	return res
}
