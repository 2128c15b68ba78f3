package mdpress

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/eringen/mdpress/aigen"
	"github.com/eringen/mdpress/document"
	"github.com/eringen/mdpress/publisher"
	"github.com/eringen/mdpress/wordpress"
)

func (a *App) handleHome(c echo.Context) error {
	status := CredentialStatus{}
	if creds, ok := sessionCredentials(c); ok {
		status = CredentialStatus{Connected: true, Site: creds.Site, Username: creds.Username}
	}
	return Render(c, a.Views.Home(status, CsrfToken(c)))
}

func (a *App) handleHistory(c echo.Context) error {
	records, err := a.Store.ListPublishes(50)
	if err != nil {
		return err
	}
	return Render(c, a.Views.History(records, CsrfToken(c)))
}

func (a *App) handleSample(c echo.Context) error {
	c.Response().Header().Set("Content-Disposition", `attachment; filename="sample-post.md"`)
	return c.Blob(http.StatusOK, "text/markdown; charset=utf-8", []byte(document.SampleMarkdown()))
}

// handlePublish runs one end-to-end publish from a multipart form: a
// markdown file (or pasted content) plus zero or more images. Credentials
// come from the form or fall back to the session.
func (a *App) handlePublish(c echo.Context) error {
	if !a.limiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"status": "failed",
			"error":  "too many publish attempts, try again later",
		})
	}

	creds, err := a.requestCredentials(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, map[string]any{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	doc, err := a.formDocument(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	images, err := a.formImages(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]any{
			"status": "failed",
			"error":  err.Error(),
		})
	}

	client := wordpress.NewClient(creds.Site, creds.Username, creds.Password)
	pub := publisher.New(client, publisher.WithLogger(c.Logger()))
	result := pub.Publish(c.Request().Context(), publisher.Request{
		Document:  doc,
		Images:    images,
		Elementor: c.FormValue("use_elementor") != "",
	})

	if err := a.Store.RecordPublish(doc.Title(), result); err != nil {
		c.Logger().Errorf("record publish: %v", err)
	}

	if !result.Success {
		code := http.StatusBadGateway
		if result.HTTPStatus == http.StatusUnauthorized || result.HTTPStatus == http.StatusForbidden {
			code = http.StatusUnauthorized
		}
		return c.JSON(code, map[string]any{
			"status": "failed",
			"error":  result.Error,
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":      "success",
		"post_id":     result.PostID,
		"url":         result.URL,
		"post_status": result.Status,
		"title":       result.Title,
	})
}

// handleGenerate turns a prompt into frontmatter-bearing markdown. Returns
// 503 when no Anthropic key was configured.
func (a *App) handleGenerate(c echo.Context) error {
	if a.generator == nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status": "failed",
			"error":  "AI generation is not configured",
		})
	}
	if !a.limiter.Allow(c.RealIP()) {
		return c.JSON(http.StatusTooManyRequests, map[string]any{
			"status": "failed",
			"error":  "too many generation attempts, try again later",
		})
	}

	markdown, err := a.generator.GenerateBlogPost(c.Request().Context(), aigen.GenerateRequest{
		Prompt:     c.FormValue("prompt"),
		Tone:       c.FormValue("tone"),
		Length:     c.FormValue("length"),
		IncludeSEO: c.FormValue("include_seo") != "",
		Categories: c.FormValue("categories"),
		Tags:       c.FormValue("tags"),
	})
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]any{
			"status": "failed",
			"error":  err.Error(),
		})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"status":   "success",
		"markdown": markdown,
	})
}

// requestCredentials resolves credentials from the form, falling back to the
// session.
func (a *App) requestCredentials(c echo.Context) (Credentials, error) {
	creds := Credentials{
		Site:     c.FormValue("site"),
		Username: c.FormValue("username"),
		Password: c.FormValue("app_password"),
	}
	if creds.Site != "" && creds.Username != "" && creds.Password != "" {
		return creds, nil
	}
	if creds, ok := sessionCredentials(c); ok {
		return creds, nil
	}
	return Credentials{}, errNoCredentials
}

var errNoCredentials = echo.NewHTTPError(http.StatusUnauthorized, "no WordPress credentials provided")

// formDocument builds a Document from the uploaded markdown file or the
// pasted content field.
func (a *App) formDocument(c echo.Context) (*document.Document, error) {
	if file, err := c.FormFile("document"); err == nil {
		if !publisher.AllowedDocument(file.Filename) {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "document must be a .md or .markdown file")
		}
		if file.Size > a.Config.MaxUploadSize {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "document too large")
		}
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		defer src.Close()
		data, err := io.ReadAll(src)
		if err != nil {
			return nil, err
		}
		return document.New(data)
	}

	content := c.FormValue("content")
	if strings.TrimSpace(content) == "" {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "either a document file or content is required")
	}
	return document.New([]byte(content))
}

// formImages collects the uploaded images, normalizing oversized rasters.
func (a *App) formImages(c echo.Context) ([]publisher.Image, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// A plain form body simply carries no images; a multipart body
		// that fails to parse is a client error.
		if errors.Is(err, http.ErrNotMultipart) {
			return nil, nil
		}
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid multipart form")
	}
	var images []publisher.Image
	for _, file := range form.File["images"] {
		if file.Size > a.Config.MaxUploadSize {
			c.Logger().Warnf("skipping oversized image %q (%d bytes)", file.Filename, file.Size)
			continue
		}
		src, err := file.Open()
		if err != nil {
			return nil, err
		}
		img, err := normalizeImage(file.Filename, src)
		src.Close()
		if err != nil {
			c.Logger().Warnf("skipping unreadable image %q: %v", file.Filename, err)
			continue
		}
		images = append(images, img)
	}
	return images, nil
}
