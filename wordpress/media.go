package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
)

// MediaUpload describes one file bound for the media library. Exactly one of
// Path or Reader must be set; Filename is required with Reader and ignored
// with Path.
type MediaUpload struct {
	Path     string
	Reader   io.Reader
	Filename string
	AltText  string
}

// Media is a successfully uploaded asset.
type Media struct {
	ID       int
	URL      string
	Title    string
	MimeType string
}

type mediaResponse struct {
	ID        int      `json:"id"`
	SourceURL string   `json:"source_url"`
	Title     rendered `json:"title"`
	MimeType  string   `json:"mime_type"`
}

// rendered unwraps WordPress's {"rendered": "..."} fields.
type rendered struct {
	Rendered string `json:"rendered"`
}

// UploadMedia streams a file to the media library. The MIME type is derived
// from the filename's extension, falling back to application/octet-stream.
// When AltText is set, a best-effort follow-up call sets it on the new
// asset; its failure does not affect the upload result.
func (c *Client) UploadMedia(ctx context.Context, up MediaUpload) (*Media, error) {
	var (
		src      io.Reader
		filename string
	)
	switch {
	case up.Path != "":
		f, err := os.Open(up.Path)
		if err != nil {
			return nil, fmt.Errorf("wordpress: open media file: %w", err)
		}
		defer f.Close()
		src = f
		filename = filepath.Base(up.Path)
	case up.Reader != nil:
		if up.Filename == "" {
			return nil, fmt.Errorf("wordpress: filename required when uploading from a reader")
		}
		src = up.Reader
		filename = up.Filename
	default:
		return nil, fmt.Errorf("wordpress: either a path or a reader must be provided")
	}

	ctx, cancel := context.WithTimeout(ctx, longTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodPost, apiBase+"/media", src)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mimeType(filename))
	req.Header.Set("Content-Disposition", `attachment; filename="`+filename+`"`)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, readAPIError(resp)
	}
	var mr mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&mr); err != nil {
		return nil, fmt.Errorf("decode media response: %w", err)
	}

	if up.AltText != "" {
		// Best effort: a failed alt-text update never fails the upload.
		_ = c.updateAltText(ctx, mr.ID, up.AltText)
	}

	return &Media{
		ID:       mr.ID,
		URL:      mr.SourceURL,
		Title:    mr.Title.Rendered,
		MimeType: mr.MimeType,
	}, nil
}

// updateAltText sets alt_text on an existing media item.
func (c *Client) updateAltText(ctx context.Context, mediaID int, alt string) error {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()
	return c.postJSON(ctx, apiBase+"/media/"+strconv.Itoa(mediaID),
		map[string]string{"alt_text": alt}, http.StatusOK, nil)
}

// mimeType maps a filename extension to a MIME type, defaulting to a generic
// octet stream when the extension is unknown.
func mimeType(filename string) string {
	if t := mime.TypeByExtension(filepath.Ext(filename)); t != "" {
		return t
	}
	return "application/octet-stream"
}
