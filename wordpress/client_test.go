package wordpress

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestNewClientStripsTrailingSlash(t *testing.T) {
	c := NewClient("https://example.com/", "u", "p")
	if c.BaseURL() != "https://example.com" {
		t.Errorf("BaseURL() = %q, want trailing slash stripped", c.BaseURL())
	}
}

func TestValidateCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/users/me" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "admin" || pass != "secret" {
			t.Errorf("missing or wrong basic auth: %q %q", user, pass)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"id": 5, "name": "Admin"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	got, err := c.ValidateCredentials(context.Background())
	if err != nil {
		t.Fatalf("ValidateCredentials() error: %v", err)
	}
	if got.ID != 5 || got.Name != "Admin" {
		t.Errorf("ValidateCredentials() = %+v", got)
	}
}

func TestValidateCredentialsRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "wrong")
	_, err := c.ValidateCredentials(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusForbidden {
		t.Errorf("StatusCode = %d, want 403", apiErr.StatusCode)
	}
}

func TestValidateCredentialsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // refuse connections

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.ValidateCredentials(context.Background())
	if err == nil || !strings.Contains(err.Error(), "connection error") {
		t.Errorf("expected connection error, got %v", err)
	}
}

func TestUploadMediaFromReader(t *testing.T) {
	var altBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/media":
			if ct := r.Header.Get("Content-Type"); ct != "image/png" {
				t.Errorf("Content-Type = %q, want image/png", ct)
			}
			if cd := r.Header.Get("Content-Disposition"); cd != `attachment; filename="shot.png"` {
				t.Errorf("Content-Disposition = %q", cd)
			}
			body, _ := io.ReadAll(r.Body)
			if string(body) != "fake png bytes" {
				t.Errorf("body = %q", body)
			}
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":         12,
				"source_url": "https://example.com/uploads/shot.png",
				"title":      map[string]string{"rendered": "shot"},
				"mime_type":  "image/png",
			})
		case "/wp-json/wp/v2/media/12":
			_ = json.NewDecoder(r.Body).Decode(&altBody)
			_ = json.NewEncoder(w).Encode(map[string]any{"id": 12})
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	media, err := c.UploadMedia(context.Background(), MediaUpload{
		Reader:   strings.NewReader("fake png bytes"),
		Filename: "shot.png",
		AltText:  "a screenshot",
	})
	if err != nil {
		t.Fatalf("UploadMedia() error: %v", err)
	}
	if media.ID != 12 || media.URL != "https://example.com/uploads/shot.png" {
		t.Errorf("UploadMedia() = %+v", media)
	}
	if media.Title != "shot" || media.MimeType != "image/png" {
		t.Errorf("UploadMedia() = %+v", media)
	}
	if altBody["alt_text"] != "a screenshot" {
		t.Errorf("alt text follow-up body = %v", altBody)
	}
}

func TestUploadMediaAltTextFailureIgnored(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/wp-json/wp/v2/media":
			w.WriteHeader(http.StatusCreated)
			_ = json.NewEncoder(w).Encode(map[string]any{
				"id":         44,
				"source_url": "https://example.com/uploads/pic.png",
				"title":      map[string]string{"rendered": "pic"},
				"mime_type":  "image/png",
			})
		case "/wp-json/wp/v2/media/44":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			t.Errorf("unexpected path %q", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	media, err := c.UploadMedia(context.Background(), MediaUpload{
		Reader:   strings.NewReader("png"),
		Filename: "pic.png",
		AltText:  "a picture",
	})
	if err != nil {
		t.Fatalf("a failed alt-text update must not fail the upload: %v", err)
	}
	if media.ID != 44 {
		t.Errorf("media = %+v", media)
	}
}

func TestUploadMediaLocalValidation(t *testing.T) {
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")

	if _, err := c.UploadMedia(context.Background(), MediaUpload{}); err == nil {
		t.Error("expected error when neither path nor reader is given")
	}
	if _, err := c.UploadMedia(context.Background(), MediaUpload{Reader: strings.NewReader("x")}); err == nil {
		t.Error("expected error for reader without filename")
	}
	if requests != 0 {
		t.Errorf("local validation must not issue network calls, saw %d", requests)
	}
}

func TestUploadMediaRemoteRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusRequestEntityTooLarge)
		_, _ = w.Write([]byte("file exceeds limit"))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.UploadMedia(context.Background(), MediaUpload{
		Reader:   strings.NewReader("data"),
		Filename: "big.jpg",
	})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusRequestEntityTooLarge {
		t.Errorf("StatusCode = %d", apiErr.StatusCode)
	}
	if !strings.Contains(apiErr.Body, "file exceeds limit") {
		t.Errorf("Body = %q", apiErr.Body)
	}
}

func TestGetOrCreateCategoryExisting(t *testing.T) {
	creates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/categories" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if r.Method == http.MethodPost {
			creates++
			return
		}
		if got := r.URL.Query().Get("search"); got != "tech" {
			t.Errorf("search = %q, want tech", got)
		}
		_ = json.NewEncoder(w).Encode([]Term{{ID: 7, Name: "Tech"}})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	id, err := c.GetOrCreateCategory(context.Background(), "tech")
	if err != nil {
		t.Fatalf("GetOrCreateCategory() error: %v", err)
	}
	if id != 7 {
		t.Errorf("id = %d, want 7 (case-insensitive match)", id)
	}
	if creates != 0 {
		t.Errorf("existing term must not be re-created, saw %d creates", creates)
	}
}

func TestGetOrCreateTagCreates(t *testing.T) {
	creates := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			_ = json.NewEncoder(w).Encode([]Term{})
			return
		}
		creates++
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["name"] != "golang" {
			t.Errorf("create body = %v", body)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(Term{ID: 31, Name: "golang"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	id, err := c.GetOrCreateTag(context.Background(), "golang")
	if err != nil {
		t.Fatalf("GetOrCreateTag() error: %v", err)
	}
	if id != 31 {
		t.Errorf("id = %d, want 31", id)
	}
	if creates != 1 {
		t.Errorf("expected exactly one creation call, saw %d", creates)
	}
}

func TestCreatePostMinimalBody(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/wp-json/wp/v2/posts" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":     101,
			"link":   "https://example.com/?p=101",
			"status": "draft",
			"title":  map[string]string{"rendered": "Hello"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	post, err := c.CreatePost(context.Background(), PostParams{
		Title:   "Hello",
		Content: "<p>Hi</p>",
		Status:  "draft",
	})
	if err != nil {
		t.Fatalf("CreatePost() error: %v", err)
	}
	if post.ID != 101 || post.Title != "Hello" || post.Status != "draft" {
		t.Errorf("CreatePost() = %+v", post)
	}

	for _, key := range []string{"featured_media", "categories", "tags", "excerpt", "meta"} {
		if _, ok := body[key]; ok {
			t.Errorf("optional key %q should be absent from minimal body", key)
		}
	}
}

func TestCreatePostWithElementor(t *testing.T) {
	var body map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id": 1, "link": "l", "status": "draft",
			"title": map[string]string{"rendered": "T"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "admin", "secret")
	_, err := c.CreatePost(context.Background(), PostParams{
		Title:   "T",
		Content: "<p>x</p>",
		Status:  "draft",
		Meta:    map[string]any{"_yoast_wpseo_title": "SEO T"},
		Elementor: []map[string]any{
			{"elType": "section"},
		},
	})
	if err != nil {
		t.Fatalf("CreatePost() error: %v", err)
	}

	meta, ok := body["meta"].(map[string]any)
	if !ok {
		t.Fatalf("meta missing from body: %v", body)
	}
	if meta["_yoast_wpseo_title"] != "SEO T" {
		t.Errorf("custom meta lost: %v", meta)
	}
	data, ok := meta["_elementor_data"].(string)
	if !ok || !strings.Contains(data, `"elType":"section"`) {
		t.Errorf("_elementor_data should be a JSON string, got %v", meta["_elementor_data"])
	}
	if meta["_elementor_edit_mode"] != "builder" {
		t.Errorf("_elementor_edit_mode = %v", meta["_elementor_edit_mode"])
	}
	if meta["_elementor_template_type"] != "wp-post" {
		t.Errorf("_elementor_template_type = %v", meta["_elementor_template_type"])
	}
}
