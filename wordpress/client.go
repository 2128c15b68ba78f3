// Package wordpress is a typed client for the WordPress REST API surface the
// publishing pipeline needs: credential validation, media uploads, category
// and tag lookup-or-create, and post creation. All calls authenticate with
// HTTP Basic using an application password. Methods return *APIError for
// remote rejections and a "connection error:"-wrapped error for transport
// failures; they never panic.
package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiBase = "/wp-json/wp/v2"

const (
	// shortTimeout bounds auth and taxonomy calls.
	shortTimeout = 10 * time.Second
	// longTimeout bounds media uploads and post creation.
	longTimeout = 30 * time.Second
)

// Client talks to one WordPress site. It holds no mutable state and is safe
// for concurrent use.
type Client struct {
	baseURL  string
	username string
	password string
	http     *http.Client
}

// NewClient creates a client for the site at baseURL. A trailing slash on
// baseURL is stripped.
func NewClient(baseURL, username, password string) *Client {
	return &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		username: username,
		password: password,
		http:     &http.Client{},
	}
}

// BaseURL returns the normalized site URL.
func (c *Client) BaseURL() string { return c.baseURL }

// APIError is a non-2xx response from the WordPress API.
type APIError struct {
	StatusCode int
	Status     string // e.g. "404 Not Found"
	Body       string
}

func (e *APIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%d - %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%d - %s", e.StatusCode, strings.TrimPrefix(e.Status, fmt.Sprintf("%d ", e.StatusCode)))
}

// User identifies the authenticated WordPress account.
type User struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// ValidateCredentials checks the stored credentials against the current-user
// endpoint and returns the account on success.
func (c *Client) ValidateCredentials(ctx context.Context) (*User, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, apiBase+"/users/me", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Status: resp.Status}
	}
	var user User
	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return &user, nil
}

// newRequest builds an authenticated request for an API path.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.SetBasicAuth(c.username, c.password)
	return req, nil
}

// postJSON issues an authenticated POST with a JSON body and decodes the
// response into out when the status matches want.
func (c *Client) postJSON(ctx context.Context, path string, payload any, want int, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return readAPIError(resp)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// readAPIError drains a response body into an APIError.
func readAPIError(resp *http.Response) *APIError {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Body:       strings.TrimSpace(string(body)),
	}
}
