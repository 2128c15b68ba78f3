package wordpress

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Term is a category or tag on the remote site.
type Term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GetOrCreateCategory resolves a category name to its remote id, creating
// the category when no case-insensitive match exists. Callers should treat
// an error as "skip this term", not as a failure of the whole publish.
func (c *Client) GetOrCreateCategory(ctx context.Context, name string) (int, error) {
	return c.getOrCreateTerm(ctx, apiBase+"/categories", name)
}

// GetOrCreateTag resolves a tag name to its remote id, creating the tag when
// no case-insensitive match exists.
func (c *Client) GetOrCreateTag(ctx context.Context, name string) (int, error) {
	return c.getOrCreateTerm(ctx, apiBase+"/tags", name)
}

func (c *Client) getOrCreateTerm(ctx context.Context, path, name string) (int, error) {
	ctx, cancel := context.WithTimeout(ctx, shortTimeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, path+"?search="+url.QueryEscape(name), nil)
	if err != nil {
		return 0, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("connection error: %w", err)
	}
	defer resp.Body.Close()

	// A failed search falls through to creation; the term may still exist
	// remotely, in which case WordPress rejects the duplicate.
	if resp.StatusCode == http.StatusOK {
		var terms []Term
		if err := json.NewDecoder(resp.Body).Decode(&terms); err != nil {
			return 0, fmt.Errorf("decode terms: %w", err)
		}
		for _, t := range terms {
			if strings.EqualFold(t.Name, name) {
				return t.ID, nil
			}
		}
	}

	var created Term
	if err := c.postJSON(ctx, path, map[string]string{"name": name}, http.StatusCreated, &created); err != nil {
		return 0, err
	}
	return created.ID, nil
}
