package publisher

import (
	"crypto/rand"
	"encoding/hex"
)

// ElementorPayload wraps rendered HTML in the minimal Elementor structure:
// one section containing one column containing one text-editor widget.
func ElementorPayload(html string) []map[string]any {
	return []map[string]any{{
		"id":     elementID(),
		"elType": "section",
		"elements": []map[string]any{{
			"id":       elementID(),
			"elType":   "column",
			"settings": map[string]any{"_column_size": 100},
			"elements": []map[string]any{{
				"id":         elementID(),
				"elType":     "widget",
				"widgetType": "text-editor",
				"settings":   map[string]any{"editor": html},
			}},
		}},
	}}
}

// elementID returns a short hex id in the format Elementor uses.
func elementID() string {
	var b [4]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])[:7]
}
