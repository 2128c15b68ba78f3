package document

import (
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata is the recognized frontmatter schema. Unknown keys land in Custom
// via the inline map and are exposed through Document.CustomFields.
type Metadata struct {
	Title           string     `yaml:"title"`
	Excerpt         string     `yaml:"excerpt"`
	Description     string     `yaml:"description"`
	Categories      StringList `yaml:"categories"`
	Tags            StringList `yaml:"tags"`
	FeaturedImage   string     `yaml:"featured_image"`
	Image           string     `yaml:"image"`
	Status          string     `yaml:"status"`
	SEOTitle        string     `yaml:"seo_title"`
	MetaTitle       string     `yaml:"meta_title"`
	SEODescription  string     `yaml:"seo_description"`
	MetaDescription string     `yaml:"meta_description"`
	Keywords        Keywords   `yaml:"keywords"`
	FocusKeyword    string     `yaml:"focus_keyword"`

	Custom map[string]any `yaml:",inline"`
}

// SEOFields carries the assembled SEO metadata for Yoast-style plugins.
// Empty fields should be omitted from remote requests.
type SEOFields struct {
	Title        string
	Description  string
	Keywords     string
	FocusKeyword string
}

// Empty reports whether no SEO field is set.
func (s SEOFields) Empty() bool {
	return s.Title == "" && s.Description == "" && s.Keywords == "" && s.FocusKeyword == ""
}

// StringList accepts either a YAML sequence or a comma-delimited scalar.
// Scalars are split on commas with each piece trimmed; any other shape
// yields an empty list.
type StringList []string

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		*l = splitAndTrim(s)
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return nil
		}
		*l = items
	default:
		*l = nil
	}
	return nil
}

// Keywords accepts either a scalar, kept verbatim, or a YAML sequence,
// joined with ", ".
type Keywords string

// UnmarshalYAML implements yaml.Unmarshaler.
func (k *Keywords) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return nil
		}
		*k = Keywords(s)
	case yaml.SequenceNode:
		var items []string
		if err := value.Decode(&items); err != nil {
			return nil
		}
		*k = Keywords(strings.Join(items, ", "))
	default:
		*k = ""
	}
	return nil
}

func splitAndTrim(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}
