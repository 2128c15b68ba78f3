package aigen

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestBuildSystemPromptDefaults(t *testing.T) {
	got := buildSystemPrompt("", "", false)
	if !strings.Contains(got, "Tone: professional") {
		t.Errorf("empty tone should default to professional: %q", got[:80])
	}
	if !strings.Contains(got, lengthGuides["medium"]) {
		t.Error("unknown length should fall back to medium")
	}
	if strings.Contains(got, "seo_title") {
		t.Error("SEO fields should be absent when not requested")
	}
}

func TestBuildSystemPromptSEO(t *testing.T) {
	got := buildSystemPrompt("casual", "long", true)
	if !strings.Contains(got, "Tone: casual") {
		t.Error("tone not applied")
	}
	if !strings.Contains(got, lengthGuides["long"]) {
		t.Error("length guide not applied")
	}
	for _, field := range []string{"seo_title", "seo_description", "keywords", "focus_keyword"} {
		if !strings.Contains(got, field) {
			t.Errorf("SEO prompt missing %q", field)
		}
	}
}

func TestBuildUserPrompt(t *testing.T) {
	got := buildUserPrompt(GenerateRequest{
		Prompt:     "Why Go is great for CLIs",
		Categories: "Programming, Tools",
		Tags:       "go, cli",
	})
	if !strings.Contains(got, "Topic/Request: Why Go is great for CLIs") {
		t.Errorf("prompt missing topic: %q", got)
	}
	if !strings.Contains(got, "Suggested categories: Programming, Tools") {
		t.Errorf("prompt missing categories: %q", got)
	}
	if !strings.Contains(got, "Suggested tags: go, cli") {
		t.Errorf("prompt missing tags: %q", got)
	}
}

func TestBuildUserPromptBare(t *testing.T) {
	got := buildUserPrompt(GenerateRequest{Prompt: "topic"})
	if strings.Contains(got, "Suggested") {
		t.Errorf("bare request should not mention suggestions: %q", got)
	}
}

func TestTruncateRuneSafe(t *testing.T) {
	s := strings.Repeat("日", 1200)
	got := truncate(s, 1000)
	if !utf8.ValidString(got) {
		t.Error("truncated string is not valid UTF-8")
	}
	if n := utf8.RuneCountInString(got); n != 1000 {
		t.Errorf("rune count = %d, want 1000", n)
	}
	if short := "short"; truncate(short, 1000) != short {
		t.Error("strings under the limit should pass through unchanged")
	}
}

func TestNewRequiresAPIKey(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("New() should reject an empty API key")
	}
	g, err := New(Config{APIKey: "test-key"})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if g.model != defaultModel || g.maxTokens != defaultMaxTokens {
		t.Errorf("defaults not applied: model=%q maxTokens=%d", g.model, g.maxTokens)
	}
}
