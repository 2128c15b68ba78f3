// Package aigen generates frontmatter-bearing blog post markdown with the
// Anthropic API. The publishing pipeline treats it as a black box that
// returns a markdown string ready for the document parser.
package aigen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultModel     = "claude-sonnet-4-20250514"
	defaultMaxTokens = 4000
	requestTimeout   = 120 * time.Second

	// fallbackImagePrompt is returned when image prompt generation fails.
	fallbackImagePrompt = "Professional blog post featured image, modern design, clean background"
)

// Config configures a Generator. APIKey is required.
type Config struct {
	APIKey      string
	Model       string  // default claude-sonnet-4-20250514
	MaxTokens   int     // default 4000
	Temperature float64 // default 0.7
}

// Generator produces blog post content through the Anthropic API.
type Generator struct {
	client      anthropic.Client
	model       string
	maxTokens   int
	temperature float64
}

// New creates a Generator. An empty API key is an error.
func New(cfg Config) (*Generator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("aigen: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = defaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = defaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	return &Generator{
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
	}, nil
}

// GenerateRequest describes the post to generate.
type GenerateRequest struct {
	Prompt     string
	Tone       string // professional, casual, technical, friendly
	Length     string // short, medium, long
	IncludeSEO bool
	Categories string // comma-separated suggestions, optional
	Tags       string // comma-separated suggestions, optional
}

// GenerateBlogPost generates a complete markdown post with YAML frontmatter
// from the request prompt.
func (g *Generator) GenerateBlogPost(ctx context.Context, req GenerateRequest) (string, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return "", fmt.Errorf("aigen: prompt is empty")
	}
	return g.complete(ctx, buildSystemPrompt(req.Tone, req.Length, req.IncludeSEO), buildUserPrompt(req))
}

// EnhanceContent modifies existing markdown according to an instruction
// while keeping the frontmatter format intact.
func (g *Generator) EnhanceContent(ctx context.Context, content, instruction string) (string, error) {
	system := "You are an expert blog post editor. Modify the content according to the " +
		"user's instructions while maintaining markdown format and frontmatter."
	user := fmt.Sprintf("Instruction: %s\n\nCurrent content:\n%s", instruction, content)
	return g.complete(ctx, system, user)
}

// GenerateImagePrompt derives a featured-image generation prompt from post
// content, falling back to a generic prompt on any failure.
func (g *Generator) GenerateImagePrompt(ctx context.Context, content string) string {
	system := "You are an expert at creating detailed, visually descriptive prompts for AI " +
		"image generation. Create prompts that are suitable for blog post featured images - " +
		"professional, clean, and relevant to the content."
	user := "Based on this blog post, create a detailed image generation prompt for a " +
		"featured image (max 100 words):\n\n" + truncate(content, 1000)

	out, err := g.complete(ctx, system, user)
	if err != nil {
		return fallbackImagePrompt
	}
	return strings.TrimSpace(out)
}

// truncate limits s to max runes so multibyte text is never split mid-rune.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// complete issues one message-completion call and returns the joined text blocks.
func (g *Generator) complete(ctx context.Context, system, user string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   int64(g.maxTokens),
		Temperature: anthropic.Float(g.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(user)),
		},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}

	resp, err := g.client.Messages.New(ctx, params)
	if err != nil {
		return "", fmt.Errorf("aigen: completion failed: %w", err)
	}

	var b strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			b.WriteString(block.Text)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("aigen: empty response")
	}
	return b.String(), nil
}
