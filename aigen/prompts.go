package aigen

import "strings"

var lengthGuides = map[string]string{
	"short":  "approximately 500-700 words",
	"medium": "approximately 1000-1500 words",
	"long":   "approximately 2000-3000 words",
}

// buildSystemPrompt describes the expected output format: markdown with a
// YAML frontmatter block matching the document package's schema.
func buildSystemPrompt(tone, length string, includeSEO bool) string {
	if tone == "" {
		tone = "professional"
	}
	wordCount, ok := lengthGuides[length]
	if !ok {
		wordCount = lengthGuides["medium"]
	}

	var b strings.Builder
	b.WriteString(`You are an expert blog post writer. Generate high-quality, engaging blog posts in Markdown format with YAML frontmatter.

Writing Style:
- Tone: ` + tone + `
- Length: ` + wordCount + `
- Use clear headings (##, ###) for structure
- Include bullet points and lists where appropriate
- Write engaging introductions and conclusions
- Use examples and explanations

Format Requirements:
1. Start with YAML frontmatter between --- markers
2. Include these frontmatter fields:
   - title: Compelling, SEO-friendly title
   - excerpt: 1-2 sentence summary
   - categories: Array of 2-3 relevant categories
   - tags: Array of 5-7 relevant tags
   - status: draft`)

	if includeSEO {
		b.WriteString(`
   - seo_title: SEO-optimized title (50-60 chars)
   - seo_description: Meta description (150-160 chars)
   - keywords: Comma-separated keywords
   - focus_keyword: Primary keyword`)
	}

	b.WriteString(`

3. After frontmatter, write the blog post in Markdown
4. Use proper heading hierarchy (# for title, ## for sections, ### for subsections)
5. Include code blocks with language tags if technical content
6. Use **bold** and *italic* for emphasis

Example structure:
` + "```" + `
---
title: "Your Title Here"
excerpt: "Brief summary"
categories:
  - Category1
  - Category2
tags: [tag1, tag2, tag3]
status: draft
---

# Main Title

Introduction paragraph...

## Section 1

Content...

### Subsection

More content...

## Conclusion

Wrap up...
` + "```" + `

Generate a complete, ready-to-publish blog post.`)

	return b.String()
}

// buildUserPrompt attaches the topic and any suggested taxonomy.
func buildUserPrompt(req GenerateRequest) string {
	var b strings.Builder
	b.WriteString("Topic/Request: " + req.Prompt + "\n\n")
	if req.Categories != "" {
		b.WriteString("Suggested categories: " + req.Categories + "\n")
	}
	if req.Tags != "" {
		b.WriteString("Suggested tags: " + req.Tags + "\n")
	}
	b.WriteString("\nGenerate the complete blog post with frontmatter now.")
	return b.String()
}
