package document

// SampleMarkdown returns a template post demonstrating the full frontmatter
// schema. The web layer serves it as a downloadable example.
func SampleMarkdown() string {
	return `---
title: "Your Awesome Blog Post Title"
excerpt: "A compelling excerpt that summarizes your post"
categories:
  - Technology
  - Tutorial
tags:
  - Go
  - WordPress
  - Automation
featured_image: images/featured.jpg
status: draft
seo_title: "SEO Optimized Title | Your Brand"
seo_description: "Meta description for search engines, 150-160 characters recommended"
keywords: go, wordpress, automation, tutorial
focus_keyword: wordpress automation
---

# Your Awesome Blog Post Title

This is the introduction paragraph. It sets the context for your readers.

## Why This Matters

Here's why this topic is important:

- **Point one**: Explanation here
- **Point two**: More details
- **Point three**: Even more insights

## Step-by-Step Guide

### Step 1: Getting Started

![Screenshot of the interface](images/screenshot1.png "Interface Screenshot")

Follow these instructions carefully...

### Step 2: Configuration

` + "```go" + `
// Sample code block
func helloWorld() {
	fmt.Println("Hello, WordPress!")
}
` + "```" + `

## Conclusion

Wrap up your post with key takeaways and a call to action.

![Final result](images/result.png)
`
}
