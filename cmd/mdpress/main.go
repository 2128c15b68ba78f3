package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/eringen/mdpress"
	"github.com/eringen/mdpress/document"
	"github.com/eringen/mdpress/publisher"
	"github.com/eringen/mdpress/wordpress"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "publish":
		if len(os.Args) < 3 {
			fmt.Fprintln(os.Stderr, "Usage: mdpress publish <file.md> [image...]")
			os.Exit(1)
		}
		if err := runPublish(os.Args[2], os.Args[3:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "sample":
		fmt.Print(document.SampleMarkdown())
	case "version":
		fmt.Printf("mdpress %s\n", version)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// runPublish publishes one markdown file, with optional images, using
// credentials from the environment.
func runPublish(file string, imagePaths []string) error {
	doc, err := document.Open(file)
	if err != nil {
		return err
	}

	images := make([]publisher.Image, 0, len(imagePaths))
	for _, p := range imagePaths {
		images = append(images, publisher.Image{Path: p})
	}

	client := wordpress.NewClient(
		mdpress.MustEnv("WP_SITE"),
		mdpress.MustEnv("WP_USERNAME"),
		mdpress.MustEnv("WP_APP_PASSWORD"),
	)
	pub := publisher.New(client, publisher.WithLogger(log.Default()))

	result := pub.Publish(context.Background(), publisher.Request{
		Document:  doc,
		Images:    images,
		Elementor: mdpress.EnvOr("WP_USE_ELEMENTOR", "") != "",
	})
	if !result.Success {
		return fmt.Errorf("%s", result.Error)
	}

	fmt.Printf("Published %q as %s post %d\n%s\n", result.Title, result.Status, result.PostID, result.URL)
	return nil
}

func printUsage() {
	fmt.Println(`mdpress - publish markdown documents to WordPress

Usage:
  mdpress <command> [arguments]

Commands:
  publish <file.md> [image...]   Publish a markdown file with optional images
  sample                         Print a sample markdown template
  version                        Print the mdpress version
  help                           Show this help message

Environment:
  WP_SITE            WordPress site URL
  WP_USERNAME        WordPress username
  WP_APP_PASSWORD    WordPress application password
  WP_USE_ELEMENTOR   Set to any value to wrap content in an Elementor payload`)
}
