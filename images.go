package mdpress

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"github.com/eringen/mdpress/publisher"
)

const (
	maxImageWidth = 1600
	jpegQuality   = 85
)

// normalizeImage prepares one uploaded image for the pipeline. JPEG and PNG
// files wider than maxImageWidth are downscaled and re-encoded in their
// original format so the filename, and with it every in-body reference,
// stays unchanged. Everything else passes through untouched.
func normalizeImage(name string, src io.Reader) (publisher.Image, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return publisher.Image{}, fmt.Errorf("read image: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(name))
	if ext != ".jpg" && ext != ".jpeg" && ext != ".png" {
		return publisher.Image{Name: name, Reader: bytes.NewReader(data)}, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return publisher.Image{}, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w <= maxImageWidth {
		return publisher.Image{Name: name, Reader: bytes.NewReader(data)}, nil
	}

	newH := h * maxImageWidth / w
	dst := image.NewRGBA(image.Rect(0, 0, maxImageWidth, newH))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	switch format {
	case "png":
		err = png.Encode(&buf, dst)
	default:
		err = jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality})
	}
	if err != nil {
		return publisher.Image{}, fmt.Errorf("encode image: %w", err)
	}
	return publisher.Image{Name: name, Reader: bytes.NewReader(buf.Bytes())}, nil
}
