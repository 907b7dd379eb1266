package main

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	// Registered decoders for sniffed formats.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/imgio"
	"github.com/h2non/filetype"

	"github.com/gogpu/warp"
)

var (
	errNotImage     = errors.New("not an image")
	errOutputFormat = errors.New("unsupported output format")
)

// jpegQuality is used for .jpg and .jpeg outputs.
const jpegQuality = 92

// loadImage reads and decodes the image at path. The format is sniffed
// from the content, not the extension. It returns the sniffed extension.
func loadImage(path string) (*warp.Pixmap, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", fmt.Errorf("read image: %w", err)
	}
	if !filetype.IsImage(data) {
		return nil, "", fmt.Errorf("%s: %w", path, errNotImage)
	}
	kind, err := filetype.Match(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, kind.Extension, fmt.Errorf("decode %s (%s): %w", path, kind.MIME.Value, err)
	}
	return warp.FromImage(img), kind.Extension, nil
}

// blurImage applies a Gaussian blur of the given radius. A radius of zero
// returns pm unchanged.
func blurImage(pm *warp.Pixmap, radius float64) *warp.Pixmap {
	if radius <= 0 {
		return pm
	}
	return warp.FromImage(blur.Gaussian(pm, radius))
}

// encoderFor picks the encoder by the output extension.
func encoderFor(path string) (imgio.Encoder, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".png":
		return imgio.PNGEncoder(), nil
	case ".jpg", ".jpeg":
		return imgio.JPEGEncoder(jpegQuality), nil
	case ".bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("%w: %q", errOutputFormat, ext)
	}
}

// saveImage encodes pm to path.
func saveImage(path string, pm *warp.Pixmap) error {
	enc, err := encoderFor(path)
	if err != nil {
		return err
	}
	if err := imgio.Save(path, pm.ToNRGBA(), enc); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
