package assets

import (
	"bytes"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/railreport/pkg/errors"
)

// DefaultMaxEdge bounds the longest edge of a normalised image in pixels.
const DefaultMaxEdge = 512

// Image is a normalised PNG ready for embedding.
type Image struct {
	Source string
	PNG    []byte
	Width  int
	Height int
}

// Aspect returns width/height, or 1 for a degenerate image.
func (im *Image) Aspect() float64 {
	if im == nil || im.Width <= 0 || im.Height <= 0 {
		return 1
	}
	return float64(im.Width) / float64(im.Height)
}

// Normalize decodes data in any registered format, fits it within
// maxEdge×maxEdge and re-encodes it as PNG.
func Normalize(source string, data []byte, maxEdge int) (*Image, error) {
	if maxEdge <= 0 {
		maxEdge = DefaultMaxEdge
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeAssetUnavailable, err, "decode %s", source)
	}
	b := img.Bounds()
	if b.Dx() > maxEdge || b.Dy() > maxEdge {
		img = imaging.Fit(img, maxEdge, maxEdge, imaging.Lanczos)
	}
	return EncodePNG(source, img)
}

// EncodePNG encodes img as an 8-bit NRGBA PNG.
func EncodePNG(source string, img image.Image) (*Image, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Clone(img), imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode %s: %w", source, err)
	}
	b := img.Bounds()
	return &Image{Source: source, PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy()}, nil
}

// fromCachedPNG rebuilds an Image from previously normalised bytes.
func fromCachedPNG(source string, data []byte) (*Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return &Image{Source: source, PNG: data, Width: cfg.Width, Height: cfg.Height}, nil
}
