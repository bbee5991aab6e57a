package report

import (
	"image"
	"image/color"
	"testing"

	"github.com/matzehuels/railreport/pkg/assets"
)

func solidLogo(t *testing.T) *assets.Image {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 40, 20))
	for y := range 20 {
		for x := range 40 {
			img.Set(x, y, color.NRGBA{R: 16, G: 54, B: 103, A: 255})
		}
	}
	logo, err := assets.EncodePNG("test-logo", img)
	if err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	return logo
}
