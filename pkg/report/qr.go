package report

import (
	"github.com/skip2/go-qrcode"

	"github.com/matzehuels/railreport/pkg/assets"
	"github.com/matzehuels/railreport/pkg/errors"
)

// qrPixels is the raster size of the generated code before embedding.
const qrPixels = 256

// QRCode encodes content as a PNG QR code with medium error correction.
func QRCode(content string) (*assets.Image, error) {
	if content == "" {
		return nil, errors.New(errors.ErrCodeInvalidInput, "empty QR content")
	}
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "encode QR code")
	}
	q.DisableBorder = true
	return assets.EncodePNG("qr:"+content, q.Image(qrPixels))
}
