// Package qr renders QR code images for page links.
package qr

import (
	goerrors "github.com/goliatone/go-errors"
	qrcode "github.com/skip2/go-qrcode"
)

// Encoder renders the given content as a PNG image of size x size pixels.
type Encoder interface {
	EncodePNG(content string, size int) ([]byte, error)
}

// PNGEncoder encodes QR codes with medium error correction.
type PNGEncoder struct{}

func NewPNGEncoder() *PNGEncoder {
	return &PNGEncoder{}
}

func (PNGEncoder) EncodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryCommand, "qr encode failed").
			WithTextCode("QR_ENCODE_FAILED")
	}
	return png, nil
}

var _ Encoder = (*PNGEncoder)(nil)
