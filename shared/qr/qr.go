package qr

import (
	"encoding/base64"
	"fmt"

	"github.com/skip2/go-qrcode"

	"lunchtime/shared/constant"
)

// EncodePNG renders the given content as a PNG QR code.
func EncodePNG(content string, size int) ([]byte, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}

	return png, nil
}

// EncodeDataURI renders the given content as a base64 PNG data URI suitable
// for embedding in a JSON response.
func EncodeDataURI(content string, size int) (string, error) {
	png, err := EncodePNG(content, size)
	if err != nil {
		return constant.Empty, err
	}

	return fmt.Sprintf("data:%s;base64,%s", constant.ContentTypePNG, base64.StdEncoding.EncodeToString(png)), nil
}
