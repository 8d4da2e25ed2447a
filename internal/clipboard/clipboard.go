// Package clipboard moves images between the editor and the system
// clipboard.
package clipboard

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"

	// decoders for images pasted from other applications
	_ "image/gif"
	_ "image/jpeg"

	_ "golang.org/x/image/bmp"
)

// ErrEmpty is returned by ReadImage when the clipboard holds no image.
var ErrEmpty = errors.New("clipboard does not contain image data")

func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode clipboard image: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte) (image.Image, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode clipboard image: %w", err)
	}
	return img, nil
}
