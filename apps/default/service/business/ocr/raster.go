package ocr

import (
	"bytes"
	"image"
	// Imported for gif codec
	_ "image/gif"
	// Imported for jpeg codec
	_ "image/jpeg"
	"image/png"

	"github.com/pkg/errors"
	// Imported for bmp codec
	_ "golang.org/x/image/bmp"
	// Imported for tiff codec
	_ "golang.org/x/image/tiff"
	// Imported for webp codec
	_ "golang.org/x/image/webp"
)

// DecodeRaster decodes any supported image format, failing on anything that is not an image.
func DecodeRaster(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", errors.New("empty image")
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", errors.Wrap(err, "decode image")
	}

	return img, format, nil
}

// PrepareRaster decodes data and returns a PNG encoding that fits within maxDimension
// on both sides. A maxDimension of 0 leaves the size untouched.
func PrepareRaster(data []byte, maxDimension int) ([]byte, error) {

	img, _, err := DecodeRaster(data)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if maxDimension > 0 && (bounds.Dx() > maxDimension || bounds.Dy() > maxDimension) {
		img, err = fitWithin(data, img, maxDimension)
		if err != nil {
			return nil, errors.Wrap(err, "downscale image")
		}
	}

	var out bytes.Buffer
	if err = png.Encode(&out, img); err != nil {
		return nil, errors.Wrap(err, "encode image")
	}

	return out.Bytes(), nil
}
