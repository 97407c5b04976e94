//go:build bimg
// +build bimg

package ocr

import (
	"bytes"
	"image"

	"gopkg.in/h2non/bimg.v1"
)

// fitWithin scales through libvips, keeping the aspect ratio.
func fitWithin(data []byte, img image.Image, maxDimension int) (image.Image, error) {
	bounds := img.Bounds()

	options := bimg.Options{Type: bimg.PNG}
	if bounds.Dx() >= bounds.Dy() {
		options.Width = maxDimension
	} else {
		options.Height = maxDimension
	}

	scaled, err := bimg.NewImage(data).Process(options)
	if err != nil {
		return nil, err
	}

	out, _, err := image.Decode(bytes.NewReader(scaled))
	return out, err
}
