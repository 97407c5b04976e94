//go:build !bimg
// +build !bimg

package ocr

import (
	"image"

	"github.com/nfnt/resize"
)

// fitWithin scales img so that neither edge exceeds maxDimension, keeping the aspect ratio.
func fitWithin(_ []byte, img image.Image, maxDimension int) (image.Image, error) {
	return resize.Thumbnail(uint(maxDimension), uint(maxDimension), img, resize.Lanczos3), nil
}
