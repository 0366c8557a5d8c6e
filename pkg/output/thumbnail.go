package output

import (
	"image"

	"github.com/nfnt/resize"
)

// Thumbnail scales img to the given width, keeping its aspect ratio.
// A width that is not smaller than the image returns img unchanged.
func Thumbnail(img image.Image, width int) image.Image {
	if width <= 0 || width >= img.Bounds().Dx() {
		return img
	}
	return resize.Resize(uint(width), 0, img, resize.Bilinear)
}
