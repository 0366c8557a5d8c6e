package renderer

import (
	"image"
	"image/color"
)

// Framebuffer is a dense RGB8 pixel buffer, row-major, top row first.
// It implements image.Image so it can be handed straight to encoders.
type Framebuffer struct {
	Width  int
	Height int
	Pix    []uint8 // 3 bytes per pixel
}

// NewFramebuffer allocates a black framebuffer
func NewFramebuffer(width, height int) *Framebuffer {
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*3),
	}
}

// offset returns the index of the red channel of pixel (x, y)
func (fb *Framebuffer) offset(x, y int) int {
	return (y*fb.Width + x) * 3
}

// SetRGB stores a pixel. Concurrent writers must target distinct pixels.
func (fb *Framebuffer) SetRGB(x, y int, rgb [3]uint8) {
	i := fb.offset(x, y)
	fb.Pix[i] = rgb[0]
	fb.Pix[i+1] = rgb[1]
	fb.Pix[i+2] = rgb[2]
}

// RGBAt returns the stored channels of pixel (x, y)
func (fb *Framebuffer) RGBAt(x, y int) [3]uint8 {
	i := fb.offset(x, y)
	return [3]uint8{fb.Pix[i], fb.Pix[i+1], fb.Pix[i+2]}
}

// ColorModel implements image.Image
func (fb *Framebuffer) ColorModel() color.Model {
	return color.RGBAModel
}

// Bounds implements image.Image
func (fb *Framebuffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, fb.Width, fb.Height)
}

// At implements image.Image
func (fb *Framebuffer) At(x, y int) color.Color {
	if !(image.Point{X: x, Y: y}.In(fb.Bounds())) {
		return color.RGBA{}
	}
	rgb := fb.RGBAt(x, y)
	return color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255}
}

// ToRGBA copies the buffer into an opaque *image.RGBA
func (fb *Framebuffer) ToRGBA() *image.RGBA {
	img := image.NewRGBA(fb.Bounds())
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			rgb := fb.RGBAt(x, y)
			img.SetRGBA(x, y, color.RGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 255})
		}
	}
	return img
}
