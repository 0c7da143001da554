package preprocess

import (
	"image"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// DefaultMaxDimension bounds the longer image side before OCR. Large enough
// to keep small receipt print readable, small enough to keep recognition fast.
const DefaultMaxDimension = 2000

/*
Normalize scales the image down so its longer side does not exceed
maxDimension, preserving aspect ratio. Lanczos resampling keeps text edges
smooth instead of aliased. A maxDimension of 0 or less disables resizing.

An image already within bounds is returned as an untouched copy with
identical dimensions, so normalizing twice is the same as normalizing once.
*/
func Normalize(img image.Image, maxDimension int) *image.NRGBA {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if maxDimension <= 0 {
		return imaging.Clone(img)
	}

	longest := width
	if height > longest {
		longest = height
	}
	if longest <= maxDimension {
		return imaging.Clone(img)
	}

	scale := float64(maxDimension) / float64(longest)
	newWidth := int(float64(width)*scale + 0.5)
	newHeight := int(float64(height)*scale + 0.5)

	resized := imaging.Resize(img, newWidth, newHeight, imaging.Lanczos)

	tl.Log(
		tl.Info1, palette.Blue, "Resized image from %dx%d to %dx%d (max dimension %d)",
		width, height, newWidth, newHeight, maxDimension,
	)

	return resized
}
