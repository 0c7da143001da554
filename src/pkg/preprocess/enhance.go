package preprocess

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Contrast enhancement tuning.
const (
	// ContrastFactor feeds the standard contrast-stretch formula.
	ContrastFactor = 1.5

	// SoftSplitThreshold separates "ink" from "paper" after the stretch.
	SoftSplitThreshold = 140

	// DarkenFactor deepens stroke pixels below the split.
	DarkenFactor = 0.7

	// LightenFactor flattens background pixels at or above the split.
	LightenFactor = 1.2
)

/*
Enhance improves OCR legibility: each pixel is converted to
luminance-weighted grayscale, contrast-stretched, then pushed through an
asymmetric darken/lighten split. Dark values get darker (ink strokes), light
values get lighter (paper noise). This is deliberately softer than a hard
black/white threshold: the surviving anti-aliasing helps LSTM-based
recognition downstream.

The result has the same dimensions as the input, with the gray value written
into all three color channels and alpha untouched.
*/
func Enhance(img image.Image) *image.NRGBA {
	// Precomputed from ContrastFactor via
	// factor = 259*(C*100+255) / (255*(259-C*100)).
	contrastScale := (259.0 * (ContrastFactor*100 + 255)) / (255.0 * (259 - ContrastFactor*100))

	return imaging.AdjustFunc(img, func(c color.NRGBA) color.NRGBA {
		gray := 0.299*float64(c.R) + 0.587*float64(c.G) + 0.114*float64(c.B)

		stretched := contrastScale*(gray-128) + 128
		if stretched < 0 {
			stretched = 0
		} else if stretched > 255 {
			stretched = 255
		}

		if stretched < SoftSplitThreshold {
			stretched *= DarkenFactor
		} else {
			stretched *= LightenFactor
			if stretched > 255 {
				stretched = 255
			}
		}

		value := uint8(stretched)
		return color.NRGBA{R: value, G: value, B: value, A: c.A}
	})
}
