package preprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformImage(width, height int, fill color.NRGBA) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.SetNRGBA(x, y, fill)
		}
	}
	return img
}

func TestNormalize(t *testing.T) {
	white := color.NRGBA{255, 255, 255, 255}

	t.Run("large image is scaled to the max dimension", func(t *testing.T) {
		img := uniformImage(4000, 3000, white)
		out := Normalize(img, 2000)

		assert.Equal(t, 2000, out.Bounds().Dx())
		assert.Equal(t, 1500, out.Bounds().Dy())
	})

	t.Run("portrait image scales by its height", func(t *testing.T) {
		img := uniformImage(1500, 3000, white)
		out := Normalize(img, 1000)

		assert.Equal(t, 500, out.Bounds().Dx())
		assert.Equal(t, 1000, out.Bounds().Dy())
	})

	t.Run("image within bounds keeps its dimensions", func(t *testing.T) {
		img := uniformImage(800, 600, white)
		out := Normalize(img, 2000)

		assert.Equal(t, 800, out.Bounds().Dx())
		assert.Equal(t, 600, out.Bounds().Dy())
	})

	t.Run("normalizing twice equals normalizing once", func(t *testing.T) {
		img := uniformImage(4000, 3000, white)
		once := Normalize(img, 2000)
		twice := Normalize(once, 2000)

		assert.Equal(t, once.Bounds(), twice.Bounds())
		assert.Equal(t, once.Pix, twice.Pix)
	})

	t.Run("zero max dimension disables resizing", func(t *testing.T) {
		img := uniformImage(4000, 10, white)
		out := Normalize(img, 0)

		assert.Equal(t, 4000, out.Bounds().Dx())
	})
}

func TestDeskewLeavesUniformImageAlone(t *testing.T) {
	img := uniformImage(400, 300, color.NRGBA{255, 255, 255, 255})
	out := Deskew(img)

	// no edges, no detectable rows: dimensions must not change
	assert.Equal(t, img.Bounds(), out.Bounds())
}

func TestDetectSkewAngleOnStraightText(t *testing.T) {
	// Horizontal black bars on white read as perfectly level text rows.
	img := uniformImage(400, 300, color.NRGBA{255, 255, 255, 255})
	for _, rowY := range []int{80, 150, 220} {
		for y := rowY; y < rowY+6; y++ {
			for x := 40; x < 360; x++ {
				img.SetNRGBA(x, y, color.NRGBA{0, 0, 0, 255})
			}
		}
	}

	angle := DetectSkewAngle(img)
	assert.InDelta(t, 0.0, angle, 0.5)
}

func TestEnhance(t *testing.T) {
	t.Run("dark pixels get darker and light pixels lighter", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 2, 1))
		img.SetNRGBA(0, 0, color.NRGBA{60, 60, 60, 255})    // ink
		img.SetNRGBA(1, 0, color.NRGBA{200, 200, 200, 255}) // paper

		out := Enhance(img)

		ink := out.NRGBAAt(0, 0)
		paper := out.NRGBAAt(1, 0)
		assert.Less(t, ink.R, uint8(60))
		assert.Greater(t, paper.R, uint8(200))
	})

	t.Run("output is grayscale with alpha preserved", func(t *testing.T) {
		img := image.NewNRGBA(image.Rect(0, 0, 1, 1))
		img.SetNRGBA(0, 0, color.NRGBA{10, 200, 90, 137})

		out := Enhance(img)

		pixel := out.NRGBAAt(0, 0)
		assert.Equal(t, pixel.R, pixel.G)
		assert.Equal(t, pixel.G, pixel.B)
		assert.Equal(t, uint8(137), pixel.A)
	})

	t.Run("dimensions are unchanged", func(t *testing.T) {
		img := uniformImage(123, 77, color.NRGBA{128, 128, 128, 255})
		out := Enhance(img)
		require.Equal(t, img.Bounds(), out.Bounds())
	})
}
