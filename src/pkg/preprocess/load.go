// Package preprocess contains the image transforms that run before OCR:
// loading, bounded resizing, skew correction and contrast enhancement. Every
// stage produces a fresh buffer so the stages stay composable and testable
// in isolation.
package preprocess

import (
	"fmt"
	"image"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

/*
ImageLoadError means the supplied image could not be decoded at all. It is
fatal to the current pipeline run; no partial buffer ever leaves this package
on that path.
*/
type ImageLoadError struct {
	Path string
	Err  error
}

func (e *ImageLoadError) Error() string {
	return fmt.Sprintf("cannot decode image '%s': %v", e.Path, e.Err)
}

func (e *ImageLoadError) Unwrap() error {
	return e.Err
}

/*
Load opens and decodes the image at path.
*/
func Load(path string) (img image.Image, loadErr *ImageLoadError) {
	opened, err := imaging.Open(path)
	if err != nil {
		return nil, &ImageLoadError{Path: path, Err: err}
	}

	bounds := opened.Bounds()
	tl.Log(
		tl.Info1, palette.Blue, "Loaded image '%s' (%dx%d)",
		path, bounds.Dx(), bounds.Dy(),
	)

	return opened, nil
}
