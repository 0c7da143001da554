package preprocess

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/disintegration/imaging"
	tl "github.com/tuumbleweed/tintlog/logger"
	"github.com/tuumbleweed/tintlog/palette"
)

// Skew detection tuning. Values are empirical, calibrated on receipt photos.
const (
	// EdgeGradientThreshold is the minimum left/right grayscale difference
	// (0-255 scale) for a pixel to count as an edge point.
	EdgeGradientThreshold = 50

	// MinEdgePoints is the number of edge points below which detection
	// aborts: not enough signal to trust any angle.
	MinEdgePoints = 100

	// MaxSampledEdgePoints caps how many edge points feed row grouping.
	MaxSampledEdgePoints = 1000

	// RowBucketTolerance groups edge points whose y-coordinates are within
	// this many pixels into one text-row candidate.
	RowBucketTolerance = 5

	// MinRowPoints is the smallest row group that yields an angle estimate.
	MinRowPoints = 10

	// MinRowSpan rejects rows whose horizontal extent is too short to give
	// a stable slope.
	MinRowSpan = 20.0

	// MaxRowAngle discards per-row angles at or beyond this many degrees as
	// noise rather than text.
	MaxRowAngle = 45.0

	// MinCorrectionAngle is the noise floor: smaller detected tilts are left
	// alone.
	MinCorrectionAngle = 0.5

	// MaxCorrectionAngle is the sanity ceiling: larger detected tilts are
	// treated as misdetection, not receipt tilt.
	MaxCorrectionAngle = 30.0
)

type edgePoint struct {
	x int
	y int
}

/*
Deskew detects the dominant tilt of the text rows and rotates the image to
straighten them, expanding the canvas and filling the new background with
white so nothing is cropped.

Images without usable horizontal text structure (blank, uniform, pure noise)
come back as an untouched copy; a spurious rotation would be worse than none.
*/
func Deskew(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	angle := DetectSkewAngle(gray)

	if math.Abs(angle) < MinCorrectionAngle || math.Abs(angle) > MaxCorrectionAngle {
		tl.Log(tl.Info1, palette.Cyan, "Skew angle %.2f° is outside the correction window, keeping image as-is", angle)
		return imaging.Clone(img)
	}

	tl.Log(tl.Info1, palette.Blue, "Correcting skew of %.2f°", angle)

	// Rotation runs on the original colors; the grayscale copy was only for
	// detection.
	return imaging.Rotate(img, angle, color.White)
}

/*
DetectSkewAngle estimates the tilt of text rows in a grayscale image, in
degrees. It finds horizontal-gradient edge points, buckets them into
approximate text rows, derives one slope per row from the first and last
quartile centroids, and returns the median of the qualifying row angles.
Median over mean: a handful of misdetected rows must not dominate.

Returns 0 when there is not enough edge signal.
*/
func DetectSkewAngle(gray *image.NRGBA) float64 {
	bounds := gray.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	var edges []edgePoint
	for y := 1; y < height-1; y++ {
		rowOffset := y * gray.Stride
		for x := 1; x < width-1; x++ {
			left := int(gray.Pix[rowOffset+(x-1)*4])
			right := int(gray.Pix[rowOffset+(x+1)*4])
			gradient := right - left
			if gradient < 0 {
				gradient = -gradient
			}
			if gradient > EdgeGradientThreshold {
				edges = append(edges, edgePoint{x: x, y: y})
			}
		}
	}

	if len(edges) < MinEdgePoints {
		tl.Log(tl.Verbose, palette.CyanDim, "Only %d edge points found, skipping skew detection", len(edges))
		return 0
	}

	// Sample down to a bounded number of points, then group by rounded
	// y-coordinate to approximate text lines.
	sampleSize := len(edges)
	if sampleSize > MaxSampledEdgePoints {
		sampleSize = MaxSampledEdgePoints
	}
	step := len(edges) / sampleSize

	rowGroups := make(map[int][]edgePoint)
	for i := 0; i < len(edges); i += step {
		p := edges[i]
		rowKey := int(math.Round(float64(p.y)/RowBucketTolerance)) * RowBucketTolerance
		rowGroups[rowKey] = append(rowGroups[rowKey], p)
	}

	var angles []float64
	for _, points := range rowGroups {
		if len(points) < MinRowPoints {
			continue
		}

		sort.Slice(points, func(i, j int) bool { return points[i].x < points[j].x })

		quartile := len(points) / 4
		lastStart := len(points) - quartile

		var x1, y1, x2, y2 float64
		for i := 0; i < quartile; i++ {
			x1 += float64(points[i].x)
			y1 += float64(points[i].y)
		}
		for i := lastStart; i < len(points); i++ {
			x2 += float64(points[i].x)
			y2 += float64(points[i].y)
		}
		x1 /= float64(quartile)
		y1 /= float64(quartile)
		x2 /= float64(len(points) - lastStart)
		y2 /= float64(len(points) - lastStart)

		dx := x2 - x1
		dy := y2 - y1
		if math.Abs(dx) <= MinRowSpan {
			continue
		}

		angle := math.Atan2(dy, dx) * (180 / math.Pi)
		if math.Abs(angle) < MaxRowAngle {
			angles = append(angles, angle)
		}
	}

	if len(angles) == 0 {
		return 0
	}

	sort.Float64s(angles)
	median := angles[len(angles)/2]

	tl.Log(tl.Verbose, palette.CyanDim, "Skew detection: %d edge points, %d usable rows, median angle %.2f°", len(edges), len(angles), median)

	return median
}
