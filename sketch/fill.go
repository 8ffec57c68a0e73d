package sketch

import (
	"errors"
	"fmt"
	"math"

	"github.com/benoitkugler/oksketch/sketchfill"
)

// ErrNoPixelBuffer is returned by Fill when the driver
// does not implement Surface.
var ErrNoPixelBuffer = errors.New("driver has no pixel buffer")

// Fill runs the paint bucket at (x, y), relative to the top left
// corner of the surface, recoloring with `colorHex` the matching region.
// The coordinates are floored. An out of bounds point is a silent no-op.
// See sketchfill.Fill for the details of the algorithm.
func Fill(ctx *Context, x, y float64, colorHex string, tolerance int) error {
	return FillWith(ctx, x, y, colorHex, sketchfill.Options{Tolerance: tolerance})
}

// FillWith is like Fill, but accepts all the matching options.
func FillWith(ctx *Context, x, y float64, colorHex string, opts sketchfill.Options) error {
	surface, ok := ctx.Driver.(Surface)
	if !ok {
		return fmt.Errorf("paint bucket: %w", ErrNoPixelBuffer)
	}
	c, err := ParseColor(colorHex)
	if err != nil {
		return fmt.Errorf("paint bucket: %w", err)
	}

	img := surface.Pixels()
	origin := img.Bounds().Min
	damage := sketchfill.Fill(img, origin.X+int(math.Floor(x)), origin.Y+int(math.Floor(y)), c, opts)
	if !damage.Empty() {
		surface.Invalidate(damage)
	}
	return nil
}
