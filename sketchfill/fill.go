// Implements the paint bucket: a flood fill
// recoloring the 4-connected region of pixels
// matching the seed color, within a tolerance.
package sketchfill

import (
	"image"
	"image/color"
)

// Options tunes the color matching of a fill.
type Options struct {
	// Tolerance is the maximum per channel difference
	// still considered a match. Negative values are treated as 0.
	Tolerance int

	// CompareAlpha also requires the alpha channels to match.
	// By default only red, green and blue are compared, so that
	// a transparent pixel matches an opaque one of the same RGB.
	CompareAlpha bool
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// Match returns true if every red, green and blue channel
// of a and b differ by at most tolerance. Alpha is ignored.
func Match(a, b color.RGBA, tolerance int) bool {
	return absDiff(a.R, b.R) <= tolerance &&
		absDiff(a.G, b.G) <= tolerance &&
		absDiff(a.B, b.B) <= tolerance
}

func (o Options) match(a, b color.RGBA) bool {
	tol := o.Tolerance
	if tol < 0 {
		tol = 0
	}
	if o.CompareAlpha && absDiff(a.A, b.A) > tol {
		return false
	}
	return Match(a, b, tol)
}

// Fill recolors with `fill` the region of `img` reachable from (x, y)
// through 4-adjacent pixels matching the seed color.
// Coordinates are in the image space (see `img.Bounds()`).
// An out of bounds seed, or a seed already matching `fill`, is a no-op.
// The returned rectangle bounds the written pixels, and is empty
// if nothing changed.
func Fill(img *image.RGBA, x, y int, fill color.RGBA, opts Options) image.Rectangle {
	bounds := img.Bounds()
	seed := image.Pt(x, y)
	if !seed.In(bounds) {
		return image.Rectangle{}
	}

	reference := img.RGBAAt(x, y)
	if opts.match(reference, fill) {
		return image.Rectangle{}
	}

	var (
		width   = bounds.Dx()
		visited = make([]bool, width*bounds.Dy())
		stack   = []image.Point{seed}
		damage  image.Rectangle
	)
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !p.In(bounds) {
			continue
		}
		v := (p.Y-bounds.Min.Y)*width + (p.X - bounds.Min.X)
		if visited[v] {
			continue
		}

		i := img.PixOffset(p.X, p.Y)
		px := img.Pix[i : i+4 : i+4]
		if !opts.match(color.RGBA{px[0], px[1], px[2], px[3]}, reference) {
			continue
		}

		visited[v] = true
		px[0], px[1], px[2], px[3] = fill.R, fill.G, fill.B, fill.A
		damage = damage.Union(image.Rectangle{Min: p, Max: p.Add(image.Pt(1, 1))})

		stack = append(stack,
			image.Pt(p.X+1, p.Y),
			image.Pt(p.X-1, p.Y),
			image.Pt(p.X, p.Y+1),
			image.Pt(p.X, p.Y-1),
		)
	}
	return damage
}
