package sketchpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// the toolkit shapes to their path equivalent.
// Every shape takes the two corners of a pointer drag.

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// AddRect adds the axis aligned box with corners (x1, y1) and (x2, y2).
// The corners need not be ordered: a drag from bottom-right to top-left
// gives the same box, traversed in the opposite direction.
func (p *Path) AddRect(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y1))
	p.Line(ToFixedP(x2, y2))
	p.Line(ToFixedP(x1, y2))
	p.Stop(true)
}

// AddEllipse adds an axis aligned ellipse centered on (cx, cy).
// An ellipse with one zero radius is flattened to a closed segment
// along its other axis: it still shows when stroked, and covers
// no area when filled.
// Nothing is added when both radii are zero, or one is negative.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	switch {
	case rx < 0 || ry < 0 || (rx == 0 && ry == 0):
		return
	case ry == 0:
		p.Start(ToFixedP(cx+rx, cy))
		p.Line(ToFixedP(cx-rx, cy))
		p.Stop(true)
		return
	case rx == 0:
		p.Start(ToFixedP(cx, cy+ry))
		p.Line(ToFixedP(cx, cy-ry))
		p.Stop(true)
		return
	}

	segs := int(math.Ceil(2 * math.Pi / maxDx))
	dEta := 2 * math.Pi / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3

	lx, ly := cx+rx, cy
	ldx, ldy := ellipsePrime(rx, ry, 0)
	p.Start(ToFixedP(lx, ly))
	for i := 1; i <= segs; i++ {
		eta := dEta * float64(i)
		var px, py float64
		if i == segs {
			px, py = cx+rx, cy // closes exactly on the start point
		} else {
			px, py = ellipsePointAt(rx, ry, eta, cx, cy)
		}
		dx, dy := ellipsePrime(rx, ry, eta)
		p.CubeBezier(ToFixedP(lx+alpha*ldx, ly+alpha*ldy),
			ToFixedP(px-alpha*dx, py-alpha*dy), ToFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
	p.Stop(true)
}

// AddCircle adds a circle centered on (cx, cy).
func (p *Path) AddCircle(cx, cy, r float64) {
	p.AddEllipse(cx, cy, r, r)
}

// AddTriangle adds the isoceles triangle inscribed in the drag box:
// the apex is the middle of the top edge and the base spans the bottom edge.
func (p *Path) AddTriangle(x1, y1, x2, y2 float64) {
	minX, minY, maxX, maxY := box(x1, y1, x2, y2)
	p.Start(ToFixedP((x1+x2)/2, minY))
	p.Line(ToFixedP(minX, maxY))
	p.Line(ToFixedP(maxX, maxY))
	p.Stop(true)
}

// AddDiamond adds the rhombus joining the midpoints
// of the four sides of the drag box, clockwise from the top.
func (p *Path) AddDiamond(x1, y1, x2, y2 float64) {
	minX, minY, maxX, maxY := box(x1, y1, x2, y2)
	cx, cy := (x1+x2)/2, (y1+y2)/2
	p.Start(ToFixedP(cx, minY))
	p.Line(ToFixedP(maxX, cy))
	p.Line(ToFixedP(cx, maxY))
	p.Line(ToFixedP(minX, cy))
	p.Stop(true)
}

// AddLine adds an open segment.
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y2))
}

// AddQuad adds an open quadratic curve from (x1, y1) to (x2, y2)
// with control point (cpx, cpy).
func (p *Path) AddQuad(x1, y1, x2, y2, cpx, cpy float64) {
	p.Start(ToFixedP(x1, y1))
	p.QuadBezier(ToFixedP(cpx, cpy), ToFixedP(x2, y2))
}

func box(x1, y1, x2, y2 float64) (minX, minY, maxX, maxY float64) {
	return math.Min(x1, x2), math.Min(y1, y2), math.Max(x1, x2), math.Max(y1, y2)
}

// ellipsePrime gives tangent vectors for parameterized elipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized elipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
