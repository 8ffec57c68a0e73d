// Implements an abstract representation of
// drawing paths, which can then be consumed
// by painting drivers
package sketchpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder interface for types that can accumlate path commands
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation is one path command. The set of operations is closed:
// MoveTo, LineTo, QuadTo, CubicTo and Close.
type Operation interface {
	// appendSVG writes the command using the SVG path data syntax
	appendSVG(b *strings.Builder)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// writePoints writes the points as comma separated pixel coordinates
func writePoints(b *strings.Builder, points ...fixed.Point26_6) {
	for i, pt := range points {
		if i != 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(b, "%4.3f,%4.3f", float32(pt.X)/64, float32(pt.Y)/64)
	}
}

func (op MoveTo) appendSVG(b *strings.Builder) {
	b.WriteByte('M')
	writePoints(b, fixed.Point26_6(op))
}

func (op LineTo) appendSVG(b *strings.Builder) {
	b.WriteByte('L')
	writePoints(b, fixed.Point26_6(op))
}

func (op QuadTo) appendSVG(b *strings.Builder) {
	b.WriteByte('Q')
	writePoints(b, op[:]...)
}

func (op CubicTo) appendSVG(b *strings.Builder) {
	b.WriteByte('C')
	writePoints(b, op[:]...)
}

func (Close) appendSVG(b *strings.Builder) { b.WriteByte('Z') }

// Path describes a sequence of basic drawing operations.
// Every shape of the toolkit is reduced to a path.
type Path []Operation

// ToSVGPath returns a string representation of the path,
// using the SVG path data syntax.
func (p Path) ToSVGPath() string {
	var b strings.Builder
	for i, op := range p {
		if i != 0 {
			b.WriteByte(' ')
		}
		op.appendSVG(&b)
	}
	return b.String()
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// AddTo replays the Path p on q, ending with
// an open Stop.
func (p Path) AddTo(q Adder) {
	for _, op := range p {
		switch op := op.(type) {
		case MoveTo:
			q.Stop(false) // implicit close if currently in path.
			q.Start(fixed.Point26_6(op))
		case LineTo:
			q.Line(fixed.Point26_6(op))
		case QuadTo:
			q.QuadBezier(op[0], op[1])
		case CubicTo:
			q.CubeBezier(op[0], op[1], op[2])
		case Close:
			q.Stop(true)
		}
	}
	q.Stop(false)
}
