package sketch

import (
	"log/slog"
	"math"
	"strings"

	"github.com/benoitkugler/oksketch/sketchpath"
)

// ShapeType selects the figure drawn by the shape tool.
type ShapeType uint8

const (
	Rectangle ShapeType = iota
	Circle
	Ellipse
	Triangle
	Diamond
)

var shapeNames = [...]string{
	Rectangle: "rectangle",
	Circle:    "circle",
	Ellipse:   "ellipse",
	Triangle:  "triangle",
	Diamond:   "diamond",
}

func (s ShapeType) String() string {
	if int(s) < len(shapeNames) {
		return shapeNames[s]
	}
	return "<unknown ShapeType>"
}

// ParseShapeType returns the shape named `token`.
// Unknown tokens fall back to Rectangle, so that an unexpected
// tool configuration still draws something.
func ParseShapeType(token string) ShapeType {
	token = strings.ToLower(strings.TrimSpace(token))
	for i, name := range shapeNames {
		if name == token {
			return ShapeType(i)
		}
	}
	slog.Debug("unknown shape type, using rectangle", "shape", token)
	return Rectangle
}

// FillMode decides if a closed shape is painted
// filled or outlined.
type FillMode uint8

const (
	FillShape FillMode = iota
	StrokeShape
)

func (m FillMode) String() string {
	switch m {
	case FillShape:
		return "fill"
	case StrokeShape:
		return "stroke"
	default:
		return "<unknown FillMode>"
	}
}

// ParseFillMode returns FillShape for "fill", or when the flag
// is omitted, and StrokeShape for any other token.
func ParseFillMode(token string) FillMode {
	switch strings.ToLower(strings.TrimSpace(token)) {
	case "", "fill":
		return FillShape
	default:
		return StrokeShape
	}
}

// ShapePath reduces the shape dragged from (x1, y1) to (x2, y2) to a path.
//
//   - Rectangle: the box with corners (x1, y1) and (x2, y2)
//   - Circle: centered on (x1, y1), passing through (x2, y2)
//   - Ellipse: centered on (x1, y1), with radii |x2-x1| and |y2-y1|
//   - Triangle: apex on the middle of the top edge of the box, base on its bottom edge
//   - Diamond: joining the midpoints of the sides of the box
func ShapePath(x1, y1, x2, y2 float64, shape ShapeType) sketchpath.Path {
	var p sketchpath.Path
	switch shape {
	case Circle:
		p.AddCircle(x1, y1, math.Hypot(x2-x1, y2-y1))
	case Ellipse:
		p.AddEllipse(x1, y1, math.Abs(x2-x1), math.Abs(y2-y1))
	case Triangle:
		p.AddTriangle(x1, y1, x2, y2)
	case Diamond:
		p.AddDiamond(x1, y1, x2, y2)
	default:
		p.AddRect(x1, y1, x2, y2)
	}
	return p
}

// DrawShape draws the shape dragged from (x1, y1) to (x2, y2),
// filled with the fill color or outlined with the stroke style.
func DrawShape(ctx *Context, x1, y1, x2, y2 float64, shape ShapeType, mode FillMode) {
	p := ShapePath(x1, y1, x2, y2, shape)
	if len(p) == 0 {
		return
	}
	slog.Debug("draw shape", "shape", shape, "mode", mode, "path", p)
	if mode == StrokeShape {
		ctx.strokePath(p)
	} else {
		ctx.fillPath(p, ctx.Style.FillColor)
	}
}

// DrawLine strokes the segment from (x1, y1) to (x2, y2).
// It is used by the line tool, both for the final line and
// the preview while dragging.
func DrawLine(ctx *Context, x1, y1, x2, y2 float64) {
	var p sketchpath.Path
	p.AddLine(x1, y1, x2, y2)
	ctx.strokePath(p)
}

// DrawCurve strokes the quadratic curve from (x1, y1) to (x2, y2),
// with control point (cpx, cpy).
func DrawCurve(ctx *Context, x1, y1, x2, y2, cpx, cpy float64) {
	var p sketchpath.Path
	p.AddQuad(x1, y1, x2, y2, cpx, cpy)
	ctx.strokePath(p)
}
