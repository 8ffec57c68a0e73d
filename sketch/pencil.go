package sketch

import "github.com/benoitkugler/oksketch/sketchpath"

// StrokeDot fills a disc of the given radius with the stroke color.
func StrokeDot(ctx *Context, x, y, radius float64) {
	var p sketchpath.Path
	p.AddCircle(x, y, radius)
	if len(p) == 0 {
		return
	}
	ctx.fillPath(p, ctx.Style.StrokeColor)
}

// StrokeSegment strokes the segment between two pointer positions.
func StrokeSegment(ctx *Context, x1, y1, x2, y2 float64) {
	DrawLine(ctx, x1, y1, x2, y2)
}

// Pencil draws one step of a freehand stroke, between two consecutive
// pointer positions: a dot capping the stroke at (x1, y1), then the segment.
// The eraser is the same operation, with either the stroke color
// set to the background or the DestinationOut composite mode.
func Pencil(ctx *Context, x1, y1, x2, y2 float64) {
	StrokeDot(ctx, x1, y1, ctx.Style.LineWidth/2)
	StrokeSegment(ctx, x1, y1, x2, y2)
}
