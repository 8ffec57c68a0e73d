// Provides the drawing routines of a raster sketching tool:
// pencil and eraser strokes, paint bucket, shapes,
// straight lines and quadratic curves.
//
// Every routine works on a Context, binding the current
// drawing style to a Driver which performs the actual painting.
// See for example oksketch/sketchraster or oksketch/sketchpdf .
package sketch

import (
	"image/color"

	"github.com/benoitkugler/oksketch/sketchpath"
	"golang.org/x/image/math/fixed"
)

// Style holds the drawing state, as configured
// by the host before calling a routine.
type Style struct {
	FillColor, StrokeColor color.RGBA
	LineWidth              float64 // in pixels
	MiterLimit             float64
	Join                   JoinMode
	Cap                    CapMode
	Composite              Composite
}

// DefaultStyle sets the default Style to black fill and stroke,
// 2 pixels wide lines with round caps and joins.
var DefaultStyle = Style{
	FillColor:   color.RGBA{0x00, 0x00, 0x00, 0xff},
	StrokeColor: color.RGBA{0x00, 0x00, 0x00, 0xff},
	LineWidth:   2,
	MiterLimit:  4,
	Join:        Round,
	Cap:         RoundCap,
	Composite:   SourceOver,
}

// Context binds a drawing style to a driver.
// It is not safe for concurrent use.
type Context struct {
	Driver Driver
	Style  Style
}

// NewContext returns a context painting into `d`
// with the default style.
func NewContext(d Driver) *Context {
	return &Context{Driver: d, Style: DefaultStyle}
}

func (ctx *Context) strokeOptions() StrokeOptions {
	return StrokeOptions{
		LineWidth:  fixed.Int26_6(ctx.Style.LineWidth * 64),
		MiterLimit: fixed.Int26_6(ctx.Style.MiterLimit * 64),
		Join:       ctx.Style.Join,
		Cap:        ctx.Style.Cap,
	}
}

// fillPath paints the inside of `p` with color `c`.
func (ctx *Context) fillPath(p sketchpath.Path, c color.RGBA) {
	filler, _ := ctx.Driver.SetupDrawers(true, false, ctx.Style.Composite)
	if filler == nil {
		return
	}
	filler.Clear()
	p.AddTo(filler)
	filler.SetColor(c)
	filler.Draw()
}

// strokePath paints the outline of `p` with the stroke color and options.
func (ctx *Context) strokePath(p sketchpath.Path) {
	_, stroker := ctx.Driver.SetupDrawers(false, true, ctx.Style.Composite)
	if stroker == nil {
		return
	}
	stroker.Clear()
	stroker.SetStrokeOptions(ctx.strokeOptions())
	p.AddTo(stroker)
	stroker.SetColor(ctx.Style.StrokeColor)
	stroker.Draw()
}
