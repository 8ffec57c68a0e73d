package sketch

import (
	"image"
	"image/color"

	"github.com/benoitkugler/oksketch/sketchpath"
	"golang.org/x/image/math/fixed"
)

// Drawer knows how to do the actual draw operations
// but doesn't need any knowledge of the tools.
// Shapes are already reduced to paths
// before being sent to the Drawer.
type Drawer interface {
	sketchpath.Adder

	// Clear must reset the internal state (used before starting a new path painting)
	Clear()

	// SetColor set the color for the current path
	SetColor(c color.RGBA)

	// Draw fills or strokes the accumulated path using the current settings
	// depending on the drawer kind
	Draw()
}

type Stroker interface {
	Drawer

	// Parametrize the stroking style for the current path
	SetStrokeOptions(options StrokeOptions)
}

// Driver is the drawing backend, such as a rasterizer
// painting an image or a pdf writer.
type Driver interface {
	// SetupDrawers returns the backend painters, and
	// will be called at the begining of every path.
	// If the `willXXX` boolean is false, the returned drawer should be nil
	// to avoid useless operations.
	// `comp` is the compositing mode the path should be painted with.
	SetupDrawers(willFill, willStroke bool, comp Composite) (Drawer, Stroker)
}

// Surface is implemented by drivers backed by a pixel buffer,
// and is required by the paint bucket.
type Surface interface {
	// Pixels returns the buffer, which may be directly modified.
	Pixels() *image.RGBA

	// Invalidate signals that the given area of the buffer
	// has been modified outside of the Drawers.
	Invalidate(r image.Rectangle)
}

// JoinMode type to specify how segments join.
type JoinMode uint8

const (
	Round JoinMode = iota
	Bevel
	Miter
)

func (s JoinMode) String() string {
	switch s {
	case Round:
		return "Round"
	case Bevel:
		return "Bevel"
	case Miter:
		return "Miter"
	default:
		return "<unknown JoinMode>"
	}
}

// CapMode defines how to draw caps on the ends of lines
type CapMode uint8

const (
	RoundCap CapMode = iota
	ButtCap
	SquareCap
)

func (c CapMode) String() string {
	switch c {
	case ButtCap:
		return "ButtCap"
	case SquareCap:
		return "SquareCap"
	case RoundCap:
		return "RoundCap"
	default:
		return "<unknown CapMode>"
	}
}

// Composite selects how a path is combined
// with what is already drawn.
type Composite uint8

const (
	// SourceOver paints the path color over the surface.
	SourceOver Composite = iota
	// DestinationOut clears the surface where the path is painted,
	// whatever the path color. This is the usual eraser mode.
	DestinationOut
)

func (c Composite) String() string {
	switch c {
	case SourceOver:
		return "SourceOver"
	case DestinationOut:
		return "DestinationOut"
	default:
		return "<unknown Composite>"
	}
}

type StrokeOptions struct {
	LineWidth  fixed.Int26_6 // width of the line
	MiterLimit fixed.Int26_6 // the miter cutoff value for the Miter join mode
	Join       JoinMode
	Cap        CapMode
}
