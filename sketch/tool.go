package sketch

import (
	"fmt"
	"strings"

	"github.com/benoitkugler/oksketch/sketchfill"
)

// Tool is one of the drawing tools of the toolbar.
type Tool uint8

const (
	ToolPencil Tool = iota
	ToolEraser
	ToolShape
	ToolLine
	ToolCurve
	ToolFill
)

var toolNames = [...]string{
	ToolPencil: "pencil",
	ToolEraser: "eraser",
	ToolShape:  "shapes",
	ToolLine:   "line",
	ToolCurve:  "curve",
	ToolFill:   "fill",
}

func (t Tool) String() string {
	if int(t) < len(toolNames) {
		return toolNames[t]
	}
	return "<unknown Tool>"
}

// ParseTool returns the tool with the given name.
// "shape" is accepted as an alias of "shapes".
func ParseTool(name string) (Tool, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "shape" {
		return ToolShape, nil
	}
	for i, n := range toolNames {
		if n == name {
			return Tool(i), nil
		}
	}
	return 0, fmt.Errorf("unknown tool %q", name)
}

// Action is one drawing step, with its pointer coordinates
// already resolved by the host.
type Action struct {
	Tool Tool

	// X1, Y1 is the pointer down position (or the previous position
	// for pencil strokes, or the seed of the paint bucket).
	X1, Y1 float64
	// X2, Y2 is the current pointer position.
	X2, Y2 float64
	// CPX, CPY is the control point of quadratic curves.
	CPX, CPY float64

	Shape ShapeType
	Mode  FillMode

	// Color and Fill are only used by the paint bucket.
	Color string
	Fill  sketchfill.Options
}

// Apply performs the action on the context, using its current style.
// Only the paint bucket may fail.
func Apply(ctx *Context, a Action) error {
	switch a.Tool {
	case ToolPencil, ToolEraser:
		Pencil(ctx, a.X1, a.Y1, a.X2, a.Y2)
	case ToolShape:
		DrawShape(ctx, a.X1, a.Y1, a.X2, a.Y2, a.Shape, a.Mode)
	case ToolLine:
		DrawLine(ctx, a.X1, a.Y1, a.X2, a.Y2)
	case ToolCurve:
		DrawCurve(ctx, a.X1, a.Y1, a.X2, a.Y2, a.CPX, a.CPY)
	case ToolFill:
		return FillWith(ctx, a.X1, a.Y1, a.Color, a.Fill)
	default:
		return fmt.Errorf("unsupported tool %s", a.Tool)
	}
	return nil
}
