// Given a drawing script, replays its steps on a sketch context.
// This requires a driver implementing the actual draw operations,
// such as a rasterizer to output .png images or a pdf writer.
//
// Scripts are TOML documents such as
//
//	width = 200
//	height = 100
//	background = "white"
//
//	[[step]]
//	tool = "shapes"
//	shape = "circle"
//	fill_color = "#FF0000"
//	from = [50.0, 50.0]
//	to = [80.0, 50.0]
//
//	[[step]]
//	tool = "pencil"
//	color = "blue"
//	line_width = 4.0
//	points = [[10.0, 10.0], [20.0, 15.0], [30.0, 12.0]]
package sketchdraw

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"strings"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/benoitkugler/oksketch/sketchfill"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultWidth      = 256
	DefaultHeight     = 256
	DefaultBackground = "white"
)

// Point is a pointer position, in pixels.
type Point [2]float64

// Step is one drawing action, with the style changes
// applied before it. Style changes persist for the next steps,
// as on a real canvas.
type Step struct {
	Tool  string `toml:"tool"`
	Shape string `toml:"shape"` // for the shape tool
	Mode  string `toml:"mode"`  // "fill" or "stroke", for the shape tool

	// Color is the stroke color, or the paint bucket color
	// for the fill tool.
	Color     string  `toml:"color"`
	FillColor string  `toml:"fill_color"`
	LineWidth float64 `toml:"line_width"`
	Cap       string  `toml:"cap"`
	Join      string  `toml:"join"`

	// Erase selects the destination-out mode for the eraser,
	// instead of painting with the background color.
	Erase bool `toml:"erase"`

	Tolerance    int  `toml:"tolerance"`
	CompareAlpha bool `toml:"compare_alpha"`

	From    Point   `toml:"from"`
	To      Point   `toml:"to"`
	Control Point   `toml:"control"` // for the curve tool
	Points  []Point `toml:"points"`  // for the pencil and the eraser
}

// Script describes a canvas and the steps drawn on it.
type Script struct {
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Background string `toml:"background"`
	Steps      []Step `toml:"step"`
}

// ReadScript decodes a TOML script, rejecting unknown fields,
// and applies the defaults.
func ReadScript(r io.Reader) (Script, error) {
	var s Script
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return Script{}, fmt.Errorf("invalid script at %d:%d: %w", row, col, err)
		}
		return Script{}, fmt.Errorf("invalid script: %w", err)
	}

	if s.Width == 0 {
		s.Width = DefaultWidth
	}
	if s.Height == 0 {
		s.Height = DefaultHeight
	}
	if s.Background == "" {
		s.Background = DefaultBackground
	}
	if err := s.Validate(); err != nil {
		return Script{}, err
	}
	return s, nil
}

// Validate checks the canvas size, the colors and the tool names.
func (s Script) Validate() error {
	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("invalid canvas size %dx%d", s.Width, s.Height)
	}
	if _, err := sketch.ParseColor(s.Background); err != nil {
		return fmt.Errorf("background: %w", err)
	}
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	tool, err := sketch.ParseTool(st.Tool)
	if err != nil {
		return err
	}
	for _, c := range [...]string{st.Color, st.FillColor} {
		if c == "" {
			continue
		}
		if _, err := sketch.ParseColor(c); err != nil {
			return err
		}
	}
	if st.LineWidth < 0 {
		return fmt.Errorf("invalid line width %g", st.LineWidth)
	}
	if _, err := parseCap(st.Cap); err != nil {
		return err
	}
	if _, err := parseJoin(st.Join); err != nil {
		return err
	}
	if (tool == sketch.ToolPencil || tool == sketch.ToolEraser) && len(st.Points) == 0 {
		return fmt.Errorf("missing points for %s", tool)
	}
	return nil
}

func parseCap(s string) (sketch.CapMode, error) {
	switch strings.ToLower(s) {
	case "", "round":
		return sketch.RoundCap, nil
	case "butt":
		return sketch.ButtCap, nil
	case "square":
		return sketch.SquareCap, nil
	default:
		return 0, fmt.Errorf("unknown cap %q", s)
	}
}

func parseJoin(s string) (sketch.JoinMode, error) {
	switch strings.ToLower(s) {
	case "", "round":
		return sketch.Round, nil
	case "bevel":
		return sketch.Bevel, nil
	case "miter":
		return sketch.Miter, nil
	default:
		return 0, fmt.Errorf("unknown join %q", s)
	}
}

// Replay paints the background, then every step, on `ctx`.
// The style of `ctx` is updated by the steps.
func Replay(ctx *sketch.Context, s Script) error {
	background, err := sketch.ParseColor(s.Background)
	if err != nil {
		return fmt.Errorf("background: %w", err)
	}
	if background.A != 0 {
		saved := ctx.Style
		ctx.Style.FillColor = background
		ctx.Style.Composite = sketch.SourceOver
		sketch.DrawShape(ctx, 0, 0, float64(s.Width), float64(s.Height), sketch.Rectangle, sketch.FillShape)
		ctx.Style = saved
	}

	for i, st := range s.Steps {
		if err := st.replay(ctx, background); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return nil
}

// updateStyle applies the style changes of the step
func (st Step) updateStyle(style *sketch.Style, tool sketch.Tool) error {
	if st.Color != "" && tool != sketch.ToolFill {
		c, err := sketch.ParseColor(st.Color)
		if err != nil {
			return err
		}
		style.StrokeColor = c
	}
	if st.FillColor != "" {
		c, err := sketch.ParseColor(st.FillColor)
		if err != nil {
			return err
		}
		style.FillColor = c
	}
	if st.LineWidth > 0 {
		style.LineWidth = st.LineWidth
	}
	if st.Cap != "" {
		style.Cap, _ = parseCap(st.Cap)
	}
	if st.Join != "" {
		style.Join, _ = parseJoin(st.Join)
	}
	return nil
}

func (st Step) replay(ctx *sketch.Context, background color.RGBA) error {
	tool, err := sketch.ParseTool(st.Tool)
	if err != nil {
		return err
	}
	if err = st.updateStyle(&ctx.Style, tool); err != nil {
		return err
	}

	action := sketch.Action{
		Tool: tool,
		X1:   st.From[0],
		Y1:   st.From[1],
		X2:   st.To[0],
		Y2:   st.To[1],
		CPX:  st.Control[0],
		CPY:  st.Control[1],
	}
	switch tool {
	case sketch.ToolPencil, sketch.ToolEraser:
		return st.replayStroke(ctx, tool, background)
	case sketch.ToolShape:
		action.Shape = sketch.ParseShapeType(st.Shape)
		action.Mode = sketch.ParseFillMode(st.Mode)
	case sketch.ToolFill:
		action.Color = st.Color
		if action.Color == "" {
			action.Color = sketch.AsHex(ctx.Style.FillColor)
		}
		action.Fill = sketchfill.Options{Tolerance: st.Tolerance, CompareAlpha: st.CompareAlpha}
	}
	return sketch.Apply(ctx, action)
}

// replayStroke draws a freehand stroke through the step points.
func (st Step) replayStroke(ctx *sketch.Context, tool sketch.Tool, background color.RGBA) error {
	if len(st.Points) == 0 {
		return fmt.Errorf("missing points for %s", tool)
	}
	if tool == sketch.ToolEraser {
		saved := ctx.Style
		defer func() { ctx.Style = saved }()
		if st.Erase {
			ctx.Style.Composite = sketch.DestinationOut
		} else {
			ctx.Style.StrokeColor = background
		}
	}

	points := st.Points
	if len(points) == 1 {
		points = []Point{points[0], points[0]}
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		err := sketch.Apply(ctx, sketch.Action{Tool: tool, X1: a[0], Y1: a[1], X2: b[0], Y2: b[1]})
		if err != nil {
			return err
		}
	}
	return nil
}
