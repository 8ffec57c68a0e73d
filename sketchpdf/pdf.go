// Implements a PDF backend for the sketch routines,
// by wrapping github.com/jung-kurt/gofpdf.
//
// The paint bucket requires a pixel buffer and is not supported.
package sketchpdf

import (
	"image/color"
	"log/slog"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/jung-kurt/gofpdf"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ sketch.Driver  = (*Renderer)(nil)
	_ sketch.Drawer  = filler{}
	_ sketch.Stroker = stroker{}
)

// Renderer writes the sketch paths to a PDF page,
// using the point as unit.
type Renderer struct {
	pdf *gofpdf.Fpdf

	// Background is used to paint erasing paths,
	// since PDF has no destination-out compositing.
	Background color.RGBA

	warnedErase bool
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf

	erase      bool
	background color.RGBA
}

// paintColor returns the color to use, which is the background when erasing
func (p pather) paintColor(c color.RGBA) color.RGBA {
	if p.erase {
		return p.background
	}
	return c
}

// pdfColor returns the non-premultiplied components expected by PDF,
// and the opacity in [0, 1].
func pdfColor(c color.RGBA) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), float64(nc.A) / 255
}

// implements the filling operation
type filler struct {
	pather
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the current page of `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) *Renderer {
	return &Renderer{pdf: pdf, Background: color.RGBA{0xff, 0xff, 0xff, 0xff}}
}

// NewDocument starts a one page document of size `width` x `height` points,
// and returns its renderer.
func NewDocument(width, height float64) *Renderer {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: width, Ht: height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	return NewRenderer(pdf)
}

// PDF returns the underlying document, so that the caller
// may output it.
func (rd *Renderer) PDF() *gofpdf.Fpdf { return rd.pdf }

func (rd *Renderer) SetupDrawers(willFill, willStroke bool, comp sketch.Composite) (sketch.Drawer, sketch.Stroker) {
	var (
		f sketch.Drawer
		s sketch.Stroker
	)
	erase := comp == sketch.DestinationOut
	if erase && !rd.warnedErase {
		slog.Warn("destination-out is not supported by the pdf backend, painting with the background color")
		rd.warnedErase = true
	}
	p := pather{pdf: rd.pdf, erase: erase, background: rd.Background}
	if willFill {
		f = filler{p}
	}
	if willStroke {
		s = stroker{p}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

// Clear is a no-op: gofpdf starts a new path after each DrawPath.
func (p pather) Clear() {}

func (p pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

func (f filler) SetColor(c color.RGBA) {
	r, g, b, alpha := pdfColor(f.paintColor(c))
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha, "Normal")
}

// Draw fills with the non-zero winding rule, as the raster backend.
func (f filler) Draw() { f.pdf.DrawPath("F") }

func (s stroker) SetColor(c color.RGBA) {
	r, g, b, alpha := pdfColor(s.paintColor(c))
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha, "Normal")
}

func (s stroker) Draw() { s.pdf.DrawPath("D") }

var (
	joinToStyle = [...]string{
		sketch.Round: "round",
		sketch.Bevel: "bevel",
		sketch.Miter: "miter",
	}
	capToStyle = [...]string{
		sketch.RoundCap:  "round",
		sketch.ButtCap:   "butt",
		sketch.SquareCap: "square",
	}
)

func (s stroker) SetStrokeOptions(options sketch.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineJoinStyle(joinToStyle[options.Join])
	s.pdf.SetLineCapStyle(capToStyle[options.Cap])
}
