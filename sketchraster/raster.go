// Implements a raster backend for the sketch routines,
// by wrapping rasterx.
package sketchraster

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ sketch.Driver  = (*Renderer)(nil)
	_ sketch.Surface = (*Renderer)(nil)
)

// Renderer paints into an RGBA image.
// Erasing paths are rasterized into a separate coverage mask,
// which is then cut out of the image.
type Renderer struct {
	img    *image.RGBA
	filler *rasterx.Filler // we use separated instance
	dasher *rasterx.Dasher // to avoid shared state

	mask       *image.Alpha
	maskFiller *rasterx.Filler
	maskDasher *rasterx.Dasher

	damage image.Rectangle
}

// NewRenderer returns a renderer drawing into `img`.
// Path coordinates are relative to the top left corner of the image.
func NewRenderer(img *image.RGBA) *Renderer {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	mask := image.NewAlpha(bounds)
	return &Renderer{
		img:        img,
		filler:     rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, img, bounds)),
		dasher:     rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, img, bounds)),
		mask:       mask,
		maskFiller: rasterx.NewFiller(w, h, rasterx.NewScannerGV(w, h, mask, bounds)),
		maskDasher: rasterx.NewDasher(w, h, rasterx.NewScannerGV(w, h, mask, bounds)),
	}
}

// NewCanvas allocates a `width` x `height` image,
// painted with `background`, and returns its renderer.
func NewCanvas(width, height int, background color.Color) *Renderer {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	return NewRenderer(img)
}

// Pixels returns the target image.
func (rd *Renderer) Pixels() *image.RGBA { return rd.img }

// Invalidate adds `r` to the damaged area.
func (rd *Renderer) Invalidate(r image.Rectangle) {
	rd.damage = rd.damage.Union(r.Intersect(rd.img.Bounds()))
}

// Damage returns the area modified since the last call
// to ResetDamage, so that hosts may only repaint this part.
func (rd *Renderer) Damage() image.Rectangle { return rd.damage }

// ResetDamage empties the damaged area.
func (rd *Renderer) ResetDamage() { rd.damage = image.Rectangle{} }

func (rd *Renderer) SetupDrawers(willFill, willStroke bool, comp sketch.Composite) (sketch.Drawer, sketch.Stroker) {
	var (
		f sketch.Drawer
		s sketch.Stroker
	)
	erase := comp == sketch.DestinationOut
	if willFill {
		p := &pather{rd: rd, raster: rd.filler, erase: erase}
		if erase {
			p.raster = rd.maskFiller
		}
		f = p
	}
	if willStroke {
		d := rd.dasher
		if erase {
			d = rd.maskDasher
		}
		s = &stroker{pather: pather{rd: rd, raster: d, erase: erase}, dasher: d}
	}
	return f, s
}

// raster is the common API of rasterx.Filler and rasterx.Dasher
type raster interface {
	Clear()
	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)
	Stop(closeLoop bool)
	Draw()
	SetColor(c interface{})
	GetPathExtent() fixed.Rectangle26_6
}

// pather forwards the path commands to rasterx
type pather struct {
	rd     *Renderer
	raster raster
	erase  bool
}

func (p *pather) Clear()                             { p.raster.Clear() }
func (p *pather) Start(a fixed.Point26_6)            { p.raster.Start(a) }
func (p *pather) Line(b fixed.Point26_6)             { p.raster.Line(b) }
func (p *pather) QuadBezier(b, c fixed.Point26_6)    { p.raster.QuadBezier(b, c) }
func (p *pather) CubeBezier(b, c, d fixed.Point26_6) { p.raster.CubeBezier(b, c, d) }
func (p *pather) Stop(closeLoop bool)                { p.raster.Stop(closeLoop) }

// SetColor is ignored when erasing: the mask records coverage only.
func (p *pather) SetColor(c color.RGBA) {
	if p.erase {
		p.raster.SetColor(color.Opaque)
		return
	}
	p.raster.SetColor(c)
}

func (p *pather) Draw() {
	ext := p.raster.GetPathExtent()
	area := image.Rectangle{
		Min: image.Pt(ext.Min.X.Floor(), ext.Min.Y.Floor()),
		Max: image.Pt(ext.Max.X.Ceil(), ext.Max.Y.Ceil()),
	}.Add(p.rd.img.Bounds().Min).Intersect(p.rd.img.Bounds())

	p.raster.Draw()
	if p.erase {
		p.rd.cutMask(area)
	}
	p.rd.Invalidate(area)
}

// cutMask clears the image pixels proportionally to the mask coverage
// in `area`, then resets the mask.
func (rd *Renderer) cutMask(area image.Rectangle) {
	if area.Empty() {
		return
	}
	draw.DrawMask(rd.img, area, image.Transparent, image.Point{}, rd.mask, area.Min, draw.Src)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		row := rd.mask.Pix[rd.mask.PixOffset(area.Min.X, y):rd.mask.PixOffset(area.Max.X, y)]
		for i := range row {
			row[i] = 0
		}
	}
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		sketch.Round: rasterx.Round,
		sketch.Bevel: rasterx.Bevel,
		sketch.Miter: rasterx.Miter,
	}

	capToFunc = [...]rasterx.CapFunc{
		sketch.RoundCap:  rasterx.RoundCap,
		sketch.ButtCap:   rasterx.ButtCap,
		sketch.SquareCap: rasterx.SquareCap,
	}
)

type stroker struct {
	pather
	dasher *rasterx.Dasher
}

func (s *stroker) SetStrokeOptions(options sketch.StrokeOptions) {
	var gap rasterx.GapFunc = rasterx.FlatGap
	if options.Join == sketch.Round {
		gap = rasterx.RoundGap
	}
	capFunc := capToFunc[options.Cap]
	s.dasher.SetStroke(
		options.LineWidth, options.MiterLimit, capFunc, capFunc,
		gap, joinToJoin[options.Join], nil, 0,
	)
}
