package sketchraster

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"testing"

	"github.com/benoitkugler/oksketch/sketch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	white = color.RGBA{0xff, 0xff, 0xff, 0xff}
	black = color.RGBA{0, 0, 0, 0xff}
	red   = color.RGBA{0xff, 0, 0, 0xff}
	blue  = color.RGBA{0, 0, 0xff, 0xff}
)

func toPngBytes(m image.Image) ([]byte, error) {
	var b bytes.Buffer
	// Write the image into the buffer
	err := png.Encode(&b, m)
	if err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

func saveToPngFile(t *testing.T, name string, m image.Image) {
	b, err := toPngBytes(m)
	require.NoError(t, err)
	err = os.WriteFile(fmt.Sprintf("testdata_out/%s.png", name), b, 0o644)
	if err != nil {
		t.Logf("can't save rasterized image: %s", err)
	}
}

func newTestContext(w, h int) (*sketch.Context, *Renderer) {
	rd := NewCanvas(w, h, white)
	ctx := sketch.NewContext(rd)
	ctx.Style.FillColor = red
	ctx.Style.StrokeColor = black
	return ctx, rd
}

// dark returns true for pixels mostly covered by a black stroke on white
func dark(c color.RGBA) bool { return c.R < 0x80 && c.G < 0x80 && c.B < 0x80 }

// near checks the colors up to the rounding of the coverage accumulation
func near(t *testing.T, exp, got color.RGBA, msgAndArgs ...interface{}) {
	t.Helper()
	diff := func(a, b uint8) int {
		if a > b {
			return int(a - b)
		}
		return int(b - a)
	}
	if diff(exp.R, got.R) > 2 || diff(exp.G, got.G) > 2 || diff(exp.B, got.B) > 2 || diff(exp.A, got.A) > 2 {
		assert.Fail(t, fmt.Sprintf("expected %v, got %v", exp, got), msgAndArgs...)
	}
}

func TestRectangleMirrored(t *testing.T) {
	ctx1, rd1 := newTestContext(20, 20)
	sketch.DrawShape(ctx1, 0, 0, 10, 10, sketch.Rectangle, sketch.FillShape)

	ctx2, rd2 := newTestContext(20, 20)
	sketch.DrawShape(ctx2, 10, 10, 0, 0, sketch.Rectangle, sketch.FillShape)
	saveToPngFile(t, "rect_mirrored", rd2.Pixels())

	assert.Equal(t, rd1.Pixels().Pix, rd2.Pixels().Pix)
	img := rd2.Pixels()
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			if x < 10 && y < 10 {
				assert.Equal(t, red, img.RGBAAt(x, y), "(%d,%d)", x, y)
			} else {
				assert.Equal(t, white, img.RGBAAt(x, y), "(%d,%d)", x, y)
			}
		}
	}
	assert.Equal(t, image.Rect(0, 0, 10, 10), rd2.Damage())
}

func TestStrokedRectangleThenFill(t *testing.T) {
	ctx, rd := newTestContext(20, 20)
	ctx.Style.Join = sketch.Miter
	sketch.DrawShape(ctx, 5, 5, 15, 15, sketch.Rectangle, sketch.StrokeShape)

	img := rd.Pixels()
	assert.True(t, dark(img.RGBAAt(5, 10)))
	assert.True(t, dark(img.RGBAAt(4, 10)))
	assert.Equal(t, white, img.RGBAAt(10, 10))
	assert.Equal(t, white, img.RGBAAt(1, 1))

	rd.ResetDamage()
	err := sketch.Fill(ctx, 10.7, 10.2, "#0000FF", 32)
	require.NoError(t, err)
	saveToPngFile(t, "rect_fill", img)

	assert.Equal(t, blue, img.RGBAAt(10, 10))
	assert.Equal(t, blue, img.RGBAAt(6, 6))
	assert.Equal(t, blue, img.RGBAAt(13, 13))
	assert.True(t, dark(img.RGBAAt(5, 10)))
	assert.Equal(t, white, img.RGBAAt(1, 1))
	assert.Equal(t, white, img.RGBAAt(18, 18))
	assert.Equal(t, image.Rect(6, 6, 14, 14), rd.Damage())
}

func TestTranslucentRectangle(t *testing.T) {
	ctx, rd := newTestContext(10, 10)
	halfRed, err := sketch.ParseColor("#FF000080")
	require.NoError(t, err)
	ctx.Style.FillColor = halfRed
	sketch.DrawShape(ctx, 0, 0, 10, 10, sketch.Rectangle, sketch.FillShape)

	// red at half opacity over white is pink
	got := rd.Pixels().RGBAAt(5, 5)
	assert.Equal(t, uint8(0xff), got.A)
	assert.GreaterOrEqual(t, got.R, uint8(0xfd), "got %v", got)
	assert.InDelta(t, 0x7f, int(got.G), 2, "got %v", got)
	assert.InDelta(t, 0x7f, int(got.B), 2, "got %v", got)
}

func TestFillOutside(t *testing.T) {
	ctx, rd := newTestContext(8, 8)
	before := append([]byte(nil), rd.Pixels().Pix...)

	require.NoError(t, sketch.Fill(ctx, -1, 3, "#FF0000", 0))
	require.NoError(t, sketch.Fill(ctx, 3, 8, "#FF0000", 0))
	assert.Equal(t, before, rd.Pixels().Pix)
	assert.True(t, rd.Damage().Empty())

	err := sketch.Fill(ctx, 3, 3, "#FF00", 0)
	assert.ErrorIs(t, err, sketch.ErrInvalidColor)
	assert.Equal(t, before, rd.Pixels().Pix)
}

func TestCircle(t *testing.T) {
	ctx, rd := newTestContext(50, 50)
	sketch.DrawShape(ctx, 20, 20, 30, 20, sketch.Circle, sketch.FillShape)
	img := rd.Pixels()
	saveToPngFile(t, "circle", img)

	near(t, red, img.RGBAAt(20, 20))
	near(t, red, img.RGBAAt(26, 20))
	near(t, red, img.RGBAAt(20, 13))
	near(t, white, img.RGBAAt(32, 20))
	near(t, white, img.RGBAAt(28, 28))
	near(t, white, img.RGBAAt(0, 0))

	damage := rd.Damage()
	assert.True(t, damage.In(image.Rect(9, 9, 31, 31)), "damage %v", damage)
	assert.True(t, image.Rect(11, 11, 29, 29).In(damage), "damage %v", damage)
}

func TestEllipse(t *testing.T) {
	ctx, rd := newTestContext(50, 50)
	sketch.DrawShape(ctx, 20, 20, 5, 25, sketch.Ellipse, sketch.FillShape)
	img := rd.Pixels()
	saveToPngFile(t, "ellipse", img)

	near(t, red, img.RGBAAt(20, 20))
	near(t, red, img.RGBAAt(32, 20))
	near(t, red, img.RGBAAt(8, 20))
	near(t, red, img.RGBAAt(20, 23))
	near(t, white, img.RGBAAt(20, 27))
	near(t, white, img.RGBAAt(20, 12))
	near(t, white, img.RGBAAt(37, 20))
}

func TestFlatEllipse(t *testing.T) {
	ctx, rd := newTestContext(30, 20)
	sketch.DrawShape(ctx, 15, 10, 25, 10, sketch.Ellipse, sketch.StrokeShape)
	img := rd.Pixels()

	assert.True(t, dark(img.RGBAAt(15, 9)))
	assert.True(t, dark(img.RGBAAt(8, 10)))
	assert.Equal(t, white, img.RGBAAt(15, 5))
	assert.Equal(t, white, img.RGBAAt(2, 10))
}

func TestTriangleAndDiamond(t *testing.T) {
	ctx, rd := newTestContext(20, 20)
	sketch.DrawShape(ctx, 0, 0, 20, 20, sketch.Triangle, sketch.FillShape)
	img := rd.Pixels()
	saveToPngFile(t, "triangle", img)

	near(t, red, img.RGBAAt(10, 15))
	near(t, red, img.RGBAAt(2, 18))
	near(t, white, img.RGBAAt(1, 1))
	near(t, white, img.RGBAAt(18, 1))

	ctx, rd = newTestContext(20, 20)
	sketch.DrawShape(ctx, 20, 20, 0, 0, sketch.Diamond, sketch.FillShape)
	img = rd.Pixels()
	saveToPngFile(t, "diamond", img)

	near(t, red, img.RGBAAt(10, 10))
	near(t, red, img.RGBAAt(3, 9))
	near(t, white, img.RGBAAt(1, 1))
	near(t, white, img.RGBAAt(18, 18))
	near(t, white, img.RGBAAt(1, 18))
}

func TestLine(t *testing.T) {
	ctx, rd := newTestContext(20, 20)
	ctx.Style.Cap = sketch.ButtCap
	sketch.DrawLine(ctx, 2, 10, 18, 10)
	img := rd.Pixels()

	assert.True(t, dark(img.RGBAAt(10, 9)))
	assert.True(t, dark(img.RGBAAt(10, 10)))
	assert.Equal(t, white, img.RGBAAt(10, 12))
	assert.Equal(t, white, img.RGBAAt(10, 7))
	assert.Equal(t, white, img.RGBAAt(0, 10))
	assert.Equal(t, white, img.RGBAAt(19, 10))
}

func TestCurve(t *testing.T) {
	ctx, rd := newTestContext(20, 20)
	sketch.DrawCurve(ctx, 0, 18, 20, 18, 10, 2)
	img := rd.Pixels()
	saveToPngFile(t, "curve", img)

	// the curve passes through (10, 10) with an horizontal tangent
	assert.True(t, dark(img.RGBAAt(10, 9)) || dark(img.RGBAAt(10, 10)))
	assert.Equal(t, white, img.RGBAAt(10, 3))
	assert.Equal(t, white, img.RGBAAt(10, 16))
}

func TestPencil(t *testing.T) {
	ctx, rd := newTestContext(30, 30)
	ctx.Style.LineWidth = 6
	sketch.Pencil(ctx, 5, 15, 25, 15)
	img := rd.Pixels()

	near(t, black, img.RGBAAt(15, 15))
	near(t, black, img.RGBAAt(15, 13))
	// the dot caps the start of the stroke
	near(t, black, img.RGBAAt(3, 15))
	near(t, white, img.RGBAAt(15, 5))
}

func TestEraser(t *testing.T) {
	rd := NewCanvas(30, 30, red)
	ctx := sketch.NewContext(rd)
	ctx.Style.LineWidth = 4
	ctx.Style.StrokeColor = black // ignored when erasing
	ctx.Style.Composite = sketch.DestinationOut

	err := sketch.Apply(ctx, sketch.Action{Tool: sketch.ToolEraser, X1: 5, Y1: 15, X2: 25, Y2: 15})
	require.NoError(t, err)
	img := rd.Pixels()
	saveToPngFile(t, "eraser", img)

	near(t, color.RGBA{}, img.RGBAAt(15, 15))
	near(t, color.RGBA{}, img.RGBAAt(15, 14))
	near(t, red, img.RGBAAt(15, 5))
	near(t, red, img.RGBAAt(15, 25))
	for _, v := range rd.mask.Pix {
		if !assert.Zero(t, v, "mask should be reset") {
			break
		}
	}

	// back to normal painting
	ctx.Style.Composite = sketch.SourceOver
	sketch.Pencil(ctx, 5, 15, 25, 15)
	near(t, black, img.RGBAAt(15, 15))
}

func TestEraserWithBackground(t *testing.T) {
	rd := NewCanvas(30, 30, white)
	ctx := sketch.NewContext(rd)
	ctx.Style.LineWidth = 4
	sketch.DrawShape(ctx, 0, 0, 30, 30, sketch.Rectangle, sketch.FillShape)
	require.Equal(t, black, rd.Pixels().RGBAAt(15, 15))

	ctx.Style.StrokeColor = white
	err := sketch.Apply(ctx, sketch.Action{Tool: sketch.ToolEraser, X1: 5, Y1: 15, X2: 25, Y2: 15})
	require.NoError(t, err)
	near(t, white, rd.Pixels().RGBAAt(15, 15))
	assert.Equal(t, black, rd.Pixels().RGBAAt(15, 5))
}

func TestOffsetImage(t *testing.T) {
	base := image.NewRGBA(image.Rect(0, 0, 40, 40))
	sub := base.SubImage(image.Rect(10, 10, 30, 30)).(*image.RGBA)
	rd := NewRenderer(sub)
	ctx := sketch.NewContext(rd)
	ctx.Style.FillColor = red

	sketch.DrawShape(ctx, 0, 0, 5, 5, sketch.Rectangle, sketch.FillShape)
	assert.Equal(t, red, base.RGBAAt(12, 12))
	assert.Equal(t, color.RGBA{}, base.RGBAAt(2, 2))
	assert.Equal(t, image.Rect(10, 10, 15, 15), rd.Damage())

	require.NoError(t, sketch.Fill(ctx, 10, 10, "blue", 0))
	assert.Equal(t, blue, base.RGBAAt(20, 20))
	assert.Equal(t, red, base.RGBAAt(12, 12))
	assert.Equal(t, color.RGBA{}, base.RGBAAt(5, 5))
}
