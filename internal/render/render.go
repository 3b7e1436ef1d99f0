// Package render draws the bounds of accessibility nodes to an image so a
// tree update or a live adapter tree can be inspected visually.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/mj1618/a11ybridge/internal/model"
)

// ErrNoBounds is returned when none of the elements has bounds.
var ErrNoBounds = errors.New("no element has bounds")

// maxSide caps the canvas so a stray coordinate cannot allocate gigabytes.
const maxSide = 8192

// Options control the rendered image.
type Options struct {
	// Scale converts node coordinates to pixels.
	Scale float64
	// Padding is the empty margin around the drawn nodes, in pixels.
	Padding int
	// Labels draws "[id] label" inside each box.
	Labels bool
}

var (
	background   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	boxColor     = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	focusColor   = color.RGBA{R: 0, G: 120, B: 255, A: 255}
	textColor    = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	outlineColor = color.RGBA{R: 0, G: 0, B: 0, A: 200}
)

// Draw renders every element that has bounds. The canvas covers the union
// of those bounds plus the padding; the focused element is drawn last in a
// distinct color.
func Draw(elements []model.Element, opts Options) (*image.RGBA, error) {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Padding < 0 {
		opts.Padding = 0
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	var drawn []model.Element
	for _, el := range elements {
		if el.Bounds == nil {
			continue
		}
		b := normalize(*el.Bounds)
		minX, minY = math.Min(minX, b[0]), math.Min(minY, b[1])
		maxX, maxY = math.Max(maxX, b[2]), math.Max(maxY, b[3])
		drawn = append(drawn, el)
	}
	if len(drawn) == 0 {
		return nil, ErrNoBounds
	}

	// Bounds are arbitrary floats, so size the canvas before converting to
	// int. The negated comparison also rejects NaN.
	fw := math.Ceil((maxX-minX)*opts.Scale) + 2*float64(opts.Padding) + 1
	fh := math.Ceil((maxY-minY)*opts.Scale) + 2*float64(opts.Padding) + 1
	if !(fw <= maxSide) || !(fh <= maxSide) {
		return nil, fmt.Errorf("image would be %.0fx%.0f, limit is %dx%d", fw, fh, maxSide, maxSide)
	}
	w, h := int(fw), int(fh)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	toPixel := func(x, y float64) (int, int) {
		return int(math.Round((x-minX)*opts.Scale)) + opts.Padding,
			int(math.Round((y-minY)*opts.Scale)) + opts.Padding
	}

	var focused *model.Element
	for i := range drawn {
		if drawn[i].Focused {
			focused = &drawn[i]
			continue
		}
		drawElement(img, drawn[i], toPixel, boxColor, opts.Labels)
	}
	if focused != nil {
		drawElement(img, *focused, toPixel, focusColor, opts.Labels)
	}
	return img, nil
}

// WritePNG renders elements and encodes the result as PNG to w.
func WritePNG(w io.Writer, elements []model.Element, opts Options) error {
	img, err := Draw(elements, opts)
	if err != nil {
		return err
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

// Label is the text drawn for el.
func Label(el model.Element) string {
	if el.Label == "" {
		return fmt.Sprintf("[%d]", el.ID)
	}
	return fmt.Sprintf("[%d] %s", el.ID, el.Label)
}

// normalize orders the corners so x0 <= x1 and y0 <= y1.
func normalize(b [4]float64) [4]float64 {
	if b[0] > b[2] {
		b[0], b[2] = b[2], b[0]
	}
	if b[1] > b[3] {
		b[1], b[3] = b[3], b[1]
	}
	return b
}

func drawElement(img *image.RGBA, el model.Element, toPixel func(x, y float64) (int, int), c color.Color, labels bool) {
	b := normalize(*el.Bounds)
	x1, y1 := toPixel(b[0], b[1])
	x2, y2 := toPixel(b[2], b[3])
	drawRectangle(img, x1, y1, x2+1, y2+1, c)
	if labels {
		drawTextWithOutline(img, Label(el), (x1+x2)/2, (y1+y2)/2, textColor, outlineColor)
	}
}

func isWithinBounds(bounds image.Rectangle, x, y int) bool {
	return x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y
}

// drawRectangle draws the outline of [x1,x2) x [y1,y2), clamped to img.
func drawRectangle(img *image.RGBA, x1, y1, x2, y2 int, c color.Color) {
	bounds := img.Bounds()
	x1, y1 = max(x1, bounds.Min.X), max(y1, bounds.Min.Y)
	x2, y2 = min(x2, bounds.Max.X), min(y2, bounds.Max.Y)
	if x2 <= x1 || y2 <= y1 {
		return
	}
	for x := x1; x < x2; x++ {
		if isWithinBounds(bounds, x, y1) {
			img.Set(x, y1, c)
		}
		if isWithinBounds(bounds, x, y2-1) {
			img.Set(x, y2-1, c)
		}
	}
	for y := y1; y < y2; y++ {
		if isWithinBounds(bounds, x1, y) {
			img.Set(x1, y, c)
		}
		if isWithinBounds(bounds, x2-1, y) {
			img.Set(x2-1, y, c)
		}
	}
}

// drawTextWithOutline centers text on (x, y) with a one-pixel outline.
func drawTextWithOutline(img *image.RGBA, text string, x, y int, textColor, outlineColor color.Color) {
	face := basicfont.Face7x13
	textWidth := font.MeasureString(face, text).Round()
	offsetX := x - textWidth/2
	offsetY := y + face.Ascent/2

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			drawString(img, text, offsetX+dx, offsetY+dy, outlineColor)
		}
	}
	drawString(img, text, offsetX, offsetY, textColor)
}

func drawString(img *image.RGBA, text string, x, y int, c color.Color) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}
