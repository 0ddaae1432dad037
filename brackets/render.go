package brackets

import (
	"bytes"
	"fmt"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const renderDPI = 92.0

// Palette holds the colours used when drawing a bracket.
type Palette struct {
	Background drawing.Color
	Outline    drawing.Color
	Text       drawing.Color
	Winner     drawing.Color
	Title      drawing.Color
}

// DefaultPalette is the dark theme used for chat embeds.
var DefaultPalette = Palette{
	Background: drawing.Color{R: 0x2C, G: 0x2F, B: 0x33, A: 0xFF},
	Outline:    drawing.Color{R: 0x72, G: 0x89, B: 0xDA, A: 0xFF},
	Text:       drawing.Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
	Winner:     drawing.Color{R: 0xF1, G: 0xC4, B: 0x0F, A: 0xFF},
	Title:      drawing.Color{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF},
}

type Renderer struct {
	Palette       Palette
	FontSize      float64
	TitleFontSize float64
}

func NewRenderer() *Renderer {
	return &Renderer{
		Palette:       DefaultPalette,
		FontSize:      10,
		TitleFontSize: 13,
	}
}

// RenderPNG draws p with the default renderer.
func RenderPNG(p *Plan) ([]byte, error) {
	return NewRenderer().Render(p)
}

// Render draws a single elimination plan and returns the encoded PNG.
// Other plan kinds fail with ErrUnsupportedRenderTarget.
func (rd *Renderer) Render(p *Plan) ([]byte, error) {
	layout, err := ComputeLayout(p)
	if err != nil {
		return nil, err
	}

	font, err := chart.GetDefaultFont()
	if err != nil {
		return nil, fmt.Errorf("failed to load bracket font: %w", err)
	}
	r, err := chart.PNG(layout.Width, layout.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to create %dx%d canvas: %w", layout.Width, layout.Height, err)
	}
	r.SetDPI(renderDPI)
	r.SetFont(font)

	rd.fillRect(r, 0, 0, layout.Width, layout.Height, rd.Palette.Background)

	r.SetFontSize(rd.TitleFontSize)
	r.SetFontColor(rd.Palette.Title)
	for _, c := range layout.Columns {
		r.Text(c.Title, c.X, c.Y+r.MeasureText(c.Title).Height())
	}

	r.SetFontSize(rd.FontSize)
	for _, b := range layout.Boxes {
		rd.drawBox(r, b)
	}

	r.SetStrokeColor(rd.Palette.Outline)
	r.SetStrokeWidth(2)
	for _, s := range layout.Lines {
		r.MoveTo(s.X1, s.Y1)
		r.LineTo(s.X2, s.Y2)
		r.Stroke()
	}

	var buf bytes.Buffer
	if err := r.Save(&buf); err != nil {
		return nil, fmt.Errorf("failed to encode bracket image: %w", err)
	}
	return buf.Bytes(), nil
}

func (rd *Renderer) drawBox(r chart.Renderer, b MatchBox) {
	r.SetStrokeColor(rd.Palette.Outline)
	r.SetStrokeWidth(2)
	r.MoveTo(b.X, b.Y)
	r.LineTo(b.X+b.Width, b.Y)
	r.LineTo(b.X+b.Width, b.Y+b.Height)
	r.LineTo(b.X, b.Y+b.Height)
	r.Close()
	r.Stroke()

	r.SetStrokeWidth(1)
	r.MoveTo(b.X, b.MidY())
	r.LineTo(b.X+b.Width, b.MidY())
	r.Stroke()

	const padding = 10
	maxWidth := b.Width - 2*padding
	half := b.Height / 2
	for slot, name := range []string{b.Top, b.Bottom} {
		text := fitText(r, name, maxWidth)
		color := rd.Palette.Text
		if b.Winner == slot+1 {
			color = rd.Palette.Winner
		}
		r.SetFontColor(color)
		height := r.MeasureText(text).Height()
		baseline := b.Y + slot*half + (half+height)/2
		r.Text(text, b.X+padding, baseline)
	}
}

func (rd *Renderer) fillRect(r chart.Renderer, x, y, w, h int, c drawing.Color) {
	r.SetFillColor(c)
	r.SetStrokeColor(c)
	r.MoveTo(x, y)
	r.LineTo(x+w, y)
	r.LineTo(x+w, y+h)
	r.LineTo(x, y+h)
	r.Close()
	r.Fill()
}

// fitText shortens s with an ellipsis until it fits in maxWidth pixels.
func fitText(r chart.Renderer, s string, maxWidth int) string {
	if r.MeasureText(s).Width() <= maxWidth {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if r.MeasureText(candidate).Width() <= maxWidth {
			return candidate
		}
	}
	return ""
}
