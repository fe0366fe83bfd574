// Package fontatlas bakes an ASCII glyph set into a single alpha image and
// lays out text as textured quads. It has no GL dependency; the renderer
// uploads Atlas.Image as a texture.
package fontatlas

import (
	"errors"
	"fmt"
	"image"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	firstRune = rune(32)
	lastRune  = rune(126)

	atlasWidth = 512
	padding    = 1

	// FloatsPerVertex is x, y, u, v.
	FloatsPerVertex = 4
	// VerticesPerGlyph is two triangles.
	VerticesPerGlyph = 6
)

// Glyph describes a single character's placement and metrics within the atlas
type Glyph struct {
	// Pixel coordinates of the glyph in the atlas (top-left origin)
	AtlasX, AtlasY int
	// Glyph bitmap size in pixels
	Width, Height int
	// Offset from the pen position to the bitmap's top-left corner
	BearingX, BearingY int
	// Advance in whole pixels
	Advance int
}

// Atlas holds the baked bitmap and per-glyph metadata.
type Atlas struct {
	Image  *image.Alpha
	W, H   int
	Glyphs map[rune]Glyph
	// LineHeight is the face's recommended distance between baselines.
	LineHeight int
}

// Default bakes the Go Regular font at px pixels.
func Default(px int) (*Atlas, error) {
	return Bake(goregular.TTF, px)
}

// Bake parses a TrueType/OpenType font and renders the printable ASCII range
// into an atlas whose height is rounded up to a power of two.
func Bake(ttf []byte, px int) (*Atlas, error) {
	if px <= 0 {
		return nil, fmt.Errorf("font size must be positive, got %d", px)
	}
	f, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: float64(px), DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer func() { _ = face.Close() }()

	type baked struct {
		r       rune
		dr      image.Rectangle
		mask    image.Image
		maskp   image.Point
		advance fixed.Int26_6
	}

	var glyphs []baked
	for r := firstRune; r <= lastRune; r++ {
		dr, mask, maskp, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, baked{r, dr, mask, maskp, advance})
	}
	if len(glyphs) == 0 {
		return nil, errors.New("font has no printable ASCII glyphs")
	}

	// First pass: pack rows to find the required height.
	places := make([]image.Point, len(glyphs))
	x, y, rowH := 0, 0, 0
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if w == 0 || h == 0 {
			continue
		}
		if x+w+padding > atlasWidth {
			x = 0
			y += rowH + padding
			rowH = 0
		}
		places[i] = image.Pt(x, y)
		x += w + padding
		rowH = max(rowH, h)
	}
	atlasH := nextPowerOfTwo(y + rowH)

	atlas := &Atlas{
		Image:      image.NewAlpha(image.Rect(0, 0, atlasWidth, atlasH)),
		W:          atlasWidth,
		H:          atlasH,
		Glyphs:     make(map[rune]Glyph, len(glyphs)),
		LineHeight: face.Metrics().Height.Ceil(),
	}

	// Second pass: copy each mask into place and record metrics.
	for i, g := range glyphs {
		w, h := g.dr.Dx(), g.dr.Dy()
		if w > 0 && h > 0 {
			dst := image.Rectangle{Min: places[i], Max: places[i].Add(image.Pt(w, h))}
			draw.Draw(atlas.Image, dst, g.mask, g.maskp, draw.Src)
		}
		atlas.Glyphs[g.r] = Glyph{
			AtlasX:   places[i].X,
			AtlasY:   places[i].Y,
			Width:    w,
			Height:   h,
			BearingX: g.dr.Min.X,
			BearingY: g.dr.Min.Y,
			Advance:  g.advance.Round(),
		}
	}
	return atlas, nil
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

func (a *Atlas) glyph(r rune) (Glyph, bool) {
	if g, ok := a.Glyphs[r]; ok {
		return g, true
	}
	g, ok := a.Glyphs['?']
	return g, ok
}

// Measure returns the width and tallest glyph height of text at scale.
// Runes outside the atlas measure as '?'.
func (a *Atlas) Measure(text string, scale float32) (w, h float32) {
	for _, r := range text {
		g, ok := a.glyph(r)
		if !ok {
			continue
		}
		w += float32(g.Advance) * scale
		h = max(h, float32(g.Height)*scale)
	}
	return w, h
}

// Quads lays text out on a baseline starting at (x, y) in a y-down pixel
// space and returns triangle vertices with normalized atlas coordinates.
// Blank glyphs only advance the pen.
func (a *Atlas) Quads(text string, x, y, scale float32) []float32 {
	out := make([]float32, 0, len(text)*VerticesPerGlyph*FloatsPerVertex)
	for _, r := range text {
		g, ok := a.glyph(r)
		if !ok {
			continue
		}
		if g.Width > 0 && g.Height > 0 {
			out = append(out, a.quad(g, x, y, scale)...)
		}
		x += float32(g.Advance) * scale
	}
	return out
}

func (a *Atlas) quad(g Glyph, x, y, scale float32) []float32 {
	x0 := x + float32(g.BearingX)*scale
	y0 := y + float32(g.BearingY)*scale
	x1 := x0 + float32(g.Width)*scale
	y1 := y0 + float32(g.Height)*scale

	u0 := float32(g.AtlasX) / float32(a.W)
	v0 := float32(g.AtlasY) / float32(a.H)
	u1 := float32(g.AtlasX+g.Width) / float32(a.W)
	v1 := float32(g.AtlasY+g.Height) / float32(a.H)

	return []float32{
		x0, y1, u0, v1,
		x0, y0, u0, v0,
		x1, y0, u1, v0,

		x0, y1, u0, v1,
		x1, y0, u1, v0,
		x1, y1, u1, v1,
	}
}
