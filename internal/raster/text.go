package raster

import (
	"fmt"
	"image"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// TextScale maps brush width to font size in points.
const TextScale = 10

type fontCache struct {
	once  sync.Once
	font  *opentype.Font
	err   error
	faces sync.Map // map[float64]font.Face
}

func newFontCache() *fontCache { return &fontCache{} }

func (c *fontCache) face(size float64) (font.Face, error) {
	c.once.Do(func() {
		c.font, c.err = opentype.Parse(goregular.TTF)
	})
	if c.err != nil {
		return nil, fmt.Errorf("text font: %w", c.err)
	}
	if f, ok := c.faces.Load(size); ok {
		return f.(font.Face), nil
	}
	f, err := opentype.NewFace(c.font, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, err
	}
	c.faces.Store(size, f)
	return f, nil
}

// TextSize is the font size used for a brush.
func TextSize(st Style) float64 {
	return float64(max(1, int(st.width())*TextScale))
}

// MeasureText returns the box covered by text drawn with its anchor at the
// origin. The baseline sits size pixels below the anchor.
func (r *Rasterizer) MeasureText(text string, st Style) (image.Rectangle, error) {
	size := TextSize(st)
	face, err := r.fonts.face(size)
	if err != nil {
		return image.Rectangle{}, err
	}
	adv := (&font.Drawer{Face: face}).MeasureString(text).Ceil()
	m := face.Metrics()
	base := int(size)
	top := min(0, base-m.Ascent.Ceil())
	return image.Rect(0, top, max(adv, 1), base+m.Descent.Ceil()), nil
}

// Text draws text with its anchor at p, growing the surface to fit.
func (r *Rasterizer) Text(surf Surface, p image.Point, text string, st Style) (image.Point, error) {
	if text == "" {
		return image.Point{}, ErrDegenerate
	}
	box, err := r.MeasureText(text, st)
	if err != nil {
		return image.Point{}, err
	}
	box = box.Add(p)
	moved := surf.EnsurePoints(box.Min, box.Max.Sub(image.Pt(1, 1)))
	shift := moved[0].Sub(box.Min)
	p = p.Add(shift)

	face, err := r.fonts.face(TextSize(st))
	if err != nil {
		return shift, err
	}
	d := &font.Drawer{
		Dst:  surf.Image(),
		Src:  image.NewUniform(st.color()),
		Face: face,
		Dot:  fixed.P(p.X, p.Y+int(TextSize(st))),
	}
	d.DrawString(text)
	surf.MarkDirty()
	return shift, nil
}
