package renderer

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"
)

// ImageSurface draws into an in-memory RGBA image. Headless runs use it to
// export snapshots.
type ImageSurface struct {
	img        *image.RGBA
	background color.RGBA
	fill       color.RGBA
	alpha      float64
}

// NewImageSurface creates a surface of the given pixel size.
func NewImageSurface(width, height int, background color.RGBA) *ImageSurface {
	return &ImageSurface{
		img:        image.NewRGBA(image.Rect(0, 0, width, height)),
		background: background,
		alpha:      1,
	}
}

// Image returns the backing image.
func (s *ImageSurface) Image() *image.RGBA {
	return s.img
}

// SetBackground sets the color Clear fills with.
func (s *ImageSurface) SetBackground(c color.RGBA) {
	s.background = c
}

// Resize replaces the backing image with one of the new size.
func (s *ImageSurface) Resize(width, height int) {
	s.img = image.NewRGBA(image.Rect(0, 0, width, height))
}

// Ready reports whether the surface has a non-empty image.
func (s *ImageSurface) Ready() bool {
	return s.img != nil && !s.img.Rect.Empty()
}

// Clear fills the area with the background color.
func (s *ImageSurface) Clear(width, height float64) {
	r := image.Rect(0, 0, int(math.Ceil(width)), int(math.Ceil(height))).Intersect(s.img.Rect)
	draw.Draw(s.img, r, image.NewUniform(s.background), image.Point{}, draw.Src)
}

// SetColor sets the fill color.
func (s *ImageSurface) SetColor(c color.RGBA) {
	s.fill = c
}

// SetAlpha sets the global fill opacity.
func (s *ImageSurface) SetAlpha(a float64) {
	s.alpha = a
}

func (s *ImageSurface) source() *image.Uniform {
	c := color.NRGBA{R: s.fill.R, G: s.fill.G, B: s.fill.B, A: uint8(math.Round(float64(s.fill.A) * s.alpha))}
	return image.NewUniform(c)
}

// FillRects fills every rect with the current color.
func (s *ImageSurface) FillRects(rects []Rect) {
	src := s.source()
	for _, r := range rects {
		x0, y0 := int(r.X), int(r.Y)
		dst := image.Rect(x0, y0, x0+int(r.W), y0+int(r.H))
		draw.Draw(s.img, dst, src, image.Point{}, draw.Over)
	}
}

// FillCircle fills a circle with the current color and alpha.
func (s *ImageSurface) FillCircle(cx, cy, r float64) {
	if r <= 0 {
		return
	}
	m := &circleMask{cx: cx, cy: cy, r: r}
	draw.DrawMask(s.img, m.Bounds(), s.source(), image.Point{}, m, m.Bounds().Min, draw.Over)
}

// WritePNG encodes the current image as PNG.
func (s *ImageSurface) WritePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encoding png: %w", err)
	}
	return nil
}

// circleMask is an alpha mask that is opaque inside the circle.
type circleMask struct {
	cx, cy, r float64
}

func (c *circleMask) ColorModel() color.Model {
	return color.AlphaModel
}

func (c *circleMask) Bounds() image.Rectangle {
	return image.Rect(
		int(math.Floor(c.cx-c.r)), int(math.Floor(c.cy-c.r)),
		int(math.Ceil(c.cx+c.r))+1, int(math.Ceil(c.cy+c.r))+1,
	)
}

func (c *circleMask) At(x, y int) color.Color {
	dx := float64(x) + 0.5 - c.cx
	dy := float64(y) + 0.5 - c.cy
	if dx*dx+dy*dy <= c.r*c.r {
		return color.Alpha{A: 255}
	}
	return color.Alpha{}
}
