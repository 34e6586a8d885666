package eraser

import (
	"image"

	"github.com/disintegration/imaging"
	"github.com/esimov/eraser/imop"
	"github.com/esimov/eraser/utils"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f32"
)

// Surface is the pixel addressable drawing surface the widget is rendered on.
// It bundles the pixel buffer with its drawing context: the composite
// operation, the current stroke path and the pointer listeners.
type Surface struct {
	id      string
	offset  image.Point
	img     *image.NRGBA
	comp    *imop.Composite
	version int

	// last is the current point of the stroke path.
	last    f32.Vec2
	hasLast bool

	// transparent caches the number of fully transparent pixels.
	transparent int
	counted     bool

	listeners listeners[func(f32.Vec2)]
}

// NewSurface creates an empty, zero sized drawing surface.
func NewSurface(id string) *Surface {
	return &Surface{
		id:   id,
		img:  image.NewNRGBA(image.Rectangle{}),
		comp: imop.InitOp(),
	}
}

// ID returns the surface identifier.
func (s *Surface) ID() string { return s.id }

// Size returns the surface dimensions.
func (s *Surface) Size() image.Point { return s.img.Rect.Size() }

// Offset returns the position of the surface top-left corner inside the viewport.
func (s *Surface) Offset() image.Point { return s.offset }

// SetOffset moves the surface inside the viewport.
func (s *Surface) SetOffset(p image.Point) { s.offset = p }

// Image returns the pixel buffer. The returned image must not be modified.
func (s *Surface) Image() *image.NRGBA { return s.img }

// Version is incremented on every pixel change, so renderers
// can tell whether the buffer needs to be uploaded again.
func (s *Surface) Version() int { return s.version }

// OnPointerMove registers a pointer move listener and returns the function removing it.
func (s *Surface) OnPointerMove(fn func(p f32.Vec2)) (remove func()) {
	return s.listeners.add(fn)
}

// DispatchPointerMove notifies the pointer move listeners.
// The position is expressed in viewport coordinates.
func (s *Surface) DispatchPointerMove(p f32.Vec2) {
	s.listeners.each(func(fn func(f32.Vec2)) { fn(p) })
}

// ToLocal translates a viewport position into surface coordinates.
func (s *Surface) ToLocal(p f32.Vec2) f32.Vec2 {
	return f32.Vec2{p[0] - float32(s.offset.X), p[1] - float32(s.offset.Y)}
}

// Resize changes the surface dimensions. The pixel buffer is captured
// before and restored at the origin after resizing, so the content is kept
// at the top-left corner and the newly exposed area is transparent.
// The stroke path is reset.
func (s *Surface) Resize(size image.Point) {
	size.X, size.Y = utils.Max(0, size.X), utils.Max(0, size.Y)

	saved := s.img
	s.img = image.NewNRGBA(image.Rectangle{Max: size})
	draw.Draw(s.img, saved.Rect, saved, image.Point{}, draw.Src)

	s.hasLast = false
	s.changed()
}

// Clear makes every pixel fully transparent.
func (s *Surface) Clear() {
	for i := range s.img.Pix {
		s.img.Pix[i] = 0
	}
	s.transparent, s.counted = len(s.img.Pix)/4, true
	s.version++
}

// DrawImage draws img stretched over the whole surface.
func (s *Surface) DrawImage(img image.Image) {
	s.DrawImageAlpha(img, 1)
}

// DrawImageAlpha draws img stretched over the whole surface using the
// source-over operation and the provided global alpha.
func (s *Surface) DrawImageAlpha(img image.Image, alpha float64) {
	size := s.Size()
	if img == nil || size.X == 0 || size.Y == 0 {
		return
	}

	var src *image.NRGBA
	if img.Bounds().Size() == size {
		src = imgToNRGBA(img)
	} else {
		src = imaging.Resize(img, size.X, size.Y, imaging.Linear)
	}

	s.comp.Set(imop.SrcOver)
	s.comp.SetAlpha(alpha)
	s.comp.Draw(s.img, s.img.Rect, src, src.Rect.Min, nil, image.Point{})
	s.comp.SetAlpha(1)

	s.changed()
}

// Erase traces the stroke path from the previous point to p with the
// destination-out operation, so the covered pixels lose their opacity.
// The first point of a path erases a round dot.
// It returns the rectangle of the surface touched by the stroke.
func (s *Surface) Erase(p f32.Vec2, b Brush) image.Rectangle {
	from := p
	if s.hasLast {
		from = s.last
	}
	s.last, s.hasLast = p, true

	mask, rect := b.Mask(from, p)
	if mask == nil {
		return image.Rectangle{}
	}
	dirty := rect.Intersect(s.img.Rect)
	if dirty.Empty() {
		return dirty
	}

	before := 0
	if s.counted {
		before = countTransparent(s.img, dirty)
	}

	s.comp.Set(imop.DstOut)
	s.comp.Draw(s.img, dirty, image.Opaque, image.Point{}, mask, dirty.Min.Sub(rect.Min))
	s.comp.Set(imop.SrcOver)

	if s.counted {
		s.transparent += countTransparent(s.img, dirty) - before
	}
	s.version++

	return dirty
}

// Snapshot returns a static copy of the current pixel buffer.
func (s *Surface) Snapshot() *image.NRGBA {
	snap := image.NewNRGBA(s.img.Rect)
	copy(snap.Pix, s.img.Pix)
	return snap
}

// TransparentPixels returns the number of fully transparent pixels.
func (s *Surface) TransparentPixels() int {
	if !s.counted {
		s.transparent = countTransparent(s.img, s.img.Rect)
		s.counted = true
	}
	return s.transparent
}

// ErasedPercentage returns the share of fully transparent pixels in the [0, 100] range.
// A zero sized surface reports zero.
func (s *Surface) ErasedPercentage() float64 {
	size := s.Size()
	total := size.X * size.Y
	if total == 0 {
		return 0
	}
	return float64(s.TransparentPixels()) / float64(total) * 100
}

// changed invalidates the transparent pixels cache after a whole surface operation.
func (s *Surface) changed() {
	s.counted = false
	s.version++
}

// countTransparent counts the pixels inside r whose alpha is exactly zero.
// Partially transparent pixels are not counted.
func countTransparent(img *image.NRGBA, r image.Rectangle) int {
	r = r.Intersect(img.Rect)

	var n int
	for y := r.Min.Y; y < r.Max.Y; y++ {
		i := img.PixOffset(r.Min.X, y)
		for x := r.Min.X; x < r.Max.X; x, i = x+1, i+4 {
			if img.Pix[i+3] == 0 {
				n++
			}
		}
	}
	return n
}
