package eraser

import (
	"image"
	"math"

	"github.com/esimov/eraser/utils"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f32"
	"golang.org/x/image/vector"
)

// kappa is the distance of the cubic Bézier control points
// approximating a quarter circle of unit radius.
const kappa = 0.5522847498

// Brush describes the round capped, round joined stroke used for erasing.
type Brush struct {
	Width float32
}

// Mask rasterizes the stroke segment going from p0 to p1 into an alpha mask.
// The returned rectangle locates the mask in the coordinate space of the points.
// A zero length segment produces a round dot.
func (b Brush) Mask(p0, p1 f32.Vec2) (*image.Alpha, image.Rectangle) {
	r := b.Width / 2
	if r <= 0 {
		return nil, image.Rectangle{}
	}

	rect := image.Rect(
		int(math.Floor(float64(utils.Min(p0[0], p1[0])-r))),
		int(math.Floor(float64(utils.Min(p0[1], p1[1])-r))),
		int(math.Ceil(float64(utils.Max(p0[0], p1[0])+r))),
		int(math.Ceil(float64(utils.Max(p0[1], p1[1])+r))),
	)
	origin := f32.Vec2{float32(rect.Min.X), float32(rect.Min.Y)}
	a := sub(p0, origin)
	c := sub(p1, origin)

	// Direction of the segment scaled to the brush radius and its normal.
	dir := f32.Vec2{1, 0}
	if dx, dy := c[0]-a[0], c[1]-a[1]; dx != 0 || dy != 0 {
		l := float32(math.Hypot(float64(dx), float64(dy)))
		dir = f32.Vec2{dx / l, dy / l}
	}
	d := scale(dir, r)
	n := f32.Vec2{-d[1], d[0]}

	z := vector.NewRasterizer(rect.Dx(), rect.Dy())
	z.DrawOp = draw.Src

	// The outline is a capsule: two half circles joined by the segment sides.
	start := add(a, n)
	z.MoveTo(start[0], start[1])
	end := add(c, n)
	z.LineTo(end[0], end[1])
	arc(z, c, n, d)
	arc(z, c, d, neg(n))
	end = sub(a, n)
	z.LineTo(end[0], end[1])
	arc(z, a, neg(n), neg(d))
	arc(z, a, neg(d), n)
	z.ClosePath()

	mask := image.NewAlpha(image.Rect(0, 0, rect.Dx(), rect.Dy()))
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})

	return mask, rect
}

// arc appends the quarter circle centered in c going from c+u to c+v.
func arc(z *vector.Rasterizer, c, u, v f32.Vec2) {
	b0 := add(add(c, u), scale(v, kappa))
	b1 := add(add(c, v), scale(u, kappa))
	p := add(c, v)
	z.CubeTo(b0[0], b0[1], b1[0], b1[1], p[0], p[1])
}

func add(p, q f32.Vec2) f32.Vec2 { return f32.Vec2{p[0] + q[0], p[1] + q[1]} }

func sub(p, q f32.Vec2) f32.Vec2 { return f32.Vec2{p[0] - q[0], p[1] - q[1]} }

func neg(p f32.Vec2) f32.Vec2 { return f32.Vec2{-p[0], -p[1]} }

func scale(p f32.Vec2, s float32) f32.Vec2 { return f32.Vec2{p[0] * s, p[1] * s} }
