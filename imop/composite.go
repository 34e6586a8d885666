// Package imop implements the Porter-Duff composition operations
// used for mixing a graphic element with its backdrop.
// Porter and Duff presented in their paper 12 different composition operation,
// but the image/draw core package implements only the source-over-destination and source.
// This package is aimed to overcome the missing composite operations,
// most notably the destination-out operation used to erase pixels.
package imop

import (
	"image"
	"image/color"

	"github.com/esimov/eraser/utils"
)

const (
	Clear   = "clear"
	Copy    = "copy"
	Dst     = "dst"
	SrcOver = "src_over"
	DstOver = "dst_over"
	SrcIn   = "src_in"
	DstIn   = "dst_in"
	SrcOut  = "src_out"
	DstOut  = "dst_out"
	SrcAtop = "src_atop"
	DstAtop = "dst_atop"
	Xor     = "xor"
)

// factors returns the fraction of the source and of the backdrop
// contributing to the result, given the source and backdrop alpha.
type factors func(as, ab float64) (fa, fb float64)

var operations = map[string]factors{
	Clear:   func(as, ab float64) (float64, float64) { return 0, 0 },
	Copy:    func(as, ab float64) (float64, float64) { return 1, 0 },
	Dst:     func(as, ab float64) (float64, float64) { return 0, 1 },
	SrcOver: func(as, ab float64) (float64, float64) { return 1, 1 - as },
	DstOver: func(as, ab float64) (float64, float64) { return 1 - ab, 1 },
	SrcIn:   func(as, ab float64) (float64, float64) { return ab, 0 },
	DstIn:   func(as, ab float64) (float64, float64) { return 0, as },
	SrcOut:  func(as, ab float64) (float64, float64) { return 1 - ab, 0 },
	DstOut:  func(as, ab float64) (float64, float64) { return 0, 1 - as },
	SrcAtop: func(as, ab float64) (float64, float64) { return ab, 1 - as },
	DstAtop: func(as, ab float64) (float64, float64) { return 1 - ab, as },
	Xor:     func(as, ab float64) (float64, float64) { return 1 - ab, 1 - as },
}

// Composite holds the currently active composition operation
// and the global alpha applied to every source pixel.
type Composite struct {
	current string
	alpha   float64
}

// InitOp returns a Composite initialized with the source-over operation
// and a fully opaque global alpha.
func InitOp() *Composite {
	return &Composite{
		current: SrcOver,
		alpha:   1,
	}
}

// Set activates one of the supported composition operations.
// Unsupported operations are ignored.
func (op *Composite) Set(cop string) {
	if _, ok := operations[cop]; ok {
		op.current = cop
	}
}

// Get returns the currently active composition operation.
func (op *Composite) Get() string {
	return op.current
}

// SetAlpha sets the global alpha, clamped to the [0, 1] interval.
func (op *Composite) SetAlpha(a float64) {
	op.alpha = utils.Clamp(a, 0, 1)
}

// Alpha returns the global alpha.
func (op *Composite) Alpha() float64 {
	return op.alpha
}

// Draw composites src over dst inside the rectangle r.
// The sp and mp points are aligned with r.Min in the source and mask.
// A non nil mask and the global alpha both scale the source alpha;
// pixels where the mask is fully transparent are left untouched.
func (op *Composite) Draw(dst *image.NRGBA, r image.Rectangle, src image.Image, sp image.Point, mask *image.Alpha, mp image.Point) {
	clipped := r.Intersect(dst.Bounds())
	if clipped.Empty() {
		return
	}
	delta := clipped.Min.Sub(r.Min)
	r, sp, mp = clipped, sp.Add(delta), mp.Add(delta)

	fn := operations[op.current]

	srcNRGBA, _ := src.(*image.NRGBA)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		di := dst.PixOffset(r.Min.X, y)
		sy := sp.Y + y - r.Min.Y
		my := mp.Y + y - r.Min.Y

		for x := r.Min.X; x < r.Max.X; x, di = x+1, di+4 {
			sx := sp.X + x - r.Min.X

			var c color.NRGBA
			if srcNRGBA != nil {
				if !image.Pt(sx, sy).In(srcNRGBA.Rect) {
					continue
				}
				si := srcNRGBA.PixOffset(sx, sy)
				s := srcNRGBA.Pix[si : si+4 : si+4]
				c = color.NRGBA{R: s[0], G: s[1], B: s[2], A: s[3]}
			} else {
				c = color.NRGBAModel.Convert(src.At(sx, sy)).(color.NRGBA)
			}

			as := float64(c.A) / 0xff * op.alpha
			if mask != nil {
				m := mask.AlphaAt(mp.X+x-r.Min.X, my).A
				if m == 0 {
					continue
				}
				as *= float64(m) / 0xff
			}

			d := dst.Pix[di : di+4 : di+4]
			ab := float64(d[3]) / 0xff
			fa, fb := fn(as, ab)

			ao := fa*as + fb*ab
			if ao <= 0 {
				d[0], d[1], d[2], d[3] = 0, 0, 0, 0
				continue
			}
			// Porter-Duff works on premultiplied values, NRGBA stores straight ones.
			mix := func(cs, cb uint8) uint8 {
				v := (fa*as*float64(cs) + fb*ab*float64(cb)) / ao
				return uint8(utils.Clamp(v+0.5, 0, 0xff))
			}
			d[0] = mix(c.R, d[0])
			d[1] = mix(c.G, d[1])
			d[2] = mix(c.B, d[2])
			d[3] = uint8(utils.Clamp(ao*0xff+0.5, 0, 0xff))
		}
	}
}
