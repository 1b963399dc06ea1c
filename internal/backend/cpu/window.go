package cpu

import (
	"golang.org/x/exp/constraints"

	"github.com/born-ml/autograd/internal/parallel"
	"github.com/born-ml/autograd/internal/tensor"
)

// windowGeometry holds the dimensions shared by Unwrap and Wrap.
type windowGeometry struct {
	n, c, h, w int
	oh, ow     int
	win        tensor.Window
}

func (g windowGeometry) rows() int { return g.c * g.win.Area() }
func (g windowGeometry) cols() int { return g.oh * g.ow }

func newWindowGeometry(name string, n, c, h, w int, win tensor.Window) windowGeometry {
	if err := win.Validate(); err != nil {
		panic(tensor.ShapeMismatchf("%s: %v", name, err))
	}
	oh, ow := win.OutputSize(h, w)
	if oh <= 0 || ow <= 0 {
		panic(tensor.ShapeMismatchf("%s: window %+v does not fit a %dx%d plane", name, win, h, w))
	}
	return windowGeometry{n: n, c: c, h: h, w: w, oh: oh, ow: ow, win: win}
}

// Unwrap extracts every window position of an [N, C, H, W] tensor into columns.
//
// Output shape: [N, C·WY·WX, OH·OW]. Row c·WY·WX + ky·WX + kx, column
// oy·OW + ox holds x[n, c, oy·SY - PY + ky, ox·SX - PX + kx], or 0 inside the padding.
func (cpu *CPUBackend) Unwrap(x *tensor.RawTensor, win tensor.Window) *tensor.RawTensor {
	s := x.Shape()
	if len(s) != 4 {
		panic(tensor.ShapeMismatchf("unwrap: input must be 4D [N,C,H,W], got %v", s))
	}
	g := newWindowGeometry("unwrap", s[0], s[1], s[2], s[3], win)
	out := tensor.MustNewRaw(tensor.Shape{g.n, g.rows(), g.cols()}, x.DType())

	switch x.DType() {
	case tensor.Float32:
		unwrap(out.AsFloat32(), x.AsFloat32(), g, cpu.cfg.Parallel)
	case tensor.Float64:
		unwrap(out.AsFloat64(), x.AsFloat64(), g, cpu.cfg.Parallel)
	default:
		panic(tensor.UnsupportedDTypef("unwrap: %s", x.DType()))
	}
	return out
}

// Wrap scatters [N, C·WY·WX, OH·OW] columns back into an [N, C, h, w] tensor,
// summing values that overlapping windows map to the same position.
func (cpu *CPUBackend) Wrap(cols *tensor.RawTensor, h, w int, win tensor.Window) *tensor.RawTensor {
	s := cols.Shape()
	if len(s) != 3 {
		panic(tensor.ShapeMismatchf("wrap: columns must be 3D [N,K,L], got %v", s))
	}
	if win.Area() <= 0 || s[1]%win.Area() != 0 {
		panic(tensor.ShapeMismatchf("wrap: %d rows not divisible by window %+v", s[1], win))
	}
	g := newWindowGeometry("wrap", s[0], s[1]/win.Area(), h, w, win)
	if s[2] != g.cols() {
		panic(tensor.ShapeMismatchf("wrap: %d columns, window over %dx%d yields %d", s[2], h, w, g.cols()))
	}
	out := tensor.MustNewRaw(tensor.Shape{g.n, g.c, h, w}, cols.DType())

	switch cols.DType() {
	case tensor.Float32:
		wrap(out.AsFloat32(), cols.AsFloat32(), g, cpu.cfg.Parallel)
	case tensor.Float64:
		wrap(out.AsFloat64(), cols.AsFloat64(), g, cpu.cfg.Parallel)
	default:
		panic(tensor.UnsupportedDTypef("wrap: %s", cols.DType()))
	}
	return out
}

// forEachTap calls f for every (window position, kernel tap) of plane (n, c)
// that lands inside the image, with the column-buffer and image offsets.
func forEachTap(g windowGeometry, n, c int, f func(colIdx, imgIdx int)) {
	win := g.win
	plane := (n*g.c + c) * g.h * g.w
	rowBase := n*g.rows()*g.cols() + c*win.Area()*g.cols()
	for ky := range win.WY {
		for kx := range win.WX {
			row := rowBase + (ky*win.WX+kx)*g.cols()
			for oy := range g.oh {
				y := oy*win.SY - win.PY + ky
				if y < 0 || y >= g.h {
					continue
				}
				for ox := range g.ow {
					x := ox*win.SX - win.PX + kx
					if x < 0 || x >= g.w {
						continue
					}
					f(row+oy*g.ow+ox, plane+y*g.w+x)
				}
			}
		}
	}
}

func unwrap[T constraints.Float](out, in []T, g windowGeometry, cfg parallel.Config) {
	parallel.ForBatch(g.n, g.c, func(n, c int) {
		forEachTap(g, n, c, func(colIdx, imgIdx int) {
			out[colIdx] = in[imgIdx]
		})
	}, cfg)
}

func wrap[T constraints.Float](out, cols []T, g windowGeometry, cfg parallel.Config) {
	parallel.ForBatch(g.n, g.c, func(n, c int) {
		forEachTap(g, n, c, func(colIdx, imgIdx int) {
			out[imgIdx] += cols[colIdx]
		})
	}, cfg)
}
