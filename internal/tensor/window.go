package tensor

// Window describes a 2-D sliding window over the last two axes of an
// [N, C, H, W] tensor. X refers to the width axis, Y to the height axis.
type Window struct {
	WX, WY int // window size
	SX, SY int // stride
	PX, PY int // zero padding on both sides
}

// Validate checks that the window sizes and strides are positive and padding is non-negative.
func (w Window) Validate() error {
	if w.WX <= 0 || w.WY <= 0 || w.SX <= 0 || w.SY <= 0 || w.PX < 0 || w.PY < 0 {
		return ShapeMismatchf("invalid window %+v", w)
	}
	return nil
}

// OutputSize returns the number of window positions along the height and width of an h x w plane.
// It returns zeros when the window is larger than the padded plane.
func (w Window) OutputSize(h, width int) (oh, ow int) {
	if h+2*w.PY < w.WY || width+2*w.PX < w.WX {
		return 0, 0
	}
	oh = (h+2*w.PY-w.WY)/w.SY + 1
	ow = (width+2*w.PX-w.WX)/w.SX + 1
	return oh, ow
}

// Area returns the number of elements covered by one window position.
func (w Window) Area() int {
	return w.WX * w.WY
}
