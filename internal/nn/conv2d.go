package nn

import (
	"fmt"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/autograd"
	"github.com/born-ml/autograd/internal/autograd/ops"
	"github.com/born-ml/autograd/internal/tensor"
)

// Conv2D is a 2D convolution layer over [N, C, H, W] inputs.
//
// The convolution is computed as unwrap → matmul → reshape, so its backward
// pass is built from the same differentiable operators.
//
// Shapes:
//   - weight: [out_channels, in_channels, WY, WX]
//   - bias:   [1, out_channels, 1, 1]
//   - output: [N, out_channels, OH, OW]
//
// Example:
//
//	win := tensor.Window{WX: 3, WY: 3, SX: 1, SY: 1, PX: 1, PY: 1}
//	conv := nn.NewConv2D(3, 16, win, true, backend)
//	out := conv.Forward(images) // [N, 3, 32, 32] -> [N, 16, 32, 32]
type Conv2D struct {
	weight *autograd.Variable
	bias   *autograd.Variable
	win    tensor.Window
}

// NewConv2D creates a float32 Conv2D layer with Glorot uniform weights and
// zero bias. The window size is the kernel size.
func NewConv2D(inChannels, outChannels int, win tensor.Window, bias bool, backend tensor.Backend) *Conv2D {
	if err := win.Validate(); err != nil {
		panic(err)
	}
	c := &Conv2D{
		weight: GlorotUniform(backend, tensor.Shape{outChannels, inChannels, win.WY, win.WX}, tensor.Float32, true),
		win:    win,
	}
	if bias {
		c.bias = Constant(backend, 0, tensor.Shape{1, outChannels, 1, 1}, tensor.Float32, true)
	}
	return c
}

// NewConv2DFromParams wraps existing parameters. The window size is taken
// from the weight shape; strides and padding from win.
func NewConv2DFromParams(weight, bias *autograd.Variable, win tensor.Window) (*Conv2D, error) {
	ws := weight.Shape()
	if len(ws) != 4 {
		return nil, errors.Wrapf(autograd.ErrShapeMismatch, "conv2d: weight must be 4D, got %v", ws)
	}
	if bias != nil && !bias.Shape().Equal(tensor.Shape{1, ws[0], 1, 1}) {
		return nil, errors.Wrapf(autograd.ErrShapeMismatch, "conv2d: bias %v does not match weight %v", bias.Shape(), ws)
	}
	win.WY, win.WX = ws[2], ws[3]
	if err := win.Validate(); err != nil {
		return nil, err
	}
	return &Conv2D{weight: weight, bias: bias, win: win}, nil
}

// Forward convolves input [N, C, H, W] and adds the per-channel bias.
func (c *Conv2D) Forward(input *autograd.Variable) *autograd.Variable {
	out := ops.Conv2D(input, c.weight, c.win)
	if c.bias != nil {
		out = ops.Add(out, ops.TileAs(c.bias, out))
	}
	return out
}

// Parameters returns [weight, bias], or [weight] without bias.
func (c *Conv2D) Parameters() []*autograd.Variable {
	if c.bias != nil {
		return []*autograd.Variable{c.weight, c.bias}
	}
	return []*autograd.Variable{c.weight}
}

// NamedParameters returns "weight" and, when present, "bias".
func (c *Conv2D) NamedParameters() *ParamMap {
	params := orderedmap.New[string, *autograd.Variable]()
	params.Set("weight", c.weight)
	if c.bias != nil {
		params.Set("bias", c.bias)
	}
	return params
}

// Window returns the convolution window.
func (c *Conv2D) Window() tensor.Window { return c.win }

// OutChannels returns the number of filters.
func (c *Conv2D) OutChannels() int { return c.weight.Shape()[0] }

// InChannels returns the number of input channels.
func (c *Conv2D) InChannels() int { return c.weight.Shape()[1] }

// String returns a description of the layer.
func (c *Conv2D) String() string {
	return fmt.Sprintf("Conv2D(in=%d, out=%d, kernel=%dx%d, stride=%dx%d, padding=%dx%d, bias=%t)",
		c.InChannels(), c.OutChannels(), c.win.WY, c.win.WX, c.win.SY, c.win.SX, c.win.PY, c.win.PX, c.bias != nil)
}
