package tensor

import "github.com/pkg/errors"

// Shape represents the dimensions of a tensor, outermost axis first.
type Shape []int

// NumElements returns the total number of elements in the tensor.
func (s Shape) NumElements() int {
	n := 1 // a scalar has one element
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Rank returns the number of axes.
func (s Shape) Rank() int {
	return len(s)
}

// Validate checks if the shape is valid (all dimensions > 0).
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return ShapeMismatchf("invalid dimension at index %d: %d (must be > 0)", i, dim)
		}
	}
	return nil
}

// Equal checks if two shapes are equal.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	clone := make(Shape, len(s))
	copy(clone, s)
	return clone
}

// ComputeStrides calculates row-major strides for the shape:
// stride[i] = product of all dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}

	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// PadTrailing appends axes of size 1 until the shape has rank n.
// Shapes of rank >= n are returned as a copy.
func (s Shape) PadTrailing(n int) Shape {
	out := s.Clone()
	for len(out) < n {
		out = append(out, 1)
	}
	return out
}

// PadLeading prepends axes of size 1 until the shape has rank n.
func (s Shape) PadLeading(n int) Shape {
	if len(s) >= n {
		return s.Clone()
	}
	out := make(Shape, n)
	pad := n - len(s)
	for i := range pad {
		out[i] = 1
	}
	copy(out[pad:], s)
	return out
}

// ValidatePermutation checks that perm is a permutation of the shape's axes.
func (s Shape) ValidatePermutation(perm []int) error {
	if len(perm) != len(s) {
		return ShapeMismatchf("permutation %v has %d axes, shape %v has %d", perm, len(perm), s, len(s))
	}
	seen := make([]bool, len(perm))
	for _, axis := range perm {
		if axis < 0 || axis >= len(perm) || seen[axis] {
			return ShapeMismatchf("invalid permutation %v for shape %v", perm, s)
		}
		seen[axis] = true
	}
	return nil
}

// Permute returns the shape with axes reordered so that out[i] = s[perm[i]].
func (s Shape) Permute(perm []int) Shape {
	out := make(Shape, len(perm))
	for i, axis := range perm {
		out[i] = s[axis]
	}
	return out
}

// InversePermutation returns inv such that inv[perm[i]] = i.
func InversePermutation(perm []int) []int {
	inv := make([]int, len(perm))
	for i, axis := range perm {
		inv[axis] = i
	}
	return inv
}

// NormalizeAxes validates reduction axes against the rank and returns a
// per-axis mask. No axes selects every axis.
func (s Shape) NormalizeAxes(axes []int) ([]bool, error) {
	mask := make([]bool, len(s))
	if len(axes) == 0 {
		for i := range mask {
			mask[i] = true
		}
		return mask, nil
	}
	for _, axis := range axes {
		if axis < 0 {
			axis += len(s)
		}
		if axis < 0 || axis >= len(s) {
			return nil, ShapeMismatchf("axis %d out of range for shape %v", axis, s)
		}
		mask[axis] = true
	}
	return mask, nil
}

// BroadcastShapes implements NumPy-style broadcasting rules.
//
// Rules:
// 1. Compare shapes element-wise from right to left
// 2. Dimensions are compatible if:
//   - They are equal, OR
//   - One of them is 1
//
// 3. Missing dimensions are treated as 1
//
// Returns the broadcasted shape, a flag indicating if broadcasting is needed, and an error if incompatible.
//
// Examples:
//
//	(3, 1) + (3, 5) → (3, 5), true, nil
//	(3, 5) + (3, 5) → (3, 5), false, nil
//	(3, 4) + (3, 5) → nil, false, ErrShapeMismatch
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	rank := max(len(a), len(b))
	pa, pb := a.PadLeading(rank), b.PadLeading(rank)
	result := make(Shape, rank)
	needsBroadcast := len(a) != len(b)

	for i := range rank {
		switch {
		case pa[i] == pb[i]:
			result[i] = pa[i]
		case pa[i] == 1:
			result[i] = pb[i]
			needsBroadcast = true
		case pb[i] == 1:
			result[i] = pa[i]
			needsBroadcast = true
		default:
			return nil, false, errors.WithMessagef(ErrShapeMismatch,
				"shapes not compatible for broadcasting: %v vs %v (dimension %d: %d vs %d)", a, b, i, pa[i], pb[i])
		}
	}

	return result, needsBroadcast, nil
}
