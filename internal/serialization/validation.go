package serialization

import (
	"sort"

	"github.com/pkg/errors"

	"github.com/born-ml/autograd/internal/tensor"
)

// Validation limits for resource protection.
const (
	MaxHeaderSize    = 100 * 1024 * 1024
	MaxTensorCount   = 100_000
	MaxTensorNameLen = 4096
)

// ValidateHeader checks every tensor entry: known dtype, valid shape, a byte
// size matching the shape, unique names, and non-overlapping ranges inside a
// data section of dataSize bytes.
func ValidateHeader(h *Header, dataSize int64) error {
	if h.FormatVersion != FormatVersion {
		return errors.Wrapf(ErrUnsupportedVersion, "header declares version %d", h.FormatVersion)
	}
	if len(h.Tensors) > MaxTensorCount {
		return errors.Wrapf(ErrInvalidTensor, "%d tensors, max %d", len(h.Tensors), MaxTensorCount)
	}

	names := make(map[string]struct{}, len(h.Tensors))
	for _, t := range h.Tensors {
		if t.Name == "" || len(t.Name) > MaxTensorNameLen {
			return errors.Wrapf(ErrInvalidTensor, "name of length %d", len(t.Name))
		}
		if _, dup := names[t.Name]; dup {
			return errors.Wrapf(ErrInvalidTensor, "duplicate name %q", t.Name)
		}
		names[t.Name] = struct{}{}

		dtype, ok := stringToDtype(t.DType)
		if !ok {
			return errors.Wrapf(ErrInvalidTensor, "%q: unknown dtype %q", t.Name, t.DType)
		}
		shape := tensor.Shape(t.Shape)
		if err := shape.Validate(); err != nil {
			return errors.Wrapf(ErrInvalidTensor, "%q: %v", t.Name, err)
		}
		if want := int64(shape.NumElements() * dtype.Size()); t.Size != want {
			return errors.Wrapf(ErrInvalidTensor, "%q: size %d, shape %v needs %d", t.Name, t.Size, shape, want)
		}
		if t.Offset < 0 || t.Size < 0 || t.Offset > dataSize-t.Size {
			return errors.Wrapf(ErrInvalidTensor, "%q: %d bytes at offset %d outside data section of %d bytes",
				t.Name, t.Size, t.Offset, dataSize)
		}
	}

	sorted := make([]TensorMeta, len(h.Tensors))
	copy(sorted, h.Tensors)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Offset < sorted[j].Offset })
	for i := 1; i < len(sorted); i++ {
		prev, t := sorted[i-1], sorted[i]
		if prev.Offset+prev.Size > t.Offset {
			return errors.Wrapf(ErrInvalidTensor, "%q and %q overlap", prev.Name, t.Name)
		}
	}
	return nil
}
