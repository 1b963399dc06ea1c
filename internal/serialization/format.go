package serialization

import (
	"time"

	"github.com/born-ml/autograd/internal/tensor"
)

// Format constants.
const (
	MagicBytes      = "AGRD"
	FormatVersion   = 1
	HeaderAlignment = 64 // tensor data starts on a 64-byte boundary

	fixedHeaderSize = 4 + 4 + 8
)

// Header is the JSON header of a state file.
type Header struct {
	FormatVersion int               `json:"format_version"`
	CreatedAt     time.Time         `json:"created_at"`
	Tensors       []TensorMeta      `json:"tensors"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	Checksum      string            `json:"checksum"` // hex SHA-256 of the data section
}

// TensorMeta describes one tensor in the data section.
type TensorMeta struct {
	Name   string `json:"name"`   // e.g. "0.weight"
	DType  string `json:"dtype"`  // e.g. "float32"
	Shape  []int  `json:"shape"`
	Offset int64  `json:"offset"` // bytes from the start of the data section
	Size   int64  `json:"size"`   // bytes
}

// stringToDtype maps DataType.String() names back to data types.
func stringToDtype(s string) (tensor.DataType, bool) {
	for _, dt := range []tensor.DataType{tensor.Float32, tensor.Float64, tensor.Int32, tensor.Bool} {
		if dt.String() == s {
			return dt, true
		}
	}
	return 0, false
}

// padding returns the number of bytes needed to align pos.
func padding(pos int64) int64 {
	return (HeaderAlignment - pos%HeaderAlignment) % HeaderAlignment
}
