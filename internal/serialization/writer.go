package serialization

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/born-ml/autograd/internal/tensor"
)

// StateDict is an insertion-ordered map of tensor names to values.
type StateDict = orderedmap.OrderedMap[string, *tensor.RawTensor]

// Write encodes state, in its iteration order, to w.
func Write(w io.Writer, state *StateDict, metadata map[string]string) error {
	header := Header{
		FormatVersion: FormatVersion,
		CreatedAt:     time.Now().UTC(),
		Tensors:       make([]TensorMeta, 0, state.Len()),
		Metadata:      metadata,
	}

	var data bytes.Buffer
	for pair := state.Oldest(); pair != nil; pair = pair.Next() {
		raw := pair.Value
		header.Tensors = append(header.Tensors, TensorMeta{
			Name:   pair.Key,
			DType:  raw.DType().String(),
			Shape:  []int(raw.Shape()),
			Offset: int64(data.Len()),
			Size:   int64(raw.ByteSize()),
		})
		data.Write(raw.Data())
	}
	sum := sha256.Sum256(data.Bytes())
	header.Checksum = hex.EncodeToString(sum[:])

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return errors.Wrap(err, "failed to marshal header")
	}

	var prefix bytes.Buffer
	prefix.WriteString(MagicBytes)
	_ = binary.Write(&prefix, binary.LittleEndian, uint32(FormatVersion))
	_ = binary.Write(&prefix, binary.LittleEndian, uint64(len(headerJSON)))
	prefix.Write(headerJSON)
	prefix.Write(make([]byte, padding(int64(prefix.Len()))))

	if _, err := w.Write(prefix.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write header")
	}
	if _, err := w.Write(data.Bytes()); err != nil {
		return errors.Wrap(err, "failed to write tensor data")
	}
	return nil
}

// SaveFile writes state to path, replacing any existing file.
func SaveFile(path string, state *StateDict, metadata map[string]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "failed to create file")
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = errors.Wrap(cerr, "failed to close file")
		}
	}()
	return Write(f, state, metadata)
}
