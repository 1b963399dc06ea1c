package serialization

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"io"
	"os"

	"github.com/pkg/errors"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/tensor"
)

// Read decodes a state dictionary from r. The returned map keeps the order
// in which the tensors were written.
func Read(r io.Reader) (*StateDict, *Header, error) {
	magic := make([]byte, len(MagicBytes))
	if _, err := io.ReadFull(r, magic); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read magic bytes")
	}
	if string(magic) != MagicBytes {
		return nil, nil, errors.Wrapf(ErrInvalidMagic, "got %q", magic)
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read version")
	}
	if version != FormatVersion {
		return nil, nil, errors.Wrapf(ErrUnsupportedVersion, "got %d, expected %d", version, FormatVersion)
	}

	var headerSize uint64
	if err := binary.Read(r, binary.LittleEndian, &headerSize); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header size")
	}
	if headerSize > MaxHeaderSize {
		return nil, nil, errors.Wrapf(ErrHeaderTooLarge, "%d bytes", headerSize)
	}

	headerJSON := make([]byte, headerSize)
	if _, err := io.ReadFull(r, headerJSON); err != nil {
		return nil, nil, errors.Wrap(err, "failed to read header")
	}
	var header Header
	if err := json.Unmarshal(headerJSON, &header); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse header")
	}

	pad := padding(fixedHeaderSize + int64(headerSize))
	if _, err := io.CopyN(io.Discard, r, pad); err != nil {
		return nil, nil, errors.Wrap(err, "failed to skip padding")
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to read tensor data")
	}
	if err := ValidateHeader(&header, int64(len(data))); err != nil {
		return nil, nil, err
	}
	sum := sha256.Sum256(data)
	if hex.EncodeToString(sum[:]) != header.Checksum {
		return nil, nil, ErrChecksumMismatch
	}

	state := orderedmap.New[string, *tensor.RawTensor]()
	for _, meta := range header.Tensors {
		dtype, _ := stringToDtype(meta.DType)
		raw, err := tensor.NewRaw(tensor.Shape(meta.Shape), dtype, tensor.CPU)
		if err != nil {
			return nil, nil, errors.Wrapf(ErrInvalidTensor, "%q: %v", meta.Name, err)
		}
		copy(raw.Data(), data[meta.Offset:meta.Offset+meta.Size])
		state.Set(meta.Name, raw)
	}
	klog.V(2).Infof("serialization: read %d tensors (%d bytes)", state.Len(), len(data))
	return state, &header, nil
}

// LoadFile reads a state dictionary from path.
func LoadFile(path string) (*StateDict, *Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to open file")
	}
	defer f.Close()
	return Read(f)
}
