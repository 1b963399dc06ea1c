package nn

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/born-ml/autograd/internal/serialization"
)

// Save writes the state dictionary of m to path.
func Save(m Module, path string, metadata map[string]string) error {
	state := StateDict(m)
	if err := serialization.SaveFile(path, state, metadata); err != nil {
		return errors.WithMessagef(err, "save %s", path)
	}
	klog.V(1).Infof("nn: saved %d parameters to %s", state.Len(), path)
	return nil
}

// Load reads a state dictionary from path into the parameters of m and
// returns the file's metadata.
func Load(m Module, path string) (map[string]string, error) {
	state, header, err := serialization.LoadFile(path)
	if err != nil {
		return nil, errors.WithMessagef(err, "load %s", path)
	}
	if err := LoadStateDict(m, state); err != nil {
		return nil, err
	}
	return header.Metadata, nil
}
