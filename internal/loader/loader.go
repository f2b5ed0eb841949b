// Package loader reads pretrained weights from disk formats and exposes
// them as named leaf tensor values.
//
// Supported formats:
//   - SafeTensors (Hugging Face standard)
//   - GGUF (llama.cpp ecosystem)
//   - CSV (single 2-D matrix)
//
// The engine core accepts anything exposing shape and multi-index
// access as a leaf; readers here materialize tensor.Tensor values that
// callers wrap via Context.Leaf before graph construction.
package loader

import (
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/drift-ml/drift/internal/tensor"
)

// Format identifies a weight file format.
type Format int

// Supported weight file formats.
const (
	FormatUnknown Format = iota
	FormatSafeTensors
	FormatGGUF
	FormatCSV
)

// String returns a human-readable format name.
func (f Format) String() string {
	switch f {
	case FormatSafeTensors:
		return "safetensors"
	case FormatGGUF:
		return "gguf"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// Reader provides uniform access to the named tensors of a weight file.
type Reader interface {
	// Format returns the detected file format.
	Format() Format

	// Names returns all tensor names in the file.
	Names() []string

	// Load materializes the named tensor.
	Load(name string) (*tensor.Tensor, error)

	// Summary returns a one-line human-readable description.
	Summary() string

	// Close releases the underlying file.
	Close() error
}

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".safetensors":
		return FormatSafeTensors
	case ".gguf":
		return FormatGGUF
	case ".csv":
		return FormatCSV
	default:
		return FormatUnknown
	}
}

// Open opens a weight file with format auto-detection.
func Open(path string) (Reader, error) {
	format := DetectFormat(path)
	klog.V(1).Infof("loader: opening %s as %s", path, format)

	switch format {
	case FormatSafeTensors:
		return OpenSafeTensors(path)
	case FormatGGUF:
		return OpenGGUF(path)
	case FormatCSV:
		return OpenCSV(path)
	default:
		return nil, errors.Errorf("loader: unrecognized weight format: %s", path)
	}
}
