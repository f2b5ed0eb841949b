package loader

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/drift-ml/drift/internal/tensor"
)

// SafeTensors format:
// [8 bytes: header_size (uint64 LE)]
// [header_size bytes: JSON header]
// [tensor data: raw bytes]

// SafeTensorsDType represents supported SafeTensors data types.
type SafeTensorsDType string

// Supported SafeTensors dtypes.
const (
	SafeTensorsF16 SafeTensorsDType = "F16"
	SafeTensorsF32 SafeTensorsDType = "F32"
	SafeTensorsF64 SafeTensorsDType = "F64"
)

// SafeTensorInfo describes one tensor entry in the JSON header.
type SafeTensorInfo struct {
	DType       SafeTensorsDType `json:"dtype"`
	Shape       []int            `json:"shape"`
	DataOffsets [2]int64         `json:"data_offsets"` // [start, end), relative to data section
}

// SafeTensorsReader reads SafeTensors format files.
type SafeTensorsReader struct {
	path    string
	tensors map[string]SafeTensorInfo
	meta    map[string]string
	data    []byte // tensor data section
}

// OpenSafeTensors opens and parses a SafeTensors file.
func OpenSafeTensors(path string) (*SafeTensorsReader, error) {
	//nolint:gosec // G304: path comes from user input, expected for weight loading
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "safetensors")
	}
	if len(raw) < 8 {
		return nil, errors.Errorf("safetensors: file too short: %d bytes", len(raw))
	}

	headerSize := binary.LittleEndian.Uint64(raw[:8])
	if headerSize > uint64(len(raw)-8) {
		return nil, errors.Errorf("safetensors: header size %d exceeds file size %d", headerSize, len(raw))
	}

	var rawMap map[string]json.RawMessage
	if err := json.Unmarshal(raw[8:8+headerSize], &rawMap); err != nil {
		return nil, errors.WithMessage(err, "safetensors: header")
	}

	r := &SafeTensorsReader{
		path:    path,
		tensors: make(map[string]SafeTensorInfo),
		data:    raw[8+headerSize:],
	}
	for key, value := range rawMap {
		if key == "__metadata__" {
			if err := json.Unmarshal(value, &r.meta); err != nil {
				return nil, errors.WithMessage(err, "safetensors: metadata")
			}
			continue
		}
		var info SafeTensorInfo
		if err := json.Unmarshal(value, &info); err != nil {
			return nil, errors.WithMessagef(err, "safetensors: tensor %s", key)
		}
		r.tensors[key] = info
	}
	return r, nil
}

// Format returns FormatSafeTensors.
func (r *SafeTensorsReader) Format() Format {
	return FormatSafeTensors
}

// Names returns all tensor names, sorted.
func (r *SafeTensorsReader) Names() []string {
	names := make([]string, 0, len(r.tensors))
	for name := range r.tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Metadata returns the optional __metadata__ map.
func (r *SafeTensorsReader) Metadata() map[string]string {
	return r.meta
}

// Load materializes the named tensor, converting F16 to float32.
func (r *SafeTensorsReader) Load(name string) (*tensor.Tensor, error) {
	info, ok := r.tensors[name]
	if !ok {
		return nil, errors.Errorf("safetensors: no tensor named %q", name)
	}

	start, end := info.DataOffsets[0], info.DataOffsets[1]
	if start < 0 || end > int64(len(r.data)) || start > end {
		return nil, errors.Errorf("safetensors: tensor %q has invalid offsets [%d, %d)", name, start, end)
	}
	raw := r.data[start:end]
	shape := tensor.Shape(info.Shape)
	n := shape.NumElements()

	switch info.DType {
	case SafeTensorsF32:
		if len(raw) != n*4 {
			return nil, errors.Wrapf(tensor.ErrShape, "safetensors: %q has %d bytes for %d float32", name, len(raw), n)
		}
		data := make([]float32, n)
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
		}
		return tensor.FromSlice(data, shape)

	case SafeTensorsF16:
		if len(raw) != n*2 {
			return nil, errors.Wrapf(tensor.ErrShape, "safetensors: %q has %d bytes for %d float16", name, len(raw), n)
		}
		data := make([]float32, n)
		for i := range data {
			data[i] = float16.Frombits(binary.LittleEndian.Uint16(raw[i*2:])).Float32()
		}
		return tensor.FromSlice(data, shape)

	case SafeTensorsF64:
		if len(raw) != n*8 {
			return nil, errors.Wrapf(tensor.ErrShape, "safetensors: %q has %d bytes for %d float64", name, len(raw), n)
		}
		data := make([]float64, n)
		for i := range data {
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[i*8:]))
		}
		return tensor.FromSlice(data, shape)

	default:
		return nil, errors.Errorf("safetensors: unsupported dtype %s for tensor %q", info.DType, name)
	}
}

// Summary returns a one-line description with the data section size.
func (r *SafeTensorsReader) Summary() string {
	//nolint:gosec // G115: data section length is non-negative
	return fmt.Sprintf("safetensors: %d tensors, %s", len(r.tensors), humanize.Bytes(uint64(len(r.data))))
}

// Close releases the reader. Data is held in memory, so this is a no-op.
func (r *SafeTensorsReader) Close() error {
	return nil
}
