package loader

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/x448/float16"

	"github.com/drift-ml/drift/internal/tensor"
)

// GGUF format essentials (spec: ggml/docs/gguf.md):
// magic "GGUF", version, tensor count, metadata KV count, metadata KVs,
// tensor info table, aligned tensor data region.

const (
	ggufMagicLE uint32 = 0x46554747 // "GGUF" little-endian
	ggufVersion uint32 = 3

	ggufDefaultAlignment = 32
)

// GGUF metadata value types.
const (
	ggufTypeUint8 uint32 = iota
	ggufTypeInt8
	ggufTypeUint16
	ggufTypeInt16
	ggufTypeUint32
	ggufTypeInt32
	ggufTypeFloat32
	ggufTypeBool
	ggufTypeString
	ggufTypeArray
	ggufTypeUint64
	ggufTypeInt64
	ggufTypeFloat64
)

// GGML tensor element types this loader materializes.
const (
	ggmlTypeF32 uint32 = 0
	ggmlTypeF16 uint32 = 1
)

// ggufTensorInfo describes one tensor entry of the info table.
type ggufTensorInfo struct {
	shape  tensor.Shape
	dtype  uint32
	offset uint64 // relative to start of the tensor data region
}

// GGUFReader reads GGUF weight files. Quantized element types beyond
// F32/F16 are listed but not materialized.
type GGUFReader struct {
	path       string
	tensors    map[string]ggufTensorInfo
	alignment  int
	dataOffset int64
	raw        []byte
}

// OpenGGUF opens and parses a GGUF file.
func OpenGGUF(path string) (*GGUFReader, error) {
	//nolint:gosec // G304: path comes from user input, expected for weight loading
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "gguf")
	}

	r := &GGUFReader{
		path:      path,
		tensors:   make(map[string]ggufTensorInfo),
		alignment: ggufDefaultAlignment,
		raw:       raw,
	}
	if err := r.parse(); err != nil {
		return nil, errors.WithMessage(err, "gguf")
	}
	return r, nil
}

// cursor is a bounds-checked little-endian reader over the file bytes.
type cursor struct {
	data []byte
	pos  int
}

func (c *cursor) need(n int) error {
	if c.pos+n > len(c.data) {
		return errors.Wrapf(io.ErrUnexpectedEOF, "at offset %d, need %d bytes", c.pos, n)
	}
	return nil
}

func (c *cursor) u32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.pos:])
	c.pos += 4
	return v, nil
}

func (c *cursor) u64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.pos:])
	c.pos += 8
	return v, nil
}

func (c *cursor) str() (string, error) {
	n, err := c.u64()
	if err != nil {
		return "", err
	}
	if err := c.need(int(n)); err != nil {
		return "", err
	}
	s := string(c.data[c.pos : c.pos+int(n)])
	c.pos += int(n)
	return s, nil
}

// skipValue advances past a metadata value of the given type.
func (c *cursor) skipValue(vt uint32) error {
	sizes := map[uint32]int{
		ggufTypeUint8: 1, ggufTypeInt8: 1, ggufTypeBool: 1,
		ggufTypeUint16: 2, ggufTypeInt16: 2,
		ggufTypeUint32: 4, ggufTypeInt32: 4, ggufTypeFloat32: 4,
		ggufTypeUint64: 8, ggufTypeInt64: 8, ggufTypeFloat64: 8,
	}
	if n, ok := sizes[vt]; ok {
		if err := c.need(n); err != nil {
			return err
		}
		c.pos += n
		return nil
	}

	switch vt {
	case ggufTypeString:
		_, err := c.str()
		return err
	case ggufTypeArray:
		elemType, err := c.u32()
		if err != nil {
			return err
		}
		count, err := c.u64()
		if err != nil {
			return err
		}
		for i := uint64(0); i < count; i++ {
			if err := c.skipValue(elemType); err != nil {
				return err
			}
		}
		return nil
	default:
		return errors.Errorf("unknown metadata value type %d", vt)
	}
}

func (r *GGUFReader) parse() error {
	c := &cursor{data: r.raw}

	magic, err := c.u32()
	if err != nil {
		return err
	}
	if magic != ggufMagicLE {
		return errors.Errorf("bad magic 0x%08x", magic)
	}
	version, err := c.u32()
	if err != nil {
		return err
	}
	if version != ggufVersion && version != 2 {
		return errors.Errorf("unsupported version %d", version)
	}

	tensorCount, err := c.u64()
	if err != nil {
		return err
	}
	kvCount, err := c.u64()
	if err != nil {
		return err
	}

	// Metadata: only general.alignment matters here; everything else is
	// skipped structurally.
	for i := uint64(0); i < kvCount; i++ {
		key, err := c.str()
		if err != nil {
			return err
		}
		vt, err := c.u32()
		if err != nil {
			return err
		}
		if key == "general.alignment" && vt == ggufTypeUint32 {
			align, err := c.u32()
			if err != nil {
				return err
			}
			r.alignment = int(align)
			continue
		}
		if err := c.skipValue(vt); err != nil {
			return errors.WithMessagef(err, "metadata %q", key)
		}
	}

	for i := uint64(0); i < tensorCount; i++ {
		name, err := c.str()
		if err != nil {
			return err
		}
		nDims, err := c.u32()
		if err != nil {
			return err
		}
		if nDims > 8 {
			return errors.Errorf("tensor %q: too many dimensions: %d", name, nDims)
		}
		dims := make([]uint64, nDims)
		for d := range dims {
			if dims[d], err = c.u64(); err != nil {
				return err
			}
		}
		dtype, err := c.u32()
		if err != nil {
			return err
		}
		offset, err := c.u64()
		if err != nil {
			return err
		}

		// GGUF stores dimensions innermost-first; reverse to row-major.
		shape := make(tensor.Shape, nDims)
		for d := range shape {
			shape[d] = int(dims[nDims-1-uint32(d)])
		}
		r.tensors[name] = ggufTensorInfo{shape: shape, dtype: dtype, offset: offset}
	}

	r.dataOffset = alignOffset(int64(c.pos), r.alignment)
	return nil
}

// alignOffset rounds offset up to the next multiple of alignment.
func alignOffset(offset int64, alignment int) int64 {
	a := int64(alignment)
	return (offset + a - 1) / a * a
}

// Format returns FormatGGUF.
func (r *GGUFReader) Format() Format {
	return FormatGGUF
}

// Names returns all tensor names, sorted.
func (r *GGUFReader) Names() []string {
	names := make([]string, 0, len(r.tensors))
	for name := range r.tensors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Load materializes the named tensor, converting F16 to float32.
func (r *GGUFReader) Load(name string) (*tensor.Tensor, error) {
	info, ok := r.tensors[name]
	if !ok {
		return nil, errors.Errorf("gguf: no tensor named %q", name)
	}

	n := info.shape.NumElements()
	start := r.dataOffset + int64(info.offset)

	switch info.dtype {
	case ggmlTypeF32:
		end := start + int64(n)*4
		if end > int64(len(r.raw)) {
			return nil, errors.Errorf("gguf: tensor %q data out of bounds", name)
		}
		data := make([]float32, n)
		for i := range data {
			data[i] = math.Float32frombits(binary.LittleEndian.Uint32(r.raw[start+int64(i)*4:]))
		}
		return tensor.FromSlice(data, info.shape)

	case ggmlTypeF16:
		end := start + int64(n)*2
		if end > int64(len(r.raw)) {
			return nil, errors.Errorf("gguf: tensor %q data out of bounds", name)
		}
		data := make([]float32, n)
		for i := range data {
			data[i] = float16.Frombits(binary.LittleEndian.Uint16(r.raw[start+int64(i)*2:])).Float32()
		}
		return tensor.FromSlice(data, info.shape)

	default:
		return nil, errors.Errorf("gguf: tensor %q has unsupported element type %d (quantized?)", name, info.dtype)
	}
}

// Summary returns a one-line description with the file size.
func (r *GGUFReader) Summary() string {
	//nolint:gosec // G115: file length is non-negative
	return fmt.Sprintf("gguf: %d tensors, %s", len(r.tensors), humanize.Bytes(uint64(len(r.raw))))
}

// Close releases the reader. Data is held in memory, so this is a no-op.
func (r *GGUFReader) Close() error {
	return nil
}
