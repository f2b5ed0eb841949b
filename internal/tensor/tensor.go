package tensor

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/pkg/errors"
)

// Tensor is a multi-dimensional numeric container: a shape plus a flat
// row-major buffer. Tensors are treated as immutable once populated;
// operations always allocate fresh results.
type Tensor struct {
	shape  Shape
	stride []int
	dtype  DataType
	data   []byte
}

// New creates a Tensor with the given shape and type.
// Memory is allocated and zero-initialized.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	if err := shape.Validate(); err != nil {
		return nil, errors.WithMessage(err, "new tensor")
	}

	byteSize := shape.NumElements() * dtype.Size()
	return &Tensor{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
		data:   make([]byte, byteSize),
	}, nil
}

// FromSlice creates a tensor from a Go slice. The slice is copied.
func FromSlice[T DType](data []T, shape Shape) (*Tensor, error) {
	if shape.NumElements() != len(data) {
		return nil, errors.Wrapf(ErrShape, "shape %v requires %d elements, got %d",
			shape, shape.NumElements(), len(data))
	}

	var dummy T
	t, err := New(shape, inferDataType(dummy))
	if err != nil {
		return nil, err
	}

	switch dst := any(data).(type) {
	case []float32:
		copy(t.AsFloat32(), dst)
	case []float64:
		copy(t.AsFloat64(), dst)
	}
	return t, nil
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape) *Tensor {
	var dummy T
	t, err := New(shape, inferDataType(dummy))
	if err != nil {
		panic(err)
	}
	return t
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape) *Tensor {
	return Full[T](shape, 1)
}

// Full creates a tensor filled with the given value.
func Full[T DType](shape Shape, value T) *Tensor {
	t := Zeros[T](shape)
	switch data := any(value).(type) {
	case float32:
		buf := t.AsFloat32()
		for i := range buf {
			buf[i] = data
		}
	case float64:
		buf := t.AsFloat64()
		for i := range buf {
			buf[i] = data
		}
	}
	return t
}

// OnesLike creates a ones tensor with the same shape and dtype as t.
func OnesLike(t *Tensor) *Tensor {
	if t.dtype == Float64 {
		return Full[float64](t.shape, 1)
	}
	return Full[float32](t.shape, 1)
}

// ZerosLike creates a zero tensor with the same shape and dtype as t.
func ZerosLike(t *Tensor) *Tensor {
	if t.dtype == Float64 {
		return Zeros[float64](t.shape)
	}
	return Zeros[float32](t.shape)
}

// Provider is the boundary for external weight suppliers: anything
// exposing a shape and multi-index access is a valid leaf source.
type Provider interface {
	Shape() Shape
	At(indices ...int) float64
}

// FromProvider materializes a leaf tensor from an external provider.
func FromProvider(p Provider, dtype DataType) (*Tensor, error) {
	shape := p.Shape()
	t, err := New(shape, dtype)
	if err != nil {
		return nil, errors.WithMessage(err, "from provider")
	}

	indices := make([]int, len(shape))
	for i := 0; i < shape.NumElements(); i++ {
		t.setFlat(i, p.At(indices...))
		incrementIndices(indices, shape)
	}
	return t, nil
}

// incrementIndices advances a multi-index in row-major order.
func incrementIndices(indices []int, shape Shape) {
	for d := len(indices) - 1; d >= 0; d-- {
		indices[d]++
		if indices[d] < shape[d] {
			return
		}
		indices[d] = 0
	}
}

// Shape returns the tensor's shape.
func (t *Tensor) Shape() Shape {
	return t.shape
}

// Strides returns the tensor's memory strides.
func (t *Tensor) Strides() []int {
	return t.stride
}

// DType returns the tensor's data type.
func (t *Tensor) DType() DataType {
	return t.dtype
}

// NumElements returns the total number of elements.
func (t *Tensor) NumElements() int {
	return t.shape.NumElements()
}

// ByteSize returns the total memory size in bytes.
func (t *Tensor) ByteSize() int {
	return len(t.data)
}

// Data returns the raw byte slice.
func (t *Tensor) Data() []byte {
	return t.data
}

// AsFloat32 interprets the data as []float32.
// Panics if the tensor's dtype is not Float32.
func (t *Tensor) AsFloat32() []float32 {
	if t.dtype != Float32 {
		panic(fmt.Sprintf("tensor dtype is %s, not float32", t.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy typed view, bounds checked by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// AsFloat64 interprets the data as []float64.
// Panics if the tensor's dtype is not Float64.
func (t *Tensor) AsFloat64() []float64 {
	if t.dtype != Float64 {
		panic(fmt.Sprintf("tensor dtype is %s, not float64", t.dtype))
	}
	//nolint:gosec // unsafe.Slice for zero-copy typed view, bounds checked by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&t.data[0])), t.NumElements())
}

// At returns the element at the given multi-index as float64.
// Panics if indices are out of bounds.
func (t *Tensor) At(indices ...int) float64 {
	return t.atFlat(t.flatIndex(indices))
}

// flatIndex converts a multi-index to a flat buffer offset.
func (t *Tensor) flatIndex(indices []int) int {
	if len(indices) != len(t.shape) {
		panic(fmt.Sprintf("expected %d indices, got %d", len(t.shape), len(indices)))
	}
	offset := 0
	for i, idx := range indices {
		if idx < 0 || idx >= t.shape[i] {
			panic(fmt.Sprintf("index %d out of bounds for dimension %d (size %d)", idx, i, t.shape[i]))
		}
		offset += idx * t.stride[i]
	}
	return offset
}

func (t *Tensor) atFlat(i int) float64 {
	if t.dtype == Float64 {
		return t.AsFloat64()[i]
	}
	return float64(t.AsFloat32()[i])
}

func (t *Tensor) setFlat(i int, v float64) {
	if t.dtype == Float64 {
		t.AsFloat64()[i] = v
	} else {
		t.AsFloat32()[i] = float32(v)
	}
}

// Item returns the value of a single-element tensor as float64.
// Panics if the tensor holds more than one element.
func (t *Tensor) Item() float64 {
	if t.NumElements() != 1 {
		panic(fmt.Sprintf("Item() only works for single-element tensors, got shape %v", t.shape))
	}
	return t.atFlat(0)
}

// Equal reports structural equality: same shape, same dtype, same values.
func (t *Tensor) Equal(other *Tensor) bool {
	if other == nil || t.dtype != other.dtype || !t.shape.Equal(other.shape) {
		return false
	}
	for i := 0; i < t.NumElements(); i++ {
		if t.atFlat(i) != other.atFlat(i) {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the tensor.
func (t *Tensor) Clone() *Tensor {
	clone := &Tensor{
		shape:  t.shape.Clone(),
		stride: t.shape.ComputeStrides(),
		dtype:  t.dtype,
		data:   make([]byte, len(t.data)),
	}
	copy(clone.data, t.data)
	return clone
}

// String returns a human-readable representation of the tensor.
func (t *Tensor) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tensor[%s]%v [", t.dtype, t.shape)
	n := t.NumElements()
	for i := 0; i < n && i < 8; i++ {
		if i > 0 {
			sb.WriteString(" ")
		}
		fmt.Fprintf(&sb, "%g", t.atFlat(i))
	}
	if n > 8 {
		sb.WriteString(" ...")
	}
	sb.WriteString("]")
	return sb.String()
}
