package tensor

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func assertEqualFloat64(t *testing.T, expected, actual float64, msg string) {
	t.Helper()
	if math.Abs(expected-actual) > 1e-9 {
		t.Errorf("%s: expected %v, got %v", msg, expected, actual)
	}
}

func TestDataTypeSize(t *testing.T) {
	tests := []struct {
		dtype DataType
		size  int
	}{
		{Float32, 4},
		{Float64, 8},
	}
	for _, tt := range tests {
		if got := tt.dtype.Size(); got != tt.size {
			t.Errorf("%s.Size() = %d, want %d", tt.dtype, got, tt.size)
		}
	}
}

func TestInferDataType(t *testing.T) {
	if dt := inferDataType(float32(0)); dt != Float32 {
		t.Errorf("inferDataType(float32) = %v, want Float32", dt)
	}
	if dt := inferDataType(float64(0)); dt != Float64 {
		t.Errorf("inferDataType(float64) = %v, want Float64", dt)
	}
}

func TestShapeNumElements(t *testing.T) {
	tests := []struct {
		shape Shape
		n     int
	}{
		{Shape{}, 1},
		{Shape{5}, 5},
		{Shape{2, 3}, 6},
		{Shape{2, 3, 4}, 24},
	}
	for _, tt := range tests {
		if got := tt.shape.NumElements(); got != tt.n {
			t.Errorf("%v.NumElements() = %d, want %d", tt.shape, got, tt.n)
		}
	}
}

func TestShapeValidate(t *testing.T) {
	if err := (Shape{2, 3}).Validate(); err != nil {
		t.Errorf("valid shape rejected: %v", err)
	}
	err := (Shape{2, 0}).Validate()
	if err == nil {
		t.Fatal("zero dimension accepted")
	}
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func TestShapeComputeStrides(t *testing.T) {
	strides := Shape{2, 3, 4}.ComputeStrides()
	want := []int{12, 4, 1}
	for i := range want {
		if strides[i] != want[i] {
			t.Fatalf("strides = %v, want %v", strides, want)
		}
	}
}

func TestNewZeroInitialized(t *testing.T) {
	x, err := New(Shape{2, 3}, Float32)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range x.AsFloat32() {
		if v != 0 {
			t.Fatalf("new tensor not zero-initialized: %v", v)
		}
	}
	if x.ByteSize() != 24 {
		t.Errorf("ByteSize() = %d, want 24", x.ByteSize())
	}
}

func TestNewRejectsInvalidShape(t *testing.T) {
	_, err := New(Shape{2, -1}, Float32)
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func TestFromSlice(t *testing.T) {
	x, err := FromSlice([]float32{1, 2, 3, 4, 5, 6}, Shape{2, 3})
	if err != nil {
		t.Fatal(err)
	}
	assertEqualFloat64(t, 1, x.At(0, 0), "At(0,0)")
	assertEqualFloat64(t, 6, x.At(1, 2), "At(1,2)")
	if x.DType() != Float32 {
		t.Errorf("dtype = %v, want Float32", x.DType())
	}
}

func TestFromSliceLengthMismatch(t *testing.T) {
	_, err := FromSlice([]float32{1, 2, 3}, Shape{2, 2})
	if !errors.Is(err, ErrShape) {
		t.Errorf("expected ErrShape, got %v", err)
	}
}

func TestFromSliceCopies(t *testing.T) {
	src := []float64{1, 2}
	x, err := FromSlice(src, Shape{2})
	if err != nil {
		t.Fatal(err)
	}
	src[0] = 99
	assertEqualFloat64(t, 1, x.At(0), "source mutation leaked into tensor")
}

func TestFullAndLike(t *testing.T) {
	x := Full(Shape{2, 2}, float32(3.5))
	assertEqualFloat64(t, 3.5, x.At(1, 1), "Full value")

	ones := OnesLike(x)
	if ones.DType() != Float32 || !ones.Shape().Equal(x.Shape()) {
		t.Fatalf("OnesLike changed shape or dtype: %v %v", ones.Shape(), ones.DType())
	}
	assertEqualFloat64(t, 1, ones.At(0, 1), "OnesLike value")

	z := ZerosLike(Ones[float64](Shape{3}))
	if z.DType() != Float64 {
		t.Errorf("ZerosLike dtype = %v, want Float64", z.DType())
	}
	assertEqualFloat64(t, 0, z.At(2), "ZerosLike value")
}

func TestItem(t *testing.T) {
	x, _ := FromSlice([]float32{42}, Shape{1})
	assertEqualFloat64(t, 42, x.Item(), "Item")

	defer func() {
		if recover() == nil {
			t.Error("Item on multi-element tensor did not panic")
		}
	}()
	Ones[float32](Shape{2}).Item()
}

func TestAtOutOfBoundsPanics(t *testing.T) {
	x := Ones[float32](Shape{2, 2})
	defer func() {
		if recover() == nil {
			t.Error("out-of-bounds At did not panic")
		}
	}()
	x.At(2, 0)
}

func TestEqual(t *testing.T) {
	a, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	b, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{2, 2})
	c, _ := FromSlice([]float32{1, 2, 3, 5}, Shape{2, 2})
	d, _ := FromSlice([]float32{1, 2, 3, 4}, Shape{4})

	if !a.Equal(b) {
		t.Error("equal tensors reported unequal")
	}
	if a.Equal(c) {
		t.Error("different values reported equal")
	}
	if a.Equal(d) {
		t.Error("different shapes reported equal")
	}
	if a.Equal(nil) {
		t.Error("nil reported equal")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	a, _ := FromSlice([]float64{1, 2}, Shape{2})
	b := a.Clone()
	b.AsFloat64()[0] = 100
	assertEqualFloat64(t, 1, a.At(0), "clone mutation leaked into original")
}

type gridProvider struct {
	rows, cols int
}

func (g gridProvider) Shape() Shape { return Shape{g.rows, g.cols} }
func (g gridProvider) At(indices ...int) float64 {
	return float64(indices[0]*g.cols + indices[1])
}

func TestFromProvider(t *testing.T) {
	x, err := FromProvider(gridProvider{rows: 2, cols: 3}, Float32)
	if err != nil {
		t.Fatal(err)
	}
	assertEqualFloat64(t, 0, x.At(0, 0), "At(0,0)")
	assertEqualFloat64(t, 5, x.At(1, 2), "At(1,2)")
}

func TestAsFloat32WrongDTypePanics(t *testing.T) {
	x := Ones[float64](Shape{2})
	defer func() {
		if recover() == nil {
			t.Error("AsFloat32 on float64 tensor did not panic")
		}
	}()
	x.AsFloat32()
}
