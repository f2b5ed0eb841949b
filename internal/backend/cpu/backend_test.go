package cpu_test

import (
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/tensor"
)

func TestBackendIdentity(t *testing.T) {
	b := cpu.New()
	assert.Equal(t, "CPU", b.Name())
	assert.Equal(t, tensor.CPU, b.Device())
}

func TestElementwiseOps(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y, _ := tensor.FromSlice([]float32{10, 20, 30, 40}, tensor.Shape{2, 2})

	tests := []struct {
		name string
		op   func(a, b *tensor.Tensor) (*tensor.Tensor, error)
		want []float32
	}{
		{"add", b.Add, []float32{11, 22, 33, 44}},
		{"sub", b.Sub, []float32{-9, -18, -27, -36}},
		{"mul", b.Mul, []float32{10, 40, 90, 160}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.op(x, y)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.AsFloat32())
		})
	}
}

func TestElementwiseShapeMismatch(t *testing.T) {
	b := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{2, 2})
	y := tensor.Ones[float32](tensor.Shape{4})

	_, err := b.Add(x, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrShape))
}

func TestElementwiseFloat64(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float64{1.5, 2.5}, tensor.Shape{2})
	y, _ := tensor.FromSlice([]float64{0.5, 0.5}, tensor.Shape{2})

	got, err := b.Add(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float64{2, 3}, got.AsFloat64())
}

func TestMatMul(t *testing.T) {
	b := cpu.New()
	// [1 2; 3 4] @ [5 6; 7 8] = [19 22; 43 50]
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
	y, _ := tensor.FromSlice([]float32{5, 6, 7, 8}, tensor.Shape{2, 2})

	got, err := b.MatMul(x, y)
	require.NoError(t, err)
	assert.Equal(t, []float32{19, 22, 43, 50}, got.AsFloat32())
}

func TestMatMulRectangular(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})
	y, _ := tensor.FromSlice([]float32{7, 8, 9, 10, 11, 12}, tensor.Shape{3, 2})

	got, err := b.MatMul(x, y)
	require.NoError(t, err)
	assert.True(t, got.Shape().Equal(tensor.Shape{2, 2}))
	assert.Equal(t, []float32{58, 64, 139, 154}, got.AsFloat32())
}

func TestMatMulInnerDimensionMismatch(t *testing.T) {
	b := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{2, 3})
	y := tensor.Ones[float32](tensor.Shape{2, 2})

	_, err := b.MatMul(x, y)
	require.Error(t, err)
	assert.True(t, errors.Is(err, tensor.ErrShape))
}

func TestMatMulRejectsNon2D(t *testing.T) {
	b := cpu.New()
	x := tensor.Ones[float32](tensor.Shape{2, 2, 2})
	y := tensor.Ones[float32](tensor.Shape{2, 2})

	_, err := b.MatMul(x, y)
	assert.True(t, errors.Is(err, tensor.ErrShape))
}

func TestTranspose(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4, 5, 6}, tensor.Shape{2, 3})

	got, err := b.Transpose(x)
	require.NoError(t, err)
	assert.True(t, got.Shape().Equal(tensor.Shape{3, 2}))
	assert.Equal(t, []float32{1, 4, 2, 5, 3, 6}, got.AsFloat32())
}

func TestScale(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, -2, 3}, tensor.Shape{3})

	got, err := b.Scale(x, -2)
	require.NoError(t, err)
	assert.Equal(t, []float32{-2, 4, -6}, got.AsFloat32())
}

func TestSum(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float64{1, 2, 3, 4}, tensor.Shape{2, 2})

	got, err := b.Sum(x)
	require.NoError(t, err)
	assert.True(t, got.Shape().Equal(tensor.Shape{1}))
	assert.InDelta(t, 10, got.Item(), 1e-12)
}

func TestMap(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{0, 1, 4}, tensor.Shape{3})

	got, err := b.Map(x, math.Sqrt)
	require.NoError(t, err)
	assert.Equal(t, []float32{0, 1, 2}, got.AsFloat32())
}

func TestOpsAllocateFreshResults(t *testing.T) {
	b := cpu.New()
	x, _ := tensor.FromSlice([]float32{1, 2}, tensor.Shape{2})
	y, _ := tensor.FromSlice([]float32{3, 4}, tensor.Shape{2})

	got, err := b.Add(x, y)
	require.NoError(t, err)
	got.AsFloat32()[0] = 99

	assert.Equal(t, []float32{1, 2}, x.AsFloat32())
	assert.Equal(t, []float32{3, 4}, y.AsFloat32())
}
