package cpu

import (
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// MatMul performs matrix multiplication: (M, K) @ (K, N) -> (M, N).
// Naive O(n³) implementation; cache-friendly ikj loop order.
func (cpu *Backend) MatMul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	aShape, bShape := a.Shape(), b.Shape()

	if len(aShape) != 2 || len(bShape) != 2 {
		return nil, errors.Wrapf(tensor.ErrShape, "matmul: only 2D tensors supported, got %dD and %dD",
			len(aShape), len(bShape))
	}

	m, k := aShape[0], aShape[1]
	kAlt, n := bShape[0], bShape[1]
	if k != kAlt {
		return nil, errors.Wrapf(tensor.ErrShape, "matmul: [%d,%d] @ [%d,%d]", m, k, kAlt, n)
	}
	if a.DType() != b.DType() {
		return nil, errors.Errorf("matmul: dtype mismatch: %s vs %s", a.DType(), b.DType())
	}

	result, err := tensor.New(tensor.Shape{m, n}, a.DType())
	if err != nil {
		return nil, errors.WithMessage(err, "matmul")
	}

	switch a.DType() {
	case tensor.Float32:
		matmulFloat32(result.AsFloat32(), a.AsFloat32(), b.AsFloat32(), m, k, n)
	case tensor.Float64:
		matmulFloat64(result.AsFloat64(), a.AsFloat64(), b.AsFloat64(), m, k, n)
	}
	return result, nil
}

// matmulFloat32 computes C[i,j] = sum_k A[i,k] * B[k,j] for float32.
func matmulFloat32(c, a, b []float32, m, k, n int) {
	for i := 0; i < m; i++ {
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := a[i*k+kIdx]
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[kIdx*n+j]
			}
		}
	}
}

// matmulFloat64 computes C[i,j] = sum_k A[i,k] * B[k,j] for float64.
func matmulFloat64(c, a, b []float64, m, k, n int) {
	for i := 0; i < m; i++ {
		for kIdx := 0; kIdx < k; kIdx++ {
			aik := a[i*k+kIdx]
			for j := 0; j < n; j++ {
				c[i*n+j] += aik * b[kIdx*n+j]
			}
		}
	}
}

// Transpose swaps the two axes of a 2-D tensor.
func (cpu *Backend) Transpose(t *tensor.Tensor) (*tensor.Tensor, error) {
	shape := t.Shape()
	if len(shape) != 2 {
		return nil, errors.Wrapf(tensor.ErrShape, "transpose: only 2D tensors supported, got %dD", len(shape))
	}

	rows, cols := shape[0], shape[1]
	result, err := tensor.New(tensor.Shape{cols, rows}, t.DType())
	if err != nil {
		return nil, errors.WithMessage(err, "transpose")
	}

	switch t.DType() {
	case tensor.Float32:
		src, dst := t.AsFloat32(), result.AsFloat32()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[j*rows+i] = src[i*cols+j]
			}
		}
	case tensor.Float64:
		src, dst := t.AsFloat64(), result.AsFloat64()
		for i := 0; i < rows; i++ {
			for j := 0; j < cols; j++ {
				dst[j*rows+i] = src[i*cols+j]
			}
		}
	}
	return result, nil
}
