// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package tensor provides the public API for tensor values in Drift.
//
// A Tensor is an immutable-by-convention n-dimensional array with a
// concrete element type (float32 or float64) stored in a contiguous
// row-major buffer. Backends implement the small primitive set the
// autodiff engine is built on.
//
// Example:
//
//	x, _ := tensor.FromSlice([]float32{1, 2, 3, 4}, tensor.Shape{2, 2})
//	y := tensor.Ones[float32](tensor.Shape{2, 2})
//	sum, _ := cpu.New().Add(x, y)
package tensor

import (
	"github.com/drift-ml/drift/internal/tensor"
)

// DType is the constraint for supported tensor element types.
type DType = tensor.DType

// DataType identifies the runtime element type of a tensor.
type DataType = tensor.DataType

// Data type constants.
const (
	Float32 DataType = tensor.Float32
	Float64 DataType = tensor.Float64
)

// Device identifies where tensor primitives execute.
type Device = tensor.Device

// Device constants.
const (
	CPU    Device = tensor.CPU
	WebGPU Device = tensor.WebGPU
)

// Shape represents the dimensions of a tensor.
// Example: Shape{2, 3} is a 2x3 matrix.
type Shape = tensor.Shape

// Tensor is a dense n-dimensional array.
type Tensor = tensor.Tensor

// Backend is the device-specific implementation of tensor primitives.
type Backend = tensor.Backend

// Provider yields tensor elements by index; used to materialize tensors
// from external sources.
type Provider = tensor.Provider

// ErrShape reports incompatible operand shapes. Match with errors.Is.
var ErrShape = tensor.ErrShape

// New allocates a zero-filled tensor of the given shape and dtype.
func New(shape Shape, dtype DataType) (*Tensor, error) {
	return tensor.New(shape, dtype)
}

// FromSlice builds a tensor from a flat row-major slice.
func FromSlice[T DType](data []T, shape Shape) (*Tensor, error) {
	return tensor.FromSlice(data, shape)
}

// Zeros creates a tensor filled with zeros.
func Zeros[T DType](shape Shape) *Tensor {
	return tensor.Zeros[T](shape)
}

// Ones creates a tensor filled with ones.
func Ones[T DType](shape Shape) *Tensor {
	return tensor.Ones[T](shape)
}

// Full creates a tensor filled with value.
func Full[T DType](shape Shape, value T) *Tensor {
	return tensor.Full(shape, value)
}

// ZerosLike creates a zero tensor with the shape and dtype of t.
func ZerosLike(t *Tensor) *Tensor {
	return tensor.ZerosLike(t)
}

// OnesLike creates a ones tensor with the shape and dtype of t.
func OnesLike(t *Tensor) *Tensor {
	return tensor.OnesLike(t)
}

// FromProvider materializes a tensor by reading every element from p.
func FromProvider(p Provider, dtype DataType) (*Tensor, error) {
	return tensor.FromProvider(p, dtype)
}
