// Package cpu implements the pure-Go CPU backend for tensor primitives.
package cpu

import (
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// Backend implements tensor.Backend on the CPU.
type Backend struct {
	device tensor.Device
}

// New creates a new CPU backend.
func New() *Backend {
	return &Backend{device: tensor.CPU}
}

// Name returns the backend name.
func (cpu *Backend) Name() string {
	return "CPU"
}

// Device returns the compute device.
func (cpu *Backend) Device() tensor.Device {
	return cpu.device
}

// Add performs element-wise addition. Shapes must match exactly.
func (cpu *Backend) Add(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binaryOp("add", a, b,
		func(x, y float32) float32 { return x + y },
		func(x, y float64) float64 { return x + y })
}

// Sub performs element-wise subtraction. Shapes must match exactly.
func (cpu *Backend) Sub(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binaryOp("sub", a, b,
		func(x, y float32) float32 { return x - y },
		func(x, y float64) float64 { return x - y })
}

// Mul performs element-wise multiplication. Shapes must match exactly.
func (cpu *Backend) Mul(a, b *tensor.Tensor) (*tensor.Tensor, error) {
	return cpu.binaryOp("mul", a, b,
		func(x, y float32) float32 { return x * y },
		func(x, y float64) float64 { return x * y })
}

// binaryOp runs a dtype-dispatched element-wise loop over two tensors.
func (cpu *Backend) binaryOp(
	name string,
	a, b *tensor.Tensor,
	f32 func(x, y float32) float32,
	f64 func(x, y float64) float64,
) (*tensor.Tensor, error) {
	if !a.Shape().Equal(b.Shape()) {
		return nil, errors.Wrapf(tensor.ErrShape, "%s: %v vs %v", name, a.Shape(), b.Shape())
	}
	if a.DType() != b.DType() {
		return nil, errors.Errorf("%s: dtype mismatch: %s vs %s", name, a.DType(), b.DType())
	}

	result, err := tensor.New(a.Shape(), a.DType())
	if err != nil {
		return nil, errors.WithMessage(err, name)
	}

	switch a.DType() {
	case tensor.Float32:
		aData, bData, out := a.AsFloat32(), b.AsFloat32(), result.AsFloat32()
		for i := range out {
			out[i] = f32(aData[i], bData[i])
		}
	case tensor.Float64:
		aData, bData, out := a.AsFloat64(), b.AsFloat64(), result.AsFloat64()
		for i := range out {
			out[i] = f64(aData[i], bData[i])
		}
	}
	return result, nil
}

// Scale multiplies every element by a scalar.
func (cpu *Backend) Scale(t *tensor.Tensor, s float64) (*tensor.Tensor, error) {
	return cpu.Map(t, func(v float64) float64 { return v * s })
}

// Sum reduces a tensor to its total, returning shape {1}.
func (cpu *Backend) Sum(t *tensor.Tensor) (*tensor.Tensor, error) {
	result, err := tensor.New(tensor.Shape{1}, t.DType())
	if err != nil {
		return nil, errors.WithMessage(err, "sum")
	}

	switch t.DType() {
	case tensor.Float32:
		var acc float32
		for _, v := range t.AsFloat32() {
			acc += v
		}
		result.AsFloat32()[0] = acc
	case tensor.Float64:
		var acc float64
		for _, v := range t.AsFloat64() {
			acc += v
		}
		result.AsFloat64()[0] = acc
	}
	return result, nil
}

// Map applies f to every element.
func (cpu *Backend) Map(t *tensor.Tensor, f func(float64) float64) (*tensor.Tensor, error) {
	result, err := tensor.New(t.Shape(), t.DType())
	if err != nil {
		return nil, errors.WithMessage(err, "map")
	}

	switch t.DType() {
	case tensor.Float32:
		data, out := t.AsFloat32(), result.AsFloat32()
		for i := range out {
			out[i] = float32(f(float64(data[i])))
		}
	case tensor.Float64:
		data, out := t.AsFloat64(), result.AsFloat64()
		for i := range out {
			out[i] = f(data[i])
		}
	}
	return result, nil
}
