package autodiff

import (
	"github.com/drift-ml/drift/internal/autodiff/ops"
)

// Operation methods compute forward values through the context's
// backend and, under training, attach the matching backward rule.
// Primitive failures (shape or dtype mismatches) are programming
// errors at the call site and panic, mirroring the backend contract of
// fail-fast over partially-correct output.

// Add returns v + other, element-wise.
func (v *Variable) Add(other *Variable) *Variable {
	out, err := v.ctx.backend.Add(v.value, other.value)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewAdd(), out, v, other)
}

// Sub returns v - other, element-wise.
func (v *Variable) Sub(other *Variable) *Variable {
	out, err := v.ctx.backend.Sub(v.value, other.value)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewSub(), out, v, other)
}

// Mul returns v ⊙ other, element-wise.
func (v *Variable) Mul(other *Variable) *Variable {
	out, err := v.ctx.backend.Mul(v.value, other.value)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewMul(v.value, other.value), out, v, other)
}

// MatMul returns v · other for 2-D variables.
func (v *Variable) MatMul(other *Variable) *Variable {
	out, err := v.ctx.backend.MatMul(v.value, other.value)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewMatMul(v.value, other.value), out, v, other)
}

// Apply returns f(v) element-wise. The caller supplies the derivative
// alongside f; nothing is differentiated automatically.
func (v *Variable) Apply(name string, f, deriv func(float64) float64) *Variable {
	out, err := v.ctx.backend.Map(v.value, f)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewActivation(name, v.value, deriv), out, v)
}

// Sum reduces v to its scalar total, shape {1}.
func (v *Variable) Sum() *Variable {
	out, err := v.ctx.backend.Sum(v.value)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewSum(v.value), out, v)
}

// Scale returns factor · v.
func (v *Variable) Scale(factor float64) *Variable {
	out, err := v.ctx.backend.Scale(v.value, factor)
	if err != nil {
		panic(err)
	}
	return v.ctx.derive(ops.NewScale(factor), out, v)
}
