package nn

import (
	"math"
	"math/rand"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// Linear is a fully connected layer: y = x·W + b.
//
// The bias is a [1, out] parameter added via ones[B,1] · b, which keeps
// the whole layer inside the engine's closed operation set and makes
// the bias gradient the column sum of the upstream gradient.
type Linear struct {
	weight *autodiff.Variable // [in, out]
	bias   *autodiff.Variable // [1, out], nil when disabled
	ctx    *autodiff.Context
}

// NewLinear creates a Linear layer with Xavier-style initialization.
func NewLinear(ctx *autodiff.Context, in, out int, withBias bool) *Linear {
	limit := math.Sqrt(6.0 / float64(in+out))
	weights := make([]float32, in*out)
	for i := range weights {
		weights[i] = float32((rand.Float64()*2 - 1) * limit)
	}

	l := &Linear{
		weight: ctx.Tensor(tensor.Shape{in, out}, weights, true),
		ctx:    ctx,
	}
	if withBias {
		l.bias = ctx.Tensor(tensor.Shape{1, out}, make([]float32, out), true)
	}
	return l
}

// Forward computes x·W (+ b). x has shape [batch, in].
func (l *Linear) Forward(x *autodiff.Variable) *autodiff.Variable {
	y := x.MatMul(l.weight)
	if l.bias == nil {
		return y
	}

	batch := x.Value().Shape()[0]
	ones := l.ctx.Leaf(tensor.Ones[float32](tensor.Shape{batch, 1}), false)
	return y.Add(ones.MatMul(l.bias))
}

// Parameters returns the weight and, when enabled, the bias.
func (l *Linear) Parameters() []*autodiff.Variable {
	if l.bias == nil {
		return []*autodiff.Variable{l.weight}
	}
	return []*autodiff.Variable{l.weight, l.bias}
}
