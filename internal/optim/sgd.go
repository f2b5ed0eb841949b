// Package optim provides gradient-descent parameter updates consuming
// the gradients populated by the autodiff engine.
package optim

import (
	"k8s.io/klog/v2"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// SGD is plain stochastic gradient descent: w ← w - lr · grad.
type SGD struct {
	params []*autodiff.Variable
	lr     float64
}

// NewSGD creates an SGD optimizer over the given parameters.
func NewSGD(params []*autodiff.Variable, lr float64) *SGD {
	return &SGD{params: params, lr: lr}
}

// Step applies one update to every parameter with a populated gradient.
// Parameter buffers are updated in place; parameters whose gradient was
// not populated by the last backward pass are skipped.
func (o *SGD) Step() {
	updated := 0
	for _, p := range o.params {
		grad := p.Grad()
		if grad == nil {
			continue
		}
		applyUpdate(p.Value(), grad, o.lr)
		updated++
	}
	klog.V(2).Infof("sgd: updated %d/%d parameters", updated, len(o.params))
}

func applyUpdate(value, grad *tensor.Tensor, lr float64) {
	switch value.DType() {
	case tensor.Float32:
		w, g := value.AsFloat32(), grad.AsFloat32()
		for i := range w {
			w[i] -= float32(lr) * g[i]
		}
	case tensor.Float64:
		w, g := value.AsFloat64(), grad.AsFloat64()
		for i := range w {
			w[i] -= lr * g[i]
		}
	}
}
