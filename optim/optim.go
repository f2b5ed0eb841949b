// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package optim provides optimizers consuming the gradients populated by
// the autodiff engine.
package optim

import (
	"github.com/drift-ml/drift/autodiff"
	"github.com/drift-ml/drift/internal/optim"
)

// SGD is plain stochastic gradient descent.
type SGD = optim.SGD

// NewSGD creates an SGD optimizer over the given parameters.
//
// Example:
//
//	opt := optim.NewSGD(model.Parameters(), 0.1)
//	// ... backward pass ...
//	opt.Step()
func NewSGD(params []*autodiff.Variable, lr float64) *SGD {
	return optim.NewSGD(params, lr)
}
