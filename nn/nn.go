// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides neural network building blocks layered on the
// autodiff engine.
//
// Example:
//
//	ctx := autodiff.NewContext(cpu.New())
//	model := nn.NewSequential(
//	    nn.NewLinear(ctx, 2, 4, true),
//	    nn.Tanh(),
//	    nn.NewLinear(ctx, 4, 1, true),
//	)
package nn

import (
	"github.com/drift-ml/drift/autodiff"
	"github.com/drift-ml/drift/internal/nn"
)

// Module is anything with a forward pass and trainable parameters.
type Module = nn.Module

// Linear is a fully connected layer.
type Linear = nn.Linear

// Activation applies an element-wise nonlinearity.
type Activation = nn.Activation

// Sequential chains modules, feeding each output into the next.
type Sequential = nn.Sequential

// NewLinear creates a Linear layer with Xavier-style initialization.
func NewLinear(ctx *autodiff.Context, in, out int, withBias bool) *Linear {
	return nn.NewLinear(ctx, in, out, withBias)
}

// NewSequential creates a sequential container.
func NewSequential(modules ...Module) *Sequential {
	return nn.NewSequential(modules...)
}

// NewActivation creates an activation from a function and its derivative.
func NewActivation(name string, f, deriv func(float64) float64) *Activation {
	return nn.NewActivation(name, f, deriv)
}

// ReLU returns the rectified linear activation.
func ReLU() *Activation {
	return nn.ReLU()
}

// Sigmoid returns the logistic activation.
func Sigmoid() *Activation {
	return nn.Sigmoid()
}

// Tanh returns the hyperbolic tangent activation.
func Tanh() *Activation {
	return nn.Tanh()
}

// MSE computes the mean squared error between prediction and target.
func MSE(pred, target *autodiff.Variable) *autodiff.Variable {
	return nn.MSE(pred, target)
}
