// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package autodiff provides reverse-mode automatic differentiation.
//
// A Context owns a backend and a stack of execution modes. Variables
// created inside a Training scope record their provenance (operation plus
// parents); calling Backward on a result walks that graph in reverse and
// accumulates gradients into every leaf that requires them.
//
// Example:
//
//	ctx := autodiff.NewContext(cpu.New())
//	ctx.Training(func() {
//	    x := ctx.Tensor(tensor.Shape{1}, []float32{3}, true)
//	    y := x.Add(x.Mul(x)) // y = x + x*x
//	    _ = y.Backward(nil)
//	    fmt.Println(x.Grad()) // dy/dx = 1 + 2x = 7
//	})
package autodiff

import (
	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/autodiff/ops"
	"github.com/drift-ml/drift/tensor"
)

// Context owns a backend and the scoped mode stack.
type Context = autodiff.Context

// Variable is a tensor with optional gradient tracking.
type Variable = autodiff.Variable

// Mode selects between gradient tracking and plain evaluation.
type Mode = autodiff.Mode

// Execution modes.
const (
	ModeTraining  Mode = autodiff.ModeTraining
	ModeInference Mode = autodiff.ModeInference
)

// Operation is a differentiable node operation with a backward rule.
type Operation = ops.Operation

// Sentinel errors; match with errors.Is.
var (
	// ErrUntracked reports Backward on a variable with no provenance.
	ErrUntracked = autodiff.ErrUntracked
	// ErrUnsupported reports a backward pass through an operation that
	// has no gradient rule.
	ErrUnsupported = ops.ErrUnsupported
)

// NewContext creates a Context in training mode with gradient tracking
// off by default for new leaves.
func NewContext(backend tensor.Backend) *Context {
	return autodiff.NewContext(backend)
}
