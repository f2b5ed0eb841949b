// Package nn provides minimal network building blocks over the autodiff
// engine. Layers are plain composition: every Forward is a sequence of
// ordinary operation calls into the core, so gradient tracking follows
// the active autodiff context with no extra machinery.
package nn

import "github.com/drift-ml/drift/internal/autodiff"

// Module is a composable network component.
type Module interface {
	// Forward computes the module's output for the given input.
	Forward(x *autodiff.Variable) *autodiff.Variable

	// Parameters returns the module's trainable leaf variables.
	Parameters() []*autodiff.Variable
}
