package autodiff

import (
	"fmt"

	"github.com/drift-ml/drift/internal/autodiff/ops"
	"github.com/drift-ml/drift/internal/tensor"
)

// Variable wraps a tensor value with gradient provenance.
//
// A Variable is in exactly one of two states, fixed at construction:
//   - Leaf: no producing operation (Op() == nil).
//   - Derived: produced by an operation over ordered parent variables.
//
// Variables are immutable data once built; only the gradient slot
// mutates, and only via Backward.
type Variable struct {
	ctx          *Context
	value        *tensor.Tensor
	requiresGrad bool
	op           ops.Operation // nil for leaves
	parents      []*Variable   // ordered; nil for leaves
	grad         *tensor.Tensor
}

// Value returns the wrapped tensor.
func (v *Variable) Value() *tensor.Tensor {
	return v.value
}

// Grad returns the gradient populated by the most recent Backward, or
// nil if none has been computed for this variable.
func (v *Variable) Grad() *tensor.Tensor {
	return v.grad
}

// RequiresGrad reports whether Backward populates this variable's
// gradient slot.
func (v *Variable) RequiresGrad() bool {
	return v.requiresGrad
}

// IsLeaf reports whether the variable has no producing operation.
func (v *Variable) IsLeaf() bool {
	return v.op == nil
}

// Op returns the producing operation, or nil for leaves. Read-only
// introspection for visualization and export consumers.
func (v *Variable) Op() ops.Operation {
	return v.op
}

// Parents returns a copy of the ordered parent variables.
func (v *Variable) Parents() []*Variable {
	if v.parents == nil {
		return nil
	}
	out := make([]*Variable, len(v.parents))
	copy(out, v.parents)
	return out
}

// Detach returns a leaf sharing this variable's value with no
// provenance and no gradient tracking.
func (v *Variable) Detach() *Variable {
	return &Variable{ctx: v.ctx, value: v.value}
}

// String returns a short description of the variable.
func (v *Variable) String() string {
	state := "leaf"
	if v.op != nil {
		state = v.op.Kind()
	}
	return fmt.Sprintf("Variable(%s, %v, requiresGrad=%t)", state, v.value.Shape(), v.requiresGrad)
}

// derive builds the result of an operation call. Under training the
// result carries provenance and requires gradients iff at least one
// parent does; under inference it is a plain untracked value.
func (c *Context) derive(op ops.Operation, value *tensor.Tensor, parents ...*Variable) *Variable {
	if c.Mode() == ModeInference {
		return &Variable{ctx: c, value: value}
	}

	requiresGrad := false
	for _, p := range parents {
		requiresGrad = requiresGrad || p.requiresGrad
	}
	return &Variable{
		ctx:          c,
		value:        value,
		requiresGrad: requiresGrad,
		op:           op,
		parents:      parents,
	}
}

// Derive wraps a precomputed value as a derived variable under this
// context. It is the extension point for operations computed outside
// the built-in set; pass an ops.OpaqueOp to tag a result that cannot be
// differentiated through.
func (c *Context) Derive(op ops.Operation, value *tensor.Tensor, parents ...*Variable) *Variable {
	return c.derive(op, value, parents...)
}
