// Package autodiff implements reverse-mode automatic differentiation
// over a provenance DAG of tensor operations.
//
// A Context owns a stack of mode frames (training vs. inference) and a
// primitive backend. Tensor factories and operation calls consult the
// current frame: under training, results carry provenance (producing
// operation plus ordered parents) and can be differentiated with
// Backward; under inference, results are plain values with no tracking.
//
// A Context belongs to exactly one logical flow of execution. Concurrent
// flows each create their own Context; there is no process-global mode.
//
// Usage:
//
//	ctx := autodiff.NewContext(cpu.New())
//	ctx.Training(func() {
//	    x := ctx.Tensor(tensor.Shape{1}, []float32{3}, true)
//	    y := x.Add(x.Mul(x)) // y = x + x²
//	    _ = y.Backward(nil)
//	    fmt.Println(x.Grad()) // dy/dx = 1 + 2x = 7
//	})
package autodiff

import (
	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/tensor"
)

// Mode selects whether operation calls record gradient provenance.
type Mode int

// Autodiff modes.
const (
	ModeTraining Mode = iota
	ModeInference
)

// String returns a human-readable mode name.
func (m Mode) String() string {
	switch m {
	case ModeTraining:
		return "training"
	case ModeInference:
		return "inference"
	default:
		return "unknown"
	}
}

// ErrUntracked reports Backward invoked without a meaningful gradient
// target: a pure leaf, or a value produced without provenance tracking.
var ErrUntracked = errors.New("backward on a tensor with no provenance")

// frame is one entry of the scoped mode stack.
type frame struct {
	mode                Mode
	defaultRequiresGrad bool
}

// Context is the scoped switch governing tensor-factory behavior for one
// logical flow. Frames form a strict LIFO stack; the innermost frame
// governs until its block exits, then the exact previous frame is
// restored.
type Context struct {
	backend tensor.Backend
	frames  []frame
}

// NewContext creates a Context over the given primitive backend.
// The root frame is training mode with defaultRequiresGrad = false.
func NewContext(backend tensor.Backend) *Context {
	return &Context{
		backend: backend,
		frames:  []frame{{mode: ModeTraining, defaultRequiresGrad: false}},
	}
}

// Backend returns the primitive provider this context computes with.
func (c *Context) Backend() tensor.Backend {
	return c.backend
}

// Mode returns the mode of the current frame.
func (c *Context) Mode() Mode {
	return c.current().mode
}

func (c *Context) current() frame {
	return c.frames[len(c.frames)-1]
}

// With pushes a frame, runs body under it, and pops it on every exit
// path, including panics. Nested calls restore frames strictly LIFO.
func (c *Context) With(mode Mode, defaultRequiresGrad bool, body func()) {
	c.frames = append(c.frames, frame{mode: mode, defaultRequiresGrad: defaultRequiresGrad})
	defer func() {
		c.frames = c.frames[:len(c.frames)-1]
	}()
	body()
}

// Training runs body in training mode with defaultRequiresGrad = true.
func (c *Context) Training(body func()) {
	c.With(ModeTraining, true, body)
}

// Inference runs body in inference mode.
func (c *Context) Inference(body func()) {
	c.With(ModeInference, false, body)
}

// Tensor creates a leaf from float32 data under the current frame.
// The optional requiresGrad overrides the frame default. Under
// inference the result is a plain untracked value regardless.
func (c *Context) Tensor(shape tensor.Shape, data []float32, requiresGrad ...bool) *Variable {
	t, err := tensor.FromSlice(data, shape)
	if err != nil {
		panic(err)
	}
	return c.Leaf(t, requiresGrad...)
}

// Leaf wraps an existing tensor value (e.g. from a weight loader) as a
// leaf under the current frame.
func (c *Context) Leaf(t *tensor.Tensor, requiresGrad ...bool) *Variable {
	if c.Mode() == ModeInference {
		return &Variable{ctx: c, value: t}
	}

	rg := c.current().defaultRequiresGrad
	if len(requiresGrad) > 0 {
		rg = requiresGrad[0]
	}
	return &Variable{ctx: c, value: t, requiresGrad: rg}
}
