package tensor

// Device represents the compute device for tensor operations.
type Device int

// Supported compute devices.
const (
	CPU Device = iota
	WebGPU
)

// String returns a human-readable device name.
func (d Device) String() string {
	switch d {
	case CPU:
		return "CPU"
	case WebGPU:
		return "WebGPU"
	default:
		return "Unknown"
	}
}

// Backend is the pluggable primitive provider. It supplies the actual
// elementwise, matrix and activation implementations invoked by the
// engine; the graph core never hard-wires a particular implementation.
//
// All primitives are pure: they allocate a fresh result and never
// modify their operands. Shape violations return ErrShape.
type Backend interface {
	// Element-wise binary operations. Operands must have identical
	// shapes; no implicit broadcasting.
	Add(a, b *Tensor) (*Tensor, error)
	Sub(a, b *Tensor) (*Tensor, error)
	Mul(a, b *Tensor) (*Tensor, error)

	// MatMul multiplies two 2-D tensors: [M, K] @ [K, N] -> [M, N].
	MatMul(a, b *Tensor) (*Tensor, error)

	// Transpose swaps the two axes of a 2-D tensor.
	Transpose(t *Tensor) (*Tensor, error)

	// Scale multiplies every element by a scalar.
	Scale(t *Tensor, s float64) (*Tensor, error)

	// Sum reduces a tensor to its total, returning shape {1}.
	Sum(t *Tensor) (*Tensor, error)

	// Map applies f to every element. Used by activation operations,
	// which carry their own derivative alongside f.
	Map(t *Tensor, f func(float64) float64) (*Tensor, error)

	// Metadata
	Name() string
	Device() Device
}
