// Package graph provides a reusable, evaluatable expression DAG over an
// arbitrary value type.
//
// Nodes hold ordered, shared references to their inputs: a node may be
// consumed by several downstream nodes, producing a DAG. Cycles are
// structurally impossible because a node's inputs must exist before the
// node itself. Evaluate is pure given unchanged inputs.
package graph

import "github.com/pkg/errors"

// ErrStructure reports a malformed node, such as an operation evaluated
// with the wrong number of inputs. Detected at Evaluate time, not at
// construction.
var ErrStructure = errors.New("malformed compute node")

// Node is a single vertex in the expression DAG.
type Node[T any] interface {
	// Evaluate recursively evaluates inputs and combines them into a value.
	Evaluate() (T, error)

	// Inputs returns the node's ordered input references.
	Inputs() []Node[T]
}

// Const is a leaf node holding a fixed value.
type Const[T any] struct {
	value T
}

// NewConst creates a leaf node.
func NewConst[T any](value T) *Const[T] {
	return &Const[T]{value: value}
}

// Evaluate returns the held value.
func (c *Const[T]) Evaluate() (T, error) {
	return c.value, nil
}

// Inputs returns nil; leaves have no inputs.
func (c *Const[T]) Inputs() []Node[T] {
	return nil
}

// Func combines the values of its inputs via a pure function.
type Func[T any] struct {
	kind    string
	arity   int
	inputs  []Node[T]
	combine func(args []T) (T, error)
}

// NewFunc creates a function node of the given kind and declared arity.
// The input count is not validated here; a mismatch surfaces as
// ErrStructure on Evaluate.
func NewFunc[T any](kind string, arity int, combine func(args []T) (T, error), inputs ...Node[T]) *Func[T] {
	return &Func[T]{
		kind:    kind,
		arity:   arity,
		inputs:  inputs,
		combine: combine,
	}
}

// Kind returns the node's operation kind tag.
func (n *Func[T]) Kind() string {
	return n.kind
}

// Evaluate checks arity, evaluates all inputs in order, then combines them.
func (n *Func[T]) Evaluate() (T, error) {
	var zero T
	if len(n.inputs) != n.arity {
		return zero, errors.Wrapf(ErrStructure, "%s node has %d inputs, wants %d",
			n.kind, len(n.inputs), n.arity)
	}

	args := make([]T, len(n.inputs))
	for i, in := range n.inputs {
		v, err := in.Evaluate()
		if err != nil {
			return zero, err
		}
		args[i] = v
	}
	return n.combine(args)
}

// Inputs returns the node's ordered input references.
func (n *Func[T]) Inputs() []Node[T] {
	return n.inputs
}

// Lazy wraps a node and caches its first Evaluate result until
// ClearCache is called. Repeated Evaluate on an unchanged graph returns
// the identical cached value without re-evaluating inputs.
type Lazy[T any] struct {
	inner  Node[T]
	cached bool
	value  T
}

// NewLazy wraps a node with result caching.
func NewLazy[T any](inner Node[T]) *Lazy[T] {
	return &Lazy[T]{inner: inner}
}

// Evaluate returns the cached result, computing it on first call.
func (l *Lazy[T]) Evaluate() (T, error) {
	if l.cached {
		return l.value, nil
	}
	v, err := l.inner.Evaluate()
	if err != nil {
		var zero T
		return zero, err
	}
	l.value = v
	l.cached = true
	return v, nil
}

// ClearCache forces recomputation on the next Evaluate.
func (l *Lazy[T]) ClearCache() {
	var zero T
	l.cached = false
	l.value = zero
}

// Inputs returns the wrapped node as the single input.
func (l *Lazy[T]) Inputs() []Node[T] {
	return []Node[T]{l.inner}
}
