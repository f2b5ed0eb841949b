// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package graph provides lazily evaluated compute DAGs over arbitrary
// value types. The autodiff engine builds on the same ideas with tensor
// semantics; this package is the value-agnostic core.
package graph

import (
	"github.com/drift-ml/drift/internal/graph"
)

// ErrStructure reports a malformed compute node, such as an operation
// applied to the wrong number of inputs. Match with errors.Is.
var ErrStructure = graph.ErrStructure

// Node is a vertex of a compute DAG producing a value of type T.
type Node[T any] = graph.Node[T]

// Const is a leaf node holding a fixed value.
type Const[T any] = graph.Const[T]

// Func is an interior node combining the values of its inputs.
type Func[T any] = graph.Func[T]

// Lazy wraps a node and caches its first evaluation.
type Lazy[T any] = graph.Lazy[T]

// NewConst creates a leaf node with a fixed value.
func NewConst[T any](value T) *Const[T] {
	return graph.NewConst(value)
}

// NewFunc creates an interior node. Evaluate fails with ErrStructure if
// the number of inputs does not match arity.
func NewFunc[T any](kind string, arity int, combine func(args []T) (T, error), inputs ...Node[T]) *Func[T] {
	return graph.NewFunc(kind, arity, combine, inputs...)
}

// NewLazy wraps inner so repeated evaluation reuses the first result
// until ClearCache is called.
func NewLazy[T any](inner Node[T]) *Lazy[T] {
	return graph.NewLazy(inner)
}
