// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package cpu provides the pure-Go CPU backend.
package cpu

import (
	internalcpu "github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/tensor"
)

// Backend is the CPU implementation of tensor primitives.
type Backend = internalcpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new CPU backend.
//
// Example:
//
//	ctx := autodiff.NewContext(cpu.New())
func New() *Backend {
	return internalcpu.New()
}
