//go:build windows

// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package webgpu provides the WebGPU backend for GPU-accelerated tensor
// primitives. Only float32 runs on the GPU; everything else falls back to
// the CPU backend.
//
// Example:
//
//	gpu, err := webgpu.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer gpu.Release()
//
//	ctx := autodiff.NewContext(gpu)
package webgpu

import (
	internalwebgpu "github.com/drift-ml/drift/internal/backend/webgpu"
	"github.com/drift-ml/drift/tensor"
)

// Backend is the WebGPU implementation of tensor primitives.
type Backend = internalwebgpu.Backend

// Compile-time check that Backend implements tensor.Backend.
var _ tensor.Backend = (*Backend)(nil)

// New creates a new WebGPU backend. Call Release when done to free GPU
// resources. Returns an error if no compatible GPU or native library is
// available.
func New() (*Backend, error) {
	return internalwebgpu.New()
}
