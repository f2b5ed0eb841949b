// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package loader reads tensors from external weight and data files.
//
// Supported formats: SafeTensors, GGUF, and CSV. Format is detected from
// the file extension.
//
// Example:
//
//	r, err := loader.Open("weights.safetensors")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//	w, err := r.Load("linear.weight")
package loader

import (
	"github.com/drift-ml/drift/internal/loader"
)

// Format identifies a weight file format.
type Format = loader.Format

// Supported weight file formats.
const (
	FormatUnknown     Format = loader.FormatUnknown
	FormatSafeTensors Format = loader.FormatSafeTensors
	FormatGGUF        Format = loader.FormatGGUF
	FormatCSV         Format = loader.FormatCSV
)

// Reader provides uniform access to the named tensors of a weight file.
type Reader = loader.Reader

// DetectFormat guesses the format from the file extension.
func DetectFormat(path string) Format {
	return loader.DetectFormat(path)
}

// Open opens a weight file with format auto-detection.
func Open(path string) (Reader, error) {
	return loader.Open(path)
}
