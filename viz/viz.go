// Copyright 2026 The Drift Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package viz renders autodiff provenance graphs for inspection.
package viz

import (
	"github.com/drift-ml/drift/autodiff"
	"github.com/drift-ml/drift/internal/viz"
)

// DOT renders the provenance graph rooted at v in Graphviz DOT format.
func DOT(v *autodiff.Variable) string {
	return viz.DOT(v)
}
