package viz_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/tensor"
	"github.com/drift-ml/drift/internal/viz"
)

func TestDOTLeaf(t *testing.T) {
	ctx := autodiff.NewContext(cpu.New())
	x := ctx.Tensor(tensor.Shape{2, 2}, make([]float32, 4), true)

	out := viz.DOT(x)
	assert.True(t, strings.HasPrefix(out, "digraph provenance {"))
	assert.Contains(t, out, "shape=box")
	assert.Contains(t, out, "(grad)")
	assert.NotContains(t, out, "->")
}

func TestDOTDerivedGraph(t *testing.T) {
	ctx := autodiff.NewContext(cpu.New())
	ctx.Training(func() {
		a := ctx.Tensor(tensor.Shape{2}, []float32{1, 2})
		b := ctx.Tensor(tensor.Shape{2}, []float32{3, 4}, false)
		y := a.Add(b).Sum()

		out := viz.DOT(y)
		assert.Contains(t, out, `label="add"`)
		assert.Contains(t, out, `label="sum"`)
		// Two leaves, one with gradient tracking.
		assert.Equal(t, 2, strings.Count(out, "shape=box"))
		assert.Equal(t, 1, strings.Count(out, "(grad)"))
		// Three edges: a->add, b->add, add->sum.
		assert.Equal(t, 3, strings.Count(out, "->"))
	})
}

func TestDOTSharedNodeEmittedOnce(t *testing.T) {
	ctx := autodiff.NewContext(cpu.New())
	ctx.Training(func() {
		x := ctx.Tensor(tensor.Shape{1}, []float32{2})
		y := x.Add(x.Mul(x)) // x consumed by both mul and add

		out := viz.DOT(y)
		// x appears as one node even though three edges reference it.
		assert.Equal(t, 1, strings.Count(out, "shape=box"))
		assert.Equal(t, 4, strings.Count(out, "->"))
	})
}
