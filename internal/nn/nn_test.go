package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/backend/cpu"
	"github.com/drift-ml/drift/internal/nn"
	"github.com/drift-ml/drift/internal/tensor"
)

func newCtx() *autodiff.Context {
	return autodiff.NewContext(cpu.New())
}

func TestLinearShapes(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		l := nn.NewLinear(ctx, 3, 2, true)
		assert.Len(t, l.Parameters(), 2)

		x := ctx.Tensor(tensor.Shape{5, 3}, make([]float32, 15))
		y := l.Forward(x)
		assert.True(t, y.Value().Shape().Equal(tensor.Shape{5, 2}))
	})
}

func TestLinearWithoutBias(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		l := nn.NewLinear(ctx, 3, 2, false)
		assert.Len(t, l.Parameters(), 1)

		x := ctx.Tensor(tensor.Shape{1, 3}, []float32{0, 0, 0})
		y := l.Forward(x)
		// No bias: zero input maps to zero output.
		assert.Equal(t, []float32{0, 0}, y.Value().AsFloat32())
	})
}

func TestLinearBiasGradientIsColumnSum(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		l := nn.NewLinear(ctx, 2, 2, true)
		x := ctx.Tensor(tensor.Shape{3, 2}, make([]float32, 6), false)

		require.NoError(t, l.Forward(x).Sum().Backward(nil))

		bias := l.Parameters()[1]
		require.NotNil(t, bias.Grad())
		// d(sum)/d(bias_j) counts one contribution per batch row.
		assert.Equal(t, []float32{3, 3}, bias.Grad().AsFloat32())
	})
}

func TestActivations(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		x := ctx.Tensor(tensor.Shape{3}, []float32{-1, 0, 2})

		relu := nn.ReLU().Forward(x)
		assert.Equal(t, []float32{0, 0, 2}, relu.Value().AsFloat32())

		sig := nn.Sigmoid().Forward(ctx.Tensor(tensor.Shape{1}, []float32{0}))
		assert.InDelta(t, 0.5, sig.Value().Item(), 1e-6)

		th := nn.Tanh().Forward(ctx.Tensor(tensor.Shape{1}, []float32{0}))
		assert.InDelta(t, 0, th.Value().Item(), 1e-6)

		assert.Nil(t, nn.ReLU().Parameters())
	})
}

func TestSequentialComposesAndCollectsParams(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		model := nn.NewSequential(
			nn.NewLinear(ctx, 2, 4, true),
			nn.Tanh(),
			nn.NewLinear(ctx, 4, 1, true),
		)
		assert.Len(t, model.Parameters(), 4)

		x := ctx.Tensor(tensor.Shape{3, 2}, make([]float32, 6))
		y := model.Forward(x)
		assert.True(t, y.Value().Shape().Equal(tensor.Shape{3, 1}))
	})
}

func TestMSE(t *testing.T) {
	ctx := newCtx()
	ctx.Training(func() {
		pred := ctx.Tensor(tensor.Shape{2}, []float32{1, 3})
		target := ctx.Tensor(tensor.Shape{2}, []float32{0, 1}, false)

		loss := nn.MSE(pred, target)
		// ((1-0)² + (3-1)²) / 2 = 2.5
		assert.InDelta(t, 2.5, loss.Value().Item(), 1e-6)

		require.NoError(t, loss.Backward(nil))
		// d/d(pred_i) = 2(pred_i - target_i)/n
		assert.InDelta(t, 1, pred.Grad().At(0), 1e-6)
		assert.InDelta(t, 2, pred.Grad().At(1), 1e-6)
	})
}
