package autodiff_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/drift-ml/drift/internal/autodiff"
	"github.com/drift-ml/drift/internal/tensor"
)

// checkGradients compares the engine's gradient for a scalar-valued
// expression against central finite differences over the same inputs.
func checkGradients(t *testing.T, data []float64, shape tensor.Shape,
	f func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable) {
	t.Helper()

	const eps = 1e-6
	const tol = 1e-4

	eval := func(vals []float64) float64 {
		ctx := newCtx()
		var out float64
		ctx.Inference(func() {
			in, err := tensor.FromSlice(vals, shape)
			require.NoError(t, err)
			out = f(ctx, ctx.Leaf(in)).Value().Item()
		})
		return out
	}

	ctx := newCtx()
	var analytic []float64
	ctx.Training(func() {
		in, err := tensor.FromSlice(data, shape)
		require.NoError(t, err)
		x := ctx.Leaf(in, true)
		y := f(ctx, x)
		require.NoError(t, y.Backward(nil))
		analytic = x.Grad().AsFloat64()
	})

	for i := range data {
		plus := append([]float64(nil), data...)
		minus := append([]float64(nil), data...)
		plus[i] += eps
		minus[i] -= eps

		numeric := (eval(plus) - eval(minus)) / (2 * eps)
		if math.Abs(numeric-analytic[i]) > tol*(1+math.Abs(numeric)) {
			t.Errorf("grad[%d]: analytic %v, numeric %v", i, analytic[i], numeric)
		}
	}
}

func TestGradCheckPolynomial(t *testing.T) {
	// sum(x ⊙ x ⊙ x + 2x)
	checkGradients(t, []float64{0.5, -1.2, 2.0, 0.1}, tensor.Shape{4},
		func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable {
			return x.Mul(x).Mul(x).Add(x.Scale(2)).Sum()
		})
}

func TestGradCheckTanhChain(t *testing.T) {
	tanh := math.Tanh
	dtanh := func(v float64) float64 {
		th := math.Tanh(v)
		return 1 - th*th
	}
	checkGradients(t, []float64{-0.7, 0.3, 1.1}, tensor.Shape{3},
		func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable {
			return x.Apply("tanh", tanh, dtanh).Mul(x).Sum()
		})
}

func TestGradCheckMatMulReduction(t *testing.T) {
	// sum(x · W) with a fixed weight matrix.
	w := []float64{0.2, -0.5, 1.5, 0.8, -1.0, 0.3}
	checkGradients(t, []float64{1.0, -2.0, 0.5, 3.0}, tensor.Shape{2, 2},
		func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable {
			wt, err := tensor.FromSlice(w, tensor.Shape{2, 3})
			require.NoError(t, err)
			return x.MatMul(ctx.Leaf(wt)).Sum()
		})
}

func TestGradCheckSharedInput(t *testing.T) {
	// sum((x + x⊙x) ⊙ x): x feeds three paths.
	checkGradients(t, []float64{0.9, -0.4}, tensor.Shape{2},
		func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable {
			return x.Add(x.Mul(x)).Mul(x).Sum()
		})
}

func TestGradCheckSigmoidMSE(t *testing.T) {
	sigmoid := func(v float64) float64 { return 1 / (1 + math.Exp(-v)) }
	dsigmoid := func(v float64) float64 {
		s := sigmoid(v)
		return s * (1 - s)
	}
	target := []float64{0, 1, 1, 0}
	checkGradients(t, []float64{0.1, -0.8, 1.4, -0.2}, tensor.Shape{4},
		func(ctx *autodiff.Context, x *autodiff.Variable) *autodiff.Variable {
			tt, err := tensor.FromSlice(target, tensor.Shape{4})
			require.NoError(t, err)
			diff := x.Apply("sigmoid", sigmoid, dsigmoid).Sub(ctx.Leaf(tt))
			return diff.Mul(diff).Sum().Scale(0.25)
		})
}
