package nn

import "github.com/drift-ml/drift/internal/autodiff"

// MSE computes the mean squared error between prediction and target as
// a scalar-shaped variable: mean((pred - target)²).
func MSE(pred, target *autodiff.Variable) *autodiff.Variable {
	diff := pred.Sub(target)
	n := diff.Value().NumElements()
	return diff.Mul(diff).Sum().Scale(1 / float64(n))
}
