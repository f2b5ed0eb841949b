package autodiff

import (
	"github.com/pkg/errors"
	"k8s.io/klog/v2"

	"github.com/drift-ml/drift/internal/tensor"
)

// Backward computes gradients for every ancestor of v that requires
// them, via one reverse-mode traversal.
//
// seed is the upstream gradient at the root; nil defaults to a tensor
// of ones matching the root's shape. Callers invoking Backward on a
// multi-element root without summation intent must pass an explicit
// seed.
//
// Contributions from multiple consumers of a shared subexpression are
// summed elementwise; each operation's backward rule runs at most once,
// with the fully accumulated upstream gradient. Gradient slots are
// reset per call: a Backward publishes fresh accumulators to every
// variable it reaches, never adding onto a previous call's result.
func (v *Variable) Backward(seed *tensor.Tensor) error {
	if v.op == nil {
		return errors.Wrap(ErrUntracked, "backward")
	}

	if seed == nil {
		seed = tensor.OnesLike(v.value)
	} else if !seed.Shape().Equal(v.value.Shape()) {
		return errors.Wrapf(tensor.ErrShape, "backward seed %v vs root %v",
			seed.Shape(), v.value.Shape())
	}

	// Post-order over parent edges: parents always precede consumers,
	// so the reverse iteration below processes every node only after
	// all of its in-traversal consumers contributed their gradient.
	visited := make(map[*Variable]bool)
	var order []*Variable
	var visit func(n *Variable)
	visit = func(n *Variable) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, p := range n.parents {
			visit(p)
		}
		order = append(order, n)
	}
	visit(v)

	klog.V(2).Infof("backward: traversing %d nodes from %s root", len(order), v.op.Kind())

	backend := v.ctx.backend
	grads := map[*Variable]*tensor.Tensor{v: seed}

	for i := len(order) - 1; i >= 0; i-- {
		n := order[i]
		grad, ok := grads[n]
		if !ok || n.op == nil {
			continue
		}

		contribs, err := n.op.Backward(grad, backend)
		if err != nil {
			return errors.WithMessagef(err, "backward through %s", n.op.Kind())
		}
		if len(contribs) != len(n.parents) {
			return errors.Errorf("backward through %s: %d gradients for %d inputs",
				n.op.Kind(), len(contribs), len(n.parents))
		}

		for j, parent := range n.parents {
			if contribs[j] == nil {
				continue
			}
			// Subtrees with no path to a requires-grad leaf receive
			// nothing; requiresGrad already propagated forward.
			if !parent.requiresGrad {
				continue
			}
			if existing, exists := grads[parent]; exists {
				sum, err := backend.Add(existing, contribs[j])
				if err != nil {
					return errors.WithMessage(err, "backward: accumulate")
				}
				grads[parent] = sum
			} else {
				grads[parent] = contribs[j]
			}
		}
	}

	for _, n := range order {
		if !n.requiresGrad {
			continue
		}
		if g, ok := grads[n]; ok {
			n.grad = g
		}
	}
	return nil
}
