package graph_test

import (
	"testing"

	"github.com/pkg/errors"

	"github.com/drift-ml/drift/internal/graph"
)

func add(args []float64) (float64, error) { return args[0] + args[1], nil }
func mul(args []float64) (float64, error) { return args[0] * args[1], nil }

func TestConstEvaluate(t *testing.T) {
	c := graph.NewConst(3.5)
	v, err := c.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if v != 3.5 {
		t.Errorf("Evaluate() = %v, want 3.5", v)
	}
	if c.Inputs() != nil {
		t.Error("leaf node reported inputs")
	}
}

func TestFuncEvaluatesInputsInOrder(t *testing.T) {
	var order []string
	observe := func(name string, v float64) graph.Node[float64] {
		return graph.NewFunc("observe", 1, func(args []float64) (float64, error) {
			order = append(order, name)
			return args[0], nil
		}, graph.NewConst(v))
	}

	n := graph.NewFunc("add", 2, add, observe("left", 1), observe("right", 2))
	v, err := n.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if v != 3 {
		t.Errorf("Evaluate() = %v, want 3", v)
	}
	if len(order) != 2 || order[0] != "left" || order[1] != "right" {
		t.Errorf("evaluation order = %v, want [left right]", order)
	}
}

func TestFuncArityMismatch(t *testing.T) {
	n := graph.NewFunc("add", 2, add, graph.NewConst(1.0))
	_, err := n.Evaluate()
	if err == nil {
		t.Fatal("arity mismatch not reported")
	}
	if !errors.Is(err, graph.ErrStructure) {
		t.Errorf("expected ErrStructure, got %v", err)
	}
}

func TestSharedNodeIsDAGNotTree(t *testing.T) {
	evals := 0
	shared := graph.NewFunc("count", 1, func(args []float64) (float64, error) {
		evals++
		return args[0], nil
	}, graph.NewConst(2.0))

	// (shared + shared) — same node consumed twice.
	root := graph.NewFunc("add", 2, add, shared, shared)
	v, err := root.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if v != 4 {
		t.Errorf("Evaluate() = %v, want 4", v)
	}
	// Plain nodes re-evaluate per consumer.
	if evals != 2 {
		t.Errorf("shared node evaluated %d times, want 2", evals)
	}
}

func TestLazyCachesFirstResult(t *testing.T) {
	evals := 0
	inner := graph.NewFunc("count", 1, func(args []float64) (float64, error) {
		evals++
		return args[0] * 10, nil
	}, graph.NewConst(4.0))

	lazy := graph.NewLazy[float64](inner)
	root := graph.NewFunc("add", 2, add, lazy, lazy)

	for i := 0; i < 3; i++ {
		v, err := root.Evaluate()
		if err != nil {
			t.Fatal(err)
		}
		if v != 80 {
			t.Fatalf("Evaluate() = %v, want 80", v)
		}
	}
	if evals != 1 {
		t.Errorf("inner evaluated %d times, want 1", evals)
	}

	lazy.ClearCache()
	if _, err := root.Evaluate(); err != nil {
		t.Fatal(err)
	}
	if evals != 2 {
		t.Errorf("inner evaluated %d times after ClearCache, want 2", evals)
	}
}

func TestLazyDoesNotCacheErrors(t *testing.T) {
	fail := true
	inner := graph.NewFunc("flaky", 0, func([]float64) (float64, error) {
		if fail {
			return 0, errors.New("transient")
		}
		return 7, nil
	})

	lazy := graph.NewLazy[float64](inner)
	if _, err := lazy.Evaluate(); err == nil {
		t.Fatal("expected error from first evaluation")
	}

	fail = false
	v, err := lazy.Evaluate()
	if err != nil {
		t.Fatalf("error cached across retries: %v", err)
	}
	if v != 7 {
		t.Errorf("Evaluate() = %v, want 7", v)
	}
}

func TestNestedExpression(t *testing.T) {
	// (2 + 3) * 4 = 20
	sum := graph.NewFunc("add", 2, add, graph.NewConst(2.0), graph.NewConst(3.0))
	root := graph.NewFunc("mul", 2, mul, sum, graph.NewConst(4.0))

	v, err := root.Evaluate()
	if err != nil {
		t.Fatal(err)
	}
	if v != 20 {
		t.Errorf("Evaluate() = %v, want 20", v)
	}
}
