// Package viz renders gradient provenance graphs as Graphviz DOT.
//
// The walk is strictly read-only: it follows operation tags and ordered
// parents and never touches gradients or provenance.
package viz

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/drift-ml/drift/internal/autodiff"
)

// DOT renders the provenance DAG rooted at v as a Graphviz digraph.
// Leaves are boxes labeled with their shape; derived nodes are ellipses
// labeled with their operation kind. Edges point from parent to
// consumer, in input order.
func DOT(v *autodiff.Variable) string {
	var sb strings.Builder
	sb.WriteString("digraph provenance {\n")
	sb.WriteString("  rankdir=BT;\n")

	ids := make(map[*autodiff.Variable]string)
	emit(&sb, v, ids)

	sb.WriteString("}\n")
	return sb.String()
}

func emit(sb *strings.Builder, v *autodiff.Variable, ids map[*autodiff.Variable]string) string {
	if id, ok := ids[v]; ok {
		return id
	}

	id := "n" + strings.ReplaceAll(uuid.NewString(), "-", "")
	ids[v] = id

	if op := v.Op(); op != nil {
		fmt.Fprintf(sb, "  %s [label=%q];\n", id, op.Kind())
	} else {
		label := fmt.Sprintf("leaf %v", v.Value().Shape())
		if v.RequiresGrad() {
			label += " (grad)"
		}
		fmt.Fprintf(sb, "  %s [label=%q, shape=box];\n", id, label)
	}

	for _, parent := range v.Parents() {
		parentID := emit(sb, parent, ids)
		fmt.Fprintf(sb, "  %s -> %s;\n", parentID, id)
	}
	return id
}
