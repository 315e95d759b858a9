package submit

import (
	"log/slog"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// Step is one ordered, self-contained execution operation in a SubmissionPlan
// — a Node with all bookmark/PR data cloned in, so the plan carries no
// back-references into the workspace snapshot (§3 Ownership).
type Step struct {
	Node Node
}

// SubmissionPlan is the core's sole output: an ordered step list plus the
// constraints that produced it, retained for display and debugging (§3).
// Constructed once by AssemblePlan; read-only afterward.
type SubmissionPlan struct {
	Segments      []model.NarrowedBookmarkSegment
	Constraints   []Constraint
	ExecutionSteps []Step
	ExistingPRs   []model.PullRequest
	Remote        string
	DefaultBranch string
}

// AssemblePlan implements §4.8: build nodes, collect constraints, resolve
// edges, topologically sort, then append the publish post-pass and apply
// draft/publish flag precedence.
func AssemblePlan(stack *StackModel, remote string, opts BuildOptions, logger *slog.Logger) (*SubmissionPlan, error) {
	reg := buildNodes(stack, opts)
	constraints := collectConstraints(stack, logger)
	edges := resolveEdges(constraints, reg, logger)

	order, err := topoSort(reg, edges)
	if err != nil {
		return nil, err
	}

	steps := make([]Step, 0, len(order)+4)
	for _, idx := range order {
		steps = append(steps, Step{Node: reg.Node(idx)})
	}

	// Post-pass: publish steps carry no ordering dependency with anything
	// else and always land after the sorted body (§4.8 step 5, invariant 5).
	for _, n := range publishNodes(stack, opts) {
		steps = append(steps, Step{Node: n})
	}

	return &SubmissionPlan{
		Segments:       stack.Segments(),
		Constraints:    constraints,
		ExecutionSteps: steps,
		ExistingPRs:    stack.AllExistingPRs(),
		Remote:         remote,
		DefaultBranch:  stack.DefaultBranch(),
	}, nil
}
