package submit

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrorKind tags a planner/input error with its class in §7's taxonomy.
type ErrorKind int

const (
	// KindSchedulerCycle: the constraint graph contains a cycle. A planner
	// bug, never a user error — a correctly collected constraint set for a
	// valid stack cannot cycle (§4.7, §9).
	KindSchedulerCycle ErrorKind = iota
	// KindPlannerBug: duplicate node insert with conflicting data, or any
	// other internal consistency violation.
	KindPlannerBug
	// KindInputInconsistency: a segment or snapshot PR references a
	// bookmark name absent from the stack.
	KindInputInconsistency
)

// SchedulerCycle reports a topological sort that did not consume every node:
// the constraint graph contains a cycle. cycle_nodes is the Display form of
// every node left with residual in-degree, for the "please report" diagnostic
// in §7.
type SchedulerCycle struct {
	Message    string
	CycleNodes []string
}

func (e *SchedulerCycle) Error() string {
	return fmt.Sprintf("%s: %v", e.Message, e.CycleNodes)
}

// Kind reports the error's ErrorKind tag.
func (e *SchedulerCycle) Kind() ErrorKind { return KindSchedulerCycle }

// newSchedulerCycle wraps the cycle into a stack-trace-carrying error via
// pkg/errors, since a cycle is always a planner bug worth a trace at the
// point it was first detected, not just a flat message.
func newSchedulerCycle(cycleNodes []string) error {
	return errors.WithStack(&SchedulerCycle{
		Message:    "scheduler detected a cycle in the constraint graph; this is a bug, please report",
		CycleNodes: cycleNodes,
	})
}

// PlannerBugError reports an internal consistency violation that should be
// unreachable for any correctly constructed input. A duplicate node insert
// with conflicting data does not produce one: NodeRegistry.insert panics.
type PlannerBugError struct {
	Message string
}

func (e *PlannerBugError) Error() string   { return e.Message }
func (e *PlannerBugError) Kind() ErrorKind { return KindPlannerBug }

func newPlannerBug(format string, args ...any) error {
	return errors.WithStack(&PlannerBugError{Message: fmt.Sprintf(format, args...)})
}
