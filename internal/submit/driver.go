package submit

import (
	"context"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// Executor performs the side-effecting half of one step kind. The
// implementation lives in internal/runner, which delegates to internal/vcs
// and internal/forge; the driver only ever sees this
// narrow interface, never the adapters themselves, so it can be exercised in
// tests with fakes (§4.9: "isolation... unit-testable without any forge").
type Executor interface {
	Push(ctx context.Context, bookmark string) StepOutcome
	UpdateBase(ctx context.Context, prNumber int, headBookmark, newBase string) StepOutcome
	CreatePr(ctx context.Context, headBookmark, baseBookmark string, draft bool) StepOutcome
	PublishPr(ctx context.Context, prNumber int, headBookmark string) StepOutcome
}

// OutcomeKind classifies a step's result per §4.9 and §7.
type OutcomeKind int

const (
	Success OutcomeKind = iota
	SoftError
	FatalError
)

// StepOutcome is what an Executor reports back for a single step.
type StepOutcome struct {
	Kind    OutcomeKind
	Message string
	PR      *model.PullRequest // set on Success when the step touched a PR
}

// StepResult pairs a Step with the outcome the driver recorded for it.
type StepResult struct {
	Step    Step
	Outcome StepOutcome
}

// DriverResult accumulates the run per §4.9: succeeded, soft-failed, and
// unattempted steps, in plan order.
type DriverResult struct {
	Results     []StepResult
	Unattempted []Step
	Stopped     bool // true if a FatalError halted the run early
}

// Drive implements §4.9: sequential dispatch in plan order. The driver never
// consults constraints or nodes — only the step list — which keeps it
// testable without any knowledge of the scheduler that produced the plan.
func Drive(ctx context.Context, plan *SubmissionPlan, exec Executor) DriverResult {
	var result DriverResult

	for i, step := range plan.ExecutionSteps {
		outcome := dispatch(ctx, exec, step.Node)
		result.Results = append(result.Results, StepResult{Step: step, Outcome: outcome})

		if outcome.Kind == FatalError {
			result.Stopped = true
			result.Unattempted = append(result.Unattempted, plan.ExecutionSteps[i+1:]...)
			break
		}
	}

	return result
}

func dispatch(ctx context.Context, exec Executor, n Node) StepOutcome {
	switch n.Kind {
	case KindPush:
		return exec.Push(ctx, n.PushBookmark)
	case KindUpdateBase:
		return exec.UpdateBase(ctx, n.UpdatePRNumber, n.UpdateBookmark, n.UpdateNewBase)
	case KindCreatePr:
		return exec.CreatePr(ctx, n.CreateHeadBookmark, n.CreateBaseBookmark, n.CreateDraft)
	case KindPublishPr:
		return exec.PublishPr(ctx, n.PublishPRNumber, n.PublishBookmark)
	default:
		return StepOutcome{Kind: FatalError, Message: "unknown node kind in dispatch"}
	}
}
