// Package runner wires the planner core's narrow Executor interface to the
// concrete vcs and forge adapters; submit.Drive runs a plan through it.
package runner

import (
	"context"
	"strings"

	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/submit"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Executor implements submit.Executor against a real jj workspace and forge.
type Executor struct {
	Workspace *vcs.Workspace
	Forge     forge.Service
	Remote    string
}

func (e *Executor) Push(ctx context.Context, bookmark string) submit.StepOutcome {
	if err := e.Workspace.Push(ctx, e.Remote, bookmark); err != nil {
		return classify(err)
	}
	return submit.StepOutcome{Kind: submit.Success}
}

func (e *Executor) UpdateBase(ctx context.Context, prNumber int, headBookmark, newBase string) submit.StepOutcome {
	if err := e.Forge.UpdatePRBase(ctx, prNumber, newBase); err != nil {
		return classify(err)
	}
	return submit.StepOutcome{Kind: submit.Success}
}

func (e *Executor) CreatePr(ctx context.Context, headBookmark, baseBookmark string, draft bool) submit.StepOutcome {
	pr, err := e.Forge.CreatePR(ctx, forge.PRSpec{
		Head:  headBookmark,
		Base:  baseBookmark,
		Title: headBookmark,
		Draft: draft,
	})
	if err != nil {
		return classify(err)
	}
	return submit.StepOutcome{Kind: submit.Success, PR: pr}
}

func (e *Executor) PublishPr(ctx context.Context, prNumber int, headBookmark string) submit.StepOutcome {
	if err := e.Forge.PublishPR(ctx, prNumber); err != nil {
		return classify(err)
	}
	return submit.StepOutcome{Kind: submit.Success}
}

// classify maps an adapter error to a step outcome. Authentication and
// connectivity failures are fatal; everything else from the forge or
// workspace is treated as a soft, per-step failure the driver can continue
// past (§7's taxonomy).
func classify(err error) submit.StepOutcome {
	if isFatal(err) {
		return submit.StepOutcome{Kind: submit.FatalError, Message: err.Error()}
	}
	return submit.StepOutcome{Kind: submit.SoftError, Message: err.Error()}
}

func isFatal(err error) bool {
	msg := err.Error()
	for _, marker := range []string{"authentication", "401", "connection refused", "no such host", "workspace corrupt"} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
