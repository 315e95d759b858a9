package submit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeExecutor lets tests script outcomes per bookmark/PR without a real
// forge or workspace, per §4.9's isolation guarantee.
type fakeExecutor struct {
	pushOutcomes   map[string]StepOutcome
	createOutcomes map[string]StepOutcome
}

func (f *fakeExecutor) Push(_ context.Context, bookmark string) StepOutcome {
	if o, ok := f.pushOutcomes[bookmark]; ok {
		return o
	}
	return StepOutcome{Kind: Success}
}

func (f *fakeExecutor) UpdateBase(_ context.Context, _ int, _, _ string) StepOutcome {
	return StepOutcome{Kind: Success}
}

func (f *fakeExecutor) CreatePr(_ context.Context, headBookmark, _ string, _ bool) StepOutcome {
	if o, ok := f.createOutcomes[headBookmark]; ok {
		return o
	}
	return StepOutcome{Kind: Success}
}

func (f *fakeExecutor) PublishPr(_ context.Context, _ int, _ string) StepOutcome {
	return StepOutcome{Kind: Success}
}

func planWithSteps(nodes ...Node) *SubmissionPlan {
	steps := make([]Step, len(nodes))
	for i, n := range nodes {
		steps[i] = Step{Node: n}
	}
	return &SubmissionPlan{ExecutionSteps: steps}
}

func TestDrive_AllSucceed(t *testing.T) {
	plan := planWithSteps(
		Node{Kind: KindPush, PushBookmark: "a"},
		Node{Kind: KindCreatePr, CreateHeadBookmark: "a", CreateBaseBookmark: "trunk"},
	)
	exec := &fakeExecutor{}

	result := Drive(context.Background(), plan, exec)
	require.Len(t, result.Results, 2)
	assert.False(t, result.Stopped)
	assert.Empty(t, result.Unattempted)
	for _, r := range result.Results {
		assert.Equal(t, Success, r.Outcome.Kind)
	}
}

func TestDrive_SoftErrorContinues(t *testing.T) {
	plan := planWithSteps(
		Node{Kind: KindPush, PushBookmark: "a"},
		Node{Kind: KindPush, PushBookmark: "b"},
	)
	exec := &fakeExecutor{pushOutcomes: map[string]StepOutcome{
		"a": {Kind: SoftError, Message: "rate limited"},
	}}

	result := Drive(context.Background(), plan, exec)
	require.Len(t, result.Results, 2)
	assert.False(t, result.Stopped)
	assert.Equal(t, SoftError, result.Results[0].Outcome.Kind)
	assert.Equal(t, Success, result.Results[1].Outcome.Kind)
}

func TestDrive_FatalErrorStops(t *testing.T) {
	plan := planWithSteps(
		Node{Kind: KindPush, PushBookmark: "a"},
		Node{Kind: KindPush, PushBookmark: "b"},
		Node{Kind: KindCreatePr, CreateHeadBookmark: "a", CreateBaseBookmark: "trunk"},
	)
	exec := &fakeExecutor{pushOutcomes: map[string]StepOutcome{
		"b": {Kind: FatalError, Message: "authentication failure"},
	}}

	result := Drive(context.Background(), plan, exec)
	require.Len(t, result.Results, 2)
	assert.True(t, result.Stopped)
	require.Len(t, result.Unattempted, 1)
	assert.Equal(t, "a", result.Unattempted[0].Node.CreateHeadBookmark)
}
