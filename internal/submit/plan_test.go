package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjulian5/jjsubmit/internal/model"
)

func seg(name, base, localTip, remoteTip string) model.NarrowedBookmarkSegment {
	return model.NarrowedBookmarkSegment{
		Bookmark:  model.Bookmark{Name: name, ParentName: base},
		Base:      base,
		LocalTip:  localTip,
		RemoteTip: remoteTip,
	}
}

func stepsString(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = FormatStep(s)
	}
	return out
}

// S1 — Simple two-deep create.
func TestAssemblePlan_S1_TwoDeepCreate(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
		seg("b", "a", "c2", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")

	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"push a",
		"push b",
		"create PR a → trunk",
		"create PR b → a",
	}, stepsString(plan.ExecutionSteps))
}

// S2 — Swap: stack reorders so b becomes the new root and a moves under b.
func TestAssemblePlan_S2_Swap(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 1, HeadBookmark: "a", BaseBookmark: "trunk", State: "open"},
		{Number: 2, HeadBookmark: "b", BaseBookmark: "a", State: "open"},
	}
	segments := []model.NarrowedBookmarkSegment{
		seg("b", "trunk", "c2n", "c2"),
		seg("a", "b", "c1n", "c1"),
	}
	stack := NewStackModel(segments, prs, "trunk")

	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)

	// PR#2 (head=b) must retarget off a before a's history is rewritten by
	// its push landing.
	updateB, pushA := -1, -1
	for i, st := range plan.ExecutionSteps {
		if st.Node.Kind == KindUpdateBase && st.Node.UpdateBookmark == "b" {
			updateB = i
		}
		if st.Node.Kind == KindPush && st.Node.PushBookmark == "a" {
			pushA = i
		}
	}
	require.NotEqual(t, -1, updateB)
	require.NotEqual(t, -1, pushA)
	assert.Less(t, updateB, pushA, "retarget of PR#2 off a must precede push of a")

	// The new base (b) must be pushed before PR#1 (head=a) is retargeted
	// onto it.
	var pushB, updateA int = -1, -1
	for i, st := range plan.ExecutionSteps {
		if st.Node.Kind == KindPush && st.Node.PushBookmark == "b" {
			pushB = i
		}
		if st.Node.Kind == KindUpdateBase && st.Node.UpdateBookmark == "a" {
			updateA = i
		}
	}
	require.NotEqual(t, -1, pushB)
	require.NotEqual(t, -1, updateA)
	assert.Less(t, pushB, updateA, "push of new base b must precede retarget of PR#1")
}

// S3 — Mixed: a has a PR at the correct base and needs push; b has no PR;
// c has a draft PR at the correct base with no push needed. Publish requested.
func TestAssemblePlan_S3_Mixed(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 10, HeadBookmark: "a", BaseBookmark: "trunk", State: "open"},
		{Number: 30, HeadBookmark: "c", BaseBookmark: "b", IsDraft: true, State: "open"},
	}
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1n", "c1"),
		seg("b", "a", "c2n", ""),
		seg("c", "b", "c3", "c3"),
	}
	stack := NewStackModel(segments, prs, "trunk")

	plan, err := AssemblePlan(stack, "origin", BuildOptions{Publish: true}, nil)
	require.NoError(t, err)

	rendered := stepsString(plan.ExecutionSteps)
	require.NotEmpty(t, rendered)
	assert.Equal(t, "publish PR #30", rendered[len(rendered)-1], "publish steps must appear last")

	assert.Contains(t, rendered, "push a")
	assert.Contains(t, rendered, "push b")
	assert.Contains(t, rendered, "create PR b → a")
	assert.NotContains(t, rendered, "create PR a → trunk")
}

// S4 — Insert middle: stack gains a new bookmark b between a and the
// previously-direct c; PR#c existed at base=a and must retarget onto b.
func TestAssemblePlan_S4_InsertMiddle(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 99, HeadBookmark: "c", BaseBookmark: "a", State: "open"},
	}
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", "c1"),
		seg("b", "a", "c2", ""),
		seg("c", "b", "c3n", "c3"),
	}
	stack := NewStackModel(segments, prs, "trunk")

	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)

	pos := map[string]int{}
	for i, st := range plan.ExecutionSteps {
		if st.Node.Kind == KindPush {
			pos["push:"+st.Node.PushBookmark] = i
		}
		if st.Node.Kind == KindCreatePr {
			pos["create:"+st.Node.CreateHeadBookmark] = i
		}
		if st.Node.Kind == KindUpdateBase {
			pos["update:"+st.Node.UpdateBookmark] = i
		}
	}

	require.Contains(t, pos, "push:b")
	require.Contains(t, pos, "update:c")
	assert.Less(t, pos["push:b"], pos["update:c"], "push of new base b must precede retarget of PR#c")
	assert.NotContains(t, pos, "push:a", "a is already in sync and needs no push")
}

// S5 — Cycle injection: a synthetic constraint set with a cycle must
// surface SchedulerCycle with both node descriptions.
func TestAssemblePlan_S5_CycleInjection(t *testing.T) {
	reg := NewNodeRegistry()
	a := reg.InsertPush("a")
	b := reg.InsertPush("b")

	_, err := topoSort(reg, []Edge{{From: a, To: b}, {From: b, To: a}})
	require.Error(t, err)
	var cycleErr *SchedulerCycle
	require.ErrorAs(t, err, &cycleErr)
	assert.Len(t, cycleErr.CycleNodes, 2)
	assert.Contains(t, cycleErr.CycleNodes, "Push(a)")
	assert.Contains(t, cycleErr.CycleNodes, "Push(b)")
}

// S6 — Unmaterialized endpoint: a constraint naming a bookmark with no
// segment is dropped silently; the step list matches the x-less baseline.
func TestAssemblePlan_S6_UnmaterializedEndpoint(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")

	reg := buildNodes(stack, BuildOptions{})
	constraints := collectConstraints(stack, nil)
	constraints = append(constraints, Constraint{
		Kind:   PushOrder,
		Before: PushRef{Bookmark: "x"},
		After:  PushRef{Bookmark: "a"},
	})

	edges := resolveEdges(constraints, reg, nil)
	order, err := topoSort(reg, edges)
	require.NoError(t, err)
	assert.Len(t, order, len(reg.Nodes()))

	baseline, err := topoSort(reg, resolveEdges(collectConstraints(stack, nil), reg, nil))
	require.NoError(t, err)
	assert.Equal(t, baseline, order)
}

func TestAssemblePlan_RoundTripIdempotence(t *testing.T) {
	// If input has PRs already at correct bases and branches already
	// pushed, the plan must have zero non-publish steps.
	prs := []model.PullRequest{
		{Number: 1, HeadBookmark: "a", BaseBookmark: "trunk", State: "open"},
		{Number: 2, HeadBookmark: "b", BaseBookmark: "a", State: "open"},
	}
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", "c1"),
		seg("b", "a", "c2", "c2"),
	}
	stack := NewStackModel(segments, prs, "trunk")

	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.ExecutionSteps)
}

func TestAssemblePlan_EmptyStack(t *testing.T) {
	stack := NewStackModel(nil, nil, "trunk")
	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)
	assert.Empty(t, plan.ExecutionSteps)
}

func TestAssemblePlan_SingleBookmarkNoPR(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")
	plan, err := AssemblePlan(stack, "origin", BuildOptions{}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"push a", "create PR a → trunk"}, stepsString(plan.ExecutionSteps))
}

func TestAssemblePlan_DraftPublishPrecedence(t *testing.T) {
	// When both draft and publish are requested, publish wins: new PRs are
	// created non-draft.
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")
	plan, err := AssemblePlan(stack, "origin", BuildOptions{Draft: true, Publish: true}, nil)
	require.NoError(t, err)

	for _, st := range plan.ExecutionSteps {
		if st.Node.Kind == KindCreatePr {
			assert.False(t, st.Node.CreateDraft)
		}
	}
}
