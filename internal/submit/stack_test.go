package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/jjsubmit/internal/model"
)

func TestStackModel_ParentOf(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", "c1"),
		seg("b", "a", "c2", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")

	_, ok := stack.ParentOf("a")
	assert.False(t, ok, "a is a stack root, its parent is trunk")

	parent, ok := stack.ParentOf("b")
	assert.True(t, ok)
	assert.Equal(t, "a", parent)
}

func TestStackModel_ExistingPRLookup(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 5, HeadBookmark: "a", BaseBookmark: "trunk", State: "open"},
	}
	stack := NewStackModel([]model.NarrowedBookmarkSegment{seg("a", "trunk", "c1", "c1")}, prs, "trunk")

	pr, ok := stack.ExistingPR("a")
	assert.True(t, ok)
	assert.Equal(t, 5, pr.Number)

	_, ok = stack.ExistingPR("nonexistent")
	assert.False(t, ok)
}

func TestStackModel_MultiRootForest(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
		seg("b", "trunk", "c2", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")

	_, okA := stack.ParentOf("a")
	_, okB := stack.ParentOf("b")
	assert.False(t, okA)
	assert.False(t, okB)
}
