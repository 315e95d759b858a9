package submit

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bjulian5/jjsubmit/internal/model"
)

func TestCollectConstraints_NoDuplicates(t *testing.T) {
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", ""),
		seg("b", "a", "c2", ""),
	}
	stack := NewStackModel(segments, nil, "trunk")

	constraints := collectConstraints(stack, nil)

	seen := make(map[string]bool)
	for _, c := range constraints {
		key := FormatConstraint(c)
		assert.False(t, seen[key], "constraint emitted more than once: %s", key)
		seen[key] = true
	}
}

func TestCollectConstraints_RoundTripIsEmpty(t *testing.T) {
	prs := []model.PullRequest{
		{Number: 1, HeadBookmark: "a", BaseBookmark: "trunk", State: "open"},
	}
	segments := []model.NarrowedBookmarkSegment{
		seg("a", "trunk", "c1", "c1"),
	}
	stack := NewStackModel(segments, prs, "trunk")

	constraints := collectConstraints(stack, nil)
	assert.Empty(t, constraints)
}
