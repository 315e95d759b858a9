package submit

import "github.com/bjulian5/jjsubmit/internal/model"

// intent is the per-segment decision shared by the collector (C4) and the
// node builder (C5): both walk the same logic, so it lives once here rather
// than being re-derived twice and risking drift (§4.4, §4.5 share decision
// logic).
type intent struct {
	segment model.NarrowedBookmarkSegment
	base    string // intended base bookmark name (parent bookmark or trunk)

	needsPush bool

	// exactly one of the following is true, or neither (PR already correct)
	needsCreate bool
	needsUpdate bool

	existingPR model.PullRequest // valid when needsUpdate, or when a PR exists at all
	hasPR      bool
}

// decide applies §4.4 rules 1-2 to one segment.
func decide(stack *StackModel, seg model.NarrowedBookmarkSegment) intent {
	it := intent{
		segment:   seg,
		base:      seg.Base,
		needsPush: seg.NeedsPush(),
	}

	pr, ok := stack.ExistingPR(seg.Bookmark.Name)
	it.hasPR = ok
	if !ok {
		it.needsCreate = true
		return it
	}
	it.existingPR = pr
	if pr.BaseBookmark != it.base {
		it.needsUpdate = true
	}
	return it
}
