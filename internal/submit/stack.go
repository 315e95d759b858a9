package submit

import "github.com/bjulian5/jjsubmit/internal/model"

// StackModel (C1) is a read-only view over a narrowed stack: the ordered
// segment list plus a by-head-bookmark lookup into the PR snapshot. It is the
// only thing the rest of the planner consults for "what does the stack look
// like"; everything downstream (collector, builder) is built against this
// interface so it can be faked in tests without a real VCS or forge.
type StackModel struct {
	segments     []model.NarrowedBookmarkSegment
	byName       map[string]model.NarrowedBookmarkSegment
	parentOf     map[string]string // bookmark name -> parent bookmark name, absent for roots
	existingPRs  map[string]model.PullRequest
	defaultBranch string
}

// NewStackModel builds a StackModel from a narrowed segment list (root-first)
// and a PR snapshot keyed by head bookmark.
func NewStackModel(segments []model.NarrowedBookmarkSegment, prs []model.PullRequest, defaultBranch string) *StackModel {
	m := &StackModel{
		segments:      segments,
		byName:        make(map[string]model.NarrowedBookmarkSegment, len(segments)),
		parentOf:      make(map[string]string, len(segments)),
		existingPRs:   make(map[string]model.PullRequest, len(prs)),
		defaultBranch: defaultBranch,
	}
	for _, s := range segments {
		m.byName[s.Bookmark.Name] = s
		if s.Base != defaultBranch {
			m.parentOf[s.Bookmark.Name] = s.Base
		}
	}
	for _, pr := range prs {
		m.existingPRs[pr.HeadBookmark] = pr
	}
	return m
}

// Segments returns the narrowed stack, ordered root (closest to trunk) first.
func (m *StackModel) Segments() []model.NarrowedBookmarkSegment {
	return m.segments
}

// DefaultBranch returns the trunk/default branch name.
func (m *StackModel) DefaultBranch() string {
	return m.defaultBranch
}

// ParentOf returns the parent bookmark name within the stack, or "", false if
// name is a stack root (its parent is trunk).
func (m *StackModel) ParentOf(name string) (string, bool) {
	p, ok := m.parentOf[name]
	return p, ok
}

// Segment looks up a segment by bookmark name.
func (m *StackModel) Segment(name string) (model.NarrowedBookmarkSegment, bool) {
	s, ok := m.byName[name]
	return s, ok
}

// ExistingPR looks up the forge-reported PR snapshot for a head bookmark.
func (m *StackModel) ExistingPR(headBookmark string) (model.PullRequest, bool) {
	pr, ok := m.existingPRs[headBookmark]
	return pr, ok
}

// AllExistingPRs returns every PR snapshot known for bookmarks in the stack.
func (m *StackModel) AllExistingPRs() []model.PullRequest {
	out := make([]model.PullRequest, 0, len(m.existingPRs))
	for _, pr := range m.existingPRs {
		out = append(out, pr)
	}
	return out
}
