// Package model holds the data types shared between the planner core and its
// collaborators: bookmarks, pull request snapshots, and narrowed stack segments.
package model

// Bookmark is a named local branch reference tracked by jj: a change id plus
// a parent bookmark name (possibly the stack base/trunk).
type Bookmark struct {
	Name       string
	ChangeID   string
	ParentName string // the default branch name when the parent is trunk
}

// PullRequest is a forge-reported snapshot of a pull request already open for
// some bookmark in the stack, taken once before planning.
type PullRequest struct {
	Number       int
	HeadBookmark string
	BaseBookmark string
	IsDraft      bool
	State        string // "open", "closed", "merged"
}

// IsOpen reports whether the PR is neither closed nor merged.
func (p *PullRequest) IsOpen() bool {
	return p != nil && p.State != "closed" && p.State != "merged"
}

// NarrowedBookmarkSegment is one bookmark in the narrowed stack view, carrying
// its intended base bookmark (the next-closer-to-trunk bookmark, or trunk
// itself). Segments are ordered root-first by stack depth.
type NarrowedBookmarkSegment struct {
	Bookmark Bookmark
	// Base is the intended base bookmark name for this segment, or the
	// default branch name if this segment is a stack root.
	Base string
	// LocalTip is the commit the bookmark should point to once synced.
	LocalTip string
	// RemoteTip is the commit the bookmark currently points to on the
	// remote, or empty if the bookmark has never been pushed.
	RemoteTip string
}

// NeedsPush reports whether the segment's local tip differs from its remote
// tip, or the bookmark has never been pushed at all.
func (s NarrowedBookmarkSegment) NeedsPush() bool {
	return s.RemoteTip == "" || s.RemoteTip != s.LocalTip
}
