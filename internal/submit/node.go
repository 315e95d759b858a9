package submit

import "fmt"

// NodeKind identifies one of the four execution node shapes from §3.
type NodeKind int

const (
	KindPush NodeKind = iota
	KindUpdateBase
	KindCreatePr
	KindPublishPr
)

func (k NodeKind) String() string {
	switch k {
	case KindPush:
		return "Push"
	case KindUpdateBase:
		return "UpdateBase"
	case KindCreatePr:
		return "CreatePr"
	case KindPublishPr:
		return "PublishPr"
	default:
		return "Unknown"
	}
}

// NodeIdx is a dense index into the plan's single shared node space, spanning
// all four kinds. Edges and the topological sort operate entirely in terms of
// NodeIdx so a cycle or ordering bug can never cross a kind boundary silently.
type NodeIdx int

// Node is a materialized, pending execution operation (§3 "Execution node").
// Exactly one of the kind-specific payload fields is populated, selected by
// Kind.
type Node struct {
	Idx  NodeIdx
	Kind NodeKind

	// Push
	PushBookmark string

	// UpdateBase
	UpdatePRNumber  int
	UpdateBookmark  string // head bookmark of the PR being retargeted
	UpdateOldBase   string
	UpdateNewBase   string

	// CreatePr
	CreateHeadBookmark string
	CreateBaseBookmark string
	CreateDraft        bool

	// PublishPr
	PublishPRNumber   int
	PublishBookmark   string
}

// bookmarkName returns the bookmark name this node is keyed on within its
// kind's registry table (invariant 1: identity is (kind, bookmark_name)).
func (n Node) bookmarkName() string {
	switch n.Kind {
	case KindPush:
		return n.PushBookmark
	case KindUpdateBase:
		return n.UpdateBookmark
	case KindCreatePr:
		return n.CreateHeadBookmark
	case KindPublishPr:
		return n.PublishBookmark
	default:
		return ""
	}
}

// String renders the node for cycle diagnostics and debug logs; the
// user-facing dry-run vocabulary lives in format.go (C10).
func (n Node) String() string {
	return fmt.Sprintf("%s(%s)", n.Kind, n.bookmarkName())
}
