package submit

import "fmt"

// PushRef, UpdateRef and CreateRef are typed endpoint references: each names
// a bookmark but is tied to exactly one node kind, so a constraint can never
// be built pointing at the wrong table in the registry (§4.3, REDESIGN: typed
// endpoints over bare strings).
type PushRef struct{ Bookmark string }
type UpdateRef struct{ Bookmark string }
type CreateRef struct{ Bookmark string }

func (r PushRef) String() string   { return fmt.Sprintf("Push(%s)", r.Bookmark) }
func (r UpdateRef) String() string { return fmt.Sprintf("Update(%s)", r.Bookmark) }
func (r CreateRef) String() string { return fmt.Sprintf("Create(%s)", r.Bookmark) }

// endpoint is satisfied by PushRef, UpdateRef and CreateRef — the three
// typed references a constraint may point at.
type endpoint interface {
	fmt.Stringer
	resolve(r *NodeRegistry) (NodeIdx, bool)
}

func (r PushRef) resolve(reg *NodeRegistry) (NodeIdx, bool)   { return reg.Get(KindPush, r.Bookmark) }
func (r UpdateRef) resolve(reg *NodeRegistry) (NodeIdx, bool) { return reg.Get(KindUpdateBase, r.Bookmark) }
func (r CreateRef) resolve(reg *NodeRegistry) (NodeIdx, bool) { return reg.Get(KindCreatePr, r.Bookmark) }

// ConstraintKind names one of the five ordering rules the collector can
// emit (§4.3).
type ConstraintKind int

const (
	// PushOrder: push of a child bookmark must follow push of its parent,
	// so the remote never observes a child commit without its parent.
	PushOrder ConstraintKind = iota
	// PushBeforeRetarget: a bookmark must be pushed before any PR retarget
	// that depends on its tip being present on the remote.
	PushBeforeRetarget
	// RetargetBeforePush: the reverse edge for a swap — the retarget away
	// from a branch must land before that branch's history is rewritten
	// out from under it by a later push.
	RetargetBeforePush
	// PushBeforeCreate: a bookmark must be pushed before a PR is opened
	// for it (the forge needs the ref to exist first).
	PushBeforeCreate
	// CreateOrder: PR creation for a child must follow PR creation for
	// its parent, so a PR never references a not-yet-existing base PR.
	CreateOrder
)

func (k ConstraintKind) String() string {
	switch k {
	case PushOrder:
		return "PushOrder"
	case PushBeforeRetarget:
		return "PushBeforeRetarget"
	case RetargetBeforePush:
		return "RetargetBeforePush"
	case PushBeforeCreate:
		return "PushBeforeCreate"
	case CreateOrder:
		return "CreateOrder"
	default:
		return "Unknown"
	}
}

// Constraint is a single "before must precede after" ordering rule, carrying
// typed endpoints so edge resolution (C6) can look each side up in the
// correct registry table.
type Constraint struct {
	Kind   ConstraintKind
	Before endpoint
	After  endpoint
}

// String renders the constraint, kind included, for trace logs.
func (c Constraint) String() string {
	return fmt.Sprintf("%s: %s -> %s", c.Kind, c.Before, c.After)
}

// equal reports whether two constraints are the same ordering rule: same
// kind and same endpoints. (The collector dedups by an equivalent string key.)
func (c Constraint) equal(o Constraint) bool {
	return c.Kind == o.Kind && c.Before.String() == o.Before.String() && c.After.String() == o.After.String()
}
