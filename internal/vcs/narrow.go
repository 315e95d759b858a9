package vcs

import (
	"fmt"
	"sort"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// NarrowOptions controls how far the narrowing pass walks from the current
// bookmark, per SPEC_FULL §12's restored --upto/--only surface. (--select
// is applied by the caller after Narrow returns, by trimming segments;
// --stack is a `sync`-level filter over which stack's narrowing pass runs
// at all, and never reaches NarrowOptions.)
type NarrowOptions struct {
	// Upto stops the walk at this bookmark (inclusive), instead of walking
	// to the top of the stack.
	Upto string
	// Only narrows to exactly this single bookmark.
	Only string
	// Remote is the git remote to query for pushed tips.
	Remote string
}

// Narrow walks from the current bookmark down to trunk, building the ordered
// (root-first) segment list the planner core consumes. This is the "external
// narrowing pass" the core's C1 Stack model is handed; it never appears
// inside the scheduler itself.
func Narrow(ws *Workspace, current string, opts NarrowOptions) ([]model.NarrowedBookmarkSegment, error) {
	trunk, err := ws.DefaultBranch()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default branch: %w", err)
	}

	if opts.Only != "" {
		seg, err := buildSegment(ws, opts.Only, trunk, opts.Remote)
		if err != nil {
			return nil, err
		}
		return []model.NarrowedBookmarkSegment{seg}, nil
	}

	target := current
	if opts.Upto != "" {
		target = opts.Upto
	}
	if target == "" {
		return nil, nil
	}

	var chain []string
	name := target
	for name != "" && name != trunk {
		chain = append(chain, name)
		parent, err := ws.ParentBookmark(name, trunk)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent of %s: %w", name, err)
		}
		if parent == name {
			break
		}
		name = parent
		if name == trunk {
			break
		}
	}

	segments := make([]model.NarrowedBookmarkSegment, 0, len(chain))
	for i := len(chain) - 1; i >= 0; i-- {
		seg, err := buildSegment(ws, chain[i], trunk, opts.Remote)
		if err != nil {
			return nil, err
		}
		segments = append(segments, seg)
	}
	return segments, nil
}

func buildSegment(ws *Workspace, name, trunk, remote string) (model.NarrowedBookmarkSegment, error) {
	changeID, err := ws.ChangeID(name)
	if err != nil {
		return model.NarrowedBookmarkSegment{}, fmt.Errorf("failed to resolve change id for %s: %w", name, err)
	}
	localTip, err := ws.LocalTip(name)
	if err != nil {
		return model.NarrowedBookmarkSegment{}, fmt.Errorf("failed to resolve local tip for %s: %w", name, err)
	}
	remoteTip, err := ws.RemoteTip(remote, name)
	if err != nil {
		return model.NarrowedBookmarkSegment{}, fmt.Errorf("failed to resolve remote tip for %s: %w", name, err)
	}
	parent, err := ws.ParentBookmark(name, trunk)
	if err != nil {
		return model.NarrowedBookmarkSegment{}, fmt.Errorf("failed to resolve parent for %s: %w", name, err)
	}

	base := parent
	if base == name {
		base = trunk
	}

	return model.NarrowedBookmarkSegment{
		Bookmark: model.Bookmark{
			Name:       name,
			ChangeID:   changeID,
			ParentName: base,
		},
		Base:      base,
		LocalTip:  localTip,
		RemoteTip: remoteTip,
	}, nil
}

// Stack is one independent local stack discovered by DiscoverStacks: its
// narrowed segment chain, root-first, ending at its own leaf bookmark.
type Stack struct {
	Leaf     string
	Segments []model.NarrowedBookmarkSegment
}

// DiscoverStacks finds every independent stack in the workspace — every
// bookmark that sits off trunk and has no other bookmark stacked on top of
// it — and narrows each one down to trunk. Used by `jjsubmit sync` to batch
// the submit flow across every local stack instead of just the current one.
func DiscoverStacks(ws *Workspace, remote string) ([]Stack, error) {
	trunk, err := ws.DefaultBranch()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve default branch: %w", err)
	}

	bookmarks, err := ws.AllBookmarks()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}

	hasChild := make(map[string]bool, len(bookmarks))
	for _, name := range bookmarks {
		if name == trunk {
			continue
		}
		parent, err := ws.ParentBookmark(name, trunk)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve parent of %s: %w", name, err)
		}
		if parent != trunk {
			hasChild[parent] = true
		}
	}

	var leaves []string
	for _, name := range bookmarks {
		if name == trunk || hasChild[name] {
			continue
		}
		leaves = append(leaves, name)
	}
	sort.Strings(leaves)

	stacks := make([]Stack, 0, len(leaves))
	for _, leaf := range leaves {
		segments, err := Narrow(ws, "", NarrowOptions{Upto: leaf, Remote: remote})
		if err != nil {
			return nil, fmt.Errorf("failed to narrow stack at %s: %w", leaf, err)
		}
		if len(segments) == 0 {
			continue
		}
		stacks = append(stacks, Stack{Leaf: leaf, Segments: segments})
	}
	return stacks, nil
}
