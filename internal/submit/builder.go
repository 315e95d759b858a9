package submit

// BuildOptions carries the user-facing option flags from §6 that affect node
// materialization.
type BuildOptions struct {
	// Draft marks newly created PRs as drafts. Ignored for every create
	// whenever Publish is also set (§4.8 step 6: publish wins).
	Draft bool
	// Publish appends a PublishPr step for every existing snapshot PR
	// currently in draft state (§4.8 step 5).
	Publish bool
}

// buildNodes implements §4.5: one pass over the narrowed stack, in root-first
// order, materializing exactly the nodes implied by decide(). Insertion order
// is every Push node root-first, then every UpdateBase/CreatePr node
// root-first — this is the tiebreak C7 relies on for deterministic output.
func buildNodes(stack *StackModel, opts BuildOptions) *NodeRegistry {
	reg := NewNodeRegistry()

	createDraft := opts.Draft && !opts.Publish

	segments := stack.Segments()
	intents := make([]intent, len(segments))
	for i, seg := range segments {
		intents[i] = decide(stack, seg)
	}

	// Insertion order is grouped by kind — every Push node root-first,
	// then every UpdateBase/CreatePr node root-first — so the topological
	// sort's index tiebreak favors pushes before the PR operations that
	// depend on them whenever the graph leaves a choice (§4.5).
	for _, it := range intents {
		if it.needsPush {
			reg.InsertPush(it.segment.Bookmark.Name)
		}
	}
	for _, it := range intents {
		switch {
		case it.needsCreate:
			reg.InsertCreatePr(it.segment.Bookmark.Name, it.base, createDraft)
		case it.needsUpdate:
			reg.InsertUpdateBase(it.existingPR.Number, it.segment.Bookmark.Name, it.existingPR.BaseBookmark, it.base)
		}
	}

	return reg
}

// publishNodes implements §4.8 step 5: a PublishPr node for every snapshot PR
// currently in draft state, independent of the DAG. These are never inserted
// into the topo-sorted registry — they carry no ordering dependency with any
// other step and are appended by the plan assembler after the sorted body.
func publishNodes(stack *StackModel, opts BuildOptions) []Node {
	if !opts.Publish {
		return nil
	}
	var out []Node
	for _, pr := range stack.AllExistingPRs() {
		if pr.IsDraft {
			out = append(out, Node{Kind: KindPublishPr, PublishPRNumber: pr.Number, PublishBookmark: pr.HeadBookmark})
		}
	}
	return out
}
