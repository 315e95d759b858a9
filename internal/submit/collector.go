package submit

import "log/slog"

// collectConstraints implements §4.4: it walks the narrowed stack and emits every constraint implied by the decision logic in decide(). It never
// touches the registry or node indices — constraints are pure name
// references, resolved later by the edge resolver (C6).
func collectConstraints(stack *StackModel, logger *slog.Logger) []Constraint {
	var out []Constraint
	seen := make(map[string]bool)

	add := func(c Constraint) {
		key := c.Kind.String() + "|" + c.Before.String() + "|" + c.After.String()
		if seen[key] {
			return
		}
		seen[key] = true
		out = append(out, c)
	}

	segments := stack.Segments()
	intents := make(map[string]intent, len(segments))
	for _, seg := range segments {
		intents[seg.Bookmark.Name] = decide(stack, seg)
	}

	// Rule 3: swap detection. An UpdateBase whose old base is itself a
	// bookmark in the stack that is being pushed means that bookmark's
	// history is about to move, so the retarget must land first.
	for _, seg := range segments {
		it := intents[seg.Bookmark.Name]
		if !it.needsUpdate {
			continue
		}
		oldBase := it.existingPR.BaseBookmark
		if oldIt, ok := intents[oldBase]; ok && oldIt.needsPush {
			add(Constraint{
				Kind:   RetargetBeforePush,
				Before: UpdateRef{Bookmark: seg.Bookmark.Name},
				After:  PushRef{Bookmark: oldBase},
			})
		}
	}

	// Rule 5: base-before-retarget. If the new (intended) base is itself
	// being pushed, that push must land before the retarget.
	for _, seg := range segments {
		it := intents[seg.Bookmark.Name]
		if !it.needsUpdate {
			continue
		}
		if newBaseIt, ok := intents[it.base]; ok && newBaseIt.needsPush {
			add(Constraint{
				Kind:   PushBeforeRetarget,
				Before: PushRef{Bookmark: it.base},
				After:  UpdateRef{Bookmark: seg.Bookmark.Name},
			})
		}
	}

	// A bookmark's own push must land before its own PR is created — the
	// forge needs the ref to exist first.
	for _, seg := range segments {
		it := intents[seg.Bookmark.Name]
		if !it.needsPush {
			continue
		}
		if it.needsCreate {
			add(Constraint{
				Kind:   PushBeforeCreate,
				Before: PushRef{Bookmark: seg.Bookmark.Name},
				After:  CreateRef{Bookmark: seg.Bookmark.Name},
			})
		}
	}

	// Rule 4: dependency constraints for every ordered (parent, child) pair.
	for _, seg := range segments {
		parentName, hasParent := stack.ParentOf(seg.Bookmark.Name)
		if !hasParent {
			continue
		}
		parentIt, ok := intents[parentName]
		if !ok {
			continue
		}
		childIt := intents[seg.Bookmark.Name]

		if parentIt.needsPush && childIt.needsPush {
			add(Constraint{
				Kind:   PushOrder,
				Before: PushRef{Bookmark: parentName},
				After:  PushRef{Bookmark: seg.Bookmark.Name},
			})
		}
		if childIt.needsCreate && parentIt.needsPush {
			add(Constraint{
				Kind:   PushBeforeCreate,
				Before: PushRef{Bookmark: parentName},
				After:  CreateRef{Bookmark: seg.Bookmark.Name},
			})
		}
		if childIt.needsCreate && parentIt.needsCreate {
			add(Constraint{
				Kind:   CreateOrder,
				Before: CreateRef{Bookmark: parentName},
				After:  CreateRef{Bookmark: seg.Bookmark.Name},
			})
		}
	}

	if logger != nil {
		logger.Debug("Collected execution constraints", "count", len(out))
	}
	return out
}
