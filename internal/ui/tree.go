package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/tree"

	"github.com/bjulian5/jjsubmit/internal/model"
	"github.com/bjulian5/jjsubmit/internal/submit"
)

// RenderStackTree renders the narrowed stack as a tree, root first, with
// each segment's status icon, its PR number if one exists, and an arrow on
// the current bookmark. Planned steps are rendered by RenderPlanTree.
//
// Example output:
//
//	main
//	╰─ ● auth-refactor #12
//	   ╰─ ◎ auth-refactor-tests ←
func RenderStackTree(segments []model.NarrowedBookmarkSegment, prs map[string]model.PullRequest, current string) string {
	if len(segments) == 0 {
		return Dim("No bookmarks in the current stack")
	}

	root := segments[0].Base
	t := tree.Root(TreeRootStyle.Render(root))

	cursor := t
	for _, seg := range segments {
		label := formatSegmentForTree(seg, prs[seg.Bookmark.Name], current)
		child := tree.Root(label)
		cursor.Child(child)
		cursor = child
	}

	t.Enumerator(getRoundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(RenderTreeIndenter())

	return t.String()
}

// RenderPlanTree renders a submission plan's steps grouped by the bookmark
// they act on, nested under the stack shape, so a dry run reads as "what
// happens to each branch" rather than a flat ordered list.
func RenderPlanTree(segments []model.NarrowedBookmarkSegment, plan *submit.SubmissionPlan) string {
	if len(segments) == 0 {
		return Dim("No bookmarks in the current stack")
	}

	stepsByBookmark := make(map[string][]string)
	for _, step := range plan.ExecutionSteps {
		name := stepBookmark(step)
		stepsByBookmark[name] = append(stepsByBookmark[name], submit.FormatStep(step))
	}

	root := segments[0].Base
	t := tree.Root(TreeRootStyle.Render(root))

	cursor := t
	for _, seg := range segments {
		child := tree.Root(TreeItemStyle.Render(seg.Bookmark.Name))
		for _, line := range stepsByBookmark[seg.Bookmark.Name] {
			child.Child(Dim(line))
		}
		cursor.Child(child)
		cursor = child
	}

	t.Enumerator(getRoundedEnumerator()).
		EnumeratorStyle(TreeEnumeratorStyle).
		Indenter(RenderTreeIndenter())

	return t.String()
}

func stepBookmark(s submit.Step) string {
	switch s.Node.Kind {
	case submit.KindPush:
		return s.Node.PushBookmark
	case submit.KindUpdateBase:
		return s.Node.UpdateBookmark
	case submit.KindCreatePr:
		return s.Node.CreateHeadBookmark
	case submit.KindPublishPr:
		return s.Node.PublishBookmark
	default:
		return ""
	}
}

func formatSegmentForTree(seg model.NarrowedBookmarkSegment, pr model.PullRequest, current string) string {
	status := GetSegmentStatus(seg, prOrNil(pr))
	icon := status.RenderCompact()

	label := fmt.Sprintf("%s %s", icon, seg.Bookmark.Name)
	if pr.Number != 0 {
		label += " " + Highlight(fmt.Sprintf("#%d", pr.Number))
	}
	if current != "" && seg.Bookmark.Name == current {
		label += " " + CurrentPositionArrowStyle.Render("←")
	}
	return label
}

func prOrNil(pr model.PullRequest) *model.PullRequest {
	if pr.Number == 0 {
		return nil
	}
	return &pr
}

// getRoundedEnumerator returns a custom rounded enumerator for trees
func getRoundedEnumerator() tree.Enumerator {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "╰─ "
		}
		return "├─ "
	}
}

// RenderTreeIndenter returns an indenter function for trees
func RenderTreeIndenter() tree.Indenter {
	return func(children tree.Children, i int) string {
		if children.Length() == 0 {
			return ""
		}
		if i == children.Length()-1 {
			return "   "
		}
		return "│  "
	}
}
