package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// Status icons
const (
	IconOpen     = "●"
	IconDraft    = "◐"
	IconMerged   = "◆"
	IconClosed   = "○"
	IconLocal    = "◯"
	IconModified = "◎"
)

// StatusModifiedStyle styles the "needs push" state, which has no PR state
// of its own and so isn't one of the status styles in styles.go.
var StatusModifiedStyle = lipgloss.NewStyle().Foreground(ColorDraft)

// Status represents a PR or change status with rendering capabilities
type Status struct {
	Icon  string
	Label string
	State string // "open", "draft", "merged", "closed", "local", "needs-push"
	Style lipgloss.Style
}

// GetStatus returns a Status object for the given state
func GetStatus(state string) Status {
	switch state {
	case "open":
		return Status{
			Icon:  IconOpen,
			Label: "Open",
			State: state,
			Style: StatusOpenStyle,
		}
	case "draft":
		return Status{
			Icon:  IconDraft,
			Label: "Draft",
			State: state,
			Style: StatusDraftStyle,
		}
	case "merged":
		return Status{
			Icon:  IconMerged,
			Label: "Merged",
			State: state,
			Style: StatusMergedStyle,
		}
	case "closed":
		return Status{
			Icon:  IconClosed,
			Label: "Closed",
			State: state,
			Style: StatusClosedStyle,
		}
	case "needs-push":
		return Status{
			Icon:  IconModified,
			Label: "needs push",
			State: state,
			Style: StatusModifiedStyle,
		}
	default: // "local" or unknown
		return Status{
			Icon:  IconLocal,
			Label: "Local",
			State: "local",
			Style: StatusLocalStyle,
		}
	}
}

// GetSegmentStatus returns a Status for a narrowed stack segment: its
// existing-PR state if one is known, otherwise whether it needs a push.
func GetSegmentStatus(seg model.NarrowedBookmarkSegment, pr *model.PullRequest) Status {
	if pr == nil {
		if seg.NeedsPush() {
			return GetStatus("needs-push")
		}
		return GetStatus("local")
	}
	if pr.IsDraft {
		return GetStatus("draft")
	}
	return GetStatus(pr.State)
}

// Render returns the full status with icon and label (e.g., "● Open")
func (s Status) Render() string {
	return s.Style.Render(s.Icon + " " + s.Label)
}

// RenderCompact returns just the styled icon
func (s Status) RenderCompact() string {
	return s.Style.Render(s.Icon)
}

// RenderIcon returns the icon without styling
func (s Status) RenderIcon() string {
	return s.Icon
}

// RenderWithCount returns status with count (e.g., "● 3 open")
func (s Status) RenderWithCount(count int) string {
	if count == 0 {
		return ""
	}
	text := fmt.Sprintf("%s %d %s", s.Icon, count, s.Label)
	return s.Style.Render(text)
}

// FormatPRSummary formats a summary of PR counts
// e.g., "● 2 open  ◐ 1 draft  ◎ 1 needs push  ◯ 1 local"
func FormatPRSummary(openCount, draftCount, mergedCount, localCount, needsPushCount int) string {
	var parts []string

	if openCount > 0 {
		parts = append(parts, GetStatus("open").RenderWithCount(openCount))
	}
	if draftCount > 0 {
		parts = append(parts, GetStatus("draft").RenderWithCount(draftCount))
	}
	if mergedCount > 0 {
		parts = append(parts, GetStatus("merged").RenderWithCount(mergedCount))
	}
	if needsPushCount > 0 {
		parts = append(parts, GetStatus("needs-push").RenderWithCount(needsPushCount))
	}
	if localCount > 0 {
		parts = append(parts, GetStatus("local").RenderWithCount(localCount))
	}

	if len(parts) == 0 {
		return Dim("no PRs")
	}

	var result strings.Builder
	for i, part := range parts {
		if i > 0 {
			result.WriteString("  ")
		}
		result.WriteString(part)
	}
	return result.String()
}

// CountSegmentsByState counts narrowed stack segments by their forge status.
func CountSegmentsByState(segments []model.NarrowedBookmarkSegment, prs map[string]model.PullRequest) (open, draft, merged, closed, local, needsPush int) {
	for _, seg := range segments {
		pr, hasPR := prs[seg.Bookmark.Name]
		if !hasPR {
			local++
		} else {
			switch {
			case pr.IsDraft:
				draft++
			case pr.State == "open":
				open++
			case pr.State == "merged":
				merged++
			case pr.State == "closed":
				closed++
			}
		}

		if seg.NeedsPush() {
			needsPush++
		}
	}
	return
}
