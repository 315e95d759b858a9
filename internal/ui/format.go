package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/bjulian5/jjsubmit/internal/model"
	"github.com/bjulian5/jjsubmit/internal/submit"
)

// Truncate truncates text to maxLen with an ellipsis if needed
// Uses lipgloss for proper ANSI-aware width handling
func Truncate(text string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}

	// Use lipgloss width to handle ANSI codes properly
	width := lipgloss.Width(text)
	if width <= maxLen {
		return text
	}

	if maxLen <= 3 {
		// Use lipgloss MaxWidth for proper truncation
		return lipgloss.NewStyle().MaxWidth(maxLen).Render(text)
	}

	// Use lipgloss MaxWidth and add ellipsis
	return lipgloss.NewStyle().MaxWidth(maxLen-3).Render(text) + "..."
}

func Pad(text string, width int, align lipgloss.Position) string {
	return lipgloss.PlaceHorizontal(width, align, text)
}

func RenderBox(title string, content string) string {
	style := BoxStyle
	if title != "" {
		style = style.BorderForeground(ColorPrimary)
		titleStyled := lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true).
			Render(title)

		combined := lipgloss.JoinVertical(lipgloss.Left, titleStyled, "", content)
		return style.Render(combined)
	}
	return style.Render(content)
}

func RenderPanel(content string) string {
	return PanelStyle.Render(content)
}

func RenderHeader(text string) string {
	return HeaderStyle.Render(text)
}

func RenderTitle(text string) string {
	return TitleStyle.Render(text)
}

func RenderTitlef(format string, args ...interface{}) string {
	return RenderTitle(fmt.Sprintf(format, args...))
}

func RenderSubtitle(text string) string {
	return SubtitleStyle.Render(text)
}

// RenderBulletList renders a list with bullets
func RenderBulletList(items []string) string {
	var lines []string
	for _, item := range items {
		lines = append(lines, DimStyle.Render("  • ")+item)
	}
	return strings.Join(lines, "\n")
}

// RenderNumberedList renders a numbered list
func RenderNumberedList(items []string) string {
	var lines []string
	for i, item := range items {
		num := DimStyle.Render(fmt.Sprintf("  %d. ", i+1))
		lines = append(lines, num+item)
	}
	return strings.Join(lines, "\n")
}

// RenderSeparator renders a horizontal separator line
func RenderSeparator(width int) string {
	if width <= 0 {
		width = GetTerminalWidth()
		if width <= 0 {
			width = Display.DefaultTerminalWidth
		}
	}
	return DimStyle.Render(strings.Repeat("─", width))
}

func RenderKeyValue(key string, value string) string {
	keyStyled := DimStyle.Render(key + ":")
	return fmt.Sprintf("%s %s", keyStyled, value)
}

func RenderKeyValueList(pairs map[string]string, keys []string) string {
	var lines []string

	maxKeyLen := 0
	for _, key := range keys {
		keyLen := lipgloss.Width(key)
		if keyLen > maxKeyLen {
			maxKeyLen = keyLen
		}
	}

	for _, key := range keys {
		// Pad key to max width
		paddedKey := Pad(key, maxKeyLen, lipgloss.Left)
		keyStyled := DimStyle.Render(paddedKey + ":")
		lines = append(lines, fmt.Sprintf("%s %s", keyStyled, pairs[key]))
	}

	return strings.Join(lines, "\n")
}

// Rows joins multiple strings vertically with newlines
// Uses lipgloss.JoinVertical for consistent layout
func Rows(items ...string) string {
	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

// Columns joins multiple strings horizontally
// Uses lipgloss.JoinHorizontal for consistent layout
func Columns(items ...string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, items...)
}

// FormatSegmentFinderLine formats a narrowed stack segment for display in
// the fuzzy finder list pane. The finder doesn't support ANSI codes, so this
// is plain text.
func FormatSegmentFinderLine(seg model.NarrowedBookmarkSegment) string {
	status := "needs push"
	if !seg.NeedsPush() {
		status = "in sync"
	}
	return fmt.Sprintf("%-*s  base: %-*s  %s", Display.MaxStackNameLength, seg.Bookmark.Name, Display.MaxStackNameLength, seg.Base, status)
}

// FormatSegmentPreview formats a narrowed stack segment for the fuzzy
// finder's preview pane, which does support ANSI styling.
func FormatSegmentPreview(seg model.NarrowedBookmarkSegment) string {
	lines := []string{
		RenderKeyValue("Bookmark", Bold(seg.Bookmark.Name)),
		RenderKeyValue("Base", Muted(seg.Base)),
		RenderKeyValue("Change", Muted(seg.Bookmark.ChangeID)),
	}
	if seg.NeedsPush() {
		lines = append(lines, RenderKeyValue("Status", WarningStyle.Render("needs push")))
	} else {
		lines = append(lines, RenderKeyValue("Status", SuccessStyle.Render("in sync")))
	}
	return strings.Join(lines, "\n")
}

// FormatPlanSteps renders every step of a submission plan in the stable
// dry-run vocabulary, one line per step, each prefixed as §6 specifies.
func FormatPlanSteps(plan *submit.SubmissionPlan) string {
	if len(plan.ExecutionSteps) == 0 {
		return Dim("nothing to do")
	}
	var lines []string
	for _, step := range plan.ExecutionSteps {
		lines = append(lines, "    -> "+submit.FormatStep(step))
	}
	return strings.Join(lines, "\n")
}

// FormatPlanConstraints renders the retained constraints for debug display.
func FormatPlanConstraints(plan *submit.SubmissionPlan) string {
	if len(plan.Constraints) == 0 {
		return Dim("no constraints")
	}
	var lines []string
	for _, c := range plan.Constraints {
		lines = append(lines, "  "+submit.FormatConstraint(c))
	}
	return strings.Join(lines, "\n")
}
