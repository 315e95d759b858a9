package ui

import (
	"fmt"
	"os"
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/ktr0731/go-fuzzyfinder"

	"github.com/bjulian5/jjsubmit/internal/model"
)

func init() {
	// Force lipgloss to initialize and detect terminal before fuzzy finder starts
	// This prevents ANSI escape sequences from leaking into the finder input
	_ = lipgloss.NewStyle().Render("")
	// Ensure color profile is detected early
	_ = lipgloss.HasDarkBackground()
}

// SelectUpto presents a fuzzy finder over the narrowed stack segments and
// returns the bookmark name to use as --upto, or "" if the user cancelled.
func SelectUpto(segments []model.NarrowedBookmarkSegment) (string, error) {
	if len(segments) == 0 {
		return "", nil
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	idx, err := fuzzyfinder.Find(
		segments,
		func(i int) string {
			return FormatSegmentFinderLine(segments[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatSegmentPreview(segments[i])
		}),
	)
	if err != nil {
		return "", nil
	}
	return segments[idx].Bookmark.Name, nil
}

// SelectRange presents a multi-select fuzzy finder over the narrowed stack
// segments for the --select flag (SPEC_FULL §12). Per the original
// interactive_select() behavior, the chosen segments must form a contiguous
// run from the stack root; a non-contiguous pick is rejected with an error
// naming the gap instead of silently expanding or dropping it.
func SelectRange(segments []model.NarrowedBookmarkSegment) ([]model.NarrowedBookmarkSegment, error) {
	if len(segments) == 0 {
		return nil, nil
	}

	os.Stdout.Sync()
	os.Stderr.Sync()

	indices, err := fuzzyfinder.FindMulti(
		segments,
		func(i int) string {
			return FormatSegmentFinderLine(segments[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return ""
			}
			return FormatSegmentPreview(segments[i])
		}),
	)
	if err != nil {
		return nil, nil
	}
	if len(indices) == 0 {
		return nil, nil
	}

	sort.Ints(indices)
	for i := 1; i < len(indices); i++ {
		if indices[i] != indices[i-1]+1 {
			return nil, fmt.Errorf("selection must be a contiguous run from the stack root; gap between %s and %s",
				segments[indices[i-1]].Bookmark.Name, segments[indices[i]].Bookmark.Name)
		}
	}
	if indices[0] != 0 {
		return nil, fmt.Errorf("selection must start at the stack root (%s)", segments[0].Bookmark.Name)
	}

	out := make([]model.NarrowedBookmarkSegment, len(indices))
	for i, idx := range indices {
		out[i] = segments[idx]
	}
	return out, nil
}
