package forge

import (
	"context"
	"fmt"
	"strings"
)

const stackMarkerPrefix = "<!-- jjsubmit-stack-id: "
const stackMarkerSuffix = " -->"

// StackVisualization renders the body of the stack-visualization comment:
// a shared marker identifying the stack, followed by the given lines (one
// per PR in the stack, root-first).
func StackVisualization(stackID string, lines []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s%s%s\n", stackMarkerPrefix, stackID, stackMarkerSuffix)
	b.WriteString("**Stack**\n\n")
	for _, line := range lines {
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

// FindStackID looks for a previously-posted stack marker among a PR's
// comments, returning the id it carries and true if one was found.
func FindStackID(comments []Comment) (string, bool) {
	for _, c := range comments {
		idx := strings.Index(c.Body, stackMarkerPrefix)
		if idx == -1 {
			continue
		}
		rest := c.Body[idx+len(stackMarkerPrefix):]
		end := strings.Index(rest, stackMarkerSuffix)
		if end == -1 {
			continue
		}
		return rest[:end], true
	}
	return "", false
}

// SyncStackComment posts or updates the stack-visualization comment on PR
// number, reusing the comment already tagged with stackID instead of
// appending a new one on every run.
func SyncStackComment(ctx context.Context, svc Service, number int, stackID string, lines []string) error {
	comments, err := svc.ListPRComments(ctx, number)
	if err != nil {
		return fmt.Errorf("failed to list comments on PR #%d: %w", number, err)
	}

	body := StackVisualization(stackID, lines)

	for _, c := range comments {
		if id, ok := FindStackID([]Comment{c}); ok && id == stackID {
			return svc.UpdatePRComment(ctx, c.ID, body)
		}
	}

	if _, err := svc.CreatePRComment(ctx, number, body); err != nil {
		return fmt.Errorf("failed to create stack comment on PR #%d: %w", number, err)
	}
	return nil
}
