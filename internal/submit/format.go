package submit

import "fmt"

// FormatStep renders a single step in the stable CLI dry-run vocabulary from
// §4.10. The dry-run renderer (ui.FormatPlanSteps) prefixes each line with
// the "    -> " marker from §6; this function only renders the step body.
func FormatStep(s Step) string {
	n := s.Node
	switch n.Kind {
	case KindPush:
		return fmt.Sprintf("push %s", n.PushBookmark)
	case KindUpdateBase:
		return fmt.Sprintf("update base of PR #%d: %s → %s", n.UpdatePRNumber, n.UpdateOldBase, n.UpdateNewBase)
	case KindCreatePr:
		suffix := ""
		if n.CreateDraft {
			suffix = " (draft)"
		}
		return fmt.Sprintf("create PR %s → %s%s", n.CreateHeadBookmark, n.CreateBaseBookmark, suffix)
	case KindPublishPr:
		return fmt.Sprintf("publish PR #%d", n.PublishPRNumber)
	default:
		return "unknown step"
	}
}

// FormatConstraint renders a constraint as "Kind(name) -> Kind(name)" for
// human display, per §4.3.
func FormatConstraint(c Constraint) string {
	return fmt.Sprintf("%s -> %s", c.Before, c.After)
}
