package submit

import (
	"context"
	"log/slog"
)

// Edge is a resolved (from, to) ordering pair over the single shared node
// index space spanning all kinds (§4.6).
type Edge struct {
	From NodeIdx
	To   NodeIdx
}

// resolveEdges implements §4.6: each constraint's endpoints are looked up in
// the registry; a constraint with either endpoint unmaterialized is dropped
// (trace-logged, not an error — see §4.6 and the design note in §9). The
// result is deduplicated.
func resolveEdges(constraints []Constraint, reg *NodeRegistry, logger *slog.Logger) []Edge {
	var out []Edge
	seen := make(map[Edge]bool)

	for _, c := range constraints {
		from, ok := c.Before.resolve(reg)
		if !ok {
			trace(logger, "Constraint skipped", "constraint", c.String(), "reason", "endpoint not materialized", "endpoint", c.Before.String())
			continue
		}
		to, ok := c.After.resolve(reg)
		if !ok {
			trace(logger, "Constraint skipped", "constraint", c.String(), "reason", "endpoint not materialized", "endpoint", c.After.String())
			continue
		}
		e := Edge{From: from, To: to}
		if seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
		trace(logger, "Resolved constraint to edge", "constraint", c.String(), "from", reg.Node(from).String(), "to", reg.Node(to).String())
	}
	return out
}

// trace logs at a level below Debug — the planner's trace-level event
// surface from §6, which the standard slog levels don't otherwise reach.
func trace(logger *slog.Logger, msg string, args ...any) {
	if logger == nil {
		return
	}
	logger.Log(context.Background(), LevelTrace, msg, args...)
}
