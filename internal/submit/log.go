package submit

import "log/slog"

// LevelTrace sits one tier below slog.LevelDebug, for the per-constraint
// resolution events §6 calls out as trace-level ("Resolved constraint to
// edge" / "Constraint skipped"). The standard library has no Trace level, so
// callers must pass a handler whose Enabled check accounts for negative
// levels (slog's default handlers do, by comparing ints directly).
const LevelTrace slog.Level = slog.LevelDebug - 4
