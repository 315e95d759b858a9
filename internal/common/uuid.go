// Package common holds small helpers shared across cmd/ and internal/ that
// don't belong to any single domain package.
package common

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateStackID generates a 16-character hex identifier used to tag a
// stack's PRs for the visualization comment, so the comment can find every
// sibling PR without depending on bookmark naming.
func GenerateStackID() string {
	u := uuid.New()
	hexStr := strings.ReplaceAll(u.String(), "-", "")
	return hexStr[:16]
}
