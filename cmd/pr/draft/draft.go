// Package draft implements `jjsubmit pr draft`: convert a single PR back
// into draft state without running a full submit.
package draft

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/ui"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command marks a PR as draft.
type Command struct {
	Workspace *vcs.Workspace
	Forge     forge.Service
}

// Register registers the command with cobra.
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "draft",
		Short: "Mark a PR as draft",
		Long:  `Convert an open pull request back into a draft, selected via a fuzzy finder.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	parent.AddCommand(cmd)
}

// Run executes the command.
func (c *Command) Run(ctx context.Context) error {
	current, err := c.Workspace.CurrentBookmark()
	if err != nil {
		return fmt.Errorf("failed to resolve current bookmark: %w", err)
	}

	segments, err := vcs.Narrow(c.Workspace, current, vcs.NarrowOptions{Remote: "origin"})
	if err != nil {
		return fmt.Errorf("failed to narrow stack: %w", err)
	}
	if len(segments) == 0 {
		return fmt.Errorf("no bookmarks in the current stack")
	}

	bookmark, err := ui.SelectUpto(segments)
	if err != nil {
		return err
	}
	if bookmark == "" {
		return nil
	}

	pr, err := c.Forge.FindExistingPR(ctx, bookmark)
	if err != nil {
		return fmt.Errorf("failed to look up PR for %s: %w", bookmark, err)
	}
	if pr == nil {
		return fmt.Errorf("no PR found for %s", bookmark)
	}
	if pr.IsDraft {
		ui.Info("PR is already a draft")
		return nil
	}

	if err := c.Forge.MarkDraft(ctx, pr.Number); err != nil {
		return err
	}

	ui.Successf("marked PR #%d as draft", pr.Number)
	return nil
}
