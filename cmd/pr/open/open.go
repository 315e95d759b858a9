// Package open implements `jjsubmit pr open`.
package open

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/ui"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command opens a PR in the browser.
type Command struct {
	Position string // "top" to skip the fuzzy finder and open the top PR

	Workspace *vcs.Workspace
	Forge     forge.Service
}

// Register registers the command with cobra.
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "open [top]",
		Short: "Open a PR in the browser",
		Long: `Open a pull request in the browser using a fuzzy finder.

If "top" is provided, opens the PR for the bookmark furthest from trunk.
Otherwise, displays a fuzzy finder to select which bookmark's PR to open.

Example:
  jjsubmit pr open       # Select a bookmark interactively
  jjsubmit pr open top   # Open the topmost bookmark's PR`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				if args[0] != "top" {
					return fmt.Errorf("invalid argument %q: use 'top' or no argument", args[0])
				}
				c.Position = args[0]
			}
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

	var bookmark string
	if c.Position == "top" {
		bookmark = segments[len(segments)-1].Bookmark.Name
	} else {
		bookmark, err = ui.SelectUpto(segments)
		if err != nil {
			return err
		}
		if bookmark == "" {
			return nil
		}
	}

	pr, err := c.Forge.FindExistingPR(ctx, bookmark)
	if err != nil {
		return fmt.Errorf("failed to look up PR for %s: %w", bookmark, err)
	}
	if pr == nil {
		return fmt.Errorf("no PR found for %s: use 'jjsubmit submit' to create one", bookmark)
	}

	if err := c.Forge.OpenPR(ctx, pr.Number); err != nil {
		return fmt.Errorf("%w (ensure 'gh' CLI is installed and authenticated)", err)
	}

	ui.Successf("opened PR #%d for %s", pr.Number, bookmark)
	return nil
}
