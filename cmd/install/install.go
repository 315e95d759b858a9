// Package install implements `jjsubmit install`: bootstrap a repository's
// jjsubmit config file with its defaults.
package install

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/config"
	"github.com/bjulian5/jjsubmit/internal/ui"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command installs jjsubmit's per-repository config.
type Command struct {
	Workspace *vcs.Workspace
	Store     *config.Store

	Remote string
	Draft  bool
}

// Register registers the command with cobra.
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Set up jjsubmit's config for this repository",
		Long: `Install writes jjsubmit's per-repository config file
(.jj/jjsubmit/config.json), seeded with sensible defaults.

This command is idempotent and can be run multiple times safely; it
overrides only the values it's given, leaving the rest as previously saved.

Example:
  jjsubmit install --remote origin`,
		Args: cobra.NoArgs,
		PreRunE: func(cobraCmd *cobra.Command, args []string) error {
			var err error
			c.Workspace, err = vcs.NewWorkspace()
			if err != nil {
				ui.Println("")
				ui.Info("The 'jjsubmit install' command must be run from within a jj workspace.")
				ui.Info("Please navigate to your repository and try again.")
			}
			return err
		},
		RunE: c.Run,
	}

	cmd.Flags().StringVar(&c.Remote, "remote", "origin", "default remote to push to and read PR state from")
	cmd.Flags().BoolVar(&c.Draft, "draft", false, "default to creating new PRs as drafts")

	parent.AddCommand(cmd)
}

// Run executes the command.
func (c *Command) Run(cmd *cobra.Command, args []string) error {
	c.Store = config.NewStore(c.Workspace.Root())

	cfg, err := c.Store.Load()
	if err != nil {
		return fmt.Errorf("failed to load existing config: %w", err)
	}

	if cmd.Flags().Changed("remote") {
		cfg.DefaultRemote = c.Remote
	}
	if cmd.Flags().Changed("draft") {
		cfg.DefaultDraft = c.Draft
	}

	if err := c.Store.Save(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	ui.Success("jjsubmit config written")

	ui.Print("")
	ui.Print("Get started by submitting your current stack:")
	ui.Print("  " + ui.Highlight("jjsubmit submit --dry-run"))

	return nil
}
