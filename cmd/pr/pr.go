// Package pr groups pull-request operations that act on a single bookmark
// rather than the whole stack: opening a PR in the browser, or flipping its
// draft state directly, independent of a full submit run.
package pr

import (
	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/cmd/pr/draft"
	"github.com/bjulian5/jjsubmit/cmd/pr/open"
	"github.com/bjulian5/jjsubmit/cmd/pr/ready"
	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command is the `jjsubmit pr` command group.
type Command struct {
	Workspace *vcs.Workspace
	Forge     forge.Service
}

// Register wires a jj workspace and the GitHub forge adapter, then
// registers every pr subcommand against them.
func (c *Command) Register(parent *cobra.Command) {
	var err error
	c.Workspace, err = vcs.NewWorkspace()
	if err != nil {
		panic(err)
	}
	c.Forge = forge.NewGitHub()

	cmd := &cobra.Command{
		Use:   "pr",
		Short: "Operate on a single bookmark's pull request",
		Long: `pr groups operations that act on exactly one bookmark's pull request,
independent of a full submit run: opening it in the browser, or marking it
draft/ready.`,
	}

	openCmd := &open.Command{Workspace: c.Workspace, Forge: c.Forge}
	openCmd.Register(cmd)

	draftCmd := &draft.Command{Workspace: c.Workspace, Forge: c.Forge}
	draftCmd.Register(cmd)

	readyCmd := &ready.Command{Workspace: c.Workspace, Forge: c.Forge}
	readyCmd.Register(cmd)

	parent.AddCommand(cmd)
}
