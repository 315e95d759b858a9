// Package auth implements `jjsubmit auth`: verifying and bootstrapping the
// forge credentials submit/sync need, mirroring original_source's
// cli::auth test/setup split for a single forge instead of three.
package auth

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/ui"
)

// Command implements `jjsubmit auth`.
type Command struct {
	GitHub *forge.GitHub
}

// Register adds the auth command and its test/setup subcommands to the
// parent cobra command.
func (c *Command) Register(parent *cobra.Command) {
	c.GitHub = forge.NewGitHub()

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Verify or set up GitHub credentials",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "test",
		Short: "Verify the gh CLI is authenticated",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			return c.RunTest(cobraCmd.Context())
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "setup",
		Short: "Print GitHub authentication setup instructions",
		RunE: func(cobraCmd *cobra.Command, args []string) error {
			c.RunSetup()
			return nil
		},
	})

	parent.AddCommand(cmd)
}

// RunTest verifies gh is authenticated and reports the logged-in username.
func (c *Command) RunTest(ctx context.Context) error {
	username, err := c.GitHub.TestAuth(ctx)
	if err != nil {
		ui.Error(err.Error())
		return err
	}
	ui.Successf("authenticated as %s", username)
	return nil
}

// RunSetup prints instructions for authenticating gh, since jjsubmit never
// manages GitHub credentials itself.
func (c *Command) RunSetup() {
	ui.Print(ui.RenderTitle("GitHub authentication setup"))
	ui.Print("")
	ui.Print("jjsubmit shells out to the gh CLI for every forge operation and")
	ui.Print("never handles credentials directly. To authenticate:")
	ui.Print("")
	ui.Print("  1. Install the gh CLI: https://cli.github.com/")
	ui.Print("  2. Run: gh auth login")
	ui.Print("  3. Verify with: jjsubmit auth test")
	ui.Print("")
	ui.Print("Against GitHub Enterprise, set GH_HOST to your instance hostname")
	ui.Print("before running gh auth login.")
}
