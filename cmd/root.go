package cmd

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/cmd/auth"
	"github.com/bjulian5/jjsubmit/cmd/install"
	"github.com/bjulian5/jjsubmit/cmd/pr"
	"github.com/bjulian5/jjsubmit/cmd/submit"
	"github.com/bjulian5/jjsubmit/cmd/sync"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jjsubmit",
	Short: "Stacked PR submission for jj",
	Long: `jjsubmit is a CLI tool for submitting stacked pull requests from a
jj (Jujutsu) workspace.

It narrows the current stack of bookmarks, figures out which ones need to be
pushed, which need a new pull request, and which existing pull requests need
to be retargeted, then runs those steps in dependency order.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(ctx context.Context) {
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		log.Fatal(err)
	}
}

func init() {
	// Register all commands
	commands := []Command{
		&submit.Command{},
		&sync.Command{},
		&pr.Command{},
		&install.Command{},
		&auth.Command{},
	}

	for _, cmd := range commands {
		cmd.Register(rootCmd)
	}
}
