// Package sync implements the `jjsubmit sync` command: runs the same
// planner core `submit` uses, but batched across every local stack instead
// of just the one the working copy currently sits on.
package sync

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/config"
	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/model"
	"github.com/bjulian5/jjsubmit/internal/runner"
	"github.com/bjulian5/jjsubmit/internal/submit"
	"github.com/bjulian5/jjsubmit/internal/ui"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command implements `jjsubmit sync`.
type Command struct {
	DryRun  bool
	Confirm bool
	Stack   string
	Remote  string

	Workspace *vcs.Workspace
	Forge     forge.Service
	Config    *config.Store
}

// Register adds the sync command to the parent cobra command.
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run the submit plan across every local stack",
		Long: `Sync discovers every independent stack in the workspace — every
bookmark rooted off trunk with nothing stacked on top of it — and runs the
same push/create/retarget plan submit would run, once per stack. Use
--stack to limit it to stacks whose leaf bookmark contains a given substring.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.DryRun, "dry-run", false, "print every stack's plan without executing it")
	cmd.Flags().BoolVar(&c.Confirm, "confirm", false, "prompt once before executing all stacks")
	cmd.Flags().StringVar(&c.Stack, "stack", "", "only sync stacks whose leaf bookmark contains this substring")
	cmd.Flags().StringVar(&c.Remote, "remote", "origin", "git remote to push to and read PR state from")

	parent.AddCommand(cmd)
}

// Run executes the sync command end to end.
func (c *Command) Run(ctx context.Context) error {
	ws, err := vcs.NewWorkspace()
	if err != nil {
		ui.Error("not in a jj workspace")
		return fmt.Errorf("workspace initialization failed: %w", err)
	}
	c.Workspace = ws
	c.Forge = forge.NewGitHub()

	store := config.NewStore(ws.Root())
	cfg, err := store.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	c.Config = store
	if c.Remote == "" {
		c.Remote = cfg.DefaultRemote
	}

	trunk, err := ws.DefaultBranch()
	if err != nil {
		return fmt.Errorf("failed to resolve default branch: %w", err)
	}

	stacks, err := vcs.DiscoverStacks(ws, c.Remote)
	if err != nil {
		return fmt.Errorf("failed to discover stacks: %w", err)
	}
	if c.Stack != "" {
		stacks = filterStacks(stacks, c.Stack)
	}
	if len(stacks) == 0 {
		ui.Info("nothing to sync: no local stacks found")
		return nil
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: submit.LevelTrace}))

	type stackPlan struct {
		stack vcs.Stack
		prs   []model.PullRequest
		plan  *submit.SubmissionPlan
	}

	plans := make([]stackPlan, 0, len(stacks))
	for _, st := range stacks {
		prs, err := fetchExistingPRs(ctx, c.Forge, st.Segments)
		if err != nil {
			return fmt.Errorf("failed to fetch existing PRs for %s: %w", st.Leaf, err)
		}

		stackModel := submit.NewStackModel(st.Segments, prs, trunk)
		plan, err := submit.AssemblePlan(stackModel, c.Remote, submit.BuildOptions{}, logger)
		if err != nil {
			return fmt.Errorf("failed to plan stack %s: %w", st.Leaf, err)
		}
		plans = append(plans, stackPlan{stack: st, prs: prs, plan: plan})
	}

	totalSteps := 0
	for _, p := range plans {
		fmt.Println(ui.RenderTitle(fmt.Sprintf("Stack: %s", p.stack.Leaf)))
		fmt.Println(ui.FormatPlanSteps(p.plan))
		fmt.Println()
		totalSteps += len(p.plan.ExecutionSteps)
	}

	if c.DryRun {
		return nil
	}
	if totalSteps == 0 {
		ui.Success("every stack is already in sync")
		return nil
	}
	if c.Confirm && !ui.Confirm(fmt.Sprintf("Execute %d steps across %d stacks? Type 'yes' to continue: ", totalSteps, len(plans)), "yes") {
		ui.Info("aborted")
		return nil
	}

	exec := &runner.Executor{Workspace: ws, Forge: c.Forge, Remote: c.Remote}

	var pushed, created, updated, softFailed int
	for _, p := range plans {
		result := submit.Drive(ctx, p.plan, exec)
		for _, r := range result.Results {
			if r.Outcome.Kind != submit.Success {
				if r.Outcome.Kind == submit.SoftError {
					softFailed++
					ui.Warning(fmt.Sprintf("%s: %s", submit.FormatStep(r.Step), r.Outcome.Message))
				} else {
					ui.Error(fmt.Sprintf("%s: %s", submit.FormatStep(r.Step), r.Outcome.Message))
				}
				continue
			}
			switch r.Step.Node.Kind {
			case submit.KindPush:
				pushed++
			case submit.KindCreatePr:
				created++
			case submit.KindUpdateBase:
				updated++
			}
		}
		if result.Stopped {
			ui.Errorf("stack %s stopped after a fatal error", p.stack.Leaf)
		}
	}

	ui.Successf("synced %d stacks: %d pushed, %d created, %d retargeted, %d soft-failed",
		len(plans), pushed, created, updated, softFailed)
	return nil
}

func filterStacks(stacks []vcs.Stack, filter string) []vcs.Stack {
	var out []vcs.Stack
	for _, st := range stacks {
		if strings.Contains(st.Leaf, filter) {
			out = append(out, st)
		}
	}
	return out
}

func fetchExistingPRs(ctx context.Context, svc forge.Service, segments []model.NarrowedBookmarkSegment) ([]model.PullRequest, error) {
	var out []model.PullRequest
	for _, seg := range segments {
		pr, err := svc.FindExistingPR(ctx, seg.Bookmark.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to look up PR for %s: %w", seg.Bookmark.Name, err)
		}
		if pr != nil {
			out = append(out, *pr)
		}
	}
	return out, nil
}
