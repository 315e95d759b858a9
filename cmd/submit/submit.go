// Package submit implements the `jjsubmit submit` command: narrows the
// current stack, runs the planner core, and either prints a dry-run preview
// or drives the resulting plan against the forge.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bjulian5/jjsubmit/internal/common"
	"github.com/bjulian5/jjsubmit/internal/config"
	"github.com/bjulian5/jjsubmit/internal/forge"
	"github.com/bjulian5/jjsubmit/internal/model"
	"github.com/bjulian5/jjsubmit/internal/runner"
	"github.com/bjulian5/jjsubmit/internal/submit"
	"github.com/bjulian5/jjsubmit/internal/ui"
	"github.com/bjulian5/jjsubmit/internal/vcs"
)

// Command implements `jjsubmit submit`.
type Command struct {
	DryRun     bool
	Confirm    bool
	Draft      bool
	Publish    bool
	Upto       string
	Only       string
	UpdateOnly bool
	Select     bool
	Remote     string

	draftFlagSet bool

	Workspace *vcs.Workspace
	Forge     forge.Service
	Config    *config.Store
}

// Register adds the submit command to the parent cobra command.
func (c *Command) Register(parent *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Push, create, and retarget PRs for the current stack",
		Long: `Submit reconciles the local jj stack with the forge: it pushes
bookmarks that are out of sync, opens pull requests for bookmarks that don't
have one, retargets existing pull requests whose base has changed, and
optionally publishes draft PRs.

The set of changes is computed by a planner that models every push, retarget,
and create as a node in a dependency graph, then orders them with a
topological sort so that a base is always pushed before anything is
retargeted onto it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.draftFlagSet = cmd.Flags().Changed("draft")
			return c.Run(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&c.DryRun, "dry-run", false, "print the plan without executing it")
	cmd.Flags().BoolVar(&c.Confirm, "confirm", false, "prompt for confirmation before executing")
	cmd.Flags().BoolVar(&c.Draft, "draft", false, "create new PRs as drafts")
	cmd.Flags().BoolVar(&c.Publish, "publish", false, "publish existing draft PRs (wins over --draft for PRs created this run)")
	cmd.Flags().StringVar(&c.Upto, "upto", "", "limit the stack to bookmarks up to and including this one")
	cmd.Flags().StringVar(&c.Only, "only", "", "operate on exactly this one bookmark")
	cmd.Flags().BoolVar(&c.UpdateOnly, "update-only", false, "only push and retarget bookmarks that already have a PR; never create or publish PRs")
	cmd.Flags().BoolVar(&c.Select, "select", false, "interactively select a contiguous range of the stack")
	cmd.Flags().StringVar(&c.Remote, "remote", "origin", "git remote to push to and read PR state from")

	parent.AddCommand(cmd)
}

// Run executes the submit command end to end.
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
	if !c.draftFlagSet {
		c.Draft = cfg.DefaultDraft
	}

	trunk, err := ws.DefaultBranch()
	if err != nil {
		return fmt.Errorf("failed to resolve default branch: %w", err)
	}

	current, err := ws.CurrentBookmark()
	if err != nil {
		return fmt.Errorf("failed to resolve current bookmark: %w", err)
	}

	segments, err := vcs.Narrow(ws, current, vcs.NarrowOptions{
		Upto:   c.Upto,
		Only:   c.Only,
		Remote: c.Remote,
	})
	if err != nil {
		return fmt.Errorf("failed to narrow stack: %w", err)
	}

	if c.Select {
		selected, err := ui.SelectRange(segments)
		if err != nil {
			return err
		}
		if selected == nil {
			ui.Info("selection cancelled")
			return nil
		}
		segments = selected
	}

	if len(segments) == 0 {
		ui.Info("nothing to submit: stack is empty")
		return nil
	}

	prs, err := fetchExistingPRs(ctx, c.Forge, segments)
	if err != nil {
		return fmt.Errorf("failed to fetch existing PRs: %w", err)
	}

	if c.Only != "" && segments[0].Base != trunk {
		parentPR, err := c.Forge.FindExistingPR(ctx, segments[0].Base)
		if err != nil {
			return fmt.Errorf("failed to look up parent PR for %s: %w", segments[0].Base, err)
		}
		if parentPR == nil {
			return fmt.Errorf("--only requires %s's parent (%s) to already have a PR", c.Only, segments[0].Base)
		}
	}

	stackModel := submit.NewStackModel(segments, prs, trunk)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: submit.LevelTrace}))

	opts := submit.BuildOptions{Draft: c.Draft, Publish: c.Publish}
	if c.UpdateOnly {
		opts.Draft = false
	}

	plan, err := submit.AssemblePlan(stackModel, c.Remote, opts, logger)
	if err != nil {
		return describePlanError(err)
	}

	if c.UpdateOnly {
		plan = filterUpdateOnly(plan)
	}

	fmt.Println(ui.RenderTitle("Submission plan"))
	fmt.Println(ui.FormatPlanSteps(plan))
	fmt.Println()
	fmt.Println(ui.RenderStackTree(segments, toPRMap(prs), current))

	if c.DryRun {
		return nil
	}
	if len(plan.ExecutionSteps) == 0 {
		ui.Success("stack is already in sync")
		return nil
	}
	if c.Confirm && !ui.Confirm(fmt.Sprintf("Execute %d steps? Type 'yes' to continue: ", len(plan.ExecutionSteps)), "yes") {
		ui.Info("aborted")
		return nil
	}

	exec := &runner.Executor{Workspace: ws, Forge: c.Forge, Remote: c.Remote}
	result := submit.Drive(ctx, plan, exec)
	if err := reportResult(result); err != nil {
		return err
	}

	if err := postStackVisualization(ctx, c.Forge, segments); err != nil {
		ui.Warning(fmt.Sprintf("failed to update stack comment: %v", err))
	}
	return nil
}

// postStackVisualization tags every PR in the stack with a shared stack id
// and a comment listing the whole stack, so reviewers can jump between
// sibling PRs without the bookmarks being named after each other. The id is
// read back from whichever PR already carries one; a stack with no PRs yet
// commented on gets a freshly generated one.
func postStackVisualization(ctx context.Context, svc forge.Service, segments []model.NarrowedBookmarkSegment) error {
	prs, err := fetchExistingPRs(ctx, svc, segments)
	if err != nil {
		return fmt.Errorf("failed to refresh PR state: %w", err)
	}
	if len(prs) == 0 {
		return nil
	}
	byBookmark := toPRMap(prs)

	stackID := ""
	for _, seg := range segments {
		pr, ok := byBookmark[seg.Bookmark.Name]
		if !ok {
			continue
		}
		comments, err := svc.ListPRComments(ctx, pr.Number)
		if err != nil {
			continue
		}
		if id, found := forge.FindStackID(comments); found {
			stackID = id
			break
		}
	}
	if stackID == "" {
		stackID = common.GenerateStackID()
	}

	lines := make([]string, 0, len(segments))
	for _, seg := range segments {
		pr, ok := byBookmark[seg.Bookmark.Name]
		if !ok {
			lines = append(lines, fmt.Sprintf("- %s (no PR yet)", seg.Bookmark.Name))
			continue
		}
		lines = append(lines, fmt.Sprintf("- #%d %s -> %s", pr.Number, seg.Bookmark.Name, seg.Base))
	}

	for _, seg := range segments {
		pr, ok := byBookmark[seg.Bookmark.Name]
		if !ok {
			continue
		}
		if err := forge.SyncStackComment(ctx, svc, pr.Number, stackID, lines); err != nil {
			return err
		}
	}
	return nil
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

func toPRMap(prs []model.PullRequest) map[string]model.PullRequest {
	out := make(map[string]model.PullRequest, len(prs))
	for _, pr := range prs {
		out[pr.HeadBookmark] = pr
	}
	return out
}

// filterUpdateOnly drops CreatePr and PublishPr steps and any Push step for
// a bookmark with no existing PR, per SPEC_FULL §12's --update-only.
func filterUpdateOnly(plan *submit.SubmissionPlan) *submit.SubmissionPlan {
	hasPR := make(map[string]bool, len(plan.ExistingPRs))
	for _, pr := range plan.ExistingPRs {
		hasPR[pr.HeadBookmark] = true
	}

	filtered := *plan
	filtered.ExecutionSteps = nil
	for _, step := range plan.ExecutionSteps {
		switch step.Node.Kind {
		case submit.KindCreatePr, submit.KindPublishPr:
			continue
		case submit.KindPush:
			if !hasPR[step.Node.PushBookmark] {
				continue
			}
		}
		filtered.ExecutionSteps = append(filtered.ExecutionSteps, step)
	}
	return &filtered
}

func describePlanError(err error) error {
	var cycleErr *submit.SchedulerCycle
	if errors.As(err, &cycleErr) {
		ui.Error("scheduler detected a cycle; this is a bug, please report")
		for _, n := range cycleErr.CycleNodes {
			ui.Print("  " + n)
		}
	}
	return err
}

func reportResult(result submit.DriverResult) error {
	succeeded, softFailed := 0, 0
	for _, r := range result.Results {
		switch r.Outcome.Kind {
		case submit.Success:
			succeeded++
			ui.Success(submit.FormatStep(r.Step))
		case submit.SoftError:
			softFailed++
			ui.Warning(fmt.Sprintf("%s: %s", submit.FormatStep(r.Step), r.Outcome.Message))
		case submit.FatalError:
			ui.Error(fmt.Sprintf("%s: %s", submit.FormatStep(r.Step), r.Outcome.Message))
		}
	}

	if result.Stopped {
		ui.Errorf("stopped after a fatal error: %d succeeded, %d soft-failed, %d unattempted",
			succeeded, softFailed, len(result.Unattempted))
		return fmt.Errorf("submit stopped early")
	}

	ui.Successf("%d succeeded, %d soft-failed", succeeded, softFailed)
	return nil
}
