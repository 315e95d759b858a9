package forge

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// GitHub implements Service by shelling out to the gh CLI, the same
// exec.Command idiom the rest of the project's CLI-wrapping adapters use —
// no REST/GraphQL SDK is pulled in.
type GitHub struct{}

// NewGitHub returns a GitHub forge adapter. gh must be authenticated in the
// caller's environment; this adapter never manages credentials itself.
func NewGitHub() *GitHub {
	return &GitHub{}
}

type prJSON struct {
	Number  int    `json:"number"`
	State   string `json:"state"`
	IsDraft bool   `json:"isDraft"`
	HeadRef string `json:"headRefName"`
	BaseRef string `json:"baseRefName"`
}

func (p prJSON) toModel() *model.PullRequest {
	return &model.PullRequest{
		Number:       p.Number,
		HeadBookmark: p.HeadRef,
		BaseBookmark: p.BaseRef,
		IsDraft:      p.IsDraft,
		State:        normalizeState(p.State),
	}
}

func normalizeState(state string) string {
	return strings.ToLower(state)
}

func (g *GitHub) FindExistingPR(ctx context.Context, headBookmark string) (*model.PullRequest, error) {
	output, err := g.execGH(ctx, "pr", "list",
		"--head", headBookmark,
		"--json", "number,state,isDraft,headRefName,baseRefName",
		"--limit", "1")
	if err != nil {
		return nil, err
	}

	var prs []prJSON
	if err := json.Unmarshal(output, &prs); err != nil {
		return nil, fmt.Errorf("failed to parse PR list: %w", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return prs[0].toModel(), nil
}

func (g *GitHub) CreatePR(ctx context.Context, spec PRSpec) (*model.PullRequest, error) {
	args := []string{
		"pr", "create",
		"--title", spec.Title,
		"--body", spec.Body,
		"--base", spec.Base,
		"--head", spec.Head,
	}
	if spec.Draft {
		args = append(args, "--draft")
	}

	if _, err := g.execGH(ctx, args...); err != nil {
		if isPRAlreadyExistsError(err) {
			existing, findErr := g.FindExistingPR(ctx, spec.Head)
			if findErr == nil && existing != nil {
				return existing, nil
			}
		}
		return nil, fmt.Errorf("failed to create PR: %w", err)
	}

	pr, err := g.FindExistingPR(ctx, spec.Head)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created PR details: %w", err)
	}
	if pr == nil {
		return nil, fmt.Errorf("PR was created but not found for head %s", spec.Head)
	}
	return pr, nil
}

func (g *GitHub) UpdatePRBase(ctx context.Context, number int, newBase string) error {
	_, err := g.execGH(ctx, "pr", "edit", strconv.Itoa(number), "--base", newBase)
	if err != nil {
		return fmt.Errorf("failed to update base of PR #%d: %w", number, err)
	}
	return nil
}

func (g *GitHub) PublishPR(ctx context.Context, number int) error {
	_, err := g.execGH(ctx, "pr", "ready", strconv.Itoa(number))
	if err != nil {
		return fmt.Errorf("failed to publish PR #%d: %w", number, err)
	}
	return nil
}

// OpenPR opens a pull request in the browser using the gh CLI.
func (g *GitHub) OpenPR(ctx context.Context, number int) error {
	_, err := g.execGH(ctx, "pr", "view", strconv.Itoa(number), "--web")
	if err != nil {
		return fmt.Errorf("failed to open PR #%d: %w", number, err)
	}
	return nil
}

// MarkDraft converts an open PR back into a draft.
func (g *GitHub) MarkDraft(ctx context.Context, number int) error {
	_, err := g.execGH(ctx, "pr", "ready", strconv.Itoa(number), "--undo")
	if err != nil {
		return fmt.Errorf("failed to mark PR #%d as draft: %w", number, err)
	}
	return nil
}

func (g *GitHub) ListPRComments(ctx context.Context, number int) ([]Comment, error) {
	output, err := g.execGH(ctx, "pr", "view", strconv.Itoa(number), "--json", "comments")
	if err != nil {
		return nil, err
	}

	var payload struct {
		Comments []struct {
			ID   string `json:"id"`
			Body string `json:"body"`
		} `json:"comments"`
	}
	if err := json.Unmarshal(output, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse PR comments: %w", err)
	}

	out := make([]Comment, len(payload.Comments))
	for i, c := range payload.Comments {
		out[i] = Comment{ID: c.ID, Body: c.Body}
	}
	return out, nil
}

func (g *GitHub) CreatePRComment(ctx context.Context, number int, body string) (Comment, error) {
	output, err := g.execGH(ctx, "pr", "comment", strconv.Itoa(number), "--body", body)
	if err != nil {
		return Comment{}, fmt.Errorf("failed to create PR comment: %w", err)
	}
	return Comment{ID: strings.TrimSpace(string(output)), Body: body}, nil
}

func (g *GitHub) UpdatePRComment(ctx context.Context, commentID string, body string) error {
	_, err := g.execGH(ctx, "api", fmt.Sprintf("repos/{owner}/{repo}/issues/comments/%s", commentID),
		"-X", "PATCH", "-f", "body="+body)
	if err != nil {
		return fmt.Errorf("failed to update PR comment %s: %w", commentID, err)
	}
	return nil
}

// TestAuth verifies gh is authenticated and returns the logged-in username.
func (g *GitHub) TestAuth(ctx context.Context) (string, error) {
	output, err := g.execGH(ctx, "api", "user", "--jq", ".login")
	if err != nil {
		return "", fmt.Errorf("not authenticated with GitHub: %w", err)
	}
	username := strings.TrimSpace(string(output))
	if username == "" {
		return "", fmt.Errorf("not authenticated with GitHub: gh returned no username")
	}
	return username, nil
}

func (g *GitHub) execGH(ctx context.Context, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "gh", args...)
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("gh CLI error: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("failed to execute gh: %w", err)
	}
	return output, nil
}

func isPRAlreadyExistsError(err error) bool {
	return strings.Contains(err.Error(), "already exists")
}
