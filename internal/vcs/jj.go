// Package vcs adapts a colocated Jujutsu workspace to the narrow query
// surface the submission planner needs: bookmark tips, change ids, and the
// parent chain that the narrowing pass walks to build a stack.
package vcs

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Workspace wraps the jj CLI for a single colocated workspace, one
// exec.Command per operation.
type Workspace struct {
	root string
	// git is the colocated .git object store, opened once at construction
	// time. It's nil when the workspace isn't git-colocated (a plain native
	// jj repo); every git-backed method falls back to shelling out to jj
	// when it's nil or comes up empty.
	git *GitStore
}

// NewWorkspace locates the jj workspace root starting from the current
// directory.
func NewWorkspace() (*Workspace, error) {
	root, err := workspaceRoot()
	if err != nil {
		return nil, err
	}
	ws := &Workspace{root: root}
	if store, err := OpenGitStore(root); err == nil {
		ws.git = store
	}
	return ws, nil
}

func workspaceRoot() (string, error) {
	cmd := exec.Command("jj", "root")
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to locate jj workspace root: %w", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string {
	return w.root
}

// LocalTip implements the workspace query interface from §6: the commit id
// the named bookmark currently points to in the local workspace. Tries the
// colocated git branch ref first, since jj keeps it in lockstep with the
// bookmark and reading it is a plain ref lookup instead of a jj subprocess.
func (w *Workspace) LocalTip(bookmark string) (string, error) {
	if w.git != nil {
		if tip, err := w.git.LocalBranchTip(bookmark); err == nil && tip != "" {
			return tip, nil
		}
	}

	cmd := exec.Command("jj", "log", "-r", bookmark, "--no-graph", "-T", "commit_id")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve local tip of %s: %w", bookmark, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// RemoteTip implements the workspace query interface from §6: the commit id
// the named bookmark points to on remote, or "" if it has never been pushed.
// Tries the colocated git store's remote-tracking ref first; falls back to
// shelling out to jj when the workspace isn't colocated or the ref lookup
// comes up empty (e.g. the remote-tracking ref hasn't been fetched yet but
// jj's own view of the remote is still current).
func (w *Workspace) RemoteTip(remote, bookmark string) (string, error) {
	if w.git != nil {
		if tip, err := w.git.RemoteTip(remote, bookmark); err == nil && tip != "" {
			return tip, nil
		}
	}

	ref := fmt.Sprintf("%s@%s", bookmark, remote)
	cmd := exec.Command("jj", "log", "-r", ref, "--no-graph", "-T", "commit_id")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		// A remote-absent bookmark is not an error: jj reports no such
		// revision, which means the branch has never been pushed.
		return "", nil
	}
	return strings.TrimSpace(string(output)), nil
}

// ChangeID implements the workspace query interface from §6: the jj change
// id backing the named bookmark.
func (w *Workspace) ChangeID(bookmark string) (string, error) {
	cmd := exec.Command("jj", "log", "-r", bookmark, "--no-graph", "-T", "change_id")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve change id of %s: %w", bookmark, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// CurrentBookmark returns the bookmark name tracking the working-copy
// change, or "" if the working copy sits on no bookmark.
func (w *Workspace) CurrentBookmark() (string, error) {
	cmd := exec.Command("jj", "log", "-r", "@", "--no-graph", "-T", "local_bookmarks")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve current bookmark: %w", err)
	}
	names := strings.Fields(strings.TrimSpace(string(output)))
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}

// ParentBookmark returns the nearest ancestor bookmark of name, or trunk if
// none exists before it (or the jj query fails). Used by the narrowing pass to build parent
// links for NarrowedBookmarkSegment.
func (w *Workspace) ParentBookmark(name, trunk string) (string, error) {
	revset := fmt.Sprintf("heads(::%s- & bookmarks() & ~%s)", name, name)
	cmd := exec.Command("jj", "log", "-r", revset, "--no-graph", "-T", "local_bookmarks ++ \"\\n\"")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return trunk, nil
	}
	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	for _, line := range lines {
		names := strings.Fields(line)
		if len(names) > 0 {
			return names[0], nil
		}
	}
	return trunk, nil
}

// DefaultBranch returns the trunk bookmark name, per jj's builtin `trunk()`
// revset alias.
func (w *Workspace) DefaultBranch() (string, error) {
	cmd := exec.Command("jj", "log", "-r", "trunk()", "--no-graph", "-T", "local_bookmarks")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("failed to resolve default branch: %w", err)
	}
	names := strings.Fields(strings.TrimSpace(string(output)))
	if len(names) == 0 {
		return "", fmt.Errorf("trunk() resolved to no bookmark")
	}
	return names[0], nil
}

// Push pushes a single bookmark to remote via `jj git push`.
func (w *Workspace) Push(ctx context.Context, remote, bookmark string) error {
	cmd := exec.CommandContext(ctx, "jj", "git", "push", "--remote", remote, "--bookmark", bookmark)
	cmd.Dir = w.root
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("failed to push bookmark %s: %w: %s", bookmark, err, strings.TrimSpace(string(output)))
	}
	return nil
}

// AllBookmarks lists every local bookmark name in the workspace.
func (w *Workspace) AllBookmarks() ([]string, error) {
	cmd := exec.Command("jj", "bookmark", "list", "--template", "name ++ \"\\n\"")
	cmd.Dir = w.root
	output, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	var names []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			names = append(names, line)
		}
	}
	return names, nil
}
