package vcs

import (
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// GitStore reads a colocated jj workspace's underlying git object store
// directly, bypassing the jj CLI for the queries that are cheaper answered
// from git's own ref database: what a local or remote-tracking branch
// currently points to. jj colocated workspaces keep a real .git directory alongside
// the jj-native store, so this is a plain go-git Open.
type GitStore struct {
	repo *git.Repository
}

// OpenGitStore opens the colocated .git directory under root.
func OpenGitStore(root string) (*GitStore, error) {
	repo, err := git.PlainOpen(root)
	if err != nil {
		return nil, fmt.Errorf("failed to open colocated git store at %s: %w", root, err)
	}
	return &GitStore{repo: repo}, nil
}

// RemoteTip returns the commit hash a remote-tracking ref (e.g.
// refs/remotes/origin/my-branch) points to, or "" if the ref does not exist —
// the branch has never been pushed, or the workspace hasn't fetched it yet.
func (s *GitStore) RemoteTip(remote, bookmark string) (string, error) {
	refName := plumbing.NewRemoteReferenceName(remote, bookmark)
	ref, err := s.repo.Reference(refName, true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve remote ref %s: %w", refName, err)
	}
	return ref.Hash().String(), nil
}

// LocalBranchTip returns the commit hash a local git branch ref points to,
// which jj keeps in sync with the bookmark of the same name in a colocated
// workspace. Used as a fast path that avoids spawning jj for a tip that the
// git side already tracks identically.
func (s *GitStore) LocalBranchTip(bookmark string) (string, error) {
	refName := plumbing.NewBranchReferenceName(bookmark)
	ref, err := s.repo.Reference(refName, true)
	if err != nil {
		if err == plumbing.ErrReferenceNotFound {
			return "", nil
		}
		return "", fmt.Errorf("failed to resolve local ref %s: %w", refName, err)
	}
	return ref.Hash().String(), nil
}
