// Package forge adapts external pull-request hosts (GitHub, GitLab, Azure
// DevOps) behind one narrow interface so the step driver never depends on a
// specific forge's client library.
package forge

import (
	"context"

	"github.com/bjulian5/jjsubmit/internal/model"
)

// PRSpec describes the desired state of a pull request, independent of
// which forge ultimately serves the request.
type PRSpec struct {
	Head  string
	Base  string
	Title string
	Body  string
	Draft bool
}

// Comment is a single PR conversation comment.
type Comment struct {
	ID   string
	Body string
}

// Service is the trait-like surface every forge adapter implements: find an
// existing PR, create one, retarget its base, publish it out of draft, and
// manage the stack-visualization comment. Only the github adapter is
// concretely implemented; gitlab/azure_devops are left as documented
// extension points (see DESIGN.md).
type Service interface {
	FindExistingPR(ctx context.Context, headBookmark string) (*model.PullRequest, error)
	CreatePR(ctx context.Context, spec PRSpec) (*model.PullRequest, error)
	UpdatePRBase(ctx context.Context, number int, newBase string) error
	PublishPR(ctx context.Context, number int) error
	MarkDraft(ctx context.Context, number int) error
	OpenPR(ctx context.Context, number int) error

	ListPRComments(ctx context.Context, number int) ([]Comment, error)
	CreatePRComment(ctx context.Context, number int, body string) (Comment, error)
	UpdatePRComment(ctx context.Context, commentID string, body string) error
}
