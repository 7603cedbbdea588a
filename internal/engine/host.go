package engine

import (
	"context"
	"time"
)

// Branch is one remote branch as reported by the host listing. The head
// commit timestamp is not part of the listing; the pipeline fetches it
// lazily, and only for branches that survive the cheap checks.
type Branch struct {
	Name      string
	SHA       string
	Protected bool
}

// PullRequest carries the pull-request fields the merge-status resolver
// needs: whether it is open, and whether it was ever merged.
type PullRequest struct {
	State    string // "open" or "closed"
	MergedAt *time.Time
}

func (p PullRequest) IsOpen() bool { return p.State == "open" }

// ClosedUnmerged reports whether the PR was closed without a merge.
func (p PullRequest) ClosedUnmerged() bool { return p.State == "closed" && p.MergedAt == nil }

// Comparison is the result of comparing a branch head against the default
// branch. AheadBy counts commits on the branch that are absent from the
// default branch.
type Comparison struct {
	AheadBy int
}

// RateLimitStatus reports remaining core API quota.
type RateLimitStatus struct {
	Remaining int
	Limit     int
}

// Host is the set of remote capabilities the pipeline consumes. The GitHub
// implementation lives in internal/github; tests substitute in-memory fakes.
type Host interface {
	// DefaultBranch returns the repository's default branch name.
	DefaultBranch(ctx context.Context) (string, error)

	// ListBranches returns every branch, preserving the host's listing order.
	ListBranches(ctx context.Context) ([]Branch, error)

	// GetCommitDate returns the committer timestamp of the given commit.
	GetCommitDate(ctx context.Context, sha string) (time.Time, error)

	// ListPullRequests returns pull requests whose head is the given branch.
	// state is "open" or "all".
	ListPullRequests(ctx context.Context, head, state string) ([]PullRequest, error)

	// CompareCommits compares head against base.
	CompareCommits(ctx context.Context, base, head string) (Comparison, error)

	// RateLimitStatus reports remaining quota. The probe itself must not
	// consume the budget it measures.
	RateLimitStatus(ctx context.Context) (RateLimitStatus, error)

	// DeleteBranchRef deletes refs/heads/<name>.
	DeleteBranchRef(ctx context.Context, name string) error
}
