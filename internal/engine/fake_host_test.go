package engine

import (
	"context"
	"fmt"
	"time"
)

// fakeHost is an in-memory Host for engine tests. Call counters record which
// remote operations each scenario actually exercised.
type fakeHost struct {
	defaultBranch string
	branches      []Branch
	commitDates   map[string]time.Time
	openPRs       map[string][]PullRequest
	allPRs        map[string][]PullRequest
	aheadBy       map[string]int

	rate     RateLimitStatus
	rateErr  error
	rateFunc func(call int) (RateLimitStatus, error)

	listErr    error
	commitErrs map[string]error
	compareErr error
	deleteErrs map[string]error

	deleted     []string
	rateCalls   int
	commitCalls map[string]int
	listPRCalls int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		defaultBranch: "main",
		commitDates:   make(map[string]time.Time),
		openPRs:       make(map[string][]PullRequest),
		allPRs:        make(map[string][]PullRequest),
		aheadBy:       make(map[string]int),
		rate:          RateLimitStatus{Remaining: 5000, Limit: 5000},
		commitErrs:    make(map[string]error),
		deleteErrs:    make(map[string]error),
		commitCalls:   make(map[string]int),
	}
}

func (f *fakeHost) DefaultBranch(ctx context.Context) (string, error) {
	return f.defaultBranch, nil
}

func (f *fakeHost) ListBranches(ctx context.Context) ([]Branch, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.branches, nil
}

func (f *fakeHost) GetCommitDate(ctx context.Context, sha string) (time.Time, error) {
	f.commitCalls[sha]++
	if err := f.commitErrs[sha]; err != nil {
		return time.Time{}, err
	}
	t, ok := f.commitDates[sha]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown sha %s", sha)
	}
	return t, nil
}

func (f *fakeHost) ListPullRequests(ctx context.Context, head, state string) ([]PullRequest, error) {
	f.listPRCalls++
	if state == "open" {
		return f.openPRs[head], nil
	}
	return f.allPRs[head], nil
}

func (f *fakeHost) CompareCommits(ctx context.Context, base, head string) (Comparison, error) {
	if f.compareErr != nil {
		return Comparison{}, f.compareErr
	}
	return Comparison{AheadBy: f.aheadBy[head]}, nil
}

func (f *fakeHost) RateLimitStatus(ctx context.Context) (RateLimitStatus, error) {
	f.rateCalls++
	if f.rateFunc != nil {
		return f.rateFunc(f.rateCalls)
	}
	if f.rateErr != nil {
		return RateLimitStatus{}, f.rateErr
	}
	return f.rate, nil
}

func (f *fakeHost) DeleteBranchRef(ctx context.Context, name string) error {
	if err := f.deleteErrs[name]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, name)
	// Deleted branches vanish from subsequent listings. Copy rather than
	// filter in place: the pipeline may still be iterating a prior listing.
	kept := make([]Branch, 0, len(f.branches))
	for _, b := range f.branches {
		if b.Name != name {
			kept = append(kept, b)
		}
	}
	f.branches = kept
	return nil
}
