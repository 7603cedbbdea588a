package engine

import (
	"context"
	"fmt"
)

// MergeStatus is the resolver's verdict for one stale branch.
type MergeStatus struct {
	Deletable bool
	Reason    string
}

// MergeStatusResolver decides whether a stale branch with possibly unmerged
// history may still be deleted, based on pull-request state. It is consulted
// only for branches already judged stale.
type MergeStatusResolver struct {
	Host                     Host
	SkipOpenPRs              bool
	SkipUnmerged             bool
	IncludeClosedUnmergedPRs bool
}

func (r *MergeStatusResolver) Resolve(ctx context.Context, branch Branch, defaultBranch string) (MergeStatus, error) {
	// An open PR blocks deletion unconditionally, independent of merge state.
	if r.SkipOpenPRs {
		open, err := r.Host.ListPullRequests(ctx, branch.Name, "open")
		if err != nil {
			return MergeStatus{}, fmt.Errorf("list open pull requests for %s: %w", branch.Name, err)
		}
		if len(open) > 0 {
			return MergeStatus{Reason: "open PR present"}, nil
		}
	}

	if !r.SkipUnmerged {
		// Merge state is not evaluated at all.
		return MergeStatus{Deletable: true, Reason: "stale"}, nil
	}

	cmp, err := r.Host.CompareCommits(ctx, defaultBranch, branch.Name)
	if err != nil {
		return MergeStatus{}, fmt.Errorf("compare %s...%s: %w", defaultBranch, branch.Name, err)
	}
	if cmp.AheadBy == 0 {
		return MergeStatus{Deletable: true, Reason: "no unmerged commits"}, nil
	}

	if !r.IncludeClosedUnmergedPRs {
		return MergeStatus{Reason: "unmerged commits"}, nil
	}

	prs, err := r.Host.ListPullRequests(ctx, branch.Name, "all")
	if err != nil {
		return MergeStatus{}, fmt.Errorf("list pull requests for %s: %w", branch.Name, err)
	}
	closedUnmerged := false
	for _, pr := range prs {
		if pr.IsOpen() {
			// Not redundant with the gate above: that gate can be disabled
			// by configuration, this one cannot.
			return MergeStatus{Reason: "unmerged commits and open PR"}, nil
		}
		if pr.ClosedUnmerged() {
			closedUnmerged = true
		}
	}
	if closedUnmerged {
		// A PR closed without merging marks the branch as abandoned even
		// though its commits never landed.
		return MergeStatus{Deletable: true, Reason: "closed unmerged PR"}, nil
	}
	return MergeStatus{Reason: "unmerged commits, no qualifying PR"}, nil
}
