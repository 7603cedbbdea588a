package github

import (
	"context"
	"fmt"
	"sync"
	"time"

	"branchreaper/internal/engine"

	"github.com/google/go-github/v81/github"
	"golang.org/x/sync/singleflight"
)

const pageSize = 100

// Gateway implements engine.Host against the GitHub REST API for a single
// repository. Commit timestamps are cached per head SHA for the duration of
// the run (branches frequently share a head commit); nothing is persisted
// across runs.
type Gateway struct {
	client *Client
	owner  string
	repo   string

	group singleflight.Group

	mu          sync.Mutex
	commitDates map[string]time.Time
}

func NewGateway(client *Client, owner, repo string) (*Gateway, error) {
	if client == nil || client.Client == nil {
		return nil, fmt.Errorf("gateway: nil GitHub client (use NewClient)")
	}
	if owner == "" || repo == "" {
		return nil, fmt.Errorf("gateway: owner and repo are required")
	}
	return &Gateway{
		client:      client,
		owner:       owner,
		repo:        repo,
		commitDates: make(map[string]time.Time),
	}, nil
}

func (g *Gateway) DefaultBranch(ctx context.Context) (string, error) {
	r, _, err := g.client.Client.Repositories.Get(ctx, g.owner, g.repo)
	if err != nil {
		return "", fmt.Errorf("get repository %s/%s: %w", g.owner, g.repo, err)
	}
	return r.GetDefaultBranch(), nil
}

func (g *Gateway) ListBranches(ctx context.Context) ([]engine.Branch, error) {
	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	var out []engine.Branch
	for {
		page, resp, err := g.client.Client.Repositories.ListBranches(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list branches: %w", err)
		}
		for _, b := range page {
			out = append(out, engine.Branch{
				Name:      b.GetName(),
				SHA:       b.GetCommit().GetSHA(),
				Protected: b.GetProtected(),
			})
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (g *Gateway) GetCommitDate(ctx context.Context, sha string) (time.Time, error) {
	g.mu.Lock()
	if t, ok := g.commitDates[sha]; ok {
		g.mu.Unlock()
		return t, nil
	}
	g.mu.Unlock()

	v, err, _ := g.group.Do(sha, func() (any, error) {
		c, _, err := g.client.Client.Repositories.GetCommit(ctx, g.owner, g.repo, sha, nil)
		if err != nil {
			return nil, fmt.Errorf("get commit %s: %w", sha, err)
		}
		return c.GetCommit().GetCommitter().GetDate().Time, nil
	})
	if err != nil {
		return time.Time{}, err
	}
	t := v.(time.Time)

	g.mu.Lock()
	g.commitDates[sha] = t
	g.mu.Unlock()
	return t, nil
}

func (g *Gateway) ListPullRequests(ctx context.Context, head, state string) ([]engine.PullRequest, error) {
	opts := &github.PullRequestListOptions{
		State:       state,
		Head:        g.owner + ":" + head,
		ListOptions: github.ListOptions{PerPage: pageSize},
	}
	var out []engine.PullRequest
	for {
		page, resp, err := g.client.Client.PullRequests.List(ctx, g.owner, g.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list %s pull requests for %s: %w", state, head, err)
		}
		for _, pr := range page {
			p := engine.PullRequest{State: pr.GetState()}
			if pr.MergedAt != nil {
				t := pr.MergedAt.Time
				p.MergedAt = &t
			}
			out = append(out, p)
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}
	return out, nil
}

func (g *Gateway) CompareCommits(ctx context.Context, base, head string) (engine.Comparison, error) {
	cmp, _, err := g.client.Client.Repositories.CompareCommits(ctx, g.owner, g.repo, base, head, nil)
	if err != nil {
		return engine.Comparison{}, fmt.Errorf("compare %s...%s: %w", base, head, err)
	}
	return engine.Comparison{AheadBy: cmp.GetAheadBy()}, nil
}

func (g *Gateway) RateLimitStatus(ctx context.Context) (engine.RateLimitStatus, error) {
	limits, _, err := g.client.Client.RateLimit.Get(ctx)
	if err != nil {
		return engine.RateLimitStatus{}, fmt.Errorf("rate limit probe: %w", err)
	}
	core := limits.GetCore()
	return engine.RateLimitStatus{
		Remaining: core.Remaining,
		Limit:     core.Limit,
	}, nil
}

func (g *Gateway) DeleteBranchRef(ctx context.Context, name string) error {
	if _, err := g.client.Client.Git.DeleteRef(ctx, g.owner, g.repo, "heads/"+name); err != nil {
		return fmt.Errorf("delete ref heads/%s: %w", name, err)
	}
	return nil
}
