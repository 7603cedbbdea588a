package engine

import (
	"context"
	"fmt"
	"time"

	"branchreaper/internal/config"
	"branchreaper/internal/exclusion"
	"branchreaper/internal/output"
)

// Pipeline drives one sequential pass over all branches of a repository and
// deletes the stale ones. Branches are processed strictly in listing order,
// never in parallel: the run needs a single, globally-ordered view of the
// remaining API quota, one deletion counter, and deterministic output
// ordering. The RunResult is the only mutable state and has exactly one
// writer.
type Pipeline struct {
	host     Host
	cfg      *config.Config
	out      *output.Manager
	excluded *exclusion.RuleSet
	guard    *RateLimitGuard
	resolver *MergeStatusResolver

	// Seams for tests.
	now   func() time.Time
	sleep func(context.Context, time.Duration)
}

func NewPipeline(host Host, cfg *config.Config, out *output.Manager) *Pipeline {
	return &Pipeline{
		host:     host,
		cfg:      cfg,
		out:      out,
		excluded: exclusion.Compile(cfg.Sweep.ExcludedBranches),
		guard:    NewRateLimitGuard(host, cfg.Sweep.RateLimitThreshold),
		resolver: &MergeStatusResolver{
			Host:                     host,
			SkipOpenPRs:              cfg.Sweep.SkipOpenPRs,
			SkipUnmerged:             cfg.Sweep.SkipUnmerged,
			IncludeClosedUnmergedPRs: cfg.Sweep.IncludeClosedUnmergedPRs,
		},
		now:   time.Now,
		sleep: sleepContext,
	}
}

// Run performs one sweep. It always returns a RunResult, even when the run
// aborts partway: whatever was deleted before the abort is reported, never
// discarded.
func (p *Pipeline) Run(ctx context.Context) *RunResult {
	res := &RunResult{Status: RunCompleted}

	defaultBranch, err := p.host.DefaultBranch(ctx)
	if err != nil {
		p.abort(res, fmt.Errorf("resolve default branch: %w", err))
		return res
	}
	branches, err := p.host.ListBranches(ctx)
	if err != nil {
		p.abort(res, fmt.Errorf("list branches: %w", err))
		return res
	}

	p.emit(output.Event{
		Type:     "run.started",
		Repo:     p.cfg.Target.Repo,
		Branches: len(branches),
	})

	// candidates counts deletions and dry-run deletions alike: the cap
	// limits candidates processed, not only destructive calls.
	candidates := 0

	for _, branch := range branches {
		ok, probeErr := p.guard.Check(ctx)
		if probeErr != nil {
			p.emit(output.Event{
				Type:  "warning",
				Error: fmt.Sprintf("rate limit probe failed, proceeding: %v", probeErr),
			})
		}
		if !ok {
			res.Status = RunAbortedByRateLimit
			break
		}
		if candidates >= p.cfg.Sweep.MaxDeletions {
			break
		}

		res.Scanned++
		d := p.evaluate(ctx, branch, defaultBranch)

		switch d.Kind {
		case DecisionDelete:
			res.Deleted = append(res.Deleted, branch.Name)
			candidates++
		case DecisionDryRunDelete:
			candidates++
		case DecisionSkip:
			res.Skipped++
		case DecisionError:
			res.Failed++
			p.emit(output.Event{
				Type:   "branch.error",
				Branch: branch.Name,
				Error:  d.Err.Error(),
			})
			if !p.cfg.Sweep.ContinueOnError {
				res.Status = RunAbortedByError
				return res
			}
		}

		if d.Kind != DecisionError {
			p.emit(output.Event{
				Type:      "branch.decision",
				Branch:    branch.Name,
				Decision:  string(d.Kind),
				Reason:    d.Reason,
				DaysStale: d.DaysStale,
			})
		}

		if delay := p.cfg.Sweep.Delay; delay > 0 {
			p.sleep(ctx, delay)
		}
	}

	return res
}

// evaluate runs the per-branch decision sequence. Every step can terminate
// early with a Skip; external-call failures surface as DecisionError and are
// handled by the caller's error-continuation policy.
func (p *Pipeline) evaluate(ctx context.Context, branch Branch, defaultBranch string) Decision {
	if branch.Name == defaultBranch {
		return skipDecision("default branch")
	}
	if branch.Protected {
		return skipDecision("protected")
	}
	if p.excluded.Matches(branch.Name) {
		return skipDecision("excluded")
	}

	lastCommit, err := p.host.GetCommitDate(ctx, branch.SHA)
	if err != nil {
		return errorDecision(fmt.Errorf("fetch commit %s: %w", branch.SHA, err))
	}
	now := p.now()
	if !IsStale(lastCommit, now, p.cfg.Sweep.StaleDays) {
		return skipDecision("active")
	}
	daysStale := DaysSince(lastCommit, now)

	status, err := p.resolver.Resolve(ctx, branch, defaultBranch)
	if err != nil {
		return errorDecision(err)
	}
	if !status.Deletable {
		return Decision{Kind: DecisionSkip, Reason: status.Reason, DaysStale: daysStale}
	}

	if p.cfg.Sweep.DryRun {
		return Decision{Kind: DecisionDryRunDelete, Reason: status.Reason, DaysStale: daysStale}
	}
	if err := p.host.DeleteBranchRef(ctx, branch.Name); err != nil {
		return errorDecision(fmt.Errorf("delete branch %s: %w", branch.Name, err))
	}
	return Decision{Kind: DecisionDelete, Reason: status.Reason, DaysStale: daysStale}
}

func (p *Pipeline) abort(res *RunResult, err error) {
	res.Status = RunAbortedByError
	p.emit(output.Event{Type: "run.error", Error: err.Error()})
}

func (p *Pipeline) emit(e output.Event) {
	if p.out == nil {
		return
	}
	_ = p.out.Write(e)
}

func sleepContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
