package engine

import "context"

// RateLimitGuard gates branch processing on remaining API quota.
type RateLimitGuard struct {
	host      Host
	threshold int
}

func NewRateLimitGuard(host Host, threshold int) *RateLimitGuard {
	return &RateLimitGuard{host: host, threshold: threshold}
}

// Check probes the remaining quota once, with no retries. It returns
// ok=false when the probe succeeded and the remaining quota is below the
// threshold; the caller must treat that as fatal for the run.
//
// When the probe itself fails, the guard fails open: ok=true together with
// the probe error. An unmeasurable quota should not by itself block a run
// from making progress, but the caller must surface the error as a warning.
func (g *RateLimitGuard) Check(ctx context.Context) (ok bool, probeErr error) {
	status, err := g.host.RateLimitStatus(ctx)
	if err != nil {
		return true, err
	}
	return status.Remaining >= g.threshold, nil
}
