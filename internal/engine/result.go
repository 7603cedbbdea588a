package engine

// RunStatus is the terminal state of one sweep.
type RunStatus string

const (
	RunCompleted          RunStatus = "completed"
	RunAbortedByRateLimit RunStatus = "aborted-by-rate-limit"
	RunAbortedByError     RunStatus = "aborted-by-error"
)

// RunResult accumulates the outcome of a sweep. It grows monotonically and
// is returned even when the run aborts partway, so partial progress is never
// lost.
type RunResult struct {
	// Deleted holds deleted branch names in processing order.
	Deleted []string

	Status RunStatus

	// Diagnostics for the run summary.
	Scanned int
	Skipped int
	Failed  int
}

// DeletionCount is the number of branches actually deleted. Dry-run
// decisions are not counted here.
func (r *RunResult) DeletionCount() int {
	return len(r.Deleted)
}

// ExitCode maps the terminal status to the process exit code contract:
// 0 = completed, 1 = aborted by rate limit, 2 = aborted by a branch error.
// (3 is reserved for fatal pre-run errors and set by the CLI.)
func (r *RunResult) ExitCode() int {
	switch r.Status {
	case RunAbortedByRateLimit:
		return 1
	case RunAbortedByError:
		return 2
	default:
		return 0
	}
}
