package output

// Event is a structured record of sweep lifecycle and per-branch decisions.
//
// Event types:
//   - run.started       (repo, branches)
//   - branch.decision   (branch, decision, reason, days_stale)
//   - branch.error      (branch, error)
//   - run.error         (error)
//   - warning           (error)
//   - run.finished      (status, deleted, deleted_branches, scanned, skipped,
//     failed, exit_code)
//
// Presentation is left to the sinks; the engine only emits Events.
type Event struct {
	Type string `json:"type"`

	Repo     string `json:"repo,omitempty"`
	Branches int    `json:"branches,omitempty"`

	Branch    string `json:"branch,omitempty"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	DaysStale int    `json:"days_stale,omitempty"`
	Error     string `json:"error,omitempty"`

	Status          string   `json:"status,omitempty"`
	Deleted         int      `json:"deleted,omitempty"`
	DeletedBranches []string `json:"deleted_branches,omitempty"`
	Scanned         int      `json:"scanned,omitempty"`
	Skipped         int      `json:"skipped,omitempty"`
	Failed          int      `json:"failed,omitempty"`
	ExitCode        int      `json:"exit_code,omitempty"`
}
