package engine

// DecisionKind is the terminal classification for one branch.
type DecisionKind string

const (
	DecisionSkip         DecisionKind = "skip"
	DecisionDelete       DecisionKind = "delete"
	DecisionDryRunDelete DecisionKind = "dry-run-delete"
	DecisionError        DecisionKind = "error"
)

// Decision is the outcome of evaluating a single branch.
type Decision struct {
	Kind   DecisionKind
	Reason string

	// DaysStale is the whole days since the head commit, for diagnostics.
	// Only set once the commit timestamp has been fetched.
	DaysStale int

	// Err is set only for DecisionError.
	Err error
}

func skipDecision(reason string) Decision {
	return Decision{Kind: DecisionSkip, Reason: reason}
}

func errorDecision(err error) Decision {
	return Decision{Kind: DecisionError, Err: err}
}
