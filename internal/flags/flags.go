package flags

// Package flags defines canonical CLI flag names shared across the CLI.
// Keeping these as constants helps avoid drift between Cobra flag wiring and
// other code paths that reference flags.
// IMPORTANT: These are flag *names* without leading dashes.
const (
	// Targeting
	FlagRepo  = "repo"
	FlagToken = "token"

	// Sweep
	FlagStaleDays                = "stale-days"
	FlagExclude                  = "exclude"
	FlagSkipUnmerged             = "skip-unmerged"
	FlagSkipOpenPRs              = "skip-open-prs"
	FlagIncludeClosedUnmergedPRs = "include-closed-unmerged-prs"
	FlagMaxDeletions             = "max-deletions"
	FlagDelay                    = "delay"
	FlagRateLimitThreshold       = "rate-limit-threshold"
	FlagContinueOnError          = "continue-on-error"
	FlagDryRun                   = "dry-run"

	// Output
	FlagConsoleFormat = "console-format"
	FlagOut           = "out"
	FlagOutFormat     = "out-format"
	FlagNoConsole     = "no-console"

	// Runtime
	FlagTimeout = "timeout"
)
