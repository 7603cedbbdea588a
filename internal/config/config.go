package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields that affect sweep
	// behavior, keep the CLI flags in internal/cli/sweep.go in sync.
	Target  Target
	Sweep   Sweep
	Output  Output
	Runtime Runtime
}

type Target struct {
	// Repo is the repository to sweep as OWNER/REPO (name or URL; see --repo).
	Repo string

	// Owner and Name are derived from Repo by Validate.
	Owner string
	Name  string
}

type Sweep struct {
	// StaleDays is the staleness threshold in days (see --stale-days).
	// A branch is stale when its head commit is older than now minus this
	// many days. 0 means any commit strictly older than now is stale.
	StaleDays int

	// ExcludedBranches is a comma-separated list of branch names and
	// '*'-wildcard patterns that are never deleted (see --exclude).
	ExcludedBranches string

	// SkipUnmerged skips stale branches that have commits not present on the
	// default branch (see --skip-unmerged).
	SkipUnmerged bool

	// SkipOpenPRs skips stale branches that have an open pull request
	// (see --skip-open-prs).
	SkipOpenPRs bool

	// IncludeClosedUnmergedPRs deletes unmerged stale branches whose only PR
	// record was closed without merging (see --include-closed-unmerged-prs).
	IncludeClosedUnmergedPRs bool

	// MaxDeletions caps deletion candidates per run; dry-run decisions count
	// toward it (see --max-deletions). Must be > 0.
	MaxDeletions int

	// Delay is the pause inserted after every processed branch (see --delay).
	Delay time.Duration

	// RateLimitThreshold aborts the run when remaining API quota drops below
	// it (see --rate-limit-threshold).
	RateLimitThreshold int

	// ContinueOnError keeps the run going when a single branch fails
	// (see --continue-on-error).
	ContinueOnError bool

	// DryRun computes and reports decisions without deleting anything
	// (see --dry-run).
	DryRun bool
}

type Output struct {
	// ConsoleFormat controls the console sink format (see --console-format).
	// Allowed values: text, json, ndjson.
	ConsoleFormat string

	// Out writes structured output to this path (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// Allowed values: json, ndjson. If empty, it is inferred from the --out
	// file extension.
	OutFormat string

	// NoConsole suppresses the console sink (see --no-console).
	NoConsole bool
}

type Runtime struct {
	// Timeout is the global timeout for the run (see --timeout).
	// Must be > 0.
	Timeout time.Duration

	// Verbose enables per-request API diagnostics.
	Verbose bool
}

func New() *Config {
	return &Config{
		Sweep: Sweep{
			StaleDays:          90,
			SkipUnmerged:       true,
			SkipOpenPRs:        true,
			MaxDeletions:       20,
			RateLimitThreshold: 100,
		},
		Output: Output{
			ConsoleFormat: "text",
		},
		Runtime: Runtime{
			Timeout: 30 * time.Minute,
		},
	}
}

func (c *Config) Validate() error {
	owner, name, err := parseRepo(c.Target.Repo)
	if err != nil {
		return err
	}
	c.Target.Owner = owner
	c.Target.Name = name

	if c.Sweep.StaleDays < 0 {
		return errors.New("--stale-days must be >= 0")
	}
	if c.Sweep.MaxDeletions <= 0 {
		return errors.New("--max-deletions must be > 0")
	}
	if c.Sweep.Delay < 0 {
		return errors.New("--delay must be >= 0")
	}
	if c.Sweep.RateLimitThreshold < 0 {
		return errors.New("--rate-limit-threshold must be >= 0")
	}

	c.Output.ConsoleFormat = normalizeEnumValue(c.Output.ConsoleFormat)
	if c.Output.ConsoleFormat == "" {
		c.Output.ConsoleFormat = "text"
	}
	if c.Output.ConsoleFormat != "text" && c.Output.ConsoleFormat != "json" && c.Output.ConsoleFormat != "ndjson" {
		return fmt.Errorf("unsupported --console-format: %s (must be one of: text, json, ndjson)", c.Output.ConsoleFormat)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			ext := strings.ToLower(filepath.Ext(c.Output.Out))
			switch ext {
			case ".json":
				c.Output.OutFormat = "json"
			case ".ndjson", ".jsonl":
				c.Output.OutFormat = "ndjson"
			default:
				if ext == "" {
					return errors.New("cannot infer output format from file extension (missing extension); use --out-format")
				}
				return fmt.Errorf("cannot infer output format from file extension %q; use --out-format", ext)
			}
		} else {
			if c.Output.OutFormat != "json" && c.Output.OutFormat != "ndjson" {
				return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
			}
		}
	}

	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	return nil
}

func parseRepo(raw string) (owner, name string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", errors.New("--repo is required (OWNER/REPO)")
	}

	// Accept a plain OWNER/REPO, or a GitHub URL like:
	//   https://github.com/OWNER/REPO
	//   github.com/OWNER/REPO
	raw = strings.TrimPrefix(raw, "https://")
	raw = strings.TrimPrefix(raw, "http://")
	raw = strings.TrimPrefix(raw, "www.")
	raw = strings.TrimPrefix(raw, "github.com/")
	raw = strings.TrimSuffix(raw, ".git")
	raw = strings.Trim(raw, "/")

	owner, name, ok := strings.Cut(raw, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return "", "", fmt.Errorf("invalid --repo value %q: expected OWNER/REPO", raw)
	}
	return owner, name, nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
