package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"branchreaper/internal/config"
	"branchreaper/internal/engine"
	"branchreaper/internal/flags"
	gh "branchreaper/internal/github"
	"branchreaper/internal/output"

	"github.com/spf13/cobra"
)

var cfg = config.New()

const sweepHelpTemplate = `{{with (or .Long .Short)}}{{. | trimTrailingWhitespaces}}

{{end}}Usage:
  {{.UseLine}}

{{if .HasAvailableLocalFlags}}Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}{{if .HasAvailableInheritedFlags}}Global Flags:
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}

{{end}}Environment:
	BranchReaper authenticates to GitHub using an access token.

	Sources (in order):
	1) --token flag
	2) GITHUB_TOKEN environment variable
	3) GitHub CLI (gh) authentication via gh auth token (if gh is installed and logged in)

  Token guidance (brief):
  - PAT (classic): needs repo scope (branch deletion writes to the repository).
  - Fine-grained PAT: grant access to the target repository with
    Contents: Read and write, Metadata: Read, and Pull requests: Read.

  Examples:
    # macOS/Linux
    export GITHUB_TOKEN="<your_token>"
    branchreaper sweep --repo acme/widgets

		# GitHub CLI auth
		gh auth login
		branchreaper sweep --repo acme/widgets

    # Windows PowerShell
    $env:GITHUB_TOKEN = "<your_token>"
    branchreaper sweep --repo acme/widgets

{{if .HasAvailableSubCommands}}Available Commands:
{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasHelpSubCommands}}Additional help topics:
{{range .Commands}}{{if .IsAdditionalHelpTopicCommand}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}

{{end}}{{if .HasAvailableSubCommands}}Use "{{.CommandPath}} [command] --help" for more information about a command.
{{end}}`

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Delete stale branches from a repository",
	Long: `Sweep a GitHub repository and delete its stale branches.

A branch is deleted when its last commit is older than --stale-days and none
of the safety checks veto it. The default branch, protected branches, and
branches matched by --exclude are never deleted. By default, branches with
unmerged commits or an open pull request are skipped; see --skip-unmerged,
--skip-open-prs, and --include-closed-unmerged-prs to adjust.

Deletion via the API is recoverable for a while: GitHub keeps the branch's
ref history, so a deleted branch can be restored from its head SHA. Run with
--dry-run first to preview the outcome.

Authentication:
  BranchReaper uses a GitHub access token. It prefers --token, then
  GITHUB_TOKEN, then GitHub CLI authentication if the gh CLI is installed
  and logged in. Deleting branches requires write access to the repository.

Output:
	Console output is controlled by --console-format (default: text).
	Structured output can be written via:
	- --out / --out-format: write an aggregate JSON array or NDJSON stream to a file
	- --no-console: suppress the console sink (use with --out for machine output)

	NDJSON mode emits one JSON object per line. Objects are lifecycle Events with
	a "type" field (run.started, branch.decision, branch.error, warning,
	run.error, run.finished).

Exit codes:
	0 = sweep completed (including dry runs)
	1 = aborted: remaining API quota dropped below --rate-limit-threshold
	2 = aborted: a branch operation failed (without --continue-on-error)
	3 = fatal error (sweep did not run)

Examples:
  # Preview: what would a sweep delete?
  branchreaper sweep --repo acme/widgets --dry-run

  # Delete branches idle for 60+ days, keeping release branches
  branchreaper sweep --repo acme/widgets --stale-days 60 --exclude "main,release/*"

	# AI Agent: stream machine-readable events to stdout
	branchreaper sweep --repo acme/widgets --no-console --console-format ndjson
`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 0 && cmd.Flags().NFlag() == 0 {
			_ = cmd.Help()
			return
		}

		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		baseCtx := context.Background()
		token, _, err := gh.ResolveAuthToken(baseCtx, tokenFlag)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to resolve GitHub auth token: %v\n", err)
			os.Exit(3)
		}
		if strings.TrimSpace(token) == "" {
			fmt.Fprintln(os.Stderr, "Error: GitHub auth token is required (set GITHUB_TOKEN or run 'gh auth login')")
			os.Exit(3)
		}

		client, err := gh.NewClient(baseCtx, token, gh.WithVerbose(cfg.Runtime.Verbose, nil))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to create GitHub client: %v\n", err)
			os.Exit(3)
		}
		gateway, err := gh.NewGateway(client, cfg.Target.Owner, cfg.Target.Name)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		out, err := buildOutputManager(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(3)
		}

		ctx, cancel := context.WithTimeout(baseCtx, cfg.Runtime.Timeout)
		defer cancel()

		res := engine.NewPipeline(gateway, cfg, out).Run(ctx)

		_ = out.Write(output.Event{
			Type:            "run.finished",
			Repo:            cfg.Target.Repo,
			Status:          string(res.Status),
			Deleted:         res.DeletionCount(),
			DeletedBranches: res.Deleted,
			Scanned:         res.Scanned,
			Skipped:         res.Skipped,
			Failed:          res.Failed,
			ExitCode:        res.ExitCode(),
		})
		if err := out.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(res.ExitCode())
	},
}

// tokenFlag is kept out of Config: the token is a credential, not sweep
// behavior, and must never end up in structured output.
var tokenFlag string

func buildOutputManager(cfg *config.Config) (*output.Manager, error) {
	m := output.NewManager()
	if !cfg.Output.NoConsole {
		if err := m.AddSink(output.NewConsoleSink(os.Stdout, cfg.Output.ConsoleFormat)); err != nil {
			return nil, err
		}
	}
	if cfg.Output.Out != "" {
		sink, err := output.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			return nil, err
		}
		if err := m.AddSink(sink); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func init() {
	rootCmd.AddCommand(sweepCmd)
	sweepCmd.SetHelpTemplate(sweepHelpTemplate)

	// Targeting
	sweepCmd.Flags().StringVar(&cfg.Target.Repo, flags.FlagRepo, "", "Repository to sweep as OWNER/REPO (name or URL)")
	sweepCmd.Flags().StringVar(&tokenFlag, flags.FlagToken, "", "GitHub access token (default: GITHUB_TOKEN, then gh auth token)")

	// Sweep
	sweepCmd.Flags().IntVar(&cfg.Sweep.StaleDays, flags.FlagStaleDays, cfg.Sweep.StaleDays, "Staleness threshold in days; branches with no commit in this window are candidates (default: 90)")
	sweepCmd.Flags().StringVar(&cfg.Sweep.ExcludedBranches, flags.FlagExclude, "", "Branch names and '*'-wildcard patterns never deleted (comma-separated, e.g. \"main,release/*\")")
	sweepCmd.Flags().BoolVar(&cfg.Sweep.SkipUnmerged, flags.FlagSkipUnmerged, cfg.Sweep.SkipUnmerged, "Skip stale branches with commits not on the default branch (default: true)")
	sweepCmd.Flags().BoolVar(&cfg.Sweep.SkipOpenPRs, flags.FlagSkipOpenPRs, cfg.Sweep.SkipOpenPRs, "Skip stale branches that have an open pull request (default: true)")
	sweepCmd.Flags().BoolVar(&cfg.Sweep.IncludeClosedUnmergedPRs, flags.FlagIncludeClosedUnmergedPRs, cfg.Sweep.IncludeClosedUnmergedPRs, "Delete unmerged stale branches whose only PR was closed without merging (default: false)")
	sweepCmd.Flags().IntVar(&cfg.Sweep.MaxDeletions, flags.FlagMaxDeletions, cfg.Sweep.MaxDeletions, "Maximum deletion candidates per run; dry-run decisions count toward it (default: 20)")
	sweepCmd.Flags().DurationVar(&cfg.Sweep.Delay, flags.FlagDelay, cfg.Sweep.Delay, "Pause after each processed branch, e.g. 500ms (default: 0)")
	sweepCmd.Flags().IntVar(&cfg.Sweep.RateLimitThreshold, flags.FlagRateLimitThreshold, cfg.Sweep.RateLimitThreshold, "Abort when remaining API quota drops below this (default: 100)")
	sweepCmd.Flags().BoolVar(&cfg.Sweep.ContinueOnError, flags.FlagContinueOnError, false, "Keep sweeping when a single branch fails (default: false)")
	sweepCmd.Flags().BoolVar(&cfg.Sweep.DryRun, flags.FlagDryRun, false, "Report decisions without deleting anything (default: false)")

	// Output
	sweepCmd.Flags().StringVar(&cfg.Output.ConsoleFormat, flags.FlagConsoleFormat, cfg.Output.ConsoleFormat, "Console output format: text|json|ndjson (default: text)")
	sweepCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Write structured output to this path")
	sweepCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Structured output format for --out: json|ndjson (default: inferred from file extension)")
	sweepCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out)")

	// Runtime
	sweepCmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Global timeout (default: 30m)")
}
