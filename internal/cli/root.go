package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "branchreaper",
	Short: "Delete stale branches from a GitHub repository",
	Long: `BranchReaper finds and deletes stale branches in a GitHub repository via API.

A branch is a deletion candidate when its head commit is older than the
staleness threshold and, by default, it carries no unmerged commits and no
open pull request. The default branch, protected branches, and excluded
branches are never deleted.

Examples:
	# Show available commands and global flags
	branchreaper --help

	# Preview what would be deleted
	branchreaper sweep --repo acme/widgets --dry-run

	# Delete stale branches older than 60 days
	branchreaper sweep --repo acme/widgets --stale-days 60

	# Print build info
	branchreaper version

Output:
	By default, sweep writes human-readable output to stdout. Structured
	output is available via --console-format and --out (see sweep --help).`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, "verbose", false, "Enable verbose logging (prints every GitHub API call and full error details)")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
