package cli

import (
	"fmt"
	"testing"

	"branchreaper/internal/config"
	"branchreaper/internal/flags"
)

// The sweep flags declare their defaults from config.New() so the config
// package stays the single source of truth. This pins the wiring.
func TestSweepFlagDefaultsMatchConfig(t *testing.T) {
	defaults := config.New()

	cases := []struct {
		flag string
		want string
	}{
		{flags.FlagRepo, ""},
		{flags.FlagStaleDays, fmt.Sprintf("%d", defaults.Sweep.StaleDays)},
		{flags.FlagExclude, ""},
		{flags.FlagSkipUnmerged, fmt.Sprintf("%t", defaults.Sweep.SkipUnmerged)},
		{flags.FlagSkipOpenPRs, fmt.Sprintf("%t", defaults.Sweep.SkipOpenPRs)},
		{flags.FlagIncludeClosedUnmergedPRs, fmt.Sprintf("%t", defaults.Sweep.IncludeClosedUnmergedPRs)},
		{flags.FlagMaxDeletions, fmt.Sprintf("%d", defaults.Sweep.MaxDeletions)},
		{flags.FlagDelay, defaults.Sweep.Delay.String()},
		{flags.FlagRateLimitThreshold, fmt.Sprintf("%d", defaults.Sweep.RateLimitThreshold)},
		{flags.FlagContinueOnError, "false"},
		{flags.FlagDryRun, "false"},
		{flags.FlagConsoleFormat, defaults.Output.ConsoleFormat},
		{flags.FlagOut, ""},
		{flags.FlagOutFormat, ""},
		{flags.FlagNoConsole, "false"},
		{flags.FlagTimeout, defaults.Runtime.Timeout.String()},
	}

	for _, tc := range cases {
		t.Run(tc.flag, func(t *testing.T) {
			f := sweepCmd.Flags().Lookup(tc.flag)
			if f == nil {
				t.Fatalf("flag --%s is not registered on sweep", tc.flag)
			}
			if f.DefValue != tc.want {
				t.Fatalf("flag --%s default = %q, want %q", tc.flag, f.DefValue, tc.want)
			}
		})
	}
}

func TestVersionCommandRegistered(t *testing.T) {
	for _, c := range rootCmd.Commands() {
		if c.Name() == "version" {
			return
		}
	}
	t.Fatalf("version command not registered on root")
}
