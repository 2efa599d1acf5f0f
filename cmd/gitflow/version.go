package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/github"
)

// These variables are set via ldflags during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildDate = "unknown"
)

var versionCheck bool
var versionQuiet bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `Display version information for the gitflow CLI.

This shows the version number, git commit SHA, and build date.
The version is set at build time via git tags.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "gitflow version %s\n", Version)
		if Commit != "" && Commit != "unknown" {
			fmt.Fprintf(out, "commit: %s\n", Commit)
		}
		if BuildDate != "" && BuildDate != "unknown" {
			fmt.Fprintf(out, "built at: %s\n", BuildDate)
		}

		if versionCheck {
			return checkForUpdates(cmd.Context(), out, cmd.ErrOrStderr())
		}
		return nil
	},
}

// checkForUpdates checks for newer gitflow releases and displays the result
func checkForUpdates(ctx context.Context, out, errOut io.Writer) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	checker := &github.UpdateChecker{}
	release, upToDate, err := checker.Check(ctx, Version)
	if err != nil {
		if errors.Is(err, github.ErrVersionCheckDisabled) {
			return nil
		}
		// Not fatal: the version itself was printed.
		fmt.Fprintf(errOut, "Warning: failed to check for updates: %v\n", err)
		return nil
	}

	if upToDate {
		if !versionQuiet {
			fmt.Fprintf(out, "✓ You're running the latest version (%s)\n", release.TagName)
		}
		return nil
	}

	fmt.Fprintf(out, "\n⚠ A newer version is available!\n")
	fmt.Fprintf(out, "   Current: %s\n", Version)
	fmt.Fprintf(out, "   Latest:  %s\n", release.TagName)
	fmt.Fprintf(out, "   Download: %s\n", release.HTMLURL)
	return nil
}

func init() {
	versionCmd.Flags().BoolVar(&versionCheck, "check", false, "Check for newer gitflow releases")
	versionCmd.Flags().BoolVar(&versionQuiet, "quiet", false, "Quiet mode: suppress success message when up to date")
	rootCmd.AddCommand(versionCmd)
}
