package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
)

var (
	jsonOutput   bool
	outputFormat string
	configPath   string
	logLevel     string
	runTimeout   time.Duration
	resultFile   string
)

// errFailed signals a command whose failure was already reported through
// its result record.
var errFailed = errors.New("command failed")

var rootCmd = &cobra.Command{
	Use:   "gitflow",
	Short: "gitflow automates everyday GitHub repository workflows.",
	Long: `gitflow automates everyday repository chores against GitHub (or GitLab):
creating a repository and pushing a local tree to it, committing and pushing
changes, creating branches and opening pull requests.

The credential is read from GITHUB_TOKEN (GITLAB_TOKEN for the gitlab
provider) or from github_config.json in the working directory.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output the result as JSON (shorthand for --output json)")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "output", "text", "Output format: text, json or yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to the config file (default: github_config.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error (default: warn)")
	rootCmd.PersistentFlags().DurationVar(&runTimeout, "timeout", 0, "Abort the command after this duration (0 disables)")
	rootCmd.PersistentFlags().StringVar(&resultFile, "result-file", "", "Also write the result record to this file (.json, .yaml or .yml)")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
