package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/workflow"
)

var prOpts workflow.PullRequestOptions

var prCmd = &cobra.Command{
	Use:   "pr",
	Short: "Create a pull request",
	Long: `Open a pull request from the checked-out branch into the base branch.
The repository is taken from the origin remote. Without --title the branch
name is turned into a title ("fix-login-bug" becomes "Fix Login Bug").`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, workflow.ActionPR, func(ctx context.Context, r *workflow.Runner) *workflow.Result {
			return r.PullRequest(ctx, prOpts)
		})
	},
}

func init() {
	prCmd.Flags().StringVarP(&prOpts.Title, "title", "t", "", "PR title (default: branch name)")
	prCmd.Flags().StringVarP(&prOpts.Body, "body", "b", "", "PR description/body")
	prCmd.Flags().StringVar(&prOpts.Base, "base", "", "Base branch (default: main)")
	prCmd.Flags().StringVar(&prOpts.Path, "path", "", "Local code path (default: current dir)")
	rootCmd.AddCommand(prCmd)
}
