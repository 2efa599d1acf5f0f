package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/workflow"
)

var commitOpts workflow.CommitOptions

var commitCmd = &cobra.Command{
	Use:   "commit",
	Short: "Commit and push changes",
	Long: `Stage every change, commit it and push the branch to origin. A clean
tree is reported as no_changes and nothing is pushed.

The message may use the placeholders {branch}, {repository} and {date}:
  gitflow commit -m "wip on {branch} ({date})"`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, workflow.ActionCommit, func(ctx context.Context, r *workflow.Runner) *workflow.Result {
			return r.Commit(ctx, commitOpts)
		})
	},
}

func init() {
	commitCmd.Flags().StringVarP(&commitOpts.Message, "message", "m", "", "Commit message")
	commitCmd.Flags().StringVar(&commitOpts.Path, "path", "", "Local code path (default: current dir)")
	commitCmd.Flags().StringVarP(&commitOpts.Branch, "branch", "b", "", "Branch to push to (default: current branch)")
	_ = commitCmd.MarkFlagRequired("message")
	rootCmd.AddCommand(commitCmd)
}
