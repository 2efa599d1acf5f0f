package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/workflow"
)

var branchOpts workflow.BranchOptions

var branchCmd = &cobra.Command{
	Use:   "branch",
	Short: "Create and push a new branch",
	Long: `Create a branch from the current one, or switch to it when it already
exists, then push it to origin with upstream tracking.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, workflow.ActionBranch, func(ctx context.Context, r *workflow.Runner) *workflow.Result {
			return r.Branch(ctx, branchOpts)
		})
	},
}

func init() {
	branchCmd.Flags().StringVarP(&branchOpts.Name, "name", "n", "", "Branch name")
	branchCmd.Flags().StringVar(&branchOpts.Path, "path", "", "Local code path (default: current dir)")
	_ = branchCmd.MarkFlagRequired("name")
	rootCmd.AddCommand(branchCmd)
}
