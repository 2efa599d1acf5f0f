package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/workflow"
)

var pushOpts workflow.PushOptions

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Push code to existing repository",
	Long: `Push the local tree to an existing repository owned by the authenticated
user. The directory is initialized as a git repository if needed, pending
changes are committed as "Initial commit" and origin is replaced. Running
push again on an unchanged tree is harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, workflow.ActionPush, func(ctx context.Context, r *workflow.Runner) *workflow.Result {
			return r.Push(ctx, pushOpts)
		})
	},
}

func init() {
	pushCmd.Flags().StringVarP(&pushOpts.Name, "name", "n", "", "Repository name")
	pushCmd.Flags().StringVar(&pushOpts.Path, "path", "", "Local code path (default: current dir)")
	pushCmd.Flags().StringVarP(&pushOpts.Branch, "branch", "b", "", "Branch name (default: main)")
	rootCmd.AddCommand(pushCmd)
}
