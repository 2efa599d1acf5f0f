package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/workflow"
)

var createOpts workflow.CreateOptions

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new repository",
	Long: `Create a repository owned by the authenticated user and push the local
tree to it.

The repository name, description and visibility fall back to repo_name,
description and private in the config file. With --no-push (or push_code
set to false) the repository is created with an initial README instead.

Examples:
  gitflow create --name demo
  gitflow create --name demo --private --no-push
  gitflow --json create --name demo --path ./src --branch trunk`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return execute(cmd, workflow.ActionCreate, func(ctx context.Context, r *workflow.Runner) *workflow.Result {
			return r.Create(ctx, createOpts)
		})
	},
}

func init() {
	createCmd.Flags().StringVarP(&createOpts.Name, "name", "n", "", "Repository name")
	createCmd.Flags().StringVarP(&createOpts.Description, "description", "d", "", "Repository description")
	createCmd.Flags().BoolVarP(&createOpts.Private, "private", "p", false, "Make private")
	createCmd.Flags().BoolVar(&createOpts.NoPush, "no-push", false, "Do not push code")
	createCmd.Flags().StringVar(&createOpts.Path, "path", "", "Local code path (default: current dir)")
	createCmd.Flags().StringVarP(&createOpts.Branch, "branch", "b", "", "Branch name (default: main)")
	rootCmd.AddCommand(createCmd)
}
