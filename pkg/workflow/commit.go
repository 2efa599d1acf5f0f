package workflow

import (
	"context"

	"github.com/holon-run/gitflow/pkg/config"
	"github.com/holon-run/gitflow/pkg/git"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

// CommitOptions are the inputs of Commit.
type CommitOptions struct {
	Message string
	Path    string

	// Branch defaults to the checked-out branch.
	Branch string
}

// Commit stages everything, commits if anything changed and pushes the
// branch to origin.
func (r *Runner) Commit(ctx context.Context, opts CommitOptions) *Result {
	res := &Result{Action: ActionCommit}

	path := r.localPath(opts.Path)
	if err := r.requireManaged(path); err != nil {
		res.markFailed(err)
		return res
	}

	vcs := r.vcs(path)
	branch := opts.Branch
	if branch == "" {
		branch = vcs.CurrentBranch(ctx)
	}
	if branch == "" {
		branch = config.DefaultBranch
	}
	res.Branch = branch

	ref := r.remoteRef(ctx, vcs)
	message, _ := r.cfg.ResolveCommitMessage(opts.Message)
	message = r.stamp(message, branch, ref)

	r.say.Info("Committing changes in: %s", path)
	r.say.Info("Branch: %s", branch)

	if err := vcs.AddAll(ctx); err != nil {
		res.markFailed(fail(CodeGitAddFailed, err))
		return res
	}
	dirty, err := vcs.HasChanges(ctx)
	if err != nil {
		res.markFailed(fail(CodeGitStatusFailed, err))
		return res
	}
	if !dirty {
		r.say.Success("No changes to commit")
		res.Status = StatusNoChanges
		return res
	}

	r.say.Info("Committing with message: '%s'", message)
	sha, err := vcs.Commit(ctx, message)
	if err != nil {
		res.markFailed(fail(CodeGitCommitFailed, err))
		return res
	}
	holonlog.Info("created commit", "path", path, "branch", branch, "sha", sha)

	r.say.Info("Pushing to %s...", r.platform())
	if err := vcs.Push(ctx, git.PushOptions{Branch: branch}); err != nil {
		res.markFailed(fail(CodeGitPushFailed, err))
		return res
	}

	res.Status = StatusSuccess
	res.Message = message
	res.LocalPath = path
	r.say.Success("Changes committed and pushed!")
	if ref != nil {
		res.Repository = ref.Name
		res.URL = r.forge.RepositoryURL(ref.Owner, ref.Name)
		r.say.Success("View at: %s", res.URL)
	}
	return res
}
