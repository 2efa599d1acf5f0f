package workflow

import (
	"context"
	"errors"

	"github.com/holon-run/gitflow/pkg/git"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

// BranchOptions are the inputs of Branch.
type BranchOptions struct {
	Name string
	Path string
}

// Branch creates (or switches to) a branch and pushes it with upstream
// tracking.
func (r *Runner) Branch(ctx context.Context, opts BranchOptions) *Result {
	res := &Result{Action: ActionBranch}

	if opts.Name == "" {
		r.say.Error("Branch name required (use --name or -n)")
		res.markFailed(fail(CodeBranchNameRequired, errors.New("branch name is required")))
		return res
	}
	res.Branch = opts.Name

	path := r.localPath(opts.Path)
	if err := r.requireManaged(path); err != nil {
		res.markFailed(err)
		return res
	}

	vcs := r.vcs(path)
	ref := r.remoteRef(ctx, vcs)
	previous := vcs.CurrentBranch(ctx)

	r.say.Info("Creating branch: %s", opts.Name)
	r.say.Info("From: %s", previous)

	created, err := vcs.CreateOrSwitchBranch(ctx, opts.Name)
	if err != nil {
		res.markFailed(fail(CodeGitCheckoutFailed, err))
		return res
	}
	if created {
		r.say.Success("Branch created: %s", opts.Name)
	} else {
		r.say.Success("Switched to existing branch: %s", opts.Name)
	}
	holonlog.Info("checked out branch", "path", path, "branch", opts.Name, "created", created, "previous", previous)

	r.say.Info("Pushing branch to %s...", r.platform())
	if err := vcs.Push(ctx, git.PushOptions{Branch: opts.Name, SetUpstream: true}); err != nil {
		res.markFailed(fail(CodeGitPushFailed, err))
		return res
	}

	res.Status = StatusSuccess
	res.PreviousBranch = previous
	res.LocalPath = path
	r.say.Success("Branch pushed to %s!", r.platform())
	if ref != nil {
		res.Repository = ref.Name
		res.URL = r.forge.BranchURL(ref.Owner, ref.Name, opts.Name)
		r.say.Success("View at: %s", res.URL)
	}
	return res
}
