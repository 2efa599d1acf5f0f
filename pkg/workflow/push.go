package workflow

import (
	"context"
	"errors"
)

// PushOptions are the inputs of Push.
type PushOptions struct {
	Name   string
	Path   string
	Branch string
}

// Push sync-pushes the local tree to an existing repository owned by the
// authenticated user.
func (r *Runner) Push(ctx context.Context, opts PushOptions) *Result {
	res := &Result{Action: ActionPush}

	name, _ := r.cfg.ResolveRepoName(opts.Name)
	if name == "" {
		r.say.Error("Repository name required (use --name or set in config)")
		res.markFailed(fail(CodeNameRequired, errors.New("repository name is required")))
		return res
	}
	res.Repository = name

	owner, err := r.forge.AuthenticatedUser(ctx)
	if err != nil {
		r.say.Error("Failed to get user info")
		res.markFailed(fail(CodeUserLookupFailed, err))
		return res
	}

	res.LocalPath = r.localPath(opts.Path)
	res.Branch, _ = r.cfg.ResolveBranch(opts.Branch)
	res.URL = r.forge.RepositoryURL(owner, name)

	if err := r.SyncPush(ctx, res.LocalPath, r.forge.PushURL(owner, name), res.Branch); err != nil {
		res.markFailed(err)
		return res
	}

	res.Status = StatusSuccess
	r.say.Info("")
	r.say.Success("View at: %s", res.URL)
	return res
}
