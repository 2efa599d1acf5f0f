package workflow

import (
	"context"
	"errors"

	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

// CreateOptions are the inputs of Create. Empty fields fall back to the
// configuration.
type CreateOptions struct {
	Name        string
	Description string
	Private     bool
	NoPush      bool
	Path        string
	Branch      string
}

// Create creates a repository on the forge and, unless pushing is disabled,
// sync-pushes the local tree to it.
func (r *Runner) Create(ctx context.Context, opts CreateOptions) *Result {
	res := &Result{Action: ActionCreate}

	name, _ := r.cfg.ResolveRepoName(opts.Name)
	if name == "" {
		r.say.Error("Repository name required (use --name or set in config)")
		res.markFailed(fail(CodeNameRequired, errors.New("repository name is required")))
		return res
	}
	private := r.cfg.ResolvePrivate(opts.Private)
	push := r.cfg.ShouldPush(opts.NoPush)

	r.say.Info("Creating repository: %s", name)
	repo, err := r.forge.CreateRepository(ctx, forge.CreateRepositoryOptions{
		Name:        name,
		Description: r.cfg.ResolveDescription(opts.Description),
		Private:     private,
		AutoInit:    !push,
	})
	if err != nil {
		res.Repository = name
		res.markFailed(r.createFailure(err))
		return res
	}

	holonlog.Info("created repository", "repository", repo.Owner+"/"+repo.Name, "private", repo.Private)
	r.say.Success("Repository created: %s", repo.HTMLURL)

	res.Status = StatusCreated
	res.Repository = name
	res.URL = repo.HTMLURL
	res.Private = boolPtr(private)
	if !push {
		return res
	}

	res.Push = boolPtr(true)
	res.LocalPath = r.localPath(opts.Path)
	res.Branch, _ = r.cfg.ResolveBranch(opts.Branch)

	err = r.pushCreated(ctx, repo, res.LocalPath, res.Branch)
	if err != nil {
		res.PushStatus = StatusFailed
		var f *Failure
		if errors.As(err, &f) {
			res.Error = f.Code
			res.Detail = detailOf(f.Err)
		}
		r.say.Info("")
		r.say.Warn("Repository created but push failed")
		return res
	}

	res.PushStatus = StatusSuccess
	return res
}

func (r *Runner) pushCreated(ctx context.Context, repo *forge.Repository, path, branch string) error {
	remote, err := r.forge.AuthenticatedURL(repo.CloneURL)
	if err != nil {
		return fail(CodeGitRemoteFailed, err)
	}
	return r.SyncPush(ctx, path, remote, branch)
}

// createFailure narrates and classifies a repository creation error.
func (r *Runner) createFailure(err error) error {
	switch {
	case forge.IsRepositoryExistsError(err):
		r.say.Error("Repository already exists or name is invalid")
		return fail(CodeRepositoryExists, err)
	case forge.IsAuthenticationError(err):
		r.say.Error("Authentication failed. Check your token.")
		return fail(CodeAuthenticationFailed, err)
	default:
		if status := forge.StatusCode(err); status != 0 {
			r.say.Error("Failed to create repository (HTTP %d)", status)
		} else {
			r.say.Error("Failed to create repository: %v", err)
		}
		return fail(CodeRequestFailed, err)
	}
}
