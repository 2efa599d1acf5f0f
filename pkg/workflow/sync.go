package workflow

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/holon-run/gitflow/pkg/git"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

// initialCommitMessage is used when sync-push finds uncommitted work.
const initialCommitMessage = "Initial commit"

// SyncPush makes path a git working tree whose origin is remoteURL and
// pushes branch to it with upstream tracking. It is safe to repeat: an
// existing repository is reused, a clean tree produces no commit and origin
// is replaced rather than duplicated.
func (r *Runner) SyncPush(ctx context.Context, path, remoteURL, branch string) error {
	if ok, err := afero.DirExists(r.fs, path); err != nil || !ok {
		r.say.Error("Path '%s' does not exist", path)
		return fail(CodePathNotFound, fmt.Errorf("path %s does not exist", path))
	}

	vcs := r.vcs(path)
	log := []any{"path", path, "branch", branch}

	r.say.Info("\nInitializing git in: %s", path)
	if !r.isManaged(path) {
		if err := vcs.Init(ctx); err != nil {
			return fail(CodeGitInitFailed, err)
		}
		holonlog.Info("initialized repository", log...)
		r.say.Success("Git initialized")
	}

	r.say.Info("Adding files...")
	if err := vcs.AddAll(ctx); err != nil {
		return fail(CodeGitAddFailed, err)
	}

	dirty, err := vcs.HasChanges(ctx)
	if err != nil {
		return fail(CodeGitStatusFailed, err)
	}
	if dirty {
		r.say.Info("Committing...")
		sha, err := vcs.Commit(ctx, initialCommitMessage)
		if err != nil {
			return fail(CodeGitCommitFailed, err)
		}
		holonlog.Info("created commit", append(log, "sha", sha)...)
	}

	// A fresh repository may be on a default branch other than the target.
	if current := vcs.CurrentBranch(ctx); current != "" && current != branch {
		if err := vcs.RenameBranch(ctx, branch); err != nil {
			holonlog.Warn("branch rename failed", append(log, "from", current, "error", git.Diagnostic(err))...)
		}
	}

	if err := vcs.RemoveRemote(ctx, git.DefaultRemote); err != nil {
		holonlog.Debug("no origin to remove", log...)
	}
	if err := vcs.AddRemote(ctx, git.DefaultRemote, remoteURL); err != nil {
		return fail(CodeGitRemoteFailed, err)
	}

	r.say.Info("Pushing to %s...", r.platform())
	if err := vcs.Push(ctx, git.PushOptions{Branch: branch, SetUpstream: true}); err != nil {
		return fail(CodeGitPushFailed, err)
	}
	holonlog.Info("pushed branch", append(log, "remote", holonlog.RedactURL(remoteURL))...)
	r.say.Success("Code pushed successfully!")
	return nil
}
