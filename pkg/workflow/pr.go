package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/holon-run/gitflow/pkg/config"
	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

const unknownError = "Unknown error"

// PullRequestOptions are the inputs of PullRequest.
type PullRequestOptions struct {
	// Title defaults to the humanized head branch name.
	Title string
	Body  string

	// Base defaults to main.
	Base string
	Path string
}

// PullRequest opens a pull request from the checked-out branch into base.
func (r *Runner) PullRequest(ctx context.Context, opts PullRequestOptions) *Result {
	res := &Result{Action: ActionPR}

	base := opts.Base
	if base == "" {
		base = config.DefaultBranch
	}

	path := r.localPath(opts.Path)
	if err := r.requireManaged(path); err != nil {
		res.markFailed(err)
		return res
	}

	vcs := r.vcs(path)
	ref := r.remoteRef(ctx, vcs)
	if ref == nil {
		r.say.Error("Could not determine repository info from git remote")
		res.markFailed(fail(CodeNoRemoteInfo, errors.New("origin is missing or not a hosted repository")))
		return res
	}

	head := vcs.CurrentBranch(ctx)
	if head == "" || head == base {
		r.say.Error("Cannot create PR from %s branch. Switch to a feature branch first.", base)
		res.markFailed(fail(CodeInvalidBranch, fmt.Errorf("head branch %q equals base %q", head, base)))
		return res
	}

	title := opts.Title
	if title == "" {
		title = Humanize(head)
	}

	r.say.Info("Creating pull request: %s", title)
	r.say.Info("From: %s → To: %s", head, base)

	pr, err := r.forge.CreatePullRequest(ctx, forge.PullRequestOptions{
		Owner: ref.Owner,
		Repo:  ref.Name,
		Title: title,
		Body:  opts.Body,
		Head:  head,
		Base:  base,
	})
	if err != nil {
		message := forge.RemoteMessage(err)
		if message == "" {
			message = unknownError
		}
		r.say.Error("Failed to create PR - %s", message)
		res.Status = StatusFailed
		res.Error = message
		res.HTTPStatus = forge.StatusCode(err)
		return res
	}
	holonlog.Info("created pull request", "repository", ref.FullName(), "number", pr.Number, "head", head, "base", base)

	res.Status = StatusSuccess
	res.Title = title
	res.Head = head
	res.Base = base
	res.PRNumber = pr.Number
	res.PRURL = pr.HTMLURL
	res.Repository = ref.Name
	r.say.Success("Pull request created: #%d", pr.Number)
	r.say.Success("View at: %s", pr.HTMLURL)
	return res
}
