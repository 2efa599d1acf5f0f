package github

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v68/github"

	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

// CreateRepository creates a repository for the authenticated user.
// Any 2xx is success; 422 maps to forge.ErrRepositoryExists and 401 to
// forge.ErrAuthentication.
func (c *Client) CreateRepository(ctx context.Context, opts forge.CreateRepositoryOptions) (*forge.Repository, error) {
	holonlog.Debug("creating GitHub repository", "name", opts.Name, "private", opts.Private, "auto_init", opts.AutoInit)

	repo, resp, err := c.GitHubClient().Repositories.Create(ctx, "", &github.Repository{
		Name:        github.Ptr(opts.Name),
		Description: github.Ptr(opts.Description),
		Private:     github.Ptr(opts.Private),
		AutoInit:    github.Ptr(opts.AutoInit),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create repository: %w", toAPIError(resp, err, createRepoKind))
	}

	return &forge.Repository{
		Owner:    repo.GetOwner().GetLogin(),
		Name:     repo.GetName(),
		HTMLURL:  repo.GetHTMLURL(),
		CloneURL: repo.GetCloneURL(),
		Private:  repo.GetPrivate(),
	}, nil
}

// AuthenticatedUser returns the login of the token owner. Any status other
// than 200 is a failure.
func (c *Client) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := c.GitHubClient().Users.Get(ctx, "")
	if err != nil {
		return "", fmt.Errorf("failed to get user info: %w", toAPIError(resp, err, userKind))
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to get user info: %w", &forge.APIError{StatusCode: resp.StatusCode, Kind: forge.ErrUnexpectedStatus})
	}
	if user.GetLogin() == "" {
		return "", fmt.Errorf("failed to get user info: %w", &forge.APIError{StatusCode: resp.StatusCode, Message: "empty login", Kind: forge.ErrUnexpectedStatus})
	}
	return user.GetLogin(), nil
}

// CreatePullRequest opens a pull request. Only 201 is success; failures
// carry GitHub's message, or "Unknown error" when it sent none.
func (c *Client) CreatePullRequest(ctx context.Context, opts forge.PullRequestOptions) (*forge.PullRequest, error) {
	holonlog.Debug("creating GitHub pull request", "repo", opts.Owner+"/"+opts.Repo, "head", opts.Head, "base", opts.Base)

	pr, resp, err := c.GitHubClient().PullRequests.Create(ctx, opts.Owner, opts.Repo, &github.NewPullRequest{
		Title: github.Ptr(opts.Title),
		Head:  github.Ptr(opts.Head),
		Base:  github.Ptr(opts.Base),
		Body:  github.Ptr(opts.Body),
	})
	if err != nil {
		apiErr := toAPIError(resp, err, pullRequestKind)
		if apiErr.Message == "" {
			apiErr.Message = unknownError
		}
		return nil, fmt.Errorf("failed to create pull request: %w", apiErr)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create pull request: %w", &forge.APIError{
			StatusCode: resp.StatusCode,
			Message:    unknownError,
			Kind:       forge.ErrRequestFailed,
		})
	}

	return &forge.PullRequest{
		Number:  pr.GetNumber(),
		HTMLURL: pr.GetHTMLURL(),
	}, nil
}
