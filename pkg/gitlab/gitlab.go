// Package gitlab implements the forge.Forge backend for GitLab projects and
// merge requests.
package gitlab

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	gl "gitlab.com/gitlab-org/api/client-go"

	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

const (
	// Name is the registry name of this forge.
	Name = "gitlab"

	// DefaultHost is the GitLab instance used when none is configured.
	DefaultHost = "https://gitlab.com"

	// tokenUser is the username GitLab accepts for token-authenticated HTTPS.
	tokenUser = "oauth2"

	unknownError = "Unknown error"
)

// Config holds the settings needed to create a GitLab forge.
type Config struct {
	// Host is the base URL of the GitLab instance
	// (e.g. "https://gitlab.com").
	Host string

	// WebHost overrides the host used for web and clone URLs.
	WebHost string

	// AccessToken is a personal or project access token.
	AccessToken string

	// HTTPClient overrides the HTTP client.
	HTTPClient *http.Client
}

// Provider is the GitLab forge.
type Provider struct {
	client  *gl.Client
	webHost string
	token   string
}

var _ forge.Forge = (*Provider)(nil)

// NewProvider validates cfg and returns a ready Provider.
func NewProvider(cfg Config) (*Provider, error) {
	const errCtx = "creating gitlab provider"

	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("%s: access token must be set", errCtx)
	}

	host := cfg.Host
	if host == "" {
		host = DefaultHost
	}

	webHost := cfg.WebHost
	if webHost == "" {
		u, err := url.Parse(host)
		if err != nil || u.Host == "" {
			return nil, fmt.Errorf("%s: invalid host %q", errCtx, host)
		}
		webHost = u.Host
	}

	opts := []gl.ClientOptionFunc{
		gl.WithBaseURL(host),
		gl.WithCustomRetryMax(0),
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, gl.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := gl.NewClient(cfg.AccessToken, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: new client: %w", errCtx, err)
	}

	return &Provider{client: client, webHost: webHost, token: cfg.AccessToken}, nil
}

// New builds a GitLab forge from registry settings.
func New(settings forge.Settings) (forge.Forge, error) {
	return NewProvider(Config{
		Host:        settings.APIURL,
		WebHost:     settings.WebHost,
		AccessToken: settings.Token,
		HTTPClient:  settings.HTTPClient,
	})
}

// Name returns the registry name.
func (p *Provider) Name() string {
	return Name
}

// CreateRepository creates a project in the authenticated user's namespace.
// 400, 409 and 422 responses mean the name is taken or invalid.
func (p *Provider) CreateRepository(ctx context.Context, opts forge.CreateRepositoryOptions) (*forge.Repository, error) {
	visibility := gl.PublicVisibility
	if opts.Private {
		visibility = gl.PrivateVisibility
	}

	holonlog.Debug("creating GitLab project", "name", opts.Name, "visibility", visibility, "auto_init", opts.AutoInit)

	project, resp, err := p.client.Projects.CreateProject(&gl.CreateProjectOptions{
		Name:                 gl.Ptr(opts.Name),
		Description:          gl.Ptr(opts.Description),
		Visibility:           gl.Ptr(visibility),
		InitializeWithReadme: gl.Ptr(opts.AutoInit),
	}, gl.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create project: %w", toAPIError(resp, err, createProjectKind))
	}

	owner := ""
	if project.Namespace != nil {
		owner = project.Namespace.FullPath
	}

	return &forge.Repository{
		Owner:    owner,
		Name:     project.Path,
		HTMLURL:  project.WebURL,
		CloneURL: project.HTTPURLToRepo,
		Private:  project.Visibility == gl.PrivateVisibility,
	}, nil
}

// AuthenticatedUser returns the username of the token owner.
func (p *Provider) AuthenticatedUser(ctx context.Context) (string, error) {
	user, resp, err := p.client.Users.CurrentUser(gl.WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get user info: %w", toAPIError(resp, err, userKind))
	}
	if resp.StatusCode != http.StatusOK || user.Username == "" {
		return "", fmt.Errorf("failed to get user info: %w", &forge.APIError{StatusCode: resp.StatusCode, Kind: forge.ErrUnexpectedStatus})
	}
	return user.Username, nil
}

// CreatePullRequest opens a merge request from Head into Base.
func (p *Provider) CreatePullRequest(ctx context.Context, opts forge.PullRequestOptions) (*forge.PullRequest, error) {
	pid := opts.Owner + "/" + opts.Repo

	mr, resp, err := p.client.MergeRequests.CreateMergeRequest(pid, &gl.CreateMergeRequestOptions{
		Title:        gl.Ptr(opts.Title),
		Description:  gl.Ptr(opts.Body),
		SourceBranch: gl.Ptr(opts.Head),
		TargetBranch: gl.Ptr(opts.Base),
	}, gl.WithContext(ctx))
	if err != nil {
		apiErr := toAPIError(resp, err, requestKind)
		if apiErr.Message == "" {
			apiErr.Message = unknownError
		}
		return nil, fmt.Errorf("failed to create merge request: %w", apiErr)
	}
	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to create merge request: %w", &forge.APIError{
			StatusCode: resp.StatusCode,
			Message:    unknownError,
			Kind:       forge.ErrRequestFailed,
		})
	}

	holonlog.Info("created merge request", "url", mr.WebURL)
	return &forge.PullRequest{Number: int(mr.IID), HTMLURL: mr.WebURL}, nil
}

// RepositoryURL returns the web URL of owner/name.
func (p *Provider) RepositoryURL(owner, name string) string {
	return fmt.Sprintf("https://%s/%s/%s", p.webHost, owner, name)
}

// BranchURL returns the web URL of a branch.
func (p *Provider) BranchURL(owner, name, branch string) string {
	return fmt.Sprintf("%s/-/tree/%s", p.RepositoryURL(owner, name), branch)
}

// PushURL returns the HTTPS clone URL with an embedded token.
func (p *Provider) PushURL(owner, name string) string {
	u := &url.URL{
		Scheme: "https",
		User:   url.UserPassword(tokenUser, p.token),
		Host:   p.webHost,
		Path:   fmt.Sprintf("/%s/%s.git", owner, name),
	}
	return u.String()
}

// AuthenticatedURL embeds the token into an HTTPS clone URL.
func (p *Provider) AuthenticatedURL(cloneURL string) (string, error) {
	return forge.EmbedCredentials(cloneURL, tokenUser, p.token)
}

// toAPIError converts a client-go error into a *forge.APIError.
func toAPIError(resp *gl.Response, err error, kind func(int) error) *forge.APIError {
	status := 0
	if resp != nil && resp.Response != nil {
		status = resp.StatusCode
	}

	msg := ""
	var errResp *gl.ErrorResponse
	if errors.As(err, &errResp) {
		msg = strings.TrimSpace(errResp.Message)
		if errResp.Response != nil {
			status = errResp.Response.StatusCode
		}
	} else if err != nil {
		msg = err.Error()
	}

	return &forge.APIError{
		StatusCode:  status,
		Message:     msg,
		Kind:        kind(status),
		RateLimited: status == http.StatusTooManyRequests,
	}
}

func createProjectKind(status int) error {
	switch status {
	case http.StatusBadRequest, http.StatusConflict, http.StatusUnprocessableEntity:
		return forge.ErrRepositoryExists
	case http.StatusUnauthorized:
		return forge.ErrAuthentication
	default:
		return forge.ErrRequestFailed
	}
}

func userKind(status int) error {
	if status == http.StatusUnauthorized {
		return forge.ErrAuthentication
	}
	return forge.ErrUnexpectedStatus
}

func requestKind(status int) error {
	if status == http.StatusUnauthorized {
		return forge.ErrAuthentication
	}
	return forge.ErrRequestFailed
}
