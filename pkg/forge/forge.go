// Package forge defines the hosting platform abstraction used by gitflow:
// repository creation, identity lookup and pull request creation, plus the
// URL conventions of each platform.
package forge

import "context"

//go:generate mockgen -source=forge.go -destination=mocks/forge.gen.go -package=mocks

// Forge is implemented by each hosting platform backend.
type Forge interface {
	// Name returns the registry name of the forge (e.g. "github").
	Name() string

	// CreateRepository creates a repository owned by the authenticated user.
	CreateRepository(ctx context.Context, opts CreateRepositoryOptions) (*Repository, error)

	// AuthenticatedUser returns the login of the token owner.
	AuthenticatedUser(ctx context.Context) (string, error)

	// CreatePullRequest opens a pull (or merge) request.
	CreatePullRequest(ctx context.Context, opts PullRequestOptions) (*PullRequest, error)

	// RepositoryURL returns the web URL of owner/name.
	RepositoryURL(owner, name string) string

	// BranchURL returns the web URL of a branch of owner/name.
	BranchURL(owner, name, branch string) string

	// PushURL returns an HTTPS clone URL of owner/name with the token embedded.
	PushURL(owner, name string) string

	// AuthenticatedURL embeds the token into an HTTPS clone URL.
	AuthenticatedURL(cloneURL string) (string, error)
}

// CreateRepositoryOptions describes a repository to create.
type CreateRepositoryOptions struct {
	Name        string
	Description string
	Private     bool

	// AutoInit asks the platform to create an initial commit.
	AutoInit bool
}

// Repository is the metadata returned after creating a repository.
type Repository struct {
	Owner    string
	Name     string
	HTMLURL  string
	CloneURL string
	Private  bool
}

// PullRequestOptions describes a pull request to open.
type PullRequestOptions struct {
	Owner string
	Repo  string
	Title string
	Body  string
	Head  string
	Base  string
}

// PullRequest is a created pull request.
type PullRequest struct {
	Number  int
	HTMLURL string
}
