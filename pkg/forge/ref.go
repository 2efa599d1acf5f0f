package forge

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/transport"
)

// RepoRef identifies a hosted repository.
//
// Supported remote URL formats:
//   - "https://host/owner/name(.git)"
//   - "[user@]host:owner/name(.git)" (scp-like SSH)
//   - "ssh://[user@]host[:port]/owner/name(.git)"
//
// Owner may contain slashes for nested namespaces (GitLab groups).
type RepoRef struct {
	Host  string
	Owner string
	Name  string
}

// ParseRemoteURL parses a git remote URL into a RepoRef.
func ParseRemoteURL(remote string) (*RepoRef, error) {
	remote = strings.TrimSpace(remote)
	if remote == "" {
		return nil, fmt.Errorf("%w: empty URL", ErrInvalidRemoteURL)
	}

	ep, err := transport.NewEndpoint(remote)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidRemoteURL, remote, err)
	}
	if ep.Host == "" || ep.Protocol == "file" {
		return nil, fmt.Errorf("%w: %s has no host", ErrInvalidRemoteURL, remote)
	}

	path := strings.Trim(ep.Path, "/")
	path = strings.TrimSuffix(path, ".git")
	idx := strings.LastIndex(path, "/")
	if idx <= 0 || idx == len(path)-1 {
		return nil, fmt.Errorf("%w: %s (expected owner/name)", ErrInvalidRemoteURL, remote)
	}

	return &RepoRef{
		Host:  ep.Host,
		Owner: path[:idx],
		Name:  path[idx+1:],
	}, nil
}

// FullName returns the full repository name (owner/name).
func (r RepoRef) FullName() string {
	return fmt.Sprintf("%s/%s", r.Owner, r.Name)
}

// String returns the string representation of the reference.
func (r RepoRef) String() string {
	if r.Host == "" {
		return r.FullName()
	}
	return fmt.Sprintf("%s/%s", r.Host, r.FullName())
}

// EmbedCredentials returns cloneURL with the given userinfo. An empty
// username embeds the token as the user name.
func EmbedCredentials(cloneURL, username, token string) (string, error) {
	u, err := url.Parse(cloneURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrInvalidRemoteURL, cloneURL, err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return "", fmt.Errorf("%w: %s is not an HTTP(S) URL", ErrInvalidRemoteURL, cloneURL)
	}

	if username == "" {
		u.User = url.User(token)
	} else {
		u.User = url.UserPassword(username, token)
	}
	return u.String(), nil
}
