// Package github implements the forge.Forge backend for GitHub on top of
// go-github with static token authentication.
package github

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v68/github"
	"golang.org/x/oauth2"

	"github.com/holon-run/gitflow/pkg/forge"
)

const (
	// Name is the registry name of this forge.
	Name = "github"

	// DefaultBaseURL is the default GitHub API base URL
	DefaultBaseURL = "https://api.github.com"

	// DefaultWebHost is the host used for web and clone URLs.
	DefaultWebHost = "github.com"

	// DefaultTimeout is the default HTTP timeout
	DefaultTimeout = 30 * time.Second

	// tokenUser is the username GitHub accepts for token-authenticated HTTPS.
	tokenUser = "x-access-token"
)

// ClientOption configures a Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL for the GitHub API
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = baseURL
	}
}

// WithWebHost sets the host used for web and clone URLs (GitHub Enterprise).
func WithWebHost(host string) ClientOption {
	return func(c *Client) {
		c.webHost = host
	}
}

// WithTimeout sets a custom HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = timeout
	}
}

// WithHTTPClient sets a custom HTTP client. Its transport carries the
// authenticated requests.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// Client is the GitHub forge. The underlying go-github client is built
// lazily on first use.
type Client struct {
	token        string
	baseURL      string
	webHost      string
	httpClient   *http.Client
	timeout      time.Duration
	githubClient *github.Client
}

var _ forge.Forge = (*Client)(nil)

// NewClient creates a new GitHub API client with the given token
func NewClient(token string, opts ...ClientOption) *Client {
	c := &Client{
		token:   token,
		baseURL: DefaultBaseURL,
		webHost: DefaultWebHost,
		timeout: DefaultTimeout,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.baseURL == "" {
		c.baseURL = DefaultBaseURL
	}
	if c.webHost == "" {
		c.webHost = DefaultWebHost
	}

	return c
}

// New builds a GitHub forge from registry settings.
func New(settings forge.Settings) (forge.Forge, error) {
	opts := []ClientOption{WithBaseURL(settings.APIURL), WithWebHost(settings.WebHost)}
	if settings.HTTPClient != nil {
		opts = append(opts, WithHTTPClient(settings.HTTPClient))
	}
	if settings.APIURL != "" {
		if _, err := url.Parse(settings.APIURL); err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL %q: %w", settings.APIURL, err)
		}
	}
	return NewClient(settings.Token, opts...), nil
}

// Name returns the registry name.
func (c *Client) Name() string {
	return Name
}

// GitHubClient returns the underlying go-github client (lazy-loaded)
func (c *Client) GitHubClient() *github.Client {
	if c.githubClient == nil {
		tc := &http.Client{Transport: c.httpClient.Transport}
		if c.token != "" {
			ctx := context.WithValue(context.Background(), oauth2.HTTPClient, c.httpClient)
			ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: c.token})
			tc = oauth2.NewClient(ctx, ts)
		}
		tc.Timeout = c.timeout
		c.githubClient = github.NewClient(tc)

		// Set custom base URL if configured (GitHub Enterprise or tests)
		if c.baseURL != DefaultBaseURL {
			baseURL := c.baseURL
			if !strings.HasSuffix(baseURL, "/") {
				baseURL += "/"
			}
			if parsedURL, err := url.Parse(baseURL); err == nil {
				c.githubClient.BaseURL = parsedURL
			}
		}
	}
	return c.githubClient
}

// RepositoryURL returns the web URL of owner/name.
func (c *Client) RepositoryURL(owner, name string) string {
	return fmt.Sprintf("https://%s/%s/%s", c.webHost, owner, name)
}

// BranchURL returns the web URL of a branch.
func (c *Client) BranchURL(owner, name, branch string) string {
	return fmt.Sprintf("%s/tree/%s", c.RepositoryURL(owner, name), branch)
}

// PushURL returns the HTTPS clone URL with an embedded token.
func (c *Client) PushURL(owner, name string) string {
	u := &url.URL{
		Scheme: "https",
		User:   url.UserPassword(tokenUser, c.token),
		Host:   c.webHost,
		Path:   fmt.Sprintf("/%s/%s.git", owner, name),
	}
	return u.String()
}

// AuthenticatedURL embeds the token into an HTTPS clone URL.
func (c *Client) AuthenticatedURL(cloneURL string) (string, error) {
	return forge.EmbedCredentials(cloneURL, tokenUser, c.token)
}
