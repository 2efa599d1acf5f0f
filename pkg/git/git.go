// Package git wraps the system git binary for the operations gitflow needs.
// Every invocation runs as "git -C <dir> ..." and is reported uniformly as an
// Outcome; failures carry git's diagnostic output.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultRemote is the remote name used when none is given.
const DefaultRemote = "origin"

// VCS is the set of working tree operations used by the workflow commands.
type VCS interface {
	// Dir returns the working tree path.
	Dir() string

	Init(ctx context.Context) error
	AddAll(ctx context.Context) error
	HasChanges(ctx context.Context) (bool, error)
	Commit(ctx context.Context, message string) (string, error)

	// CurrentBranch returns the checked-out branch, or "" when HEAD is
	// detached or the branch cannot be determined.
	CurrentBranch(ctx context.Context) string
	RenameBranch(ctx context.Context, name string) error

	// CreateOrSwitchBranch creates and checks out name, falling back to
	// checking out an existing branch. created reports which path succeeded.
	CreateOrSwitchBranch(ctx context.Context, name string) (created bool, err error)

	RemoteURL(ctx context.Context, name string) (string, error)
	AddRemote(ctx context.Context, name, url string) error
	RemoveRemote(ctx context.Context, name string) error
	Push(ctx context.Context, opts PushOptions) error
}

// Factory opens a VCS for a working tree path.
type Factory func(dir string) VCS

// Client represents a git client for operations on a working tree.
type Client struct {
	// dir is the working directory of the git repository.
	dir string

	// Env holds extra environment entries for every git invocation.
	Env []string
}

var _ VCS = (*Client)(nil)

// NewClient creates a new git client for the given directory. Terminal
// credential prompts are disabled so that a push without credentials fails
// instead of blocking.
func NewClient(dir string) *Client {
	return &Client{
		dir: dir,
		Env: []string{"GIT_TERMINAL_PROMPT=0"},
	}
}

// NewFactory returns a Factory producing exec-backed clients.
func NewFactory() Factory {
	return func(dir string) VCS {
		return NewClient(dir)
	}
}

// Dir returns the working tree path.
func (c *Client) Dir() string {
	return c.dir
}

// Outcome is the captured result of one git invocation.
type Outcome struct {
	// Args are the git arguments, without the leading "-C dir".
	Args []string

	// Stdout is the captured standard output.
	Stdout string

	// Diagnostic is the captured standard error.
	Diagnostic string

	// Err is non-nil when git could not be started or exited non-zero.
	Err error
}

// OK reports whether the command succeeded.
func (o Outcome) OK() bool {
	return o.Err == nil
}

// CommandError is returned when a git invocation fails.
type CommandError struct {
	Args       []string
	Diagnostic string
	Err        error
}

func (e *CommandError) Error() string {
	if e.Diagnostic == "" {
		return fmt.Sprintf("git %s failed: %v", strings.Join(e.Args, " "), e.Err)
	}
	return fmt.Sprintf("git %s failed: %v: %s", strings.Join(e.Args, " "), e.Err, e.Diagnostic)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// Diagnostic extracts git's diagnostic text from an error chain.
func Diagnostic(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		return cmdErr.Diagnostic
	}
	return ""
}

// Run executes an arbitrary git command in the working tree. It never
// panics; any failure is reported through the returned Outcome.
func (c *Client) Run(ctx context.Context, args ...string) Outcome {
	cmdArgs := append([]string{"-C", c.dir}, args...)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if len(c.Env) > 0 {
		cmd.Env = append(os.Environ(), c.Env...)
	}

	out := Outcome{Args: args}
	err := cmd.Run()
	out.Stdout = stdout.String()
	out.Diagnostic = strings.TrimSpace(stderr.String())
	if err != nil {
		out.Err = &CommandError{Args: args, Diagnostic: out.Diagnostic, Err: err}
	}
	return out
}

// execCommand runs git and returns stdout or a *CommandError.
func (c *Client) execCommand(ctx context.Context, args ...string) (string, error) {
	out := c.Run(ctx, args...)
	if !out.OK() {
		return "", out.Err
	}
	return out.Stdout, nil
}

// Init initializes a new git repository.
func (c *Client) Init(ctx context.Context) error {
	_, err := c.execCommand(ctx, "init")
	return err
}

// AddAll stages all changes.
func (c *Client) AddAll(ctx context.Context) error {
	_, err := c.execCommand(ctx, "add", "-A")
	return err
}

// HasChanges reports whether git status --porcelain lists any entry.
func (c *Client) HasChanges(ctx context.Context) (bool, error) {
	statuses, err := c.GetWorkingTreeStatus(ctx)
	if err != nil {
		return false, err
	}
	return len(statuses) > 0, nil
}

// Commit creates a commit with the given message and returns its SHA.
func (c *Client) Commit(ctx context.Context, message string) (string, error) {
	if _, err := c.execCommand(ctx, "commit", "-m", message); err != nil {
		return "", fmt.Errorf("commit failed: %w", err)
	}

	sha, err := c.execCommand(ctx, "rev-parse", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get HEAD SHA: %w", err)
	}
	return strings.TrimSpace(sha), nil
}

// CurrentBranch returns the current branch name.
func (c *Client) CurrentBranch(ctx context.Context) string {
	out, err := c.execCommand(ctx, "branch", "--show-current")
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// RenameBranch force-renames the current branch.
func (c *Client) RenameBranch(ctx context.Context, name string) error {
	if _, err := c.execCommand(ctx, "branch", "-M", name); err != nil {
		return fmt.Errorf("failed to rename branch to %s: %w", name, err)
	}
	return nil
}

// CreateOrSwitchBranch runs "checkout -b name" and, when that fails, falls
// back to "checkout name". The returned error describes the fallback failure.
func (c *Client) CreateOrSwitchBranch(ctx context.Context, name string) (bool, error) {
	if _, err := c.execCommand(ctx, "checkout", "-b", name); err == nil {
		return true, nil
	}
	if _, err := c.execCommand(ctx, "checkout", name); err != nil {
		return false, fmt.Errorf("failed to check out branch %s: %w", name, err)
	}
	return false, nil
}

// RemoteURL returns the fetch URL of the named remote.
func (c *Client) RemoteURL(ctx context.Context, name string) (string, error) {
	out, err := c.execCommand(ctx, "remote", "get-url", name)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// AddRemote adds a remote.
func (c *Client) AddRemote(ctx context.Context, name, url string) error {
	if _, err := c.execCommand(ctx, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %w", name, err)
	}
	return nil
}

// RemoveRemote removes a remote.
func (c *Client) RemoveRemote(ctx context.Context, name string) error {
	_, err := c.execCommand(ctx, "remote", "remove", name)
	return err
}

// PushOptions specifies options for pushing to a remote.
type PushOptions struct {
	// Remote is the remote name (default: "origin").
	Remote string

	// Branch is the branch to push.
	Branch string

	// Force enables force push.
	Force bool

	// SetUpstream sets the upstream branch.
	SetUpstream bool
}

// Args returns the git arguments for the push.
func (o PushOptions) Args() []string {
	remote := o.Remote
	if remote == "" {
		remote = DefaultRemote
	}

	args := []string{"push"}
	if o.Force {
		args = append(args, "--force")
	}
	if o.SetUpstream {
		args = append(args, "-u")
	}
	return append(args, remote, o.Branch)
}

// Push pushes commits to a remote repository.
func (c *Client) Push(ctx context.Context, opts PushOptions) error {
	if opts.Branch == "" {
		return fmt.Errorf("branch name is required for push")
	}

	if _, err := c.execCommand(ctx, opts.Args()...); err != nil {
		return fmt.Errorf("push failed: %w", err)
	}
	return nil
}

// FileStatus represents the status of a single file in the working tree.
type FileStatus struct {
	// Path is the file path.
	Path string

	// Status is the human-readable status (e.g., "modified", "added", "deleted").
	Status string

	// StatusCode is the raw status code from git status.
	StatusCode string
}

// GetWorkingTreeStatus parses git status --porcelain into file-level status.
func (c *Client) GetWorkingTreeStatus(ctx context.Context) ([]FileStatus, error) {
	output, err := c.execCommand(ctx, "status", "--porcelain")
	if err != nil {
		return nil, fmt.Errorf("failed to get working tree status: %w", err)
	}

	return parseFileStatus(output), nil
}

// parseFileStatus parses git status --porcelain output into FileStatus entries.
func parseFileStatus(output string) []FileStatus {
	var statuses []FileStatus

	for _, line := range strings.Split(output, "\n") {
		if strings.TrimSpace(line) == "" || len(line) < 4 {
			continue
		}

		statusCode := line[0:2]
		filePath := line[3:]

		// Renames are reported as "old -> new"; the new name is canonical.
		if _, newName, ok := strings.Cut(filePath, " -> "); ok {
			filePath = newName
		}

		statuses = append(statuses, FileStatus{
			Path:       filePath,
			Status:     decodeStatusCode(statusCode),
			StatusCode: statusCode,
		})
	}

	return statuses
}

// decodeStatusCode converts a porcelain status code to a readable string.
func decodeStatusCode(code string) string {
	switch {
	case code == "??":
		return "untracked"
	case code == "!!":
		return "ignored"
	case strings.ContainsRune(code, 'U') || code == "AA" || code == "DD":
		return "unmerged"
	}

	switch code[0] {
	case 'M':
		return "modified"
	case 'A':
		return "added"
	case 'D':
		return "deleted"
	case 'R':
		return "renamed"
	case 'C':
		return "copied"
	}

	switch code[1] {
	case 'M':
		return "modified"
	case 'D':
		return "deleted"
	case 'A':
		return "added"
	}

	return fmt.Sprintf("unknown_%s", code)
}
