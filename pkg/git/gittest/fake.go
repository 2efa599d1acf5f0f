// Package gittest provides an in-memory git.VCS for workflow tests.
package gittest

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spf13/afero"

	"github.com/holon-run/gitflow/pkg/git"
)

// Operation names accepted by Fake.FailOn.
const (
	OpInit         = "init"
	OpAdd          = "add"
	OpStatus       = "status"
	OpCommit       = "commit"
	OpRename       = "rename"
	OpCheckoutNew  = "checkout-b"
	OpCheckout     = "checkout"
	OpRemoteURL    = "remote-url"
	OpRemoteAdd    = "remote-add"
	OpRemoveRemote = "remote-remove"
	OpPush         = "push"
)

// Fake is an in-memory working tree. The zero value is an uninitialized
// directory; use New for a ready-to-use instance.
type Fake struct {
	mu sync.Mutex

	// Path is the working tree path returned by Dir.
	Path string

	// Fs, when set, receives a .git directory on Init.
	Fs afero.Fs

	// Branch is the checked-out branch.
	Branch string

	// Branches lists existing local branches.
	Branches map[string]bool

	// Pending is the number of unstaged changes; AddAll moves them to Staged.
	Pending int
	Staged  int

	Commits []string
	Remotes map[string]string
	Pushes  []git.PushOptions

	// Calls records every operation in order.
	Calls []string

	// FailOn makes the named operation return the error.
	FailOn map[string]error
}

var _ git.VCS = (*Fake)(nil)

// New returns a Fake rooted at path on the given branch.
func New(path, branch string) *Fake {
	f := &Fake{
		Path:     path,
		Branch:   branch,
		Branches: map[string]bool{},
		Remotes:  map[string]string{},
		FailOn:   map[string]error{},
	}
	if branch != "" {
		f.Branches[branch] = true
	}
	return f
}

// Factory returns a git.Factory that always yields f, updating its Path.
func (f *Fake) Factory() git.Factory {
	return func(dir string) git.VCS {
		f.mu.Lock()
		f.Path = dir
		f.mu.Unlock()
		return f
	}
}

// Fail configures op to fail with a command error carrying diagnostic.
func (f *Fake) Fail(op, diagnostic string) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.FailOn == nil {
		f.FailOn = map[string]error{}
	}
	f.FailOn[op] = &git.CommandError{
		Args:       []string{op},
		Diagnostic: diagnostic,
		Err:        errors.New("exit status 1"),
	}
	return f
}

// Touch adds n unstaged changes.
func (f *Fake) Touch(n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Pending += n
}

func (f *Fake) record(op string) error {
	f.Calls = append(f.Calls, op)
	if err, ok := f.FailOn[op]; ok {
		return err
	}
	return nil
}

func (f *Fake) Dir() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.Path
}

func (f *Fake) Init(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpInit); err != nil {
		return err
	}
	if f.Branch == "" {
		f.Branch = "master"
	}
	if f.Branches == nil {
		f.Branches = map[string]bool{}
	}
	if f.Fs != nil {
		if err := f.Fs.MkdirAll(filepath.Join(f.Path, ".git"), 0755); err != nil {
			return err
		}
	}
	return nil
}

func (f *Fake) AddAll(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpAdd); err != nil {
		return err
	}
	f.Staged += f.Pending
	f.Pending = 0
	return nil
}

func (f *Fake) HasChanges(ctx context.Context) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpStatus); err != nil {
		return false, err
	}
	return f.Staged+f.Pending > 0, nil
}

func (f *Fake) Commit(ctx context.Context, message string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpCommit); err != nil {
		return "", err
	}
	if f.Staged == 0 {
		return "", &git.CommandError{Args: []string{"commit"}, Diagnostic: "nothing to commit", Err: errors.New("exit status 1")}
	}
	f.Staged = 0
	f.Commits = append(f.Commits, message)
	f.Branches[f.Branch] = true
	return fmt.Sprintf("%040x", len(f.Commits)), nil
}

func (f *Fake) CurrentBranch(ctx context.Context) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, "current-branch")
	return f.Branch
}

func (f *Fake) RenameBranch(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpRename); err != nil {
		return err
	}
	delete(f.Branches, f.Branch)
	f.Branch = name
	f.Branches[name] = true
	return nil
}

func (f *Fake) CreateOrSwitchBranch(ctx context.Context, name string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpCheckoutNew); err == nil && !f.Branches[name] {
		f.Branches[name] = true
		f.Branch = name
		return true, nil
	}
	if err := f.record(OpCheckout); err != nil {
		return false, err
	}
	if !f.Branches[name] {
		return false, &git.CommandError{
			Args:       []string{"checkout", name},
			Diagnostic: fmt.Sprintf("error: pathspec '%s' did not match any file(s) known to git", name),
			Err:        errors.New("exit status 1"),
		}
	}
	f.Branch = name
	return false, nil
}

func (f *Fake) RemoteURL(ctx context.Context, name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpRemoteURL); err != nil {
		return "", err
	}
	url, ok := f.Remotes[name]
	if !ok {
		return "", &git.CommandError{Args: []string{"remote", "get-url", name}, Diagnostic: "error: No such remote '" + name + "'", Err: errors.New("exit status 2")}
	}
	return url, nil
}

func (f *Fake) AddRemote(ctx context.Context, name, url string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpRemoteAdd); err != nil {
		return err
	}
	if _, ok := f.Remotes[name]; ok {
		return &git.CommandError{Args: []string{"remote", "add", name}, Diagnostic: "error: remote " + name + " already exists.", Err: errors.New("exit status 3")}
	}
	if f.Remotes == nil {
		f.Remotes = map[string]string{}
	}
	f.Remotes[name] = url
	return nil
}

func (f *Fake) RemoveRemote(ctx context.Context, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpRemoveRemote); err != nil {
		return err
	}
	if _, ok := f.Remotes[name]; !ok {
		return &git.CommandError{Args: []string{"remote", "remove", name}, Diagnostic: "error: No such remote: '" + name + "'", Err: errors.New("exit status 2")}
	}
	delete(f.Remotes, name)
	return nil
}

func (f *Fake) Push(ctx context.Context, opts git.PushOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record(OpPush); err != nil {
		return err
	}
	f.Pushes = append(f.Pushes, opts)
	return nil
}
