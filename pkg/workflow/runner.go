// Package workflow implements the gitflow commands: create, push, commit,
// branch and pr. Each command resolves its inputs against the loaded
// configuration, drives git through a git.VCS and the hosting platform
// through a forge.Forge, narrates progress and returns a single Result.
package workflow

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/holon-run/gitflow/pkg/config"
	"github.com/holon-run/gitflow/pkg/forge"
	"github.com/holon-run/gitflow/pkg/git"
	holonlog "github.com/holon-run/gitflow/pkg/log"
	"github.com/holon-run/gitflow/pkg/report"
)

// Deps holds the collaborators of a Runner.
type Deps struct {
	Config *config.Config
	Forge  forge.Forge

	// VCS opens working trees. Defaults to the exec-backed git client.
	VCS git.Factory

	// Fs is used for path checks. Defaults to the OS filesystem.
	Fs afero.Fs

	// Narrator receives progress lines. Defaults to report.Discard.
	Narrator report.Narrator

	// Cwd is the fallback working tree path.
	Cwd string

	// Now stamps {date} in commit messages.
	Now func() time.Time
}

// Runner executes workflow commands.
type Runner struct {
	cfg   *config.Config
	forge forge.Forge
	vcs   git.Factory
	fs    afero.Fs
	say   report.Narrator
	cwd   string
	now   func() time.Time
}

// New returns a Runner, filling unset dependencies with defaults.
func New(d Deps) (*Runner, error) {
	if d.Forge == nil {
		return nil, fmt.Errorf("forge is required")
	}
	if d.Config == nil {
		d.Config = &config.Config{}
	}
	if d.VCS == nil {
		d.VCS = git.NewFactory()
	}
	if d.Fs == nil {
		d.Fs = afero.NewOsFs()
	}
	if d.Narrator == nil {
		d.Narrator = report.Discard
	}
	if d.Cwd == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		d.Cwd = cwd
	}
	if d.Now == nil {
		d.Now = time.Now
	}

	return &Runner{
		cfg:   d.Config,
		forge: d.Forge,
		vcs:   d.VCS,
		fs:    d.Fs,
		say:   d.Narrator,
		cwd:   d.Cwd,
		now:   d.Now,
	}, nil
}

// localPath resolves the working tree path for a command.
func (r *Runner) localPath(cliValue string) string {
	path, source := r.cfg.ResolveLocalPath(cliValue, r.cwd)
	holonlog.Debug("resolved local path", "path", path, "source", source)
	return path
}

// isManaged reports whether path contains a .git entry. Worktrees and
// submodules use a .git file, so any entry counts.
func (r *Runner) isManaged(path string) bool {
	ok, err := afero.Exists(r.fs, filepath.Join(path, ".git"))
	return err == nil && ok
}

// requireManaged fails with not_a_git_repo when path has no .git entry.
func (r *Runner) requireManaged(path string) error {
	if r.isManaged(path) {
		return nil
	}
	r.say.Error("Not a git repository. Run 'create' or 'push' first.")
	return fail(CodeNotAGitRepo, fmt.Errorf("%s is not a git repository", path))
}

// remoteRef identifies the hosted repository behind origin, or returns nil
// when origin is missing or not a recognizable hosted URL.
func (r *Runner) remoteRef(ctx context.Context, vcs git.VCS) *forge.RepoRef {
	remote, err := vcs.RemoteURL(ctx, git.DefaultRemote)
	if err != nil {
		holonlog.Debug("no origin remote", "path", vcs.Dir(), "error", git.Diagnostic(err))
		return nil
	}
	ref, err := forge.ParseRemoteURL(remote)
	if err != nil {
		holonlog.Debug("origin is not a hosted repository", "remote", holonlog.RedactURL(remote), "error", err)
		return nil
	}
	return ref
}

// platform returns the display name of the hosting platform.
func (r *Runner) platform() string {
	switch r.forge.Name() {
	case config.ProviderGitLab:
		return "GitLab"
	case config.ProviderGitHub:
		return "GitHub"
	default:
		return r.forge.Name()
	}
}
