package github

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/go-github/v68/github"
	"github.com/spf13/afero"

	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
)

const (
	// ReleaseOwner is the GitHub repository owner for gitflow releases
	ReleaseOwner = "holon-run"
	// ReleaseRepo is the GitHub repository name for gitflow releases
	ReleaseRepo = "gitflow"
	// VersionCheckCacheFile is the filename for the version check cache
	VersionCheckCacheFile = "version_check_cache.json"
	// VersionCheckCacheTTL is the time-to-live for the version check cache (24 hours)
	VersionCheckCacheTTL = 24 * time.Hour
	// VersionCheckEnvVar is the environment variable to disable version checking
	VersionCheckEnvVar = "GITFLOW_NO_VERSION_CHECK"
)

// ErrVersionCheckDisabled is returned when VersionCheckEnvVar is set.
var ErrVersionCheckDisabled = errors.New("version check disabled")

// ReleaseInfo represents information about a GitHub release
type ReleaseInfo struct {
	TagName     string    `json:"tag_name"`
	Name        string    `json:"name"`
	PublishedAt time.Time `json:"published_at"`
	HTMLURL     string    `json:"html_url"`
}

// versionCache is the on-disk cache of the last release lookup.
type versionCache struct {
	CacheTime time.Time    `json:"cache_time"`
	Release   *ReleaseInfo `json:"release,omitempty"`
}

// LatestRelease returns the newest published vX.Y.Z release of owner/repo,
// skipping drafts and prereleases.
func (c *Client) LatestRelease(ctx context.Context, owner, repo string) (*ReleaseInfo, error) {
	releases, resp, err := c.GitHubClient().Repositories.ListReleases(ctx, owner, repo, &github.ListOptions{PerPage: 30})
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", toAPIError(resp, err, func(int) error { return forge.ErrRequestFailed }))
	}

	for _, r := range releases {
		if r.GetDraft() || r.GetPrerelease() {
			continue
		}
		if strings.HasPrefix(r.GetTagName(), "v") {
			return &ReleaseInfo{
				TagName:     r.GetTagName(),
				Name:        r.GetName(),
				PublishedAt: r.GetPublishedAt().Time,
				HTMLURL:     r.GetHTMLURL(),
			}, nil
		}
	}

	return nil, fmt.Errorf("no release found for %s/%s", owner, repo)
}

// UpdateChecker reports whether a newer gitflow release exists. Results are
// cached for VersionCheckCacheTTL.
type UpdateChecker struct {
	// Client queries releases. Nil means an anonymous client.
	Client *Client

	// Fs holds the cache. Nil means the OS filesystem.
	Fs afero.Fs

	// CacheDir is the cache directory. Empty means the user cache dir; a
	// failure to find it disables caching.
	CacheDir string

	// LookupEnv reads environment variables. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Now reports the current time. Nil means time.Now.
	Now func() time.Time
}

// Check returns the latest release and whether current is at least as new.
func (u *UpdateChecker) Check(ctx context.Context, current string) (*ReleaseInfo, bool, error) {
	lookup := u.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	if v, ok := lookup(VersionCheckEnvVar); ok && v != "" {
		return nil, false, fmt.Errorf("%w via %s", ErrVersionCheckDisabled, VersionCheckEnvVar)
	}

	now := time.Now
	if u.Now != nil {
		now = u.Now
	}
	fs := u.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}

	cachePath := u.cachePath()
	if cachePath != "" {
		cached, err := readVersionCache(fs, cachePath)
		if err == nil && cached.Release != nil && now().Sub(cached.CacheTime) < VersionCheckCacheTTL {
			return cached.Release, compareVersions(current, cached.Release.TagName) >= 0, nil
		}
	}

	client := u.Client
	if client == nil {
		// Public releases need no token.
		client = NewClient("")
	}
	release, err := client.LatestRelease(ctx, ReleaseOwner, ReleaseRepo)
	if err != nil {
		return nil, false, fmt.Errorf("failed to fetch latest gitflow release: %w", err)
	}

	if cachePath != "" {
		if err := writeVersionCache(fs, cachePath, &versionCache{CacheTime: now(), Release: release}); err != nil {
			holonlog.Debug("failed to write version cache", "path", cachePath, "error", err)
		}
	}

	return release, compareVersions(current, release.TagName) >= 0, nil
}

func (u *UpdateChecker) cachePath() string {
	dir := u.CacheDir
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(base, "gitflow")
	}
	return filepath.Join(dir, VersionCheckCacheFile)
}

func readVersionCache(fs afero.Fs, path string) (*versionCache, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}

	var cache versionCache
	if err := json.Unmarshal(data, &cache); err != nil {
		return nil, err
	}
	return &cache, nil
}

func writeVersionCache(fs afero.Fs, path string, data *versionCache) error {
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return afero.WriteFile(fs, path, raw, 0644)
}

// compareVersions compares two version strings
// Returns 1 if v1 > v2, -1 if v1 < v2, 0 if equal
func compareVersions(v1, v2 string) int {
	// "dev" builds are always considered the latest
	if v1 == "dev" {
		return 1
	}
	if v2 == "dev" {
		return -1
	}

	parts1 := strings.Split(strings.TrimPrefix(v1, "v"), ".")
	parts2 := strings.Split(strings.TrimPrefix(v2, "v"), ".")

	for i := 0; i < max(len(parts1), len(parts2)); i++ {
		if c := comparePart(partAt(parts1, i), partAt(parts2, i)); c != 0 {
			return c
		}
	}
	return 0
}

func partAt(parts []string, i int) string {
	if i < len(parts) {
		return parts[i]
	}
	return ""
}

// comparePart orders one dotted component. A missing component counts as 0
// against a number and sorts before anything else. Numbers sort before
// non-numeric parts.
func comparePart(a, b string) int {
	na, errA := leadingInt(a)
	nb, errB := leadingInt(b)

	switch {
	case a == "" && b == "":
		return 0
	case a == "":
		if errB == nil {
			return compareInts(0, nb)
		}
		return -1
	case b == "":
		if errA == nil {
			return compareInts(na, 0)
		}
		return 1
	case errA == nil && errB == nil:
		return compareInts(na, nb)
	case errA == nil:
		return -1
	case errB == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}

func leadingInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

func compareInts(a, b int) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
