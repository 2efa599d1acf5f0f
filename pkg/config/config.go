// Package config provides invocation defaults for gitflow.
// It loads an optional github_config.json file with proper precedence:
// CLI flags > environment (credentials only) > config file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

const (
	// DefaultFile is the config file looked up in the working directory.
	DefaultFile = "github_config.json"

	// TokenEnv is the environment variable holding the GitHub token.
	TokenEnv = "GITHUB_TOKEN"

	// GitLabTokenEnv is the environment variable holding the GitLab token.
	GitLabTokenEnv = "GITLAB_TOKEN"

	// ProviderGitHub and ProviderGitLab name the supported hosting platforms.
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"

	// DefaultBranch is used when neither flags nor config name a branch.
	DefaultBranch = "main"

	// DefaultCommitMessage is used by commit when no message is configured.
	DefaultCommitMessage = "Update"
)

// Token sources reported by ResolveToken.
const (
	SourceEnv     = "env"
	SourceConfig  = "config"
	SourceCLI     = "cli"
	SourceDefault = "default"
)

var validate = validator.New()

// Config holds the optional defaults read from the config file.
// It is loaded once per invocation and never modified afterwards.
type Config struct {
	GitHubToken   string `mapstructure:"github_token"`
	GitLabToken   string `mapstructure:"gitlab_token"`
	RepoName      string `mapstructure:"repo_name" validate:"omitempty,excludesall=/\\ "`
	Description   string `mapstructure:"description"`
	Private       bool   `mapstructure:"private"`
	PushCode      *bool  `mapstructure:"push_code"`
	LocalPath     string `mapstructure:"local_path"`
	Branch        string `mapstructure:"branch" validate:"omitempty,excludesall= ~^:?*["`
	CommitMessage string `mapstructure:"commit_message"`

	// Provider selects the hosting platform (github or gitlab).
	Provider string `mapstructure:"provider" validate:"omitempty,oneof=github gitlab"`

	// APIURL overrides the API base URL (GitHub Enterprise, self-hosted GitLab).
	APIURL string `mapstructure:"api_url" validate:"omitempty,url"`

	// WebHost overrides the host used for web and clone URLs.
	WebHost string `mapstructure:"web_host" validate:"omitempty,hostname_port|hostname"`

	LogLevel string `mapstructure:"log_level" validate:"omitempty,oneof=debug info warn warning error"`

	// Token is the resolved credential for the selected provider.
	Token string `mapstructure:"-"`

	// TokenSource records where Token came from (env or config).
	TokenSource string `mapstructure:"-"`
}

// LoadOptions controls where Load reads from.
type LoadOptions struct {
	// Path is the config file path. Empty means DefaultFile.
	Path string

	// Fs is the filesystem to read from. Nil means the OS filesystem.
	Fs afero.Fs

	// LookupEnv reads environment variables. Nil means os.LookupEnv.
	LookupEnv func(string) (string, bool)
}

// Load loads the configuration file and resolves the credential.
//
// If the config file does not exist, it returns a zero config and nil error.
// If the file exists but cannot be parsed or fails validation, it returns
// an error.
func Load(opts LoadOptions) (*Config, error) {
	fs := opts.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	lookup := opts.LookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	path := opts.Path
	if path == "" {
		path = DefaultFile
	}

	cfg := &Config{}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return nil, fmt.Errorf("failed to check config file: %w", err)
	}
	if exists {
		if err := readFile(fs, path, cfg); err != nil {
			return nil, err
		}
	}

	cfg.Token, cfg.TokenSource = cfg.ResolveToken(lookup)
	return cfg, nil
}

func readFile(fs afero.Fs, path string, cfg *Config) error {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}

	return nil
}

// formatValidationError converts validator errors into user-friendly messages.
func formatValidationError(err error) error {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validation failed: %w", err)
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		messages = append(messages, formatFieldError(e))
	}

	if len(messages) == 1 {
		return fmt.Errorf("invalid config: %s", messages[0])
	}
	return fmt.Errorf("invalid config:\n  - %s", strings.Join(messages, "\n  - "))
}

func formatFieldError(e validator.FieldError) string {
	field := e.Field()
	switch e.Tag() {
	case "oneof":
		return fmt.Sprintf("field '%s' must be one of: %s", field, e.Param())
	case "url":
		return fmt.Sprintf("field '%s' must be a valid URL", field)
	case "excludesall":
		return fmt.Sprintf("field '%s' contains forbidden characters", field)
	case "hostname_port|hostname":
		return fmt.Sprintf("field '%s' must be a host name", field)
	default:
		return fmt.Sprintf("field '%s' failed validation (%s)", field, e.Tag())
	}
}

// ResolveProvider returns the configured provider, defaulting to github.
func (c *Config) ResolveProvider() string {
	if c.Provider == "" {
		return ProviderGitHub
	}
	return c.Provider
}

// ResolveToken returns the credential for the selected provider and its
// source. The environment takes precedence over the config file.
func (c *Config) ResolveToken(lookupEnv func(string) (string, bool)) (string, string) {
	envName, fileValue := TokenEnv, c.GitHubToken
	if c.ResolveProvider() == ProviderGitLab {
		envName, fileValue = GitLabTokenEnv, c.GitLabToken
	}

	if v, ok := lookupEnv(envName); ok && v != "" {
		return v, SourceEnv
	}
	if fileValue != "" {
		return fileValue, SourceConfig
	}
	return "", ""
}

// TokenEnvName returns the environment variable consulted for the credential.
func (c *Config) TokenEnvName() string {
	if c.ResolveProvider() == ProviderGitLab {
		return GitLabTokenEnv
	}
	return TokenEnv
}

// ResolveString returns the effective value for a string configuration field.
// Precedence: cliValue > configValue > defaultValue.
// Returns the effective value and its source ("cli", "config", or "default").
func (c *Config) ResolveString(cliValue, configValue, defaultValue string) (string, string) {
	if cliValue != "" {
		return cliValue, SourceCLI
	}
	if configValue != "" {
		return configValue, SourceConfig
	}
	return defaultValue, SourceDefault
}

// ResolveRepoName returns the effective repository name and its source.
func (c *Config) ResolveRepoName(cliValue string) (string, string) {
	return c.ResolveString(cliValue, c.RepoName, "")
}

// ResolveDescription returns the effective repository description.
func (c *Config) ResolveDescription(cliValue string) string {
	v, _ := c.ResolveString(cliValue, c.Description, "")
	return v
}

// ResolvePrivate reports whether the repository should be private.
func (c *Config) ResolvePrivate(cliValue bool) bool {
	return cliValue || c.Private
}

// ResolveLocalPath returns the working tree path, defaulting to cwd.
func (c *Config) ResolveLocalPath(cliValue, cwd string) (string, string) {
	return c.ResolveString(cliValue, c.LocalPath, cwd)
}

// ResolveBranch returns the branch used by create and push.
func (c *Config) ResolveBranch(cliValue string) (string, string) {
	return c.ResolveString(cliValue, c.Branch, DefaultBranch)
}

// ResolveCommitMessage returns the commit message used by commit.
func (c *Config) ResolveCommitMessage(cliValue string) (string, string) {
	return c.ResolveString(cliValue, c.CommitMessage, DefaultCommitMessage)
}

// ResolveLogLevel returns the effective log level and its source.
func (c *Config) ResolveLogLevel(cliValue, defaultValue string) (string, string) {
	return c.ResolveString(cliValue, c.LogLevel, defaultValue)
}

// ShouldPush reports whether create pushes the local tree after creating
// the repository. push_code defaults to true when absent.
func (c *Config) ShouldPush(noPush bool) bool {
	if noPush {
		return false
	}
	return c.PushCode == nil || *c.PushCode
}
