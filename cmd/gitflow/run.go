package main

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/holon-run/gitflow/pkg/config"
	"github.com/holon-run/gitflow/pkg/forge"
	holonlog "github.com/holon-run/gitflow/pkg/log"
	"github.com/holon-run/gitflow/pkg/report"
	"github.com/holon-run/gitflow/pkg/workflow"
)

// commandFunc runs one workflow command.
type commandFunc func(ctx context.Context, runner *workflow.Runner) *workflow.Result

// invocation carries the per-run output settings.
type invocation struct {
	action   string
	format   report.Format
	stdout   io.Writer
	narrator report.Narrator
	fs       afero.Fs
}

// execute loads the configuration, builds the forge backend and runs fn,
// then reports the result. Every path through execute produces exactly one
// result record.
func execute(cmd *cobra.Command, action string, fn commandFunc) error {
	inv := &invocation{
		action:   action,
		stdout:   cmd.OutOrStdout(),
		narrator: report.Discard,
		fs:       afero.NewOsFs(),
	}

	format, err := resolveFormat()
	if err != nil {
		// An unusable format falls back to a JSON record.
		inv.format = report.FormatJSON
		fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
		return inv.finish(workflow.NewFailedResult(action, workflow.CodeInvalidConfig, err))
	}
	inv.format = format
	if !format.Structured() {
		inv.narrator = report.NewConsole(inv.stdout)
	}

	cfg, err := config.Load(config.LoadOptions{Path: configPath, Fs: inv.fs})
	if err != nil {
		inv.narrator.Error("%v", err)
		return inv.finish(workflow.NewFailedResult(action, workflow.CodeInvalidConfig, err))
	}

	level, levelSource := cfg.ResolveLogLevel(logLevel, holonlog.DefaultLevel)
	_, err = holonlog.Setup(holonlog.Options{Level: level})
	if err != nil {
		inv.narrator.Error("%v", err)
		return inv.finish(workflow.NewFailedResult(action, workflow.CodeInvalidConfig, err))
	}
	holonlog.Debug("starting command", "command", action, "log_level_source", levelSource)

	if cfg.Token == "" {
		inv.narrator.Error("%s token not found. Set %s env var or add to config.", platformName(cfg.ResolveProvider()), cfg.TokenEnvName())
		return inv.finish(workflow.NewFailedResult(action, workflow.CodeTokenMissing,
			fmt.Errorf("%s is not set and the config has no token", cfg.TokenEnvName())))
	}
	holonlog.Debug("resolved credential", "provider", cfg.ResolveProvider(), "source", cfg.TokenSource)

	backend, err := forge.New(cfg.ResolveProvider(), forge.Settings{
		Token:   cfg.Token,
		APIURL:  cfg.APIURL,
		WebHost: cfg.WebHost,
	})
	if err != nil {
		inv.narrator.Error("%v", err)
		return inv.finish(workflow.NewFailedResult(action, workflow.CodeInvalidConfig, err))
	}

	runner, err := workflow.New(workflow.Deps{
		Config:   cfg,
		Forge:    backend,
		Fs:       inv.fs,
		Narrator: inv.narrator,
	})
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	if runTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, runTimeout)
		defer cancel()
	}

	return inv.finish(fn(ctx, runner))
}

// finish writes the result record and maps failure onto errFailed.
func (inv *invocation) finish(res *workflow.Result) error {
	if resultFile != "" {
		if err := report.WriteFile(inv.fs, resultFile, res); err != nil {
			holonlog.Error("failed to write result file", "path", resultFile, "error", err)
		}
	}

	if inv.format.Structured() {
		if err := report.Render(inv.stdout, inv.format, res); err != nil {
			return err
		}
	} else if !res.Failed() {
		inv.narrator.Info("")
		inv.narrator.Success("Done!")
	}

	if res.Failed() {
		holonlog.Info("command failed", "command", inv.action, "error", res.Error, "detail", res.Detail)
		return errFailed
	}
	return nil
}

// resolveFormat applies --json on top of --output.
func resolveFormat() (report.Format, error) {
	if jsonOutput {
		return report.FormatJSON, nil
	}
	return report.ParseFormat(outputFormat)
}

func platformName(provider string) string {
	if provider == config.ProviderGitLab {
		return "GitLab"
	}
	return "GitHub"
}
