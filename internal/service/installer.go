package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/munichmade/javasvc/internal/command"
	"github.com/munichmade/javasvc/internal/executor"
	"github.com/munichmade/javasvc/internal/jre"
)

// ErrUnsupportedVersion is returned when the runtime is older than the
// minimum the wrapper supports.
var ErrUnsupportedVersion = errors.New("unsupported java version")

// Stage is the furthest step an installer run reached.
type Stage int

const (
	StageIdle Stage = iota
	StageVersionChecked
	StageUninstalled
	StageCommandBuilt
	StageDispatched
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageVersionChecked:
		return "version checked"
	case StageUninstalled:
		return "uninstalled"
	case StageCommandBuilt:
		return "command built"
	case StageDispatched:
		return "dispatched"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Installer sequences the version check, the pre-install cleanup, script
// construction and dispatch.
type Installer struct {
	builder    *Builder
	runner     executor.Runner
	logger     *slog.Logger
	minVersion float64
	stage      Stage
}

// NewInstaller returns an installer dispatching through runner.
func NewInstaller(builder *Builder, runner executor.Runner, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Installer{
		builder:    builder,
		runner:     runner,
		logger:     logger,
		minVersion: jre.MinimumVersion,
	}
}

// Stage returns the furthest step the last operation reached.
func (i *Installer) Stage() Stage {
	return i.stage
}

// Install registers the service and starts it. Any existing registration
// under the same name is removed first; a failure there is logged and the
// install carries on.
func (i *Installer) Install(ctx context.Context) error {
	i.stage = StageIdle

	raw := i.builder.Env.RuntimeVersion()
	if jre.NormalizeVersion(raw) < i.minVersion {
		i.logger.Error("java version is not supported", "version", raw, "minimum", i.minVersion)
		return fmt.Errorf("%w: %q", ErrUnsupportedVersion, raw)
	}
	i.stage = StageVersionChecked
	i.logger.Info("java version supported", "version", raw)

	if err := i.uninstall(ctx); err != nil {
		i.logger.Warn("pre-install cleanup failed", "error", err)
	}
	i.stage = StageUninstalled

	script, err := i.builder.BuildInstall()
	if err != nil {
		return fmt.Errorf("build install command: %w", err)
	}
	i.stage = StageCommandBuilt

	return i.dispatch(ctx, script)
}

// Uninstall stops the service and deletes its registration.
func (i *Installer) Uninstall(ctx context.Context) error {
	i.stage = StageIdle

	script, err := i.builder.BuildUninstall()
	if err != nil {
		return fmt.Errorf("build uninstall command: %w", err)
	}
	i.stage = StageCommandBuilt

	return i.dispatch(ctx, script)
}

func (i *Installer) uninstall(ctx context.Context) error {
	script, err := i.builder.BuildUninstall()
	if err != nil {
		return fmt.Errorf("build uninstall command: %w", err)
	}
	return i.runner.Run(ctx, script)
}

// dispatch hands script to the runner. The stage advances even when some
// commands fail, since they were still issued.
func (i *Installer) dispatch(ctx context.Context, script *command.Script) error {
	err := i.runner.Run(ctx, script)
	i.stage = StageDispatched
	return err
}
