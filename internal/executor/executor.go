// Package executor runs command scripts one line at a time, streaming each
// process's output into the log.
package executor

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/exec"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/munichmade/javasvc/internal/command"
)

// ErrEmptyLine is returned for a line without a program.
var ErrEmptyLine = errors.New("empty command line")

// Runner executes a script. It allows tests to inject fake implementations
// without spawning processes.
type Runner interface {
	Run(ctx context.Context, script *command.Script) error
}

// Executor runs scripts as child processes.
type Executor struct {
	// DryRun logs each line without running it.
	DryRun bool

	// Dir is the working directory of spawned processes; empty means the
	// current one.
	Dir string

	Logger *slog.Logger
}

// New returns an Executor logging to logger.
func New(logger *slog.Logger, dryRun bool) *Executor {
	return &Executor{DryRun: dryRun, Logger: logger}
}

func (e *Executor) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.Default()
	}
	return e.Logger
}

// Run executes the lines of script in order. A failing line is logged and
// the next line still runs; the failures are returned joined. Once ctx is
// done no further line is started.
func (e *Executor) Run(ctx context.Context, script *command.Script) error {
	if script.Len() == 0 {
		return nil
	}

	var errs []error
	for _, line := range script.Lines {
		if err := ctx.Err(); err != nil {
			e.logger().Warn("skipping remaining commands", "error", err)
			errs = append(errs, err)
			break
		}
		if err := e.runLine(ctx, line); err != nil {
			e.logger().Error("command failed", "command", line.String(), "error", err)
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		e.logger().Info("commands completed", "count", script.Len())
	}
	return errors.Join(errs...)
}

func (e *Executor) runLine(ctx context.Context, line command.Line) error {
	if len(line) == 0 {
		return ErrEmptyLine
	}

	e.logger().Info("executing command", "command", line.String())
	if e.DryRun {
		return nil
	}

	cmd := newCmd(ctx, line)
	if e.Dir != "" {
		cmd.Dir = e.Dir
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return err
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", line.Name(), err)
	}
	defer release(cmd)

	// Both pipes are drained before Wait closes them.
	var g errgroup.Group
	g.Go(func() error { return e.drain(ctx, stdout, slog.LevelInfo, "stdout") })
	g.Go(func() error { return e.drain(ctx, stderr, slog.LevelWarn, "stderr") })
	drainErr := g.Wait()

	if err := cmd.Wait(); err != nil {
		return checkExecutionError(err, line)
	}
	return drainErr
}

// drain logs r line by line until EOF.
func (e *Executor) drain(ctx context.Context, r io.Reader, level slog.Level, stream string) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		text := strings.TrimRight(scanner.Text(), "\r")
		if text == "" {
			continue
		}
		e.logger().Log(ctx, level, strings.ToValidUTF8(text, "?"), "stream", stream)
	}
	if err := scanner.Err(); err != nil {
		// Keep reading so the process cannot block on a full pipe.
		_, _ = io.Copy(io.Discard, r)
		return fmt.Errorf("read %s: %w", stream, err)
	}
	return nil
}

// release kills a process that is still running when its line is left
// early, and reaps it.
func release(cmd *exec.Cmd) {
	if cmd.Process == nil || cmd.ProcessState != nil {
		return
	}
	_ = cmd.Process.Kill()
	_ = cmd.Wait()
}

func checkExecutionError(err error, line command.Line) error {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return fmt.Errorf("%s exited with code %d: %w", line.Name(), exitErr.ExitCode(), err)
	}
	return fmt.Errorf("%s failed: %w", line.Name(), err)
}
