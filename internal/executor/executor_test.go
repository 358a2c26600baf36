package executor

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/munichmade/javasvc/internal/command"
)

func newTestExecutor(dryRun bool) (*Executor, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(logger, dryRun), &buf
}

func TestDryRun(t *testing.T) {
	e, buf := newTestExecutor(true)

	script := command.NewScript(
		command.NewLine("net", "stop", "MySvc"),
		command.NewLine("sc", "delete", "MySvc"),
	)
	if err := e.Run(context.Background(), script); err != nil {
		t.Fatalf("dry-run should not error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"net stop MySvc", "sc delete MySvc", "commands completed"} {
		if !strings.Contains(out, want) {
			t.Errorf("log should contain %q, got %q", want, out)
		}
	}
}

func TestRunEmptyScript(t *testing.T) {
	e, _ := newTestExecutor(false)
	if err := e.Run(context.Background(), nil); err != nil {
		t.Errorf("nil script should be a no-op, got %v", err)
	}
	if err := e.Run(context.Background(), command.NewScript()); err != nil {
		t.Errorf("empty script should be a no-op, got %v", err)
	}
}

func TestRunEmptyLine(t *testing.T) {
	e, _ := newTestExecutor(false)
	err := e.Run(context.Background(), command.NewScript(command.Line{}))
	if !errors.Is(err, ErrEmptyLine) {
		t.Errorf("error = %v, want ErrEmptyLine", err)
	}
}

func TestRunCanceled(t *testing.T) {
	e, buf := newTestExecutor(true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := e.Run(ctx, command.NewScript(command.NewLine("net", "stop", "MySvc")))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("error = %v, want context.Canceled", err)
	}
	if strings.Contains(buf.String(), "net stop MySvc") {
		t.Errorf("canceled run should not reach the command, got %q", buf.String())
	}
}

func TestDrainOverlongLine(t *testing.T) {
	e, _ := newTestExecutor(false)
	r := strings.NewReader(strings.Repeat("a", 2<<20) + "\nafter\n")

	err := e.drain(context.Background(), r, slog.LevelInfo, "stdout")
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Fatalf("error = %v, want bufio.ErrTooLong", err)
	}
	if r.Len() != 0 {
		t.Errorf("%d bytes left unread; the process could block on a full pipe", r.Len())
	}
}
