//go:build !windows

package executor

import (
	"context"
	"os/exec"

	"github.com/munichmade/javasvc/internal/command"
)

func newCmd(ctx context.Context, line command.Line) *exec.Cmd {
	argv := line.Argv()
	return exec.CommandContext(ctx, argv[0], argv[1:]...)
}
