//go:build windows

package executor

import (
	"context"
	"os/exec"
	"syscall"

	"github.com/munichmade/javasvc/internal/command"
)

// newCmd hands the rendered line to CreateProcess unchanged. The service
// wrapper parses its own command line, and Go's argument escaping would
// re-quote tokens such as -Djava.class.path="...".
func newCmd(ctx context.Context, line command.Line) *exec.Cmd {
	cmd := exec.CommandContext(ctx, line.Name())
	cmd.SysProcAttr = &syscall.SysProcAttr{CmdLine: line.String()}
	return cmd
}
