package privilege

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestWarnIfNotElevated(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	got := WarnIfNotElevated(logger, "install")
	if got != IsElevated() {
		t.Errorf("WarnIfNotElevated() = %v, IsElevated() = %v", got, IsElevated())
	}

	warned := strings.Contains(buf.String(), "level=WARN")
	if warned == got {
		t.Errorf("warning logged = %v with elevated = %v; output %q", warned, got, buf.String())
	}
	if warned && !strings.Contains(buf.String(), "action=install") {
		t.Errorf("warning does not name the action: %q", buf.String())
	}
}
