package service

import (
	"context"
	"errors"
	"testing"

	"github.com/munichmade/javasvc/internal/command"
	"github.com/munichmade/javasvc/internal/config"
	"github.com/munichmade/javasvc/internal/jre"
	"github.com/munichmade/javasvc/internal/logging"
)

// fakeRunner records every script it is handed.
type fakeRunner struct {
	scripts []*command.Script
	// errs is returned in order, one per call; missing entries mean success.
	errs []error
}

func (f *fakeRunner) Run(ctx context.Context, script *command.Script) error {
	f.scripts = append(f.scripts, script)
	if n := len(f.scripts) - 1; n < len(f.errs) {
		return f.errs[n]
	}
	return nil
}

func (f *fakeRunner) lines() []string {
	var out []string
	for _, s := range f.scripts {
		out = append(out, s.Strings()...)
	}
	return out
}

func TestInstallerInstall(t *testing.T) {
	b, _ := newTestBuilder(t, testEnv(), testConfig())
	runner := &fakeRunner{}
	inst := NewInstaller(b, runner, logging.Discard())

	if err := inst.Install(context.Background()); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if inst.Stage() != StageDispatched {
		t.Errorf("Stage() = %v, want %v", inst.Stage(), StageDispatched)
	}

	lines := runner.lines()
	if len(lines) != 4 {
		t.Fatalf("dispatched %d lines, want 4: %q", len(lines), lines)
	}
	if lines[0] != "net stop MySvc" || lines[1] != "sc delete MySvc" {
		t.Errorf("cleanup lines = %q", lines[:2])
	}
	if lines[3] != "NET START MySvc" {
		t.Errorf("last line = %q, want %q", lines[3], "NET START MySvc")
	}
}

func TestInstallerInstall_CleanupFailureContinues(t *testing.T) {
	b, _ := newTestBuilder(t, testEnv(), testConfig())
	runner := &fakeRunner{errs: []error{errors.New("net exited with code 2")}}
	inst := NewInstaller(b, runner, logging.Discard())

	if err := inst.Install(context.Background()); err != nil {
		t.Fatalf("Install() error = %v", err)
	}
	if len(runner.scripts) != 2 {
		t.Fatalf("dispatched %d scripts, want 2", len(runner.scripts))
	}
	if inst.Stage() != StageDispatched {
		t.Errorf("Stage() = %v, want %v", inst.Stage(), StageDispatched)
	}
}

func TestInstallerInstall_Stops(t *testing.T) {
	tests := []struct {
		name        string
		env         func(*jre.Environment)
		values      map[string]string
		wantErr     error
		wantStage   Stage
		wantScripts int
	}{
		{
			name:        "old runtime",
			env:         func(e *jre.Environment) { e.Version = "1.6.0_45" },
			wantErr:     ErrUnsupportedVersion,
			wantStage:   StageIdle,
			wantScripts: 0,
		},
		{
			name:        "missing version",
			env:         func(e *jre.Environment) { e.Version = "" },
			wantErr:     ErrUnsupportedVersion,
			wantStage:   StageIdle,
			wantScripts: 0,
		},
		{
			name:        "bitness mismatch",
			env:         func(e *jre.Environment) { e.VMName = "Java HotSpot(TM) Client VM" },
			wantErr:     ErrBitnessMismatch,
			wantStage:   StageUninstalled,
			wantScripts: 1,
		},
		{
			name:        "no service name",
			values:      map[string]string{config.KeyServiceName: ""},
			wantErr:     ErrNoServiceName,
			wantStage:   StageUninstalled,
			wantScripts: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := testEnv()
			if tt.env != nil {
				tt.env(env)
			}
			values := testConfig()
			for k, v := range tt.values {
				values[k] = v
			}
			b, _ := newTestBuilder(t, env, values)
			runner := &fakeRunner{}
			inst := NewInstaller(b, runner, logging.Discard())

			err := inst.Install(context.Background())
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Install() error = %v, want %v", err, tt.wantErr)
			}
			if inst.Stage() != tt.wantStage {
				t.Errorf("Stage() = %v, want %v", inst.Stage(), tt.wantStage)
			}
			if len(runner.scripts) != tt.wantScripts {
				t.Errorf("dispatched %d scripts, want %d", len(runner.scripts), tt.wantScripts)
			}
		})
	}
}

func TestInstallerUninstall(t *testing.T) {
	b, _ := newTestBuilder(t, testEnv(), testConfig())
	runner := &fakeRunner{}
	inst := NewInstaller(b, runner, logging.Discard())

	if err := inst.Uninstall(context.Background()); err != nil {
		t.Fatalf("Uninstall() error = %v", err)
	}
	if got := runner.lines(); len(got) != 2 || got[0] != "net stop MySvc" || got[1] != "sc delete MySvc" {
		t.Errorf("dispatched %q", got)
	}
	if inst.Stage() != StageDispatched {
		t.Errorf("Stage() = %v, want %v", inst.Stage(), StageDispatched)
	}
}

func TestInstallerUninstall_NoServiceName(t *testing.T) {
	values := testConfig()
	values[config.KeyServiceName] = ""
	b, _ := newTestBuilder(t, testEnv(), values)
	runner := &fakeRunner{}
	inst := NewInstaller(b, runner, logging.Discard())

	if err := inst.Uninstall(context.Background()); !errors.Is(err, ErrNoServiceName) {
		t.Fatalf("Uninstall() error = %v, want %v", err, ErrNoServiceName)
	}
	if len(runner.scripts) != 0 {
		t.Errorf("dispatched %d scripts, want 0", len(runner.scripts))
	}
}

func TestStageString(t *testing.T) {
	tests := map[Stage]string{
		StageIdle:           "idle",
		StageVersionChecked: "version checked",
		StageUninstalled:    "uninstalled",
		StageCommandBuilt:   "command built",
		StageDispatched:     "dispatched",
		Stage(42):           "stage(42)",
	}
	for stage, want := range tests {
		if got := stage.String(); got != want {
			t.Errorf("Stage(%d).String() = %q, want %q", int(stage), got, want)
		}
	}
}
