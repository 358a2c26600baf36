package cmd

import (
	"context"
	"io"

	"github.com/spf13/afero"

	"github.com/munichmade/javasvc/internal/executor"
	"github.com/munichmade/javasvc/internal/jre"
	"github.com/munichmade/javasvc/internal/logging"
	"github.com/munichmade/javasvc/internal/service"
	"github.com/munichmade/javasvc/internal/session"
)

// app bundles what the service commands share.
type app struct {
	*session.Session
	env *jre.Environment
}

// openSession starts a session on fs from the tool's settings.
func openSession(fs afero.Fs, console io.Writer) (*session.Session, error) {
	return session.New(session.Options{
		Dir:      settings.GetString(flagDir),
		LogLevel: logging.ParseLevel(settings.GetString(flagLogLevel)),
		Fs:       fs,
		Console:  console,
	})
}

// openApp starts a session and inspects the java runtime.
func openApp(ctx context.Context, fs afero.Fs, console io.Writer) (*app, error) {
	sess, err := openSession(fs, console)
	if err != nil {
		return nil, err
	}

	probe := jre.NewProbe(settings.GetString(flagJava))
	env, err := probe.Inspect(ctx)
	if err != nil {
		sess.Logger.Error("failed to inspect java runtime", "java", probe.Java, "error", err)
		_ = sess.Close()
		return nil, err
	}
	sess.Logger.Info("java runtime",
		"version", env.RuntimeVersion(),
		"vm", env.VMName,
		"home", env.JavaHome(),
		"os_bits", env.OSBitness(),
		"java_bits", env.RuntimeBitness())

	return &app{Session: sess, env: env}, nil
}

func (a *app) builder() *service.Builder {
	return &service.Builder{
		Env:    a.env,
		Config: a.Config,
		Layout: a.Layout,
		Fs:     a.Fs,
		Logger: a.Logger,
	}
}

func (a *app) installer() *service.Installer {
	runner := executor.New(a.Logger, settings.GetBool(flagDryRun))
	return service.NewInstaller(a.builder(), runner, a.Logger)
}
