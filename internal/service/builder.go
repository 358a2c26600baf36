package service

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/afero"

	"github.com/munichmade/javasvc/internal/archive"
	"github.com/munichmade/javasvc/internal/command"
	"github.com/munichmade/javasvc/internal/config"
	"github.com/munichmade/javasvc/internal/jre"
	"github.com/munichmade/javasvc/internal/paths"
)

var (
	// ErrBitnessMismatch is returned when the runtime and the operating
	// system differ in bitness; the wrapper cannot load the runtime then.
	ErrBitnessMismatch = errors.New("runtime and operating system bitness differ")

	// ErrNoMainClass is returned when the jar's entry point cannot be
	// resolved.
	ErrNoMainClass = errors.New("no main class available")

	// ErrNoServiceName is returned when no service name is configured.
	ErrNoServiceName = errors.New("no service name configured")
)

// jvmLibrary is the runtime library the wrapper loads, relative to
// java.home.
const jvmLibrary = `\bin\server\jvm.dll`

// Environment is what the builder and installer need to know about the
// runtime.
type Environment interface {
	RuntimeVersion() string
	OSBitness() jre.Bitness
	RuntimeBitness() jre.Bitness
	JavaHome() string
}

// Builder derives install and uninstall scripts.
type Builder struct {
	Env    Environment
	Config *config.Accessor
	Layout *paths.Layout

	// Fs is where the jar is read and the logs directory created.
	Fs afero.Fs

	Logger *slog.Logger
}

func (b *Builder) logger() *slog.Logger {
	if b.Logger == nil {
		return slog.Default()
	}
	return b.Logger
}

// WrapperPath returns the JavaService executable matching the OS bitness.
func (b *Builder) WrapperPath() string {
	return fmt.Sprintf("%sJavaService-%sbit.exe", b.Layout.SystemRoot, b.Env.OSBitness())
}

// JVMPath returns the runtime library handed to the wrapper.
func (b *Builder) JVMPath() string {
	return b.Layout.Normalize(b.Env.JavaHome() + jvmLibrary)
}

// JarPath returns the configured jar resolved against the system root, or
// "" when no jar is configured.
func (b *Builder) JarPath() string {
	jar := b.Config.Jar()
	if jar == "" {
		return ""
	}
	return b.Layout.InRoot(jar)
}

// MainClass resolves the jar's entry point, logging why it could not.
func (b *Builder) MainClass() (string, bool) {
	jar := b.JarPath()
	mainClass, err := archive.MainClass(b.Fs, jar)

	switch {
	case err == nil:
		return mainClass, true
	case errors.Is(err, archive.ErrNoArchive):
		b.logger().Error("no jar configured", "key", config.KeyJar)
	case errors.Is(err, archive.ErrUnreadable):
		b.logger().Error("failed to open jar", "jar", jar, "error", err)
	case errors.Is(err, archive.ErrNoManifest):
		b.logger().Error("jar has no manifest", "jar", jar)
	case errors.Is(err, archive.ErrNoMainClass):
		b.logger().Error("jar manifest declares no main class", "jar", jar,
			"keys", []string{archive.RsrcMainClassKey, archive.MainClassKey})
	default:
		b.logger().Error("failed to resolve main class", "jar", jar, "error", err)
	}
	return "", false
}

// BuildInstall returns the script that registers and starts the service.
// Nothing is returned, and nothing is created on disk, when the bitness
// differs or the main class or service name is missing.
func (b *Builder) BuildInstall() (*command.Script, error) {
	osBits, jvmBits := b.Env.OSBitness(), b.Env.RuntimeBitness()
	if osBits != jvmBits {
		b.logger().Error("operating system and java runtime bitness differ", "os", osBits, "java", jvmBits)
		return nil, fmt.Errorf("%w: os %s-bit, java %s-bit", ErrBitnessMismatch, osBits, jvmBits)
	}

	mainClass, ok := b.MainClass()
	if !ok {
		return nil, ErrNoMainClass
	}

	name := b.Config.ServiceName()
	if name == "" {
		b.logger().Error("service name is not configured", "key", config.KeyServiceName)
		return nil, ErrNoServiceName
	}

	jvmOptions, err := b.Config.JVMOptions()
	if err != nil {
		b.logger().Error("ignoring jvm options", "error", err)
		jvmOptions = nil
	}

	if err := b.Fs.MkdirAll(b.Layout.LogsDir, 0755); err != nil {
		// The service still installs; the wrapper reports the missing
		// directory when it starts.
		b.logger().Warn("failed to create logs directory", "dir", b.Layout.LogsDir, "error", err)
	}

	install := command.Line{
		command.Quoted(b.WrapperPath()),
		command.Word("-install"), command.Word(name),
		command.Quoted(b.JVMPath()),
		command.Word(fmt.Sprintf("-Xms%dM", b.Config.XmsMB())),
		command.Word(fmt.Sprintf("-Xmx%dM", b.Config.XmxMB())),
	}
	for _, opt := range jvmOptions {
		if strings.ContainsAny(opt, " \t") {
			install = append(install, command.Quoted(opt))
		} else {
			install = append(install, command.Word(opt))
		}
	}
	install = append(install,
		command.Attached("-Djava.class.path=", b.JarPath()),
		command.Word("-start"), command.Word(mainClass),
	)
	if stop := b.Config.StopClass(); stop != "" {
		install = append(install, command.Word("-stop"), command.Word(stop))
	}
	install = append(install,
		command.Word("-out"), command.Quoted(b.Layout.OutLog),
		command.Word("-err"), command.Quoted(b.Layout.ErrLog),
		command.Word("-current"), command.Quoted(b.Layout.CurrentDir),
		command.Word("-"+b.Config.Startup()),
		command.Word("-description"), command.Quoted(b.Config.ServiceDescription()),
	)

	return command.NewScript(install, StartLine(name)), nil
}

// BuildUninstall returns the script that stops and deletes the service.
func (b *Builder) BuildUninstall() (*command.Script, error) {
	name := b.Config.ServiceName()
	if name == "" {
		b.logger().Error("service name is not configured", "key", config.KeyServiceName)
		return nil, ErrNoServiceName
	}
	return command.NewScript(StopLine(name), DeleteLine(name)), nil
}

// StartLine starts a registered service.
func StartLine(name string) command.Line {
	return command.NewLine("NET", "START", name)
}

// StopLine stops a running service.
func StopLine(name string) command.Line {
	return command.NewLine("net", "stop", name)
}

// DeleteLine removes a service registration.
func DeleteLine(name string) command.Line {
	return command.NewLine("sc", "delete", name)
}
