package jre

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrProbe is returned when the runtime could not be queried.
var ErrProbe = errors.New("failed to query java runtime")

// Property names read from the runtime.
const (
	propVersion = "java.version"
	propVMName  = "java.vm.name"
	propHome    = "java.home"
	propOSArch  = "os.arch"
)

// Probe queries a java binary for its system properties.
type Probe struct {
	// Java is the java binary to run.
	Java string

	// HostArch returns the operating system's processor architecture.
	// Defaults to HostArch.
	HostArch func() string

	run func(ctx context.Context, name string, args ...string) ([]byte, error)
}

// NewProbe returns a Probe for the given java binary. An empty binary
// resolves through JavaBinary.
func NewProbe(java string) *Probe {
	return &Probe{Java: JavaBinary(java)}
}

// JavaBinary picks the java binary to probe: the override when given, else
// $JAVA_HOME/bin/java, else "java" from PATH.
func JavaBinary(override string) string {
	if override != "" {
		return override
	}
	if home := os.Getenv("JAVA_HOME"); home != "" {
		name := "java"
		if runtime.GOOS == "windows" {
			name = "java.exe"
		}
		return filepath.Join(home, "bin", name)
	}
	return "java"
}

// Inspect runs the java binary and returns the environment it reports.
func (p *Probe) Inspect(ctx context.Context) (*Environment, error) {
	run := p.run
	if run == nil {
		run = runCombined
	}

	// -XshowSettings prints to stderr and -version makes the JVM exit
	// right after.
	out, err := run(ctx, p.Java, "-XshowSettings:properties", "-version")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrProbe, p.Java, err)
	}

	props := ParseSettings(bytes.NewReader(out))
	if props[propVersion] == "" {
		return nil, fmt.Errorf("%w: %s reported no %s", ErrProbe, p.Java, propVersion)
	}

	hostArch := p.HostArch
	if hostArch == nil {
		hostArch = HostArch
	}

	return &Environment{
		Version:     props[propVersion],
		VMName:      props[propVMName],
		JavaHomeDir: props[propHome],
		RuntimeArch: props[propOSArch],
		HostArch:    hostArch(),
	}, nil
}

func runCombined(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return out, nil
}

// ParseSettings parses the property dump of -XshowSettings:properties.
// Properties are indented by four spaces as "key = value"; continuation
// lines of multi-valued properties are indented further and skipped.
func ParseSettings(r io.Reader) map[string]string {
	props := make(map[string]string)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if !strings.HasPrefix(line, "    ") || strings.HasPrefix(line, "        ") {
			continue
		}
		key, value, ok := strings.Cut(strings.TrimSpace(line), " = ")
		if !ok {
			// "key =" with an empty value
			if k, found := strings.CutSuffix(strings.TrimSpace(line), " ="); found {
				props[k] = ""
			}
			continue
		}
		props[key] = value
	}
	return props
}
