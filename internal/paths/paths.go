// Package paths resolves the directories and files an installation works
// with: the system root the tool runs from, the log root chosen by the
// configuration, and the log files handed to the service wrapper.
package paths

import (
	"path/filepath"
	"strings"
)

// Log root modes understood by ResolveLogRoot.
const (
	RootCurrent = "CURRENT"
	RootParent  = "PARENT"
)

const (
	logsDirName      = "logs"
	outLogName       = "service-out.log"
	errLogName       = "service-error.log"
	installerLogName = "installer.log"
)

// Formatter normalizes path separators to a single target separator.
type Formatter struct {
	Separator byte
}

// Native returns a Formatter for the host separator.
func Native() Formatter {
	return Formatter{Separator: filepath.Separator}
}

// Windows returns a Formatter that always emits backslashes.
func Windows() Formatter {
	return Formatter{Separator: '\\'}
}

func (f Formatter) sep() string {
	if f.Separator == 0 {
		return string(filepath.Separator)
	}
	return string(f.Separator)
}

// Normalize rewrites every '/' and '\' in p to the formatter's separator.
func (f Formatter) Normalize(p string) string {
	sep := f.sep()
	p = strings.ReplaceAll(p, "/", sep)
	return strings.ReplaceAll(p, `\`, sep)
}

// Dir normalizes p and guarantees a trailing separator.
// An empty path stays empty.
func (f Formatter) Dir(p string) string {
	if p == "" {
		return ""
	}
	p = f.Normalize(p)
	if !strings.HasSuffix(p, f.sep()) {
		p += f.sep()
	}
	return p
}

// IsAbs reports whether p is rooted, either by a leading separator or by a
// drive letter.
func (f Formatter) IsAbs(p string) bool {
	if p == "" {
		return false
	}
	if p[0] == '/' || p[0] == '\\' {
		return true
	}
	return len(p) >= 2 && p[1] == ':' && isLetter(p[0])
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// ForwardSlashes rewrites every backslash in p to '/'.
func ForwardSlashes(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// ResolveLogRoot applies the log root policy to systemRoot, which must end
// with sep. CURRENT and any unrecognized value resolve to systemRoot; PARENT
// strips the last directory off it, which leaves "" for a drive root.
func ResolveLogRoot(mode, systemRoot string, sep byte) string {
	switch mode {
	case RootParent:
		if systemRoot == "" {
			return ""
		}
		trimmed := systemRoot[:len(systemRoot)-1]
		idx := strings.LastIndexByte(trimmed, sep)
		return systemRoot[:idx+1]
	default:
		// Explicit paths are not honored yet; existing config files rely on
		// them falling back to the system root.
		return systemRoot
	}
}

// Layout holds every path derived for one installation.
type Layout struct {
	// SystemRoot is the directory the tool runs from, with a trailing
	// separator. The configuration file, the jar and the wrapper
	// executables live here.
	SystemRoot string

	// LogRoot is the base directory of the service's logs and of the
	// service's working directory.
	LogRoot string

	// LogsDir is <LogRoot>logs<sep>.
	LogsDir string

	// OutLog receives the service's standard output.
	OutLog string

	// ErrLog receives the service's standard error.
	ErrLog string

	// CurrentDir is LogRoot with forward slashes, as the wrapper's
	// -current flag requires.
	CurrentDir string

	// InstallerLog is the log file of this tool.
	InstallerLog string

	format Formatter
}

// Resolve derives the layout for systemRoot under the given log root mode.
func Resolve(systemRoot, rootMode string, f Formatter) *Layout {
	systemRoot = f.Dir(systemRoot)
	logRoot := ResolveLogRoot(rootMode, systemRoot, f.sep()[0])
	logsDir := logRoot + logsDirName + f.sep()

	return &Layout{
		SystemRoot:   systemRoot,
		LogRoot:      logRoot,
		LogsDir:      logsDir,
		OutLog:       logsDir + outLogName,
		ErrLog:       logsDir + errLogName,
		CurrentDir:   ForwardSlashes(logRoot),
		InstallerLog: logRoot + installerLogName,
		format:       f,
	}
}

// Formatter returns the formatter the layout was resolved with.
func (l *Layout) Formatter() Formatter {
	return l.format
}

// Normalize normalizes p with the layout's formatter.
func (l *Layout) Normalize(p string) string {
	return l.format.Normalize(p)
}

// InRoot resolves a configured file name against the system root.
// Rooted names are only normalized.
func (l *Layout) InRoot(name string) string {
	if l.format.IsAbs(name) {
		return l.format.Normalize(name)
	}
	return l.format.Normalize(l.SystemRoot + name)
}
