package config

import (
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/kballard/go-shellquote"
	"golang.org/x/text/encoding/charmap"
)

// Keys of the configuration file.
const (
	KeyJar                = "jar"
	KeyServiceName        = "serviceName"
	KeyServiceDescription = "serviceDescription"
	KeyStartup            = "startup"
	KeyStopClass          = "stopClass"
	KeyXms                = "xms"
	KeyXmx                = "xmx"
	KeyRoot               = "root"
	KeyJVMOptions         = "jvmOptions"
)

// Defaults applied when a value is unset.
const (
	DefaultXmsMB   = 32
	DefaultXmxMB   = 2048
	DefaultStartup = "auto"
)

// Accessor exposes typed configuration values.
type Accessor struct {
	r      Reader
	logger *slog.Logger
}

// NewAccessor returns an Accessor over r.
func NewAccessor(r Reader, logger *slog.Logger) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{r: r, logger: logger}
}

// Get returns the value of name, or "" when it is absent.
//
// Properties files are read as ISO-8859-1 while most of them are saved as
// UTF-8, so the value is encoded back to ISO-8859-1 bytes and those bytes are
// read as UTF-8. When that round trip is not possible the value is returned
// unchanged.
func (a *Accessor) Get(name string) string {
	if a.r == nil {
		return ""
	}
	v, _ := a.r.Get(name)
	return a.redecode(name, v)
}

func (a *Accessor) redecode(name, v string) string {
	b, err := charmap.ISO8859_1.NewEncoder().Bytes([]byte(v))
	if err != nil {
		a.logger.Debug("config value is not ISO-8859-1, keeping it as read", "key", name, "error", err)
		return v
	}
	if !utf8.Valid(b) {
		a.logger.Debug("config value is not UTF-8 encoded, keeping it as read", "key", name)
		return v
	}
	return string(b)
}

// Int returns the value of name as an integer, or def when it is unset,
// zero or not a number. A configured 0 cannot be told apart from an unset
// value.
func (a *Accessor) Int(name string, def int) int {
	n := parseInt(strings.TrimSpace(a.Get(name)))
	if n == 0 {
		return def
	}
	return n
}

// Jar returns the path of the application archive, relative to the system
// root unless rooted.
func (a *Accessor) Jar() string {
	return a.Get(KeyJar)
}

// ServiceName returns the name the service is registered under.
func (a *Accessor) ServiceName() string {
	return a.Get(KeyServiceName)
}

// ServiceDescription returns the description shown by the service manager.
func (a *Accessor) ServiceDescription() string {
	return a.Get(KeyServiceDescription)
}

// Startup returns the startup mode flag of the wrapper ("auto", "manual").
func (a *Accessor) Startup() string {
	if v := a.Get(KeyStartup); v != "" {
		return v
	}
	return DefaultStartup
}

// StopClass returns the class invoked to stop the service, or "".
func (a *Accessor) StopClass() string {
	return a.Get(KeyStopClass)
}

// XmsMB returns the initial heap size in megabytes.
func (a *Accessor) XmsMB() int {
	return a.Int(KeyXms, DefaultXmsMB)
}

// XmxMB returns the maximum heap size in megabytes.
func (a *Accessor) XmxMB() int {
	return a.Int(KeyXmx, DefaultXmxMB)
}

// Root returns the log root mode: CURRENT, PARENT or a path.
func (a *Accessor) Root() string {
	return a.Get(KeyRoot)
}

// JVMOptions returns extra JVM flags split with shell quoting rules.
func (a *Accessor) JVMOptions() ([]string, error) {
	v := strings.TrimSpace(a.Get(KeyJVMOptions))
	if v == "" {
		return nil, nil
	}
	opts, err := shellquote.Split(v)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", KeyJVMOptions, err)
	}
	return opts, nil
}
