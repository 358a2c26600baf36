// Package jre inspects the Java runtime a service is registered against:
// its version, its bitness and where it is installed.
package jre

import (
	"strconv"
	"strings"
)

// MinimumVersion is the oldest runtime, in the form returned by
// NormalizeVersion, that can host a service.
const MinimumVersion = 1.7

// Bitness is the word size of an operating system or runtime.
type Bitness int

// Known bitness values.
const (
	Bits32 Bitness = 32
	Bits64 Bitness = 64
)

// BitnessOf returns Bits64 when s mentions "64" and Bits32 otherwise.
// It is applied to architecture names ("amd64", "x86_64", "AMD64") and to
// runtime names ("Java HotSpot(TM) 64-Bit Server VM").
func BitnessOf(s string) Bitness {
	if strings.Contains(s, "64") {
		return Bits64
	}
	return Bits32
}

func (b Bitness) String() string {
	return strconv.Itoa(int(b))
}

// NormalizeVersion reduces a dotted version string to major + 0.minor,
// e.g. "1.8.0_60" to 1.8. Segments after the second are ignored and a
// segment that is not a number counts as 0, so "" yields 0.
//
// This is a coarse two level comparison, not semantic versioning: "1.10"
// normalizes to 1.1.
func NormalizeVersion(raw string) float64 {
	if raw == "" {
		return 0
	}
	segments := strings.Split(raw, ".")

	major := strconv.FormatFloat(parseFloat(segments[0]), 'f', -1, 64)
	if len(segments) == 1 {
		return parseFloat(major)
	}
	// Joined as text so "1.7" compares equal to the 1.7 literal.
	minor := strconv.FormatFloat(parseFloat("0."+segments[1]), 'f', -1, 64)
	return parseFloat(major + strings.TrimPrefix(minor, "0"))
}

// CheckVersion reports whether raw satisfies MinimumVersion.
func CheckVersion(raw string) bool {
	return NormalizeVersion(raw) >= MinimumVersion
}

func parseFloat(s string) float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return f
}

// Environment holds the facts gathered about a Java runtime and the host.
type Environment struct {
	// Version is the runtime's java.version property.
	Version string

	// VMName is the runtime's java.vm.name property.
	VMName string

	// JavaHomeDir is the runtime's java.home property.
	JavaHomeDir string

	// RuntimeArch is the runtime's os.arch property.
	RuntimeArch string

	// HostArch is the processor architecture reported by the operating
	// system. Empty when it could not be queried.
	HostArch string
}

// RuntimeVersion returns the raw version string of the runtime.
func (e *Environment) RuntimeVersion() string {
	return e.Version
}

// OSBitness returns the bitness of the operating system. The runtime's
// os.arch is used when the host architecture is unknown.
func (e *Environment) OSBitness() Bitness {
	arch := e.HostArch
	if arch == "" {
		arch = e.RuntimeArch
	}
	return BitnessOf(arch)
}

// RuntimeBitness returns the bitness of the runtime.
func (e *Environment) RuntimeBitness() Bitness {
	return BitnessOf(e.VMName)
}

// JavaHome returns the installation directory of the runtime.
func (e *Environment) JavaHome() string {
	return e.JavaHomeDir
}
