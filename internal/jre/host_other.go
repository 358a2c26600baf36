//go:build !windows && !unix

package jre

// HostArch is unknown on this platform; callers fall back to the runtime's
// os.arch.
func HostArch() string {
	return ""
}
