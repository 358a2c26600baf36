//go:build unix

package jre

import (
	"golang.org/x/sys/unix"
)

// HostArch returns the machine field of uname ("x86_64", "aarch64", "i686").
func HostArch() string {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return ""
	}
	return unix.ByteSliceToString(u.Machine[:])
}
