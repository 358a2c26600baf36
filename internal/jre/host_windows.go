//go:build windows

package jre

import (
	"golang.org/x/sys/windows/registry"
)

const environmentKey = `SYSTEM\CurrentControlSet\Control\Session Manager\Environment`

// HostArch returns the native processor architecture from the system
// environment in the registry ("AMD64", "x86", "ARM64"). The per-process
// PROCESSOR_ARCHITECTURE variable is not used because a 32-bit process on a
// 64-bit system sees "x86" there.
func HostArch() string {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, environmentKey, registry.QUERY_VALUE)
	if err != nil {
		return ""
	}
	defer k.Close()

	arch, _, err := k.GetStringValue("PROCESSOR_ARCHITECTURE")
	if err != nil {
		return ""
	}
	return arch
}
