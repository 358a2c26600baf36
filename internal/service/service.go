// Package service builds and dispatches the command lines that register a
// Java application as a Windows service through the JavaService wrapper.
package service

import "errors"

// ErrUnsupported is returned by service manager queries on platforms
// without the Windows service control manager.
var ErrUnsupported = errors.New("service manager queries are only supported on Windows")

// Status reports the state of the named service as the service control
// manager sees it, or "not installed".
func Status(name string) (string, error) {
	if name == "" {
		return "", ErrNoServiceName
	}
	return status(name)
}
