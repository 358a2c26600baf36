// Package privilege reports whether the process holds the rights needed to
// register services.
package privilege

import "log/slog"

// IsElevated reports whether the process runs with an administrator token
// on Windows, or as root elsewhere.
func IsElevated() bool {
	return elevated()
}

// WarnIfNotElevated logs a warning when the process is not elevated. The
// service manager rejects registration from an unelevated process, but the
// commands are still attempted so their output reaches the log.
func WarnIfNotElevated(logger *slog.Logger, action string) bool {
	if IsElevated() {
		return true
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("not running with administrator privileges; service commands may fail", "action", action)
	return false
}
