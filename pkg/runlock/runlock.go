// Package runlock keeps concurrent polls of the same GoldenGate
// installation from racing each other with an advisory file lock.
package runlock

import (
	"os"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// Lock is a held single-instance lock bound to one installation
type Lock struct {
	path   string
	file   *os.File
	logger logging.Logger
}

// Path returns the lock file path
func (l *Lock) Path() string {
	return l.path
}

// LockPath derives the per-installation lock file path: the configured
// base path suffixed with the installation path, flattened so that two
// installations on one host get distinct lock files.
func LockPath(basePath, installPath string) string {
	flattened := strings.NewReplacer("/", "_", "\\", "_").Replace(installPath)
	return basePath + "." + flattened
}
