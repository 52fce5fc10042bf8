//go:build windows

package runlock

import (
	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// Acquire is not supported on Windows
func Acquire(path string, logger logging.Logger) (*Lock, error) {
	return nil, errors.NewValidationError("run lock is not supported on Windows", nil)
}

// Release is not supported on Windows
func (l *Lock) Release() error {
	return errors.NewValidationError("run lock is not supported on Windows", nil)
}
