//go:build !windows

package runlock

import (
	"os"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"

	"golang.org/x/sys/unix"
)

// Acquire opens the lock file and takes an exclusive advisory lock
// without blocking. A held lock means another poll of the same
// installation is still in flight.
func Acquire(path string, logger logging.Logger) (*Lock, error) {
	logger.Debugf("Trying to lock %s exclusively", path)

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, errors.NewIOError("cannot open lock file", err).WithContext("path", path)
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		return nil, errors.NewConflictError(
			"cannot acquire lock, another run may still be active",
			err,
		).WithContext("path", path)
	}

	logger.Debugf("Got exclusive lock on %s", path)

	return &Lock{path: path, file: file, logger: logger}, nil
}

// Release unlocks, closes and removes the lock file
func (l *Lock) Release() error {
	if l.file == nil {
		return nil
	}

	l.logger.Debugf("Releasing lock on %s", l.path)

	if err := unix.Flock(int(l.file.Fd()), unix.LOCK_UN); err != nil {
		l.file.Close()
		l.file = nil
		return errors.NewIOError("cannot unlock lock file", err).WithContext("path", l.path)
	}

	if err := l.file.Close(); err != nil {
		l.file = nil
		return errors.NewIOError("cannot close lock file", err).WithContext("path", l.path)
	}
	l.file = nil

	if err := os.Remove(l.path); err != nil {
		return errors.NewIOError("cannot remove lock file", err).WithContext("path", l.path)
	}

	return nil
}
