package osquery

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// NewPSMemoryLister shells out to ps for the virtual size of each pid.
// OGG processes use no shared memory, so plain vsz is good enough.
func NewPSMemoryLister(logger logging.Logger) MemoryLister {
	return func(ctx context.Context, pids []string) (string, error) {
		if ctx == nil {
			return "", errors.NewValidationError("context cannot be nil", nil)
		}
		if len(pids) == 0 {
			return "", nil
		}

		pidList := strings.Join(pids, ",")
		logger.Debugf("Querying process memory, pids: %s", pidList)

		cmd := exec.CommandContext(ctx, "ps", "-o", "pid=", "-o", "vsz=", "-p", pidList)
		output, err := cmd.Output()
		if err != nil {
			// ps exits nonzero when some of the pids are already gone,
			// but still reports the rest
			if _, isExit := err.(*exec.ExitError); !isExit || len(output) == 0 {
				return "", errors.NewProcessError("ps failed", err).WithContext("pids", pidList)
			}
			logger.Debugf("ps reported missing pids, error: %v", err)
		}

		return NormalizePSListing(string(output))
	}
}

// NormalizePSListing converts the KiB vsz column of raw ps output into
// the "pid bytes" lines of the memory listing contract.
func NormalizePSListing(raw string) (string, error) {
	var lines []string
	for _, line := range strings.Split(raw, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return "", errors.NewValidationError(
				fmt.Sprintf("unexpected ps output line: %q", line), nil)
		}

		kib, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return "", errors.NewValidationError(
				fmt.Sprintf("unexpected vsz value in ps output line: %q", line), err)
		}

		lines = append(lines, fields[0]+" "+strconv.FormatInt(kib*1024, 10))
	}

	return strings.Join(lines, "\n"), nil
}
