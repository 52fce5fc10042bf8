package osquery

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"

	"github.com/shirou/gopsutil/process"
)

// NewGopsutilMemoryLister reads process VMS via gopsutil, avoiding the
// ps child process. Produces the same listing contract as the ps lister.
func NewGopsutilMemoryLister(logger logging.Logger) MemoryLister {
	return func(ctx context.Context, pids []string) (string, error) {
		if ctx == nil {
			return "", errors.NewValidationError("context cannot be nil", nil)
		}

		var lines []string
		for _, pidString := range pids {
			pid, err := strconv.ParseInt(pidString, 10, 32)
			if err != nil {
				return "", errors.NewValidationError(
					fmt.Sprintf("invalid pid: %q", pidString), err)
			}

			proc, err := process.NewProcessWithContext(ctx, int32(pid))
			if err != nil {
				logger.Debugf("Process not found, pid: %s", pidString)
				continue
			}

			memoryInfo, err := proc.MemoryInfoWithContext(ctx)
			if err != nil {
				logger.Debugf("Cannot read memory info, pid: %s, error: %v", pidString, err)
				continue
			}

			lines = append(lines, pidString+" "+strconv.FormatUint(memoryInfo.VMS, 10))
		}

		return strings.Join(lines, "\n"), nil
	}
}
