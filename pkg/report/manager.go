package report

import (
	"regexp"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/registry"
)

var managerPIDPattern = regexp.MustCompile(`Process ID ([0-9]*)`)

// ManagerInfo is what the classic manager section yields
type ManagerInfo struct {
	Port string
	PID  string
}

// ResolveManager scans the "info mgr" window of a classic instance for the
// running-manager line, extracting the listening port from its dotted
// address token (text after the last "." and before the trailing ",") and
// the manager pid. Without a port no host identifier can be formed, so a
// stopped manager or an empty window is fatal. The MANAGER record is
// overwritten with daemon defaults plus the real pid; its status from the
// summary pass is preserved.
func ResolveManager(lines []string, window Section, reg *registry.Registry, logger logging.Logger) (ManagerInfo, error) {
	if window.Empty() {
		logger.Warnf("Manager section is empty")
		return ManagerInfo{}, errors.NewManagerNotRunningError("manager section is empty", nil)
	}

	for i := window.Start; i < window.End; i++ {
		line := lines[i]
		if !strings.Contains(line, "Manager is running") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 6 {
			return ManagerInfo{}, errors.NewManagerNotRunningError("manager status line too short", nil).
				WithContext("line", line)
		}

		address := fields[5]
		dot := strings.LastIndex(address, ".")
		comma := strings.LastIndex(address, ",")
		if comma <= dot {
			return ManagerInfo{}, errors.NewManagerNotRunningError("cannot extract port from manager address", nil).
				WithContext("address", address)
		}
		port := address[dot+1 : comma]
		if port == "" {
			return ManagerInfo{}, errors.NewManagerNotRunningError("empty port in manager address", nil).
				WithContext("address", address)
		}

		pid := registry.PIDDaemon
		if match := managerPIDPattern.FindStringSubmatch(line); match != nil && match[1] != "" {
			pid = match[1]
		}

		record, ok := reg.Lookup("MANAGER")
		if !ok {
			record = registry.NewProcessRecord("MANAGER", registry.KindManager)
			reg.Upsert(record)
		}
		resetToDaemonDefaults(record)
		record.ProcessID = pid

		logger.Debugf("Manager running on port %s with pid %s", port, pid)
		return ManagerInfo{Port: port, PID: pid}, nil
	}

	return ManagerInfo{}, errors.NewManagerNotRunningError("no running manager line in manager section", nil)
}
