package report

import (
	"strconv"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/registry"
)

// ResolveLag scans the getlag window and attaches replication lag to the
// matching registry records. Lag is best-effort: a malformed entry stops
// the scan but keeps whatever was already attached, and every degradation
// lands in the returned collection instead of failing the poll. Checkpoint
// metrics alone still have value.
func ResolveLag(lines []string, window Section, reg *registry.Registry, logger logging.Logger) *errors.ErrorCollection {
	warnings := errors.NewErrorCollection()

	if window.Empty() {
		warning := errors.NewLagSectionWarning("getlag section is empty", nil)
		logger.Warnf("Getlag section is empty, continuing with checkpoint metrics only")
		warnings.Add(warning)
		return warnings
	}

	var lastName string
	for i := window.Start; i < window.End; i++ {
		line := lines[i]
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch {
		case strings.Contains(strings.ToLower(line), "sending getlag request to"):
			if len(fields) < 6 {
				warning := errors.NewLagSectionWarning("getlag request line too short", nil).
					WithContext("line", line)
				logger.Warnf("Cannot parse getlag request line %q, keeping lag collected so far", line)
				warnings.Add(warning)
				return warnings
			}
			name := fields[5]
			lastName = name

			var next string
			if i+1 < len(lines) {
				next = lines[i+1]
			}
			switch {
			case strings.Contains(next, "Last record lag"):
				nextFields := strings.Fields(next)
				if len(nextFields) < 4 {
					warning := errors.NewLagSectionWarning("lag value line too short", nil).
						WithContext("line", next)
					logger.Warnf("Cannot parse lag value line %q, keeping lag collected so far", next)
					warnings.Add(warning)
					return warnings
				}
				attachLag(reg, name, stripSeparators(nextFields[3]), logger, warnings)
			case strings.Contains(next, "No records yet processed"):
				attachLag(reg, name, "0", logger, warnings)
			default:
				// coordinator umbrella or other undetermined reply
			}

		case strings.Contains(line, "not currently running"):
			// stopped processes report checkpoint data only

		case strings.Contains(line, "Average Lag:"):
			if len(fields) < 3 {
				warning := errors.NewLagSectionWarning("average lag line too short", nil).
					WithContext("line", line)
				logger.Warnf("Cannot parse average lag line %q, keeping lag collected so far", line)
				warnings.Add(warning)
				return warnings
			}
			if lastName == "" {
				warning := errors.NewLagSectionWarning("average lag before any getlag request", nil).
					WithContext("line", line)
				logger.Warnf("Average lag line %q precedes any getlag request, skipping", line)
				warnings.Add(warning)
				continue
			}
			attachLag(reg, lastName, stripSeparators(fields[2]), logger, warnings)
		}
	}
	return warnings
}

// attachLag parses a separator-stripped lag display and stores it on the
// named record. An unknown name or a non-numeric value degrades that one
// entry, not the scan.
func attachLag(reg *registry.Registry, name, value string, logger logging.Logger, warnings *errors.ErrorCollection) {
	seconds, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		warning := errors.NewLagSectionWarning("non-numeric lag value", err).
			WithContext("process", name).
			WithContext("value", value)
		logger.Warnf("Non-numeric lag value %q for process %s, skipping", value, name)
		warnings.Add(warning)
		return
	}
	record, ok := reg.Lookup(name)
	if !ok {
		warning := errors.NewLagSectionWarning("lag entry for unknown process", nil).
			WithContext("process", name)
		logger.Warnf("Lag entry names unknown process %s, skipping", name)
		warnings.Add(warning)
		return
	}
	record.SetReplicationLag(seconds)
}
