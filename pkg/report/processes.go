package report

import (
	"strconv"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/registry"
)

// Service daemons reported by the summary section. MANAGER keeps its own
// kind, the rest are generic daemons.
var serviceDaemonNames = map[string]bool{
	"MANAGER":   true,
	"ADMINSRV":  true,
	"ADMINSRVR": true,
	"DISTSRVR":  true,
	"PMSRVR":    true,
	"RECVSRVR":  true,
}

// BuildRegistry runs the detail pass over the "info * detail" window and
// the summary pass over the "info all" window, producing the unified
// process table. Any malformed line in either window fails the whole
// build: a partial registry emits silently wrong metrics.
func BuildRegistry(lines []string, detail, summary Section, logger logging.Logger) (*registry.Registry, error) {
	reg := registry.NewRegistry()

	if err := detailPass(lines, detail, reg); err != nil {
		return nil, err
	}
	if err := summaryPass(lines, summary, reg); err != nil {
		return nil, err
	}

	logger.Debugf("Registry built: %d processes: %v", reg.Len(), reg.Names())
	return reg, nil
}

// detailPass reads per-process state. A line whose first token is EXTRACT
// or REPLICAT opens a record; every line of the block, the opening line
// included, runs through the per-line matchers below.
func detailPass(lines []string, window Section, reg *registry.Registry) error {
	var current *registry.ProcessRecord

	for i := window.Start; i < window.End; i++ {
		line := lines[i]
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "EXTRACT", "REPLICAT":
			if len(fields) < 2 {
				return parseError("process line without a name", nil, line)
			}
			kind := registry.KindExtract
			if fields[0] == "REPLICAT" {
				kind = registry.KindReplicat
			}
			current = registry.NewProcessRecord(fields[1], kind)
			reg.Upsert(current)
		}
		if current == nil {
			// command echo before the first process line
			continue
		}

		if status, ok := tokenAfter(fields, "Status"); ok {
			current.Status = status
		}

		if strings.Contains(line, "Process ID") {
			if len(fields) < 3 {
				return parseError("process id line too short", nil, line)
			}
			current.ProcessID = fields[2]
		}

		if strings.Contains(line, "Trail Name") && current.Kind == registry.KindExtract {
			if err := parseExtractTrail(lines, i, current); err != nil {
				return err
			}
		}

		if strings.Contains(line, "Log Read Checkpoint File") && current.Kind == registry.KindReplicat {
			if err := parseReplicatCheckpointFile(lines, i, current); err != nil {
				return err
			}
		}

		if strings.Contains(line, " SCN ") {
			open := strings.Index(line, "(")
			close := strings.Index(line, ")")
			if open < 0 || close < open {
				return parseError("scn line without a parenthesized value", nil, line)
			}
			current.SystemChangeNumber = line[open+1 : close]
		}

		if strings.Contains(line, "Checkpoint Lag") {
			if len(fields) < 3 {
				return parseError("checkpoint lag line too short", nil, line)
			}
			seconds, err := hmsToSeconds(stripSeparators(fields[2]))
			if err != nil {
				return parseError("cannot parse checkpoint lag display", err, line)
			}
			current.SetCheckpointLag(seconds)
		}
	}
	return nil
}

// parseExtractTrail reads the write-checkpoint table row following the
// "Trail Name" header line: trail, sequence and RBA at fixed positions,
// trail type in the fifth column.
func parseExtractTrail(lines []string, headerIdx int, record *registry.ProcessRecord) error {
	if headerIdx+1 >= len(lines) {
		return parseError("trail header at end of report", nil, lines[headerIdx])
	}
	row := lines[headerIdx+1]
	fields := strings.Fields(row)
	if len(fields) < 5 {
		return parseError("trail table row too short", nil, row)
	}
	record.TrailName = fields[0]
	record.Sequence = fields[1]
	record.RelativeByteAddress = fields[2]
	record.TrailType = fields[4]
	return nil
}

// parseReplicatCheckpointFile derives trail position from the checkpoint
// file path: the basename's digit suffix is the sequence (leading zeros
// dropped), the path up to the digit run is the trail name, and the RBA
// sits in the next line's fourth token.
func parseReplicatCheckpointFile(lines []string, headerIdx int, record *registry.ProcessRecord) error {
	line := lines[headerIdx]
	fields := strings.Fields(line)
	if len(fields) < 5 {
		return parseError("checkpoint file line too short", nil, line)
	}
	path := fields[4]
	baseStart := strings.LastIndex(path, "/") + 1
	base := path[baseStart:]

	digitStart := firstDigitIndex(base)
	if digitStart < 0 {
		return parseError("checkpoint file name carries no sequence digits", nil, line)
	}
	sequence, err := strconv.ParseInt(base[digitStart:], 10, 64)
	if err != nil {
		return parseError("cannot parse checkpoint file sequence", err, line)
	}
	record.Sequence = strconv.FormatInt(sequence, 10)
	record.TrailName = path[:baseStart+digitStart]
	record.TrailType = "LOCALTRAIL"

	if headerIdx+1 >= len(lines) {
		return parseError("checkpoint file line at end of report", nil, line)
	}
	row := lines[headerIdx+1]
	rowFields := strings.Fields(row)
	if len(rowFields) < 4 {
		return parseError("checkpoint position row too short", nil, row)
	}
	record.RelativeByteAddress = rowFields[3]
	return nil
}

// summaryPass adds the service daemons listed by "info all". Extract and
// replicat lines reappear here too; their records already exist, so only
// daemon names are matched.
func summaryPass(lines []string, window Section, reg *registry.Registry) error {
	for i := window.Start; i < window.End; i++ {
		fields := strings.Fields(lines[i])
		if len(fields) == 0 || !serviceDaemonNames[fields[0]] {
			continue
		}
		name := fields[0]

		record, ok := reg.Lookup(name)
		if !ok {
			kind := registry.KindServiceDaemon
			if name == "MANAGER" {
				kind = registry.KindManager
			}
			record = registry.NewProcessRecord(name, kind)
			reg.Upsert(record)
		}
		resetToDaemonDefaults(record)
		if len(fields) > 1 {
			record.Status = fields[1]
		}
	}
	return nil
}

// resetToDaemonDefaults clears trail and lag state; daemons never carry
// meaningful values there. Status is left to the caller.
func resetToDaemonDefaults(record *registry.ProcessRecord) {
	record.TrailName = registry.NoTrail
	record.TrailType = registry.NoTrail
	record.Sequence = registry.NoPosition
	record.RelativeByteAddress = registry.NoPosition
	record.SystemChangeNumber = registry.NoPosition
	record.CheckpointLagSeconds = nil
	record.ReplicationLagSeconds = nil
	record.ProcessID = registry.PIDDaemon
}

func parseError(message string, cause error, line string) error {
	return errors.NewProcessSectionParseError(message, cause).WithContext("line", line)
}
