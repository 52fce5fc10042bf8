package registry

import (
	"strconv"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
)

// Memory augmentation: joins the OS process-table listing back into the
// registry. The listing is the normalized collaborator output, one
// "pid vsz_bytes" pair per line.

// PIDList returns the pids eligible for the OS lookup, in insertion order.
// Sentinel and empty pids are excluded.
func (reg *Registry) PIDList() []string {
	pids := make([]string, 0, len(reg.records))
	for _, record := range reg.records {
		pid := record.ProcessID
		if pid == "" || pid == PIDUnknown || pid == PIDDaemon {
			continue
		}
		pids = append(pids, pid)
	}
	return pids
}

// ParseMemoryListing parses the normalized OS listing into a pid → bytes
// map. Blank lines are ignored; anything else malformed fails the whole
// listing, the caller downgrades that to a zero-memory warning.
func ParseMemoryListing(listing string) (map[string]int64, error) {
	byPID := make(map[string]int64)
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, errors.NewValidationError("malformed process listing line", nil).
				WithContext("line", line)
		}
		bytes, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, errors.NewValidationError("non-numeric memory size in process listing", err).
				WithContext("line", line)
		}
		byPID[fields[0]] = bytes
	}
	return byPID, nil
}

// AttachMemory joins memory sizes into every record whose pid appears in
// the map. Duplicate pids all receive the same value; records never seen
// in the listing keep 0, short-lived processes are expected.
func (reg *Registry) AttachMemory(byPID map[string]int64) {
	for _, record := range reg.records {
		if bytes, ok := byPID[record.ProcessID]; ok {
			record.ResidentMemoryBytes = bytes
		}
	}
}

// TotalMemoryBytes sums memory over all records for the instance-level metric
func (reg *Registry) TotalMemoryBytes() int64 {
	var total int64
	for _, record := range reg.records {
		total += record.ResidentMemoryBytes
	}
	return total
}
