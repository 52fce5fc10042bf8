package report

import (
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
)

// Interpreter banner phrases, one per console flavor
const (
	bannerClassic       = "Oracle GoldenGate Command Interpreter for"
	bannerMicroservices = "Oracle GoldenGate Administration Client for"
)

// StaticDescriptor carries the instance facts printed in the report
// preamble, before any section marker.
type StaticDescriptor struct {
	Version  string
	Database string
}

// ParseStaticDescriptor scans the preamble, everything before the detail
// window's start marker, for the interpreter banner (database family is the
// sixth token) and the Version line (version is the second token). Both
// feed unconditionally emitted instance metrics, so a preamble with neither
// is fatal.
func ParseStaticDescriptor(lines []string, detail Section) (StaticDescriptor, error) {
	var descriptor StaticDescriptor

	limit := detail.Start - 1
	if limit > len(lines) {
		limit = len(lines)
	}
	for i := 0; i < limit; i++ {
		line := lines[i]
		if strings.Contains(line, bannerClassic) || strings.Contains(line, bannerMicroservices) {
			fields := strings.Fields(line)
			if len(fields) < 6 {
				return descriptor, errors.NewDescriptorNotFoundError("interpreter banner too short", nil).
					WithContext("line", line)
			}
			descriptor.Database = fields[5]
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 && strings.Contains(fields[0], "Version") {
			descriptor.Version = fields[1]
		}
	}

	if descriptor.Version == "" && descriptor.Database == "" {
		return descriptor, errors.NewDescriptorNotFoundError("no version or interpreter banner in report preamble", nil)
	}
	return descriptor, nil
}
