// Package report parses the console transcript captured from a GoldenGate
// instance into the process registry and its per-process state. The only
// contract the console offers is loosely structured, whitespace-delimited
// text; every recognized line shape lives here as a small named matcher.
package report

import (
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
)

// Section markers. The command script prints these around each console
// command, so the parser and the script generator share one vocabulary.
// Matching is exact: case-sensitive, whitespace included.
const (
	MarkerDetailStart  = "==== INFO * SECTION START ===="
	MarkerDetailEnd    = "==== INFO * SECTION END ===="
	MarkerSummaryStart = "==== INFO ALL SECTION START ===="
	MarkerSummaryEnd   = "==== INFO ALL SECTION END ===="
	MarkerGetlagStart  = "==== GETLAG SECTION START ===="
	MarkerGetlagEnd    = "==== GETLAG SECTION END ===="
	MarkerManagerStart = "==== MANAGER SECTION START ===="
	MarkerManagerEnd   = "==== MANAGER SECTION END ===="
)

// PrepareLines splits a transcript into lines and discards blank ones.
// All window arithmetic, including next-line reads past a window end,
// operates on this blank-stripped sequence with absolute indices.
func PrepareLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// Section is an index window into the prepared line sequence, exclusive of
// the marker lines themselves: Start is the first line after the start
// marker, End is the end marker's own index.
type Section struct {
	Start int
	End   int
}

// Empty reports whether the window contains no lines
func (s Section) Empty() bool {
	return s.Start >= s.End
}

func lineIndex(lines []string, marker string) int {
	for i, line := range lines {
		if line == marker {
			return i
		}
	}
	return -1
}

// FindSection locates the window between a marker pair
func FindSection(lines []string, startMarker, endMarker string) (Section, error) {
	start := lineIndex(lines, startMarker)
	if start < 0 {
		return Section{}, errors.NewSectionNotFoundError("start marker not found in report", nil).
			WithContext("marker", startMarker)
	}
	end := lineIndex(lines, endMarker)
	if end < 0 {
		return Section{}, errors.NewSectionNotFoundError("end marker not found in report", nil).
			WithContext("marker", endMarker)
	}
	if end <= start {
		return Section{}, errors.NewSectionOrderError("end marker precedes start marker", nil).
			WithContext("start_marker", startMarker).
			WithContext("end_marker", endMarker)
	}
	return Section{Start: start + 1, End: end}, nil
}
