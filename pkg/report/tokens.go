package report

import (
	"fmt"
	"strconv"
	"strings"
)

// tokenAfter returns the token following the first occurrence of label
func tokenAfter(fields []string, label string) (string, bool) {
	for i, field := range fields {
		if field == label && i+1 < len(fields) {
			return fields[i+1], true
		}
	}
	return "", false
}

// stripSeparators removes thousands/decimal separators from a numeric
// display token, the console localizes large lag values.
func stripSeparators(token string) string {
	token = strings.ReplaceAll(token, ",", "")
	return strings.ReplaceAll(token, ".", "")
}

// hmsToSeconds converts an HH:MM:SS display to total seconds
func hmsToSeconds(display string) (int64, error) {
	parts := strings.Split(display, ":")
	if len(parts) != 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, got %q", display)
	}
	hours, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return 0, err
	}
	minutes, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return 0, err
	}
	seconds, err := strconv.ParseInt(parts[2], 10, 64)
	if err != nil {
		return 0, err
	}
	return hours*3600 + minutes*60 + seconds, nil
}

// firstDigitIndex returns the index of the first decimal digit, -1 if none
func firstDigitIndex(s string) int {
	for i, r := range s {
		if r >= '0' && r <= '9' {
			return i
		}
	}
	return -1
}
