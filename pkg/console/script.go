package console

import (
	"fmt"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/report"
)

// Credentials authenticate the microservices connect command
type Credentials struct {
	Username string
	Password string
}

// BuildScript renders the command script fed to the console on stdin.
// Markers around each command let the report parser locate its sections
// by exact line match later.
func BuildScript(installation *Installation, hostname string, credentials Credentials) (string, error) {
	var lines []string

	if installation.Architecture == ArchitectureMicroservices {
		if installation.ServiceManager == nil {
			return "", errors.NewValidationError("service manager info is missing", nil)
		}
		if credentials.Username == "" || credentials.Password == "" {
			return "", errors.NewValidationError(
				"console credentials are required for microservices installations",
				nil,
			)
		}
		lines = append(lines, fmt.Sprintf("connect %s://%s:%d/ as %s password %s !",
			installation.ServiceManager.Scheme(), hostname, installation.ServiceManager.Port,
			credentials.Username, credentials.Password))
	}

	lines = append(lines, sectionCommands("info * detail", report.MarkerDetailStart, report.MarkerDetailEnd)...)
	lines = append(lines, sectionCommands("info all", report.MarkerSummaryStart, report.MarkerSummaryEnd)...)
	lines = append(lines, sectionCommands("send * getlag", report.MarkerGetlagStart, report.MarkerGetlagEnd)...)
	lines = append(lines, sectionCommands("info mgr", report.MarkerManagerStart, report.MarkerManagerEnd)...)
	lines = append(lines, "exit")

	return strings.Join(lines, "\n") + "\n", nil
}

func sectionCommands(command, startMarker, endMarker string) []string {
	return []string{markerLine(startMarker), command, markerLine(endMarker)}
}

// markerLine emits the marker on a line of its own, the leading newline
// covers console output that did not end with one.
func markerLine(marker string) string {
	return `shell printf "\n` + marker + `\n"`
}
