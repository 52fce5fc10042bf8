package identity

import (
	"os"
	"strings"
)

// Instance tag marker inside the manager parameter file. The value sits
// after the equals sign on the same line, e.g.
//
//	COMMENT OGG_INSTANCE_ID=My Replication
const instanceTagMarker = "COMMENT OGG_INSTANCE_ID="

// FileTagLookup reads the embedded instance tag from the manager parameter
// file. A missing file or a file without the marker yields an empty tag,
// which triggers the hostname fallback; only other read failures surface
// as errors.
func FileTagLookup(path string) (string, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	for _, line := range strings.Split(string(content), "\n") {
		if !strings.Contains(line, instanceTagMarker) {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) < 2 {
			return "", nil
		}
		return parts[1], nil
	}
	return "", nil
}
