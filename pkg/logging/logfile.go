package logging

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// InstanceLogFilePath derives the per-instance log file path. The file name
// carries a hash of the installation path so that agents polling different
// instances on one host never contend for the same file.
func InstanceLogFilePath(dir string, baseName string, installPath string) string {
	sum := md5.Sum([]byte(installPath))
	return filepath.Join(dir, fmt.Sprintf("%s.%s", baseName, hex.EncodeToString(sum[:])))
}

// ProbeWritable verifies the log location can be written to before the sink
// is opened, so a permission problem degrades to stderr logging instead of
// failing the poll. The probe file carries a unique suffix to avoid racing
// a concurrent agent.
func ProbeWritable(path string) error {
	probe := fmt.Sprintf("%s.%s.delete_me", path, uuid.NewString())
	file, err := os.OpenFile(probe, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0644)
	if err != nil {
		return err
	}
	file.Close()
	return os.Remove(probe)
}
