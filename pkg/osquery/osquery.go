// Package osquery answers the agent's questions about the host OS:
// virtual memory per process, the short host name and the platform
// family name.
package osquery

import (
	"context"
	"os"
	"runtime"
	"strings"
)

// MemoryLister returns one "pid bytes" line per requested pid. Pids
// missing from the answer are simply gone, the caller treats them as
// zero usage.
type MemoryLister func(ctx context.Context, pids []string) (string, error)

// ShortHostname returns the host name cut at the first dot
func ShortHostname() (string, error) {
	hostname, err := os.Hostname()
	if err != nil {
		return "", err
	}
	if i := strings.Index(hostname, "."); i >= 0 {
		hostname = hostname[:i]
	}
	return hostname, nil
}

// PlatformName returns the OS family name of the running host
func PlatformName() string {
	return platformName(runtime.GOOS)
}

func platformName(goos string) string {
	switch goos {
	case "linux":
		return "Linux"
	case "solaris":
		return "SunOS"
	case "aix":
		return "AIX"
	case "windows":
		return "Windows"
	case "darwin":
		return "Darwin"
	default:
		if goos == "" {
			return ""
		}
		return strings.ToUpper(goos[:1]) + goos[1:]
	}
}
