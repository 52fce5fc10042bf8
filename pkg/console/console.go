// Package console locates the GoldenGate command console of an
// installation, prepares its runtime environment and captures the
// output of a command script fed to it on stdin.
package console

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
)

// Architecture of the monitored GoldenGate installation
type Architecture string

const (
	// ArchitectureClassic is a classic installation driven by ggsci
	ArchitectureClassic Architecture = "classic"
	// ArchitectureMicroservices is a microservices installation driven by adminclient
	ArchitectureMicroservices Architecture = "microservices"
)

// Homes carries the installation paths taken from the process environment
type Homes struct {
	OGGHome    string // OGG_HOME
	OracleHome string // ORACLE_HOME
	VarHome    string // OGG_VAR_HOME, microservices deployments only
}

// Installation describes a detected GoldenGate installation and its console
type Installation struct {
	Architecture   Architecture
	ConsolePath    string
	ServiceManager *ServiceManagerInfo // microservices only
}

// Detect identifies the installation architecture by probing for the
// console binaries under OGG_HOME. Microservices installations
// additionally require OGG_VAR_HOME and a readable Service Manager
// descriptor.
func Detect(homes Homes, logger logging.Logger) (*Installation, error) {
	if homes.OGGHome == "" {
		return nil, errors.NewValidationError("OGG_HOME is not set", nil)
	}
	if homes.OracleHome == "" {
		return nil, errors.NewValidationError("ORACLE_HOME is not set", nil)
	}

	ggsciPath := filepath.Join(homes.OGGHome, "ggsci")
	if isExecutable(ggsciPath) {
		logger.Debugf("ggsci found, architecture: %s", ArchitectureClassic)
		return &Installation{
			Architecture: ArchitectureClassic,
			ConsolePath:  ggsciPath,
		}, nil
	}

	adminclientPath := filepath.Join(homes.OGGHome, "bin", "adminclient")
	if isExecutable(adminclientPath) {
		logger.Debugf("adminclient found, architecture: %s", ArchitectureMicroservices)

		if homes.VarHome == "" {
			return nil, errors.NewValidationError(
				"detected microservices environment, but OGG_VAR_HOME is not set",
				nil,
			)
		}

		configPath, err := FindServiceManagerConfig(homes.VarHome)
		if err != nil {
			return nil, err
		}
		logger.Debugf("Service Manager config file: %s", configPath)

		serviceManager, err := LoadServiceManagerInfo(configPath)
		if err != nil {
			return nil, err
		}

		return &Installation{
			Architecture:   ArchitectureMicroservices,
			ConsolePath:    adminclientPath,
			ServiceManager: serviceManager,
		}, nil
	}

	return nil, errors.NewValidationError(
		"neither ggsci nor adminclient console program found",
		nil,
	).WithContext("ogg_home", homes.OGGHome)
}

func isExecutable(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular() && info.Mode()&0111 != 0
}

// Environ returns the parent environment extended with the search and
// library paths the console binaries need.
func Environ(homes Homes, parent []string) []string {
	return environ(homes, parent, libraryPathVariable(runtime.GOOS))
}

func environ(homes Homes, parent []string, libraryPathVar string) []string {
	env := make([]string, len(parent))
	copy(env, parent)

	env = setEnv(env, "OGG_HOME", homes.OGGHome)
	env = setEnv(env, "ORACLE_HOME", homes.OracleHome)
	if homes.VarHome != "" {
		env = setEnv(env, "OGG_VAR_HOME", homes.VarHome)
	}

	path := strings.Join([]string{
		homes.OracleHome + "/bin",
		homes.OracleHome + "/lib",
		homes.OGGHome,
		homes.OGGHome + "/bin",
		getEnv(env, "PATH"),
	}, ":")
	env = setEnv(env, "PATH", path)

	if libraryPathVar != "" {
		elements := []string{
			homes.OracleHome + "/lib",
			homes.OGGHome,
			homes.OGGHome + "/lib",
			"/usr/lib",
			"/lib",
		}
		if existing := getEnv(env, libraryPathVar); existing != "" {
			elements = append([]string{existing}, elements...)
		}
		env = setEnv(env, libraryPathVar, strings.Join(elements, ":"))
	}

	return env
}

func libraryPathVariable(goos string) string {
	switch goos {
	case "linux", "solaris":
		return "LD_LIBRARY_PATH"
	case "aix":
		return "LIBPATH"
	default:
		return ""
	}
}

func getEnv(env []string, key string) string {
	prefix := key + "="
	for _, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			return entry[len(prefix):]
		}
	}
	return ""
}

func setEnv(env []string, key, value string) []string {
	prefix := key + "="
	for i, entry := range env {
		if strings.HasPrefix(entry, prefix) {
			env[i] = prefix + value
			return env
		}
	}
	return append(env, prefix+value)
}
