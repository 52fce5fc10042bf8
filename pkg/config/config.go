package config

import (
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/identity"

	"gopkg.in/yaml.v3"
)

// Config represents the top-level configuration file structure
type Config struct {
	Environment    Environment         `yaml:"environment,omitempty"`
	Zabbix         ZabbixConfig        `yaml:"zabbix"`
	HostNaming     identity.NamingMode `yaml:"host_naming,omitempty"`
	Log            LogConfig           `yaml:"log"`
	LockFile       string              `yaml:"lock_file,omitempty"`
	Console        ConsoleConfig       `yaml:"console"`
	CMDBExportPath string              `yaml:"cmdb_export_path,omitempty"`
}

// Environment identifies the landscape the monitored installation belongs to
type Environment string

const (
	EnvironmentProd    Environment = "prod"
	EnvironmentPreprod Environment = "preprod"
	EnvironmentTest    Environment = "test"
	EnvironmentDev     Environment = "dev"
)

// ZabbixConfig represents metric delivery configuration
type ZabbixConfig struct {
	Servers     string        `yaml:"servers,omitempty"` // comma-separated
	SenderPath  string        `yaml:"sender_path,omitempty"`
	SendTimeout time.Duration `yaml:"send_timeout,omitempty"`
}

// ServerList returns the configured servers split on commas, with empty
// entries dropped.
func (c ZabbixConfig) ServerList() []string {
	var servers []string
	for _, server := range strings.Split(c.Servers, ",") {
		server = strings.TrimSpace(server)
		if server == "" {
			continue
		}
		servers = append(servers, server)
	}
	return servers
}

// LogConfig represents agent logging configuration
type LogConfig struct {
	Dir   string `yaml:"dir,omitempty"`
	Level string `yaml:"level,omitempty"`
}

// ConsoleConfig represents command console invocation configuration
type ConsoleConfig struct {
	Timeout  time.Duration `yaml:"timeout,omitempty"`
	Username string        `yaml:"username,omitempty"` // microservices connect credentials
	Password string        `yaml:"password,omitempty"`
}

// NewDefaultConfig returns a configuration populated with defaults only
func NewDefaultConfig() *Config {
	var config Config
	setConfigDefaults(&config)
	return &config
}

// LoadConfigFromFile loads agent configuration from a YAML file
func LoadConfigFromFile(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, errors.NewIOError("failed to read configuration file", err).WithContext("filename", filename)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.NewConfigError("failed to parse YAML configuration", err).WithContext("filename", filename)
	}

	// Set defaults
	setConfigDefaults(&config)

	return &config, nil
}

// Overrides carries command line values that take precedence over file values
type Overrides struct {
	Environment    string
	ZabbixServers  string
	Debug          bool
	LogDir         string
	SenderPath     string
	CMDBExportPath string
}

// ApplyOverrides merges command line values into the configuration
func ApplyOverrides(config *Config, overrides Overrides) {
	if overrides.Environment != "" {
		config.Environment = Environment(overrides.Environment)
	}
	if overrides.ZabbixServers != "" {
		config.Zabbix.Servers = overrides.ZabbixServers
	}
	if overrides.Debug {
		config.Log.Level = "debug"
	}
	if overrides.LogDir != "" {
		config.Log.Dir = overrides.LogDir
	}
	if overrides.SenderPath != "" {
		config.Zabbix.SenderPath = overrides.SenderPath
	}
	if overrides.CMDBExportPath != "" {
		config.CMDBExportPath = overrides.CMDBExportPath
	}
}

// ValidateConfig validates the entire configuration structure
func ValidateConfig(config *Config) error {
	if config == nil {
		return errors.NewValidationError("configuration cannot be nil", nil)
	}

	if err := validateEnvironment(config.Environment); err != nil {
		return errors.NewValidationError("invalid environment", err)
	}

	if err := validateZabbixConfig(&config.Zabbix); err != nil {
		return errors.NewValidationError("invalid zabbix configuration", err)
	}

	if err := validateHostNaming(config.HostNaming); err != nil {
		return errors.NewValidationError("invalid host naming configuration", err)
	}

	if err := validateLogConfig(&config.Log); err != nil {
		return errors.NewValidationError("invalid log configuration", err)
	}

	if err := validateConsoleConfig(&config.Console); err != nil {
		return errors.NewValidationError("invalid console configuration", err)
	}

	if config.LockFile == "" {
		return errors.NewValidationError("lock file path cannot be empty", nil)
	}

	return nil
}

// setConfigDefaults applies default values to configuration
func setConfigDefaults(config *Config) {
	if config.Zabbix.SenderPath == "" {
		config.Zabbix.SenderPath = "/usr/bin/zabbix_sender"
	}
	if config.Zabbix.SendTimeout == 0 {
		config.Zabbix.SendTimeout = 30 * time.Second
	}
	if config.HostNaming == "" {
		config.HostNaming = identity.ModeHostname
	}
	if config.Log.Dir == "" {
		config.Log.Dir = "/tmp"
	}
	if config.Log.Level == "" {
		config.Log.Level = "info"
	}
	if config.LockFile == "" {
		config.LockFile = "/tmp/zbx_ogg_monitor.lock"
	}
	if config.Console.Timeout == 0 {
		config.Console.Timeout = 120 * time.Second
	}
}

// Validation functions

func validateEnvironment(environment Environment) error {
	if environment == "" {
		return errors.NewValidationError("environment is required", nil).
			WithContext("valid_environments", "prod, preprod, test, dev")
	}

	validEnvironments := []Environment{EnvironmentProd, EnvironmentPreprod, EnvironmentTest, EnvironmentDev}
	for _, validEnvironment := range validEnvironments {
		if environment == validEnvironment {
			return nil
		}
	}

	return errors.NewValidationError(
		fmt.Sprintf("unsupported environment: %s", environment),
		nil,
	).WithContext("valid_environments", "prod, preprod, test, dev")
}

func validateZabbixConfig(config *ZabbixConfig) error {
	if len(config.ServerList()) == 0 {
		return errors.NewValidationError("at least one zabbix server is required", nil)
	}

	if config.SenderPath == "" {
		return errors.NewValidationError("zabbix sender path cannot be empty", nil)
	}

	if config.SendTimeout <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("invalid send timeout: %v", config.SendTimeout),
			nil,
		)
	}

	return nil
}

func validateHostNaming(mode identity.NamingMode) error {
	validModes := []identity.NamingMode{identity.ModeHostname, identity.ModeInstanceTag}
	for _, validMode := range validModes {
		if mode == validMode {
			return nil
		}
	}

	return errors.NewValidationError(
		fmt.Sprintf("unsupported host naming mode: %s", mode),
		nil,
	).WithContext("supported_modes", "hostname, instance-tag")
}

func validateLogConfig(config *LogConfig) error {
	if config.Dir == "" {
		return errors.NewValidationError("log directory cannot be empty", nil)
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	valid := false
	for _, level := range validLogLevels {
		if config.Level == level {
			valid = true
			break
		}
	}
	if !valid {
		return errors.NewValidationError(
			fmt.Sprintf("invalid log level: %s", config.Level),
			nil,
		).WithContext("valid_levels", "debug, info, warn, error")
	}

	return nil
}

func validateConsoleConfig(config *ConsoleConfig) error {
	if config.Timeout <= 0 {
		return errors.NewValidationError(
			fmt.Sprintf("invalid console timeout: %v", config.Timeout),
			nil,
		)
	}

	// Credentials travel as a pair for microservices installations
	if (config.Username == "") != (config.Password == "") {
		return errors.NewValidationError("console username and password must be set together", nil)
	}

	return nil
}
