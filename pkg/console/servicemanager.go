package console

import (
	"encoding/json"
	"io/fs"
	"io/ioutil"
	"path/filepath"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/errors"
)

const serviceManagerConfigName = "ServiceManager-config.dat"

// ServiceManagerInfo holds the connection settings of the Service Manager
// of a microservices deployment.
type ServiceManagerInfo struct {
	Port            int
	SecurityEnabled bool
}

// Scheme returns the URL scheme matching the security setting
func (i *ServiceManagerInfo) Scheme() string {
	if i.SecurityEnabled {
		return "https"
	}
	return "http"
}

// serviceManagerConfig mirrors the relevant part of the JSON descriptor
type serviceManagerConfig struct {
	Config struct {
		Network struct {
			ServiceListeningPort int `json:"serviceListeningPort"`
		} `json:"network"`
		Security bool `json:"security"`
	} `json:"config"`
}

// FindServiceManagerConfig returns the most recently modified
// ServiceManager-config.dat under root. Deployments keep one descriptor
// per service deployment, the newest reflects the current settings.
func FindServiceManagerConfig(root string) (string, error) {
	var newestPath string
	var newestTime time.Time

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != serviceManagerConfigName {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if newestPath == "" || info.ModTime().After(newestTime) {
			newestPath = path
			newestTime = info.ModTime()
		}
		return nil
	})
	if err != nil {
		return "", errors.NewIOError("failed to scan for Service Manager config file", err).WithContext("root", root)
	}

	if newestPath == "" {
		return "", errors.NewConfigError("cannot find Service Manager config file", nil).WithContext("root", root)
	}

	return newestPath, nil
}

// LoadServiceManagerInfo parses the Service Manager JSON descriptor
func LoadServiceManagerInfo(path string) (*ServiceManagerInfo, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, errors.NewIOError("failed to read Service Manager config file", err).WithContext("path", path)
	}

	var config serviceManagerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.NewConfigError("cannot load data from Service Manager config file", err).WithContext("path", path)
	}

	if config.Config.Network.ServiceListeningPort == 0 {
		return nil, errors.NewConfigError("Service Manager config file has no listening port", nil).WithContext("path", path)
	}

	return &ServiceManagerInfo{
		Port:            config.Config.Network.ServiceListeningPort,
		SecurityEnabled: config.Config.Security,
	}, nil
}
