// Package cmdb exports the polled inventory as a JSON document for
// configuration management systems.
package cmdb

import (
	"encoding/json"
	"os"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/logging"
	"github.com/core-tools/ogg-monitor/pkg/metrics"
	"github.com/core-tools/ogg-monitor/pkg/registry"
)

// Document is the inventory payload. The uppercase keys are the
// consumer's contract.
type Document struct {
	InstanceName string                  `json:"INSTANCE_NAME"`
	Environment  string                  `json:"ENVIRONMENT"`
	Version      string                  `json:"VERSION"`
	Database     string                  `json:"DATABASE"`
	Platform     string                  `json:"PLATFORM"`
	Hostname     string                  `json:"HOSTNAME"`
	Processes    map[string]ProcessEntry `json:"PROCESSES"`
}

// ProcessEntry describes one monitored unit in the inventory
type ProcessEntry struct {
	Trail     string `json:"TRAIL"`
	TrailType string `json:"TRAIL_TYPE"`
}

// NewDocument builds the inventory from the finished registry and the
// run-wide instance facts.
func NewDocument(reg *registry.Registry, info metrics.InstanceInfo, shortHostname string) *Document {
	processes := make(map[string]ProcessEntry, reg.Len())
	for _, record := range reg.Records() {
		processes[record.Name] = ProcessEntry{
			Trail:     record.TrailName,
			TrailType: record.TrailType,
		}
	}

	return &Document{
		InstanceName: info.HostIdentifier,
		Environment:  info.EnvironmentID,
		Version:      info.Version,
		Database:     info.Database,
		Platform:     info.Platform,
		Hostname:     shortHostname,
		Processes:    processes,
	}
}

// Export writes the document to "<basePath>.<instance name>" with mode
// 0644. Callers treat a failed export as a warning, the poll result is
// already delivered by then.
func Export(document *Document, basePath string, logger logging.Logger) error {
	path := basePath + "." + document.InstanceName

	data, err := json.Marshal(document)
	if err != nil {
		return errors.NewInternalError("cannot marshal CMDB document", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return errors.NewIOError("cannot export json to CMDB file", err).WithContext("path", path)
	}
	if err := os.Chmod(path, 0644); err != nil {
		return errors.NewIOError("cannot set CMDB file permissions", err).WithContext("path", path)
	}

	logger.Infof("Inventory exported to %s", path)

	return nil
}
