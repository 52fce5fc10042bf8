package metrics

import (
	"strconv"

	"github.com/core-tools/ogg-monitor/pkg/registry"
)

// InstanceInfo carries the run-wide facts stamped onto every metric and
// emitted as the fixed instance-level group.
type InstanceInfo struct {
	HostIdentifier string
	Timestamp      int64
	EnvironmentID  string
	Version        string
	Database       string
	Platform       string
	ScriptVersion  string
}

// Serialize drains the finished registry into the ordered metric list.
// Emission order is fixed: discovery, then per-process groups (status,
// checkpoint lag, trail position, replication lag, memory), then the
// instance-level metrics. Optional fields that no resolver populated
// produce no line at all. Serialization reads the registry without
// mutating it, so repeated calls yield identical output.
func Serialize(reg *registry.Registry, info InstanceInfo) ([]Metric, error) {
	records := reg.Records()
	list := make([]Metric, 0, 8*len(records)+7)

	document := NewDiscoveryDocument(reg.Names())
	payload, err := document.JSON()
	if err != nil {
		return nil, err
	}
	list = append(list, Metric{
		Host:      info.HostIdentifier,
		Key:       KeyProcessDiscovery,
		Timestamp: info.Timestamp,
		Value:     payload,
		Raw:       true,
	})

	processMetric := func(process string, key Key, value string) Metric {
		return Metric{
			Host:      info.HostIdentifier,
			Process:   process,
			Key:       key,
			Timestamp: info.Timestamp,
			Value:     value,
		}
	}

	for _, record := range records {
		if record.Status != "" {
			list = append(list, processMetric(record.Name, KeyStatus, record.Status))
		}
	}
	for _, record := range records {
		if record.CheckpointLagSeconds != nil {
			value := strconv.FormatInt(*record.CheckpointLagSeconds, 10)
			list = append(list, processMetric(record.Name, KeyCheckpointLag, value))
		}
	}
	for _, record := range records {
		list = append(list,
			processMetric(record.Name, KeyTrailName, record.TrailName),
			processMetric(record.Name, KeyTrailType, record.TrailType),
			processMetric(record.Name, KeySequence, record.Sequence),
			processMetric(record.Name, KeyRBA, record.RelativeByteAddress),
			processMetric(record.Name, KeySCN, record.SystemChangeNumber),
		)
	}
	for _, record := range records {
		if record.ReplicationLagSeconds != nil {
			value := strconv.FormatInt(*record.ReplicationLagSeconds, 10)
			list = append(list, processMetric(record.Name, KeyLag, value))
		}
	}
	for _, record := range records {
		value := strconv.FormatInt(record.ResidentMemoryBytes, 10)
		list = append(list, processMetric(record.Name, KeyMemory, value))
	}

	instanceMetric := func(key Key, value string) Metric {
		return Metric{
			Host:      info.HostIdentifier,
			Key:       key,
			Timestamp: info.Timestamp,
			Value:     value,
		}
	}
	list = append(list,
		instanceMetric(KeyEnvironmentID, info.EnvironmentID),
		instanceMetric(KeyMemoryUsage, strconv.FormatInt(reg.TotalMemoryBytes(), 10)),
		instanceMetric(KeyVersion, info.Version),
		instanceMetric(KeyDatabase, info.Database),
		instanceMetric(KeyPlatform, info.Platform),
		instanceMetric(KeyScriptVersion, info.ScriptVersion),
	)

	return list, nil
}
