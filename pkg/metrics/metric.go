// Package metrics models the agent's output schema: the closed key set,
// the discovery document, and the zabbix_sender line protocol rendering.
// The textual shapes are a compatibility surface consumed by server-side
// item definitions and must not drift.
package metrics

import (
	"fmt"
	"strings"
)

// Key is one of the closed set of metric keys
type Key string

// Per-process keys
const (
	KeyStatus        Key = "status"
	KeyCheckpointLag Key = "chkptlag"
	KeyTrailName     Key = "trail_name"
	KeyTrailType     Key = "trail_type"
	KeySequence      Key = "seq"
	KeyRBA           Key = "rba"
	KeySCN           Key = "scn"
	KeyLag           Key = "lag"
	KeyMemory        Key = "memory"
)

// Instance-level keys
const (
	KeyEnvironmentID Key = "environment_id"
	KeyMemoryUsage   Key = "memory_usage"
	KeyVersion       Key = "version"
	KeyDatabase      Key = "database"
	KeyPlatform      Key = "platform"
	KeyScriptVersion Key = "script_version"

	KeyProcessDiscovery Key = "process.discovery"
)

// Metric is one timestamped observation addressed to the monitoring host.
// Process is empty for instance-level metrics. Raw marks values embedded
// without quoting, the discovery JSON document is the only such value.
type Metric struct {
	Host      string
	Process   string
	Key       Key
	Timestamp int64
	Value     string
	Raw       bool
}

// Render produces the zabbix_sender stdin line:
//
//	<host> ogg.process[<name>,<key>] <ts> "<value>"   per-process
//	<host> ogg.<key> <ts> "<value>"                   instance-level
//	<host> ogg.process.discovery <ts> <json>          discovery, unquoted
func (m Metric) Render() string {
	value := m.Value
	if !m.Raw {
		value = `"` + m.Value + `"`
	}
	if m.Process != "" {
		return fmt.Sprintf("%s ogg.process[%s,%s] %d %s", m.Host, m.Process, m.Key, m.Timestamp, value)
	}
	return fmt.Sprintf("%s ogg.%s %d %s", m.Host, m.Key, m.Timestamp, value)
}

// RenderLines renders a metric list into the newline-joined sender payload
func RenderLines(metrics []Metric) string {
	lines := make([]string, len(metrics))
	for i, metric := range metrics {
		lines[i] = metric.Render()
	}
	return strings.Join(lines, "\n")
}
