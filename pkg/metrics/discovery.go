package metrics

import (
	"encoding/json"

	"github.com/core-tools/ogg-monitor/pkg/errors"
)

// discoveryEntry uses the Zabbix low-level-discovery macro as its JSON key
type discoveryEntry struct {
	Process string `json:"{#OGG_PROCESS}"`
}

// DiscoveryDocument enumerates the known process names for server-side
// low-level discovery. Entry order follows registry insertion order.
type DiscoveryDocument struct {
	Data []discoveryEntry `json:"data"`
}

// NewDiscoveryDocument builds the document from ordered process names
func NewDiscoveryDocument(names []string) DiscoveryDocument {
	entries := make([]discoveryEntry, len(names))
	for i, name := range names {
		entries[i] = discoveryEntry{Process: name}
	}
	return DiscoveryDocument{Data: entries}
}

// JSON renders the compact document embedded in the discovery metric
func (d DiscoveryDocument) JSON() (string, error) {
	payload, err := json.Marshal(d)
	if err != nil {
		return "", errors.NewInternalError("cannot marshal discovery document", err)
	}
	return string(payload), nil
}
