package registry

// ProcessKind classifies a monitored unit
type ProcessKind string

const (
	KindExtract       ProcessKind = "EXTRACT"
	KindReplicat      ProcessKind = "REPLICAT"
	KindManager       ProcessKind = "MANAGER"
	KindServiceDaemon ProcessKind = "SERVICE_DAEMON"
)

// Field defaults and pid sentinels. Both sentinels are excluded from the
// OS memory lookup.
const (
	NoTrail    = "NONE"
	NoPosition = "0"
	PIDUnknown = "-1" // detail-pass record without a Process ID line
	PIDDaemon  = "0"  // service daemon, pid not reported by the console
)

// ProcessRecord holds the identity and state of one monitored unit.
// Position markers stay strings end-to-end: the console reports them as
// opaque decimal text and the metric protocol re-emits them verbatim.
type ProcessRecord struct {
	Name                  string
	Kind                  ProcessKind
	Status                string // empty means the console reported none
	TrailName             string
	TrailType             string
	Sequence              string
	RelativeByteAddress   string
	SystemChangeNumber    string
	CheckpointLagSeconds  *int64
	ReplicationLagSeconds *int64
	ProcessID             string
	ResidentMemoryBytes   int64
}

// NewProcessRecord creates a record with the documented defaults
func NewProcessRecord(name string, kind ProcessKind) *ProcessRecord {
	return &ProcessRecord{
		Name:                name,
		Kind:                kind,
		TrailName:           NoTrail,
		TrailType:           NoTrail,
		Sequence:            NoPosition,
		RelativeByteAddress: NoPosition,
		SystemChangeNumber:  NoPosition,
		ProcessID:           PIDUnknown,
	}
}

// SetCheckpointLag attaches a checkpoint lag value
func (r *ProcessRecord) SetCheckpointLag(seconds int64) {
	r.CheckpointLagSeconds = &seconds
}

// SetReplicationLag attaches a replication lag value
func (r *ProcessRecord) SetReplicationLag(seconds int64) {
	r.ReplicationLagSeconds = &seconds
}

// Registry is the insertion-ordered process table built from one report
// snapshot. Order matters: the discovery document and every per-process
// metric group iterate in first-seen order so repeated polls of an
// unchanged instance serialize identically.
type Registry struct {
	records []*ProcessRecord
	index   map[string]int
}

func NewRegistry() *Registry {
	return &Registry{
		index: make(map[string]int),
	}
}

// Upsert inserts a record, or replaces an existing record of the same name
// while keeping its original position.
func (reg *Registry) Upsert(record *ProcessRecord) {
	if pos, ok := reg.index[record.Name]; ok {
		reg.records[pos] = record
		return
	}
	reg.index[record.Name] = len(reg.records)
	reg.records = append(reg.records, record)
}

// Lookup returns the record for a process name
func (reg *Registry) Lookup(name string) (*ProcessRecord, bool) {
	pos, ok := reg.index[name]
	if !ok {
		return nil, false
	}
	return reg.records[pos], true
}

// Records returns all records in insertion order. The slice is shared;
// callers mutate records in place between pipeline stages.
func (reg *Registry) Records() []*ProcessRecord {
	return reg.records
}

// Names returns all process names in insertion order
func (reg *Registry) Names() []string {
	names := make([]string, len(reg.records))
	for i, record := range reg.records {
		names[i] = record.Name
	}
	return names
}

func (reg *Registry) Len() int {
	return len(reg.records)
}
