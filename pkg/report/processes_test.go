package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/core-tools/ogg-monitor/pkg/errors"
	"github.com/core-tools/ogg-monitor/pkg/registry"
)

func buildCanonicalRegistry(t *testing.T) *registry.Registry {
	t.Helper()
	lines := canonicalLines()

	detail, err := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
	require.NoError(t, err)
	summary, err := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)
	require.NoError(t, err)

	reg, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
	require.NoError(t, err)
	return reg
}

func TestBuildRegistry_InsertionOrder(t *testing.T) {
	reg := buildCanonicalRegistry(t)

	assert.Equal(t, []string{"EXT1", "REP1", "MANAGER"}, reg.Names())
}

func TestBuildRegistry_ExtractRecord(t *testing.T) {
	reg := buildCanonicalRegistry(t)

	ext, ok := reg.Lookup("EXT1")
	require.True(t, ok)

	assert.Equal(t, registry.KindExtract, ext.Kind)
	assert.Equal(t, "RUNNING", ext.Status)
	assert.Equal(t, "1001", ext.ProcessID)
	assert.Equal(t, "./dirdat/aa", ext.TrailName)
	assert.Equal(t, "12", ext.Sequence)
	assert.Equal(t, "3456", ext.RelativeByteAddress)
	assert.Equal(t, "EXTTRAIL", ext.TrailType)
	assert.Equal(t, "8986202", ext.SystemChangeNumber)
	require.NotNil(t, ext.CheckpointLagSeconds)
	assert.Equal(t, int64(10), *ext.CheckpointLagSeconds)
}

func TestBuildRegistry_ReplicatRecord(t *testing.T) {
	reg := buildCanonicalRegistry(t)

	rep, ok := reg.Lookup("REP1")
	require.True(t, ok)

	assert.Equal(t, registry.KindReplicat, rep.Kind)
	assert.Equal(t, "RUNNING", rep.Status)
	assert.Equal(t, "1002", rep.ProcessID)
	assert.Equal(t, "./dirdat/rt", rep.TrailName)
	assert.Equal(t, "42", rep.Sequence, "leading zeros dropped from the checkpoint file digit run")
	assert.Equal(t, "1024", rep.RelativeByteAddress)
	assert.Equal(t, "LOCALTRAIL", rep.TrailType)
	require.NotNil(t, rep.CheckpointLagSeconds)
	assert.Equal(t, int64(90), *rep.CheckpointLagSeconds)
}

func TestBuildRegistry_ManagerDaemonRecord(t *testing.T) {
	reg := buildCanonicalRegistry(t)

	mgr, ok := reg.Lookup("MANAGER")
	require.True(t, ok)

	assert.Equal(t, registry.KindManager, mgr.Kind)
	assert.Equal(t, "RUNNING", mgr.Status)
	assert.Equal(t, registry.PIDDaemon, mgr.ProcessID)
	assert.Equal(t, registry.NoTrail, mgr.TrailName)
	assert.Equal(t, registry.NoTrail, mgr.TrailType)
	assert.Equal(t, registry.NoPosition, mgr.Sequence)
	assert.Nil(t, mgr.CheckpointLagSeconds)
}

func TestBuildRegistry_MicroservicesDaemons(t *testing.T) {
	text := MarkerDetailStart + "\n" +
		"EXTRACT    EXT1      Last Started 2024-08-01 10:00   Status RUNNING\n" +
		MarkerDetailEnd + "\n" +
		MarkerSummaryStart + "\n" +
		"ADMINSRVR  RUNNING\n" +
		"DISTSRVR   RUNNING\n" +
		"PMSRVR     STOPPED\n" +
		"RECVSRVR   RUNNING\n" +
		MarkerSummaryEnd + "\n"
	lines := PrepareLines(text)

	detail, err := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
	require.NoError(t, err)
	summary, err := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)
	require.NoError(t, err)

	reg, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
	require.NoError(t, err)

	assert.Equal(t, []string{"EXT1", "ADMINSRVR", "DISTSRVR", "PMSRVR", "RECVSRVR"}, reg.Names())

	pmsrvr, ok := reg.Lookup("PMSRVR")
	require.True(t, ok)
	assert.Equal(t, registry.KindServiceDaemon, pmsrvr.Kind)
	assert.Equal(t, "STOPPED", pmsrvr.Status)
}

func TestBuildRegistry_StatusMissingIsRecorded(t *testing.T) {
	text := MarkerDetailStart + "\n" +
		"EXTRACT    EXT2      Last Started 2024-08-01 10:00   Status\n" +
		MarkerDetailEnd + "\n" +
		MarkerSummaryStart + "\n" +
		MarkerSummaryEnd + "\n"
	lines := PrepareLines(text)

	detail, _ := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
	summary, _ := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)

	reg, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
	require.NoError(t, err)

	ext, ok := reg.Lookup("EXT2")
	require.True(t, ok)
	assert.Equal(t, "", ext.Status)
	assert.Equal(t, registry.PIDUnknown, ext.ProcessID)
}

func TestBuildRegistry_StoppedProcessKeepsDefaults(t *testing.T) {
	text := MarkerDetailStart + "\n" +
		"REPLICAT   REP9      Last Started 2024-07-01 09:00   Status ABENDED\n" +
		MarkerDetailEnd + "\n" +
		MarkerSummaryStart + "\n" +
		MarkerSummaryEnd + "\n"
	lines := PrepareLines(text)

	detail, _ := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
	summary, _ := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)

	reg, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
	require.NoError(t, err)

	rep, ok := reg.Lookup("REP9")
	require.True(t, ok)
	assert.Equal(t, "ABENDED", rep.Status)
	assert.Equal(t, registry.NoTrail, rep.TrailName)
	assert.Equal(t, registry.NoPosition, rep.Sequence)
	assert.Equal(t, registry.PIDUnknown, rep.ProcessID)
}

func TestBuildRegistry_MalformedLinesAreFatal(t *testing.T) {
	tests := []struct {
		name   string
		detail string
	}{
		{
			name:   "trail table row too short",
			detail: "EXTRACT EXT1 Status RUNNING\nTrail Name Seqno RBA Max MB Trail Type\n./dirdat/aa 12\n",
		},
		{
			name:   "checkpoint file without digits",
			detail: "REPLICAT REP1 Status RUNNING\nLog Read Checkpoint File ./dirdat/rt\nnext line RBA 10\n",
		},
		{
			name:   "checkpoint lag not a clock",
			detail: "EXTRACT EXT1 Status RUNNING\nCheckpoint Lag garbage (updated)\n",
		},
		{
			name:   "scn without parens",
			detail: "EXTRACT EXT1 Status RUNNING\nRecovery position SCN unavailable\n",
		},
		{
			name:   "process id line too short",
			detail: "EXTRACT EXT1 Status RUNNING\nProcess ID\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text := MarkerDetailStart + "\n" + tt.detail +
				MarkerDetailEnd + "\n" +
				MarkerSummaryStart + "\n" +
				MarkerSummaryEnd + "\n"
			lines := PrepareLines(text)

			detail, _ := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
			summary, _ := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)

			_, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
			assert.True(t, errors.IsProcessSectionParseError(err))
		})
	}
}

func TestBuildRegistry_MatcherLinesBeforeFirstProcessAreIgnored(t *testing.T) {
	text := MarkerDetailStart + "\n" +
		"GGSCI (srv1) 2> info * detail\n" +
		"EXTRACT EXT1 Status RUNNING\n" +
		MarkerDetailEnd + "\n" +
		MarkerSummaryStart + "\n" +
		MarkerSummaryEnd + "\n"
	lines := PrepareLines(text)

	detail, _ := FindSection(lines, MarkerDetailStart, MarkerDetailEnd)
	summary, _ := FindSection(lines, MarkerSummaryStart, MarkerSummaryEnd)

	reg, err := BuildRegistry(lines, detail, summary, &ReportMockLogger{})
	require.NoError(t, err)
	assert.Equal(t, []string{"EXT1"}, reg.Names())
}
