package osquery

import (
	"context"
	"os"
	"runtime"
	"strconv"
	"strings"
	"testing"

	"github.com/core-tools/ogg-monitor/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type osqueryMockLogger struct{}

func (m *osqueryMockLogger) Debugf(format string, args ...interface{}) {}
func (m *osqueryMockLogger) Infof(format string, args ...interface{})  {}
func (m *osqueryMockLogger) Warnf(format string, args ...interface{})  {}
func (m *osqueryMockLogger) Errorf(format string, args ...interface{}) {}

func TestShortHostname(t *testing.T) {
	hostname, err := ShortHostname()
	require.NoError(t, err)

	assert.NotEmpty(t, hostname)
	assert.NotContains(t, hostname, ".")
}

func TestPlatformName(t *testing.T) {
	tests := []struct {
		goos string
		want string
	}{
		{"linux", "Linux"},
		{"solaris", "SunOS"},
		{"aix", "AIX"},
		{"windows", "Windows"},
		{"darwin", "Darwin"},
		{"freebsd", "Freebsd"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			assert.Equal(t, tt.want, platformName(tt.goos))
		})
	}
}

func TestNormalizePSListing(t *testing.T) {
	raw := "  1001  250000\n 1002 98304\n\n"

	listing, err := NormalizePSListing(raw)
	require.NoError(t, err)

	assert.Equal(t, "1001 256000000\n1002 100663296", listing)
}

func TestNormalizePSListing_Empty(t *testing.T) {
	listing, err := NormalizePSListing("")
	require.NoError(t, err)

	assert.Empty(t, listing)
}

func TestNormalizePSListing_Malformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"missing_vsz", "1001\n"},
		{"vsz_not_numeric", "1001 lots\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizePSListing(tt.raw)

			assert.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
		})
	}
}

func assertSingleOwnPidLine(t *testing.T, listing string, ownPid string) {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(listing), "\n")
	require.Len(t, lines, 1)

	fields := strings.Fields(lines[0])
	require.Len(t, fields, 2)
	assert.Equal(t, ownPid, fields[0])

	bytes, err := strconv.ParseInt(fields[1], 10, 64)
	require.NoError(t, err)
	assert.Greater(t, bytes, int64(0))
}

func TestPSMemoryLister_OwnProcess(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test - relies on ps")
	}

	lister := NewPSMemoryLister(&osqueryMockLogger{})
	ownPid := strconv.Itoa(os.Getpid())

	listing, err := lister(context.Background(), []string{ownPid})
	require.NoError(t, err)

	assertSingleOwnPidLine(t, listing, ownPid)
}

func TestPSMemoryLister_NoPids(t *testing.T) {
	lister := NewPSMemoryLister(&osqueryMockLogger{})

	listing, err := lister(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, listing)
}

func TestPSMemoryLister_NilContext(t *testing.T) {
	lister := NewPSMemoryLister(&osqueryMockLogger{})

	_, err := lister(nil, []string{"1"})

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestGopsutilMemoryLister_OwnProcess(t *testing.T) {
	lister := NewGopsutilMemoryLister(&osqueryMockLogger{})
	ownPid := strconv.Itoa(os.Getpid())

	listing, err := lister(context.Background(), []string{ownPid})
	require.NoError(t, err)

	assertSingleOwnPidLine(t, listing, ownPid)
}

func TestGopsutilMemoryLister_MissingPidSkipped(t *testing.T) {
	lister := NewGopsutilMemoryLister(&osqueryMockLogger{})

	listing, err := lister(context.Background(), []string{"2147483647"})
	require.NoError(t, err)

	assert.Empty(t, listing)
}

func TestGopsutilMemoryLister_InvalidPid(t *testing.T) {
	lister := NewGopsutilMemoryLister(&osqueryMockLogger{})

	_, err := lister(context.Background(), []string{"EXT1"})

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
