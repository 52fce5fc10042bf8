package console

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/core-tools/ogg-monitor/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testHomes() Homes {
	return Homes{OGGHome: "/ogg", OracleHome: "/oracle"}
}

func TestCapture_EchoesStdin(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test - relies on /bin/cat")
	}

	installation := &Installation{Architecture: ArchitectureClassic, ConsolePath: "/bin/cat"}
	capture := NewCapture(installation, testHomes(), &consoleMockLogger{})

	output, err := capture(context.Background(), "info all\nexit\n")
	require.NoError(t, err)

	assert.Equal(t, "info all\nexit\n", output)
}

func TestCapture_MissingBinary(t *testing.T) {
	installation := &Installation{
		Architecture: ArchitectureClassic,
		ConsolePath:  filepath.Join(t.TempDir(), "ggsci"),
	}
	capture := NewCapture(installation, testHomes(), &consoleMockLogger{})

	_, err := capture(context.Background(), "exit\n")

	assert.Error(t, err)
	assert.True(t, errors.IsProcessError(err))
}

func TestCapture_NonzeroExit(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test - relies on shell scripts")
	}

	consolePath := filepath.Join(t.TempDir(), "ggsci")
	require.NoError(t, os.WriteFile(consolePath, []byte("#!/bin/sh\necho broken\nexit 3\n"), 0755))

	installation := &Installation{Architecture: ArchitectureClassic, ConsolePath: consolePath}
	capture := NewCapture(installation, testHomes(), &consoleMockLogger{})

	_, err := capture(context.Background(), "exit\n")

	assert.Error(t, err)
	assert.True(t, errors.IsProcessError(err))
}

func TestCapture_Timeout(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Skipping test - relies on shell scripts")
	}

	consolePath := filepath.Join(t.TempDir(), "ggsci")
	require.NoError(t, os.WriteFile(consolePath, []byte("#!/bin/sh\nexec sleep 10\n"), 0755))

	installation := &Installation{Architecture: ArchitectureClassic, ConsolePath: consolePath}
	capture := NewCapture(installation, testHomes(), &consoleMockLogger{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_, err := capture(ctx, "exit\n")

	assert.Error(t, err)
	assert.True(t, errors.IsProcessError(err))
}

func TestCapture_NilContext(t *testing.T) {
	installation := &Installation{Architecture: ArchitectureClassic, ConsolePath: "/bin/cat"}
	capture := NewCapture(installation, testHomes(), &consoleMockLogger{})

	_, err := capture(nil, "exit\n")

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
