package console

import (
	"strings"
	"testing"

	"github.com/core-tools/ogg-monitor/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const classicScript = `shell printf "\n==== INFO * SECTION START ====\n"
info * detail
shell printf "\n==== INFO * SECTION END ====\n"
shell printf "\n==== INFO ALL SECTION START ====\n"
info all
shell printf "\n==== INFO ALL SECTION END ====\n"
shell printf "\n==== GETLAG SECTION START ====\n"
send * getlag
shell printf "\n==== GETLAG SECTION END ====\n"
shell printf "\n==== MANAGER SECTION START ====\n"
info mgr
shell printf "\n==== MANAGER SECTION END ====\n"
exit
`

func TestBuildScript_Classic(t *testing.T) {
	installation := &Installation{Architecture: ArchitectureClassic, ConsolePath: "/ogg/ggsci"}

	script, err := BuildScript(installation, "srv1", Credentials{})
	require.NoError(t, err)

	assert.Equal(t, classicScript, script)
}

func TestBuildScript_Microservices(t *testing.T) {
	installation := &Installation{
		Architecture:   ArchitectureMicroservices,
		ConsolePath:    "/ogg/bin/adminclient",
		ServiceManager: &ServiceManagerInfo{Port: 9001, SecurityEnabled: true},
	}

	script, err := BuildScript(installation, "srv1", Credentials{Username: "oggmonitor", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "connect https://srv1:9001/ as oggmonitor password secret !\n"+classicScript, script)
}

func TestBuildScript_MicroservicesPlainHTTP(t *testing.T) {
	installation := &Installation{
		Architecture:   ArchitectureMicroservices,
		ServiceManager: &ServiceManagerInfo{Port: 7820},
	}

	script, err := BuildScript(installation, "db7", Credentials{Username: "mon", Password: "pw"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(script, "connect http://db7:7820/ as mon password pw !\n"))
}

func TestBuildScript_MicroservicesRequiresCredentials(t *testing.T) {
	installation := &Installation{
		Architecture:   ArchitectureMicroservices,
		ServiceManager: &ServiceManagerInfo{Port: 7820},
	}

	_, err := BuildScript(installation, "srv1", Credentials{Username: "mon"})

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestBuildScript_MicroservicesRequiresServiceManager(t *testing.T) {
	installation := &Installation{Architecture: ArchitectureMicroservices}

	_, err := BuildScript(installation, "srv1", Credentials{Username: "mon", Password: "pw"})

	assert.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}
