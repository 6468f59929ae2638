package commands

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gvmass/internal/outreach"
	"gvmass/lib/configutil"

	"github.com/stretchr/testify/require"
)

func TestConfigDurations(t *testing.T) {
	require.Equal(t, outreach.DefaultSendInterval, Config{}.sendInterval())
	require.Equal(t, time.Second*2, Config{SendIntervalSeconds: 2}.sendInterval())
	require.Equal(t, time.Duration(0), Config{}.requestTimeout())
	require.Equal(t, time.Second*10, Config{RequestTimeoutSeconds: 10}.requestTimeout())
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, configName)
	err := os.WriteFile(path, []byte(`{
		email: "someone@example.com",
		endpoints: { home: "http://localhost:8080/voice/" },
		send_interval_seconds: 3,
		telemetry: { otlp: { traces: { http_endpoint: "http://localhost:4318/v1/traces" } } },
	}`), 0600)
	require.NoError(t, err)
	t.Setenv("GVMASS_PASSWORD", "from-env")

	loaded, err := configutil.Load[Config](path, configName)
	require.NoError(t, err)
	require.Equal(t, "someone@example.com", loaded.Email)
	require.Equal(t, "from-env", loaded.Password)
	require.Equal(t, "http://localhost:8080/voice/", loaded.Endpoints.Home)
	require.Equal(t, time.Second*3, loaded.sendInterval())
	require.True(t, loaded.Telemetry.Enabled())
}

func TestValidPhone(t *testing.T) {
	require.NoError(t, validPhone("555-555-5555"))
	require.Error(t, validPhone("555"))
}
