package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `
[server]
http_port = 8083
read_timeout = 15
write_timeout = 15
idle_timeout = 60
shutdown_timeout = 10

[database]
host = "localhost"
port = 5432
user = "postgres"
password = "secret"
dbname = "gaming_reservations"
sslmode = "disable"
max_open_conns = 25
max_idle_conns = 5
conn_max_lifetime = 300

[logs]
file = "logs/service.log"
level = "info"

[metrics]
enabled = true
path = "/metrics"
service_name = "reservation-service"

[venue_service]
url = "http://localhost:8081"
timeout = 5

[maintenance]
payment_timeout = 30
expire_schedule = "*/5 * * * *"
complete_schedule = "30 4 * * *"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))

	require.NoError(t, err)
	assert.Equal(t, 8083, cfg.Server.HTTPPort)
	assert.Equal(t, "gaming_reservations", cfg.Database.DBName)
	assert.Equal(t, "http://localhost:8081", cfg.VenueService.URL)
	assert.Equal(t, 30, cfg.Maintenance.PaymentTimeout)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=postgres password=secret dbname=gaming_reservations sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mangle func(s string) string
	}{
		{name: "missing port", mangle: func(s string) string {
			return strings.Replace(s, "http_port = 8083", "http_port = 0", 1)
		}},
		{name: "missing database host", mangle: func(s string) string {
			return strings.Replace(s, `host = "localhost"`, `host = ""`, 1)
		}},
		{name: "missing venue service url", mangle: func(s string) string {
			return strings.Replace(s, `url = "http://localhost:8081"`, `url = ""`, 1)
		}},
		{name: "zero payment timeout", mangle: func(s string) string {
			return strings.Replace(s, "payment_timeout = 30", "payment_timeout = 0", 1)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.mangle(validConfig)))
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
