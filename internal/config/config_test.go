package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[server]
http_port = 9090

[database]
host = "db.internal"
user = "booking"
password = "secret"
dbname = "room_booking"

[calendar]
open_hour = 8
close_hour = 20

[roster_service]
url = "http://roster:8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.HTTPPort)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 8, cfg.Calendar.OpenHour)
	assert.Equal(t, 20, cfg.Calendar.CloseHour)
	assert.Equal(t, "http://roster:8081", cfg.RosterService.URL)

	// Незаданные поля берутся из умолчаний
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, 5, cfg.RosterService.Timeout)
}

func TestLoad_DSN(t *testing.T) {
	path := writeConfig(t, `
[database]
host = "localhost"
user = "booking"
password = "pw"
dbname = "room_booking"

[roster_service]
url = "http://roster:8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t,
		"host=localhost port=5432 user=booking password=pw dbname=room_booking sslmode=disable",
		cfg.Database.DSN())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-secret")
	t.Setenv("RABBITMQ_URL", "amqp://broker:5672/")

	path := writeConfig(t, `
[database]
dbname = "room_booking"
password = "from-file"

[roster_service]
url = "http://roster:8081"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "env-secret", cfg.Database.Password)
	assert.Equal(t, "amqp://broker:5672/", cfg.Events.URL)
}

func TestLoad_Validation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "missing dbname",
			content: `
[roster_service]
url = "http://roster:8081"
`,
		},
		{
			name: "missing roster url",
			content: `
[database]
dbname = "room_booking"

[roster_service]
url = ""
`,
		},
		{
			name: "inverted calendar bounds",
			content: `
[database]
dbname = "room_booking"

[calendar]
open_hour = 18
close_hour = 9

[roster_service]
url = "http://roster:8081"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}
