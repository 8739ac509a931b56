package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
directory:
  tenantId: tenant-1
  clientId: client-1
  requestTimeout: 10s
  pageSize: 50
database:
  host: db.example.com
  port: 5432
  user: dirsync
  database: dirsync
  sslMode: disable
scheduler:
  tickInterval: 2m
server:
  address: ":9090"
`)

	cfg, err := LoadConfig(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, "tenant-1", cfg.Directory.TenantID)
	assert.Equal(t, "client-1", cfg.Directory.ClientID)
	assert.Equal(t, 10*time.Second, cfg.Directory.GetRequestTimeout())
	assert.Equal(t, 50, cfg.Directory.GetPageSize())
	assert.Equal(t, 2*time.Minute, cfg.Scheduler.GetTickInterval())
	assert.Equal(t, ":9090", cfg.GetAddress())
	require.NotNil(t, cfg.Database)
	assert.Equal(t, "db.example.com", cfg.Database.Host)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfigFile(t, `
directory:
  tenantId: tenant-1
  clientId: client-1
`)

	cfg, err := LoadConfig(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, DefaultScope, cfg.Directory.GetScope())
	assert.Equal(t, DefaultRequestTimeout, cfg.Directory.GetRequestTimeout())
	assert.Equal(t, DefaultPageSize, cfg.Directory.GetPageSize())
	assert.Equal(t, DefaultTickInterval, cfg.Scheduler.GetTickInterval())
	assert.Equal(t, ":8080", cfg.GetAddress())
	assert.Nil(t, cfg.Database)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{
			name: "missing tenant",
			content: `
directory:
  clientId: client-1
`,
			field: "directory.tenantId",
		},
		{
			name: "missing client id",
			content: `
directory:
  tenantId: tenant-1
`,
			field: "directory.clientId",
		},
		{
			name: "invalid request timeout",
			content: `
directory:
  tenantId: tenant-1
  clientId: client-1
  requestTimeout: not-a-duration
`,
			field: "directory.requestTimeout",
		},
		{
			name: "invalid tick interval",
			content: `
directory:
  tenantId: tenant-1
  clientId: client-1
scheduler:
  tickInterval: soon
`,
			field: "scheduler.tickInterval",
		},
		{
			name: "incomplete database section",
			content: `
directory:
  tenantId: tenant-1
  clientId: client-1
database:
  host: db.example.com
`,
			field: "database.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfigFile(t, tt.content)
			_, err := LoadConfig(WithConfigPath(path))
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadConfig(WithConfigPath(filepath.Join(t.TempDir(), "missing.yaml")))
	require.Error(t, err)
}

func TestGetClientSecretFromFile(t *testing.T) {
	t.Parallel()

	secretPath := filepath.Join(t.TempDir(), "secret")
	require.NoError(t, os.WriteFile(secretPath, []byte("  s3cret\n"), 0o600))

	cfg := &DirectoryConfig{ClientSecretFile: secretPath}
	secret, err := cfg.GetClientSecret()
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret, "secret must be trimmed")
}

func TestGetClientSecretFromEnv(t *testing.T) {
	t.Setenv("DIRSYNC_CLIENT_SECRET", "env-secret")

	cfg := &DirectoryConfig{}
	secret, err := cfg.GetClientSecret()
	require.NoError(t, err)
	assert.Equal(t, "env-secret", secret)
}

func TestGetClientSecretMissing(t *testing.T) {
	t.Setenv("DIRSYNC_CLIENT_SECRET", "")

	cfg := &DirectoryConfig{}
	_, err := cfg.GetClientSecret()
	require.Error(t, err)

	var cfgErr *ConfigurationError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestGetConnectionString(t *testing.T) {
	t.Setenv("DIRSYNC_DATABASE_PASSWORD", "pw")

	cfg := &DatabaseConfig{
		Host:     "db.example.com",
		Port:     5432,
		User:     "dirsync",
		Database: "dirsync",
	}

	connString, err := cfg.GetConnectionString()
	require.NoError(t, err)
	assert.Equal(t, "postgres://dirsync:pw@db.example.com:5432/dirsync?sslmode=require", connString)

	cfg.SSLMode = "disable"
	connString, err = cfg.GetConnectionString()
	require.NoError(t, err)
	assert.Contains(t, connString, "sslmode=disable")
}
