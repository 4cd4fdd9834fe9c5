// internal/common/config/loader_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
app:
  name: stp-connect
  environment: test
database:
  postgres:
    host: db.internal
    port: 5432
    database: stp_connect
  redis:
    address: cache.internal:6379
  elasticsearch:
    addresses:
      - http://search.internal:9200
matching:
  default_limit: 10
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Postgres.Host)
	assert.Equal(t, 10, cfg.Matching.DefaultLimit)

	// Defaults fill the gaps.
	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "opportunities", cfg.Database.Elasticsearch.Index)
	assert.Equal(t, 600, cfg.Matching.ProfileCacheTTL)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFromFile_EnvVarExpansion(t *testing.T) {
	t.Setenv("TEST_DB_HOST", "expanded.internal")

	path := writeConfigFile(t, `
database:
  postgres:
    host: ${TEST_DB_HOST}
    database: stp_connect
  redis:
    address: localhost:6379
  elasticsearch:
    addresses:
      - http://localhost:9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "expanded.internal", cfg.Database.Postgres.Host)
}

func TestLoadFromFile_CredentialOverride(t *testing.T) {
	t.Setenv("DB_USER", "svc_user")
	t.Setenv("DB_PASSWORD", "secret")

	path := writeConfigFile(t, `
database:
  postgres:
    host: localhost
    database: stp_connect
  redis:
    address: localhost:6379
  elasticsearch:
    addresses:
      - http://localhost:9200
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "svc_user", cfg.Database.Postgres.User)
	assert.Equal(t, "secret", cfg.Database.Postgres.Password)
}

func TestLoadFromFile_ValidationFailures(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing postgres host",
			content: `
database:
  postgres:
    database: stp_connect
  redis:
    address: localhost:6379
  elasticsearch:
    addresses:
      - http://localhost:9200
`,
			wantErr: "postgres.host",
		},
		{
			name: "missing redis address",
			content: `
database:
  postgres:
    host: localhost
    database: stp_connect
  elasticsearch:
    addresses:
      - http://localhost:9200
`,
			wantErr: "redis.address",
		},
		{
			name: "email enabled without from address",
			content: `
database:
  postgres:
    host: localhost
    database: stp_connect
  redis:
    address: localhost:6379
  elasticsearch:
    addresses:
      - http://localhost:9200
notifications:
  email:
    enabled: true
`,
			wantErr: "from_email",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfigFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetDSN(t *testing.T) {
	cfg := PostgresConfig{
		Host: "localhost", Port: 5432, User: "svc", Password: "pw",
		Database: "stp_connect", SSLMode: "disable",
	}
	assert.Equal(t,
		"host=localhost port=5432 user=svc password=pw dbname=stp_connect sslmode=disable",
		cfg.GetDSN())
}
