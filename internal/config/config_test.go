package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAPIConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *APIConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
sentry_dsn: "https://sentry.example.com"
token_ttl: "48h"
server:
  host: 127.0.0.1
  port: 9090
  read_timeout: 15
  write_timeout: 15
  idle_timeout: 60
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
  sslmode: require
auth:
  jwt_public_key: "test-key"
  api_keys:
    - "key-one"
    - "key-two"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "https://sentry.example.com", cfg.SentryDSN)
				assert.Equal(t, 48*time.Hour, cfg.TokenTTL)
				assert.Equal(t, "127.0.0.1", cfg.Server.Host)
				assert.Equal(t, 9090, cfg.Server.Port)
				assert.Equal(t, 15, cfg.Server.ReadTimeout)
				assert.Equal(t, "localhost", cfg.Database.Host)
				assert.Equal(t, "testuser", cfg.Database.User)
				assert.Equal(t, "testdb", cfg.Database.DBName)
				assert.Equal(t, "require", cfg.Database.SSLMode)
				assert.Equal(t, "test-key", cfg.Auth.JWTPublicKey)
				assert.Equal(t, []string{"key-one", "key-two"}, cfg.Auth.APIKeys)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
`,
			expectError: false,
			validate: func(t *testing.T, cfg *APIConfig) {
				// Check defaults
				assert.False(t, cfg.Debug)
				assert.Equal(t, "0.0.0.0", cfg.Server.Host)
				assert.Equal(t, 8080, cfg.Server.Port)
				assert.Equal(t, 10, cfg.Server.ReadTimeout)
				assert.Equal(t, 120, cfg.Server.IdleTimeout)
				assert.Equal(t, 5432, cfg.Database.Port)
				assert.Equal(t, "disable", cfg.Database.SSLMode)
				assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
			},
		},
		{
			name: "missing database host",
			configFile: `
database:
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "missing database name",
			configFile: `
database:
  host: localhost
`,
			expectError: true,
			validate:    nil,
		},
		{
			name: "invalid yaml",
			configFile: `
				database:
				  host: localhost
				  port: invalid
			`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadAPIConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadDispatcherConfig(t *testing.T) {
	tests := []struct {
		name        string
		configFile  string
		expectError bool
		validate    func(*testing.T, *DispatcherConfig)
	}{
		{
			name: "valid config file",
			configFile: `
debug: true
database:
  host: localhost
  port: 5432
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
  stream_name: "TEST_STREAM"
  max_reconnects: 5
  reconnect_wait: "5s"
  connection_name: "test-connection"
worker:
  pool_size: 4
  queue_size: 256
webhook:
  secret: "shhh"
outbox:
  poll_interval: "1s"
  batch_size: 50
  max_attempts: 3
  max_elapsed: "10s"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *DispatcherConfig) {
				assert.True(t, cfg.Debug)
				assert.Equal(t, "nats://localhost:4222", cfg.NATS.URL)
				assert.Equal(t, "TEST_STREAM", cfg.NATS.StreamName)
				assert.Equal(t, 5, cfg.NATS.MaxReconnects)
				assert.Equal(t, 5*time.Second, cfg.NATS.ReconnectWait)
				assert.Equal(t, 4, cfg.Worker.PoolSize)
				assert.Equal(t, 256, cfg.Worker.QueueSize)
				assert.Equal(t, "shhh", cfg.Webhook.Secret)
				assert.Equal(t, time.Second, cfg.Outbox.PollInterval)
				assert.Equal(t, 50, cfg.Outbox.BatchSize)
				assert.Equal(t, 3, cfg.Outbox.MaxAttempts)
				assert.Equal(t, 10*time.Second, cfg.Outbox.MaxElapsed)
			},
		},
		{
			name: "config with defaults",
			configFile: `
database:
  host: localhost
  user: testuser
  password: testpass
  dbname: testdb
nats:
  url: "nats://localhost:4222"
`,
			expectError: false,
			validate: func(t *testing.T, cfg *DispatcherConfig) {
				// Check defaults
				assert.Equal(t, "OWNERSHIP_NOTIFICATIONS", cfg.NATS.StreamName)
				assert.Equal(t, 10, cfg.NATS.MaxReconnects)
				assert.Equal(t, "2s", cfg.NATS.ReconnectWait.String())
				assert.Equal(t, "ownership-dispatcher", cfg.NATS.ConnectionName)
				assert.Equal(t, 10, cfg.Worker.PoolSize)
				assert.Equal(t, 1024, cfg.Worker.QueueSize)
				assert.Empty(t, cfg.Webhook.Secret)
				assert.Equal(t, 2*time.Second, cfg.Outbox.PollInterval)
				assert.Equal(t, 100, cfg.Outbox.BatchSize)
				assert.Equal(t, 5, cfg.Outbox.MaxAttempts)
				assert.Equal(t, 30*time.Second, cfg.Outbox.MaxElapsed)
			},
		},
		{
			name: "missing nats url",
			configFile: `
database:
  host: localhost
  dbname: testdb
`,
			expectError: true,
			validate:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			configFile := filepath.Join(tmpDir, "config.yaml")
			err := os.WriteFile(configFile, []byte(tt.configFile), 0600)
			require.NoError(t, err)

			cfg, err := LoadDispatcherConfig(configFile, tmpDir)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, cfg)
			} else {
				if tt.validate != nil {
					require.NoError(t, err)
					require.NotNil(t, cfg)
					tt.validate(t, cfg)
				}
			}
		})
	}
}

func TestLoadAPIConfigFromEnv(t *testing.T) {
	t.Setenv("OWNERSHIP_DATABASE_HOST", "db.internal")
	t.Setenv("OWNERSHIP_DATABASE_DBNAME", "ownership")
	t.Setenv("OWNERSHIP_DATABASE_USER", "svc")
	t.Setenv("OWNERSHIP_SERVER_PORT", "9999")
	t.Setenv("OWNERSHIP_TOKEN_TTL", "12h")

	// Point at an empty env dir so no .env files interfere
	cfg, err := LoadAPIConfig("", t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, "ownership", cfg.Database.DBName)
	assert.Equal(t, "svc", cfg.Database.User)
	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, 12*time.Hour, cfg.TokenTTL)
}

func TestDatabaseConfigDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "svc",
		Password: "secret",
		DBName:   "ownership",
		SSLMode:  "disable",
	}

	assert.Equal(t,
		"host=localhost port=5432 user=svc password=secret dbname=ownership sslmode=disable",
		cfg.DSN())
}
