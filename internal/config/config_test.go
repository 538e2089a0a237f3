package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "https://localhost", cfg.BaseURL)
	assert.Equal(t, "none", cfg.ContainerAccess)
	assert.Equal(t, 8, cfg.Transfer.Concurrency)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blobtree.yaml")
	content := `
backend: azure
base_url: https://acct.blob.core.windows.net
cdn_host: cdn.example.com
container_access: blob
azure:
  account: acct
  account_key: secret
transfer:
  concurrency: 16
  rate_per_second: 50
server:
  port: 9000
  read_timeout: 45s
policy:
  deny:
    - "*.exe"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "azure", cfg.Backend)
	assert.Equal(t, "https://acct.blob.core.windows.net", cfg.BaseURL)
	assert.Equal(t, "cdn.example.com", cfg.CDNHost)
	assert.Equal(t, "blob", cfg.ContainerAccess)
	assert.Equal(t, "acct", cfg.Azure.Account)
	assert.Equal(t, 16, cfg.Transfer.Concurrency)
	assert.Equal(t, float64(50), cfg.Transfer.RatePerSecond)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 45*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"*.exe"}, cfg.Policy.Deny)
	assert.Equal(t, "localhost:9000", cfg.Server.Addr())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("BLOBTREE_SERVER_PORT", "3000")
	t.Setenv("BLOBTREE_LOGGING_LEVEL", "warn")
	t.Setenv("BLOBTREE_BACKEND", "memory")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "unknown backend",
			mutate:  func(c *Config) { c.Backend = "gcs" },
			wantErr: "unknown backend",
		},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.BaseURL = "" },
			wantErr: "base_url is required",
		},
		{
			name:    "unknown access",
			mutate:  func(c *Config) { c.ContainerAccess = "public" },
			wantErr: "unknown container_access",
		},
		{
			name: "azure without account",
			mutate: func(c *Config) {
				c.Backend = "azure"
				c.Azure.Account = ""
			},
			wantErr: "azure.account is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("")
			require.NoError(t, err)
			tt.mutate(cfg)
			err = cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
