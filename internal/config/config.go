// Package config loads and validates the process configuration from file,
// environment, and defaults (in ascending precedence: defaults < file <
// environment).
package config

import (
	"fmt"
	"time"
)

// Config is the full process configuration.
type Config struct {
	// Backend selects the object store: azure, s3 or memory.
	Backend string `mapstructure:"backend"`

	// BaseURL is the store's public base URL; the first path segment of
	// every URL under it is a container name.
	BaseURL string `mapstructure:"base_url"`

	// CDNHost optionally replaces the host in returned URLs.
	CDNHost string `mapstructure:"cdn_host"`

	// Prefix confines every operation to a sub-tree of the key space.
	Prefix string `mapstructure:"prefix"`

	// ContainerAccess is the public-access policy for containers created
	// by this process: none, blob or container.
	ContainerAccess string `mapstructure:"container_access"`

	// CacheControl is attached to every uploaded object.
	CacheControl string `mapstructure:"cache_control"`

	Azure    AzureConfig    `mapstructure:"azure"`
	S3       S3Config       `mapstructure:"s3"`
	Policy   PolicyConfig   `mapstructure:"policy"`
	Transfer TransferConfig `mapstructure:"transfer"`
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// AzureConfig holds Azure Blob Storage connectivity.
type AzureConfig struct {
	Account    string `mapstructure:"account"`
	AccountKey string `mapstructure:"account_key"`
	SASToken   string `mapstructure:"sas_token"`
	Endpoint   string `mapstructure:"endpoint"`
}

// S3Config holds S3-compatible connectivity.
type S3Config struct {
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint"`
	Profile         string `mapstructure:"profile"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
}

// PolicyConfig selects the extension policy rules.
type PolicyConfig struct {
	// RulesFile is a YAML file with allow/deny pattern lists. When set it
	// takes precedence over the inline lists.
	RulesFile string   `mapstructure:"rules_file"`
	Allow     []string `mapstructure:"allow"`
	Deny      []string `mapstructure:"deny"`
}

// TransferConfig bounds the move/copy fan-out.
type TransferConfig struct {
	Concurrency   int     `mapstructure:"concurrency"`
	RatePerSecond float64 `mapstructure:"rate_per_second"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// Validate checks cross-field consistency.
func (c *Config) Validate() error {
	switch c.Backend {
	case "azure", "s3", "memory":
	default:
		return fmt.Errorf("config: unknown backend %q (expected azure, s3 or memory)", c.Backend)
	}
	if c.BaseURL == "" {
		return fmt.Errorf("config: base_url is required")
	}
	switch c.ContainerAccess {
	case "none", "blob", "container":
	default:
		return fmt.Errorf("config: unknown container_access %q (expected none, blob or container)", c.ContainerAccess)
	}
	if c.Backend == "azure" && c.Azure.Account == "" {
		return fmt.Errorf("config: azure.account is required for the azure backend")
	}
	return nil
}

// Addr returns the server listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
