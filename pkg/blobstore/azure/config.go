package azure

import "fmt"

// Config controls connectivity to Azure Blob Storage.
type Config struct {
	// Account is the storage account name. Required.
	Account string

	// AccountKey is the shared key credential. Either AccountKey or
	// SASToken must be provided.
	AccountKey string

	// SASToken is a shared access signature, with or without the leading
	// '?'. Takes precedence over AccountKey when both are set.
	SASToken string

	// Endpoint overrides the default https://<account>.blob.core.windows.net
	// service endpoint (Azurite, sovereign clouds).
	Endpoint string

	// Prefix confines all object keys to a sub-tree. Optional.
	Prefix string
}

// ConfigError describes an invalid configuration field.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return fmt.Sprintf("azure config: %s: %s", e.Field, e.Message)
}

// Validate checks the configuration for required fields.
func (c Config) Validate() error {
	if c.Account == "" {
		return &ConfigError{Field: "Account", Message: "account name is required"}
	}
	if c.AccountKey == "" && c.SASToken == "" {
		return &ConfigError{Field: "AccountKey", Message: "account key or SAS token required"}
	}
	return nil
}

// ServiceURL returns the endpoint the client will talk to.
func (c Config) ServiceURL() string {
	if c.Endpoint != "" {
		return c.Endpoint
	}
	return fmt.Sprintf("https://%s.blob.core.windows.net", c.Account)
}
