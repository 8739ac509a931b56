// Package config provides configuration loading and management for the directory sync service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix for all environment variables read by the service.
const EnvPrefix = "DIRSYNC"

const (
	// DefaultScope is the OAuth scope requested for directory access.
	DefaultScope = "https://graph.microsoft.com/.default"

	// DefaultRequestTimeout bounds every outbound call to the directory provider.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultPageSize is the page size requested from the user listing endpoint.
	DefaultPageSize = 100

	// DefaultTickInterval is how often the scheduler checks for due policies.
	DefaultTickInterval = 5 * time.Minute
)

// ConfigurationError indicates a required credential or setting is missing or
// malformed. It is fatal and surfaced before any network or database call.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

func newConfigError(field, reason string) *ConfigurationError {
	return &ConfigurationError{Field: field, Reason: reason}
}

// Option defines the interface for configuration loader options
type Option func(*loaderConfig) error

type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks to prevent symlink attacks.
		// Note that this calls filepath.Clean internally.
		realPath, err := filepath.EvalSymlinks(path)
		if err != nil {
			return fmt.Errorf("failed to evaluate symlinks: %w", err)
		}

		if !filepath.IsAbs(realPath) {
			if !filepath.IsLocal(realPath) {
				return fmt.Errorf("path is not local or contains invalid traversal: %s", path)
			}
		}

		cfg.path = realPath
		return nil
	}
}

// Config represents the root configuration structure
type Config struct {
	Directory DirectoryConfig  `yaml:"directory"`
	Database  *DatabaseConfig  `yaml:"database,omitempty"`
	Scheduler *SchedulerConfig `yaml:"scheduler,omitempty"`
	Server    *ServerConfig    `yaml:"server,omitempty"`
}

// DirectoryConfig holds the client-credentials settings for the external
// identity provider. The client secret is never stored in the YAML file
// directly; it is resolved from a secret file or environment variable.
type DirectoryConfig struct {
	// TenantID is the identity provider tenant identifier
	TenantID string `yaml:"tenantId"`

	// ClientID is the OAuth client (application) identifier
	ClientID string `yaml:"clientId"`

	// ClientSecretFile is the path to a file containing the client secret.
	// This is the recommended approach for production deployments.
	ClientSecretFile string `yaml:"clientSecretFile,omitempty"`

	// Scope is the OAuth scope requested during the client-credentials grant
	Scope string `yaml:"scope,omitempty"`

	// TokenEndpoint overrides the provider token URL. When empty, the
	// standard tenant token endpoint is derived from TenantID.
	TokenEndpoint string `yaml:"tokenEndpoint,omitempty"`

	// BaseURL overrides the provider API base URL (mainly for tests)
	BaseURL string `yaml:"baseUrl,omitempty"`

	// RequestTimeout bounds every outbound HTTP call (e.g. "30s")
	RequestTimeout string `yaml:"requestTimeout,omitempty"`

	// PageSize is the number of users requested per listing page
	PageSize int `yaml:"pageSize,omitempty"`
}

// SchedulerConfig defines the scheduler tick cadence
type SchedulerConfig struct {
	// TickInterval is how often due policies are checked (e.g. "5m")
	TickInterval string `yaml:"tickInterval,omitempty"`
}

// ServerConfig defines the HTTP server settings
type ServerConfig struct {
	// Address is the listen address for the HTTP API
	Address string `yaml:"address,omitempty"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Host is the database server hostname or IP address
	Host string `yaml:"host"`

	// Port is the database server port
	Port int `yaml:"port"`

	// User is the database username
	User string `yaml:"user"`

	// PasswordFile is the path to a file containing the database password.
	// The file should contain only the password with optional trailing whitespace.
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxConns is the maximum number of connections in the pool
	MaxConns int32 `yaml:"maxConns,omitempty"`
}

// GetClientSecret returns the directory client secret using the following priority:
// 1. Read from ClientSecretFile if specified
// 2. Read from DIRSYNC_CLIENT_SECRET environment variable
//
// The secret from file will have leading/trailing whitespace trimmed.
func (d *DirectoryConfig) GetClientSecret() (string, error) {
	if d.ClientSecretFile != "" {
		cleanPath := filepath.Clean(d.ClientSecretFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read client secret from file %s: %w", d.ClientSecretFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envSecret := os.Getenv(EnvPrefix + "_CLIENT_SECRET"); envSecret != "" {
		return envSecret, nil
	}

	return "", newConfigError("directory.clientSecretFile",
		"no client secret configured: set clientSecretFile or "+EnvPrefix+"_CLIENT_SECRET environment variable")
}

// GetScope returns the configured OAuth scope, falling back to the default.
func (d *DirectoryConfig) GetScope() string {
	if d.Scope == "" {
		return DefaultScope
	}
	return d.Scope
}

// GetRequestTimeout returns the parsed per-request timeout, falling back to the default.
func (d *DirectoryConfig) GetRequestTimeout() time.Duration {
	if d.RequestTimeout == "" {
		return DefaultRequestTimeout
	}
	timeout, err := time.ParseDuration(d.RequestTimeout)
	if err != nil {
		return DefaultRequestTimeout
	}
	return timeout
}

// GetPageSize returns the configured page size, falling back to the default.
func (d *DirectoryConfig) GetPageSize() int {
	if d.PageSize <= 0 {
		return DefaultPageSize
	}
	return d.PageSize
}

// GetTickInterval returns the parsed scheduler tick interval, falling back to the default.
func (s *SchedulerConfig) GetTickInterval() time.Duration {
	if s == nil || s.TickInterval == "" {
		return DefaultTickInterval
	}
	interval, err := time.ParseDuration(s.TickInterval)
	if err != nil {
		return DefaultTickInterval
	}
	return interval
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from DIRSYNC_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		// Use filepath.Clean to prevent path traversal attacks
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(EnvPrefix + "_DATABASE_PASSWORD"); envPassword != "" {
		return envPassword, nil
	}

	return "", newConfigError("database.passwordFile",
		"no database password configured: set passwordFile or "+EnvPrefix+"_DATABASE_PASSWORD environment variable")
}

// GetConnectionString builds a PostgreSQL connection string with proper password handling.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	password, err := d.GetPassword()
	if err != nil {
		return "", err
	}

	sslMode := d.SSLMode
	if sslMode == "" {
		sslMode = "require"
	}

	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User,
		password,
		d.Host,
		d.Port,
		d.Database,
		sslMode,
	)

	return connString, nil
}

// LoadConfig loads and parses configuration from a YAML file
func LoadConfig(opts ...Option) (*Config, error) {
	loaderCfg := &loaderConfig{}
	for _, opt := range opts {
		if err := opt(loaderCfg); err != nil {
			return nil, err
		}
	}

	if loaderCfg.path == "" {
		return nil, fmt.Errorf("path is required")
	}

	data, err := os.ReadFile(loaderCfg.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// GetAddress returns the HTTP listen address, using ":8080" if not specified.
func (c *Config) GetAddress() string {
	if c.Server == nil || c.Server.Address == "" {
		return ":8080"
	}
	return c.Server.Address
}

func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	if err := c.Directory.validate(); err != nil {
		return err
	}

	if c.Database != nil {
		if err := c.Database.validate(); err != nil {
			return err
		}
	}

	if c.Scheduler != nil && c.Scheduler.TickInterval != "" {
		if _, err := time.ParseDuration(c.Scheduler.TickInterval); err != nil {
			return newConfigError("scheduler.tickInterval",
				fmt.Sprintf("must be a valid duration (e.g. '5m'): %v", err))
		}
	}

	return nil
}

func (d *DirectoryConfig) validate() error {
	if d.TenantID == "" {
		return newConfigError("directory.tenantId", "is required")
	}
	if d.ClientID == "" {
		return newConfigError("directory.clientId", "is required")
	}
	if d.RequestTimeout != "" {
		if _, err := time.ParseDuration(d.RequestTimeout); err != nil {
			return newConfigError("directory.requestTimeout",
				fmt.Sprintf("must be a valid duration (e.g. '30s'): %v", err))
		}
	}
	return nil
}

func (d *DatabaseConfig) validate() error {
	if d.Host == "" {
		return newConfigError("database.host", "is required")
	}
	if d.Port == 0 {
		return newConfigError("database.port", "is required")
	}
	if d.User == "" {
		return newConfigError("database.user", "is required")
	}
	if d.Database == "" {
		return newConfigError("database.database", "is required")
	}
	return nil
}
