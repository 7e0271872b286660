// Package config provides configuration loading and management for the catalog server.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/stacklok/game-catalog-server/internal/telemetry"
)

const (
	// SourceTypeGit is the type for catalog documents stored in Git repositories
	SourceTypeGit = "git"

	// SourceTypeAPI is the type for catalogs fetched from an upstream catalog API
	SourceTypeAPI = "api"

	// SourceTypeFile is the type for catalog documents stored in local files
	SourceTypeFile = "file"

	// SourceTypeDatabase is the type for catalogs read from a relational database
	SourceTypeDatabase = "database"
)

const (
	// SourceFormatJSON is a catalog document encoded as JSON
	SourceFormatJSON = "json"

	// SourceFormatYAML is a catalog document encoded as YAML
	SourceFormatYAML = "yaml"
)

const (
	// DatabaseDriverSQLite reads the catalog from a sqlite database file
	DatabaseDriverSQLite = "sqlite"

	// DatabaseDriverPostgres reads the catalog from a PostgreSQL server
	DatabaseDriverPostgres = "postgres"
)

const (
	// DefaultCatalogName is used when catalogName is not set
	DefaultCatalogName = "default"

	// DatabasePasswordEnv is the environment variable holding the database password
	DatabasePasswordEnv = "CATALOG_DATABASE_PASSWORD"
)

// Option defines the interface for configuration options
type Option func(*loaderConfig) error

// loaderConfig defines the configuration for loading a configuration
type loaderConfig struct {
	path string
}

// WithConfigPath loads configuration from a YAML file
func WithConfigPath(path string) Option {
	return func(cfg *loaderConfig) error {
		if path == "" {
			return fmt.Errorf("path is required")
		}

		// Resolve symlinks. Note that this calls filepath.Clean internally.
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
	// CatalogName is the name/identifier for this catalog instance
	// Defaults to "default" if not specified
	CatalogName string `yaml:"catalogName,omitempty"`

	Source     SourceConfig      `yaml:"source"`
	SyncPolicy *SyncPolicyConfig `yaml:"syncPolicy,omitempty"`

	// StatusDir enables persisting the sync status across restarts
	StatusDir string `yaml:"statusDir,omitempty"`

	Telemetry *telemetry.Config `yaml:"telemetry,omitempty"`
}

// SourceConfig defines where the catalog is read from
type SourceConfig struct {
	// Format of the catalog document (json or yaml). Only used by file and git sources.
	Format string `yaml:"format,omitempty"`

	// Type-specific configurations (only one should be set)
	Git      *GitConfig      `yaml:"git,omitempty"`
	API      *APIConfig      `yaml:"api,omitempty"`
	File     *FileConfig     `yaml:"file,omitempty"`
	Database *DatabaseConfig `yaml:"database,omitempty"`
}

// GitConfig defines Git source settings
type GitConfig struct {
	// Repository is the Git repository URL (HTTP/HTTPS/SSH)
	Repository string `yaml:"repository"`

	// Branch is the Git branch to use (mutually exclusive with Tag and Commit)
	Branch string `yaml:"branch,omitempty"`

	// Tag is the Git tag to use (mutually exclusive with Branch and Commit)
	Tag string `yaml:"tag,omitempty"`

	// Commit is the Git commit SHA to use (mutually exclusive with Branch and Tag)
	Commit string `yaml:"commit,omitempty"`

	// Path is the path to the catalog document within the repository
	Path string `yaml:"path,omitempty"`
}

// APIConfig defines an upstream catalog API source.
// The handler appends /api/games, /api/categories and /api/publishers to the endpoint.
type APIConfig struct {
	// Endpoint is the base API URL (without path)
	// Example: "http://catalog-upstream:5100"
	Endpoint string `yaml:"endpoint"`
}

// FileConfig defines local file source configuration
type FileConfig struct {
	// Path is the path to the catalog document on the local filesystem
	// Can be absolute or relative to the working directory
	Path string `yaml:"path"`
}

// SyncPolicyConfig defines synchronization settings
type SyncPolicyConfig struct {
	Interval string `yaml:"interval"`
}

// DatabaseConfig defines database connection settings
type DatabaseConfig struct {
	// Driver selects the database engine (sqlite or postgres)
	Driver string `yaml:"driver"`

	// Path is the sqlite database file
	Path string `yaml:"path,omitempty"`

	// Host is the database server hostname or IP address
	Host string `yaml:"host,omitempty"`

	// Port is the database server port
	Port int `yaml:"port,omitempty"`

	// User is the database username
	User string `yaml:"user,omitempty"`

	// PasswordFile is the path to a file containing the database password
	// The file should contain only the password with optional trailing whitespace
	PasswordFile string `yaml:"passwordFile,omitempty"`

	// Database is the database name
	Database string `yaml:"database,omitempty"`

	// SSLMode is the SSL mode for the connection (disable, require, verify-ca, verify-full)
	SSLMode string `yaml:"sslMode,omitempty"`

	// MaxOpenConns is the maximum number of open connections to the database
	MaxOpenConns int `yaml:"maxOpenConns,omitempty"`

	// ConnMaxLifetime is the maximum lifetime of a connection (e.g., "1h", "30m")
	ConnMaxLifetime string `yaml:"connMaxLifetime,omitempty"`
}

// GetDriver returns the database driver, defaulting to sqlite
func (d *DatabaseConfig) GetDriver() string {
	if d.Driver == "" {
		return DatabaseDriverSQLite
	}
	return d.Driver
}

// GetConnMaxLifetime parses ConnMaxLifetime, returning zero when unset
func (d *DatabaseConfig) GetConnMaxLifetime() time.Duration {
	if d.ConnMaxLifetime == "" {
		return 0
	}
	lifetime, err := time.ParseDuration(d.ConnMaxLifetime)
	if err != nil {
		return 0
	}
	return lifetime
}

// GetPassword returns the database password using the following priority:
// 1. Read from PasswordFile if specified
// 2. Read from CATALOG_DATABASE_PASSWORD environment variable
//
// The password from file will have leading/trailing whitespace trimmed.
func (d *DatabaseConfig) GetPassword() (string, error) {
	if d.PasswordFile != "" {
		cleanPath := filepath.Clean(d.PasswordFile)

		data, err := os.ReadFile(cleanPath)
		if err != nil {
			return "", fmt.Errorf("failed to read password from file %s: %w", d.PasswordFile, err)
		}

		return strings.TrimSpace(string(data)), nil
	}

	if envPassword := os.Getenv(DatabasePasswordEnv); envPassword != "" {
		return envPassword, nil
	}

	return "", fmt.Errorf(
		"no database password configured: set passwordFile or %s environment variable", DatabasePasswordEnv,
	)
}

// GetConnectionString builds the data source name for the configured driver.
// For postgres the password is URL-escaped to handle special characters safely.
func (d *DatabaseConfig) GetConnectionString() (string, error) {
	if d.GetDriver() == DatabaseDriverSQLite {
		return d.Path, nil
	}

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
		url.PathEscape(d.User),
		url.QueryEscape(password),
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
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// GetCatalogName returns the catalog name, using "default" if not specified
func (c *Config) GetCatalogName() string {
	if c.CatalogName == "" {
		return DefaultCatalogName
	}
	return c.CatalogName
}

// GetSyncInterval returns the parsed sync interval, or zero when the catalog is loaded once
func (c *Config) GetSyncInterval() time.Duration {
	if c.SyncPolicy == nil || c.SyncPolicy.Interval == "" {
		return 0
	}
	interval, err := time.ParseDuration(c.SyncPolicy.Interval)
	if err != nil {
		return 0
	}
	return interval
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	if c == nil {
		return fmt.Errorf("config cannot be nil")
	}

	var errs []error

	if err := validateSyncPolicy(c.SyncPolicy); err != nil {
		errs = append(errs, err)
	}

	if err := c.Source.validate(); err != nil {
		errs = append(errs, err)
	}

	if c.Telemetry != nil {
		if err := c.Telemetry.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("telemetry: %w", err))
		}
	}

	return errors.Join(errs...)
}

// validateSyncPolicy validates the sync policy configuration. The policy is optional.
func validateSyncPolicy(policy *SyncPolicyConfig) error {
	if policy == nil || policy.Interval == "" {
		return nil
	}

	interval, err := time.ParseDuration(policy.Interval)
	if err != nil {
		return fmt.Errorf("syncPolicy.interval must be a valid duration (e.g., '30m', '1h'): %w", err)
	}
	if interval <= 0 {
		return fmt.Errorf("syncPolicy.interval must be positive, got %s", policy.Interval)
	}

	return nil
}

func (s *SourceConfig) validate() error {
	if err := s.validateTypeCount(); err != nil {
		return err
	}

	switch s.Format {
	case "", SourceFormatJSON, SourceFormatYAML:
	default:
		return fmt.Errorf("source: format must be %s or %s, got %s", SourceFormatJSON, SourceFormatYAML, s.Format)
	}

	switch {
	case s.Git != nil:
		return validateGitConfig(s.Git)
	case s.API != nil:
		return validateAPIConfig(s.API, s.Format)
	case s.File != nil:
		return validateFileConfig(s.File)
	case s.Database != nil:
		return validateDatabaseConfig(s.Database, s.Format)
	}

	return nil
}

// validateTypeCount ensures exactly one source type is configured
func (s *SourceConfig) validateTypeCount() error {
	configCount := 0
	for _, set := range []bool{s.Git != nil, s.API != nil, s.File != nil, s.Database != nil} {
		if set {
			configCount++
		}
	}

	if configCount == 0 {
		return fmt.Errorf("source: one of git, api, file or database configuration must be specified")
	}
	if configCount > 1 {
		return fmt.Errorf("source: only one of git, api, file or database configuration may be specified")
	}

	return nil
}

func validateGitConfig(git *GitConfig) error {
	if git.Repository == "" {
		return fmt.Errorf("source: git.repository is required")
	}

	refs := 0
	for _, ref := range []string{git.Branch, git.Tag, git.Commit} {
		if ref != "" {
			refs++
		}
	}
	if refs > 1 {
		return fmt.Errorf("source: only one of git.branch, git.tag or git.commit may be specified")
	}
	return nil
}

func validateAPIConfig(api *APIConfig, format string) error {
	if api.Endpoint == "" {
		return fmt.Errorf("source: api.endpoint is required")
	}
	if _, err := url.ParseRequestURI(api.Endpoint); err != nil {
		return fmt.Errorf("source: api.endpoint is not a valid URL: %w", err)
	}
	if format != "" && format != SourceFormatJSON {
		return fmt.Errorf("source: format must be either empty or %s when using api, got %s", SourceFormatJSON, format)
	}
	return nil
}

func validateFileConfig(file *FileConfig) error {
	if file.Path == "" {
		return fmt.Errorf("source: file.path is required")
	}
	return nil
}

func validateDatabaseConfig(db *DatabaseConfig, format string) error {
	if format != "" {
		return fmt.Errorf("source: format cannot be used with a database source")
	}

	if db.ConnMaxLifetime != "" {
		if _, err := time.ParseDuration(db.ConnMaxLifetime); err != nil {
			return fmt.Errorf("source: database.connMaxLifetime must be a valid duration: %w", err)
		}
	}

	switch db.GetDriver() {
	case DatabaseDriverSQLite:
		if db.Path == "" {
			return fmt.Errorf("source: database.path is required for the sqlite driver")
		}
	case DatabaseDriverPostgres:
		var errs []error
		if db.Host == "" {
			errs = append(errs, fmt.Errorf("source: database.host is required for the postgres driver"))
		}
		if db.Port <= 0 {
			errs = append(errs, fmt.Errorf("source: database.port must be positive"))
		}
		if db.Database == "" {
			errs = append(errs, fmt.Errorf("source: database.database is required for the postgres driver"))
		}
		return errors.Join(errs...)
	default:
		return fmt.Errorf("source: unsupported database driver %q", db.Driver)
	}
	return nil
}

// GetType returns the inferred type of the source config based on which field is present
func (s *SourceConfig) GetType() string {
	switch {
	case s.Git != nil:
		return SourceTypeGit
	case s.API != nil:
		return SourceTypeAPI
	case s.File != nil:
		return SourceTypeFile
	case s.Database != nil:
		return SourceTypeDatabase
	}
	return ""
}

// GetFormat returns the document format, defaulting to json
func (s *SourceConfig) GetFormat() string {
	if s.Format == "" {
		return SourceFormatJSON
	}
	return s.Format
}
