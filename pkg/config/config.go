package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	ConfigFileName = "accounts.yml"
	AppDirName     = "user-record-store"
	DefaultKey     = "accounts"
)

// Storage backend names
const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// ValidBackends is the list of valid storage backends
var ValidBackends = []string{BackendMemory, BackendFile, BackendPostgres, BackendRedis}

// ValidLogLevels is the list of accepted log levels
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// Config holds all store configuration settings
type Config struct {
	// StorageBackend selects where the account list is persisted
	StorageBackend string `yaml:"storage_backend" json:"storage_backend"`

	// StoragePath is the directory used by the file backend
	StoragePath string `yaml:"storage_path" json:"storage_path"`

	// StorageKey is the slot key holding the serialized account list
	StorageKey string `yaml:"storage_key" json:"storage_key"`

	// DatabaseURL is the PostgreSQL connection string for the postgres backend
	DatabaseURL string `yaml:"database_url" json:"database_url"`

	// RedisURL is the redis:// URL for the redis backend
	RedisURL string `yaml:"redis_url" json:"redis_url"`

	// RedisPrefix namespaces keys in the redis backend
	RedisPrefix string `yaml:"redis_prefix" json:"redis_prefix"`

	// AuditEnabled writes an audit record for every store mutation
	AuditEnabled bool `yaml:"audit_enabled" json:"audit_enabled"`

	// AuditDatabaseURL optionally persists audit records to PostgreSQL
	AuditDatabaseURL string `yaml:"audit_database_url" json:"audit_database_url"`

	// LogLevel is the logrus level name
	LogLevel string `yaml:"log_level" json:"log_level"`

	// sources tracks where each value came from
	sources map[string]string

	// configFilePath is the path to the config file
	configFilePath string
}

// fileConfig mirrors Config for YAML decoding; pointers tell "unset" from zero values
type fileConfig struct {
	StorageBackend   string `yaml:"storage_backend"`
	StoragePath      string `yaml:"storage_path"`
	StorageKey       string `yaml:"storage_key"`
	DatabaseURL      string `yaml:"database_url"`
	RedisURL         string `yaml:"redis_url"`
	RedisPrefix      string `yaml:"redis_prefix"`
	AuditEnabled     *bool  `yaml:"audit_enabled"`
	AuditDatabaseURL string `yaml:"audit_database_url"`
	LogLevel         string `yaml:"log_level"`
}

// Attribute represents a configuration attribute with its value and source
type Attribute struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Source string `json:"source"`
}

// DefaultConfigPath returns the directory searched for accounts.yml
func DefaultConfigPath() string {
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(".", "."+AppDirName)
}

// DefaultDataPath returns the default directory of the file backend
func DefaultDataPath() string {
	return DefaultConfigPath()
}

// newDefault returns a config with default values
func newDefault() *Config {
	return &Config{
		StorageBackend: BackendFile,
		StoragePath:    DefaultDataPath(),
		StorageKey:     DefaultKey,
		RedisPrefix:    "userrecordstore:",
		AuditEnabled:   false,
		LogLevel:       "info",
		sources:        make(map[string]string),
	}
}

// Load loads configuration from file and environment variables.
// Environment variables take precedence over file values.
func Load() (*Config, error) {
	config := newDefault()

	for _, name := range attributeNames() {
		config.sources[name] = "default"
	}

	configPath := os.Getenv("ACCOUNTS_CONFIG_PATH")
	if configPath == "" {
		configPath = DefaultConfigPath()
	}
	config.configFilePath = filepath.Join(configPath, ConfigFileName)

	if data, err := os.ReadFile(config.configFilePath); err == nil {
		var file fileConfig
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", config.configFilePath, err)
		}
		config.applyFileConfig(&file)
	}

	config.applyEnvConfig()

	return config, nil
}

func attributeNames() []string {
	return []string{
		"storage_backend", "storage_path", "storage_key",
		"database_url", "redis_url", "redis_prefix",
		"audit_enabled", "audit_database_url", "log_level",
	}
}

func (c *Config) applyFileConfig(file *fileConfig) {
	setString := func(name string, dst *string, val string) {
		if val != "" {
			*dst = val
			c.sources[name] = "file"
		}
	}
	setString("storage_backend", &c.StorageBackend, file.StorageBackend)
	setString("storage_path", &c.StoragePath, file.StoragePath)
	setString("storage_key", &c.StorageKey, file.StorageKey)
	setString("database_url", &c.DatabaseURL, file.DatabaseURL)
	setString("redis_url", &c.RedisURL, file.RedisURL)
	setString("redis_prefix", &c.RedisPrefix, file.RedisPrefix)
	setString("audit_database_url", &c.AuditDatabaseURL, file.AuditDatabaseURL)
	setString("log_level", &c.LogLevel, file.LogLevel)

	if file.AuditEnabled != nil {
		c.AuditEnabled = *file.AuditEnabled
		c.sources["audit_enabled"] = "file"
	}
}

func (c *Config) applyEnvConfig() {
	setString := func(name, env string, dst *string) {
		if val := os.Getenv(env); val != "" {
			*dst = val
			c.sources[name] = "environment"
		}
	}
	setString("storage_backend", "ACCOUNTS_STORAGE_BACKEND", &c.StorageBackend)
	setString("storage_path", "ACCOUNTS_STORAGE_PATH", &c.StoragePath)
	setString("storage_key", "ACCOUNTS_STORAGE_KEY", &c.StorageKey)
	setString("database_url", "ACCOUNTS_DATABASE_URL", &c.DatabaseURL)
	setString("redis_url", "ACCOUNTS_REDIS_URL", &c.RedisURL)
	setString("redis_prefix", "ACCOUNTS_REDIS_PREFIX", &c.RedisPrefix)
	setString("audit_database_url", "ACCOUNTS_AUDIT_DATABASE_URL", &c.AuditDatabaseURL)
	setString("log_level", "ACCOUNTS_LOG_LEVEL", &c.LogLevel)

	if val := os.Getenv("ACCOUNTS_AUDIT_ENABLED"); val != "" {
		c.AuditEnabled = val == "true" || val == "1"
		c.sources["audit_enabled"] = "environment"
	}
}

// ConfigFilePath returns the path to the config file
func (c *Config) ConfigFilePath() string {
	return c.configFilePath
}

// Source returns the source of a configuration attribute
func (c *Config) Source(name string) string {
	if c.sources == nil {
		return "default"
	}
	if s, ok := c.sources[name]; ok {
		return s
	}
	return "default"
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if !contains(ValidBackends, c.StorageBackend) {
		return fmt.Errorf("invalid storage_backend: %s", c.StorageBackend)
	}
	if !contains(ValidLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level: %s", c.LogLevel)
	}
	if c.StorageKey == "" {
		return fmt.Errorf("storage_key must not be empty")
	}

	switch c.StorageBackend {
	case BackendFile:
		if c.StoragePath == "" {
			return fmt.Errorf("storage_path is required for the %s backend", BackendFile)
		}
	case BackendPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database_url is required for the %s backend", BackendPostgres)
		}
	case BackendRedis:
		if c.RedisURL == "" {
			return fmt.Errorf("redis_url is required for the %s backend", BackendRedis)
		}
	}

	return nil
}

// Attributes returns all configuration attributes with their values and sources
func (c *Config) Attributes() []Attribute {
	return []Attribute{
		{Name: "storage_backend", Value: c.StorageBackend, Source: c.Source("storage_backend")},
		{Name: "storage_path", Value: c.StoragePath, Source: c.Source("storage_path")},
		{Name: "storage_key", Value: c.StorageKey, Source: c.Source("storage_key")},
		{Name: "database_url", Value: redactURL(c.DatabaseURL), Source: c.Source("database_url")},
		{Name: "redis_url", Value: redactURL(c.RedisURL), Source: c.Source("redis_url")},
		{Name: "redis_prefix", Value: c.RedisPrefix, Source: c.Source("redis_prefix")},
		{Name: "audit_enabled", Value: strconv.FormatBool(c.AuditEnabled), Source: c.Source("audit_enabled")},
		{Name: "audit_database_url", Value: redactURL(c.AuditDatabaseURL), Source: c.Source("audit_database_url")},
		{Name: "log_level", Value: c.LogLevel, Source: c.Source("log_level")},
	}
}

// FormatText returns a text representation of the configuration
func (c *Config) FormatText() string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Config file: %s\n\n", c.configFilePath))
	sb.WriteString(fmt.Sprintf("%-22s %-50s %s\n", "NAME", "VALUE", "SOURCE"))
	sb.WriteString(fmt.Sprintf("%-22s %-50s %s\n", "----", "-----", "------"))

	for _, attr := range c.Attributes() {
		value := attr.Value
		if value == "" {
			value = "(not set)"
		}
		sb.WriteString(fmt.Sprintf("%-22s %-50s %s\n", attr.Name, value, attr.Source))
	}
	return sb.String()
}

// FormatJSON returns a JSON representation of the configuration
func (c *Config) FormatJSON() (string, error) {
	result := map[string]interface{}{
		"config_file": c.configFilePath,
		"attributes":  c.Attributes(),
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// redactURL hides the password part of a connection URL
func redactURL(raw string) string {
	schemeEnd := strings.Index(raw, "://")
	if schemeEnd == -1 {
		return raw
	}
	rest := raw[schemeEnd+3:]
	at := strings.LastIndex(rest, "@")
	if at == -1 {
		return raw
	}
	userinfo := rest[:at]
	colon := strings.Index(userinfo, ":")
	if colon == -1 {
		return raw
	}
	return raw[:schemeEnd+3] + userinfo[:colon] + ":xxxxx" + rest[at:]
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
