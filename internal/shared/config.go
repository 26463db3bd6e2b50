package shared

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Database  DatabaseConfig  `toml:"database"`
	Platform  PlatformConfig  `toml:"platform"`
	Audit     AuditConfig     `toml:"audit"`
	Templates TemplatesConfig `toml:"templates"`
}

// DatabaseConfig contains the connection settings of the target database.
type DatabaseConfig struct {
	Driver       string `toml:"driver"`
	DSN          string `toml:"dsn"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// PlatformConfig locates the platform's external state.
//
// Home is the root directory holding the domain descriptor files; when empty,
// only the database is anonymized. ServerURL replaces the per-domain server
// URL column on every domain row.
type PlatformConfig struct {
	Home      string `toml:"home"`
	ServerURL string `toml:"server_url"`
}

// AuditConfig contains the settings of the audit side-channel.
type AuditConfig struct {
	Dir string `toml:"dir"`
}

// TemplatesConfig groups the per-kind placeholder templates.
type TemplatesConfig struct {
	Domain      DomainTemplates    `toml:"domain"`
	User        UserTemplates      `toml:"user"`
	Group       GroupTemplates     `toml:"group"`
	Space       LocalizedTemplates `toml:"space"`
	App         LocalizedTemplates `toml:"app"`
	Folder      LocalizedTemplates `toml:"folder"`
	Album       LocalizedTemplates `toml:"album"`
	Category    LocalizedTemplates `toml:"category"`
	Publication LocalizedTemplates `toml:"publication"`
}

// DomainTemplates contains the placeholder templates for user domains.
type DomainTemplates struct {
	Name string `toml:"name"`
}

// UserTemplates contains the placeholder templates for users.
type UserTemplates struct {
	FirstName string `toml:"first_name"`
	LastName  string `toml:"last_name"`
	Email     string `toml:"email"`
	Password  string `toml:"password"`
	Company   string `toml:"company"`
}

// GroupTemplates contains the placeholder templates for user groups.
type GroupTemplates struct {
	Name string `toml:"name"`
}

// LocalizedTemplates contains per-locale placeholder templates for the
// localized content kinds (spaces, applications, nodes, publications).
type LocalizedTemplates struct {
	Name        map[string]string `toml:"name"`
	Description map[string]string `toml:"description"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
