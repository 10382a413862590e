package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kdpii/nerlabel/internal/models"
)

// Environment overrides
const (
	EnvDatabase  = "NERLABEL_DB"
	EnvProject   = "NERLABEL_PROJECT"
	EnvThemeFile = "NERLABEL_THEME_FILE"
)

// Config represents the application configuration
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	Ingest   IngestConfig   `yaml:"ingest"`
	Export   ExportConfig   `yaml:"export"`

	// DefaultProject is the project id or name used when a command gets no --project
	DefaultProject string `yaml:"default_project,omitempty"`

	ColorScheme ColorScheme `yaml:"theme"`
}

type DatabaseConfig struct {
	// Path of the SQLite file; empty means ~/.nerlabel/nerlabel.db
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

type IngestConfig struct {
	MaxFileSize    int64 `yaml:"max_file_size"`
	SkipDuplicates bool  `yaml:"skip_duplicates"`
	CreateLabels   bool  `yaml:"create_labels"`
	PreviewLength  int   `yaml:"preview_length"`
	// Records shorter than MinTextLength runes are skipped and texts longer
	// than MaxTextLength are cut; 0 disables either bound (e.g. 5 and 5000)
	MinTextLength int `yaml:"min_text_length,omitempty"`
	MaxTextLength int `yaml:"max_text_length,omitempty"`
}

type ExportConfig struct {
	CoNLLTieBreak    string `yaml:"conll_tie_break"`
	CoNLLTaskHeaders bool   `yaml:"conll_task_headers"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// loadThemeFile merges the theme from NERLABEL_THEME_FILE when set
func loadThemeFile(config *Config) {
	themeFile := os.Getenv(EnvThemeFile)
	if themeFile == "" {
		return
	}

	themeData, err := os.ReadFile(themeFile)
	if err != nil {
		return
	}

	var themeConfig struct {
		Theme ColorScheme `yaml:"theme"`
	}

	if yaml.Unmarshal(themeData, &themeConfig) == nil {
		config.ColorScheme.MergeFrom(themeConfig.Theme)
	}
}

// applyEnv applies the database and project overrides
func applyEnv(config *Config) {
	if db := os.Getenv(EnvDatabase); db != "" {
		config.Database.Path = db
	}
	if project := os.Getenv(EnvProject); project != "" {
		config.DefaultProject = project
	}
}

// Load loads config from the user's config directory
// Returns default config if file doesn't exist
func Load() (*Config, error) {
	configPath, err := getConfigPath()
	if err != nil {
		// Return default config if we can't determine config path
		config := Default()
		applyEnv(config)
		loadThemeFile(config)
		return config, nil
	}
	return LoadFrom(configPath)
}

// LoadFrom loads config from path, falling back to defaults when the file is missing
func LoadFrom(configPath string) (*Config, error) {
	config := &Config{}

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, err
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, err
		}
	}

	applyEnv(config)
	loadThemeFile(config)

	// Fill in any missing values with defaults
	config.applyDefaults()

	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes the config to path, creating its directory
func (c *Config) SaveTo(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0o644)
}

// Path returns the path of the config file
func Path() (string, error) {
	return getConfigPath()
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, "nerlabel", "config.yaml"), nil
	}

	// Fall back to ~/.config
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(homeDir, ".config", "nerlabel", "config.yaml"), nil
}

// applyDefaults fills in missing configuration with defaults
func (c *Config) applyDefaults() {
	if c.Logging.Level == "" {
		c.Logging.Level = "debug"
	}
	if c.Ingest.MaxFileSize <= 0 {
		c.Ingest.MaxFileSize = models.MaxUploadSize
	}
	if c.Ingest.PreviewLength <= 0 {
		c.Ingest.PreviewLength = models.PreviewLength
	}
	if c.Export.CoNLLTieBreak == "" {
		c.Export.CoNLLTieBreak = "first"
	}
	c.ColorScheme.ApplyDefaults()
}
