package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const appName = "mangaland"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Reader  ReaderConfig  `mapstructure:"reader"`
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	UploadsURL string        `mapstructure:"uploads_url"` // Cover image host
	Language   string        `mapstructure:"language"`    // Chapter translation language
	PageSize   int           `mapstructure:"page_size"`   // Results per catalog query
	Timeout    time.Duration `mapstructure:"timeout"`
}

// ReaderConfig holds image viewer configuration
type ReaderConfig struct {
	Command   string   `mapstructure:"command"` // Empty = auto-detect
	Args      []string `mapstructure:"args"`
	DataSaver bool     `mapstructure:"data_saver"` // Use compressed page images
}

// StorageConfig holds persistence configuration
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"` // Empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultStatus string `mapstructure:"default_status"`
	DefaultGenre  string `mapstructure:"default_genre"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:    "https://api.mangadex.org",
			UploadsURL: "https://uploads.mangadex.org",
			Language:   "en",
			PageSize:   100,
			Timeout:    30 * time.Second,
		},
		Reader: ReaderConfig{
			Args: []string{},
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), appName+".log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", appName)
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), appName)
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appName)
	}
}

// ConfigPath returns the directory the config file is read from and saved to
func ConfigPath() string {
	return defaultConfigPath()
}

// newViper returns a viper instance with defaults and env overrides
// (MANGALAND_API_LANGUAGE, MANGALAND_STORAGE_DATA_DIR, ...)
func newViper() *viper.Viper {
	def := DefaultConfig()
	v := viper.New()

	v.SetDefault("api.base_url", def.API.BaseURL)
	v.SetDefault("api.uploads_url", def.API.UploadsURL)
	v.SetDefault("api.language", def.API.Language)
	v.SetDefault("api.page_size", def.API.PageSize)
	v.SetDefault("api.timeout", def.API.Timeout)
	v.SetDefault("reader.command", def.Reader.Command)
	v.SetDefault("reader.args", def.Reader.Args)
	v.SetDefault("reader.data_saver", def.Reader.DataSaver)
	v.SetDefault("storage.data_dir", def.Storage.DataDir)
	v.SetDefault("ui.default_status", def.UI.DefaultStatus)
	v.SetDefault("ui.default_genre", def.UI.DefaultGenre)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(defaultConfigPath(), ".")
}

// LoadConfigFrom loads config.yaml from the first of dirs that has one.
// A missing file is not an error.
func LoadConfigFrom(dirs ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Storage.DataDir = expandHome(cfg.Storage.DataDir)
	cfg.Logging.File = expandHome(cfg.Logging.File)
	if cfg.API.PageSize <= 0 {
		cfg.API.PageSize = DefaultConfig().API.PageSize
	}
	return cfg, nil
}

// SaveConfig saves the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return SaveConfigTo(defaultConfigPath(), cfg)
}

// SaveConfigTo writes cfg as dir/config.yaml with snake_case keys
func SaveConfigTo(dir string, cfg *Config) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("api.uploads_url", cfg.API.UploadsURL)
	v.Set("api.language", cfg.API.Language)
	v.Set("api.page_size", cfg.API.PageSize)
	v.Set("api.timeout", cfg.API.Timeout.String())

	v.Set("reader.command", cfg.Reader.Command)
	v.Set("reader.args", cfg.Reader.Args)
	v.Set("reader.data_saver", cfg.Reader.DataSaver)

	v.Set("storage.data_dir", cfg.Storage.DataDir)

	v.Set("ui.default_status", cfg.UI.DefaultStatus)
	v.Set("ui.default_genre", cfg.UI.DefaultGenre)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
