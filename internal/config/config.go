package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Providers ProvidersConfig `mapstructure:"providers"`
	UI        UIConfig        `mapstructure:"ui"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// ProvidersConfig holds the remote collaborator endpoints
type ProvidersConfig struct {
	AladhanURL     string `mapstructure:"aladhan_url"`
	Method         int    `mapstructure:"method"` // aladhan calculation method (2 = ISNA)
	IPAPIURL       string `mapstructure:"ipapi_url"`
	ArcGISURL      string `mapstructure:"arcgis_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// UIConfig holds widget display preferences
type UIConfig struct {
	TwentyFourHour bool `mapstructure:"twenty_four_hour"`
}

// StorageConfig holds persistence settings
type StorageConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Providers: ProvidersConfig{
			AladhanURL:     "http://api.aladhan.com",
			Method:         2,
			IPAPIURL:       "http://ip-api.com",
			ArcGISURL:      "https://geocode.arcgis.com",
			TimeoutSeconds: 10,
		},
		UI: UIConfig{
			TwentyFourHour: true,
		},
		Storage: StorageConfig{
			DataDir: defaultDataPath(),
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "salat", "salat.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "salat", "salat.log")
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "salat")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "salat")
	}
}

// defaultConfigPath returns the default config file path for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "salat")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "salat")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(defaultConfigPath())
	viper.AddConfigPath(".")

	// Environment variable overrides
	viper.SetEnvPrefix("SALAT")
	viper.AutomaticEnv()

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := viper.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}
