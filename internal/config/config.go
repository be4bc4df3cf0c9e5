package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all configuration for the daemon
type Config struct {
	DBPath       string `validate:"required"`
	BatchSize    int    `validate:"gt=0"`
	BatchTimeout int    `validate:"gt=0"` // seconds
	Fleet        FleetConfig
	Export       ExportConfig
	Log          LogConfig
}

// FleetConfig holds simulation settings
type FleetConfig struct {
	Size         int   `validate:"gte=0"`
	Seed         int64 // 0 seeds from the clock
	TickInterval int   `validate:"gt=0"` // seconds
}

// ExportConfig holds GeoJSON snapshot settings
type ExportConfig struct {
	Path     string // empty disables the export
	Interval int    `validate:"gt=0"` // seconds
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from config file and environment variables
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("db_path", "vessel_data.db")
	v.SetDefault("batch_size", 100)
	v.SetDefault("batch_timeout", 5)
	v.SetDefault("fleet.size", 30)
	v.SetDefault("fleet.seed", 0)
	v.SetDefault("fleet.tick_interval", 30)
	v.SetDefault("export.path", "")
	v.SetDefault("export.interval", 30)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/vessel_trmnl")
	v.AddConfigPath(".")

	// Set from the -config flag in main.go
	if configPath := os.Getenv("VESSEL_TRMNL_CONFIG_PATH"); configPath != "" {
		v.SetConfigFile(configPath)
	}

	// Read config file (if it exists)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK - we'll use defaults + env vars
	}

	v.SetEnvPrefix("VESSEL_TRMNL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		DBPath:       v.GetString("db_path"),
		BatchSize:    v.GetInt("batch_size"),
		BatchTimeout: v.GetInt("batch_timeout"),
		Fleet: FleetConfig{
			Size:         v.GetInt("fleet.size"),
			Seed:         v.GetInt64("fleet.seed"),
			TickInterval: v.GetInt("fleet.tick_interval"),
		},
		Export: ExportConfig{
			Path:     v.GetString("export.path"),
			Interval: v.GetInt("export.interval"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

var structValidator = validator.New()

// validate validates the configuration values
func validate(cfg *Config) error {
	if err := structValidator.Struct(cfg); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[strings.ToLower(cfg.Log.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", cfg.Log.Level)
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[strings.ToLower(cfg.Log.Format)] {
		return fmt.Errorf("invalid log format: %s (must be text or json)", cfg.Log.Format)
	}

	return nil
}
