package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TMDB
	TMDBAPIKey   string
	TMDBBaseURL  string // empty means the public TMDB API
	TMDBLanguage string

	// Basic auth
	BasicAuthUser string
	BasicAuthPass string

	// Server
	ServerPort string

	// Paths
	DatabaseFile string // $CONFIG_DIR/wishflix.db

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = viper.ReadInConfig()

	viper.SetDefault("TMDB_LANGUAGE", "en-US")
	viper.SetDefault("BASIC_AUTH_USER", "user")
	viper.SetDefault("BASIC_AUTH_PASS", "123")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")

	configDir := viper.GetString("CONFIG_DIR")
	if configDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config", "wishflix")
	} else {
		absPath, err := filepath.Abs(configDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for CONFIG_DIR: %w", err)
		}
		configDir = absPath
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	config := &Config{
		TMDBAPIKey:   viper.GetString("TMDB_API_KEY"),
		TMDBBaseURL:  viper.GetString("TMDB_BASE_URL"),
		TMDBLanguage: viper.GetString("TMDB_LANGUAGE"),

		BasicAuthUser: viper.GetString("BASIC_AUTH_USER"),
		BasicAuthPass: viper.GetString("BASIC_AUTH_PASS"),

		ServerPort: viper.GetString("SERVER_PORT"),

		DatabaseFile: filepath.Join(configDir, "wishflix.db"),

		LogLevel: viper.GetString("LOG_LEVEL"),
	}

	if config.TMDBAPIKey == "" {
		return nil, fmt.Errorf("TMDB_API_KEY is required")
	}

	return config, nil
}
