// Package config resolves application settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"cardledger/internal/vision"
)

// DefaultDatabasePath is used when database.path is not configured.
const DefaultDatabasePath = "$HOME/.local/share/cardledger/ledger.db"

// DatabasePath returns the configured SQLite path with ~ and
// environment variables expanded.
func DatabasePath() string {
	path := viper.GetString("database.path")
	if path == "" {
		path = DefaultDatabasePath
	}
	return ExpandPath(path)
}

// Vision builds the receipt-analysis provider configuration.
func Vision() vision.Config {
	return vision.Config{
		Provider:  viper.GetString("vision.provider"),
		APIKey:    viper.GetString("vision.api_key"),
		Model:     viper.GetString("vision.model"),
		MaxTokens: viper.GetInt("vision.max_tokens"),
	}
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
