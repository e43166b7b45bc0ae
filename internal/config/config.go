package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	Monday MondayConfig
}

type ServerConfig struct {
	Port string
	Mode string
}

type MondayConfig struct {
	APIURL        string
	APIKey        string
	BoardID       string
	PhoneColumnID string
	DefaultItemID string
	UserIDs       []int64
	Timeout       time.Duration
	PageLimit     int
}

func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.SetEnvPrefix("BRIDGE")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("server.mode", "release")
	viper.SetDefault("monday.apiurl", "https://api.monday.com/v2")
	viper.SetDefault("monday.timeout", "10s")
	viper.SetDefault("monday.pagelimit", 500)

	var cfg Config
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	// Override with environment variables. These names are the deployment
	// contract; the API key is deliberately not validated here so that a
	// missing key surfaces as a 401 from the Monday API, not a failed boot.
	if port := os.Getenv("PORT"); port != "" {
		cfg.Server.Port = port
	}
	if url := os.Getenv("MONDAY_API_URL"); url != "" {
		cfg.Monday.APIURL = url
	}
	if key := os.Getenv("MONDAY_API_KEY"); key != "" {
		cfg.Monday.APIKey = key
	}
	if id := firstEnv("MONDAY_CONTACT_BOARD_ID", "BOARD_ID"); id != "" {
		cfg.Monday.BoardID = id
	}
	if id := firstEnv("MONDAY_PHONE_COLUMN_ID", "PHONE_COLUMN_ID"); id != "" {
		cfg.Monday.PhoneColumnID = id
	}
	if id := os.Getenv("DEFAULT_ITEM_ID"); id != "" {
		cfg.Monday.DefaultItemID = id
	}
	if t := os.Getenv("MONDAY_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil {
			return nil, fmt.Errorf("invalid MONDAY_TIMEOUT: %w", err)
		}
		cfg.Monday.Timeout = d
	}

	cfg.Monday.UserIDs = parseUserIDs(os.Getenv("MONDAY_USER_IDS"), os.Getenv("MONDAY_USER_ID"))

	return &cfg, nil
}

// parseUserIDs reads the comma-separated notification recipient list, falling
// back to the single-user variable. Invalid entries are skipped.
func parseUserIDs(list, single string) []int64 {
	var ids []int64
	for _, raw := range strings.Split(list, ",") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) > 0 {
		return ids
	}
	if single != "" {
		if id, err := strconv.ParseInt(single, 10, 64); err == nil {
			return []int64{id}
		}
	}
	return nil
}

func firstEnv(names ...string) string {
	for _, name := range names {
		if v := os.Getenv(name); v != "" {
			return v
		}
	}
	return ""
}
