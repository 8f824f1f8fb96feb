package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Backends accepted by DATA_BACKEND.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

var validBackends = []string{BackendJSON, BackendSQLite}

type Config struct {
	// Storage
	DataDir        string `yaml:"data_dir"`
	RecordsFile    string `yaml:"records_file"`
	EmotionMapFile string `yaml:"emotion_map_file"`
	DataBackend    string `yaml:"data_backend"`
	SQLiteDBPath   string `yaml:"sqlite_db_path"`

	// Weather
	WeatherAPIKey       string        `yaml:"weather_api_key"`
	WeatherBaseURL      string        `yaml:"weather_base_url"`
	WeatherCacheFile    string        `yaml:"weather_cache_file"`
	WeatherMemCacheSize int           `yaml:"weather_mem_cache_size"`
	WeatherCity         string        `yaml:"weather_city"`
	WeatherCountry      string        `yaml:"weather_country"`
	WeatherTimeout      time.Duration `yaml:"-"`
	WeatherTimeoutRaw   string        `yaml:"weather_timeout"`

	// AMQP
	AMQPURL      string `yaml:"amqp_url"`
	AMQPExchange string `yaml:"amqp_exchange"`
	AMQPQueue    string `yaml:"amqp_queue"`

	// Google Sheets export
	GoogleSpreadsheetID      string `yaml:"google_spreadsheet_id"`
	GoogleSheetName          string `yaml:"google_sheet_name"`
	GoogleServiceAccountFile string `yaml:"google_service_account_file"`
	GoogleServiceAccountJSON string `yaml:"-"`

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		DataDir:             "data",
		EmotionMapFile:      "emotion_map.json",
		DataBackend:         BackendJSON,
		WeatherBaseURL:      "https://api.openweathermap.org/data/2.5",
		WeatherMemCacheSize: 64,
		WeatherCity:         "Seoul",
		WeatherCountry:      "kr",
		WeatherTimeoutRaw:   "5s",
		AMQPExchange:        "maeum",
		AMQPQueue:           "export_records",
		GoogleSheetName:     "Records",
		LogLevel:            "info",
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("unmarshal config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	timeout, err := time.ParseDuration(cfg.WeatherTimeoutRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid weather timeout %q: %w", cfg.WeatherTimeoutRaw, err)
	}
	cfg.WeatherTimeout = timeout

	cfg.fillPaths()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.DataDir = getEnv("DATA_DIR", c.DataDir)
	c.RecordsFile = getEnv("RECORDS_FILE", c.RecordsFile)
	c.EmotionMapFile = getEnv("EMOTION_MAP_FILE", c.EmotionMapFile)
	c.DataBackend = strings.ToLower(getEnv("DATA_BACKEND", c.DataBackend))
	c.SQLiteDBPath = getEnv("SQLITE_DB_PATH", c.SQLiteDBPath)

	c.WeatherAPIKey = getEnv("WEATHER_API_KEY", c.WeatherAPIKey)
	c.WeatherBaseURL = getEnv("WEATHER_BASE_URL", c.WeatherBaseURL)
	c.WeatherCacheFile = getEnv("WEATHER_CACHE_FILE", c.WeatherCacheFile)
	c.WeatherMemCacheSize = getEnvInt("WEATHER_MEM_CACHE_SIZE", c.WeatherMemCacheSize)
	c.WeatherCity = getEnv("WEATHER_CITY", c.WeatherCity)
	c.WeatherCountry = getEnv("WEATHER_COUNTRY", c.WeatherCountry)
	c.WeatherTimeoutRaw = getEnv("WEATHER_TIMEOUT", c.WeatherTimeoutRaw)

	c.AMQPURL = getEnv("AMQP_URL", c.AMQPURL)
	c.AMQPExchange = getEnv("AMQP_EXCHANGE", c.AMQPExchange)
	c.AMQPQueue = getEnv("AMQP_QUEUE", c.AMQPQueue)

	c.GoogleSpreadsheetID = getEnv("GOOGLE_SPREADSHEET_ID", c.GoogleSpreadsheetID)
	c.GoogleSheetName = getEnv("GOOGLE_SHEET_NAME", c.GoogleSheetName)
	c.GoogleServiceAccountFile = getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", c.GoogleServiceAccountFile)
	c.GoogleServiceAccountJSON = getEnv("GOOGLE_SERVICE_ACCOUNT_JSON", c.GoogleServiceAccountJSON)

	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
}

// fillPaths places unset data files under DataDir.
func (c *Config) fillPaths() {
	if c.RecordsFile == "" {
		c.RecordsFile = filepath.Join(c.DataDir, "records.json")
	}
	if c.WeatherCacheFile == "" {
		c.WeatherCacheFile = filepath.Join(c.DataDir, "weather_cache.json")
	}
	if c.SQLiteDBPath == "" {
		c.SQLiteDBPath = filepath.Join(c.DataDir, "maeum.db")
	}
}

// WeatherEnabled reports whether the weather capability is configured.
func (c *Config) WeatherEnabled() bool {
	return strings.TrimSpace(c.WeatherAPIKey) != ""
}

// AMQPEnabled reports whether record-saved events should be published.
func (c *Config) AMQPEnabled() bool {
	return strings.TrimSpace(c.AMQPURL) != ""
}

// SheetsEnabled reports whether the Google Sheets exporter can be built.
func (c *Config) SheetsEnabled() bool {
	return strings.TrimSpace(c.GoogleSpreadsheetID) != ""
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var problems []string

	if !slices.Contains(validBackends, c.DataBackend) {
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	switch c.DataBackend {
	case BackendJSON:
		if c.RecordsFile == "" {
			problems = append(problems, "records file cannot be empty when using json backend")
		}
	case BackendSQLite:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	}

	if c.EmotionMapFile == "" {
		problems = append(problems, "emotion map file cannot be empty")
	}

	if c.WeatherEnabled() {
		if u, err := url.Parse(c.WeatherBaseURL); err != nil || u.Scheme == "" || u.Host == "" {
			problems = append(problems, fmt.Sprintf("invalid weather base URL '%s'", c.WeatherBaseURL))
		}
		if c.WeatherCity == "" || c.WeatherCountry == "" {
			problems = append(problems, "weather city and country are required when WEATHER_API_KEY is set")
		}
	}
	if c.WeatherMemCacheSize < 1 {
		problems = append(problems, fmt.Sprintf("invalid weather memory cache size %d: must be at least 1", c.WeatherMemCacheSize))
	}
	if c.WeatherTimeout < 0 {
		problems = append(problems, fmt.Sprintf("invalid weather timeout %v: must not be negative", c.WeatherTimeout))
	} else if c.WeatherTimeout > time.Minute {
		problems = append(problems, fmt.Sprintf("invalid weather timeout %v: must be at most 1 minute", c.WeatherTimeout))
	}

	if c.AMQPEnabled() {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.SheetsEnabled() && c.GoogleSheetName == "" {
		problems = append(problems, "Google Sheet name is required when GOOGLE_SPREADSHEET_ID is set")
	}

	switch strings.ToLower(c.LogLevel) {
	case "", "debug", "info", "warn", "warning", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// ValidateExport checks the settings only the export worker needs.
func (c *Config) ValidateExport() error {
	if !c.AMQPEnabled() {
		return errors.New("AMQP_URL is required for the export worker")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}
