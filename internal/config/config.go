package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	App       AppConfig
	Providers ProvidersConfig
	GeoIP     GeoIPConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

type AppConfig struct {
	Env  string
	Port int
	Host string
}

type ProvidersConfig struct {
	IPAPICoBaseURL          string
	IPAPIComBaseURL         string
	IPAPIISBaseURL          string
	ShodanInternetDBBaseURL string
	AbuseIPDBBaseURL        string
	// Empty key disables AbuseIPDB
	AbuseIPDBKey string
	HTTPTimeout  time.Duration
	CacheTTL     time.Duration
}

type GeoIPConfig struct {
	// Optional GeoIP2/GeoLite2 City database used before the edge headers
	DBPath string
}

type RateLimitConfig struct {
	PerMinute int
}

type LogConfig struct {
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

// Load reads configuration from the environment and an optional config.yaml
func Load() (*Config, error) {
	return LoadFrom("")
}

// LoadFrom is Load with an explicit config file. An empty path searches the
// default locations.
func LoadFrom(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("/app")
		viper.AddConfigPath("/etc/ipflix")
	}

	// Environment variables
	viper.AutomaticEnv()

	bindEnvVars()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" {
			return nil, fmt.Errorf("read config file %s: %w", path, err)
		}
		if !errors.As(err, &notFound) {
			slog.Warn("Error reading config file", "error", err)
		}
	}

	config := &Config{
		App: AppConfig{
			Env:  viper.GetString("APP_ENV"),
			Port: viper.GetInt("APP_PORT"),
			Host: viper.GetString("APP_HOST"),
		},
		Providers: ProvidersConfig{
			IPAPICoBaseURL:          viper.GetString("IPAPICO_BASE_URL"),
			IPAPIComBaseURL:         viper.GetString("IPAPICOM_BASE_URL"),
			IPAPIISBaseURL:          viper.GetString("IPAPIIS_BASE_URL"),
			ShodanInternetDBBaseURL: viper.GetString("SHODAN_INTERNETDB_BASE_URL"),
			AbuseIPDBBaseURL:        viper.GetString("ABUSEIPDB_BASE_URL"),
			AbuseIPDBKey:            viper.GetString("ABUSEIPDB_API_KEY"),
			HTTPTimeout:             viper.GetDuration("HTTP_TIMEOUT"),
			CacheTTL:                viper.GetDuration("UPSTREAM_CACHE_TTL"),
		},
		GeoIP: GeoIPConfig{
			DBPath: viper.GetString("GEOIP_DB_PATH"),
		},
		RateLimit: RateLimitConfig{
			PerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Log: LogConfig{
			File:       viper.GetString("LOG_FILE"),
			MaxSizeMB:  viper.GetInt("LOG_MAX_SIZE_MB"),
			MaxBackups: viper.GetInt("LOG_MAX_BACKUPS"),
			MaxAgeDays: viper.GetInt("LOG_MAX_AGE_DAYS"),
			Compress:   viper.GetBool("LOG_COMPRESS"),
		},
	}

	if config.App.Port <= 0 || config.App.Port > 65535 {
		return nil, fmt.Errorf("invalid APP_PORT: %d", config.App.Port)
	}

	return config, nil
}

func bindEnvVars() {
	// App
	viper.BindEnv("APP_ENV")
	viper.BindEnv("APP_PORT")
	viper.BindEnv("APP_HOST")

	// Upstream providers
	viper.BindEnv("IPAPICO_BASE_URL")
	viper.BindEnv("IPAPICOM_BASE_URL")
	viper.BindEnv("IPAPIIS_BASE_URL")
	viper.BindEnv("SHODAN_INTERNETDB_BASE_URL")
	viper.BindEnv("ABUSEIPDB_BASE_URL")
	viper.BindEnv("ABUSEIPDB_API_KEY")
	viper.BindEnv("HTTP_TIMEOUT")
	viper.BindEnv("UPSTREAM_CACHE_TTL")

	// GeoIP
	viper.BindEnv("GEOIP_DB_PATH")

	// Rate limiting
	viper.BindEnv("RATE_LIMIT_PER_MINUTE")

	// Logging
	viper.BindEnv("LOG_FILE")
	viper.BindEnv("LOG_MAX_SIZE_MB")
	viper.BindEnv("LOG_MAX_BACKUPS")
	viper.BindEnv("LOG_MAX_AGE_DAYS")
	viper.BindEnv("LOG_COMPRESS")
}

func setDefaults() {
	// App defaults
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", 8080)
	viper.SetDefault("APP_HOST", "0.0.0.0")

	// Provider defaults
	viper.SetDefault("IPAPICO_BASE_URL", "https://ipapi.co")
	viper.SetDefault("IPAPICOM_BASE_URL", "http://ip-api.com")
	viper.SetDefault("IPAPIIS_BASE_URL", "https://api.ipapi.is")
	viper.SetDefault("SHODAN_INTERNETDB_BASE_URL", "https://internetdb.shodan.io")
	viper.SetDefault("ABUSEIPDB_BASE_URL", "https://api.abuseipdb.com/api/v2")
	viper.SetDefault("HTTP_TIMEOUT", 10*time.Second)
	viper.SetDefault("UPSTREAM_CACHE_TTL", time.Hour)

	// Rate limit defaults
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 100)

	// Log rotation defaults
	viper.SetDefault("LOG_MAX_SIZE_MB", 100)
	viper.SetDefault("LOG_MAX_BACKUPS", 5)
	viper.SetDefault("LOG_MAX_AGE_DAYS", 30)
	viper.SetDefault("LOG_COMPRESS", true)
}

func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}

// SetupLogger creates the process logger on stdout and installs it as the
// slog default.
func SetupLogger(cfg *Config) *slog.Logger {
	logger := NewLogger(cfg, os.Stdout)
	slog.SetDefault(logger)
	return logger
}

// NewLogger builds a logger writing to out, teed to a rotating file when
// LOG_FILE is set. Development gets debug-level text, anything else JSON.
func NewLogger(cfg *Config, out io.Writer) *slog.Logger {
	var handler slog.Handler

	if cfg.Log.File != "" {
		out = io.MultiWriter(out, &lumberjack.Logger{
			Filename:   cfg.Log.File,
			MaxSize:    cfg.Log.MaxSizeMB,
			MaxBackups: cfg.Log.MaxBackups,
			MaxAge:     cfg.Log.MaxAgeDays,
			Compress:   cfg.Log.Compress,
		})
	}

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if cfg.IsDevelopment() {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(out, opts)
	} else {
		handler = slog.NewJSONHandler(out, opts)
	}

	return slog.New(handler)
}
