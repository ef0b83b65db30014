package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const DEFAULT_LISTEN = ":1487"
const QR_IMAGE_SIZE = 256

type Config struct {
	LogLevel string `mapstructure:"log_level"`

	// Address the HTTP server binds to, e.g. ":1487" or "127.0.0.1:8080"
	Listen string `mapstructure:"listen"`

	// Comma separated list of allowed CIDR networks. Empty means allow all.
	AllowedNetworks string `mapstructure:"allowed_networks"`

	// Public URL of the status page. Used for the QR code. Empty means detect from request.
	BaseURL string `mapstructure:"base_url"`

	// Number of trailing days in the status history, not counting today.
	WindowDays int `mapstructure:"window_days"`
	// How long a computed status history is served from cache. Zero disables caching.
	CacheTTL time.Duration `mapstructure:"cache_ttl"`

	DocsFile     string `mapstructure:"docs_file"`
	TemplatesDir string `mapstructure:"templates_dir"`
	AssetsDir    string `mapstructure:"assets_dir"`
	// Logo and favicon paths. Relative paths resolve under AssetsDir.
	LogoImg    string `mapstructure:"logo_img"`
	FaviconImg string `mapstructure:"favicon_img"`

	Storage Storage `mapstructure:"storage"`
}

var Cfg *Config

// Check if running in Docker container by checking for the presence of /.dockerenv file
func runningInDocker() bool {
	if _, err := os.Stat("/.dockerenv"); err == nil {
		return true
	}
	return false
}

func getConfigPath() string {
	if runningInDocker() {
		return "/app/instance"
	}
	return "./instance"
}

// LoadConfig reads configuration from an optional config file and environment variables.
// The loaded configuration is also stored in Cfg.
func LoadConfig(configFile ...string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.SetConfigName("config")
	v.AddConfigPath(getConfigPath())
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	for _, path := range configFile {
		if path != "" {
			v.SetConfigFile(path)
		}
	}

	for k, val := range Defaults() {
		v.SetDefault(k, val)
	}

	// Load configuration from environment variables
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("unable to read config file: %w", err)
		}
		slog.Debug("No config file found, using defaults and environment")
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %v", err)
	}

	if cfg.WindowDays < 0 {
		slog.Warn("WINDOW_DAYS must not be negative, using default", slog.Int("actual", cfg.WindowDays))
		cfg.WindowDays = defaults["window_days"].(int)
	}

	// Convert relative sqlite path to absolute instance folder
	if cfg.Storage.SQLite != nil {
		path := cfg.Storage.SQLite.Path
		if path == "" {
			return nil, fmt.Errorf("storage.sqlite.path must not be empty")
		} else if path == ":memory:" {
			// In-memory database, do nothing
		} else if !filepath.IsAbs(path) {
			cfg.Storage.SQLite.Path = filepath.Join(getConfigPath(), path)
		}
	}

	cfg.LogoImg = cfg.assetPath(cfg.LogoImg)
	cfg.FaviconImg = cfg.assetPath(cfg.FaviconImg)

	Cfg = &cfg
	return &cfg, nil
}

func (cfg *Config) assetPath(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(cfg.AssetsDir, path)
}
