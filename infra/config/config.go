package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/CrestNiraj12/chantv/infra/logging"
)

// EnvPrefix prefixes every environment variable, e.g. CHANTV_BOARD.
const EnvPrefix = "CHANTV"

const (
	StorageFile   = "file"
	StorageSQLite = "sqlite"

	maxPageSize = 150
	configName  = "config"
)

var boardRe = regexp.MustCompile(`^[a-z0-9]+$`)

// Config holds application-level configuration.
type Config struct {
	Board         string        // Board short name, without slashes
	APIBaseURL    string        // e.g. "https://a.4cdn.org"
	MediaBaseURL  string        // e.g. "https://i.4cdn.org"
	SiteURL       string        // Thread pages, e.g. "https://boards.4chan.org"
	DataDir       string        // Stores, database and log file
	Storage       string        // "file" or "sqlite"
	PageSize      int           // Threads per page request
	EnrichLimit   int           // Threads per page enriched with details; <0 means all
	AutoLoadDelay time.Duration // Delay before loading more after reaching the end
	SessionTTL    time.Duration // How long a loaded feed is reused
	HTTPTimeout   time.Duration
	Player        string // External player command; empty opens the browser
	LogLevel      string
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("board", "wsg")
	v.SetDefault("api_base_url", "https://a.4cdn.org")
	v.SetDefault("media_base_url", "https://i.4cdn.org")
	v.SetDefault("site_url", "https://boards.4chan.org")
	v.SetDefault("data_dir", "")
	v.SetDefault("storage", StorageFile)
	v.SetDefault("page_size", 30)
	v.SetDefault("enrich_limit", 10)
	v.SetDefault("auto_load_delay", 300*time.Millisecond)
	v.SetDefault("session_ttl", 5*time.Minute)
	v.SetDefault("http_timeout", 15*time.Second)
	v.SetDefault("player", "")
	v.SetDefault("log_level", "info")
}

// Load reads configuration from v, environment variables and an optional
// config.yaml in the data directory.
//
//	CHANTV_BOARD        board to browse (default: "wsg")
//	CHANTV_DATA_DIR     data directory (default: ~/.config/chantv)
//	CHANTV_STORAGE      "file" or "sqlite" (default: "file")
//	CHANTV_PAGE_SIZE    threads per page (default: 30)
//	CHANTV_PLAYER       external media player command (default: browser)
func Load(v *viper.Viper) (Config, error) {
	dataDir, err := ResolveDataDir(v)
	if err != nil {
		return Config{}, err
	}

	v.SetConfigName(configName)
	v.SetConfigType("yaml")
	v.AddConfigPath(dataDir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	cfg := Config{
		Board:         strings.Trim(strings.TrimSpace(v.GetString("board")), "/"),
		APIBaseURL:    strings.TrimRight(v.GetString("api_base_url"), "/"),
		MediaBaseURL:  strings.TrimRight(v.GetString("media_base_url"), "/"),
		SiteURL:       strings.TrimRight(v.GetString("site_url"), "/"),
		DataDir:       dataDir,
		Storage:       strings.ToLower(v.GetString("storage")),
		PageSize:      v.GetInt("page_size"),
		EnrichLimit:   v.GetInt("enrich_limit"),
		AutoLoadDelay: v.GetDuration("auto_load_delay"),
		SessionTTL:    v.GetDuration("session_ttl"),
		HTTPTimeout:   v.GetDuration("http_timeout"),
		Player:        strings.TrimSpace(v.GetString("player")),
		LogLevel:      v.GetString("log_level"),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the application cannot run with.
func (c Config) Validate() error {
	if !boardRe.MatchString(c.Board) {
		return fmt.Errorf("invalid board %q: lowercase letters and digits only", c.Board)
	}
	for name, raw := range map[string]string{
		"api_base_url":   c.APIBaseURL,
		"media_base_url": c.MediaBaseURL,
		"site_url":       c.SiteURL,
	} {
		if err := validateURL(raw); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
	}
	if c.Storage != StorageFile && c.Storage != StorageSQLite {
		return fmt.Errorf("invalid storage %q: must be %q or %q", c.Storage, StorageFile, StorageSQLite)
	}
	if c.PageSize <= 0 || c.PageSize > maxPageSize {
		return fmt.Errorf("invalid page_size %d: must be between 1 and %d", c.PageSize, maxPageSize)
	}
	if c.AutoLoadDelay <= 0 || c.SessionTTL <= 0 || c.HTTPTimeout <= 0 {
		return fmt.Errorf("auto_load_delay, session_ttl and http_timeout must be positive")
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.DataDir == "" {
		return fmt.Errorf("data_dir must not be empty")
	}
	return nil
}

// ResolveDataDir applies defaults and environment variables to v and returns
// the data directory. It does not read the config file, so it works while
// the file is invalid.
func ResolveDataDir(v *viper.Viper) (string, error) {
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	dataDir, err := expandHome(v.GetString("data_dir"))
	if err != nil {
		return "", err
	}
	if dataDir == "" {
		return defaultDataDir()
	}
	return dataDir, nil
}

// FilePath is the optional config file inside dataDir.
func FilePath(dataDir string) string {
	return filepath.Join(dataDir, configName+".yaml")
}

// Template is written to a new config file before it is opened for editing.
const Template = `# chantv configuration. Environment variables (CHANTV_*) and flags win
# over values set here.

# board: wsg
# storage: file            # file or sqlite
# page_size: 30
# enrich_limit: 10         # threads per page enriched with details, -1 for all
# auto_load_delay: 300ms
# session_ttl: 5m
# http_timeout: 15s
# player: ""               # e.g. "mpv --loop"; empty opens the browser
# log_level: info
`

// LogPath is where the application log is written.
func (c Config) LogPath() string {
	return filepath.Join(c.DataDir, "chantv.log")
}

// DatabasePath is the SQLite file used by the sqlite storage backend.
func (c Config) DatabasePath() string {
	return filepath.Join(c.DataDir, "chantv.db")
}

func validateURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return fmt.Errorf("must be an absolute URL")
	}
	if parsed.Scheme != "https" {
		return fmt.Errorf("only https is allowed")
	}
	return nil
}

func defaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "chantv"), nil
}

func expandHome(p string) (string, error) {
	p = strings.TrimSpace(p)
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
