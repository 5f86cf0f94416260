package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const appDir = "jockey"

type Config struct {
	// Songs queued when jockey starts without arguments and nothing was restored
	Library LibraryConfig `koanf:"library"`

	Player PlayerConfig `koanf:"player"`
	UI     UIConfig     `koanf:"ui"`
	Log    LogConfig    `koanf:"log"`

	// Last.fm credentials (enables scrobbling when configured)
	Lastfm    LastfmConfig    `koanf:"lastfm"`
	Scrobbler ScrobblerConfig `koanf:"scrobbler"`

	Notifications NotificationsConfig `koanf:"notifications"`
	MPRIS         MPRISConfig         `koanf:"mpris"`
	PlayCount     PlayCountConfig     `koanf:"playcount"`
}

// LibraryConfig lists default music locations.
type LibraryConfig struct {
	Paths []string `koanf:"paths"` // files or directories, scanned recursively
}

// PlayerConfig holds playback defaults.
type PlayerConfig struct {
	Shuffle       bool     `koanf:"shuffle"`
	Repeat        string   `koanf:"repeat"`          // "off", "all" or "one" (default: "off")
	ResumeOnStart *bool    `koanf:"resume_on_start"` // restore the saved queue (default: true)
	Volume        *float64 `koanf:"volume"`          // 0.0-1.0, unset keeps the last saved volume
	HistorySize   int      `koanf:"history_size"`    // undo depth (default: 50)
}

// UIConfig holds display settings.
type UIConfig struct {
	Icons    string `koanf:"icons"`    // "nerd", "unicode" or "none" (default: "unicode")
	Expanded bool   `koanf:"expanded"` // start with the two-line player bar
}

// LogConfig holds log file settings.
type LogConfig struct {
	Level      string `koanf:"level"`       // debug, info, warn, error (default: info)
	File       string `koanf:"file"`        // default: $XDG_STATE_HOME/jockey/jockey.log
	MaxSize    int    `koanf:"max_size"`    // MB before rotation
	MaxBackups int    `koanf:"max_backups"` // rotated files kept
	MaxAge     int    `koanf:"max_age"`     // days
}

// LastfmConfig holds Last.fm API credentials.
type LastfmConfig struct {
	APIKey    string `koanf:"api_key"`
	APISecret string `koanf:"api_secret"`
}

// ScrobblerConfig holds scrobbling behavior.
type ScrobblerConfig struct {
	Enabled       *bool         `koanf:"enabled"`         // default: true when Last.fm is configured
	RetryInterval time.Duration `koanf:"retry_interval"`  // pending scrobble retry period (default: 5m)
	PendingMaxAge time.Duration `koanf:"pending_max_age"` // pending scrobbles older than this are dropped (default: 336h)
}

// NotificationsConfig controls desktop notifications.
type NotificationsConfig struct {
	Enabled   *bool  `koanf:"enabled"`    // default: true
	TimeoutMS *int   `koanf:"timeout_ms"` // -1 server default, 0 never expires (default: 5000)
	AppName   string `koanf:"app_name"`   // name shown by the notification server (default: Jockey)
	Icon      string `koanf:"icon"`       // icon name or path used when a song has no cover
}

// MPRISConfig controls the MPRIS D-Bus interface.
type MPRISConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// PlayCountConfig controls play and skip counting.
type PlayCountConfig struct {
	Enabled *bool `koanf:"enabled"` // default: true
}

// Load reads the config files in priority order.
func Load() (*Config, error) {
	return LoadFiles(getConfigPaths()...)
}

// LoadFiles reads the given TOML files, later files overriding earlier
// ones. Missing files are skipped.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}

	// Expand ~ in library paths
	for i, p := range cfg.Library.Paths {
		cfg.Library.Paths[i] = expandPath(p)
	}

	if cfg.Log.File != "" {
		cfg.Log.File = expandPath(cfg.Log.File)
	}
	cfg.Notifications.Icon = expandPath(cfg.Notifications.Icon)

	cfg.Player.Repeat = strings.ToLower(strings.TrimSpace(cfg.Player.Repeat))

	return cfg, nil
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. ~/.config/jockey/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", appDir, "config.toml"))
	}

	// 2. ./config.toml (pwd, highest priority)
	paths = append(paths, "config.toml")

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// HasLastfmConfig returns true if Last.fm scrobbling is configured.
func (c *Config) HasLastfmConfig() bool {
	return c.Lastfm.APIKey != "" && c.Lastfm.APISecret != ""
}

// GetPlayerConfig returns the player configuration with defaults applied.
func (c *Config) GetPlayerConfig() PlayerConfig {
	cfg := c.Player

	switch cfg.Repeat {
	case "off", "all", "one":
	default:
		cfg.Repeat = "off"
	}
	if cfg.ResumeOnStart == nil {
		resume := true
		cfg.ResumeOnStart = &resume
	}
	if cfg.Volume != nil {
		v := min(max(*cfg.Volume, 0), 1)
		cfg.Volume = &v
	}
	if cfg.HistorySize <= 0 {
		cfg.HistorySize = 50
	}

	return cfg
}

// GetUIConfig returns the display configuration with defaults applied.
func (c *Config) GetUIConfig() UIConfig {
	cfg := c.UI
	switch cfg.Icons {
	case "nerd", "unicode", "none":
	default:
		cfg.Icons = "unicode"
	}
	return cfg
}

// GetLogConfig returns the log configuration with defaults applied.
func (c *Config) GetLogConfig() LogConfig {
	cfg := c.Log
	if cfg.Level == "" {
		cfg.Level = "info"
	}
	if cfg.File == "" {
		cfg.File = filepath.Join(xdg.StateHome, appDir, "jockey.log")
	}
	return cfg
}

// GetScrobblerConfig returns the scrobbler configuration with defaults applied.
func (c *Config) GetScrobblerConfig() ScrobblerConfig {
	cfg := c.Scrobbler
	enabled := boolOr(cfg.Enabled, true) && c.HasLastfmConfig()
	cfg.Enabled = &enabled
	if cfg.RetryInterval <= 0 {
		cfg.RetryInterval = 5 * time.Minute
	}
	if cfg.PendingMaxAge <= 0 {
		cfg.PendingMaxAge = 14 * 24 * time.Hour
	}
	return cfg
}

// ScrobblingEnabled reports whether scrobbles should be submitted.
func (c *Config) ScrobblingEnabled() bool {
	return *c.GetScrobblerConfig().Enabled
}

// NotificationsEnabled reports whether desktop notifications are shown.
func (c *Config) NotificationsEnabled() bool {
	return boolOr(c.Notifications.Enabled, true)
}

// NotificationTimeout returns the notification timeout in milliseconds.
func (c *Config) NotificationTimeout() int32 {
	if c.Notifications.TimeoutMS == nil {
		return 5000
	}
	t := max(*c.Notifications.TimeoutMS, -1)
	return int32(min(t, 1<<31-1)) //nolint:gosec // bounded above
}

// MPRISEnabled reports whether the MPRIS interface is published.
func (c *Config) MPRISEnabled() bool {
	return boolOr(c.MPRIS.Enabled, true)
}

// PlayCountEnabled reports whether plays and skips are counted.
func (c *Config) PlayCountEnabled() bool {
	return boolOr(c.PlayCount.Enabled, true)
}
