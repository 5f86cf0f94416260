//nolint:goconst // test cases intentionally repeat strings for readability
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("Could not get home dir: %v", err)
	}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "tilde expands to home",
			input:    "~/music",
			expected: filepath.Join(home, "music"),
		},
		{
			name:     "tilde with nested path",
			input:    "~/music/library/albums",
			expected: filepath.Join(home, "music", "library", "albums"),
		},
		{
			name:     "absolute path unchanged",
			input:    "/usr/local/music",
			expected: "/usr/local/music",
		},
		{
			name:     "relative path unchanged",
			input:    "music/albums",
			expected: "music/albums",
		},
		{
			name:     "empty string unchanged",
			input:    "",
			expected: "",
		},
		{
			name:     "tilde only",
			input:    "~",
			expected: home,
		},
		{
			name:     "tilde with slash",
			input:    "~/",
			expected: filepath.Join(home, ""),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := expandPath(tt.input)
			if result != tt.expected {
				t.Errorf("expandPath(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	// Should have at least one path
	if len(paths) == 0 {
		t.Error("getConfigPaths() returned empty slice")
	}

	// Last path should be local config.toml
	lastPath := paths[len(paths)-1]
	if lastPath != "config.toml" {
		t.Errorf("last config path = %q, want %q", lastPath, "config.toml")
	}

	// If we have home dir, first path should be ~/.config/jockey/config.toml
	if home, err := os.UserHomeDir(); err == nil {
		expectedFirst := filepath.Join(home, ".config", "jockey", "config.toml")
		if paths[0] != expectedFirst {
			t.Errorf("first config path = %q, want %q", paths[0], expectedFirst)
		}
	}
}

func TestHasLastfmConfig(t *testing.T) {
	tests := []struct {
		name     string
		config   Config
		expected bool
	}{
		{
			name: "both APIKey and APISecret set",
			config: Config{
				Lastfm: LastfmConfig{
					APIKey:    "my-api-key",
					APISecret: "my-api-secret",
				},
			},
			expected: true,
		},
		{
			name: "only APIKey set",
			config: Config{
				Lastfm: LastfmConfig{
					APIKey: "my-api-key",
				},
			},
			expected: false,
		},
		{
			name: "only APISecret set",
			config: Config{
				Lastfm: LastfmConfig{
					APISecret: "my-api-secret",
				},
			},
			expected: false,
		},
		{
			name:     "neither set",
			config:   Config{},
			expected: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.config.HasLastfmConfig()
			if result != tt.expected {
				t.Errorf("HasLastfmConfig() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestGetPlayerConfig_Defaults(t *testing.T) {
	cfg := (&Config{}).GetPlayerConfig()

	if cfg.Repeat != "off" {
		t.Errorf("Repeat = %q, want %q", cfg.Repeat, "off")
	}
	if cfg.ResumeOnStart == nil || !*cfg.ResumeOnStart {
		t.Error("ResumeOnStart should default to true")
	}
	if cfg.Volume != nil {
		t.Errorf("Volume = %v, want nil", *cfg.Volume)
	}
	if cfg.HistorySize != 50 {
		t.Errorf("HistorySize = %d, want 50", cfg.HistorySize)
	}
}

func TestGetPlayerConfig_Normalizes(t *testing.T) {
	resume := false
	volume := 1.7
	c := &Config{Player: PlayerConfig{
		Repeat:        "sometimes",
		ResumeOnStart: &resume,
		Volume:        &volume,
		HistorySize:   10,
	}}

	cfg := c.GetPlayerConfig()
	assert.Equal(t, "off", cfg.Repeat)
	assert.False(t, *cfg.ResumeOnStart)
	assert.InDelta(t, 1.0, *cfg.Volume, 1e-9)
	assert.Equal(t, 10, cfg.HistorySize)
	assert.InDelta(t, 1.7, volume, 1e-9, "original value untouched")
}

func TestGetScrobblerConfig(t *testing.T) {
	disabled := false
	lastfm := LastfmConfig{APIKey: "k", APISecret: "s"}

	tests := []struct {
		name    string
		config  Config
		enabled bool
	}{
		{"no credentials", Config{}, false},
		{"credentials enable by default", Config{Lastfm: lastfm}, true},
		{"explicitly disabled", Config{Lastfm: lastfm, Scrobbler: ScrobblerConfig{Enabled: &disabled}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := tt.config.GetScrobblerConfig()
			if *cfg.Enabled != tt.enabled {
				t.Errorf("Enabled = %v, want %v", *cfg.Enabled, tt.enabled)
			}
			if tt.config.ScrobblingEnabled() != tt.enabled {
				t.Errorf("ScrobblingEnabled() = %v, want %v", tt.config.ScrobblingEnabled(), tt.enabled)
			}
			if cfg.RetryInterval != 5*time.Minute {
				t.Errorf("RetryInterval = %v, want 5m", cfg.RetryInterval)
			}
			if cfg.PendingMaxAge != 14*24*time.Hour {
				t.Errorf("PendingMaxAge = %v, want 336h", cfg.PendingMaxAge)
			}
		})
	}
}

func TestGetLogConfig_Defaults(t *testing.T) {
	cfg := (&Config{}).GetLogConfig()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "jockey.log", filepath.Base(cfg.File))
	assert.Equal(t, "jockey", filepath.Base(filepath.Dir(cfg.File)))
}

func TestGetUIConfig(t *testing.T) {
	tests := []struct {
		icons string
		want  string
	}{
		{"", "unicode"},
		{"nerd", "nerd"},
		{"none", "none"},
		{"emoji", "unicode"},
	}
	for _, tt := range tests {
		cfg := &Config{UI: UIConfig{Icons: tt.icons}}
		assert.Equal(t, tt.want, cfg.GetUIConfig().Icons, "icons %q", tt.icons)
	}
}

func TestToggles_Defaults(t *testing.T) {
	c := &Config{}
	assert.True(t, c.NotificationsEnabled())
	assert.True(t, c.MPRISEnabled())
	assert.True(t, c.PlayCountEnabled())
	assert.Equal(t, int32(5000), c.NotificationTimeout())

	off := false
	never := 0
	c = &Config{
		Notifications: NotificationsConfig{Enabled: &off, TimeoutMS: &never},
		MPRIS:         MPRISConfig{Enabled: &off},
		PlayCount:     PlayCountConfig{Enabled: &off},
	}
	assert.False(t, c.NotificationsEnabled())
	assert.False(t, c.MPRISEnabled())
	assert.False(t, c.PlayCountEnabled())
	assert.Equal(t, int32(0), c.NotificationTimeout())

	tooLow := -30
	c.Notifications.TimeoutMS = &tooLow
	assert.Equal(t, int32(-1), c.NotificationTimeout())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFiles_Missing(t *testing.T) {
	cfg, err := LoadFiles(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.NotNil(t, cfg)
	assert.Empty(t, cfg.Library.Paths)
}

func TestLoadFiles_BasicConfig(t *testing.T) {
	path := writeConfig(t, `
[library]
paths = ["/music", "~/library"]

[player]
shuffle = true
repeat = " ALL "
resume_on_start = false
volume = 0.5

[log]
level = "debug"
file = "~/logs/jockey.log"

[lastfm]
api_key = "key"
api_secret = "secret"

[scrobbler]
retry_interval = "90s"

[notifications]
timeout_ms = 2000
app_name = "Den"
icon = "~/.icons/jockey.png"

[mpris]
enabled = false
`)

	cfg, err := LoadFiles(path)
	require.NoError(t, err)

	home, _ := os.UserHomeDir()
	assert.Equal(t, []string{"/music", filepath.Join(home, "library")}, cfg.Library.Paths)
	assert.True(t, cfg.Player.Shuffle)
	assert.Equal(t, "all", cfg.Player.Repeat)
	require.NotNil(t, cfg.Player.ResumeOnStart)
	assert.False(t, *cfg.Player.ResumeOnStart)
	require.NotNil(t, cfg.Player.Volume)
	assert.InDelta(t, 0.5, *cfg.Player.Volume, 1e-9)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, filepath.Join(home, "logs", "jockey.log"), cfg.Log.File)
	assert.True(t, cfg.HasLastfmConfig())
	assert.Equal(t, 90*time.Second, cfg.GetScrobblerConfig().RetryInterval)
	assert.Equal(t, int32(2000), cfg.NotificationTimeout())
	assert.Equal(t, "Den", cfg.Notifications.AppName)
	assert.Equal(t, filepath.Join(home, ".icons", "jockey.png"), cfg.Notifications.Icon)
	assert.False(t, cfg.MPRISEnabled())
	assert.True(t, cfg.PlayCountEnabled())
}

func TestLoadFiles_LaterFileWins(t *testing.T) {
	first := writeConfig(t, `
[player]
repeat = "one"
shuffle = true
`)
	second := writeConfig(t, `
[player]
repeat = "all"
`)

	cfg, err := LoadFiles(first, second)
	require.NoError(t, err)
	assert.Equal(t, "all", cfg.Player.Repeat)
	assert.True(t, cfg.Player.Shuffle, "keys absent from the later file are kept")
}

func TestLoadFiles_InvalidToml(t *testing.T) {
	path := writeConfig(t, "invalid = [[[")

	if _, err := LoadFiles(path); err == nil {
		t.Error("LoadFiles() expected error for invalid TOML, got nil")
	}
}

func TestLoad_LocalConfig(t *testing.T) {
	tmpDir := t.TempDir()
	originalWd, err := os.Getwd()
	if err != nil {
		t.Fatalf("could not get working directory: %v", err)
	}

	if err := os.Chdir(tmpDir); err != nil {
		t.Fatalf("could not change to temp directory: %v", err)
	}
	defer func() {
		_ = os.Chdir(originalWd)
	}()

	if err := os.WriteFile("config.toml", []byte(`[playcount]
enabled = false
`), 0o600); err != nil {
		t.Fatalf("could not write config file: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// The local file has the highest priority.
	if cfg.PlayCountEnabled() {
		t.Error("PlayCountEnabled() = true, want false from ./config.toml")
	}
}
