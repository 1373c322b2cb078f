package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bytedance/sonic"
)

// Config is the root configuration for bitacora, stored in ~/.bitacora/config.json.
// The file supports single-line // comments for documentation purposes.
type Config struct {
	API  APIConfig  `json:"api"`
	Week WeekConfig `json:"week"`
	Log  LogConfig  `json:"log"`
}

// APIConfig holds the daily_tasks server settings.
type APIConfig struct {
	// BaseURL is the server root, e.g. "https://pomelo.example.com/api".
	BaseURL string `json:"base_url"`
	// TimeoutSeconds bounds every request. Zero means the default.
	TimeoutSeconds int `json:"timeout_seconds"`
	// DateFormat is the Go layout used for the from/to query bounds.
	DateFormat string `json:"date_format"`
}

// WeekConfig controls how the displayed week is computed.
type WeekConfig struct {
	// Start is the first day of the week: "monday", "sunday" or "saturday".
	Start string `json:"start"`
}

// LogConfig controls the rotating log file.
type LogConfig struct {
	Debug bool `json:"debug"`
	// Dir overrides the log directory. Empty = ~/.bitacora/logs.
	Dir string `json:"dir"`
}

const (
	// DefaultBaseURL points at a local development server.
	DefaultBaseURL = "http://localhost:3000"
	// DefaultTimeoutSeconds is applied when timeout_seconds is zero or negative.
	DefaultTimeoutSeconds = 30
	// DefaultDateFormat matches the YYYY-MM-DD bounds the server expects.
	DefaultDateFormat = "2006-01-02"
	// DefaultWeekStart is the ISO week start.
	DefaultWeekStart = "monday"

	// EnvHome overrides the ~/.bitacora data directory.
	EnvHome = "BITACORA_HOME"
	// EnvAPIURL overrides api.base_url.
	EnvAPIURL = "BITACORA_API_URL"
)

// defaultConfig returns a Config pre-filled with sensible defaults.
func defaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL:        DefaultBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
			DateFormat:     DefaultDateFormat,
		},
		Week: WeekConfig{Start: DefaultWeekStart},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// bitacora configuration – ~/.bitacora/config.json
//
// All settings are optional. Edit this file to point bitacora at your
// daily_tasks server.
{
  // ── daily_tasks API ──────────────────────────────────────────────────────
  "api": {
    // Server root. Can be overridden with BITACORA_API_URL or --api-url.
    "base_url": "http://localhost:3000",

    // Per-request timeout in seconds.
    "timeout_seconds": 30,

    // Go time layout for the from/to bounds of the log listing.
    "date_format": "2006-01-02"
  },

  // ── Week view ────────────────────────────────────────────────────────────
  "week": {
    // First day of the week: "monday", "sunday" or "saturday".
    "start": "monday"
  },

  // ── Logging ──────────────────────────────────────────────────────────────
  "log": {
    // Also log to stderr at debug level.
    "debug": false,

    // Directory for bitacora.log. Leave empty for ~/.bitacora/logs.
    "dir": ""
  }
}
`

// BaseDir returns the root data directory (~/.bitacora, or $BITACORA_HOME).
func BaseDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".bitacora"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads <base>/config.json, creating it with annotated defaults on
// first run, then applies environment overrides.
func Load() (Config, error) {
	base, err := BaseDir()
	if err != nil {
		return defaultConfig(), err
	}
	cfg, err := LoadFile(filepath.Join(base, "config.json"))
	if url := os.Getenv(EnvAPIURL); url != "" {
		cfg.API.BaseURL = url
	}
	return cfg, err
}

// LoadFile reads the config at path. A missing file is created from the
// annotated template and the defaults are returned.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		// First run: write the annotated template so users can discover options.
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
		return defaultConfig(), nil
	}
	if err != nil {
		return defaultConfig(), fmt.Errorf("reading config file %s: %w", path, err)
	}

	cleaned := stripLineComments(data)
	var cfg Config
	if err := sonic.ConfigStd.Unmarshal(cleaned, &cfg); err != nil {
		return defaultConfig(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
	}

	// Fill zero-value fields with built-in defaults so callers always get
	// a usable Config even if the user only partially fills in the file.
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultBaseURL
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = DefaultTimeoutSeconds
	}
	if cfg.API.DateFormat == "" {
		cfg.API.DateFormat = DefaultDateFormat
	}
	if cfg.Week.Start == "" {
		cfg.Week.Start = DefaultWeekStart
	}

	return cfg, nil
}

// Timeout returns the request timeout as a duration.
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
