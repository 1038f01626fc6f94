package config

import "time"

// Config holds runtime settings for the adminctl terminal client.
//
// Fields:
//   - BackendURL: base address of the user-management backend.
//   - HTTPTimeout: per-request timeout for backend calls.
//   - PageSize: rows per page in the user list.
//   - DebounceInterval: quiet period before a search keystroke triggers a fetch.
//   - CallbackListenAddr: loopback address for the OAuth redirect listener;
//     port 0 lets the OS pick one.
//   - DatabasePath: local sqlite file holding the stored credential.
type Config struct {
	BackendURL         string
	HTTPTimeout        time.Duration
	PageSize           int
	DebounceInterval   time.Duration
	CallbackListenAddr string
	DatabasePath       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BackendURL = "http://localhost:8080"
	c.HTTPTimeout = 5 * time.Second
	c.PageSize = 5
	c.DebounceInterval = 500 * time.Millisecond
	c.CallbackListenAddr = "127.0.0.1:0"
	c.DatabasePath = "adminctl.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
