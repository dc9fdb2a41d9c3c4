package config

import "time"

// Config holds runtime settings for the tgproxy CLI.
//
// Fields:
//   - ServerURL: base URL of the proxy HTTP API.
//   - RequestTimeout: upper bound for a single API call; remote calls
//     include a full MTProto handshake, so keep it generous.
//   - SessionID: resume an existing proxy session instead of starting a new login.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionID      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 60 * time.Second
	c.SessionID = ""
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
