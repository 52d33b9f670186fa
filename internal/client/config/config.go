package config

import "time"

// Config holds runtime settings for the DogBox CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - AccessToken: bearer token sent with every registry call.
//   - RollbackOrphans: whether a failed content upload deletes the registry
//     record created for it.
//   - URLCacheTTL: how long a retrieval URL is reused; 0 disables caching.
//     Must stay below the server's presign expiry.
type Config struct {
	ServerEndpointAddr string
	AccessToken        string
	RollbackOrphans    bool
	URLCacheTTL        time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.AccessToken = ""
	c.RollbackOrphans = true
	c.URLCacheTTL = time.Minute
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
