package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dogbox/internal/flagx"
	"github.com/dmitrijs2005/dogbox/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Pointer
// fields tell an absent key from a zero value.
type JsonConfig struct {
	ServerEndpointAddr string          `json:"server_endpoint_addr"`
	AccessToken        string          `json:"access_token"`
	RollbackOrphans    *bool           `json:"rollback_orphans"`
	URLCacheTTL        *timex.Duration `json:"url_cache_ttl"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Keys missing from the file leave cfg untouched. Read and
// unmarshal errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.AccessToken != "" {
		cfg.AccessToken = jc.AccessToken
	}
	if jc.RollbackOrphans != nil {
		cfg.RollbackOrphans = *jc.RollbackOrphans
	}
	if jc.URLCacheTTL != nil {
		cfg.URLCacheTTL = jc.URLCacheTTL.Duration
	}
}
