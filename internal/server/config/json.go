package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/dogbox/internal/flagx"
	"github.com/dmitrijs2005/dogbox/internal/timex"
)

// JsonConfig is the on-disk shape of the server configuration. Durations
// use timex.Duration so both "15m" and integer nanoseconds are accepted.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	PresignExpiry               timex.Duration `json:"presign_expiry"`
}

// parseJson overlays config with the JSON file named by -c/-config.
// Keys that are absent (or empty) in the file keep their current value.
// Read and decode errors panic, like flag errors do.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)

	if c.AccessTokenValidityDuration.Duration > 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	if c.PresignExpiry.Duration > 0 {
		config.PresignExpiry = c.PresignExpiry.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
