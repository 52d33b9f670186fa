// Package config loads runtime configuration for the DogBox CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   address:port of the backend gRPC endpoint
//	-k string   access token (see cmd/token)
//	-r bool     delete the registry record when the content upload fails
//	-l int      lifetime of cached retrieval URLs (seconds)
//
// # JSON schema
//
// The JSON loader uses timex.Duration for durations, so values can be either
// strings like "60s" or integer nanoseconds:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "access_token": "eyJ...",
//	  "rollback_orphans": true,
//	  "url_cache_ttl": "60s"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
