package common

// AccessTokenHeaderName is the gRPC metadata key used to carry the
// access token on outbound requests.
const AccessTokenHeaderName = "access_token"

// MaxNameLength bounds file names; the name doubles as the blob key.
const MaxNameLength = 1024
