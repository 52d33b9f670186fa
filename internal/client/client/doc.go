// Package client is the gRPC client of the DogBox registry.
//
// GRPCClient attaches the access token to every call through a unary
// interceptor and maps gRPC status codes to sentinel errors
// (common.ErrNotFound, common.ErrAlreadyExists, common.ErrUnauthorized,
// ErrUnavailable, ErrInvalidArgument) that callers match with errors.Is.
//
// It also asks the server for presigned object-storage URLs; moving the
// content itself is left to package netx.
package client
