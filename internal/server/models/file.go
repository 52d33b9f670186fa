// Package models defines server-side data models persisted in the database.
package models

import "time"

// File is a metadata registry record. The content itself lives in object
// storage under the key derived from OwnerID and Name.
type File struct {
	// ID is a server-assigned UUID.
	ID string
	// OwnerID is the user the record belongs to; every query is scoped by it.
	OwnerID string
	// Name is unique per owner and is also the blob name.
	Name string
	// Bytes is the size the client declared at upload time.
	Bytes int64
	// CreatedAt is assigned by the database.
	CreatedAt time.Time
}

// PresignedRequest is a temporary S3 URL plus the headers that were signed
// into it.
type PresignedRequest struct {
	URL     string
	Headers map[string][]string
	// ExpiresAt is when the signature stops being accepted.
	ExpiresAt time.Time
}
