// Package models defines the client-side view of registry records.
package models

import "time"

// FileEntry is one file as shown to the user.
type FileEntry struct {
	// ID is assigned by the registry; empty until the record exists.
	ID string
	// Name is unique within the local view and is the blob name.
	Name  string
	Bytes int64
	// CreatedAt is zero for entries added locally after an upload; the
	// real timestamp arrives with the next full refresh.
	CreatedAt time.Time
}

// Placeholder reports whether CreatedAt is still unknown.
func (e FileEntry) Placeholder() bool {
	return e.CreatedAt.IsZero()
}
