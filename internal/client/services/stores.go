// Package services coordinates the registry, the content store and the
// local view: bootstrap, upload, delete and download.
//
// Every operation runs on the caller's goroutine. The only shared state is
// the view.LocalView, which is changed through Replace and Update only.
// Errors wrap the sentinels in package common (ErrRegistry, ErrStorage,
// ErrDuplicateName, ErrNotFound, ErrUploadInProgress) for errors.Is.
package services

import (
	"context"
	"io"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
)

// Registry is the metadata store. *client.GRPCClient implements it.
type Registry interface {
	// List returns the records in store order.
	List(ctx context.Context) ([]models.FileEntry, error)
	// Create registers name and returns the record with its id.
	Create(ctx context.Context, name string, bytes int64) (models.FileEntry, error)
	// Delete fails with common.ErrNotFound for unknown ids.
	Delete(ctx context.Context, id string) error
}

// BlobStore is the content store, keyed by file name. *blob.Store
// implements it.
type BlobStore interface {
	Put(ctx context.Context, name string, content io.Reader, size int64) error
	// RetrievalURL returns a short-lived signed URL or common.ErrNotFound.
	RetrievalURL(ctx context.Context, name string) (string, error)
	Download(ctx context.Context, name string, w io.Writer) (int64, error)
}
