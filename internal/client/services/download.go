package services

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
)

// Downloader resolves listed files to their content. It never changes the
// view.
type Downloader struct {
	blobs BlobStore
	view  *view.LocalView
}

func NewDownloader(b BlobStore, v *view.LocalView) *Downloader {
	return &Downloader{blobs: b, view: v}
}

// RetrievalURL returns a signed URL for a file in the view.
func (d *Downloader) RetrievalURL(ctx context.Context, name string) (string, error) {
	if !d.view.ContainsName(name) {
		return "", fmt.Errorf("%q: %w", name, common.ErrNotFound)
	}

	url, err := d.blobs.RetrievalURL(ctx, name)
	if err != nil {
		return "", storageError(name, err)
	}
	return url, nil
}

// Fetch writes the content of a file in the view to w.
func (d *Downloader) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	if !d.view.ContainsName(name) {
		return 0, fmt.Errorf("%q: %w", name, common.ErrNotFound)
	}

	n, err := d.blobs.Download(ctx, name, w)
	if err != nil {
		return n, storageError(name, err)
	}
	return n, nil
}

func storageError(name string, err error) error {
	if errors.Is(err, common.ErrNotFound) {
		return fmt.Errorf("%q: content %w", name, common.ErrNotFound)
	}
	return fmt.Errorf("%w: %w", common.ErrStorage, err)
}
