package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync/atomic"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

// SelectedFile is a file the user picked. Content is opened only when it
// is about to be uploaded.
type SelectedFile interface {
	Name() string
	Size() int64
	Open() (io.ReadCloser, error)
}

// Picker holds the current selection of an upload control.
type Picker interface {
	// Selected returns nil when nothing is chosen.
	Selected() SelectedFile
	Clear()
}

// OrphanError reports a registry record left without content: the upload
// failed and the record was not (or could not be) removed.
type OrphanError struct {
	Entry models.FileEntry
	// Err is the storage failure.
	Err error
	// RollbackErr is set when removing the record was tried and failed.
	RollbackErr error
}

func (e *OrphanError) Error() string {
	if e.RollbackErr != nil {
		return fmt.Sprintf("%v; record %q left orphaned: rollback failed: %v", e.Err, e.Entry.Name, e.RollbackErr)
	}
	return fmt.Sprintf("%v; record %q left orphaned", e.Err, e.Entry.Name)
}

func (e *OrphanError) Unwrap() error {
	return e.Err
}

// Uploader registers a file, uploads its content and adds it to the view.
// One Uploader runs one upload at a time; uploads of the same name are
// serialized across Uploaders sharing a view.
type Uploader struct {
	registry        Registry
	blobs           BlobStore
	view            *view.LocalView
	logger          logging.Logger
	rollbackOrphans bool

	uploading atomic.Bool
}

// NewUploader returns an Uploader. With rollbackOrphans set, a failed
// content upload deletes the registry record it created.
func NewUploader(r Registry, b BlobStore, v *view.LocalView, l logging.Logger, rollbackOrphans bool) *Uploader {
	return &Uploader{
		registry:        r,
		blobs:           b,
		view:            v,
		logger:          l.With("module", "uploader"),
		rollbackOrphans: rollbackOrphans,
	}
}

// Uploading reports whether an upload is running.
func (u *Uploader) Uploading() bool {
	return u.uploading.Load()
}

// Upload uploads the picker's selection. No selection is a no-op that
// returns (nil, nil). The selection is cleared on every return.
func (u *Uploader) Upload(ctx context.Context, picker Picker) (*models.FileEntry, error) {
	defer picker.Clear()

	sel := picker.Selected()
	if sel == nil || sel.Name() == "" {
		return nil, nil
	}
	name, size := sel.Name(), sel.Size()

	if u.view.ContainsName(name) {
		return nil, common.ErrDuplicateName
	}

	if !u.uploading.CompareAndSwap(false, true) {
		return nil, common.ErrUploadInProgress
	}
	defer u.uploading.Store(false)

	if !u.view.Reserve(name) {
		return nil, common.ErrDuplicateName
	}
	defer u.view.Release(name)

	entry, err := u.registry.Create(ctx, name, size)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, fmt.Errorf("%w: %w: %w", common.ErrDuplicateName, common.ErrRegistry, err)
		}
		return nil, fmt.Errorf("%w: %w", common.ErrRegistry, err)
	}

	if err := u.put(ctx, sel); err != nil {
		return nil, u.handleOrphan(ctx, entry, fmt.Errorf("%w: %w", common.ErrStorage, err))
	}

	added := models.FileEntry{ID: entry.ID, Name: name, Bytes: size}
	u.view.Update(func(cur []models.FileEntry) []models.FileEntry {
		return addOrKeep(cur, added)
	})

	u.logger.Info(ctx, "File uploaded", "name", name, "bytes", size)
	return &added, nil
}

// addOrKeep appends e unless a refresh already brought in its record. A
// listed entry with the same name is replaced only when it is not the
// registry's copy of this upload.
func addOrKeep(cur []models.FileEntry, e models.FileEntry) []models.FileEntry {
	i := slices.IndexFunc(cur, func(c models.FileEntry) bool { return c.Name == e.Name })
	switch {
	case i < 0:
		return append(cur, e)
	case cur[i].ID == e.ID:
		return cur
	default:
		cur[i] = e
		return cur
	}
}

func (u *Uploader) put(ctx context.Context, sel SelectedFile) error {
	rc, err := sel.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	return u.blobs.Put(ctx, sel.Name(), rc, sel.Size())
}

func (u *Uploader) handleOrphan(ctx context.Context, entry models.FileEntry, storageErr error) error {
	if !u.rollbackOrphans {
		u.logger.Warn(ctx, "Registry record left without content", "name", entry.Name, "id", entry.ID)
		return &OrphanError{Entry: entry, Err: storageErr}
	}

	if err := u.registry.Delete(ctx, entry.ID); err != nil {
		u.logger.Error(ctx, "Rollback of registry record failed", "name", entry.Name, "id", entry.ID, "error", err.Error())
		return &OrphanError{Entry: entry, Err: storageErr, RollbackErr: err}
	}

	u.logger.Info(ctx, "Registry record rolled back", "name", entry.Name, "id", entry.ID)
	return storageErr
}
