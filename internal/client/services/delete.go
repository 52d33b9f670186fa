package services

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

// Deleter removes a file from the view first and from the registry second.
// Content is never deleted.
type Deleter struct {
	registry Registry
	view     *view.LocalView
	logger   logging.Logger
}

func NewDeleter(r Registry, v *view.LocalView, l logging.Logger) *Deleter {
	return &Deleter{registry: r, view: v, logger: l.With("module", "deleter")}
}

// Delete removes the entry with id from the view, then deletes the record.
//
// If the registry fails, the entry is put back where it was (unless an
// entry with the same name has appeared since) and the error wraps
// common.ErrRegistry. If the registry no longer has the record, the entry
// stays removed and the error wraps common.ErrNotFound.
func (d *Deleter) Delete(ctx context.Context, id, name string) error {
	var removed models.FileEntry
	idx := -1

	d.view.Update(func(cur []models.FileEntry) []models.FileEntry {
		idx = slices.IndexFunc(cur, func(e models.FileEntry) bool { return e.ID == id })
		if idx < 0 {
			return cur
		}
		removed = cur[idx]
		return slices.Delete(cur, idx, idx+1)
	})

	err := d.registry.Delete(ctx, id)
	if err == nil {
		d.logger.Info(ctx, "File deleted", "name", name, "id", id)
		return nil
	}

	if errors.Is(err, common.ErrNotFound) {
		d.logger.Warn(ctx, "File already gone from registry", "name", name, "id", id)
		return fmt.Errorf("delete %q: %w", name, common.ErrNotFound)
	}

	if idx >= 0 {
		d.restore(removed, idx)
	}
	return fmt.Errorf("%w: %w", common.ErrRegistry, err)
}

func (d *Deleter) restore(e models.FileEntry, idx int) {
	d.view.Update(func(cur []models.FileEntry) []models.FileEntry {
		if slices.ContainsFunc(cur, func(c models.FileEntry) bool { return c.Name == e.Name }) {
			return cur
		}
		return slices.Insert(cur, min(idx, len(cur)), e)
	})
}
