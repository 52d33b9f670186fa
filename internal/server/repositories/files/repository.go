// Package files is the metadata registry storage: one row per uploaded file.
package files

import (
	"context"

	"github.com/dmitrijs2005/dogbox/internal/server/models"
)

type Repository interface {
	// List returns the owner's records, oldest first.
	List(ctx context.Context, ownerID string) ([]*models.File, error)
	// Create inserts file and fills in CreatedAt. A second record with the
	// same (owner, name) yields common.ErrAlreadyExists.
	Create(ctx context.Context, file *models.File) error
	// GetByName returns common.ErrNotFound when there is no such record.
	GetByName(ctx context.Context, ownerID, name string) (*models.File, error)
	// Delete removes one record; common.ErrNotFound when nothing matched.
	Delete(ctx context.Context, ownerID, id string) error
}
