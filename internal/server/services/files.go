package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/server/models"
	"github.com/dmitrijs2005/dogbox/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// Presigner issues presigned object-storage URLs. *BlobService implements it.
type Presigner interface {
	PresignPut(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error)
	PresignGet(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error)
}

// FileService is the metadata registry. Every call is scoped by ownerID.
type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       Presigner
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs Presigner) *FileService {
	return &FileService{db: db, repomanager: m, blobs: blobs}
}

func (s *FileService) List(ctx context.Context, ownerID string) ([]*models.File, error) {
	files, err := s.repomanager.Files(s.db).List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing files: %w", err)
	}
	return files, nil
}

// Create registers a new file. The name must be a valid blob name and is
// unique per owner (common.ErrAlreadyExists otherwise).
func (s *FileService) Create(ctx context.Context, ownerID, name string, bytes int64) (*models.File, error) {
	if err := common.ValidateName(name); err != nil {
		return nil, err
	}
	if bytes < 0 {
		return nil, common.ErrInvalidSize
	}

	f := &models.File{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,
		Bytes:   bytes,
	}

	if err := s.repomanager.Files(s.db).Create(ctx, f); err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating file: %w", err)
	}

	return f, nil
}

// Delete removes the record only; the blob is left in place.
func (s *FileService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return common.ErrNotFound
	}

	err := s.repomanager.Files(s.db).Delete(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return err
		}
		return fmt.Errorf("error deleting file: %w", err)
	}
	return nil
}

// PresignPut returns an upload URL for a file that is already registered.
func (s *FileService) PresignPut(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error) {
	if _, err := s.repomanager.Files(s.db).GetByName(ctx, ownerID, name); err != nil {
		return nil, err
	}

	req, err := s.blobs.PresignPut(ctx, ownerID, name)
	if err != nil {
		return nil, fmt.Errorf("error presigning put: %w", err)
	}
	return req, nil
}

// PresignGet returns a retrieval URL. common.ErrNotFound is returned both
// for unregistered names and for registered names without content.
func (s *FileService) PresignGet(ctx context.Context, ownerID, name string) (*models.PresignedRequest, error) {
	if _, err := s.repomanager.Files(s.db).GetByName(ctx, ownerID, name); err != nil {
		return nil, err
	}

	req, err := s.blobs.PresignGet(ctx, ownerID, name)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("error presigning get: %w", err)
	}
	return req, nil
}
