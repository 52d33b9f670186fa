package services

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

// FileService is everything the CLI does with files.
type FileService interface {
	Refresh(ctx context.Context) error
	Files() []models.FileEntry
	Upload(ctx context.Context, picker Picker) (*models.FileEntry, error)
	Delete(ctx context.Context, name string) error
	RetrievalURL(ctx context.Context, name string) (string, error)
	Fetch(ctx context.Context, name string, w io.Writer) (int64, error)
	Subscribe(l view.Listener) (unsubscribe func())
}

type fileService struct {
	view       *view.LocalView
	bootstrap  *Bootstrapper
	uploader   *Uploader
	deleter    *Deleter
	downloader *Downloader
}

func NewFileService(r Registry, b BlobStore, l logging.Logger, rollbackOrphans bool) FileService {
	v := view.New()
	return &fileService{
		view:       v,
		bootstrap:  NewBootstrapper(r, v),
		uploader:   NewUploader(r, b, v, l, rollbackOrphans),
		deleter:    NewDeleter(r, v, l),
		downloader: NewDownloader(b, v),
	}
}

func (s *fileService) Refresh(ctx context.Context) error {
	return s.bootstrap.Bootstrap(ctx)
}

func (s *fileService) Files() []models.FileEntry {
	return s.view.Snapshot()
}

func (s *fileService) Upload(ctx context.Context, picker Picker) (*models.FileEntry, error) {
	return s.uploader.Upload(ctx, picker)
}

// Delete deletes the listed file called name.
func (s *fileService) Delete(ctx context.Context, name string) error {
	e, ok := s.view.Find(name)
	if !ok {
		return fmt.Errorf("%q: %w", name, common.ErrNotFound)
	}
	return s.deleter.Delete(ctx, e.ID, e.Name)
}

func (s *fileService) RetrievalURL(ctx context.Context, name string) (string, error) {
	return s.downloader.RetrievalURL(ctx, name)
}

func (s *fileService) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	return s.downloader.Fetch(ctx, name, w)
}

func (s *fileService) Subscribe(l view.Listener) func() {
	return s.view.Subscribe(l)
}
