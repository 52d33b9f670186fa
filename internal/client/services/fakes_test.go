package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

// ---- registry ----

type fakeRegistry struct {
	mu      sync.Mutex
	records []models.FileEntry
	nextID  int

	listErr   error
	createErr error
	deleteErr error

	// hooks run before the call returns, without the lock held
	onCreate func(name string)
	onDelete func(id string)

	creates int
	deletes int
}

func (r *fakeRegistry) List(ctx context.Context) ([]models.FileEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	return slices.Clone(r.records), nil
}

func (r *fakeRegistry) Create(ctx context.Context, name string, size int64) (models.FileEntry, error) {
	if r.onCreate != nil {
		r.onCreate(name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if r.createErr != nil {
		return models.FileEntry{}, r.createErr
	}
	if slices.ContainsFunc(r.records, func(e models.FileEntry) bool { return e.Name == name }) {
		return models.FileEntry{}, common.ErrAlreadyExists
	}
	r.nextID++
	e := models.FileEntry{ID: fmt.Sprintf("id-%d", r.nextID), Name: name, Bytes: size}
	r.records = append(r.records, e)
	return e, nil
}

func (r *fakeRegistry) Delete(ctx context.Context, id string) error {
	if r.onDelete != nil {
		r.onDelete(id)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletes++
	if r.deleteErr != nil {
		return r.deleteErr
	}
	i := slices.IndexFunc(r.records, func(e models.FileEntry) bool { return e.ID == id })
	if i < 0 {
		return common.ErrNotFound
	}
	r.records = slices.Delete(r.records, i, i+1)
	return nil
}

func (r *fakeRegistry) names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return entryNames(r.records)
}

func (r *fakeRegistry) seed(names ...string) {
	for _, n := range names {
		_, _ = r.Create(context.Background(), n, 1)
	}
}

// ---- blob store ----

type fakeBlobs struct {
	mu      sync.Mutex
	objects map[string][]byte

	putErr error
	urlErr error
	puts   int
	urls   int
}

func newFakeBlobs() *fakeBlobs {
	return &fakeBlobs{objects: map[string][]byte{}}
}

func (b *fakeBlobs) Put(ctx context.Context, name string, content io.Reader, size int64) error {
	data, err := io.ReadAll(content)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	b.puts++
	if b.putErr != nil {
		return b.putErr
	}
	b.objects[name] = data
	return nil
}

func (b *fakeBlobs) RetrievalURL(ctx context.Context, name string) (string, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.urls++
	if b.urlErr != nil {
		return "", b.urlErr
	}
	if _, ok := b.objects[name]; !ok {
		return "", common.ErrNotFound
	}
	return "https://blobs.example/" + name + "?sig=1", nil
}

func (b *fakeBlobs) Download(ctx context.Context, name string, w io.Writer) (int64, error) {
	if _, err := b.RetrievalURL(ctx, name); err != nil {
		return 0, err
	}
	b.mu.Lock()
	data := b.objects[name]
	b.mu.Unlock()
	return io.Copy(w, bytes.NewReader(data))
}

func (b *fakeBlobs) names() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, 0, len(b.objects))
	for n := range b.objects {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// ---- picker ----

type fakeFile struct {
	name    string
	content []byte
	openErr error
}

func (f *fakeFile) Name() string { return f.name }
func (f *fakeFile) Size() int64  { return int64(len(f.content)) }
func (f *fakeFile) Open() (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	return io.NopCloser(bytes.NewReader(f.content)), nil
}

type fakePicker struct {
	mu       sync.Mutex
	selected SelectedFile
	cleared  bool
}

func pick(name string, size int) *fakePicker {
	return &fakePicker{selected: &fakeFile{name: name, content: bytes.Repeat([]byte("x"), size)}}
}

func (p *fakePicker) Selected() SelectedFile {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.selected
}

func (p *fakePicker) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.selected = nil
	p.cleared = true
}

func (p *fakePicker) wasCleared() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cleared
}

// ---- helpers ----

func entryNames(es []models.FileEntry) []string {
	out := make([]string, 0, len(es))
	for _, e := range es {
		out = append(out, e.Name)
	}
	return out
}

var errBoom = errors.New("boom")

func nopLogger() logging.Logger { return logging.Discard() }
