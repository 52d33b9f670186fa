package cli

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/dmitrijs2005/dogbox/internal/client/config"
	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/services"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/dmitrijs2005/dogbox/internal/logging"
)

// captureOutput redirects printlnFn into the returned buffer.
func captureOutput(t *testing.T) *output {
	t.Helper()
	out := &output{}
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out.add(fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return out
}

type output struct {
	mu    sync.Mutex
	lines []string
}

func (o *output) add(s string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lines = append(o.lines, strings.TrimSuffix(s, "\n"))
}

func (o *output) String() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return strings.Join(o.lines, "\n")
}

func nonInteractive(t *testing.T) {
	t.Helper()
	orig := interactive
	interactive = func() bool { return false }
	t.Cleanup(func() { interactive = orig })
}

// fakeFiles is an in-memory services.FileService.
type fakeFiles struct {
	entries  []models.FileEntry
	contents map[string]string

	uploaded   []string
	uploadData map[string]string
	deleted    []string
	refreshes  int

	uploadErr  error
	deleteErr  error
	refreshErr error
	urlErr     error
	fetchErr   error

	subscribed   int
	unsubscribed int
	listener     view.Listener

	// remote, when set, is what Refresh loads into entries.
	remote []models.FileEntry
}

func (f *fakeFiles) notify() {
	if f.listener != nil {
		f.listener(slices.Clone(f.entries))
	}
}

var _ services.FileService = (*fakeFiles)(nil)

func (f *fakeFiles) Refresh(ctx context.Context) error {
	f.refreshes++
	if f.refreshErr != nil {
		return f.refreshErr
	}
	if f.remote != nil {
		f.entries = slices.Clone(f.remote)
		f.notify()
	}
	return nil
}

func (f *fakeFiles) Files() []models.FileEntry { return slices.Clone(f.entries) }

func (f *fakeFiles) Upload(ctx context.Context, p services.Picker) (*models.FileEntry, error) {
	defer p.Clear()
	sel := p.Selected()
	if sel == nil {
		return nil, nil
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}

	rc, err := sel.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, err
	}

	if f.uploadData == nil {
		f.uploadData = map[string]string{}
	}
	f.uploadData[sel.Name()] = string(data)
	f.uploaded = append(f.uploaded, sel.Name())

	e := models.FileEntry{ID: "new", Name: sel.Name(), Bytes: sel.Size()}
	f.entries = append(f.entries, e)
	f.notify()
	return &e, nil
}

func (f *fakeFiles) Delete(ctx context.Context, name string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	i := slices.IndexFunc(f.entries, func(e models.FileEntry) bool { return e.Name == name })
	if i < 0 {
		return common.ErrNotFound
	}
	f.entries = slices.Delete(f.entries, i, i+1)
	f.deleted = append(f.deleted, name)
	f.notify()
	return nil
}

func (f *fakeFiles) RetrievalURL(ctx context.Context, name string) (string, error) {
	if f.urlErr != nil {
		return "", f.urlErr
	}
	if _, ok := f.contents[name]; !ok {
		return "", common.ErrNotFound
	}
	return "https://blobs.example/" + name, nil
}

func (f *fakeFiles) Fetch(ctx context.Context, name string, w io.Writer) (int64, error) {
	c, ok := f.contents[name]
	if !ok {
		return 0, common.ErrNotFound
	}
	if f.fetchErr != nil {
		n, _ := io.WriteString(w, c[:len(c)/2])
		return int64(n), f.fetchErr
	}
	n, err := io.WriteString(w, c)
	return int64(n), err
}

func (f *fakeFiles) Subscribe(l view.Listener) func() {
	f.subscribed++
	f.listener = l
	return func() {
		f.unsubscribed++
		f.listener = nil
	}
}

func newTestApp(files *fakeFiles) *App {
	return &App{
		config: &config.Config{ServerEndpointAddr: "127.0.0.1:0"},
		files:  files,
		logger: logging.Discard(),
		in:     strings.NewReader(""),
	}
}
