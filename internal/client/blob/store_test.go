package blob

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 is an in-memory bucket behind httptest plus a presigner whose URLs
// point at it.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string][]byte
	srv     *httptest.Server

	putCalls int
	getCalls int
	putErr   error
	getErr   error

	// expiresIn is the lifetime reported for GET URLs; zero reports none.
	expiresIn time.Duration
}

func newFakeS3(t *testing.T) *fakeS3 {
	t.Helper()
	f := &fakeS3{objects: map[string][]byte{}}
	f.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		name := strings.TrimPrefix(r.URL.Path, "/")
		switch r.Method {
		case http.MethodPut:
			if r.Header.Get("X-Signed") != "yes" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			b, _ := io.ReadAll(r.Body)
			f.objects[name] = b
		case http.MethodGet:
			b, ok := f.objects[name]
			if !ok {
				http.NotFound(w, r)
				return
			}
			_, _ = w.Write(b)
		}
	}))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeS3) object(name string) []byte {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.objects[name]
}

func (f *fakeS3) setObject(name string, b []byte) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if b == nil {
		delete(f.objects, name)
		return
	}
	f.objects[name] = b
}

func (f *fakeS3) PresignPut(ctx context.Context, name string) (string, map[string][]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.putCalls++
	if f.putErr != nil {
		return "", nil, f.putErr
	}
	return f.srv.URL + "/" + name, map[string][]string{"X-Signed": {"yes"}}, nil
}

func (f *fakeS3) PresignGet(ctx context.Context, name string) (string, time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCalls++
	if f.getErr != nil {
		return "", time.Time{}, f.getErr
	}
	if _, ok := f.objects[name]; !ok {
		return "", time.Time{}, common.ErrNotFound
	}
	var expiresAt time.Time
	if f.expiresIn > 0 {
		expiresAt = time.Now().Add(f.expiresIn)
	}
	return f.srv.URL + "/" + name, expiresAt, nil
}

func TestStore_PutAndDownload(t *testing.T) {
	s3 := newFakeS3(t)
	store := NewStore(s3, s3.srv.Client(), time.Minute)

	content := bytes.Repeat([]byte("x"), 100*1024)
	require.NoError(t, store.Put(context.Background(), "a.txt", bytes.NewReader(content), int64(len(content))))
	assert.Equal(t, content, s3.object("a.txt"))

	var out bytes.Buffer
	n, err := store.Download(context.Background(), "a.txt", &out)
	require.NoError(t, err)
	assert.Equal(t, int64(len(content)), n)
	assert.Equal(t, content, out.Bytes())
}

func TestStore_PutOverwrites(t *testing.T) {
	s3 := newFakeS3(t)
	store := NewStore(s3, nil, 0)

	require.NoError(t, store.Put(context.Background(), "a.txt", strings.NewReader("one"), 3))
	require.NoError(t, store.Put(context.Background(), "a.txt", strings.NewReader("second"), 6))
	assert.Equal(t, []byte("second"), s3.object("a.txt"))
}

func TestStore_PutErrors(t *testing.T) {
	s3 := newFakeS3(t)
	s3.putErr = errors.New("registry says no")
	store := NewStore(s3, nil, time.Minute)

	err := store.Put(context.Background(), "a.txt", strings.NewReader("x"), 1)
	require.ErrorIs(t, err, s3.putErr)
	assert.Nil(t, s3.object("a.txt"))
}

func TestStore_RetrievalURL_Cached(t *testing.T) {
	s3 := newFakeS3(t)
	s3.setObject("a.txt", []byte("x"))
	store := NewStore(s3, nil, time.Minute)

	u1, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	u2, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)

	assert.Equal(t, u1, u2)
	assert.Equal(t, 1, s3.getCalls)

	store.Forget("a.txt")
	_, err = store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.getCalls)
}

func TestStore_RetrievalURL_CacheDisabled(t *testing.T) {
	s3 := newFakeS3(t)
	s3.setObject("a.txt", []byte("x"))
	store := NewStore(s3, nil, 500*time.Millisecond)

	_, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	_, err = store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.getCalls)
}

func TestStore_RetrievalURL_NotFoundIsNotCached(t *testing.T) {
	s3 := newFakeS3(t)
	store := NewStore(s3, nil, time.Minute)

	_, err := store.RetrievalURL(context.Background(), "missing")
	require.ErrorIs(t, err, common.ErrNotFound)

	s3.setObject("missing", []byte("now here"))
	_, err = store.RetrievalURL(context.Background(), "missing")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.getCalls)
}

func TestStore_Download_StaleURLIsForgotten(t *testing.T) {
	s3 := newFakeS3(t)
	s3.setObject("a.txt", []byte("x"))
	store := NewStore(s3, nil, time.Minute)

	_, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)

	s3.setObject("a.txt", nil)
	_, err = store.Download(context.Background(), "a.txt", io.Discard)
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = store.RetrievalURL(context.Background(), "a.txt")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.Equal(t, 2, s3.getCalls)
}

func TestStore_RetrievalURL_NotCachedPastExpiry(t *testing.T) {
	s3 := newFakeS3(t)
	s3.setObject("a.txt", []byte("x"))
	s3.expiresIn = 10 * time.Second
	store := NewStore(s3, nil, time.Hour)

	_, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	_, err = store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 2, s3.getCalls)
}

func TestStore_RetrievalURL_CachedWithinExpiry(t *testing.T) {
	s3 := newFakeS3(t)
	s3.setObject("a.txt", []byte("x"))
	s3.expiresIn = 15 * time.Minute
	store := NewStore(s3, nil, time.Hour)

	_, err := store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	_, err = store.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, 1, s3.getCalls)
}

func TestStore_cacheTTL(t *testing.T) {
	fixed := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	orig := now
	now = func() time.Time { return fixed }
	t.Cleanup(func() { now = orig })

	store := NewStore(nil, nil, time.Hour)

	tests := []struct {
		name      string
		expiresAt time.Time
		want      int
	}{
		{"unknown expiry", time.Time{}, 3600},
		{"expiry after ttl", fixed.Add(2 * time.Hour), 3600},
		{"expiry before ttl", fixed.Add(15 * time.Minute), 15*60 - 30},
		{"inside margin", fixed.Add(20 * time.Second), -10},
		{"already expired", fixed.Add(-time.Minute), -90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, store.cacheTTL(tt.expiresAt))
		})
	}
}
