// Package blob is the client side of the content store: bytes go straight
// to object storage through URLs presigned by the server.
package blob

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/coocood/freecache"
	"github.com/dmitrijs2005/dogbox/internal/netx"
	"github.com/oxtoacart/bpool"
)

const (
	// urlCacheSize is the freecache arena; freecache enforces 512 KB minimum.
	urlCacheSize = 1024 * 1024

	copyBufferSize = 32 * 1024
	copyBuffers    = 8

	// expiryMargin is how long before its expiry a cached URL stops being
	// handed out, so a download started with it can still begin.
	expiryMargin = 30 * time.Second
)

var now = time.Now

// Presigner asks the server for presigned URLs. *client.GRPCClient
// implements it.
type Presigner interface {
	PresignPut(ctx context.Context, name string) (string, map[string][]string, error)
	// PresignGet returns the URL and when it expires; a zero time means
	// the expiry is unknown.
	PresignGet(ctx context.Context, name string) (string, time.Time, error)
}

type Store struct {
	presigner  Presigner
	http       *http.Client
	urls       *freecache.Cache // nil disables URL caching
	ttlSeconds int
	pool       *bpool.BytePool
}

// NewStore returns a Store. Retrieval URLs are reused for urlTTL, or until
// shortly before they expire if that comes first; a TTL under one second
// disables the cache. httpClient may be nil.
func NewStore(p Presigner, httpClient *http.Client, urlTTL time.Duration) *Store {
	s := &Store{
		presigner: p,
		http:      httpClient,
		pool:      bpool.NewBytePool(copyBuffers, copyBufferSize),
	}
	if secs := int(urlTTL / time.Second); secs > 0 {
		s.urls = freecache.NewCache(urlCacheSize)
		s.ttlSeconds = secs
	}
	return s
}

// Put uploads size bytes from content under name. An existing object with
// the same name is replaced.
func (s *Store) Put(ctx context.Context, name string, content io.Reader, size int64) error {
	url, headers, err := s.presigner.PresignPut(ctx, name)
	if err != nil {
		return err
	}

	if err := netx.UploadToPresignedURL(ctx, s.http, url, headers, content, size); err != nil {
		return err
	}

	if s.urls != nil {
		s.urls.Del([]byte(name))
	}
	return nil
}

// RetrievalURL returns a short-lived URL for name, or common.ErrNotFound.
func (s *Store) RetrievalURL(ctx context.Context, name string) (string, error) {
	key := []byte(name)

	if s.urls != nil {
		if v, err := s.urls.Get(key); err == nil {
			return string(v), nil
		} else if !errors.Is(err, freecache.ErrNotFound) {
			return "", err
		}
	}

	url, expiresAt, err := s.presigner.PresignGet(ctx, name)
	if err != nil {
		return "", err
	}

	if ttl := s.cacheTTL(expiresAt); s.urls != nil && ttl > 0 {
		// a URL too large for the cache is simply not cached
		_ = s.urls.Set(key, []byte(url), ttl)
	}
	return url, nil
}

// cacheTTL is the configured TTL in seconds, cut short by the URL's expiry.
func (s *Store) cacheTTL(expiresAt time.Time) int {
	ttl := s.ttlSeconds
	if expiresAt.IsZero() {
		return ttl
	}
	if left := int(expiresAt.Sub(now().Add(expiryMargin)) / time.Second); left < ttl {
		ttl = left
	}
	return ttl
}

// Forget drops a cached retrieval URL.
func (s *Store) Forget(name string) {
	if s.urls != nil {
		s.urls.Del([]byte(name))
	}
}

// Download copies the content of name into w and returns the byte count.
func (s *Store) Download(ctx context.Context, name string, w io.Writer) (int64, error) {
	url, err := s.RetrievalURL(ctx, name)
	if err != nil {
		return 0, err
	}

	body, err := netx.DownloadFromPresignedURL(ctx, s.http, url)
	if err != nil {
		s.Forget(name)
		return 0, err
	}
	defer body.Close()

	buf := s.pool.Get()
	defer s.pool.Put(buf)

	return io.CopyBuffer(w, body, buf)
}
