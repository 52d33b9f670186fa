// Package netx moves file content to and from presigned object-storage URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/dogbox/internal/common"
)

// maxErrorBody caps how much of an error response is quoted in errors.
const maxErrorBody = 512

// UploadToPresignedURL streams body to url with a PUT. headers are the
// signed headers returned with the URL; size becomes Content-Length.
// client may be nil.
func UploadToPresignedURL(ctx context.Context, client *http.Client, url string, headers map[string][]string, body io.Reader, size int64) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, body)
	if err != nil {
		return err
	}
	for k, vs := range headers {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = size
	if size == 0 {
		req.Body = http.NoBody
	}

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// DownloadFromPresignedURL opens the content behind url. The caller closes
// the returned body. A 404 wraps common.ErrNotFound.
func DownloadFromPresignedURL(ctx context.Context, client *http.Client, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient(client).Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("download failed: %w", common.ErrNotFound)
		}
		return nil, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return resp.Body, nil
}

func httpClient(c *http.Client) *http.Client {
	if c == nil {
		return http.DefaultClient
	}
	return c
}
