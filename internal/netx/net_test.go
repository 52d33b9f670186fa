package netx

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/dmitrijs2005/dogbox/internal/common"
)

func TestUploadToPresignedURL(t *testing.T) {
	file := []byte("hello, s3")

	t.Run("success 200 OK", func(t *testing.T) {
		var gotBody []byte
		var gotCT, gotMethod, gotSigned string
		var gotLen int64

		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotCT = r.Header.Get("Content-Type")
			gotSigned = r.Header.Get("X-Amz-Content-Sha256")
			gotLen = r.ContentLength
			body, _ := io.ReadAll(r.Body)
			_ = r.Body.Close()
			gotBody = body
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		headers := map[string][]string{"X-Amz-Content-Sha256": {"UNSIGNED-PAYLOAD"}}
		err := UploadToPresignedURL(context.Background(), nil, ts.URL+"/some/presigned?X-Amz-Signature=abc",
			headers, bytes.NewReader(file), int64(len(file)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotMethod != http.MethodPut {
			t.Fatalf("method = %q, want PUT", gotMethod)
		}
		if gotCT != "application/octet-stream" {
			t.Fatalf("Content-Type = %q, want application/octet-stream", gotCT)
		}
		if gotSigned != "UNSIGNED-PAYLOAD" {
			t.Fatalf("signed header not forwarded: %q", gotSigned)
		}
		if gotLen != int64(len(file)) {
			t.Fatalf("Content-Length = %d, want %d", gotLen, len(file))
		}
		if !bytes.Equal(gotBody, file) {
			t.Fatalf("body = %q, want %q", string(gotBody), string(file))
		}
	})

	t.Run("empty file", func(t *testing.T) {
		var gotLen int64 = -2
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotLen = r.ContentLength
			w.WriteHeader(http.StatusOK)
		}))
		defer ts.Close()

		if err := UploadToPresignedURL(context.Background(), ts.Client(), ts.URL, nil, strings.NewReader(""), 0); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotLen != 0 {
			t.Fatalf("Content-Length = %d, want 0", gotLen)
		}
	})

	t.Run("non-200 -> error", func(t *testing.T) {
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden) // 403
			_, _ = w.Write([]byte("SignatureDoesNotMatch"))
		}))
		defer ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, ts.URL, nil, bytes.NewReader(file), int64(len(file)))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !strings.Contains(err.Error(), "upload failed: 403") || !strings.Contains(err.Error(), "SignatureDoesNotMatch") {
			t.Fatalf("error = %q, want to contain 403 and body", err.Error())
		}
	})

	t.Run("network error", func(t *testing.T) {
		ts := httptest.NewServer(http.NotFoundHandler())
		ts.Close()

		err := UploadToPresignedURL(context.Background(), nil, ts.URL, nil, bytes.NewReader(file), int64(len(file)))
		if err == nil {
			t.Fatal("expected error, got nil")
		}
		if !isNetOpError(err) {
			if strings.Contains(err.Error(), "upload failed") {
				t.Fatalf("got wrong kind of error: %v", err)
			}
		}
	})
}

func TestDownloadFromPresignedURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("content"))
		case "/missing":
			http.NotFound(w, r)
		default:
			w.WriteHeader(http.StatusForbidden)
		}
	}))
	defer ts.Close()

	t.Run("ok", func(t *testing.T) {
		body, err := DownloadFromPresignedURL(context.Background(), ts.Client(), ts.URL+"/ok")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer body.Close()
		b, _ := io.ReadAll(body)
		if string(b) != "content" {
			t.Fatalf("body = %q", string(b))
		}
	})

	t.Run("404 -> not found", func(t *testing.T) {
		_, err := DownloadFromPresignedURL(context.Background(), ts.Client(), ts.URL+"/missing")
		if !errors.Is(err, common.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("403 -> error", func(t *testing.T) {
		_, err := DownloadFromPresignedURL(context.Background(), ts.Client(), ts.URL+"/expired")
		if err == nil || errors.Is(err, common.ErrNotFound) {
			t.Fatalf("expected generic error, got %v", err)
		}
		if !strings.Contains(err.Error(), "download failed: 403") {
			t.Fatalf("error = %q", err.Error())
		}
	})
}

type netOpErrorLike interface {
	error
	Timeout() bool
	Temporary() bool
}

func isNetOpError(err error) bool {
	var target netOpErrorLike
	return errors.As(err, &target)
}
