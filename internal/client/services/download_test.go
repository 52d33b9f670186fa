package services

import (
	"bytes"
	"context"
	"testing"

	"github.com/dmitrijs2005/dogbox/internal/client/models"
	"github.com/dmitrijs2005/dogbox/internal/client/view"
	"github.com/dmitrijs2005/dogbox/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func downloaderWith(names ...string) (*Downloader, *fakeBlobs, *view.LocalView) {
	blobs := newFakeBlobs()
	v := view.New()
	entries := make([]models.FileEntry, 0, len(names))
	for i, n := range names {
		blobs.objects[n] = []byte("content of " + n)
		entries = append(entries, models.FileEntry{ID: string(rune('1' + i)), Name: n})
	}
	v.Replace(entries)
	return NewDownloader(blobs, v), blobs, v
}

func TestDownloader_RetrievalURL(t *testing.T) {
	d, _, _ := downloaderWith("a.txt")

	url, err := d.RetrievalURL(context.Background(), "a.txt")
	require.NoError(t, err)
	assert.Equal(t, "https://blobs.example/a.txt?sig=1", url)
}

func TestDownloader_NotListed(t *testing.T) {
	d, blobs, _ := downloaderWith("a.txt")
	blobs.objects["hidden.txt"] = []byte("x")

	_, err := d.RetrievalURL(context.Background(), "hidden.txt")
	require.ErrorIs(t, err, common.ErrNotFound)

	_, err = d.Fetch(context.Background(), "hidden.txt", &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrNotFound)

	assert.Zero(t, blobs.urls)
}

func TestDownloader_ContentMissing(t *testing.T) {
	d, blobs, _ := downloaderWith("a.txt")
	delete(blobs.objects, "a.txt")

	_, err := d.RetrievalURL(context.Background(), "a.txt")
	require.ErrorIs(t, err, common.ErrNotFound)
	assert.NotErrorIs(t, err, common.ErrStorage)
}

func TestDownloader_StorageFailure(t *testing.T) {
	d, blobs, _ := downloaderWith("a.txt")
	blobs.urlErr = errBoom

	_, err := d.RetrievalURL(context.Background(), "a.txt")
	require.ErrorIs(t, err, common.ErrStorage)
	require.ErrorIs(t, err, errBoom)

	_, err = d.Fetch(context.Background(), "a.txt", &bytes.Buffer{})
	require.ErrorIs(t, err, common.ErrStorage)
}

func TestDownloader_Fetch(t *testing.T) {
	d, _, v := downloaderWith("a.txt", "b.txt")
	before := v.Snapshot()

	var buf bytes.Buffer
	n, err := d.Fetch(context.Background(), "b.txt", &buf)
	require.NoError(t, err)
	assert.Equal(t, "content of b.txt", buf.String())
	assert.Equal(t, int64(buf.Len()), n)

	assert.Equal(t, before, v.Snapshot())
}
