package pipeline

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"record-sync/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func objectChannel(infos ...minio.ObjectInfo) <-chan minio.ObjectInfo {
	ch := make(chan minio.ObjectInfo, len(infos))
	for _, info := range infos {
		ch <- info
	}
	close(ch)
	return ch
}

func ndjson(lines ...string) io.ReadCloser {
	return io.NopCloser(strings.NewReader(strings.Join(lines, "\n")))
}

func TestObjectSourceBatches(t *testing.T) {
	ctx := context.Background()

	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "batches").Return(true, nil)
	// Listed out of order and with one non-matching object; the source must
	// sort and filter.
	client.On("ListObjects", mock.Anything, "batches", mock.Anything).Return(objectChannel(
		minio.ObjectInfo{Key: "exports/0002.ndjson"},
		minio.ObjectInfo{Key: "exports/readme.txt"},
		minio.ObjectInfo{Key: "exports/0001.ndjson"},
	))
	client.On("GetObject", mock.Anything, "batches", "exports/0001.ndjson", mock.Anything).
		Return(ndjson(`{"id": 1, "name": "A", "score": 1.5}`, "", `{"id": 2, "name": "B"}`), nil)
	client.On("GetObject", mock.Anything, "batches", "exports/0002.ndjson", mock.Anything).
		Return(ndjson(`{"id": 3, "name": "C"}`), nil)

	src := NewObjectSource(client, "batches", "exports/", ".ndjson")

	b, err := src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, Settings{Origin: "exports/0001.ndjson", Index: 0}, b.Settings)
	require.Len(t, b.Records, 2)

	// Integral JSON numbers fold to int64, true floats stay floats
	id, _ := b.Records[0].Get("id")
	assert.Equal(t, int64(1), id)
	score, _ := b.Records[0].Get("score")
	assert.Equal(t, 1.5, score)

	b, err = src.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "exports/0002.ndjson", b.Settings.Origin)
	require.Len(t, b.Records, 1)

	_, err = src.Next(ctx)
	assert.ErrorIs(t, err, Done)

	client.AssertExpectations(t)
}

func TestObjectSourceMissingBucket(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "gone").Return(false, nil)

	src := NewObjectSource(client, "gone", "", "")
	_, err := src.Next(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")
}

func TestObjectSourceListError(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "batches").Return(true, nil)
	client.On("ListObjects", mock.Anything, "batches", mock.Anything).Return(objectChannel(
		minio.ObjectInfo{Err: errors.New("listing refused")},
	))

	src := NewObjectSource(client, "batches", "", "")
	_, err := src.Next(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "listing refused")
}

func TestObjectSourceMalformedLine(t *testing.T) {
	client := new(mocks.Client)
	client.On("BucketExists", mock.Anything, "batches").Return(true, nil)
	client.On("ListObjects", mock.Anything, "batches", mock.Anything).Return(objectChannel(
		minio.ObjectInfo{Key: "bad.ndjson"},
	))
	client.On("GetObject", mock.Anything, "batches", "bad.ndjson", mock.Anything).
		Return(ndjson(`{"id": 1}`, `not json`), nil)

	src := NewObjectSource(client, "batches", "", ".ndjson")
	_, err := src.Next(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}
