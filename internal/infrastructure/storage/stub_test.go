package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStubObjectStorage_UploadURL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, expires, err := stub.GenerateUploadURL(context.Background(), "products/abc/img", "image/png", time.Minute)

	require.NoError(t, err)
	assert.Contains(t, url, "products/abc/img")
	assert.True(t, expires.After(time.Now()))
}

func TestStubObjectStorage_DownloadURL_DefaultTTL(t *testing.T) {
	stub := NewStubObjectStorage()

	url, expires, err := stub.GenerateDownloadURL(context.Background(), "products/abc/img", 0)

	require.NoError(t, err)
	assert.Contains(t, url, "products/abc/img")
	assert.True(t, expires.After(time.Now().Add(14*time.Minute)))
}

func TestStubObjectStorage_RecordsDeletes(t *testing.T) {
	stub := NewStubObjectStorage()

	require.NoError(t, stub.DeleteObject(context.Background(), "products/abc/img"))
	require.NoError(t, stub.DeleteObject(context.Background(), "products/def/img"))

	assert.Equal(t, []string{"products/abc/img", "products/def/img"}, stub.Deleted())
}
