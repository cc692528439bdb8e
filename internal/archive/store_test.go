// internal/archive/store_test.go
package archive

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xmlgen-service/internal/common/database"
	xmlerrors "xmlgen-service/internal/common/errors"
	"xmlgen-service/internal/common/logger"
	"xmlgen-service/internal/generator"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := database.NewRedisFromClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	return NewStore(client, 30*time.Minute, logger.NewTestLogger(t)), mr
}

func createTestFiles() []generator.GeneratedFile {
	return []generator.GeneratedFile{
		{CopyIndex: 1, Name: "PAIN1V3_SDMC_20240315093045001_F1.xml", Data: []byte("<Document>one</Document>")},
		{CopyIndex: 2, Name: "PAIN1V3_SDMC_20240315093045002_F2.xml", Data: []byte("<Document>two</Document>")},
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestStore_PutAndTake(t *testing.T) {
	store, _ := createTestStore(t)
	ctx := context.Background()
	files := createTestFiles()

	id, err := store.Put(ctx, "PAIN1V3_SDMC_20240315093045.zip", files)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	name, data, err := store.Take(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "PAIN1V3_SDMC_20240315093045.zip", name)

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	require.Len(t, zr.File, 2)

	for i, zf := range zr.File {
		assert.Equal(t, files[i].Name, zf.Name)
		rc, err := zf.Open()
		require.NoError(t, err)
		content, err := io.ReadAll(rc)
		require.NoError(t, err)
		require.NoError(t, rc.Close())
		assert.Equal(t, files[i].Data, content)
	}
}

func TestStore_TakeIsSingleUse(t *testing.T) {
	store, _ := createTestStore(t)
	ctx := context.Background()

	id, err := store.Put(ctx, "bundle.zip", createTestFiles())
	require.NoError(t, err)

	_, _, err = store.Take(ctx, id)
	require.NoError(t, err)

	_, _, err = store.Take(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlerrors.ErrArchiveNotFound))
}

func TestStore_UnknownID(t *testing.T) {
	store, _ := createTestStore(t)

	_, _, err := store.Take(context.Background(), "does-not-exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlerrors.ErrArchiveNotFound))
}

func TestStore_ArchiveExpires(t *testing.T) {
	store, mr := createTestStore(t)
	ctx := context.Background()

	id, err := store.Put(ctx, "bundle.zip", createTestFiles())
	require.NoError(t, err)

	mr.FastForward(31 * time.Minute)

	_, _, err = store.Take(ctx, id)
	require.Error(t, err)
	assert.True(t, errors.Is(err, xmlerrors.ErrArchiveNotFound))
}
