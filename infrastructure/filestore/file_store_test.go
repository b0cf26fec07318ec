package filestore_test

import (
	"context"
	"testing"

	"tiktok-planner/domain/repository"
	"tiktok-planner/infrastructure/filestore"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileBlobStore_GetMissing(t *testing.T) {
	store := filestore.NewFileBlobStore(afero.NewMemMapFs(), "data/queue-store.json", "tiktok-queue")

	_, err := store.Get(context.Background(), "tiktok-queue")
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)
}

func TestFileBlobStore_SetThenGet(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := filestore.NewFileBlobStore(fs, "data/queue-store.json", "tiktok-queue")

	require.NoError(t, store.Set(context.Background(), "tiktok-queue", []byte(`[{"id":"v1"}]`)))
	require.NoError(t, store.Set(context.Background(), "tiktok-queue", []byte(`[{"id":"v2"}]`)))

	data, err := store.Get(context.Background(), "tiktok-queue")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"v2"}]`, string(data))

	onDisk, err := afero.ReadFile(fs, "data/queue-store.json")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"v2"}]`, string(onDisk))

	exists, err := afero.Exists(fs, "data/queue-store.json.tmp")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFileBlobStore_OtherKeysLiveBesideDefault(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := filestore.NewFileBlobStore(fs, "data/queue-store.json", "tiktok-queue")

	require.NoError(t, store.Set(context.Background(), "drafts", []byte(`[]`)))

	exists, err := afero.Exists(fs, "data/drafts.json")
	require.NoError(t, err)
	assert.True(t, exists)
	_, err = store.Get(context.Background(), "tiktok-queue")
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)
}

func TestFileBlobStore_ReadOnlyFs(t *testing.T) {
	store := filestore.NewFileBlobStore(afero.NewReadOnlyFs(afero.NewMemMapFs()), "data/queue-store.json", "tiktok-queue")

	assert.Error(t, store.Set(context.Background(), "tiktok-queue", []byte(`[]`)))
}

func TestMemoryBlobStore(t *testing.T) {
	store := filestore.NewMemoryBlobStore()

	_, err := store.Get(context.Background(), "tiktok-queue")
	assert.ErrorIs(t, err, repository.ErrBlobNotFound)

	value := []byte(`[]`)
	require.NoError(t, store.Set(context.Background(), "tiktok-queue", value))
	value[0] = 'x'

	data, err := store.Get(context.Background(), "tiktok-queue")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))
}
