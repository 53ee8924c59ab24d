package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

func TestNewAdminAPI(t *testing.T) {
	_, api := newAPIFixture()

	require.NotNil(t, api.Folders)
	require.NotNil(t, api.Media)
	require.NotNil(t, api.Product)
	require.NotNil(t, api.Currency)
	require.NotNil(t, api.Tax)
	require.NotNil(t, api.DeliveryTime)
	require.NotNil(t, api.Unit)

	assert.Equal(t, DefaultMediaFolderRoot, api.Media.FolderRoot().String())
}

func TestNewAdminAPI_CustomMediaRoot(t *testing.T) {
	client := newStoreFixture()
	api := NewAdminAPI(client, mustPath("/Product Media/custom_imports"))
	assert.Equal(t, "/Product Media/custom_imports", api.Media.FolderRoot().String())
}

func TestAdminAPI_SharedResolver(t *testing.T) {
	// Media and folder operations share one folder view: folders created by
	// an upsert resolve without a second remote walk.
	_, api := newAPIFixture()
	ctx := context.Background()

	path := domain.ShardedFolderPath(api.Media.FolderRoot(), "456789")
	id, err := api.Folders.Ensure(ctx, path, "")
	require.NoError(t, err)

	resolved, err := api.Media.folders.Resolve(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, id, resolved)
}
