package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

func newMediaFixture() (*memory.AdminClient, *MediaService) {
	client := newStoreFixture()
	writer := NewFolderWriter(client, NewFolderResolver(client))
	return client, NewMediaService(client, writer, nil)
}

func TestNewMediaService_DefaultRoot(t *testing.T) {
	_, svc := newMediaFixture()
	assert.Equal(t, DefaultMediaFolderRoot, svc.FolderRoot().String())
}

func TestNewMediaService_CustomRoot(t *testing.T) {
	client := newStoreFixture()
	writer := NewFolderWriter(client, NewFolderResolver(client))
	svc := NewMediaService(client, writer, mustPath("/Custom"))
	assert.Equal(t, "/Custom", svc.FolderRoot().String())
}

func TestMediaService_Insert_WithUpload(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/000456789_1.jpg", "an alt", "a title", "", true)
	require.NoError(t, err)
	assert.Len(t, id, 32)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].GetString("id"))
	assert.Equal(t, fixtureRootFolderID, records[0].GetString("mediaFolderId"))
	assert.Equal(t, "an alt", records[0].GetString("alt"))
	assert.Equal(t, "a title", records[0].GetString("title"))
	assert.Equal(t, "000456789_1", records[0].GetString("fileName"))
	assert.Equal(t, "jpg", records[0].GetString("fileExtension"))
	assert.Equal(t, "https://img.example.com/000456789_1.jpg", records[0].GetString("url"))
}

func TestMediaService_Insert_WithoutUpload(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic.jpg", "", "", "", false)
	require.NoError(t, err)

	// Registered but not uploaded: no filename fields yet, texts are null.
	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Empty(t, records[0].GetString("fileName"))
	assert.Nil(t, records[0]["alt"])
	assert.Nil(t, records[0]["title"])
}

func TestMediaService_Insert_ExplicitFilenameWinsOverURL(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	wantID, err := domain.NewMediaID("000456789_1.jpg")
	require.NoError(t, err)

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/raw-upload.jpg", "", "", "000456789_1.jpg", true)
	require.NoError(t, err)
	assert.Equal(t, wantID, id)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, "000456789_1", records[0].GetString("fileName"))
}

func TestMediaService_Insert_NoExtension(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/picture", "", "", "", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMediaService_InsertByPath(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.InsertByPath(ctx, mustPath("/Product Media/imports/pic_1.jpg"),
		"https://img.example.com/pic_1.jpg", "", "")
	require.NoError(t, err)

	// The containing folder chain was created on the way.
	assert.Len(t, client.Records("media-folder"), 2)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].GetString("id"))
	assert.Equal(t, "pic_1", records[0].GetString("fileName"))
}

func TestMediaService_InsertByPath_NoFilename(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.InsertByPath(ctx, mustPath("/"), "https://img.example.com/p.jpg", "", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMediaService_Update(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "old alt", "", "", true)
	require.NoError(t, err)

	updated, err := svc.Update(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "new alt", "new title", "", true)
	require.NoError(t, err)
	assert.Equal(t, id, updated)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, "new alt", records[0].GetString("alt"))
	assert.Equal(t, "new title", records[0].GetString("title"))
}

func TestMediaService_Update_NotFound(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Update(ctx, fixtureRootFolderID,
		"https://img.example.com/missing.jpg", "", "", "", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaService_IDByFilename(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "", "", "", true)
	require.NoError(t, err)

	found, err := svc.IDByFilename(ctx, "pic_1.jpg")
	require.NoError(t, err)
	assert.Equal(t, id, found)

	// A full path narrows down to its base name.
	found, err = svc.IDByFilename(ctx, "/some/dir/pic_1.jpg")
	require.NoError(t, err)
	assert.Equal(t, id, found)
}

func TestMediaService_IDByFilename_NotBeforeUpload(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "", "", "", false)
	require.NoError(t, err)

	// Filename fields only exist once the binary upload ran.
	_, err = svc.IDByFilename(ctx, "pic_1.jpg")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMediaService_Exists(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	exists, err := svc.Exists(ctx, "pic_1.jpg")
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "", "", "", true)
	require.NoError(t, err)

	exists, err = svc.Exists(ctx, "pic_1.jpg")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestMediaService_Exists_RequiresExtension(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Exists(ctx, "pic_1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMediaService_ExistsByID(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "", "", "", false)
	require.NoError(t, err)

	exists, err := svc.ExistsByID(ctx, id)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = svc.ExistsByID(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMediaService_Remove(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/pic_1.jpg", "", "", "", false)
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, id))
	assert.Empty(t, client.Records("media"))
}

func TestMediaService_Upsert_InsertBranch(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	id, err := svc.Upsert(ctx, driving.MediaUpsert{
		ProductNumber: "456789",
		Position:      1,
		URL:           "https://img.example.com/front.jpg",
		Alt:           "front view",
		Upload:        true,
	})
	require.NoError(t, err)

	wantID, err := domain.NewMediaID("000456789_1.jpg")
	require.NoError(t, err)
	assert.Equal(t, wantID, id)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, "000456789_1", records[0].GetString("fileName"))

	// Sharded under the default root: two fixed levels plus four hash levels.
	folderID, err := svc.folders.Resolve(ctx,
		mustPath("/Product Media/api_imported/e3/5c/f7/b66449df565f93c607d5a81d09"))
	require.NoError(t, err)
	assert.Equal(t, folderID, records[0].GetString("mediaFolderId"))
}

func TestMediaService_Upsert_TwiceConverges(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	req := driving.MediaUpsert{
		ProductNumber: "456789",
		Position:      1,
		URL:           "https://img.example.com/front.jpg",
		Upload:        true,
	}
	first, err := svc.Upsert(ctx, req)
	require.NoError(t, err)
	foldersAfterFirst := len(client.Records("media-folder"))

	req.Alt = "updated alt"
	second, err := svc.Upsert(ctx, req)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Len(t, client.Records("media"), 1)
	assert.Len(t, client.Records("media-folder"), foldersAfterFirst)
	assert.Equal(t, "updated alt", client.Records("media")[0].GetString("alt"))
}

func TestMediaService_Upsert_NonNumericProductNumber(t *testing.T) {
	client, svc := newMediaFixture()
	ctx := context.Background()

	// Non-numeric product numbers are not padded.
	_, err := svc.Upsert(ctx, driving.MediaUpsert{
		ProductNumber: "abc",
		Position:      1,
		URL:           "https://img.example.com/pic.png",
		Upload:        true,
	})
	require.NoError(t, err)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, "abc_1", records[0].GetString("fileName"))
	assert.Equal(t, "png", records[0].GetString("fileExtension"))
}

func TestMediaService_Listings(t *testing.T) {
	_, svc := newMediaFixture()
	ctx := context.Background()

	_, err := svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/front_view.jpg", "", "", "", true)
	require.NoError(t, err)
	_, err = svc.Insert(ctx, fixtureRootFolderID,
		"https://img.example.com/back_view.jpg", "", "", "", true)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	fronts, err := svc.Medias(ctx, "front")
	require.NoError(t, err)
	assert.Len(t, fronts, 1)
}
