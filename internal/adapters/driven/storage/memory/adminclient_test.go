package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
)

func TestNewAdminClient(t *testing.T) {
	client := NewAdminClient()
	require.NotNil(t, client)
	assert.NotNil(t, client.collections)
}

func TestAdminClient_Post_Insert(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	_, err := client.Post(ctx, "media-folder", map[string]any{
		"id":   "folder-1",
		"name": "Product Media",
	})
	require.NoError(t, err)

	records := client.Records("media-folder")
	require.Len(t, records, 1)
	assert.Equal(t, "folder-1", records[0].GetString("id"))
	assert.Equal(t, "Product Media", records[0].GetString("name"))
}

func TestAdminClient_Post_Insert_AssignsID(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	_, err := client.Post(ctx, "currency", map[string]any{"isoCode": "EUR"})
	require.NoError(t, err)

	records := client.Records("currency")
	require.Len(t, records, 1)
	assert.Len(t, records[0].GetString("id"), 32)
}

func TestAdminClient_Post_Insert_DuplicateID(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	_, err := client.Post(ctx, "media", map[string]any{"id": "m-1"})
	require.NoError(t, err)

	_, err = client.Post(ctx, "media", map[string]any{"id": "m-1"})
	require.Error(t, err)

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestAdminClient_Post_Search_Equals(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media-folder",
		domain.Record{"id": "f-1", "name": "alpha", "parentId": nil},
		domain.Record{"id": "f-2", "name": "beta", "parentId": "f-1"},
	)

	resp, err := client.Post(ctx, "search/media-folder", driven.One(
		driven.Equals("name", "beta"),
	))
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "f-2", resp.Data[0].GetString("id"))
}

func TestAdminClient_Post_Search_EqualsNull(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media-folder",
		domain.Record{"id": "f-1", "name": "top", "parentId": nil},
		domain.Record{"id": "f-2", "name": "child", "parentId": "f-1"},
		domain.Record{"id": "f-3", "name": "orphanless"},
	)

	// Equality against null matches nil and absent fields alike.
	resp, err := client.Post(ctx, "search/media-folder", &driven.Criteria{
		Filter: []driven.Filter{driven.Equals("parentId", nil)},
	})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
}

func TestAdminClient_Post_Search_Pagination(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	for _, id := range []string{"m-1", "m-2", "m-3"} {
		client.Seed("media", domain.Record{"id": id})
	}

	resp, err := client.Post(ctx, "search/media", &driven.Criteria{Page: 1, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
	assert.Equal(t, 3, resp.Total)

	resp, err = client.Post(ctx, "search/media", &driven.Criteria{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 1)
}

func TestAdminClient_Post_Search_Includes(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media-folder", domain.Record{
		"id":              "f-1",
		"name":            "alpha",
		"configurationId": "c-1",
	})

	criteria := driven.One(driven.Equals("name", "alpha"))
	criteria.Includes = map[string][]string{"media_folder": {"configurationId"}}

	resp, err := client.Post(ctx, "search/media-folder", criteria)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "c-1", resp.Data[0].GetString("configurationId"))
	assert.Equal(t, "f-1", resp.Data[0].GetString("id"))
	assert.NotContains(t, resp.Data[0], "name")
}

func TestAdminClient_Post_Upload(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media", domain.Record{"id": "m-1"})

	_, err := client.Post(ctx, "_action/media/m-1/upload?extension=jpg&fileName=000000001_1",
		map[string]any{"url": "https://img.example.com/1.jpg"})
	require.NoError(t, err)

	records := client.Records("media")
	require.Len(t, records, 1)
	assert.Equal(t, "000000001_1", records[0].GetString("fileName"))
	assert.Equal(t, "jpg", records[0].GetString("fileExtension"))
	assert.Equal(t, "https://img.example.com/1.jpg", records[0].GetString("url"))
}

func TestAdminClient_Post_Upload_UnknownMedia(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	_, err := client.Post(ctx, "_action/media/missing/upload?extension=jpg&fileName=x",
		map[string]any{"url": "https://img.example.com/1.jpg"})

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestAdminClient_Patch_Success(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("product", domain.Record{"id": "p-1", "name": "Widget"})

	err := client.Patch(ctx, "product/p-1", map[string]any{"coverId": "rel-1"})
	require.NoError(t, err)

	records := client.Records("product")
	require.Len(t, records, 1)
	assert.Equal(t, "rel-1", records[0].GetString("coverId"))
	assert.Equal(t, "Widget", records[0].GetString("name"))
}

func TestAdminClient_Patch_NotFound(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	err := client.Patch(ctx, "product/missing", map[string]any{"name": "x"})

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestAdminClient_Delete_Success(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media", domain.Record{"id": "m-1"})

	err := client.Delete(ctx, "media/m-1")
	require.NoError(t, err)
	assert.Empty(t, client.Records("media"))
}

func TestAdminClient_Delete_NotFound(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	err := client.Delete(ctx, "media/missing")

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.StatusCode)
}

func TestAdminClient_Delete_FolderCascade(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media-folder",
		domain.Record{"id": "f-1", "name": "top", "parentId": nil},
		domain.Record{"id": "f-2", "name": "child", "parentId": "f-1"},
		domain.Record{"id": "f-3", "name": "other", "parentId": nil},
	)
	client.Seed("media",
		domain.Record{"id": "m-1", "mediaFolderId": "f-2"},
		domain.Record{"id": "m-2", "mediaFolderId": "f-3"},
	)

	err := client.Delete(ctx, "media-folder/f-1")
	require.NoError(t, err)

	folders := client.Records("media-folder")
	require.Len(t, folders, 1)
	assert.Equal(t, "f-3", folders[0].GetString("id"))

	media := client.Records("media")
	require.Len(t, media, 1)
	assert.Equal(t, "m-2", media[0].GetString("id"))
}

func TestAdminClient_Delete_ProductCascade(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("product", domain.Record{"id": "p-1"})
	client.Seed("product-media",
		domain.Record{"id": "r-1", "productId": "p-1"},
		domain.Record{"id": "r-2", "productId": "p-2"},
	)

	err := client.Delete(ctx, "product/p-1")
	require.NoError(t, err)

	relations := client.Records("product-media")
	require.Len(t, relations, 1)
	assert.Equal(t, "r-2", relations[0].GetString("id"))
}

func TestAdminClient_GetPaginated_All(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	for _, iso := range []string{"EUR", "CHF", "USD"} {
		client.Seed("currency", domain.Record{"isoCode": iso})
	}

	records, err := client.GetPaginated(ctx, "currency", nil)
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestAdminClient_PostPaginated_Term(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("unit",
		domain.Record{"id": "u-1", "name": "Kilogram"},
		domain.Record{"id": "u-2", "name": "Litre"},
	)

	records, err := client.PostPaginated(ctx, "search/unit", &driven.Criteria{Term: "kilo"})
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "u-1", records[0].GetString("id"))
}

func TestAdminClient_Search_UnsupportedFilter(t *testing.T) {
	client := NewAdminClient()
	ctx := context.Background()

	client.Seed("media", domain.Record{"id": "m-1"})

	_, err := client.Post(ctx, "search/media", &driven.Criteria{
		Filter: []driven.Filter{{Type: "prefix", Field: "fileName", Value: "x"}},
	})

	var apiErr *driven.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.StatusCode)
}

func TestAdminClient_Records_Isolated(t *testing.T) {
	client := NewAdminClient()

	client.Seed("media", domain.Record{"id": "m-1", "alt": "original"})

	records := client.Records("media")
	records[0]["alt"] = "changed"

	again := client.Records("media")
	assert.Equal(t, "original", again[0].GetString("alt"))
}
