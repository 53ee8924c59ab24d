package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMediaID(t *testing.T) {
	id, err := NewMediaID("123.jpg")
	require.NoError(t, err)
	assert.Len(t, id, 32)

	// Deterministic: same filename, same id.
	again, err := NewMediaID("123.jpg")
	require.NoError(t, err)
	assert.Equal(t, id, again)

	// A URL ending in the filename yields the same id.
	fromURL, err := NewMediaID("https://pics.example.com/test/123.jpg")
	require.NoError(t, err)
	assert.Equal(t, id, fromURL)
}

func TestNewMediaID_NoExtension(t *testing.T) {
	_, err := NewMediaID("123")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestMediaFilename(t *testing.T) {
	tests := []struct {
		name          string
		productNumber string
		position      int
		url           string
		want          string
	}{
		{"numeric padded", "12345", 1, "http://x/y/z.jpg", "000012345_1.jpg"},
		{"numeric full width", "123456789", 1, "something.jpg", "123456789_1.jpg"},
		{"non numeric verbatim", "abc", 1, "y/z.png", "abc_1.png"},
		{"long name verbatim", "test_get_media_filename_from_product_number", 1, "something.jpg",
			"test_get_media_filename_from_product_number_1.jpg"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MediaFilename(tt.productNumber, tt.position, tt.url))
		})
	}
}

func TestShardedFolderPath(t *testing.T) {
	root, err := ParseFolderPath("/Product Media/api_imported")
	require.NoError(t, err)

	got := ShardedFolderPath(root, "456789")
	assert.Equal(t, "/Product Media/api_imported/e3/5c/f7/b66449df565f93c607d5a81d09", got.String())

	// Deterministic across calls.
	assert.Equal(t, got, ShardedFolderPath(root, "456789"))

	// Distinct product numbers shard to distinct folders.
	other := ShardedFolderPath(root, "123456789abcdefg")
	assert.Equal(t, "/Product Media/api_imported/94/08/f8/da307c543595e92ded30cf4193", other.String())
	assert.NotEqual(t, got, other)
}

func TestNewProductID(t *testing.T) {
	id := NewProductID("123")
	assert.Len(t, id, 32)
	assert.NotEqual(t, id, NewProductID("1234"))
}

func TestNewProductMediaID(t *testing.T) {
	id := NewProductMediaID("123", 0)
	assert.Len(t, id, 32)
	assert.Equal(t, id, NewProductMediaID("123", 0))
	assert.NotEqual(t, id, NewProductMediaID("123", 1))
}
