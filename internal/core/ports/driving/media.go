package driving

import (
	"context"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// MediaUpsert is the input of MediaUpserter.Upsert.
type MediaUpsert struct {
	// ProductNumber selects the sharded folder and the canonical filename.
	ProductNumber string

	// Position is the picture's position within the product.
	Position int

	// URL is the source the binary content is uploaded from.
	URL string

	// Alt and Title are optional media texts.
	Alt   string
	Title string

	// Upload controls whether the binary upload step runs. When false the
	// metadata record is registered but stays unfindable by filename until
	// a later upload completes it; the caller must keep the returned id.
	Upload bool
}

// MediaUpserter is the media-level upsert surface used by the CLI.
type MediaUpserter interface {
	// Upsert ensures the canonical sharded folder exists, then inserts or
	// updates the media record keyed by its derived filename. Returns the
	// media id, identical on every call with the same inputs.
	Upsert(ctx context.Context, req MediaUpsert) (string, error)

	// Remove deletes a media record by id.
	Remove(ctx context.Context, mediaID string) error

	// Medias lists media records, optionally narrowed by a search term.
	Medias(ctx context.Context, term string) ([]domain.Record, error)
}
