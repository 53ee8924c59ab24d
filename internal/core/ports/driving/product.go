package driving

import (
	"context"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// PictureUpserter replaces a product's picture set in one operation.
type PictureUpserter interface {
	// UpsertPictures upserts all pictures of a product and recreates the
	// product-media relations wholesale. The picture with the lowest
	// position becomes the cover. The product must already exist.
	UpsertPictures(ctx context.Context, productNumber string, pictures []domain.Picture) error
}

// EntityLister exposes the flat read-only listings of the small entity
// facades (currency, tax, delivery-time, unit) for display.
type EntityLister interface {
	List(ctx context.Context) ([]domain.Record, error)
}
