package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
	"github.com/custodia-labs/shopctl/internal/logger"
)

// Ensure ProductService implements the interface.
var _ driving.PictureUpserter = (*ProductService)(nil)

// ProductInsert is the input of ProductService.Insert.
type ProductInsert struct {
	Name          string
	ProductNumber string
	Stock         int

	// PriceGross is shown to customers who see gross prices. When PriceNet
	// is zero it is derived from PriceGross and the named tax rate.
	PriceGross float64
	PriceNet   float64

	// TaxName defaults to "Standard rate", CurrencyISO to "EUR".
	TaxName     string
	CurrencyISO string

	// Linked lets the administration recalculate the gross/net counterpart
	// when one of the prices is edited there.
	Linked bool
}

// ProductService manages products and their media relations. It owns the
// highest-level operation of the client: replacing a product's whole picture
// set in one idempotent pass.
type ProductService struct {
	client   driven.AdminClient
	media    *MediaService
	tax      *TaxService
	currency *CurrencyService

	mu         sync.Mutex
	idByNumber map[string]string
}

// NewProductService creates the product facade.
func NewProductService(client driven.AdminClient, media *MediaService, tax *TaxService, currency *CurrencyService) *ProductService {
	return &ProductService{
		client:     client,
		media:      media,
		tax:        tax,
		currency:   currency,
		idByNumber: make(map[string]string),
	}
}

// IDByProductNumber returns the id of the product carrying the product
// number. Memoised; Invalidate after product writes.
func (s *ProductService) IDByProductNumber(ctx context.Context, productNumber string) (string, error) {
	s.mu.Lock()
	if id, ok := s.idByNumber[productNumber]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	criteria := driven.One(driven.Equals("productNumber", productNumber))
	criteria.Includes = map[string][]string{"product": {"id"}}

	resp, err := s.client.Post(ctx, "search/product", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("product with productNumber %q: %w", productNumber, domain.ErrNotFound)
	}

	id := resp.Data[0].GetString("id")

	s.mu.Lock()
	s.idByNumber[productNumber] = id
	s.mu.Unlock()

	return id, nil
}

// Invalidate drops the memoised product id lookups. Must be called after
// products are created or deleted outside this facade.
func (s *ProductService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idByNumber = make(map[string]string)
}

// Insert creates a product with a derived id. Tax and currency are resolved
// by name; a zero net price is derived from the gross price and the tax rate.
func (s *ProductService) Insert(ctx context.Context, req ProductInsert) (string, error) {
	if req.TaxName == "" {
		req.TaxName = DefaultTaxName
	}
	if req.CurrencyISO == "" {
		req.CurrencyISO = DefaultCurrencyISO
	}

	taxID, err := s.tax.IDByName(ctx, req.TaxName)
	if err != nil {
		return "", err
	}
	if req.PriceNet == 0 {
		rate, err := s.tax.RateByName(ctx, req.TaxName)
		if err != nil {
			return "", err
		}
		req.PriceNet = req.PriceGross / (1 + rate/100)
	}
	currencyID, err := s.currency.IDByISOCode(ctx, req.CurrencyISO)
	if err != nil {
		return "", err
	}

	productID := domain.NewProductID(req.ProductNumber)
	payload := map[string]any{
		"id":            productID,
		"name":          req.Name,
		"productNumber": req.ProductNumber,
		"stock":         req.Stock,
		"taxId":         taxID,
		"price": []map[string]any{{
			"currencyId": currencyID,
			"gross":      req.PriceGross,
			"net":        req.PriceNet,
			"linked":     req.Linked,
		}},
	}
	if _, err := s.client.Post(ctx, "product", payload); err != nil {
		return "", err
	}
	s.Invalidate()
	return productID, nil
}

// UpsertPayload patches the product carrying the product number with the
// payload, or creates it with a derived id when it does not exist yet.
func (s *ProductService) UpsertPayload(ctx context.Context, productNumber string, payload map[string]any) (string, error) {
	productID, err := s.IDByProductNumber(ctx, productNumber)
	if err == nil {
		return productID, s.client.Patch(ctx, "product/"+productID, payload)
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return "", err
	}

	productID = domain.NewProductID(productNumber)
	payload["id"] = productID
	payload["productNumber"] = productNumber
	if _, err := s.client.Post(ctx, "product", payload); err != nil {
		return "", err
	}
	s.Invalidate()
	return productID, nil
}

// DeleteByID removes a product. The store cascades the delete to the
// product's media relations, not to the media itself.
func (s *ProductService) DeleteByID(ctx context.Context, productID string) error {
	if err := s.client.Delete(ctx, "product/"+productID); err != nil {
		return err
	}
	s.Invalidate()
	return nil
}

// InsertMediaRelation links a media record to a product at a position. The
// relation id is derived from product id and position, so re-creating the
// same relation after a partial failure converges instead of duplicating.
func (s *ProductService) InsertMediaRelation(ctx context.Context, productID, mediaID string, position int) (string, error) {
	relationID := domain.NewProductMediaID(productID, position)
	payload := map[string]any{
		"id":        relationID,
		"productId": productID,
		"mediaId":   mediaID,
		"position":  position,
	}
	if _, err := s.client.Post(ctx, "product-media", payload); err != nil {
		return "", err
	}
	return relationID, nil
}

// DeleteMediaRelation removes one product-media relation, leaving the media
// record itself in place.
func (s *ProductService) DeleteMediaRelation(ctx context.Context, relationID string) error {
	return s.client.Delete(ctx, "product-media/"+relationID)
}

// DeleteMediaRelationsByProductNumber removes all media relations of a
// product. A missing product counts as nothing to delete, not as an error -
// cleanup flows re-run this blindly.
func (s *ProductService) DeleteMediaRelationsByProductNumber(ctx context.Context, productNumber string) error {
	productID, err := s.IDByProductNumber(ctx, productNumber)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	criteria := &driven.Criteria{
		Filter:   []driven.Filter{driven.Equals("productId", productID)},
		Includes: map[string][]string{"product_media": {"id"}},
	}
	relations, err := s.SearchMediaRelations(ctx, criteria)
	if err != nil {
		return err
	}
	for _, relation := range relations {
		if err := s.DeleteMediaRelation(ctx, relation.GetString("id")); err != nil {
			return err
		}
	}
	return nil
}

// IsMediaUsed reports whether any product-media relation references the
// media record. The probe asks for a single record.
func (s *ProductService) IsMediaUsed(ctx context.Context, mediaID string) (bool, error) {
	criteria := driven.One(driven.Equals("mediaId", mediaID))
	criteria.Includes = map[string][]string{"product_media": {"id"}}

	resp, err := s.client.Post(ctx, "search/product-media", criteria)
	if err != nil {
		return false, err
	}
	return len(resp.Data) > 0, nil
}

// Products lists all products, following pagination.
func (s *ProductService) Products(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "product", nil)
}

// MediaRelations lists all product-media relations, following pagination.
func (s *ProductService) MediaRelations(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "product-media", nil)
}

// SearchMediaRelations searches product-media relations, following
// pagination.
func (s *ProductService) SearchMediaRelations(ctx context.Context, criteria *driven.Criteria) ([]domain.Record, error) {
	return s.client.PostPaginated(ctx, "search/product-media", criteria)
}

// UpsertPictures replaces a product's whole picture set: all existing media
// relations are deleted and recreated from the given list (full replace -
// diffing against unknown prior external edits would be unsafe, a replace is
// always correct). Pictures are processed in position order and the lowest
// position becomes the product cover.
//
// The product must already exist; it is never created implicitly.
//
// The sequence is not transactional. A failure partway leaves a subset of
// relations in place, possibly without a cover. Every id involved is
// deterministic, so re-running the same call converges instead of
// duplicating.
func (s *ProductService) UpsertPictures(ctx context.Context, productNumber string, pictures []domain.Picture) error {
	productID, err := s.IDByProductNumber(ctx, productNumber)
	if err != nil {
		return err
	}
	if err := s.DeleteMediaRelationsByProductNumber(ctx, productNumber); err != nil {
		return err
	}

	ordered := make([]domain.Picture, len(pictures))
	copy(ordered, pictures)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Position < ordered[j].Position
	})

	for i, picture := range ordered {
		mediaID, err := s.media.Upsert(ctx, driving.MediaUpsert{
			ProductNumber: productNumber,
			Position:      picture.Position,
			URL:           picture.URL,
			Alt:           picture.Alt,
			Title:         picture.Title,
			Upload:        true,
		})
		if err != nil {
			return err
		}
		relationID, err := s.InsertMediaRelation(ctx, productID, mediaID, picture.Position)
		if err != nil {
			return err
		}
		logger.Debug("product %s: picture position %d -> media %s", productNumber, picture.Position, mediaID)

		if i == 0 {
			if err := s.client.Patch(ctx, "product/"+productID, map[string]any{"coverId": relationID}); err != nil {
				return err
			}
		}
	}
	return nil
}
