package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

var _ driving.EntityLister = (*CurrencyService)(nil)

// DefaultCurrencyISO is the currency assumed when callers name none.
const DefaultCurrencyISO = "EUR"

// CurrencyService resolves currency records by ISO code.
type CurrencyService struct {
	client driven.AdminClient

	mu      sync.Mutex
	idByISO map[string]string
}

// NewCurrencyService creates the currency facade.
func NewCurrencyService(client driven.AdminClient) *CurrencyService {
	return &CurrencyService{client: client, idByISO: make(map[string]string)}
}

// IDByISOCode returns the id of the currency record with the given ISO code
// like "EUR" or "CHF". Memoised; Invalidate after currency writes.
func (s *CurrencyService) IDByISOCode(ctx context.Context, isoCode string) (string, error) {
	s.mu.Lock()
	if id, ok := s.idByISO[isoCode]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	criteria := driven.One(driven.Equals("isoCode", isoCode))
	criteria.Includes = map[string][]string{"currency": {"id"}}

	resp, err := s.client.Post(ctx, "search/currency", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("currency record with isoCode %q: %w", isoCode, domain.ErrNotFound)
	}

	id := resp.Data[0].GetString("id")

	s.mu.Lock()
	s.idByISO[isoCode] = id
	s.mu.Unlock()

	return id, nil
}

// Invalidate drops the memoised currency lookups.
func (s *CurrencyService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idByISO = make(map[string]string)
}

// List lists all currency records, following pagination.
func (s *CurrencyService) List(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "currency", nil)
}
