package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

var _ driving.EntityLister = (*TaxService)(nil)

// DefaultTaxName is the tax record assumed when callers name none.
const DefaultTaxName = "Standard rate"

// TaxService resolves tax records by name.
type TaxService struct {
	client driven.AdminClient

	mu         sync.Mutex
	idByName   map[string]string
	rateByName map[string]float64
}

// NewTaxService creates the tax facade.
func NewTaxService(client driven.AdminClient) *TaxService {
	return &TaxService{
		client:     client,
		idByName:   make(map[string]string),
		rateByName: make(map[string]float64),
	}
}

// IDByName returns the id of the tax record with the given name, like
// "Standard rate" or "Reduced rate". Memoised; Invalidate after tax writes.
func (s *TaxService) IDByName(ctx context.Context, taxName string) (string, error) {
	s.mu.Lock()
	if id, ok := s.idByName[taxName]; ok {
		s.mu.Unlock()
		return id, nil
	}
	s.mu.Unlock()

	criteria := driven.One(driven.Equals("name", taxName))
	criteria.Includes = map[string][]string{"tax": {"id"}}

	resp, err := s.client.Post(ctx, "search/tax", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("tax record with name %q: %w", taxName, domain.ErrNotFound)
	}

	id := resp.Data[0].GetString("id")

	s.mu.Lock()
	s.idByName[taxName] = id
	s.mu.Unlock()

	return id, nil
}

// RateByName returns the percentage of the named tax record, like 19.0.
// Memoised; Invalidate after tax writes.
func (s *TaxService) RateByName(ctx context.Context, taxName string) (float64, error) {
	s.mu.Lock()
	if rate, ok := s.rateByName[taxName]; ok {
		s.mu.Unlock()
		return rate, nil
	}
	s.mu.Unlock()

	criteria := driven.One(driven.Equals("name", taxName))
	criteria.Includes = map[string][]string{"tax": {"taxRate"}}

	resp, err := s.client.Post(ctx, "search/tax", criteria)
	if err != nil {
		return 0, err
	}
	if len(resp.Data) == 0 {
		return 0, fmt.Errorf("tax record with name %q: %w", taxName, domain.ErrNotFound)
	}

	rate, _ := resp.Data[0]["taxRate"].(float64)

	s.mu.Lock()
	s.rateByName[taxName] = rate
	s.mu.Unlock()

	return rate, nil
}

// Invalidate drops the memoised tax lookups.
func (s *TaxService) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.idByName = make(map[string]string)
	s.rateByName = make(map[string]float64)
}

// List lists all tax records, following pagination.
func (s *TaxService) List(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "tax", nil)
}
