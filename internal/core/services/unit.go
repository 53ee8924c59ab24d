package services

import (
	"context"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

var _ driving.EntityLister = (*UnitService)(nil)

// UnitService reads measurement unit records.
type UnitService struct {
	client driven.AdminClient
}

// NewUnitService creates the unit facade.
func NewUnitService(client driven.AdminClient) *UnitService {
	return &UnitService{client: client}
}

// List lists all unit records, following pagination.
func (s *UnitService) List(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "unit", nil)
}

// Search searches unit records, following pagination.
func (s *UnitService) Search(ctx context.Context, criteria *driven.Criteria) ([]domain.Record, error) {
	return s.client.PostPaginated(ctx, "search/unit", criteria)
}
