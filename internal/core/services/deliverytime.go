package services

import (
	"context"
	"sort"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
)

var _ driving.EntityLister = (*DeliveryTimeService)(nil)

// unitDays converts the store's delivery-time units to days for sorting.
var unitDays = map[string]float64{
	"hour":  0.0416667,
	"day":   1,
	"week":  7,
	"month": 31,
	"year":  365,
}

// DeliveryTimeService reads delivery-time records.
type DeliveryTimeService struct {
	client driven.AdminClient
}

// NewDeliveryTimeService creates the delivery-time facade.
func NewDeliveryTimeService(client driven.AdminClient) *DeliveryTimeService {
	return &DeliveryTimeService{client: client}
}

// List lists all delivery-time records, following pagination.
func (s *DeliveryTimeService) List(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "delivery-time", nil)
}

// Search searches delivery-time records, following pagination.
func (s *DeliveryTimeService) Search(ctx context.Context, criteria *driven.Criteria) ([]domain.Record, error) {
	return s.client.PostPaginated(ctx, "search/delivery-time", criteria)
}

// SortedByMinDays returns id and name of all delivery times, ordered by
// their minimal duration, with a position field counting 10, 20, ... -
// ready to feed into selection lists.
func (s *DeliveryTimeService) SortedByMinDays(ctx context.Context) ([]domain.Record, error) {
	criteria := &driven.Criteria{
		Includes: map[string][]string{"delivery_time": {"id", "name", "min", "unit"}},
	}
	records, err := s.Search(ctx, criteria)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(records, func(i, j int) bool {
		return minDays(records[i]) < minDays(records[j])
	})

	position := 10
	sorted := make([]domain.Record, 0, len(records))
	for _, record := range records {
		sorted = append(sorted, domain.Record{
			"id":       record["id"],
			"name":     record["name"],
			"position": position,
		})
		position += 10
	}
	return sorted, nil
}

func minDays(record domain.Record) float64 {
	min, _ := record["min"].(float64)
	return min * unitDays[record.GetString("unit")]
}
