package services

import (
	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
)

// AdminAPI bundles the service facades over one shared admin client.
// All facades share the same folder resolver so memoized lookups are
// reused across media and folder operations.
type AdminAPI struct {
	Folders      *FolderWriter
	Media        *MediaService
	Product      *ProductService
	Currency     *CurrencyService
	Tax          *TaxService
	DeliveryTime *DeliveryTimeService
	Unit         *UnitService
}

// NewAdminAPI wires the facades. mediaRoot is the folder path under
// which uploaded product media is sharded; nil selects the default.
func NewAdminAPI(client driven.AdminClient, mediaRoot domain.FolderPath) *AdminAPI {
	resolver := NewFolderResolver(client)
	folders := NewFolderWriter(client, resolver)
	media := NewMediaService(client, folders, mediaRoot)
	tax := NewTaxService(client)
	currency := NewCurrencyService(client)

	return &AdminAPI{
		Folders:      folders,
		Media:        media,
		Product:      NewProductService(client, media, tax, currency),
		Currency:     currency,
		Tax:          tax,
		DeliveryTime: NewDeliveryTimeService(client),
		Unit:         NewUnitService(client),
	}
}
