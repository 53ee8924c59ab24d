package services

import (
	"github.com/custodia-labs/shopctl/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// Fixture ids, stable across tests.
const (
	fixtureConfigID     = "config-product-media"
	fixtureRootFolderID = "folder-product-media"
	fixtureCurrencyEUR  = "currency-eur"
	fixtureCurrencyCHF  = "currency-chf"
	fixtureTaxStandard  = "tax-standard"
	fixtureTaxReduced   = "tax-reduced"
)

// newStoreFixture builds an in-memory store seeded the way a freshly
// installed shop looks: the "Product Media" default folder with its
// thumbnail configuration, two currencies and two tax rates.
func newStoreFixture() *memory.AdminClient {
	client := memory.NewAdminClient()

	client.Seed("media-folder-configuration",
		domain.Record{"id": fixtureConfigID, "createThumbnails": true},
	)
	client.Seed("media-folder",
		domain.Record{
			"id":              fixtureRootFolderID,
			"name":            "Product Media",
			"parentId":        nil,
			"configurationId": fixtureConfigID,
		},
	)
	client.Seed("currency",
		domain.Record{"id": fixtureCurrencyEUR, "isoCode": "EUR", "name": "Euro"},
		domain.Record{"id": fixtureCurrencyCHF, "isoCode": "CHF", "name": "Swiss franc"},
	)
	client.Seed("tax",
		domain.Record{"id": fixtureTaxStandard, "name": "Standard rate", "taxRate": 19.0},
		domain.Record{"id": fixtureTaxReduced, "name": "Reduced rate", "taxRate": 7.0},
	)
	return client
}

// newAPIFixture builds the full facade stack over a seeded store.
func newAPIFixture() (*memory.AdminClient, *AdminAPI) {
	client := newStoreFixture()
	return client, NewAdminAPI(client, nil)
}

func mustPath(raw string) domain.FolderPath {
	path, err := domain.ParseFolderPath(raw)
	if err != nil {
		panic(err)
	}
	return path
}
