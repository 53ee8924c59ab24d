package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// Manifest is a user-editable TOML file describing a product's picture set.
//
// Example:
//
//	product_number = "000456789"
//
//	[[picture]]
//	position = 1
//	url = "https://img.example.com/front.jpg"
//	alt = "front view"
//
//	[[picture]]
//	position = 2
//	url = "https://img.example.com/side.jpg"
type Manifest struct {
	ProductNumber string           `toml:"product_number"`
	Pictures      []domain.Picture `toml:"picture"`
}

// LoadManifest reads and validates a picture manifest.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var manifest Manifest
	if err := toml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parse manifest %q: %w", path, err)
	}

	if manifest.ProductNumber == "" {
		return nil, fmt.Errorf("manifest %q: missing product_number: %w", path, domain.ErrInvalidInput)
	}
	seen := make(map[int]bool, len(manifest.Pictures))
	for i, picture := range manifest.Pictures {
		if picture.URL == "" {
			return nil, fmt.Errorf("manifest %q: picture %d has no url: %w", path, i+1, domain.ErrInvalidInput)
		}
		if seen[picture.Position] {
			return nil, fmt.Errorf("manifest %q: duplicate position %d: %w", path, picture.Position, domain.ErrInvalidInput)
		}
		seen[picture.Position] = true
	}
	return &manifest, nil
}
