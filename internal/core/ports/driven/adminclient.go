package driven

import (
	"context"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// Response is a parsed admin API response body.
type Response struct {
	// Data holds the records of a search or list response.
	// Write endpoints return no body; Data is empty for those.
	Data []domain.Record `json:"data"`

	// Total is the total match count, when the endpoint reports one.
	Total int `json:"total"`
}

// AdminClient is the remote store's admin HTTP API.
//
// Implementations own the session lifecycle (token acquisition and refresh),
// transparent pagination, and retry of transient failures. They surface
// non-success responses as a typed error which services pass through
// uninterpreted; services never inspect HTTP status codes.
type AdminClient interface {
	// Post sends a JSON payload to an endpoint like "media" or
	// "search/media-folder" and returns the parsed response.
	Post(ctx context.Context, endpoint string, payload any) (*Response, error)

	// Patch partially updates a record, endpoint like "media/{id}".
	Patch(ctx context.Context, endpoint string, payload any) error

	// Delete removes a record, endpoint like "media-folder/{id}".
	Delete(ctx context.Context, endpoint string) error

	// GetPaginated lists an entity endpoint like "media-folder", following
	// pagination until all records are read. Page and limit of the criteria
	// are overridden by the pagination loop.
	GetPaginated(ctx context.Context, endpoint string, criteria *Criteria) ([]domain.Record, error)

	// PostPaginated searches an endpoint like "search/media", following
	// pagination until all records are read. Page and limit of the criteria
	// are overridden by the pagination loop.
	PostPaginated(ctx context.Context, endpoint string, criteria *Criteria) ([]domain.Record, error)
}
