package driving

import (
	"context"

	"github.com/custodia-labs/shopctl/internal/core/domain"
)

// FolderService manages the remote media folder hierarchy by path.
type FolderService interface {
	// Resolve walks an absolute folder path to its folder id.
	// The root path resolves to domain.RootFolderID.
	Resolve(ctx context.Context, path domain.FolderPath) (string, error)

	// Ensure creates the folder path segment by segment where missing and
	// returns the id of the deepest folder. Existing segments are kept;
	// calling twice is a no-op the second time.
	Ensure(ctx context.Context, path domain.FolderPath, configurationID string) (string, error)

	// Remove deletes the folder at the path. Without force the folder must
	// be empty; with force the remote store cascades to the whole subtree.
	Remove(ctx context.Context, path domain.FolderPath, force bool) error
}
