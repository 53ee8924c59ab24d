package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
	"github.com/custodia-labs/shopctl/internal/logger"
)

// Ensure FolderWriter implements the interface.
var _ driving.FolderService = (*FolderWriter)(nil)

// ConfigFolderName is the named folder whose configuration newly created
// folders inherit when the caller supplies none.
const ConfigFolderName = "Product Media"

// FolderWriter creates and deletes media folders. New folders inherit their
// configuration from the parent (or from the "Product Media" root folder
// when ensuring whole paths), so the store renders thumbnails consistently
// for everything this client creates.
type FolderWriter struct {
	client   driven.AdminClient
	resolver *FolderResolver

	mu           sync.Mutex
	configByID   map[string]string
	configByName map[folderKey]string
}

// NewFolderWriter creates a writer sharing the given resolver's view of the
// folder tree.
func NewFolderWriter(client driven.AdminClient, resolver *FolderResolver) *FolderWriter {
	return &FolderWriter{
		client:       client,
		resolver:     resolver,
		configByID:   make(map[string]string),
		configByName: make(map[folderKey]string),
	}
}

// Resolve walks an absolute folder path to its folder id.
func (w *FolderWriter) Resolve(ctx context.Context, path domain.FolderPath) (string, error) {
	return w.resolver.ResolvePath(ctx, path)
}

// Ensure creates the folder path segment by segment where missing and
// returns the id of the deepest folder. Calling twice with the same path is
// a no-op the second time and returns the same id both times.
func (w *FolderWriter) Ensure(ctx context.Context, path domain.FolderPath, configurationID string) (string, error) {
	if configurationID == "" {
		var err error
		configurationID, err = w.ConfigurationIDByName(ctx, ConfigFolderName, domain.RootFolderID)
		if err != nil {
			return "", err
		}
	}

	folderID := domain.RootFolderID
	parentID := domain.RootFolderID
	for _, name := range path {
		id, err := w.resolver.FolderID(ctx, name, parentID)
		if errors.Is(err, domain.ErrNotFound) {
			if err := w.Insert(ctx, name, parentID, configurationID); err != nil {
				return "", err
			}
			id, err = w.resolver.FolderID(ctx, name, parentID)
			if err != nil {
				return "", err
			}
		} else if err != nil {
			return "", err
		}
		folderID = id
		parentID = id
	}
	return folderID, nil
}

// Insert creates a single folder below a parent. An empty configurationID is
// inherited from the parent folder.
func (w *FolderWriter) Insert(ctx context.Context, name, parentID, configurationID string) error {
	if configurationID == "" {
		var err error
		configurationID, err = w.ConfigurationID(ctx, parentID)
		if err != nil {
			return err
		}
	}

	payload := map[string]any{
		"name":            name,
		"parentId":        folderValue(parentID),
		"configurationId": configurationID,
	}
	if _, err := w.client.Post(ctx, "media-folder", payload); err != nil {
		return err
	}
	logger.Debug("created media folder %q below %q", name, parentID)

	w.invalidate()
	return nil
}

// Delete removes a folder by id. Without force the folder must be empty.
// The root folder can never be deleted, force or not. With force the remote
// store cascades the delete to subfolders and contained media.
func (w *FolderWriter) Delete(ctx context.Context, folderID string, force bool) error {
	if folderID == domain.RootFolderID {
		return domain.ErrRootFolder
	}

	if !force {
		empty, err := w.IsEmpty(ctx, folderID)
		if err != nil {
			return err
		}
		if !empty {
			return fmt.Errorf("media folder id %q: %w", folderID, domain.ErrFolderNotEmpty)
		}
	}

	if err := w.client.Delete(ctx, "media-folder/"+folderID); err != nil {
		return err
	}
	logger.Debug("deleted media folder %q", folderID)

	w.invalidate()
	return nil
}

// Remove deletes the folder at the path. The emptiness check runs against
// the path before the id delete, so the error names the path the caller
// used, not a derived id.
func (w *FolderWriter) Remove(ctx context.Context, path domain.FolderPath, force bool) error {
	folderID, err := w.resolver.ResolvePath(ctx, path)
	if err != nil {
		return err
	}
	if !force {
		empty, err := w.IsEmptyByPath(ctx, path)
		if err != nil {
			return err
		}
		if !empty {
			return fmt.Errorf("media folder %q: %w", path, domain.ErrFolderNotEmpty)
		}
	}
	return w.Delete(ctx, folderID, true)
}

// ConfigurationID returns the configuration id of a folder, used to inherit
// the parent's configuration when creating children. Memoised.
func (w *FolderWriter) ConfigurationID(ctx context.Context, folderID string) (string, error) {
	w.mu.Lock()
	if id, ok := w.configByID[folderID]; ok {
		w.mu.Unlock()
		return id, nil
	}
	w.mu.Unlock()

	criteria := driven.One(driven.Equals("id", folderID))
	criteria.Includes = map[string][]string{"media_folder": {"configurationId"}}

	resp, err := w.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("media folder with id %q: %w", folderID, domain.ErrNotFound)
	}
	configurationID := resp.Data[0].GetString("configurationId")

	w.mu.Lock()
	w.configByID[folderID] = configurationID
	w.mu.Unlock()

	return configurationID, nil
}

// ConfigurationIDByName returns the configuration id of a folder addressed
// by name and parent. Memoised.
func (w *FolderWriter) ConfigurationIDByName(ctx context.Context, name, parentID string) (string, error) {
	key := folderKey{name: name, parentID: parentID}

	w.mu.Lock()
	if id, ok := w.configByName[key]; ok {
		w.mu.Unlock()
		return id, nil
	}
	w.mu.Unlock()

	criteria := driven.One(
		driven.Equals("name", name),
		driven.Equals("parentId", folderValue(parentID)),
	)
	criteria.Includes = map[string][]string{"media_folder": {"configurationId"}}

	resp, err := w.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("media folder with name %q: %w", name, domain.ErrNotFound)
	}
	configurationID := resp.Data[0].GetString("configurationId")

	w.mu.Lock()
	w.configByName[key] = configurationID
	w.mu.Unlock()

	return configurationID, nil
}

// HasSubfolders reports whether any folder lists the given folder as parent.
// The probe asks for a single record, never a full listing.
func (w *FolderWriter) HasSubfolders(ctx context.Context, folderID string) (bool, error) {
	criteria := driven.One(driven.Equals("parentId", folderValue(folderID)))
	criteria.Includes = map[string][]string{"media_folder": {"id"}}

	resp, err := w.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return false, err
	}
	if len(resp.Data) > 0 {
		return true, nil
	}

	// No children proves nothing when the folder itself is gone.
	exists, err := w.Exists(ctx, folderID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, fmt.Errorf("media folder id %q: %w", folderID, domain.ErrNotFound)
	}
	return false, nil
}

// ContainsMedia reports whether any media record lives in the folder.
// The probe asks for a single record, never a full listing. A store-level
// rejection of the probe is reported as the folder not being found.
func (w *FolderWriter) ContainsMedia(ctx context.Context, folderID string) (bool, error) {
	criteria := driven.One(driven.Equals("mediaFolderId", folderValue(folderID)))
	criteria.Includes = map[string][]string{"media": {"id"}}

	resp, err := w.client.Post(ctx, "search/media", criteria)
	if err != nil {
		var apiErr *driven.APIError
		if errors.As(err, &apiErr) {
			return false, fmt.Errorf("media folder id %q: %w", folderID, domain.ErrNotFound)
		}
		return false, err
	}
	return len(resp.Data) > 0, nil
}

// IsEmpty reports whether the folder holds neither media nor subfolders.
func (w *FolderWriter) IsEmpty(ctx context.Context, folderID string) (bool, error) {
	hasMedia, err := w.ContainsMedia(ctx, folderID)
	if err != nil {
		return false, err
	}
	if hasMedia {
		return false, nil
	}
	hasSubfolders, err := w.HasSubfolders(ctx, folderID)
	if err != nil {
		return false, err
	}
	return !hasSubfolders, nil
}

// IsEmptyByPath resolves the path and reports emptiness of the folder.
func (w *FolderWriter) IsEmptyByPath(ctx context.Context, path domain.FolderPath) (bool, error) {
	folderID, err := w.resolver.ResolvePath(ctx, path)
	if err != nil {
		return false, err
	}
	return w.IsEmpty(ctx, folderID)
}

// Exists reports whether a folder with the given id exists.
func (w *FolderWriter) Exists(ctx context.Context, folderID string) (bool, error) {
	criteria := driven.One(driven.Equals("id", folderID))
	criteria.Includes = map[string][]string{"media_folder": {"id"}}

	resp, err := w.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return false, err
	}
	return len(resp.Data) > 0, nil
}

// ExistsByPath reports whether the full folder path resolves.
func (w *FolderWriter) ExistsByPath(ctx context.Context, path domain.FolderPath) (bool, error) {
	_, err := w.resolver.ResolvePath(ctx, path)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Folders lists all media folders, following pagination.
func (w *FolderWriter) Folders(ctx context.Context) ([]domain.Record, error) {
	return w.client.GetPaginated(ctx, "media-folder", nil)
}

// SearchFolders runs a single search request with the given criteria.
func (w *FolderWriter) SearchFolders(ctx context.Context, criteria *driven.Criteria) ([]domain.Record, error) {
	resp, err := w.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// Configurations lists all media folder configurations, following pagination.
func (w *FolderWriter) Configurations(ctx context.Context) ([]domain.Record, error) {
	return w.client.GetPaginated(ctx, "media-folder-configuration", nil)
}

// invalidate drops the configuration memos and the resolver's path memos.
// Called after every folder write.
func (w *FolderWriter) invalidate() {
	w.mu.Lock()
	w.configByID = make(map[string]string)
	w.configByName = make(map[folderKey]string)
	w.mu.Unlock()
	w.resolver.Invalidate()
}
