package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
)

// folderKey is the remote store's folder lookup key: a folder name is unique
// below its parent, not globally.
type folderKey struct {
	name     string
	parentID string
}

// FolderResolver resolves media folder paths against the remote store, one
// lookup per path segment. Lookups are memoised per resolver instance;
// invalidation is explicit and happens only on folder writes. A concurrent
// writer outside this process can therefore make the memo stale - callers
// that interleave with external writes must call Invalidate themselves.
type FolderResolver struct {
	client driven.AdminClient

	mu     sync.Mutex
	byKey  map[folderKey]string
	byPath map[string]string
}

// NewFolderResolver creates a resolver over the given admin client.
func NewFolderResolver(client driven.AdminClient) *FolderResolver {
	return &FolderResolver{
		client: client,
		byKey:  make(map[folderKey]string),
		byPath: make(map[string]string),
	}
}

// FolderID looks up one folder by name below a parent folder.
// Pass domain.RootFolderID as parentID for top-level folders.
func (r *FolderResolver) FolderID(ctx context.Context, name, parentID string) (string, error) {
	key := folderKey{name: name, parentID: parentID}

	r.mu.Lock()
	if id, ok := r.byKey[key]; ok {
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	criteria := driven.One(
		driven.Equals("name", name),
		driven.Equals("parentId", folderValue(parentID)),
	)
	criteria.Includes = map[string][]string{"media_folder": {"id"}}

	resp, err := r.client.Post(ctx, "search/media-folder", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("media folder name %q below parent %q: %w", name, parentID, domain.ErrNotFound)
	}

	id := resp.Data[0].GetString("id")

	r.mu.Lock()
	r.byKey[key] = id
	r.mu.Unlock()

	return id, nil
}

// ResolvePath walks an absolute folder path to its folder id. The empty path
// resolves to domain.RootFolderID without a remote call.
//
// When any segment is missing the error names the full requested path, not
// the failing segment. Known limitation, kept on purpose: the simpler error
// contract beats exposing walk internals, and callers only retry whole paths.
func (r *FolderResolver) ResolvePath(ctx context.Context, path domain.FolderPath) (string, error) {
	if path.IsRoot() {
		return domain.RootFolderID, nil
	}

	r.mu.Lock()
	if id, ok := r.byPath[path.String()]; ok {
		r.mu.Unlock()
		return id, nil
	}
	r.mu.Unlock()

	parentID := domain.RootFolderID
	for _, name := range path {
		id, err := r.FolderID(ctx, name, parentID)
		if errors.Is(err, domain.ErrNotFound) {
			return "", fmt.Errorf("media folder path %q: %w", path, domain.ErrNotFound)
		}
		if err != nil {
			return "", err
		}
		parentID = id
	}

	r.mu.Lock()
	r.byPath[path.String()] = parentID
	r.mu.Unlock()

	return parentID, nil
}

// Invalidate drops all memoised lookups. Must be called after any folder
// create or delete; reads are never invalidated automatically.
func (r *FolderResolver) Invalidate() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byKey = make(map[folderKey]string)
	r.byPath = make(map[string]string)
}

// folderValue maps the in-process root marker to the wire representation:
// the root folder has no id, its children carry parentId null.
func folderValue(folderID string) any {
	if folderID == domain.RootFolderID {
		return nil
	}
	return folderID
}
