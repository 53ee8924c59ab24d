package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
	"github.com/custodia-labs/shopctl/internal/core/ports/driving"
	"github.com/custodia-labs/shopctl/internal/logger"
)

// Ensure MediaService implements the interface.
var _ driving.MediaUpserter = (*MediaService)(nil)

// DefaultMediaFolderRoot is the folder all product media is sharded under
// when no root is configured.
const DefaultMediaFolderRoot = "/Product Media/api_imported"

// MediaService manages media records: the two-phase insert (register the
// metadata record, then upload the binary), filename-keyed updates, and the
// upsert that ties folder, filename and id together for a product picture.
//
// Media filenames are unique across the whole store regardless of folder.
// Lookups filter on the exact (stem, extension) pair, so two folders holding
// the same filename would be indistinguishable here; the derived filenames
// of MediaFilename make collisions impossible by construction.
type MediaService struct {
	client  driven.AdminClient
	folders *FolderWriter
	root    domain.FolderPath
}

// NewMediaService creates the media facade. A nil root falls back to
// DefaultMediaFolderRoot.
func NewMediaService(client driven.AdminClient, folders *FolderWriter, root domain.FolderPath) *MediaService {
	if root == nil {
		root, _ = domain.ParseFolderPath(DefaultMediaFolderRoot)
	}
	return &MediaService{client: client, folders: folders, root: root}
}

// FolderRoot returns the folder all product media is sharded under.
func (s *MediaService) FolderRoot() domain.FolderPath {
	return s.root
}

// Insert registers a media record in the given folder and, when upload is
// set, uploads the binary content from the URL. An empty filename defaults
// to the URL's final path segment. Returns the derived media id.
//
// With upload false the record exists but carries no filename fields yet:
// filename lookups and existence probes will not see it until a later
// Upload completes it. The caller must keep the returned id.
func (s *MediaService) Insert(ctx context.Context, folderID, sourceURL, alt, title, filename string, upload bool) (string, error) {
	if filename == "" {
		filename = path.Base(sourceURL)
	}
	stem, ext := splitFilename(filename)

	mediaID, err := domain.NewMediaID(filename)
	if err != nil {
		return "", err
	}

	payload := map[string]any{
		"id":            mediaID,
		"mediaFolderId": folderValue(folderID),
		"alt":           nullable(alt),
		"title":         nullable(title),
	}
	if _, err := s.client.Post(ctx, "media", payload); err != nil {
		return "", err
	}

	if upload {
		if err := s.Upload(ctx, mediaID, sourceURL, stem, ext); err != nil {
			return "", err
		}
	}
	logger.Debug("inserted media %q (%s)", filename, mediaID)
	return mediaID, nil
}

// InsertByPath registers a media record addressed by a full path like
// "/Product Media/a000/000123456_1.jpg", creating the containing folders as
// needed, and uploads the binary from the URL.
func (s *MediaService) InsertByPath(ctx context.Context, mediaPath domain.FolderPath, sourceURL, alt, title string) (string, error) {
	if mediaPath.IsRoot() {
		return "", fmt.Errorf("media path %q has no filename: %w", mediaPath, domain.ErrInvalidInput)
	}
	folderPath := mediaPath[:len(mediaPath)-1]
	filename := mediaPath[len(mediaPath)-1]

	folderID, err := s.folders.Ensure(ctx, folderPath, "")
	if err != nil {
		return "", err
	}
	return s.Insert(ctx, folderID, sourceURL, alt, title, filename, true)
}

// Update finds the media record by filename, re-points folder, alt and
// title, and re-uploads the binary when upload is set. An empty filename
// defaults to the URL's final path segment. Fails with not-found when no
// record carries the filename.
func (s *MediaService) Update(ctx context.Context, folderID, sourceURL, alt, title, filename string, upload bool) (string, error) {
	if filename == "" {
		filename = path.Base(sourceURL)
	}
	mediaID, err := s.IDByFilename(ctx, filename)
	if err != nil {
		return "", err
	}
	stem, ext := splitFilename(filename)

	payload := map[string]any{
		"mediaFolderId": folderValue(folderID),
		"alt":           nullable(alt),
		"title":         nullable(title),
	}
	if err := s.client.Patch(ctx, "media/"+mediaID, payload); err != nil {
		return "", err
	}

	if upload {
		if err := s.Upload(ctx, mediaID, sourceURL, stem, ext); err != nil {
			return "", err
		}
	}
	logger.Debug("updated media %q (%s)", filename, mediaID)
	return mediaID, nil
}

// Upload performs the binary upload step for an already registered media
// record: the store fetches the content from the URL and fills in the
// record's filename fields.
func (s *MediaService) Upload(ctx context.Context, mediaID, sourceURL, stem, ext string) error {
	query := url.Values{}
	query.Set("extension", strings.TrimPrefix(ext, "."))
	query.Set("fileName", stem)

	endpoint := fmt.Sprintf("_action/media/%s/upload?%s", mediaID, query.Encode())
	_, err := s.client.Post(ctx, endpoint, map[string]any{"url": sourceURL})
	return err
}

// Remove deletes a media record by id.
func (s *MediaService) Remove(ctx context.Context, mediaID string) error {
	return s.client.Delete(ctx, "media/"+mediaID)
}

// IDByFilename returns the id of the media record carrying the filename.
// The lookup is an exact match on stem and extension; it only succeeds once
// the binary upload populated those fields.
func (s *MediaService) IDByFilename(ctx context.Context, filename string) (string, error) {
	stem, ext := splitFilename(path.Base(filename))

	criteria := driven.One(
		driven.Equals("fileName", stem),
		driven.Equals("fileExtension", strings.TrimPrefix(ext, ".")),
	)
	criteria.Includes = map[string][]string{"media": {"id"}}

	resp, err := s.client.Post(ctx, "search/media", criteria)
	if err != nil {
		return "", err
	}
	if len(resp.Data) == 0 {
		return "", fmt.Errorf("media filename %q: %w", path.Base(filename), domain.ErrNotFound)
	}
	return resp.Data[0].GetString("id"), nil
}

// Exists reports whether a media record carries the filename (or the
// filename of the URL). The filename must have an extension.
func (s *MediaService) Exists(ctx context.Context, filename string) (bool, error) {
	if path.Ext(filename) == "" {
		return false, fmt.Errorf("media %q does not have an extension: %w", filename, domain.ErrInvalidInput)
	}
	_, err := s.IDByFilename(ctx, filename)
	if errors.Is(err, domain.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// ExistsByID reports whether a media record with the given id exists.
func (s *MediaService) ExistsByID(ctx context.Context, mediaID string) (bool, error) {
	criteria := driven.One(driven.Equals("id", mediaID))
	criteria.Includes = map[string][]string{"media": {"id"}}

	resp, err := s.client.Post(ctx, "search/media", criteria)
	if err != nil {
		return false, err
	}
	return len(resp.Data) > 0, nil
}

// Upsert inserts or updates the media record of one product picture. The
// filename and the sharded folder are derived from the product number, the
// folder chain is created as needed, and the insert/update branch is chosen
// by a filename existence probe.
//
// Two clients racing on the same picture can both take the insert branch;
// the store then rejects the second insert as a duplicate id rather than
// double-creating - the deterministic id is the only safety net here.
func (s *MediaService) Upsert(ctx context.Context, req driving.MediaUpsert) (string, error) {
	filename := domain.MediaFilename(req.ProductNumber, req.Position, req.URL)
	folderPath := domain.ShardedFolderPath(s.root, req.ProductNumber)

	folderID, err := s.folders.Ensure(ctx, folderPath, "")
	if err != nil {
		return "", err
	}

	exists, err := s.Exists(ctx, filename)
	if err != nil {
		return "", err
	}
	if exists {
		return s.Update(ctx, folderID, req.URL, req.Alt, req.Title, filename, req.Upload)
	}
	return s.Insert(ctx, folderID, req.URL, req.Alt, req.Title, filename, req.Upload)
}

// Medias searches media records, optionally narrowed by a term, following
// pagination.
func (s *MediaService) Medias(ctx context.Context, term string) ([]domain.Record, error) {
	return s.Search(ctx, &driven.Criteria{Term: term})
}

// Search searches media records with the given criteria, following
// pagination.
func (s *MediaService) Search(ctx context.Context, criteria *driven.Criteria) ([]domain.Record, error) {
	return s.client.PostPaginated(ctx, "search/media", criteria)
}

// List lists all media records, following pagination.
func (s *MediaService) List(ctx context.Context) ([]domain.Record, error) {
	return s.client.GetPaginated(ctx, "media", nil)
}

// splitFilename splits "name.jpg" into "name" and ".jpg".
func splitFilename(filename string) (stem, ext string) {
	ext = path.Ext(filename)
	return strings.TrimSuffix(filename, ext), ext
}

// nullable maps empty strings to JSON null; the store distinguishes unset
// from empty for the optional media texts.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
