// Package memory provides an in-memory admin client used by service tests
// and dry runs. It mimics the remote store's search semantics closely enough
// for the service layer: equals and contains filters (including equality
// against null), pagination, field trimming via includes, the two-phase
// media upload, and cascading folder and product deletes.
package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/shopctl/internal/core/domain"
	"github.com/custodia-labs/shopctl/internal/core/ports/driven"
)

// Ensure AdminClient implements the interface.
var _ driven.AdminClient = (*AdminClient)(nil)

// AdminClient is an in-memory implementation of driven.AdminClient.
type AdminClient struct {
	mu          sync.RWMutex
	collections map[string][]domain.Record
}

// NewAdminClient creates an empty in-memory admin client. Use Seed to load
// fixture records.
func NewAdminClient() *AdminClient {
	return &AdminClient{collections: make(map[string][]domain.Record)}
}

// Seed loads records into an entity collection without write-side checks.
// Records without an id get one assigned. Values are JSON round-tripped so
// they carry the types a real response body would.
func (c *AdminClient) Seed(entity string, records ...domain.Record) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, rec := range records {
		decoded, err := decodeRecord(rec)
		if err != nil {
			panic(err)
		}
		c.collections[entity] = append(c.collections[entity], c.normalise(decoded))
	}
}

// Records returns a copy of an entity collection, for test assertions.
func (c *AdminClient) Records(entity string) []domain.Record {
	c.mu.RLock()
	defer c.mu.RUnlock()
	records := make([]domain.Record, 0, len(c.collections[entity]))
	for _, rec := range c.collections[entity] {
		records = append(records, copyRecord(rec))
	}
	return records
}

// Post routes search requests, the media upload action, and record inserts.
func (c *AdminClient) Post(_ context.Context, endpoint string, payload any) (*driven.Response, error) {
	switch {
	case strings.HasPrefix(endpoint, "search/"):
		criteria, err := decodeCriteria(payload)
		if err != nil {
			return nil, err
		}
		return c.search(strings.TrimPrefix(endpoint, "search/"), criteria)
	case strings.HasPrefix(endpoint, "_action/media/"):
		return c.upload(endpoint, payload)
	default:
		return c.insert(endpoint, payload)
	}
}

// Patch merges the payload into an existing record.
func (c *AdminClient) Patch(_ context.Context, endpoint string, payload any) error {
	entity, id, err := splitEndpoint(endpoint)
	if err != nil {
		return err
	}
	fields, err := decodeRecord(payload)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, rec := range c.collections[entity] {
		if rec.GetString("id") == id {
			merged := copyRecord(rec)
			for key, value := range fields {
				merged[key] = value
			}
			c.collections[entity][i] = merged
			return nil
		}
	}
	return &driven.APIError{StatusCode: 404, Message: "record not found", URL: endpoint}
}

// Delete removes a record. Folder deletes cascade to subfolders and the
// media inside them; product deletes cascade to the product's relations.
func (c *AdminClient) Delete(_ context.Context, endpoint string) error {
	entity, id, err := splitEndpoint(endpoint)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.remove(entity, id) {
		return &driven.APIError{StatusCode: 404, Message: "record not found", URL: endpoint}
	}
	switch entity {
	case "media-folder":
		c.cascadeFolder(id)
	case "product":
		c.removeWhere("product-media", "productId", id)
	}
	return nil
}

// GetPaginated lists all records of an entity, following pagination.
func (c *AdminClient) GetPaginated(_ context.Context, endpoint string, criteria *driven.Criteria) ([]domain.Record, error) {
	if criteria == nil {
		criteria = &driven.Criteria{}
	}
	resp, err := c.search(endpoint, criteria)
	if err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// PostPaginated searches an entity, following pagination.
func (c *AdminClient) PostPaginated(ctx context.Context, endpoint string, criteria *driven.Criteria) ([]domain.Record, error) {
	if criteria == nil {
		criteria = &driven.Criteria{}
	}
	return c.GetPaginated(ctx, strings.TrimPrefix(endpoint, "search/"), criteria)
}

// insert adds a record to an entity collection. Duplicate ids are rejected
// the way the remote store rejects them, as a write error.
func (c *AdminClient) insert(entity string, payload any) (*driven.Response, error) {
	rec, err := decodeRecord(payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	rec = c.normalise(rec)
	id := rec.GetString("id")
	for _, existing := range c.collections[entity] {
		if existing.GetString("id") == id {
			return nil, &driven.APIError{
				StatusCode: 400,
				Message:    fmt.Sprintf("duplicate id %q", id),
				URL:        entity,
			}
		}
	}
	c.collections[entity] = append(c.collections[entity], rec)
	return &driven.Response{}, nil
}

// upload handles "_action/media/{id}/upload?extension=..&fileName=..": the
// remote store fetches the binary and fills in the media filename fields.
func (c *AdminClient) upload(endpoint string, payload any) (*driven.Response, error) {
	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, &driven.APIError{StatusCode: 400, Message: "bad endpoint", URL: endpoint}
	}
	parts := strings.Split(parsed.Path, "/")
	if len(parts) != 4 || parts[0] != "_action" || parts[1] != "media" || parts[3] != "upload" {
		return nil, &driven.APIError{StatusCode: 404, Message: "no such action", URL: endpoint}
	}
	id := parts[2]
	body, err := decodeRecord(payload)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i, rec := range c.collections["media"] {
		if rec.GetString("id") == id {
			merged := copyRecord(rec)
			merged["fileName"] = parsed.Query().Get("fileName")
			merged["fileExtension"] = parsed.Query().Get("extension")
			merged["url"] = body.GetString("url")
			c.collections["media"][i] = merged
			return &driven.Response{}, nil
		}
	}
	return nil, &driven.APIError{StatusCode: 404, Message: "media not found", URL: endpoint}
}

// search filters, sorts, pages and trims an entity collection.
func (c *AdminClient) search(entity string, criteria *driven.Criteria) (*driven.Response, error) {
	c.mu.RLock()
	var matches []domain.Record
	for _, rec := range c.collections[entity] {
		ok, err := matchesAll(rec, criteria.Filter)
		if err != nil {
			c.mu.RUnlock()
			return nil, &driven.APIError{StatusCode: 400, Message: err.Error(), URL: "search/" + entity}
		}
		if ok && matchesTerm(rec, criteria.Term) {
			matches = append(matches, copyRecord(rec))
		}
	}
	c.mu.RUnlock()

	sortRecords(matches, criteria.Sort)
	total := len(matches)
	matches = page(matches, criteria.Page, criteria.Limit)
	trim(matches, criteria.Includes[strings.ReplaceAll(entity, "-", "_")])
	return &driven.Response{Data: matches, Total: total}, nil
}

// remove deletes one record by id and reports whether it existed.
func (c *AdminClient) remove(entity, id string) bool {
	records := c.collections[entity]
	for i, rec := range records {
		if rec.GetString("id") == id {
			c.collections[entity] = append(records[:i:i], records[i+1:]...)
			return true
		}
	}
	return false
}

// removeWhere deletes all records whose field equals the value.
func (c *AdminClient) removeWhere(entity, field, value string) {
	var kept []domain.Record
	for _, rec := range c.collections[entity] {
		if rec.GetString(field) != value {
			kept = append(kept, rec)
		}
	}
	c.collections[entity] = kept
}

// cascadeFolder deletes a folder's subtree and every media record inside it.
func (c *AdminClient) cascadeFolder(folderID string) {
	c.removeWhere("media", "mediaFolderId", folderID)
	var children []string
	for _, rec := range c.collections["media-folder"] {
		if rec.GetString("parentId") == folderID {
			children = append(children, rec.GetString("id"))
		}
	}
	for _, child := range children {
		c.remove("media-folder", child)
		c.cascadeFolder(child)
	}
}

// normalise deep-copies a record and assigns a fresh id when none is set,
// mirroring the remote store's server-side id generation.
func (c *AdminClient) normalise(rec domain.Record) domain.Record {
	rec = copyRecord(rec)
	if rec.GetString("id") == "" {
		rec["id"] = strings.ReplaceAll(uuid.NewString(), "-", "")
	}
	return rec
}

// matchesAll applies every filter clause conjunctively.
func matchesAll(rec domain.Record, filters []driven.Filter) (bool, error) {
	for _, f := range filters {
		ok, err := matches(rec, f)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func matches(rec domain.Record, f driven.Filter) (bool, error) {
	value, set := rec[f.Field]
	switch f.Type {
	case "equals":
		if f.Value == nil {
			return !set || value == nil, nil
		}
		if value == nil {
			return false, nil
		}
		return fmt.Sprint(value) == fmt.Sprint(f.Value), nil
	case "contains":
		if value == nil || f.Value == nil {
			return false, nil
		}
		return strings.Contains(fmt.Sprint(value), fmt.Sprint(f.Value)), nil
	default:
		return false, fmt.Errorf("unsupported filter type %q", f.Type)
	}
}

// matchesTerm does a crude substring scan over string fields, standing in
// for the remote store's full-text search.
func matchesTerm(rec domain.Record, term string) bool {
	if term == "" {
		return true
	}
	needle := strings.ToLower(term)
	for _, value := range rec {
		if s, ok := value.(string); ok && strings.Contains(strings.ToLower(s), needle) {
			return true
		}
	}
	return false
}

func sortRecords(records []domain.Record, clauses []driven.Sort) {
	if len(clauses) == 0 {
		return
	}
	sort.SliceStable(records, func(i, j int) bool {
		for _, clause := range clauses {
			a := fmt.Sprint(records[i][clause.Field])
			b := fmt.Sprint(records[j][clause.Field])
			if a == b {
				continue
			}
			if strings.EqualFold(clause.Order, "DESC") {
				return a > b
			}
			return a < b
		}
		return false
	})
}

func page(records []domain.Record, pageNum, limit int) []domain.Record {
	if limit <= 0 {
		return records
	}
	if pageNum <= 0 {
		pageNum = 1
	}
	start := (pageNum - 1) * limit
	if start >= len(records) {
		return nil
	}
	end := start + limit
	if end > len(records) {
		end = len(records)
	}
	return records[start:end]
}

// trim drops all fields not listed in the includes clause. The id field
// always survives, matching the remote store.
func trim(records []domain.Record, fields []string) {
	if len(fields) == 0 {
		return
	}
	keep := map[string]bool{"id": true}
	for _, f := range fields {
		keep[f] = true
	}
	for _, rec := range records {
		for key := range rec {
			if !keep[key] {
				delete(rec, key)
			}
		}
	}
}

func splitEndpoint(endpoint string) (entity, id string, err error) {
	parts := strings.SplitN(endpoint, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", &driven.APIError{StatusCode: 400, Message: "bad endpoint", URL: endpoint}
	}
	return parts[0], parts[1], nil
}

// decodeRecord round-trips a payload through JSON so stored values use the
// same types a real response body would (float64 numbers, nil nulls).
func decodeRecord(payload any) (domain.Record, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding payload: %w", err)
	}
	var rec domain.Record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decoding payload: %w", err)
	}
	return rec, nil
}

func decodeCriteria(payload any) (*driven.Criteria, error) {
	if criteria, ok := payload.(*driven.Criteria); ok {
		return criteria, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding criteria: %w", err)
	}
	criteria := &driven.Criteria{}
	if err := json.Unmarshal(raw, criteria); err != nil {
		return nil, fmt.Errorf("decoding criteria: %w", err)
	}
	return criteria, nil
}

func copyRecord(rec domain.Record) domain.Record {
	out := make(domain.Record, len(rec))
	for key, value := range rec {
		out[key] = value
	}
	return out
}
