package documents

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"interview-prep-api/internal/shared/metrics"
	"interview-prep-api/internal/shared/storage/object"
	"interview-prep-api/internal/shared/telemetry"
)

const (
	// DefaultListLimit is the per-prefix page size when the caller gives none.
	DefaultListLimit = 100

	defaultDownloadPath = "/api/documents/download"
	enrichConcurrency   = 8
)

// Service lists, reads and deletes stored artifacts. A nil Store means object storage
// is not configured.
type Service struct {
	Store        object.ObjectStore
	PresignTTL   time.Duration
	DownloadPath string
}

// ListOptions selects what List scans. Limit applies per prefix, not globally.
type ListOptions struct {
	Prefixes []string
	Limit    int
	// Enrich reports whether an object's body should be read for metadata.
	Enrich func(key string) bool
}

// Configured reports whether an object store is available.
func (s *Service) Configured() bool {
	return s != nil && s.Store != nil
}

// ListByType lists one artifact type, or all of them in prefix order.
// Parsed JSON artifacts are enriched with metadata from their body.
func (s *Service) ListByType(ctx context.Context, listType string, limit int) (Listing, error) {
	prefixes, ok := Prefixes(listType)
	if !ok {
		return Listing{}, fmt.Errorf("%w: type must be original, tailored, parsed or all", ErrInvalidInput)
	}
	return s.List(ctx, ListOptions{
		Prefixes: prefixes,
		Limit:    limit,
		Enrich: func(key string) bool {
			return KindOf(key) == KindParsed && strings.HasSuffix(key, ".json")
		},
	})
}

// List scans each prefix in order, drops keys already seen under an earlier prefix,
// enriches selected items and sorts the result newest first.
func (s *Service) List(ctx context.Context, opts ListOptions) (Listing, error) {
	if !s.Configured() {
		return Listing{}, ErrNotConfigured
	}
	limit := object.ClampMaxKeys(opts.Limit, DefaultListLimit)

	var out Listing
	seen := make(map[string]struct{})
	for _, prefix := range opts.Prefixes {
		page, err := s.Store.List(ctx, prefix, limit)
		if err != nil {
			return Listing{}, fmt.Errorf("list prefix %s: %w", prefix, err)
		}
		out.HasMore = out.HasMore || page.Truncated
		for _, info := range page.Objects {
			if _, dup := seen[info.Key]; dup {
				continue
			}
			seen[info.Key] = struct{}{}
			out.Items = append(out.Items, s.toItem(ctx, info))
		}
	}

	if opts.Enrich != nil {
		s.enrich(ctx, out.Items, opts.Enrich)
	}
	SortNewestFirst(out.Items)
	if out.Items == nil {
		out.Items = []Item{}
	}
	return out, nil
}

// SortNewestFirst orders items by LastModified descending. Items without a time sort last.
// toItem has already substituted the key's minted time where the store reported none.
func SortNewestFirst(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return unixMillis(items[i].LastModified) > unixMillis(items[j].LastModified)
	})
}

func unixMillis(t *time.Time) int64 {
	if t == nil {
		return 0
	}
	return t.UnixMilli()
}

func (s *Service) toItem(ctx context.Context, info object.Info) Item {
	item := Item{
		Key:          info.Key,
		Size:         info.Size,
		LastModified: info.LastModified,
		Type:         KindOf(info.Key),
		FileName:     FileName(info.Key),
		DownloadURL:  s.downloadURL(info.Key),
	}
	if item.LastModified == nil {
		if ts, ok := KeyTime(info.Key); ok {
			item.LastModified = &ts
		}
	}
	if s.PresignTTL > 0 {
		signed, err := s.Store.PresignGet(ctx, info.Key, s.PresignTTL)
		if err != nil {
			telemetry.Warn("documents.presign_failed", map[string]any{"object_key": info.Key, "error": err.Error()})
		} else {
			item.SignedDownloadURL = signed
		}
	}
	return item
}

func (s *Service) downloadURL(key string) string {
	base := s.DownloadPath
	if base == "" {
		base = defaultDownloadPath
	}
	return base + "?key=" + url.QueryEscape(key)
}

// enrich reads metadata for the selected items. Failures leave Metadata nil.
func (s *Service) enrich(ctx context.Context, items []Item, want func(string) bool) {
	var g errgroup.Group
	g.SetLimit(enrichConcurrency)
	for i := range items {
		if !want(items[i].Key) {
			continue
		}
		item := &items[i]
		g.Go(func() error {
			meta, err := s.readMetadata(ctx, item.Key)
			if err != nil {
				metrics.IncEnrichmentFailed()
				telemetry.Warn("documents.enrich_failed", map[string]any{"object_key": item.Key, "error": err.Error()})
				return nil
			}
			item.Metadata = meta
			return nil
		})
	}
	_ = g.Wait()
}

func (s *Service) readMetadata(ctx context.Context, key string) (*ItemMetadata, error) {
	obj, err := s.Store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	var meta ItemMetadata
	if err := json.Unmarshal(obj.Body, &meta); err != nil {
		return nil, fmt.Errorf("parse metadata: %w", err)
	}
	return &meta, nil
}

// Get returns the stored object at key.
func (s *Service) Get(ctx context.Context, key string) (object.Object, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return object.Object{}, fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	if !s.Configured() {
		return object.Object{}, ErrNotConfigured
	}
	obj, err := s.Store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, object.ErrNotFound) {
			return object.Object{}, ErrNotFound
		}
		if errors.Is(err, object.ErrInvalidKey) {
			return object.Object{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return object.Object{}, err
	}
	return obj, nil
}

// Delete removes key. Deleting an absent key succeeds.
func (s *Service) Delete(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidInput)
	}
	if !s.Configured() {
		return ErrNotConfigured
	}
	if err := s.Store.Delete(ctx, key); err != nil {
		if errors.Is(err, object.ErrInvalidKey) {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return err
	}
	return nil
}

// ClearAll deletes every object on the first listing page with one batch call.
// Per-object failures are returned in the result, not as an error.
func (s *Service) ClearAll(ctx context.Context) (ClearResult, error) {
	if !s.Configured() {
		return ClearResult{}, ErrNotConfigured
	}
	page, err := s.Store.List(ctx, "", object.MaxListKeys)
	if err != nil {
		return ClearResult{}, fmt.Errorf("list objects: %w", err)
	}
	if len(page.Objects) == 0 {
		return ClearResult{}, nil
	}

	keys := make([]string, 0, len(page.Objects))
	for _, info := range page.Objects {
		keys = append(keys, info.Key)
	}
	res, err := s.Store.DeleteAll(ctx, keys)
	if err != nil {
		return ClearResult{}, fmt.Errorf("delete objects: %w", err)
	}

	out := ClearResult{DeletedCount: res.DeletedCount}
	for _, e := range res.Errors {
		out.Errors = append(out.Errors, DeleteFailure{Key: e.Key, Code: e.Code, Message: e.Message})
	}
	if len(out.Errors) > 0 {
		telemetry.Warn("documents.clear_all_partial", map[string]any{
			"deleted": out.DeletedCount,
			"failed":  len(out.Errors),
		})
	}
	return out, nil
}
