// Package objecttest provides an in-memory object.ObjectStore for tests.
package objecttest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"interview-prep-api/internal/shared/storage/object"
)

type entry struct {
	obj      object.Object
	modified *time.Time
}

// Store is a concurrency-safe in-memory object store with injectable failures.
type Store struct {
	mu      sync.Mutex
	objects map[string]entry

	PutErr    error
	ListErr   error
	DeleteErr error
	// GetErr fails Get for the listed keys only.
	GetErr map[string]error
	// DeleteAllFail reports these keys as per-object failures.
	DeleteAllFail map[string]string
	PresignErr    error

	Puts int
}

// New returns an empty store.
func New() *Store {
	return &Store{objects: make(map[string]entry)}
}

// Seed stores body under key with an explicit modification time (nil means unknown).
func (s *Store) Seed(key string, body []byte, contentType string, modified *time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = entry{obj: object.Object{Body: body, ContentType: contentType}, modified: modified}
}

// Keys returns every stored key in order.
func (s *Store) Keys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	if s.PutErr != nil {
		return s.PutErr
	}
	if key == "" {
		return object.ErrInvalidKey
	}
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Puts++
	s.objects[key] = entry{
		obj:      object.Object{Body: append([]byte(nil), body...), ContentType: contentType, Metadata: metadata},
		modified: &now,
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (object.Object, error) {
	if err := s.GetErr[key]; err != nil {
		return object.Object{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.objects[key]
	if !ok {
		return object.Object{}, object.ErrNotFound
	}
	return e.obj, nil
}

func (s *Store) List(ctx context.Context, prefix string, maxKeys int) (object.ListResult, error) {
	if s.ListErr != nil {
		return object.ListResult{}, s.ListErr
	}
	maxKeys = object.ClampMaxKeys(maxKeys, object.MaxListKeys)
	s.mu.Lock()
	defer s.mu.Unlock()
	var infos []object.Info
	for k, e := range s.objects {
		if strings.HasPrefix(k, prefix) {
			infos = append(infos, object.Info{Key: k, Size: int64(len(e.obj.Body)), LastModified: e.modified})
		}
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	res := object.ListResult{Objects: infos}
	if len(infos) > maxKeys {
		res.Objects = infos[:maxKeys]
		res.Truncated = true
	}
	return res, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if s.DeleteErr != nil {
		return s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *Store) DeleteAll(ctx context.Context, keys []string) (object.BatchDeleteResult, error) {
	if s.DeleteErr != nil {
		return object.BatchDeleteResult{}, s.DeleteErr
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var res object.BatchDeleteResult
	for _, k := range keys {
		if msg, fail := s.DeleteAllFail[k]; fail {
			res.Errors = append(res.Errors, object.DeleteError{Key: k, Code: "AccessDenied", Message: msg})
			continue
		}
		delete(s.objects, k)
		res.DeletedCount++
	}
	return res, nil
}

func (s *Store) URL(key string) string {
	return "mem://bucket/" + key
}

func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if s.PresignErr != nil {
		return "", s.PresignErr
	}
	return s.URL(key) + "?signed=1", nil
}

var _ object.ObjectStore = (*Store)(nil)
