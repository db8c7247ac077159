package local

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"interview-prep-api/internal/shared/storage/object"
)

const metaDir = ".meta"

// Store implements object.ObjectStore on the local filesystem.
// Content type and metadata live in a sidecar tree under baseDir/.meta.
type Store struct {
	baseDir string
}

type sidecar struct {
	ContentType string            `json:"contentType"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// New creates a new local object store rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Put writes body to key, replacing any previous content.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string, metadata map[string]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}
	if err := writeFile(dataPath, body); err != nil {
		return fmt.Errorf("write object key=%s: %w", key, err)
	}
	meta, err := json.Marshal(sidecar{ContentType: contentType, Metadata: metadata})
	if err != nil {
		return err
	}
	if err := writeFile(metaPath, meta); err != nil {
		return fmt.Errorf("write metadata key=%s: %w", key, err)
	}
	return nil
}

// Get reads the object stored at key.
func (s *Store) Get(ctx context.Context, key string) (object.Object, error) {
	if err := ctx.Err(); err != nil {
		return object.Object{}, err
	}
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return object.Object{}, err
	}
	body, err := os.ReadFile(dataPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return object.Object{}, object.ErrNotFound
		}
		return object.Object{}, fmt.Errorf("read object key=%s: %w", key, err)
	}

	out := object.Object{Body: body, ContentType: "application/octet-stream"}
	if raw, err := os.ReadFile(metaPath); err == nil {
		var meta sidecar
		if json.Unmarshal(raw, &meta) == nil {
			if meta.ContentType != "" {
				out.ContentType = meta.ContentType
			}
			out.Metadata = meta.Metadata
		}
	}
	return out, nil
}

// List returns keys under prefix in lexical order, like S3.
func (s *Store) List(ctx context.Context, prefix string, maxKeys int) (object.ListResult, error) {
	if err := ctx.Err(); err != nil {
		return object.ListResult{}, err
	}
	maxKeys = object.ClampMaxKeys(maxKeys, object.MaxListKeys)

	var all []object.Info
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return filepath.SkipDir
			}
			return walkErr
		}
		if d.IsDir() {
			if d.Name() == metaDir && filepath.Dir(path) == filepath.Clean(s.baseDir) {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			return err
		}
		key := filepath.ToSlash(rel)
		if !strings.HasPrefix(key, prefix) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		modified := info.ModTime().UTC()
		all = append(all, object.Info{Key: key, Size: info.Size(), LastModified: &modified})
		return nil
	})
	if err != nil {
		return object.ListResult{}, fmt.Errorf("list objects prefix=%s: %w", prefix, err)
	}

	sort.Slice(all, func(i, j int) bool { return all[i].Key < all[j].Key })
	result := object.ListResult{Objects: all}
	if len(all) > maxKeys {
		result.Objects = all[:maxKeys]
		result.Truncated = true
	}
	if result.Objects == nil {
		result.Objects = []object.Info{}
	}
	return result, nil
}

// Delete removes key. Absent keys are not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dataPath, metaPath, err := s.paths(key)
	if err != nil {
		return err
	}
	if err := os.Remove(dataPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete object key=%s: %w", key, err)
	}
	_ = os.Remove(metaPath)
	return nil
}

// DeleteAll removes each key, collecting per-key failures.
func (s *Store) DeleteAll(ctx context.Context, keys []string) (object.BatchDeleteResult, error) {
	if err := ctx.Err(); err != nil {
		return object.BatchDeleteResult{}, err
	}
	var result object.BatchDeleteResult
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			result.Errors = append(result.Errors, object.DeleteError{Key: key, Message: err.Error()})
			continue
		}
		result.DeletedCount++
	}
	return result, nil
}

// URL returns a file:// URL for key.
func (s *Store) URL(key string) string {
	abs, err := filepath.Abs(filepath.Join(s.baseDir, filepath.FromSlash(key)))
	if err != nil {
		return ""
	}
	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(abs)}).String()
}

// PresignGet has nothing to sign locally and returns URL(key).
func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	_ = ttl
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return s.URL(key), nil
}

func (s *Store) paths(key string) (string, string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if key == "" || clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return "", "", object.ErrInvalidKey
	}
	if strings.HasPrefix(filepath.ToSlash(clean), metaDir+"/") {
		return "", "", object.ErrInvalidKey
	}
	return filepath.Join(s.baseDir, clean), filepath.Join(s.baseDir, metaDir, clean+".json"), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

var _ object.ObjectStore = (*Store)(nil)
