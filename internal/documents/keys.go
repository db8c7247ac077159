package documents

import (
	"path"
	"strconv"
	"strings"
	"time"

	"interview-prep-api/internal/shared/util"
)

// Kind is the artifact type encoded by a key prefix.
type Kind string

const (
	KindOriginal Kind = "original"
	KindTailored Kind = "tailored"
	KindParsed   Kind = "parsed"
)

// KindAll selects every prefix in listing order.
const KindAll = "all"

type prefixEntry struct {
	kind   Kind
	prefix string
}

// Listing order for type=all. On duplicate keys the earlier prefix wins.
var prefixTable = []prefixEntry{
	{kind: KindOriginal, prefix: "original-resumes/"},
	{kind: KindTailored, prefix: "tailored-resumes/"},
	{kind: KindParsed, prefix: "parsed-resumes/"},
}

// Prefix returns the key prefix for kind.
func Prefix(kind Kind) (string, bool) {
	for _, e := range prefixTable {
		if e.kind == kind {
			return e.prefix, true
		}
	}
	return "", false
}

// Prefixes resolves a listing type to the prefixes to scan, in order.
func Prefixes(listType string) ([]string, bool) {
	listType = strings.ToLower(strings.TrimSpace(listType))
	if listType == "" || listType == KindAll {
		out := make([]string, 0, len(prefixTable))
		for _, e := range prefixTable {
			out = append(out, e.prefix)
		}
		return out, true
	}
	p, ok := Prefix(Kind(listType))
	if !ok {
		return nil, false
	}
	return []string{p}, true
}

// KindOf reports the artifact type of key, or "" when the prefix is unknown.
func KindOf(key string) Kind {
	for _, e := range prefixTable {
		if strings.HasPrefix(key, e.prefix) {
			return e.kind
		}
	}
	return ""
}

// NewKey mints <prefix><unixMillis>-<slug><ext>. Keys are write-once.
func NewKey(kind Kind, now time.Time, name, ext string) string {
	prefix, ok := Prefix(kind)
	if !ok {
		prefix = string(kind) + "/"
	}
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return prefix + strconv.FormatInt(now.UnixMilli(), 10) + "-" + util.Slugify(name, "resume") + strings.ToLower(ext)
}

// KeyTime extracts the creation time minted into key.
func KeyTime(key string) (time.Time, bool) {
	base := path.Base(key)
	idx := strings.IndexByte(base, '-')
	if idx <= 0 {
		return time.Time{}, false
	}
	millis, err := strconv.ParseInt(base[:idx], 10, 64)
	if err != nil || millis <= 0 {
		return time.Time{}, false
	}
	return time.UnixMilli(millis).UTC(), true
}

// FileName is the last path segment of key.
func FileName(key string) string {
	return path.Base(key)
}
