package lookup

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"interview-prep-api/internal/shared/telemetry"
)

// LocationSearcher resolves free-text places.
type LocationSearcher interface {
	Search(ctx context.Context, q string) ([]Location, error)
}

// InstitutionSearcher finds schools by name.
type InstitutionSearcher interface {
	Search(ctx context.Context, q string) ([]Institution, error)
}

// Service answers lookups, substituting synthetic records when an upstream
// is unavailable.
type Service struct {
	Locations    LocationSearcher
	Institutions InstitutionSearcher
}

// SearchLocations returns geocoded places for q. The bool reports whether the
// result is synthetic.
func (s *Service) SearchLocations(ctx context.Context, q string) ([]Location, bool, error) {
	q, err := cleanQuery(q)
	if err != nil {
		return nil, false, err
	}
	if s.Locations != nil {
		locs, err := s.Locations.Search(ctx, q)
		if err == nil {
			return locs, false, nil
		}
		logFallback("locations", err)
	}
	return []Location{syntheticLocation(q)}, true, nil
}

// SearchInstitutions returns institutions matching q. The bool reports whether
// the result is synthetic.
func (s *Service) SearchInstitutions(ctx context.Context, q string) ([]Institution, bool, error) {
	q, err := cleanQuery(q)
	if err != nil {
		return nil, false, err
	}
	if s.Institutions != nil {
		found, err := s.Institutions.Search(ctx, q)
		if err == nil {
			return found, false, nil
		}
		logFallback("institutions", err)
	}
	return syntheticInstitutions(q), true, nil
}

func cleanQuery(q string) (string, error) {
	q = strings.TrimSpace(q)
	n := utf8.RuneCountInString(q)
	if n < MinQueryLen || n > MaxQueryLen {
		return "", fmt.Errorf("%w: q must be between %d and %d characters", ErrInvalidInput, MinQueryLen, MaxQueryLen)
	}
	return q, nil
}

func logFallback(kind string, err error) {
	fields := map[string]any{"lookup": kind, "error": err.Error()}
	if errors.Is(err, errNoAPIKey) {
		telemetry.Info("lookup.fallback", fields)
		return
	}
	telemetry.Warn("lookup.fallback", fields)
}
