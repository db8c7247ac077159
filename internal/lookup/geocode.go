package lookup

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"googlemaps.github.io/maps"
)

// GeocoderOptions configures the Google Geocoding client. BaseURL overrides
// the Maps host and is only set in tests.
type GeocoderOptions struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// Geocoder resolves places through the Google Maps Geocoding API.
type Geocoder struct {
	client *maps.Client
	apiKey string
}

// NewGeocoder constructs a Geocoder. An empty key yields a Geocoder whose
// searches always fall back.
func NewGeocoder(opts GeocoderOptions) (*Geocoder, error) {
	key := strings.TrimSpace(opts.APIKey)
	if key == "" {
		return &Geocoder{}, nil
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	clientOpts := []maps.ClientOption{maps.WithAPIKey(key), maps.WithHTTPClient(httpClient)}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, maps.WithBaseURL(strings.TrimRight(opts.BaseURL, "/")))
	}
	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("maps client: %w", err)
	}
	return &Geocoder{client: client, apiKey: key}, nil
}

// Search geocodes q. ZERO_RESULTS yields an empty slice without error.
func (g *Geocoder) Search(ctx context.Context, q string) ([]Location, error) {
	if g == nil || g.client == nil {
		return nil, errNoAPIKey
	}
	results, err := g.client.Geocode(ctx, &maps.GeocodingRequest{Address: q})
	if err != nil {
		if strings.Contains(err.Error(), "ZERO_RESULTS") {
			return []Location{}, nil
		}
		err = redactError(err)
		if msg := err.Error(); strings.Contains(msg, g.apiKey) {
			return nil, fmt.Errorf("geocode: %s", strings.ReplaceAll(msg, g.apiKey, "[redacted]"))
		}
		return nil, fmt.Errorf("geocode: %w", err)
	}

	out := make([]Location, 0, len(results))
	for _, r := range results {
		out = append(out, toLocation(r))
		if len(out) == maxResults {
			break
		}
	}
	return out, nil
}

func toLocation(r maps.GeocodingResult) Location {
	lat, lng := r.Geometry.Location.Lat, r.Geometry.Location.Lng
	loc := Location{
		FormattedAddress: r.FormattedAddress,
		PlaceID:          r.PlaceID,
		Lat:              &lat,
		Lng:              &lng,
	}
	for _, c := range r.AddressComponents {
		switch {
		case hasType(c.Types, "locality") || (loc.City == "" && hasType(c.Types, "postal_town")):
			loc.City = c.LongName
		case hasType(c.Types, "administrative_area_level_1"):
			loc.State = c.ShortName
		case hasType(c.Types, "country"):
			loc.Country = c.LongName
		}
	}
	return loc
}

// syntheticLocation builds a single record from the comma-separated parts of q.
func syntheticLocation(q string) Location {
	parts := make([]string, 0, 3)
	for _, p := range strings.Split(q, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	loc := Location{FormattedAddress: strings.Join(parts, ", "), Fallback: true}
	if len(parts) > 0 {
		loc.City = parts[0]
	}
	if len(parts) > 1 {
		loc.State = parts[1]
	}
	if len(parts) > 2 {
		loc.Country = parts[len(parts)-1]
	}
	return loc
}

func hasType(types []string, want string) bool {
	for _, t := range types {
		if t == want {
			return true
		}
	}
	return false
}
