package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultScorecardURL = "https://api.data.gov/ed/collegescorecard/v1/schools"

// Scorecard searches the College Scorecard institution directory.
type Scorecard struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

// NewScorecard constructs a Scorecard client.
func NewScorecard(apiKey string) *Scorecard {
	return &Scorecard{
		APIKey:     strings.TrimSpace(apiKey),
		BaseURL:    defaultScorecardURL,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

type scorecardResponse struct {
	Results []struct {
		ID      json.Number `json:"id"`
		Name    string      `json:"school.name"`
		City    string      `json:"school.city"`
		State   string      `json:"school.state"`
		Website string      `json:"school.school_url"`
	} `json:"results"`
}

// Search returns institutions whose name matches q.
func (s *Scorecard) Search(ctx context.Context, q string) ([]Institution, error) {
	if s.APIKey == "" {
		return nil, errNoAPIKey
	}
	params := url.Values{}
	params.Set("api_key", s.APIKey)
	params.Set("school.name", q)
	params.Set("fields", "id,school.name,school.city,school.state,school.school_url")
	params.Set("per_page", strconv.Itoa(maxResults))

	var body scorecardResponse
	if err := getJSON(ctx, s.HTTPClient, s.BaseURL+"?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("college scorecard: %w", err)
	}
	out := make([]Institution, 0, len(body.Results))
	for _, r := range body.Results {
		if strings.TrimSpace(r.Name) == "" {
			continue
		}
		out = append(out, Institution{
			ID:      r.ID.String(),
			Name:    r.Name,
			City:    r.City,
			State:   r.State,
			Website: r.Website,
		})
	}
	return out, nil
}

// syntheticInstitutions derives plausible institution names from q.
func syntheticInstitutions(q string) []Institution {
	q = strings.TrimSpace(q)
	names := []string{q}
	lower := strings.ToLower(q)
	if !strings.Contains(lower, "university") && !strings.Contains(lower, "college") {
		names = append(names, q+" University", "University of "+q, q+" College")
	}
	out := make([]Institution, 0, len(names))
	for _, n := range names {
		out = append(out, Institution{Name: n, Fallback: true})
	}
	return out
}
