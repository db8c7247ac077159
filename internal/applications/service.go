package applications

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Service implements the job application tracker.
type Service struct {
	Repo Repo
	Now  func() time.Time
}

// CreateInput is the payload accepted when recording a new application.
type CreateInput struct {
	UserID      string `json:"userId"`
	JobTitle    string `json:"jobTitle"`
	Company     string `json:"company"`
	JobURL      string `json:"jobUrl"`
	Status      Status `json:"status"`
	AppliedDate string `json:"appliedDate"`
	Notes       string `json:"notes"`
	Location    string `json:"location"`
	SalaryRange string `json:"salaryRange"`
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Create validates in and stores a new application with a generated id.
func (s *Service) Create(ctx context.Context, in CreateInput) (Application, error) {
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Company = strings.TrimSpace(in.Company)
	in.JobURL = strings.TrimSpace(in.JobURL)
	if in.JobTitle == "" {
		return Application{}, fmt.Errorf("%w: jobTitle is required", ErrInvalidInput)
	}
	if in.Company == "" {
		return Application{}, fmt.Errorf("%w: company is required", ErrInvalidInput)
	}
	if in.JobURL != "" && !isWebURL(in.JobURL) {
		return Application{}, fmt.Errorf("%w: jobUrl must be an http(s) URL", ErrInvalidInput)
	}
	if in.Status == "" {
		in.Status = StatusApplied
	}
	if !in.Status.Valid() {
		return Application{}, ErrInvalidStatus
	}

	now := s.now()
	if in.AppliedDate == "" {
		in.AppliedDate = now.Format(time.DateOnly)
	} else if _, err := time.Parse(time.DateOnly, in.AppliedDate); err != nil {
		return Application{}, fmt.Errorf("%w: appliedDate must be YYYY-MM-DD", ErrInvalidInput)
	}

	app := Application{
		ID:          NewID(now),
		UserID:      strings.TrimSpace(in.UserID),
		JobTitle:    in.JobTitle,
		Company:     in.Company,
		JobURL:      in.JobURL,
		Status:      in.Status,
		AppliedDate: in.AppliedDate,
		LastUpdated: now,
		Notes:       in.Notes,
		Location:    in.Location,
		SalaryRange: in.SalaryRange,
		CreatedAt:   now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// List returns applications newest first, scoped to userID when set.
func (s *Service) List(ctx context.Context, userID string) ([]Application, error) {
	return s.Repo.List(ctx, strings.TrimSpace(userID))
}

func (s *Service) Get(ctx context.Context, id string) (Application, error) {
	return s.Repo.Get(ctx, id)
}

// UpdateStatus sets any of the four statuses regardless of the current one.
func (s *Service) UpdateStatus(ctx context.Context, id string, status Status) (Application, error) {
	if !status.Valid() {
		return Application{}, ErrInvalidStatus
	}
	return s.Repo.UpdateStatus(ctx, id, status, s.now())
}

func (s *Service) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}

func isWebURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
