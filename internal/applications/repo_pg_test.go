package applications

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

var pgColumns = []string{"id", "user_id", "job_title", "company", "job_url", "status", "applied_date", "notes", "location", "salary_range", "created_at", "last_updated"}

func newMockRepo(t *testing.T) (*PGRepo, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return &PGRepo{DB: db}, mock
}

func TestPGRepoCreateStoresOptionalFieldsAsNull(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	app := Application{
		ID:          "abc123def",
		JobTitle:    "Engineer",
		Company:     "Acme",
		JobURL:      "https://acme.example/jobs/1",
		Status:      StatusApplied,
		AppliedDate: "2024-05-01",
		Location:    "Remote",
		CreatedAt:   now,
		LastUpdated: now,
	}

	mock.ExpectExec("INSERT INTO job_applications").
		WithArgs(
			app.ID,
			sql.NullString{},
			app.JobTitle,
			app.Company,
			app.JobURL,
			"applied",
			app.AppliedDate,
			sql.NullString{},
			sql.NullString{String: "Remote", Valid: true},
			sql.NullString{},
			now,
			now,
		).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := repo.Create(context.Background(), app); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusReturnsRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	mock.ExpectQuery("UPDATE job_applications").
		WithArgs("app-1", "offered", updated).
		WillReturnRows(sqlmock.NewRows(pgColumns).AddRow(
			"app-1", "user-1", "Engineer", "Acme", "", "offered", "2024-05-01", nil, nil, nil, created, updated,
		))

	app, err := repo.UpdateStatus(context.Background(), "app-1", StatusOffered, updated)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if app.Status != StatusOffered || !app.LastUpdated.Equal(updated) || app.UserID != "user-1" {
		t.Fatalf("unexpected application %+v", app)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoUpdateStatusUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectQuery("UPDATE job_applications").
		WillReturnRows(sqlmock.NewRows(pgColumns))

	_, err := repo.UpdateStatus(context.Background(), "missing", StatusRejected, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoDeleteUnknownID(t *testing.T) {
	repo, mock := newMockRepo(t)
	mock.ExpectExec("DELETE FROM job_applications").
		WithArgs("missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPGRepoListFiltersByUser(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()
	mock.ExpectQuery("SELECT .* FROM job_applications WHERE user_id = \\$1").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(pgColumns).
			AddRow("b", "user-1", "SRE", "Beta", "", "in-progress", "2024-05-02", "call back", nil, "100-120k", now, now).
			AddRow("a", "user-1", "Engineer", "Acme", "", "applied", "2024-05-01", nil, nil, nil, now.Add(-time.Hour), now))

	apps, err := repo.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(apps) != 2 || apps[0].ID != "b" || apps[0].Notes != "call back" || apps[0].SalaryRange != "100-120k" {
		t.Fatalf("unexpected list %+v", apps)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
