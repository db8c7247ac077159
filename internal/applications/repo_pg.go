package applications

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, job_title, company, job_url, status, applied_date, notes, location, salary_range, created_at, last_updated`

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PGRepo) Create(ctx context.Context, app Application) error {
	const query = `
INSERT INTO job_applications (
	id, user_id, job_title, company, job_url, status, applied_date, notes, location, salary_range, created_at, last_updated
)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.DB.ExecContext(ctx, query,
		app.ID,
		nullString(app.UserID),
		app.JobTitle,
		app.Company,
		app.JobURL,
		string(app.Status),
		app.AppliedDate,
		nullString(app.Notes),
		nullString(app.Location),
		nullString(app.SalaryRange),
		app.CreatedAt,
		app.LastUpdated,
	)
	return err
}

func (r *PGRepo) List(ctx context.Context, userID string) ([]Application, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if userID == "" {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+selectColumns+` FROM job_applications ORDER BY created_at DESC, id DESC`)
	} else {
		rows, err = r.DB.QueryContext(ctx, `SELECT `+selectColumns+` FROM job_applications WHERE user_id = $1 ORDER BY created_at DESC, id DESC`, userID)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Application{}
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, app)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, id string) (Application, error) {
	row := r.DB.QueryRowContext(ctx, `SELECT `+selectColumns+` FROM job_applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

// UpdateStatus advances last_updated in the same statement so concurrent writers
// still observe a strictly increasing value.
func (r *PGRepo) UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (Application, error) {
	const query = `
UPDATE job_applications
SET status = $2,
	last_updated = GREATEST($3::timestamptz, last_updated + interval '1 millisecond')
WHERE id = $1
RETURNING ` + selectColumns
	row := r.DB.QueryRowContext(ctx, query, id, string(status), at)
	app, err := scanApplication(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Application{}, ErrNotFound
	}
	return app, err
}

func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row rowScanner) (Application, error) {
	var (
		app                             Application
		status                          string
		userID, notes, location, salary sql.NullString
	)
	if err := row.Scan(
		&app.ID,
		&userID,
		&app.JobTitle,
		&app.Company,
		&app.JobURL,
		&status,
		&app.AppliedDate,
		&notes,
		&location,
		&salary,
		&app.CreatedAt,
		&app.LastUpdated,
	); err != nil {
		return Application{}, err
	}
	app.Status = Status(status)
	app.UserID = userID.String
	app.Notes = notes.String
	app.Location = location.String
	app.SalaryRange = salary.String
	app.CreatedAt = app.CreatedAt.UTC()
	app.LastUpdated = app.LastUpdated.UTC()
	return app, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

var _ Repo = (*PGRepo)(nil)
