package applications

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCreateDefaultsStatusAndAppliedDate(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{Repo: NewMemoryRepo(), Now: fixedClock(now)}

	app, err := svc.Create(context.Background(), CreateInput{JobTitle: " Engineer ", Company: "Acme"})
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, app.Status)
	assert.Equal(t, "2024-05-01", app.AppliedDate)
	assert.Equal(t, "Engineer", app.JobTitle)
	assert.True(t, app.CreatedAt.Equal(now))
	assert.True(t, strings.HasSuffix(app.ID, "lvnrm2o0"), "id %q should end with base-36 millis", app.ID)
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	cases := []CreateInput{
		{Company: "Acme"},
		{JobTitle: "Engineer"},
		{JobTitle: "Engineer", Company: "Acme", JobURL: "ftp://acme.example"},
		{JobTitle: "Engineer", Company: "Acme", AppliedDate: "May 1"},
	}
	for _, in := range cases {
		_, err := svc.Create(context.Background(), in)
		assert.ErrorIs(t, err, ErrInvalidInput, "input %+v", in)
	}

	_, err := svc.Create(context.Background(), CreateInput{JobTitle: "Engineer", Company: "Acme", Status: "hired"})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestListNewestFirstAndScopedByUser(t *testing.T) {
	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc := &Service{Repo: NewMemoryRepo(), Now: func() time.Time { return clock }}
	ctx := context.Background()

	first, err := svc.Create(ctx, CreateInput{UserID: "u1", JobTitle: "A", Company: "A"})
	require.NoError(t, err)
	clock = base.Add(time.Minute)
	second, err := svc.Create(ctx, CreateInput{UserID: "u1", JobTitle: "B", Company: "B"})
	require.NoError(t, err)
	clock = base.Add(2 * time.Minute)
	_, err = svc.Create(ctx, CreateInput{UserID: "u2", JobTitle: "C", Company: "C"})
	require.NoError(t, err)

	apps, err := svc.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, apps, 2)
	assert.Equal(t, second.ID, apps[0].ID)
	assert.Equal(t, first.ID, apps[1].ID)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateStatusAnyTransitionAdvancesLastUpdated(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc := &Service{Repo: NewMemoryRepo(), Now: fixedClock(now)}
	ctx := context.Background()

	app, err := svc.Create(ctx, CreateInput{JobTitle: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	offered, err := svc.UpdateStatus(ctx, app.ID, StatusOffered)
	require.NoError(t, err)
	assert.Equal(t, StatusOffered, offered.Status)
	assert.True(t, offered.LastUpdated.After(app.LastUpdated))

	back, err := svc.UpdateStatus(ctx, app.ID, StatusApplied)
	require.NoError(t, err)
	assert.Equal(t, StatusApplied, back.Status)
	assert.True(t, back.LastUpdated.After(offered.LastUpdated))
}

func TestUpdateStatusErrors(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	_, err := svc.UpdateStatus(context.Background(), "missing", StatusOffered)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.UpdateStatus(context.Background(), "missing", "hired")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteUnknownID(t *testing.T) {
	svc := &Service{Repo: NewMemoryRepo()}
	err := svc.Delete(context.Background(), "missing")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestMemoryRepoConcurrentUpdatesStayMonotonic(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	repo := NewMemoryRepo()
	svc := &Service{Repo: repo, Now: fixedClock(now)}
	ctx := context.Background()
	app, err := svc.Create(ctx, CreateInput{JobTitle: "Engineer", Company: "Acme"})
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = svc.UpdateStatus(ctx, app.ID, StatusInProgress)
		}()
	}
	wg.Wait()

	got, err := repo.Get(ctx, app.ID)
	require.NoError(t, err)
	assert.True(t, got.LastUpdated.Equal(now.Add(20*time.Millisecond)))
}
