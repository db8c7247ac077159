package applications

import (
	"context"
	"time"
)

// Repo persists applications. UpdateStatus must advance LastUpdated strictly.
type Repo interface {
	Create(ctx context.Context, app Application) error
	List(ctx context.Context, userID string) ([]Application, error)
	Get(ctx context.Context, id string) (Application, error)
	UpdateStatus(ctx context.Context, id string, status Status, at time.Time) (Application, error)
	Delete(ctx context.Context, id string) error
}
