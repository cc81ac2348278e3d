package stats

import (
	"context"
	"time"
)

type Repository interface {
	Counts(ctx context.Context, eventsFrom time.Time) (Summary, error)
	Integrity(ctx context.Context) (Integrity, error)
}
