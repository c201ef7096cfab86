package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SlotCache mirrors per-doctor per-day open slot counts for the browse path.
// Implemented by service.SlotCacheService. Every call is best-effort from
// the usecases' point of view: cache failures are logged, never returned.
type SlotCache interface {
	SyncDay(ctx context.Context, doctorID uuid.UUID, date time.Time) error
	Reserve(ctx context.Context, doctorID uuid.UUID, date time.Time) error
	Restore(ctx context.Context, doctorID uuid.UUID, date time.Time) error
	DayCounts(ctx context.Context, date time.Time) (map[uuid.UUID]int, error)
}
