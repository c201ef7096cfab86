package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"telemed-scheduling/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// decrFloorZeroScript decrements an availability counter but never lets it
// go negative. Runs atomically inside Redis; the client switches to EVALSHA
// after the first call.
var decrFloorZeroScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return 0
	end
	return remaining
`)

const (
	// Redis key prefix for per-doctor per-day open slot counters
	slotCountKeyPrefix = "slots:avail:"

	// Batch size for startup sync; the pipeline is created and executed
	// inside the batch loop to keep memory flat.
	slotSyncBatchSize = 500

	// How long a day-counter mutex must be unused before cleanup
	slotMutexStaleThreshold = 10 * time.Minute
	slotMutexCleanupPeriod  = 10 * time.Minute
)

// SlotCacheService mirrors per-doctor per-day open slot counts into Redis so
// the availability browse path does not hit PostgreSQL on every request.
// The database stays the source of truth: the booked transition happens in
// the store, and every cache write here is an after-the-fact adjustment.
type SlotCacheService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger

	// Per-(doctor,date) mutex so concurrent recounts don't interleave
	dayMu sync.Map // map[string]*dayMutex

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type dayMutex struct {
	mu       sync.Mutex
	lastUsed atomic.Int64
}

type slotCountRow struct {
	DoctorID       uuid.UUID
	Date           time.Time
	AvailableCount int
}

// NewSlotCacheService creates the cache service and starts its background
// mutex cleanup goroutine. Call Stop during graceful shutdown.
func NewSlotCacheService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger) *SlotCacheService {
	svc := &SlotCacheService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexLoop()

	return svc
}

// Stop shuts the service down. Safe to call multiple times.
func (s *SlotCacheService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("SlotCacheService stopped")
	}
}

// SyncOnStartup rebuilds every future day-counter from the database in
// batches. Should run before the server accepts traffic so counters survive
// Redis restarts and disaster recovery.
func (s *SlotCacheService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot counter re-sync from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)
	offset := 0
	totalSynced := 0

	for {
		var rows []slotCountRow

		err := s.db.Model(&entity.TimeSlot{}).
			Select(`
				doctor_id,
				date,
				COUNT(CASE WHEN status = ? THEN 1 END) as available_count
			`, string(entity.TimeSlotStatusAvailable)).
			Where("date >= ?", today).
			Group("doctor_id, date").
			Order("doctor_id, date").
			Limit(slotSyncBatchSize).
			Offset(offset).
			Scan(&rows).Error

		if err != nil {
			s.log.Errorf("Failed to query slot counts at offset %d: %+v", offset, err)
			return fmt.Errorf("query slot counts at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			if offset == 0 {
				s.log.Info("No future slots found for sync")
			}
			break
		}

		// New pipeline per batch so memory does not accumulate
		pipe := s.redisClient.TxPipeline()
		for _, row := range rows {
			key := s.counterKey(row.DoctorID, row.Date)
			pipe.Set(ctx, key, row.AvailableCount, s.counterTTL(row.Date))
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline for batch at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(rows)
		if len(rows) < slotSyncBatchSize {
			break
		}
		offset += slotSyncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot counter re-sync completed: %d day counters in %v", totalSynced, time.Since(startTime))
	return nil
}

// SyncDay recounts one doctor's open slots for one date from the database
// and overwrites the counter. Called after slot create/delete and whenever a
// counter may have drifted.
func (s *SlotCacheService) SyncDay(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	mt := s.dayMutex(doctorID, date)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	today := time.Now().UTC().Truncate(24 * time.Hour)
	if date.Before(today) {
		s.log.Debugf("Skipping counter sync for past date %s", date.Format("2006-01-02"))
		return nil
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&entity.TimeSlot{}).
		Where("doctor_id = ? AND date = ? AND status = ?", doctorID, date, entity.TimeSlotStatusAvailable).
		Count(&count).Error
	if err != nil {
		s.log.Warnf("Failed to count slots for doctor %s on %s: %+v", doctorID, date.Format("2006-01-02"), err)
		return fmt.Errorf("count slots for doctor %s: %w", doctorID, err)
	}

	key := s.counterKey(doctorID, date)
	if err := s.redisClient.Set(ctx, key, count, s.counterTTL(date)).Err(); err != nil {
		s.log.Warnf("Failed to sync counter for doctor %s on %s: %+v", doctorID, date.Format("2006-01-02"), err)
		return fmt.Errorf("sync counter for doctor %s: %w", doctorID, err)
	}

	s.log.Debugf("Synced counter for doctor %s on %s: %d", doctorID, date.Format("2006-01-02"), count)
	return nil
}

// Reserve decrements a day counter after a slot left the available state
// (booked or blocked). Floor at zero; no mutex needed since the Lua script
// is atomic inside Redis.
func (s *SlotCacheService) Reserve(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	key := s.counterKey(doctorID, date)
	if err := decrFloorZeroScript.Run(ctx, s.redisClient, []string{key}).Err(); err != nil {
		s.log.Warnf("Failed to decrement counter %s: %+v", key, err)
		return fmt.Errorf("decrement counter %s: %w", key, err)
	}
	return nil
}

// Restore increments a day counter after a slot returned to available
// (cancellation or unblock).
func (s *SlotCacheService) Restore(ctx context.Context, doctorID uuid.UUID, date time.Time) error {
	key := s.counterKey(doctorID, date)
	if err := s.redisClient.Incr(ctx, key).Err(); err != nil {
		s.log.Warnf("Failed to increment counter %s: %+v", key, err)
		return fmt.Errorf("increment counter %s: %w", key, err)
	}
	return nil
}

// DayCounts returns the cached open-slot count per doctor for one date.
// Serves the browse path; eventual freshness is acceptable there.
func (s *SlotCacheService) DayCounts(ctx context.Context, date time.Time) (map[uuid.UUID]int, error) {
	pattern := fmt.Sprintf("%s*:%s", slotCountKeyPrefix, date.Format("2006-01-02"))
	keys, err := s.redisClient.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("scan counters for %s: %w", date.Format("2006-01-02"), err)
	}
	if len(keys) == 0 {
		return map[uuid.UUID]int{}, nil
	}

	values, err := s.redisClient.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("read counters for %s: %w", date.Format("2006-01-02"), err)
	}

	counts := make(map[uuid.UUID]int, len(keys))
	for i, key := range keys {
		parts := strings.Split(strings.TrimPrefix(key, slotCountKeyPrefix), ":")
		if len(parts) != 2 {
			continue
		}
		doctorID, err := uuid.Parse(parts[0])
		if err != nil {
			continue
		}
		if raw, ok := values[i].(string); ok {
			var count int
			if _, err := fmt.Sscanf(raw, "%d", &count); err == nil {
				counts[doctorID] = count
			}
		}
	}
	return counts, nil
}

func (s *SlotCacheService) counterKey(doctorID uuid.UUID, date time.Time) string {
	return fmt.Sprintf("%s%s:%s", slotCountKeyPrefix, doctorID, date.Format("2006-01-02"))
}

// counterTTL expires a counter 24 hours after its date
func (s *SlotCacheService) counterTTL(date time.Time) time.Duration {
	ttl := time.Until(date.AddDate(0, 0, 1))
	if ttl <= 0 {
		return 1 * time.Minute
	}
	return ttl
}

func (s *SlotCacheService) dayMutex(doctorID uuid.UUID, date time.Time) *dayMutex {
	key := s.counterKey(doctorID, date)
	mt, _ := s.dayMu.LoadOrStore(key, &dayMutex{})
	result := mt.(*dayMutex)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

func (s *SlotCacheService) cleanupMutexLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(slotMutexCleanupPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

func (s *SlotCacheService) cleanupStaleMutexes() {
	cutoff := time.Now().Add(-slotMutexStaleThreshold).Unix()
	var cleaned int

	s.dayMu.Range(func(key, value any) bool {
		mt, ok := value.(*dayMutex)
		if !ok {
			return true
		}
		if mt.mu.TryLock() {
			// lastUsed is re-checked under the lock so a concurrent
			// user cannot be cleaned away
			if mt.lastUsed.Load() < cutoff {
				s.dayMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale day mutexes", cleaned)
	}
}
