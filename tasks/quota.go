package tasks

import (
	"context"
	"log"
	"time"

	"github.com/beautifulplanet/safetyserv/config"
	"github.com/beautifulplanet/safetyserv/storage"
)

const quotaWarnFraction = 0.9

// QuotaTracker - Accounts upstream data API usage against a daily budget. The
// caller fetches transcripts and comments itself; it reports the units each
// fetch cost and we keep the day's running total in storage so restarts don't
// reset the count.
type QuotaTracker struct {
	db         storage.PersistentStorage
	dailyLimit int
}

func NewQuotaTracker(db storage.PersistentStorage, cnf *config.InstanceConfig) *QuotaTracker {
	return &QuotaTracker{
		db:         db,
		dailyLimit: cnf.QuotaDailyLimit,
	}
}

func quotaDay() string {
	return time.Now().UTC().Format("2006-01-02")
}

// Add - Records units against today's quota and returns the new total. Crossing
// 90% of the daily limit logs a warning; exceeding the limit logs an error but
// never blocks, because the units were already spent upstream.
func (q *QuotaTracker) Add(ctx context.Context, units int) (int, error) {
	total, err := q.db.AddQuotaUsage(ctx, quotaDay(), units)
	if err != nil {
		return 0, err
	}

	if q.dailyLimit > 0 {
		warnAt := int(float64(q.dailyLimit) * quotaWarnFraction)
		if total > q.dailyLimit {
			log.Printf("[quota] Daily limit exceeded: %d/%d units used", total, q.dailyLimit)
		} else if total >= warnAt && (total-units) < warnAt {
			log.Printf("[quota] Approaching daily limit: %d/%d units used", total, q.dailyLimit)
		}
	}
	return total, nil
}

// Remaining - Units left today, floored at zero.
func (q *QuotaTracker) Remaining(ctx context.Context) (int, error) {
	used, err := q.db.GetQuotaUsage(ctx, quotaDay())
	if err != nil {
		return 0, err
	}
	remaining := q.dailyLimit - used
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// LogQuotaUsage - Scheduled task that logs the day's usage so operators can see
// consumption trends without querying the database.
func LogQuotaUsage(db storage.PersistentStorage, cnf *config.InstanceConfig) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	used, err := db.GetQuotaUsage(ctx, quotaDay())
	if err != nil {
		log.Printf("Failed to read quota usage: %v", err)
		return
	}
	log.Printf("[quota] %d/%d units used today", used, cnf.QuotaDailyLimit)
}
