// Package dailyspend maintains the per-weekday spending totals the
// prediction service trains against.
package dailyspend

import (
	"context"
	"fmt"
	"time"

	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/timeframe"
)

// Rollup rebuilds and clears a user's daily totals.
type Rollup struct {
	transactions domain.TransactionStore
	totals       domain.DailyTotalStore
}

// NewRollup creates a rollup service over the given stores.
func NewRollup(transactions domain.TransactionStore, totals domain.DailyTotalStore) *Rollup {
	return &Rollup{transactions: transactions, totals: totals}
}

// Refresh recomputes the user's totals for the calendar week containing
// now and replaces whatever was stored. One total is written per weekday,
// zero-amount days included, keyed 0=Sunday through 6=Saturday.
func (r *Rollup) Refresh(ctx context.Context, userID string, now time.Time) error {
	all, err := r.transactions.FindByUser(ctx, userID)
	if err != nil {
		return fmt.Errorf("rollup refresh: %w", err)
	}

	window := timeframe.ThisWeek(now)
	sums := make(map[int]float64, 7)
	for _, tx := range all {
		if !window.Contains(tx.CreatedAt) {
			continue
		}
		day := int(tx.CreatedAt.UTC().Weekday())
		sums[day] += tx.Amount
	}

	stamp := now.UTC()
	totals := make([]*domain.DailyTotal, 0, 7)
	for day := 0; day < 7; day++ {
		totals = append(totals, &domain.DailyTotal{
			UserID:    userID,
			DayOfWeek: day,
			Amount:    sums[day],
			Date:      stamp,
		})
	}

	if err := r.totals.ReplaceForUser(ctx, userID, totals); err != nil {
		return fmt.Errorf("rollup refresh: %w", err)
	}
	return nil
}

// Clear removes every stored total for the user.
func (r *Rollup) Clear(ctx context.Context, userID string) error {
	if err := r.totals.DeleteForUser(ctx, userID); err != nil {
		return fmt.Errorf("rollup clear: %w", err)
	}
	return nil
}
