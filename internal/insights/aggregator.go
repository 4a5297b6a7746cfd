package insights

import (
	"context"
	"fmt"
	"time"

	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/timeframe"
)

// Aggregator scopes a user's transaction history to the analysis window.
type Aggregator struct {
	transactions domain.TransactionStore
}

// NewAggregator creates an aggregator reading from the given store.
func NewAggregator(transactions domain.TransactionStore) *Aggregator {
	return &Aggregator{transactions: transactions}
}

// TwoWeekTransactions returns the user's transactions whose creation time
// falls in the current or previous calendar week relative to now. Ordering
// follows the store's natural order; the result may be empty. Read-only.
func (a *Aggregator) TwoWeekTransactions(ctx context.Context, userID string, now time.Time) ([]*domain.Transaction, error) {
	all, err := a.transactions.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("two week transactions: %w", err)
	}

	thisWeek := timeframe.ThisWeek(now)
	lastWeek := timeframe.LastWeek(now)

	filtered := make([]*domain.Transaction, 0, len(all))
	for _, tx := range all {
		if thisWeek.Contains(tx.CreatedAt) || lastWeek.Contains(tx.CreatedAt) {
			filtered = append(filtered, tx)
		}
	}
	return filtered, nil
}
