package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/William2809/spendwise-backend/internal/domain"
)

// Tests in this file run against the Firestore emulator and skip when
// FIRESTORE_EMULATOR_HOST is not set.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "spendwise-test")
	if err != nil {
		t.Fatalf("firestore.NewClient: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return client
}

func countTotals(t *testing.T, client *firestore.Client, userID string) int {
	t.Helper()
	iter := client.Collection(dailyTotalsCollection).
		Where("userId", "==", userID).
		Documents(context.Background())
	defer iter.Stop()

	count := 0
	for {
		_, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			t.Fatalf("iterating totals: %v", err)
		}
		count++
	}
	return count
}

func weekOfTotals(userID string, amounts []float64) []*domain.DailyTotal {
	totals := make([]*domain.DailyTotal, len(amounts))
	for day, amount := range amounts {
		totals[day] = &domain.DailyTotal{
			UserID:    userID,
			DayOfWeek: day,
			Amount:    amount,
			Date:      time.Now().UTC(),
		}
	}
	return totals
}

func TestDailyTotalRepository_ReplaceAndDelete(t *testing.T) {
	client := newEmulatorClient(t)
	repo := NewDailyTotalRepository(client)
	ctx := context.Background()
	userID := uuid.NewString()

	if err := repo.ReplaceForUser(ctx, userID, weekOfTotals(userID, []float64{1, 2, 3, 4, 5, 6, 7})); err != nil {
		t.Fatalf("ReplaceForUser: %v", err)
	}
	if got := countTotals(t, client, userID); got != 7 {
		t.Fatalf("stored %d totals, want 7", got)
	}

	// A second replace must not accumulate documents.
	if err := repo.ReplaceForUser(ctx, userID, weekOfTotals(userID, []float64{7, 6, 5, 4, 3, 2, 1})); err != nil {
		t.Fatalf("second ReplaceForUser: %v", err)
	}
	if got := countTotals(t, client, userID); got != 7 {
		t.Fatalf("after second replace: %d totals, want 7", got)
	}

	if err := repo.DeleteForUser(ctx, userID); err != nil {
		t.Fatalf("DeleteForUser: %v", err)
	}
	if got := countTotals(t, client, userID); got != 0 {
		t.Fatalf("after delete: %d totals, want 0", got)
	}
}
