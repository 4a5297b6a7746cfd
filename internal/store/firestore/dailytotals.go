package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"

	"github.com/William2809/spendwise-backend/internal/domain"
)

// DailyTotalRepository implements domain.DailyTotalStore.
type DailyTotalRepository struct {
	client *firestore.Client
}

// NewDailyTotalRepository creates a repository over the shared client.
func NewDailyTotalRepository(client *firestore.Client) *DailyTotalRepository {
	return &DailyTotalRepository{client: client}
}

// ReplaceForUser swaps the user's stored rollups for totals in one
// BulkWriter batch. BulkWriter is not transactional, so a concurrent reader
// may briefly see a partial set; any individual write failure is reported.
func (r *DailyTotalRepository) ReplaceForUser(ctx context.Context, userID string, totals []*domain.DailyTotal) error {
	refs, err := r.refsForUser(ctx, userID)
	if err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs)+len(totals))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			return fmt.Errorf("replace daily totals: delete: %w", err)
		}
		jobs = append(jobs, job)
	}
	for _, total := range totals {
		total.ID = uuid.NewString()
		total.UserID = userID
		ref := r.client.Collection(dailyTotalsCollection).Doc(total.ID)
		job, err := bw.Create(ref, total)
		if err != nil {
			return fmt.Errorf("replace daily totals: create: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	if err := awaitJobs(jobs); err != nil {
		return fmt.Errorf("replace daily totals: %w", err)
	}
	return nil
}

// DeleteForUser removes every rollup owned by userID.
func (r *DailyTotalRepository) DeleteForUser(ctx context.Context, userID string) error {
	refs, err := r.refsForUser(ctx, userID)
	if err != nil {
		return err
	}

	bw := r.client.BulkWriter(ctx)
	jobs := make([]*firestore.BulkWriterJob, 0, len(refs))
	for _, ref := range refs {
		job, err := bw.Delete(ref)
		if err != nil {
			return fmt.Errorf("delete daily totals: %w", err)
		}
		jobs = append(jobs, job)
	}
	bw.End()

	if err := awaitJobs(jobs); err != nil {
		return fmt.Errorf("delete daily totals: %w", err)
	}
	return nil
}

// awaitJobs blocks until every enqueued write resolves. Enqueueing only
// validates the operation; real write failures surface here.
func awaitJobs(jobs []*firestore.BulkWriterJob) error {
	for _, job := range jobs {
		if _, err := job.Results(); err != nil {
			return err
		}
	}
	return nil
}

func (r *DailyTotalRepository) refsForUser(ctx context.Context, userID string) ([]*firestore.DocumentRef, error) {
	iter := r.client.Collection(dailyTotalsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var refs []*firestore.DocumentRef
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("listing daily totals: %w", err)
		}
		refs = append(refs, snap.Ref)
	}
	return refs, nil
}
