package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/William2809/spendwise-backend/internal/domain"
)

// TransactionRepository implements domain.TransactionStore.
type TransactionRepository struct {
	client *firestore.Client
}

// NewTransactionRepository creates a repository over the shared client.
func NewTransactionRepository(client *firestore.Client) *TransactionRepository {
	return &TransactionRepository{client: client}
}

// FindByUser returns every transaction owned by userID.
func (r *TransactionRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	iter := r.client.Collection(transactionsCollection).
		Where("userId", "==", userID).
		Documents(ctx)
	defer iter.Stop()

	var out []*domain.Transaction
	for {
		snap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("FindByUser: %w", err)
		}

		var tx domain.Transaction
		if err := snap.DataTo(&tx); err != nil {
			return nil, fmt.Errorf("decoding transaction %s: %w", snap.Ref.ID, err)
		}
		tx.ID = snap.Ref.ID
		out = append(out, &tx)
	}
	return out, nil
}

// Create persists a new transaction. UserID must already be set; this is
// the invariant that every transaction has an owner from birth.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	if tx.UserID == "" {
		return nil, fmt.Errorf("create transaction: missing userId: %w", domain.ErrValidation)
	}

	tx.ID = uuid.NewString()
	now := time.Now().UTC()
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = now
	}
	tx.UpdatedAt = now

	if _, err := r.client.Collection(transactionsCollection).Doc(tx.ID).Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("create transaction: %w", err)
	}
	return tx, nil
}

// Update overwrites the mutable fields of an existing transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	if tx.ID == "" {
		return fmt.Errorf("update transaction: missing ID: %w", domain.ErrValidation)
	}

	ref := r.client.Collection(transactionsCollection).Doc(tx.ID)
	_, err := ref.Update(ctx, []firestore.Update{
		{Path: "name", Value: tx.Name},
		{Path: "item", Value: tx.Item},
		{Path: "category", Value: tx.Category},
		{Path: "amount", Value: tx.Amount},
		{Path: "updatedAt", Value: time.Now().UTC()},
	})
	if status.Code(err) == codes.NotFound {
		return fmt.Errorf("transaction %s: %w", tx.ID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", tx.ID, err)
	}
	return nil
}

// Delete removes a transaction by ID.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	ref := r.client.Collection(transactionsCollection).Doc(id)

	// Firestore deletes are idempotent; probe first so a missing document
	// surfaces as ErrNotFound rather than silent success.
	if _, err := ref.Get(ctx); status.Code(err) == codes.NotFound {
		return fmt.Errorf("transaction %s: %w", id, domain.ErrNotFound)
	} else if err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}

	if _, err := ref.Delete(ctx); err != nil {
		return fmt.Errorf("delete transaction %s: %w", id, err)
	}
	return nil
}
