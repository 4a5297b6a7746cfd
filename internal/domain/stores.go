package domain

import (
	"context"
)

// UserStore is the persistence contract for users. Implementations live in
// internal/store; the core packages only see this interface.
type UserStore interface {
	// FindByID returns the user with the given ID, or ErrNotFound.
	FindByID(ctx context.Context, id string) (*User, error)

	// FindByEmail looks a user up by email, case-insensitively.
	// Returns ErrNotFound if no user has that address.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// Create persists a new user and returns it with its ID set.
	Create(ctx context.Context, user *User) (*User, error)

	// Save writes back mutations to an existing user.
	Save(ctx context.Context, user *User) error
}

// TransactionStore is the persistence contract for transactions.
type TransactionStore interface {
	// FindByUser returns all transactions owned by userID, in the store's
	// natural order. The result may be empty.
	FindByUser(ctx context.Context, userID string) ([]*Transaction, error)

	// Create persists a new transaction and returns it with its ID set.
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)

	// Update overwrites the mutable fields of an existing transaction.
	// Returns ErrNotFound if no transaction has that ID.
	Update(ctx context.Context, tx *Transaction) error

	// Delete removes a transaction by ID. Returns ErrNotFound if absent.
	Delete(ctx context.Context, id string) error
}

// DailyTotalStore persists per-weekday spending rollups.
type DailyTotalStore interface {
	// ReplaceForUser atomically swaps the user's stored rollups for totals.
	ReplaceForUser(ctx context.Context, userID string, totals []*DailyTotal) error

	// DeleteForUser removes all rollups owned by userID.
	DeleteForUser(ctx context.Context, userID string) error
}
