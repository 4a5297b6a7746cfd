package firestore

import (
	"context"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/William2809/spendwise-backend/internal/domain"
)

// UserRepository implements domain.UserStore.
type UserRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a repository over the shared client.
func NewUserRepository(client *firestore.Client) *UserRepository {
	return &UserRepository{client: client}
}

// FindByID returns the user with the given document ID.
func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	snap, err := r.client.Collection(usersCollection).Doc(id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByID: %w", err)
	}
	return snapToUser(snap)
}

// FindByEmail looks a user up by email. Addresses are stored lowercase, so
// lookup normalizes the same way and the match is case-insensitive.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	iter := r.client.Collection(usersCollection).
		Where("email", "==", normalizeEmail(email)).
		Limit(1).
		Documents(ctx)
	defer iter.Stop()

	snap, err := iter.Next()
	if err == iterator.Done {
		return nil, fmt.Errorf("user with email %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("FindByEmail: %w", err)
	}
	return snapToUser(snap)
}

// Create persists a new user. The email is normalized to lowercase; the
// caller is expected to have checked for duplicates first.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.Email == "" {
		return nil, fmt.Errorf("create user: email is required: %w", domain.ErrValidation)
	}

	user.ID = uuid.NewString()
	user.Email = normalizeEmail(user.Email)
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := r.client.Collection(usersCollection).Doc(user.ID).Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// Save writes back mutations to an existing user.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		return fmt.Errorf("save user: missing ID: %w", domain.ErrValidation)
	}
	user.Email = normalizeEmail(user.Email)
	user.UpdatedAt = time.Now().UTC()

	_, err := r.client.Collection(usersCollection).Doc(user.ID).Set(ctx, user)
	if err != nil {
		return fmt.Errorf("save user %s: %w", user.ID, err)
	}
	return nil
}

func snapToUser(snap *firestore.DocumentSnapshot) (*domain.User, error) {
	var user domain.User
	if err := snap.DataTo(&user); err != nil {
		return nil, fmt.Errorf("decoding user %s: %w", snap.Ref.ID, err)
	}
	user.ID = snap.Ref.ID
	return &user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
