// Package firestore implements the persistence interfaces from
// internal/domain on top of Cloud Firestore. One shared client backs every
// repository to avoid a connection per operation.
package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
)

const (
	usersCollection        = "users"
	transactionsCollection = "transactions"
	dailyTotalsCollection  = "dailyTransactions"
)

// NewClient opens a Firestore client for the given project. When
// credentialsFile is empty, application-default credentials are used.
func NewClient(ctx context.Context, projectID, credentialsFile string) (*firestore.Client, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("firestore: creating client: %w", err)
	}
	return client, nil
}
