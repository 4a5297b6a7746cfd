package domain

import (
	"time"
)

// Transaction is one recorded expense. Field names mirror the wire contract
// consumed by the web client and the prediction service, so they must not
// change without coordinating both.
type Transaction struct {
	ID        string    `json:"_id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	Name      string    `json:"name" firestore:"name"`
	Item      string    `json:"item" firestore:"item"`
	Category  string    `json:"category" firestore:"category"`
	Amount    float64   `json:"amount" firestore:"amount"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// User owns zero or more transactions. PasswordHash is empty for accounts
// created through Google sign-in that never set a password.
type User struct {
	ID               string    `json:"_id" firestore:"-"`
	Name             string    `json:"name" firestore:"name"`
	Email            string    `json:"email" firestore:"email"`
	Picture          string    `json:"picture,omitempty" firestore:"picture"`
	PasswordHash     string    `json:"-" firestore:"password"`
	WeeklyBudget     float64   `json:"weeklyBudget" firestore:"weeklyBudget"`
	WeeklyPrediction []float64 `json:"weeklyPrediction,omitempty" firestore:"weeklyPrediction"`
	CreatedAt        time.Time `json:"createdAt" firestore:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt" firestore:"updatedAt"`
}

// HasPassword reports whether the user can log in with credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// ClassificationResult is the structured record extracted from a free-text
// expense description. It is ephemeral: the caller decides whether to persist
// it as a Transaction.
type ClassificationResult struct {
	Name     string  `json:"name"`
	Item     string  `json:"item"`
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// DailyTotal is the per-weekday spending rollup consumed by the prediction
// service. DayOfWeek uses the JavaScript getDay convention (0 = Sunday).
type DailyTotal struct {
	ID        string    `json:"_id" firestore:"-"`
	UserID    string    `json:"userId" firestore:"userId"`
	DayOfWeek int       `json:"numberOfDay" firestore:"numberOfDay"`
	Amount    float64   `json:"amount" firestore:"amount"`
	Date      time.Time `json:"date" firestore:"date"`
}

// AuthContext carries the identity established by the auth middleware.
// It is constructed exactly once per request, after the token is verified and
// the user is loaded, and passed explicitly to downstream components.
type AuthContext struct {
	UserID string
	User   *User
}
