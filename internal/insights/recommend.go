package insights

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/llm"
)

// recommendMaxTokens gives the model room for a few paragraphs of advice.
const recommendMaxTokens = 400

// Recommender produces savings advice from the last two weeks of spending.
type Recommender struct {
	aggregator *Aggregator
	provider   llm.Provider
}

// NewRecommender creates a recommender over the given aggregator and
// provider.
func NewRecommender(aggregator *Aggregator, provider llm.Provider) *Recommender {
	return &Recommender{aggregator: aggregator, provider: provider}
}

// Recommend gathers the two-week window, flattens it to sentences and asks
// the model for advice, returning the reply verbatim. Aggregation or model
// failure surfaces as an upstream error; no recommendation is synthesized
// locally.
func (r *Recommender) Recommend(ctx context.Context, userID string, now time.Time) (string, error) {
	transactions, err := r.aggregator.TwoWeekTransactions(ctx, userID, now)
	if err != nil {
		return "", domain.NewUpstreamError(domain.ServiceRecommender, err)
	}

	reply, err := r.provider.Complete(ctx, llm.CompletionRequest{
		System:    recommenderPersona,
		User:      SpendingSummary(transactions),
		MaxTokens: recommendMaxTokens,
	})
	if err != nil {
		return "", domain.NewUpstreamError(domain.ServiceRecommender, err)
	}
	return reply, nil
}

// SpendingSummary flattens transactions into the sentence form the
// downstream summarizer was tuned on. Field order and wording are part of
// that contract; do not reword.
func SpendingSummary(transactions []*domain.Transaction) string {
	sentences := make([]string, len(transactions))
	for i, tx := range transactions {
		sentences[i] = spendingSentence(tx)
	}
	return strings.Join(sentences, "\n")
}

func spendingSentence(tx *domain.Transaction) string {
	date := tx.CreatedAt.UTC()
	return fmt.Sprintf("On %d/%d/%d, you spent %s yen on %s at %s. This was categorized as %s.",
		date.Month(), date.Day(), date.Year(),
		formatAmount(tx.Amount), tx.Item, tx.Name, tx.Category)
}

// formatAmount renders 5 as "5", not "5.000000".
func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
