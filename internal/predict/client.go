// Package predict forwards same-weekday spending history to the external
// prediction service and relays its answer untouched.
package predict

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/William2809/spendwise-backend/internal/domain"
)

// predictionRequest is the wire payload the ML service expects. Day uses
// the JavaScript getDay convention (0 = Sunday).
type predictionRequest struct {
	Transactions []*domain.Transaction `json:"transactions"`
	Day          int                   `json:"day"`
	Budget       float64               `json:"budget"`
}

// Client talks to the prediction service.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	backoff      time.Duration
	users        domain.UserStore
	transactions domain.TransactionStore
}

// NewClient creates a prediction client. baseURL is the service root; the
// endpoint path is fixed. The timeout bounds each attempt and a failed
// attempt is retried once after backoff.
func NewClient(baseURL string, timeout, backoff time.Duration, users domain.UserStore, transactions domain.TransactionStore) *Client {
	return &Client{
		baseURL:      strings.TrimSuffix(baseURL, "/"),
		httpClient:   &http.Client{Timeout: timeout},
		backoff:      backoff,
		users:        users,
		transactions: transactions,
	}
}

// PredictToday filters the user's history to transactions created on the
// same weekday as now, attaches the weekly budget, and forwards everything
// to the prediction service. The response body is passed through unmodified.
//
// A user with no matching transactions still triggers the request, with an
// empty transaction list. Transport failures and non-2xx responses surface
// as upstream errors; no local fallback prediction is computed.
func (c *Client) PredictToday(ctx context.Context, userID string, now time.Time) (json.RawMessage, error) {
	all, err := c.transactions.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("predict today: %w", err)
	}
	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("predict today: %w", err)
	}

	day := int(now.UTC().Weekday())
	todays := make([]*domain.Transaction, 0, len(all))
	for _, tx := range all {
		if int(tx.CreatedAt.UTC().Weekday()) == day {
			todays = append(todays, tx)
		}
	}

	body, err := json.Marshal(predictionRequest{
		Transactions: todays,
		Day:          day,
		Budget:       user.WeeklyBudget,
	})
	if err != nil {
		return nil, fmt.Errorf("predict today: marshal request: %w", err)
	}

	payload, err := c.post(ctx, c.baseURL+"/api/predict", body)
	if err != nil {
		return nil, domain.NewUpstreamError(domain.ServicePrediction, err)
	}
	return payload, nil
}

// statusError is a reply the service did send, just not a 2xx. It is never
// retried; only transport failures are.
type statusError struct {
	code int
	body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.code, e.body)
}

// post sends the request, retrying once after backoff on transport failure.
func (c *Client) post(ctx context.Context, url string, body []byte) (json.RawMessage, error) {
	payload, err := c.postOnce(ctx, url, body)
	if err == nil || ctx.Err() != nil {
		return payload, err
	}
	var se *statusError
	if errors.As(err, &se) {
		return nil, err
	}

	select {
	case <-time.After(c.backoff):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	return c.postOnce(ctx, url, body)
}

func (c *Client) postOnce(ctx context.Context, url string, body []byte) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &statusError{code: resp.StatusCode, body: string(respBody)}
	}
	return json.RawMessage(respBody), nil
}
