package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/William2809/spendwise-backend/internal/api/handlers"
	"github.com/William2809/spendwise-backend/internal/auth"
	"github.com/William2809/spendwise-backend/internal/dailyspend"
	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/insights"
	"github.com/William2809/spendwise-backend/internal/jobs"
	"github.com/William2809/spendwise-backend/internal/jobs/inmemory"
	"github.com/William2809/spendwise-backend/internal/llm"
	"github.com/William2809/spendwise-backend/internal/predict"
)

// ---- in-memory stores ----

type memUserStore struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User // by ID
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[string]*domain.User)}
}

func (s *memUserStore) FindByID(ctx context.Context, id string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *memUserStore) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	user.ID = fmt.Sprintf("user-%d", s.seq)
	cp := *user
	s.users[user.ID] = &cp
	return user, nil
}

func (s *memUserStore) Save(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *user
	s.users[user.ID] = &cp
	return nil
}

type memTransactionStore struct {
	mu  sync.Mutex
	seq int
	txs map[string]*domain.Transaction
}

func newMemTransactionStore() *memTransactionStore {
	return &memTransactionStore{txs: make(map[string]*domain.Transaction)}
}

func (s *memTransactionStore) FindByUser(ctx context.Context, userID string) ([]*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Transaction
	for _, tx := range s.txs {
		if tx.UserID == userID {
			cp := *tx
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (s *memTransactionStore) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	tx.ID = fmt.Sprintf("tx-%d", s.seq)
	if tx.CreatedAt.IsZero() {
		tx.CreatedAt = time.Now().UTC()
	}
	cp := *tx
	s.txs[tx.ID] = &cp
	return tx, nil
}

func (s *memTransactionStore) Update(ctx context.Context, tx *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.txs[tx.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = tx.Name
	existing.Item = tx.Item
	existing.Category = tx.Category
	existing.Amount = tx.Amount
	return nil
}

func (s *memTransactionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.txs[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.txs, id)
	return nil
}

type memTotalStore struct {
	mu     sync.Mutex
	totals map[string][]*domain.DailyTotal
}

func newMemTotalStore() *memTotalStore {
	return &memTotalStore{totals: make(map[string][]*domain.DailyTotal)}
}

func (s *memTotalStore) ReplaceForUser(ctx context.Context, userID string, totals []*domain.DailyTotal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totals[userID] = totals
	return nil
}

func (s *memTotalStore) DeleteForUser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.totals, userID)
	return nil
}

// stubProvider fakes the language model with a canned reply.
type stubProvider struct {
	reply string
	err   error
}

func (p *stubProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if p.err != nil {
		return "", p.err
	}
	return p.reply, nil
}

// ---- harness ----

type testEnv struct {
	router       http.Handler
	users        *memUserStore
	transactions *memTransactionStore
	totals       *memTotalStore
	provider     *stubProvider
	queue        *inmemory.Queue
	jobStore     *inmemory.Store
}

func newTestEnv(t *testing.T, predictionURL string) *testEnv {
	t.Helper()

	users := newMemUserStore()
	transactions := newMemTransactionStore()
	totals := newMemTotalStore()
	provider := &stubProvider{}

	classifier := insights.NewClassifier(provider)
	aggregator := insights.NewAggregator(transactions)
	recommender := insights.NewRecommender(aggregator, provider)
	predictor := predict.NewClient(predictionURL, time.Second, time.Millisecond, users, transactions)
	rollup := dailyspend.NewRollup(transactions, totals)

	jobStore := inmemory.NewStore()
	queue := inmemory.NewQueue(10, jobStore)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	if err := queue.Start(ctx, func(ctx context.Context, job *jobs.RollupJob) error {
		return rollup.Refresh(ctx, job.UserID, job.Reference)
	}); err != nil {
		t.Fatalf("queue.Start: %v", err)
	}
	t.Cleanup(func() { queue.Close() })

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	log := zerolog.Nop()

	usersHandler := handlers.NewUsersHandler(users, tokens, log)
	transactionsHandler := handlers.NewTransactionsHandler(
		transactions, classifier, recommender, predictor, queue, jobStore, rollup, log)

	return &testEnv{
		router:       NewRouter(usersHandler, transactionsHandler, tokens, users, log),
		users:        users,
		transactions: transactions,
		totals:       totals,
		provider:     provider,
		queue:        queue,
		jobStore:     jobStore,
	}
}

func (e *testEnv) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

// register creates an account and returns its ID and token.
func (e *testEnv) register(t *testing.T, name, email, password string) (string, string) {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"name": name, "email": email, "password": password,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("register: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp struct {
		ID    string `json:"_id"`
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode register response: %v", err)
	}
	return resp.ID, resp.Token
}

// ---- tests ----

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")
	if token == "" {
		t.Fatal("register returned empty token")
	}

	rec := env.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"name": "Alice2", "email": "alice@example.com", "password": "other",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate register: status = %d, want 409", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/users/", "", map[string]string{
		"email": "alice@example.com", "password": "hunter22",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/users/", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("bad login: status = %d, want 401", rec.Code)
	}
}

func TestGoogleSignIn_Upserts(t *testing.T) {
	env := newTestEnv(t, "http://unused")

	for i := 0; i < 2; i++ {
		rec := env.do(t, http.MethodPost, "/api/users/googlesignin", "", map[string]string{
			"name": "Bob", "email": "bob@example.com", "picture": "https://img",
		})
		if rec.Code != http.StatusOK {
			t.Fatalf("googlesignin: status = %d, body %s", rec.Code, rec.Body.String())
		}
	}
	if len(env.users.users) != 1 {
		t.Errorf("expected 1 user after repeated sign-in, got %d", len(env.users.users))
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	env := newTestEnv(t, "http://unused")

	rec := env.do(t, http.MethodGet, "/api/users/getbudget", "", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/users/getbudget", "not-a-jwt", nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", rec.Code)
	}
}

func TestBudgetRoundTrip(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, "/api/users/setbudget", token, map[string]float64{"weeklyBudget": 250})
	if rec.Code != http.StatusOK {
		t.Fatalf("setbudget: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/users/getbudget", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("getbudget: status = %d", rec.Code)
	}
	var resp map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["weeklyBudget"] != 250 {
		t.Errorf("weeklyBudget = %v, want 250", resp["weeklyBudget"])
	}

	rec = env.do(t, http.MethodPost, "/api/users/setbudget", token, map[string]float64{"weeklyBudget": -5})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative budget: status = %d, want 400", rec.Code)
	}
}

func TestPasswordEndpoints(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, "/api/users/checkpassword", token, nil)
	var status map[string]bool
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !status["status"] {
		t.Error("checkpassword: status = false for password account")
	}

	rec = env.do(t, http.MethodPost, "/api/users/setpassword", token, map[string]string{
		"currentPassword": "wrong", "newPassword": "newpass",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("wrong current password: status = %d, want 401", rec.Code)
	}

	rec = env.do(t, http.MethodPost, "/api/users/setpassword", token, map[string]string{
		"currentPassword": "hunter22", "newPassword": "newpass",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("setpassword: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/users/", "", map[string]string{
		"email": "alice@example.com", "password": "newpass",
	})
	if rec.Code != http.StatusOK {
		t.Errorf("login with new password: status = %d", rec.Code)
	}
}

func TestPredictionStorageRoundTrip(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	want := []float64{10, 20, 30, 40, 50, 60, 70}
	rec := env.do(t, http.MethodPost, "/api/users/saveprediction", token, map[string][]float64{
		"weeklyPrediction": want,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("saveprediction: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodGet, "/api/users/getweeklyprediction", token, nil)
	var resp map[string][]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp["weeklyPrediction"]) != len(want) {
		t.Errorf("weeklyPrediction = %v, want %v", resp["weeklyPrediction"], want)
	}
}

func TestTransactionCRUD(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, "/api/transactions/add", token, map[string]interface{}{
		"name": "Tesco", "item": "Milk", "category": "Groceries", "amount": 2.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var created domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created: %v", err)
	}
	if created.ID == "" {
		t.Fatal("created transaction has no id")
	}

	rec = env.do(t, http.MethodPost, "/api/transactions/add", token, map[string]interface{}{
		"name": "Tesco", "item": "Milk", "category": "NotACategory", "amount": 2.5,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("unknown category: status = %d, want 400", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/transactions/get", token, nil)
	var list []*domain.Transaction
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("list = %d transactions, want 1", len(list))
	}

	rec = env.do(t, http.MethodPut, "/api/transactions/edit", token, map[string]interface{}{
		"id": created.ID, "name": "Tesco", "item": "Bread", "category": "Groceries", "amount": 1.2,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("edit: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPut, "/api/transactions/edit", token, map[string]interface{}{
		"id": "missing", "name": "A", "item": "B", "category": "Groceries", "amount": 1,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("edit missing: status = %d, want 404", rec.Code)
	}

	rec = env.do(t, http.MethodDelete, "/api/transactions/delete", token, map[string]string{"id": created.ID})
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body %s", rec.Code, rec.Body.String())
	}
	rec = env.do(t, http.MethodDelete, "/api/transactions/delete", token, map[string]string{"id": created.ID})
	if rec.Code != http.StatusNotFound {
		t.Errorf("delete again: status = %d, want 404", rec.Code)
	}
}

func TestClassifyEndpoint(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")
	env.provider.reply = `{"name": "Starbucks", "item": "Coffee", "category": "Eating Out", "amount": 7.5}`

	rec := env.do(t, http.MethodPost, "/api/transactions/classify", token, map[string]string{
		"text": "bought coffee at starbucks for 7.50",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("classify: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result domain.ClassificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Category != "Eating Out" || result.Amount != 7.5 {
		t.Errorf("result = %+v", result)
	}

	// nothing persisted
	if len(env.transactions.txs) != 0 {
		t.Errorf("classify persisted %d transactions", len(env.transactions.txs))
	}

	env.provider.err = fmt.Errorf("model offline")
	rec = env.do(t, http.MethodPost, "/api/transactions/classify", token, map[string]string{"text": "coffee"})
	if rec.Code != http.StatusBadGateway {
		t.Errorf("provider down: status = %d, want 502", rec.Code)
	}

	env.provider.err = nil
	rec = env.do(t, http.MethodPost, "/api/transactions/classify", token, map[string]string{"text": ""})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty text: status = %d, want 400", rec.Code)
	}
}

func TestClassifyThenAdd_UnknownAmount(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")
	env.provider.reply = `{"name": "Lawson", "item": "Snacks", "category": "Groceries", "amount": "Unknown"}`

	rec := env.do(t, http.MethodPost, "/api/transactions/classify", token, map[string]string{
		"text": "grabbed some snacks at lawson",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("classify: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var result domain.ClassificationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Amount != 0 {
		t.Fatalf("amount = %v, want 0 for unknown amount", result.Amount)
	}

	// The zero sentinel must persist as-is.
	rec = env.do(t, http.MethodPost, "/api/transactions/add", token, map[string]interface{}{
		"name": result.Name, "item": result.Item, "category": result.Category, "amount": result.Amount,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add with zero amount: status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = env.do(t, http.MethodPost, "/api/transactions/add", token, map[string]interface{}{
		"name": "Lawson", "item": "Snacks", "category": "Groceries", "amount": -1,
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("negative amount: status = %d, want 400", rec.Code)
	}
}

func TestRecommendEndpoint(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")
	env.provider.reply = "Consider cooking at home more often."

	rec := env.do(t, http.MethodGet, "/api/transactions/recommend", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("recommend: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["recommendation"] != env.provider.reply {
		t.Errorf("recommendation = %q", resp["recommendation"])
	}
}

func TestPredictEndpoint(t *testing.T) {
	ml := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"prediction": 42.0}`)
	}))
	defer ml.Close()

	env := newTestEnv(t, ml.URL)
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodGet, "/api/transactions/predict", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("predict: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var resp map[string]float64
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp["prediction"] != 42 {
		t.Errorf("prediction = %v, want 42", resp["prediction"])
	}
}

func TestPredictEndpoint_UpstreamDown(t *testing.T) {
	ml := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer ml.Close()

	env := newTestEnv(t, ml.URL)
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodGet, "/api/transactions/predict", token, nil)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("predict with upstream down: status = %d, want 502", rec.Code)
	}
}

func TestDailyRollupLifecycle(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	userID, token := env.register(t, "Alice", "alice@example.com", "hunter22")

	rec := env.do(t, http.MethodPost, "/api/transactions/add", token, map[string]interface{}{
		"name": "Tesco", "item": "Milk", "category": "Groceries", "amount": 2.5,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add: status = %d", rec.Code)
	}

	rec = env.do(t, http.MethodGet, "/api/transactions/updatedailytransactions", token, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("updatedailytransactions: status = %d, body %s", rec.Code, rec.Body.String())
	}
	var enqueued struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &enqueued); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if enqueued.JobID == "" {
		t.Fatal("no job_id in response")
	}

	deadline := time.Now().Add(2 * time.Second)
	var job jobs.RollupJob
	for {
		rec = env.do(t, http.MethodGet, "/api/jobs/"+enqueued.JobID, token, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("job status: status = %d, body %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
			t.Fatalf("decode job: %v", err)
		}
		if job.Status == jobs.JobStatusCompleted || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if job.Status != jobs.JobStatusCompleted {
		t.Fatalf("job status = %s, want completed", job.Status)
	}

	env.totals.mu.Lock()
	stored := env.totals.totals[userID]
	env.totals.mu.Unlock()
	if len(stored) != 7 {
		t.Fatalf("stored %d totals, want 7", len(stored))
	}

	rec = env.do(t, http.MethodDelete, "/api/transactions/deletedailytransactions", token, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("deletedailytransactions: status = %d", rec.Code)
	}
	env.totals.mu.Lock()
	_, remains := env.totals.totals[userID]
	env.totals.mu.Unlock()
	if remains {
		t.Error("totals still present after delete")
	}
}

func TestJobStatus_OtherUsersJobHidden(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	_, token := env.register(t, "Alice", "alice@example.com", "hunter22")
	_, otherToken := env.register(t, "Bob", "bob@example.com", "hunter23")

	rec := env.do(t, http.MethodGet, "/api/transactions/updatedailytransactions", token, nil)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("enqueue: status = %d", rec.Code)
	}
	var enqueued struct {
		JobID string `json:"job_id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &enqueued); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = env.do(t, http.MethodGet, "/api/jobs/"+enqueued.JobID, otherToken, nil)
	if rec.Code != http.StatusNotFound {
		t.Errorf("foreign job: status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t, "http://unused")
	rec := env.do(t, http.MethodGet, "/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health: status = %d", rec.Code)
	}
}
