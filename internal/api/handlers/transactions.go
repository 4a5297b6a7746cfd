package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/William2809/spendwise-backend/internal/api/middleware"
	"github.com/William2809/spendwise-backend/internal/dailyspend"
	"github.com/William2809/spendwise-backend/internal/domain"
	"github.com/William2809/spendwise-backend/internal/insights"
	"github.com/William2809/spendwise-backend/internal/jobs"
	"github.com/William2809/spendwise-backend/internal/predict"
)

// TransactionsHandler handles expense CRUD and the analysis endpoints that
// sit on top of it.
type TransactionsHandler struct {
	transactions domain.TransactionStore
	classifier   *insights.Classifier
	recommender  *insights.Recommender
	predictor    *predict.Client
	publisher    jobs.Publisher
	jobStore     jobs.Store
	rollup       *dailyspend.Rollup
	log          zerolog.Logger
}

// NewTransactionsHandler creates a new transactions handler.
func NewTransactionsHandler(
	transactions domain.TransactionStore,
	classifier *insights.Classifier,
	recommender *insights.Recommender,
	predictor *predict.Client,
	publisher jobs.Publisher,
	jobStore jobs.Store,
	rollup *dailyspend.Rollup,
	log zerolog.Logger,
) *TransactionsHandler {
	return &TransactionsHandler{
		transactions: transactions,
		classifier:   classifier,
		recommender:  recommender,
		predictor:    predictor,
		publisher:    publisher,
		jobStore:     jobStore,
		rollup:       rollup,
		log:          log,
	}
}

// Add handles POST /api/transactions/add
func (h *TransactionsHandler) Add(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		Name      string    `json:"name"`
		Item      string    `json:"item"`
		Category  string    `json:"category"`
		Amount    float64   `json:"amount"`
		CreatedAt time.Time `json:"createdAt"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Item == "" || req.Category == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name, item and category are required")
		return
	}
	// Zero is allowed: the classifier emits 0 when the text names no amount.
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must not be negative")
		return
	}

	category, ok := insights.CanonicalCategory(req.Category)
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	tx, err := h.transactions.Create(r.Context(), &domain.Transaction{
		UserID:    ac.UserID,
		Name:      req.Name,
		Item:      req.Item,
		Category:  category,
		Amount:    req.Amount,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		writeDomainError(w, h.log, err, "Failed to add transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusCreated, tx)
}

// Get handles GET /api/transactions/get
func (h *TransactionsHandler) Get(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	txs, err := h.transactions.FindByUser(r.Context(), ac.UserID)
	if err != nil {
		writeDomainError(w, h.log, err, "Failed to list transactions")
		return
	}
	if txs == nil {
		txs = []*domain.Transaction{}
	}

	middleware.WriteJSON(w, http.StatusOK, txs)
}

// Classify handles POST /api/transactions/classify. The result is returned
// to the caller and never persisted; saving is a separate Add call.
func (h *TransactionsHandler) Classify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.classifier.Classify(r.Context(), req.Text)
	if err != nil {
		writeDomainError(w, h.log, err, "Classification failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, result)
}

// Delete handles DELETE /api/transactions/delete. The transaction ID comes
// in the request body, matching the shape existing clients send.
func (h *TransactionsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Transaction id is required")
		return
	}

	if err := h.transactions.Delete(r.Context(), req.ID); err != nil {
		writeDomainError(w, h.log, err, "Failed to delete transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"id": req.ID})
}

// Edit handles PUT /api/transactions/edit
func (h *TransactionsHandler) Edit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID       string  `json:"id"`
		Name     string  `json:"name"`
		Item     string  `json:"item"`
		Category string  `json:"category"`
		Amount   float64 `json:"amount"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ID == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Transaction id is required")
		return
	}
	if req.Name == "" || req.Item == "" || req.Category == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name, item and category are required")
		return
	}
	if req.Amount < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Amount must not be negative")
		return
	}

	category, ok := insights.CanonicalCategory(req.Category)
	if !ok {
		middleware.WriteError(w, http.StatusBadRequest, "Unknown category")
		return
	}

	tx := &domain.Transaction{
		ID:       req.ID,
		Name:     req.Name,
		Item:     req.Item,
		Category: category,
		Amount:   req.Amount,
	}
	if err := h.transactions.Update(r.Context(), tx); err != nil {
		writeDomainError(w, h.log, err, "Failed to edit transaction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, tx)
}

// Recommend handles GET /api/transactions/recommend
func (h *TransactionsHandler) Recommend(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	text, err := h.recommender.Recommend(r.Context(), ac.UserID, time.Now())
	if err != nil {
		writeDomainError(w, h.log, err, "Recommendation failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]string{"recommendation": text})
}

// Predict handles GET /api/transactions/predict. The prediction service's
// response body is passed through to the client unchanged.
func (h *TransactionsHandler) Predict(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	raw, err := h.predictor.PredictToday(r.Context(), ac.UserID, time.Now())
	if err != nil {
		writeDomainError(w, h.log, err, "Prediction failed")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, raw)
}

// UpdateDailyTransactions handles GET /api/transactions/updatedailytransactions.
// The rebuild runs asynchronously; the response carries the job ID to poll.
func (h *TransactionsHandler) UpdateDailyTransactions(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	job := &jobs.RollupJob{
		UserID:    ac.UserID,
		Reference: time.Now().UTC(),
	}
	if err := h.publisher.PublishRollup(r.Context(), job); err != nil {
		h.log.Error().Err(err).Msg("Failed to enqueue rollup job")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to enqueue rollup job")
		return
	}

	middleware.WriteJSON(w, http.StatusAccepted, map[string]string{
		"job_id": job.JobID,
		"status": string(job.Status),
	})
}

// DeleteDailyTransactions handles DELETE /api/transactions/deletedailytransactions
func (h *TransactionsHandler) DeleteDailyTransactions(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.rollup.Clear(r.Context(), ac.UserID); err != nil {
		writeDomainError(w, h.log, err, "Failed to delete daily totals")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}

// JobStatus handles GET /api/jobs/{id}
func (h *TransactionsHandler) JobStatus(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	jobID := chi.URLParam(r, "id")
	job, err := h.jobStore.GetJob(r.Context(), jobID)
	if err != nil || job.UserID != ac.UserID {
		middleware.WriteError(w, http.StatusNotFound, "Job not found")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, job)
}
