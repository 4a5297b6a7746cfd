package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/William2809/spendwise-backend/internal/api/middleware"
	"github.com/William2809/spendwise-backend/internal/auth"
	"github.com/William2809/spendwise-backend/internal/domain"
)

// UsersHandler handles account, budget and prediction-storage endpoints.
type UsersHandler struct {
	users  domain.UserStore
	tokens *auth.TokenIssuer
	log    zerolog.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(users domain.UserStore, tokens *auth.TokenIssuer, log zerolog.Logger) *UsersHandler {
	return &UsersHandler{users: users, tokens: tokens, log: log}
}

// authResponse is the profile-plus-token payload returned by the three
// sign-in endpoints. Field names match what existing clients parse.
type authResponse struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Picture string `json:"picture,omitempty"`
	Token   string `json:"token"`
}

func (h *UsersHandler) respondWithToken(w http.ResponseWriter, status int, user *domain.User) {
	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to sign token")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to sign token")
		return
	}

	middleware.WriteJSON(w, status, authResponse{
		ID:      user.ID,
		Name:    user.Name,
		Email:   user.Email,
		Picture: user.Picture,
		Token:   token,
	})
}

// Login handles POST /api/users/
func (h *UsersHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			middleware.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		writeDomainError(w, h.log, err, "Failed to look up user")
		return
	}
	if !user.HasPassword() || !auth.CheckPassword(user.PasswordHash, req.Password) {
		middleware.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// Register handles POST /api/users/register
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Name, email and password are required")
		return
	}

	if _, err := h.users.FindByEmail(r.Context(), req.Email); err == nil {
		middleware.WriteError(w, http.StatusConflict, "User already exists")
		return
	} else if !errors.Is(err, domain.ErrNotFound) {
		writeDomainError(w, h.log, err, "Failed to look up user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	user, err := h.users.Create(r.Context(), &domain.User{
		Name:         req.Name,
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
	})
	if err != nil {
		writeDomainError(w, h.log, err, "Failed to create user")
		return
	}

	h.respondWithToken(w, http.StatusCreated, user)
}

// GoogleSignIn handles POST /api/users/googlesignin. It upserts the account
// by email; accounts created here have no password until one is set.
func (h *UsersHandler) GoogleSignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		middleware.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	user, err := h.users.FindByEmail(r.Context(), req.Email)
	if errors.Is(err, domain.ErrNotFound) {
		user, err = h.users.Create(r.Context(), &domain.User{
			Name:    req.Name,
			Email:   strings.ToLower(req.Email),
			Picture: req.Picture,
		})
	}
	if err != nil {
		writeDomainError(w, h.log, err, "Failed to sign in")
		return
	}

	h.respondWithToken(w, http.StatusOK, user)
}

// CheckPassword handles POST /api/users/checkpassword
func (h *UsersHandler) CheckPassword(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"status": ac.User.HasPassword()})
}

// SetPassword handles POST /api/users/setpassword. Accounts that already
// have a password must present the current one.
func (h *UsersHandler) SetPassword(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword == "" {
		middleware.WriteError(w, http.StatusBadRequest, "New password is required")
		return
	}
	if ac.User.HasPassword() && !auth.CheckPassword(ac.User.PasswordHash, req.CurrentPassword) {
		middleware.WriteError(w, http.StatusUnauthorized, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		h.log.Error().Err(err).Msg("Failed to hash password")
		middleware.WriteError(w, http.StatusInternalServerError, "Failed to set password")
		return
	}

	ac.User.PasswordHash = hash
	ac.User.UpdatedAt = time.Now().UTC()
	if err := h.users.Save(r.Context(), ac.User); err != nil {
		writeDomainError(w, h.log, err, "Failed to set password")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]bool{"status": true})
}

// SetBudget handles POST /api/users/setbudget
func (h *UsersHandler) SetBudget(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		WeeklyBudget float64 `json:"weeklyBudget"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.WeeklyBudget < 0 {
		middleware.WriteError(w, http.StatusBadRequest, "Budget must not be negative")
		return
	}

	ac.User.WeeklyBudget = req.WeeklyBudget
	ac.User.UpdatedAt = time.Now().UTC()
	if err := h.users.Save(r.Context(), ac.User); err != nil {
		writeDomainError(w, h.log, err, "Failed to set budget")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]float64{"weeklyBudget": req.WeeklyBudget})
}

// GetBudget handles GET /api/users/getbudget
func (h *UsersHandler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string]float64{"weeklyBudget": ac.User.WeeklyBudget})
}

// SavePrediction handles POST /api/users/saveprediction
func (h *UsersHandler) SavePrediction(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req struct {
		WeeklyPrediction []float64 `json:"weeklyPrediction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.WeeklyPrediction == nil {
		middleware.WriteError(w, http.StatusBadRequest, "weeklyPrediction is required")
		return
	}

	ac.User.WeeklyPrediction = req.WeeklyPrediction
	ac.User.UpdatedAt = time.Now().UTC()
	if err := h.users.Save(r.Context(), ac.User); err != nil {
		writeDomainError(w, h.log, err, "Failed to save prediction")
		return
	}

	middleware.WriteJSON(w, http.StatusOK, map[string][]float64{"weeklyPrediction": req.WeeklyPrediction})
}

// GetWeeklyPrediction handles GET /api/users/getweeklyprediction
func (h *UsersHandler) GetWeeklyPrediction(w http.ResponseWriter, r *http.Request) {
	ac, ok := middleware.AuthFrom(r.Context())
	if !ok {
		middleware.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	prediction := ac.User.WeeklyPrediction
	if prediction == nil {
		prediction = []float64{}
	}
	middleware.WriteJSON(w, http.StatusOK, map[string][]float64{"weeklyPrediction": prediction})
}
