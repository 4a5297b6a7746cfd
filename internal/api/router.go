// Package api wires the HTTP surface: routing, middleware and handlers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"github.com/William2809/spendwise-backend/internal/api/handlers"
	"github.com/William2809/spendwise-backend/internal/api/middleware"
	"github.com/William2809/spendwise-backend/internal/auth"
	"github.com/William2809/spendwise-backend/internal/domain"
)

// NewRouter assembles the full route table. Sign-in endpoints are public;
// everything else requires a Bearer token.
func NewRouter(
	users *handlers.UsersHandler,
	transactions *handlers.TransactionsHandler,
	tokens *auth.TokenIssuer,
	userStore domain.UserStore,
	log zerolog.Logger,
) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(middleware.CORS)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		middleware.WriteJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Post("/users/", users.Login)
		r.Post("/users/register", users.Register)
		r.Post("/users/googlesignin", users.GoogleSignIn)

		// Protected routes
		r.With(middleware.Auth(tokens, userStore)).Group(func(r chi.Router) {
			r.Post("/users/checkpassword", users.CheckPassword)
			r.Post("/users/setpassword", users.SetPassword)
			r.Post("/users/setbudget", users.SetBudget)
			r.Get("/users/getbudget", users.GetBudget)
			r.Post("/users/saveprediction", users.SavePrediction)
			r.Get("/users/getweeklyprediction", users.GetWeeklyPrediction)

			r.Post("/transactions/add", transactions.Add)
			r.Get("/transactions/get", transactions.Get)
			r.Post("/transactions/classify", transactions.Classify)
			r.Delete("/transactions/delete", transactions.Delete)
			r.Put("/transactions/edit", transactions.Edit)
			r.Get("/transactions/recommend", transactions.Recommend)
			r.Get("/transactions/predict", transactions.Predict)
			r.Get("/transactions/updatedailytransactions", transactions.UpdateDailyTransactions)
			r.Delete("/transactions/deletedailytransactions", transactions.DeleteDailyTransactions)

			r.Get("/jobs/{id}", transactions.JobStatus)
		})
	})

	return r
}
