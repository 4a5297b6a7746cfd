package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/William2809/spendwise-backend/internal/api"
	"github.com/William2809/spendwise-backend/internal/api/handlers"
	"github.com/William2809/spendwise-backend/internal/auth"
	"github.com/William2809/spendwise-backend/internal/config"
	"github.com/William2809/spendwise-backend/internal/dailyspend"
	"github.com/William2809/spendwise-backend/internal/insights"
	"github.com/William2809/spendwise-backend/internal/jobs"
	"github.com/William2809/spendwise-backend/internal/jobs/inmemory"
	"github.com/William2809/spendwise-backend/internal/llm"
	"github.com/William2809/spendwise-backend/internal/logger"
	"github.com/William2809/spendwise-backend/internal/predict"
	store "github.com/William2809/spendwise-backend/internal/store/firestore"
)

func main() {
	log := logger.New()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	// Firestore client shared by all repositories
	fsClient, err := store.NewClient(ctx, cfg.ProjectID, cfg.CredentialsFile)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create Firestore client")
	}
	defer fsClient.Close()

	users := store.NewUserRepository(fsClient)
	transactions := store.NewTransactionRepository(fsClient)
	dailyTotals := store.NewDailyTotalRepository(fsClient)

	// Language model provider shared by the classifier and the recommender
	var provider llm.Provider
	provider, err = llm.NewGeminiProvider(ctx, cfg.GeminiModel, cfg.LLMTimeout, cfg.RetryBackoff)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create language model provider")
	}

	classifier := insights.NewClassifier(provider)
	aggregator := insights.NewAggregator(transactions)
	recommender := insights.NewRecommender(aggregator, provider)
	predictor := predict.NewClient(cfg.PredictionURL, cfg.PredictionTimeout, cfg.RetryBackoff, users, transactions)
	rollup := dailyspend.NewRollup(transactions, dailyTotals)

	// Initialize job infrastructure
	jobStore := inmemory.NewStore()
	jobQueue := inmemory.NewQueue(100, jobStore)

	workerCtx, cancelWorker := context.WithCancel(ctx)
	defer cancelWorker()

	jobHandler := func(ctx context.Context, job *jobs.RollupJob) error {
		log.Info().
			Str("job_id", job.JobID).
			Str("user_id", job.UserID).
			Msg("Processing rollup job")

		if err := rollup.Refresh(ctx, job.UserID, job.Reference); err != nil {
			log.Error().
				Err(err).
				Str("job_id", job.JobID).
				Str("user_id", job.UserID).
				Msg("Rollup rebuild failed")
			return err
		}

		log.Info().
			Str("job_id", job.JobID).
			Str("user_id", job.UserID).
			Msg("Rollup rebuild completed")
		return nil
	}

	go func() {
		log.Info().Msg("Starting rollup worker")
		if err := jobQueue.Start(workerCtx, jobHandler); err != nil {
			log.Error().Err(err).Msg("Rollup worker stopped with error")
		}
	}()

	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)

	usersHandler := handlers.NewUsersHandler(users, tokens, log)
	transactionsHandler := handlers.NewTransactionsHandler(
		transactions, classifier, recommender, predictor, jobQueue, jobStore, rollup, log)

	router := api.NewRouter(usersHandler, transactionsHandler, tokens, users, log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Msg("Starting API server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	cancelWorker()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	// Stop job queue and wait for in-flight jobs
	if err := jobQueue.Stop(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Error stopping job queue")
	}
	if err := jobQueue.Close(); err != nil {
		log.Error().Err(err).Msg("Failed to close job queue")
	}

	log.Info().Msg("Server exited")
}
