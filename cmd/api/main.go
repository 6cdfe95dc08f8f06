package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/kredibel/credit-scoring/docs"
	"github.com/kredibel/credit-scoring/internal/api"
	"github.com/kredibel/credit-scoring/internal/core/service"
	"github.com/kredibel/credit-scoring/internal/infrastructure/config"
	mongodb "github.com/kredibel/credit-scoring/internal/infrastructure/db/mongo"
	redisdb "github.com/kredibel/credit-scoring/internal/infrastructure/db/redis"
	"github.com/kredibel/credit-scoring/internal/infrastructure/queue"
	"github.com/kredibel/credit-scoring/internal/infrastructure/seed"
	"github.com/kredibel/credit-scoring/pkg/logger"
)

// @title           Credit Scoring API
// @version         1.0
// @description     Transaction-based credit scoring engine with tiered risk classification.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
		Service: "credit-scoring",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Mongo ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connect")
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Warn().Err(err).Msg("mongo disconnect")
		}
	}()

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connect")
	}
	defer func() { _ = rdb.Close() }()

	// --- Repositories ---
	clientRepo := mongodb.NewClientRepository(db)
	txnRepo := mongodb.NewTransactionRepository(db)
	authRepo := mongodb.NewAuthRepository(db)

	if err := clientRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("client indexes")
	}
	if err := txnRepo.EnsureIndexes(ctx); err != nil {
		log.Warn().Err(err).Msg("transaction indexes")
	}

	// --- Services ---
	scoringSvc := service.NewScoringService(clientRepo, txnRepo, log)
	authSvc := service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour)

	seeder := seed.NewSeeder(db, txnRepo, time.Now().UnixNano(), log)
	lock := redisdb.NewScoreLock(rdb)

	dispatcher := queue.NewDispatcher(cfg.RescoreWorkers, scoringSvc, lock, log)
	dispatcher.Start(ctx)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		Log:          log,
		JWTSecret:    cfg.JWTSecret,
		DB:           db,
		Redis:        rdb,
		Clients:      clientRepo,
		Transactions: txnRepo,
		Scoring:      scoringSvc,
		Auth:         authSvc,
		Lock:         lock,
		Seeder:       seeder,
		Synthesizer:  seeder,
		Dispatcher:   dispatcher,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown")
	}
}
