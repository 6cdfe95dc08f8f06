package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kredibel/credit-scoring/internal/api/handler"
	"github.com/kredibel/credit-scoring/internal/api/middleware"
	"github.com/kredibel/credit-scoring/internal/core/domain"
	"github.com/kredibel/credit-scoring/internal/core/ports"
)

// Deps carries the wired components the router registers handlers around.
// Everything is constructed in cmd/api and passed in, so the router stays
// free of connection and lifecycle concerns.
type Deps struct {
	Log       zerolog.Logger
	JWTSecret string

	DB    *mongo.Database
	Redis *redis.Client

	Clients      ports.ClientRepository
	Transactions ports.TransactionRepository
	Scoring      ports.ScoringService
	Auth         ports.AuthService

	Lock        handler.ScoreLocker
	Seeder      handler.Reseeder
	Synthesizer handler.TransactionSynthesizer
	Dispatcher  handler.RescoreDispatcher
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("credit"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	clientHandler := handler.NewClientHandler(deps.Clients)
	transactionHandler := handler.NewTransactionHandler(deps.Clients, deps.Transactions, deps.Synthesizer)
	scoringHandler := handler.NewScoringHandler(deps.Scoring, deps.Lock)
	adminHandler := handler.NewAdminHandler(deps.Seeder, deps.Clients, deps.Dispatcher)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.DB, deps.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Versioned API (JWT required) ---
	v1 := e.Group("/v1", middleware.Auth(deps.JWTSecret))

	clients := v1.Group("/clients", middleware.RBAC(domain.RoleAdmin, domain.RoleAnalyst))
	clients.GET("", clientHandler.List)
	clients.GET("/:id", clientHandler.Get)
	clients.GET("/:id/transactions", transactionHandler.List)
	clients.POST("/:id/transactions", transactionHandler.Create)
	clients.POST("/:id/transactions/random", transactionHandler.CreateRandom)
	clients.GET("/:id/score", scoringHandler.Preview)
	clients.POST("/:id/score", scoringHandler.Score)

	admin := v1.Group("/admin", middleware.RBAC(domain.RoleAdmin))
	admin.POST("/seed", adminHandler.Seed)
	admin.POST("/rescore", adminHandler.Rescore)

	return e
}
