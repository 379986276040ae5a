package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/ayushkanha/VoxHire/internal/api/handlers"
	"github.com/ayushkanha/VoxHire/internal/cache/redis"
	"github.com/ayushkanha/VoxHire/internal/evaluator"
	"github.com/ayushkanha/VoxHire/internal/interview"
	"github.com/ayushkanha/VoxHire/internal/llm"
	"github.com/ayushkanha/VoxHire/internal/metrics"
	"github.com/ayushkanha/VoxHire/internal/middleware/ratelimit"
	"github.com/ayushkanha/VoxHire/internal/middleware/security"
	"github.com/ayushkanha/VoxHire/internal/middleware/validation"
	"github.com/ayushkanha/VoxHire/internal/store"
	csvstore "github.com/ayushkanha/VoxHire/internal/store/csv"
	memorystore "github.com/ayushkanha/VoxHire/internal/store/memory"
	sqlitestore "github.com/ayushkanha/VoxHire/internal/store/sqlite"
	"github.com/ayushkanha/VoxHire/pkg/config"
	appLogger "github.com/ayushkanha/VoxHire/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting VoxHire interview API server")

	metrics.Init()

	transcriptStore, err := newStore(cfg)
	if err != nil {
		appLogger.Fatal("Failed to create transcript store", zap.Error(err))
	}
	defer transcriptStore.Close()

	var dedupe interview.DedupeIndex
	var redisClient *redis.Client
	if cfg.Redis.Enabled {
		redisClient, err = redis.NewClient(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			appLogger.Fatal("Failed to create Redis client", zap.Error(err))
		}
		defer redisClient.Close()
		dedupe = redisClient
	}

	chatModel := llm.NewClient(llm.Config{
		APIKey:      cfg.LLM.APIKey,
		BaseURL:     cfg.LLM.BaseURL,
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		TimeoutSec:  cfg.LLM.TimeoutSec,
	})

	evalModel := chatModel
	if cfg.LLM.EvalModel != "" && cfg.LLM.EvalModel != cfg.LLM.Model {
		evalModel = llm.NewClient(llm.Config{
			APIKey:      cfg.LLM.APIKey,
			BaseURL:     cfg.LLM.BaseURL,
			Model:       cfg.LLM.EvalModel,
			Temperature: 0.2,
			MaxTokens:   cfg.LLM.MaxTokens,
			TimeoutSec:  cfg.LLM.TimeoutSec,
		})
	}

	registry := interview.NewRegistry()
	recorder := interview.NewRecorder(transcriptStore, dedupe)
	engine := interview.NewEngine(chatModel, registry, recorder)
	sessionEvaluator := evaluator.NewEvaluator(transcriptStore, evalModel, cfg.Store.PersistEvaluations)

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	rateLimiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: 60,
		Logger:               appLogger.GetLogger(),
	})
	defer rateLimiter.Stop()

	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	app.Use(security.HeadersMiddleware(security.HeadersConfig{}))
	app.Use(rateLimiter.Middleware())
	app.Use(validation.Middleware(validation.Config{}))

	interviewHandler := handlers.NewInterviewHandler(engine, recorder, sessionEvaluator)
	wsHandler := handlers.NewWebSocketHandler(engine)

	api := app.Group("/api")

	api.Get("/start", interviewHandler.StartSession)
	api.Post("/chat", interviewHandler.Chat)
	api.Post("/save", interviewHandler.SaveQA)
	api.Get("/log/:session_id", interviewHandler.EvaluateSession)

	api.Use("/chat/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	api.Get("/chat/ws", websocket.New(wsHandler.HandleConnection))

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Unix(),
		})
	})

	api.Get("/ready", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "ready",
		})
	})

	app.Get("/metrics", metrics.MetricsHandler())

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}

func newStore(cfg *config.Config) (store.Store, error) {
	switch cfg.Store.Backend {
	case "sqlite":
		return sqlitestore.NewStore(cfg.Store.SQLitePath)
	case "memory":
		return memorystore.NewStore(), nil
	default:
		return csvstore.NewStore(cfg.Store.CSVPath)
	}
}
