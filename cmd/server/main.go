package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/budgez/backend/api/handler"
	"github.com/budgez/backend/internal/config"
	"github.com/budgez/backend/internal/infrastructure/buffer"
	"github.com/budgez/backend/internal/infrastructure/monitor"
	pgInfra "github.com/budgez/backend/internal/infrastructure/postgres"
	redisInfra "github.com/budgez/backend/internal/infrastructure/redis"
	"github.com/budgez/backend/internal/middleware"
	"github.com/budgez/backend/internal/router"
	"github.com/budgez/backend/internal/services"
	"github.com/budgez/backend/internal/services/lifecycle"
	"github.com/budgez/backend/pkg/httpcontext"
	"github.com/budgez/backend/pkg/logger"
	"github.com/budgez/backend/repository/postgres"
	redisRepo "github.com/budgez/backend/repository/redis"
	budgetUC "github.com/budgez/backend/usecase/budget"
	templateUC "github.com/budgez/backend/usecase/template"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "buffer")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	budgetRepo := postgres.NewBudgetRepository(pool)
	templateRepo := postgres.NewTemplateRepository(pool)
	summaryCache := redisRepo.NewSummaryCache(redisClient, cfg.Cache.SummaryTTL)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		budgetRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  cfg.Buffer.BatchSize,
			MaxRetries: cfg.Buffer.MaxRetry,
			Retention:  time.Duration(cfg.Buffer.RetentionHours) * time.Hour,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	budgetUseCase := budgetUC.New(budgetRepo, templateRepo, summaryCache, bufferBridge, zapLogger)
	templateUseCase := templateUC.New(templateRepo, zapLogger)

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Budget:   apiHandler.NewBudgetHandler(budgetUseCase, ctxAdapter, zapLogger),
		Template: apiHandler.NewTemplateHandler(templateUseCase, ctxAdapter, zapLogger),
		Health:   apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
