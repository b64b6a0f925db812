package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"studyquiz/docs"
	"studyquiz/internal/config"
	"studyquiz/internal/database"
	"studyquiz/internal/database/migration"
	handlers "studyquiz/internal/http/handler"
	"studyquiz/internal/http/middleware"
	"studyquiz/internal/logger"
	"studyquiz/internal/otel"
	"studyquiz/internal/quiz"
	"studyquiz/internal/repository/sqlrepo"
	"studyquiz/internal/sentence"
	"studyquiz/internal/service"
	"studyquiz/internal/storage"
)

// @title Study Quiz API
// @version 1.0
// @description Upload plain-text study notes and generate mock quizzes from them.
// @BasePath /
func main() {
	// .env is auto-loaded by the godotenv import
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.Logger, cfg.Location())
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server_exited", zap.Error(err))
	}
}

func run(cfg *config.AppConfig, log *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, log)
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("tracing_shutdown_failed", zap.Error(err))
		}
	}()

	db, dialect, err := database.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, dialect, log); err != nil {
		return fmt.Errorf("migrate database: %w", err)
	}

	objStore, err := storage.New(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	log.Info("storage_configured", zap.String("backend", cfg.Storage.Backend))

	splitter, err := sentence.NewPunktSplitter()
	if err != nil {
		return fmt.Errorf("load sentence tokenizer: %w", err)
	}
	generator := quiz.NewGenerator(splitter,
		quiz.WithMaxQuestions(cfg.Quiz.MaxQuestions),
		quiz.WithSnippetLength(cfg.Quiz.SnippetLength),
	)

	docSvc := service.NewDocumentService(objStore, sqlrepo.NewDocumentSQL(db))
	quizSvc := service.NewQuizService(docSvc, sqlrepo.NewQuizResultSQL(db), generator)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	app := fiber.New(fiber.Config{
		ErrorHandler:          handlers.ErrorHandler(),
		BodyLimit:             cfg.BodyLimitBytes,
		DisableStartupMessage: true,
	})

	app.Use(middleware.RequestID())
	app.Use(otelfiber.Middleware(otelfiber.WithNext(func(c *fiber.Ctx) bool {
		p := c.Path()
		return p == "/metrics" || p == "/healthz"
	})))
	app.Use(promMiddleware.Handler())
	app.Use(middleware.Logger(log))

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	docs.SwaggerInfo.Host = cfg.AppHost
	docs.SwaggerInfo.Schemes = []string{cfg.AppScheme}
	app.Get("/swagger/*", swagger.HandlerDefault)

	handlers.RegisterRoutes(app, handlers.Services{
		DB:           db,
		Documents:    docSvc,
		Quiz:         quizSvc,
		MaxQuestions: cfg.Quiz.MaxQuestions,
	}, log)

	addr := ":" + cfg.Port
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("server_starting", zap.String("addr", addr), zap.String("db_driver", string(dialect)))
		if err := app.Listen(addr); err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("server_stopping")
		timeout := time.Duration(cfg.ShutdownTimeoutSec) * time.Second
		if err := app.ShutdownWithTimeout(timeout); err != nil && !errors.Is(err, context.Canceled) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	return g.Wait()
}
