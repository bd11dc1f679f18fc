package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/akashent3/redflags-sub001/internal/application/usecase"
	"github.com/akashent3/redflags-sub001/internal/domain/port"
	"github.com/akashent3/redflags-sub001/internal/domain/service"
	"github.com/akashent3/redflags-sub001/internal/infrastructure/caselib"
	"github.com/akashent3/redflags-sub001/internal/infrastructure/classifier"
	"github.com/akashent3/redflags-sub001/internal/infrastructure/config"
	"github.com/akashent3/redflags-sub001/internal/infrastructure/messaging"
	infrapostgres "github.com/akashent3/redflags-sub001/internal/infrastructure/postgres"
	grpcpresentation "github.com/akashent3/redflags-sub001/internal/presentation/grpc"
	"github.com/akashent3/redflags-sub001/internal/presentation/rest"
	"github.com/akashent3/redflags-sub001/pkg/auth"
	"github.com/akashent3/redflags-sub001/pkg/observability"
	pkgpostgres "github.com/akashent3/redflags-sub001/pkg/postgres"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  "json",
		Service: "redflagd",
	})
	logger.Info("starting redflagd", slog.String("environment", cfg.Environment))

	shutdownTracer, err := observability.InitTracer(ctx, observability.TracingConfig{
		ServiceName: "redflagd",
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.Environment != "production",
	})
	if err != nil {
		logger.Warn("tracing disabled", slog.String("error", err.Error()))
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracer(shutdownCtx); err != nil {
				logger.Warn("tracer shutdown failed", slog.String("error", err.Error()))
			}
		}()
	}

	meterProvider, metricsHandler, err := observability.InitMetrics()
	if err != nil {
		logger.Error("metrics init failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	analysisMetrics, err := observability.NewAnalysisMetrics(meterProvider)
	if err != nil {
		logger.Error("metrics instruments failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := pkgpostgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsURL); err != nil {
		logger.Error("migrations failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	pool, err := pkgpostgres.NewPool(ctx, cfg.DatabaseURL, 10)
	if err != nil {
		logger.Error("database connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	catalog, err := service.DefaultCatalog()
	if err != nil {
		logger.Error("check catalog invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	scoring, err := config.LoadScoring(cfg.ScoringConfigPath)
	if err != nil {
		logger.Error("scoring configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	library, err := caselib.Load(cfg.CaseLibraryPath, catalog)
	if err != nil {
		logger.Error("case library invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("case library loaded", slog.String("version", library.Version()))

	var textClassifier port.TextClassifier
	switch cfg.ClassifierMode {
	case "http":
		textClassifier = classifier.NewHTTPClient(cfg.ClassifierURL)
		logger.Info("using http classifier", slog.String("endpoint", cfg.ClassifierURL))
	default:
		textClassifier = classifier.NewStub(logger)
		logger.Info("using stub classifier")
	}

	evaluator := service.NewEvaluator(catalog, textClassifier,
		service.WithConfidenceFloor(scoring.ConfidenceFloor),
		service.WithClassifierTimeout(scoring.ClassifierTimeout),
	)
	aggregator, err := service.NewAggregator(scoring.Points, scoring.Weights)
	if err != nil {
		logger.Error("aggregator configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}
	matcher := service.NewPatternMatcher(library).WithMatchFloor(scoring.MatchFloor)
	engine := service.NewEngine(evaluator, aggregator, service.NewRiskCalculator(), matcher)

	publisher := messaging.NewKafkaPublisher([]string{cfg.KafkaBroker}, cfg.KafkaTopic, logger)
	defer func() {
		if err := publisher.Close(); err != nil {
			logger.Warn("kafka publisher close failed", slog.String("error", err.Error()))
		}
	}()

	repo := infrapostgres.NewAssessmentRepository(pool)

	analyzeReport := usecase.NewAnalyzeReport(repo, publisher, engine, analysisMetrics)
	getAssessment := usecase.NewGetAssessment(repo)
	listAssessments := usecase.NewListAssessments(repo)

	jwtService, err := auth.NewJWTService(auth.JWTConfig{
		Secret: cfg.JWTSecret,
		Issuer: cfg.JWTIssuer,
	})
	if err != nil {
		logger.Error("jwt configuration invalid", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handler := grpcpresentation.NewAnalysisHandler(analyzeReport, getAssessment, listAssessments, logger)
	grpcServer := grpcpresentation.NewServer(cfg.GRPCAddress(), handler, jwtService, logger)

	mux := http.NewServeMux()
	rest.NewHealthHandler(pool, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)
	httpServer := &http.Server{
		Addr:         cfg.HTTPAddress(),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)
	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- err
		}
	}()
	go func() {
		logger.Info("http server listening", slog.String("address", cfg.HTTPAddress()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server failed", slog.String("error", err.Error()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown failed", slog.String("error", err.Error()))
	}
	grpcServer.Stop()
	logger.Info("redflagd stopped")
}
