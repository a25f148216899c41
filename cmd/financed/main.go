package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/dealerfin/dealerfin/internal/application/usecase"
	"github.com/dealerfin/dealerfin/internal/domain/service"
	"github.com/dealerfin/dealerfin/internal/infrastructure/cache"
	"github.com/dealerfin/dealerfin/internal/infrastructure/catalog"
	"github.com/dealerfin/dealerfin/internal/infrastructure/config"
	"github.com/dealerfin/dealerfin/internal/infrastructure/kafka"
	pgRepo "github.com/dealerfin/dealerfin/internal/infrastructure/persistence/postgres"
	"github.com/dealerfin/dealerfin/internal/infrastructure/validation"
	grpcPresentation "github.com/dealerfin/dealerfin/internal/presentation/grpc"
	"github.com/dealerfin/dealerfin/internal/presentation/rest"
	"github.com/dealerfin/dealerfin/pkg/auth"
	pkgkafka "github.com/dealerfin/dealerfin/pkg/kafka"
	"github.com/dealerfin/dealerfin/pkg/observability"
	pkgpostgres "github.com/dealerfin/dealerfin/pkg/postgres"
)

func main() {
	if err := run(); err != nil {
		slog.Error("financed exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Service: cfg.ServiceName,
	})
	logger.Info("starting financed",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing and metrics.
	shutdownTracer, err := observability.InitTracer(ctx, observability.TraceConfig{
		ServiceName: cfg.ServiceName,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    true,
	})
	if err != nil {
		logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
	} else {
		defer func() { _ = shutdownTracer(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck

	// Database.
	dbCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		ApplicationName: cfg.ServiceName,
		MaxConns:        cfg.DB.MaxConns,
	}
	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), cfg.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	// Redis.
	rdb, err := cache.NewClient(ctx, cache.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer func() { _ = rdb.Close() }() //nolint:errcheck
	quoteCache := cache.NewQuoteCache(rdb, cfg.QuoteCacheTTL)
	feed := cache.NewNotificationFeed(rdb, usecase.MaxNotifications)

	// Static catalog.
	vehicles, err := catalog.LoadStaticCatalog()
	if err != nil {
		return fmt.Errorf("load vehicle catalog: %w", err)
	}
	dealerships, err := catalog.LoadStaticDirectory()
	if err != nil {
		return fmt.Errorf("load dealership directory: %w", err)
	}

	// Kafka.
	kafkaCfg := pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		ConsumerGroup: cfg.Kafka.ConsumerGroup,
		ClientID:      cfg.ServiceName,
	}
	producer, err := pkgkafka.NewProducer(kafkaCfg)
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }() //nolint:errcheck
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	// Repositories and domain services.
	requests := pgRepo.NewFinanceRequestRepo(pool)
	offers := pgRepo.NewOfferRepo(pool)
	packages := pgRepo.NewPackageRepo(pool)
	classifier := service.NewPricingBucketClassifier(service.DefaultPricingBuckets())
	matcher := service.NewPackageMatcher()

	// Use cases.
	useCases := grpcPresentation.UseCases{
		Quote:             usecase.NewQuotePaymentUseCase(vehicles, packages, quoteCache, classifier, matcher),
		Estimate:          usecase.NewEstimateQuoteUseCase(vehicles, service.NewEstimator()),
		Classify:          usecase.NewClassifyVehicleUseCase(vehicles, classifier),
		Advisor:           usecase.NewRecommendPlanTypeUseCase(service.NewLeaseOrFinanceAdvisor()),
		Dealerships:       usecase.NewFindDealershipsUseCase(dealerships),
		SubmitRequest:     usecase.NewSubmitFinanceRequestUseCase(requests, vehicles, dealerships, publisher),
		GetRequest:        usecase.NewGetFinanceRequestUseCase(requests),
		ListRequests:      usecase.NewListFinanceRequestsUseCase(requests),
		UpdateStatus:      usecase.NewUpdateFinanceRequestStatusUseCase(requests, publisher),
		CreateOffer:       usecase.NewCreateOfferUseCase(requests, offers, vehicles, publisher, cfg.OfferValidity),
		RespondToOffer:    usecase.NewRespondToOfferUseCase(requests, offers, publisher),
		ListOffers:        usecase.NewListOffersUseCase(requests, offers),
		ManagePackages:    usecase.NewManagePackagesUseCase(packages),
		ListPackages:      usecase.NewListPackagesUseCase(packages, vehicles, matcher),
		ListNotifications: usecase.NewListNotificationsUseCase(feed),
	}

	consumer, err := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.Topic,
		kafka.NotificationHandler(usecase.NewProjectNotificationUseCase(feed), logger), logger)
	if err != nil {
		return fmt.Errorf("create kafka consumer: %w", err)
	}
	defer func() { _ = consumer.Close() }() //nolint:errcheck

	// JWT validation.
	jwtSvc, err := auth.NewJWTService(auth.JWTConfig{
		Secret:       cfg.Auth.Secret,
		PublicKeyPEM: cfg.Auth.PublicKeyPEM,
		Issuer:       cfg.Auth.Issuer,
	})
	if err != nil {
		return fmt.Errorf("init JWT service: %w", err)
	}

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewFinanceHandler(useCases, logger),
		jwtSvc,
		grpcPresentation.ServerOptions{
			ServiceName: cfg.ServiceName,
			CertFile:    cfg.TLS.CertFile,
			KeyFile:     cfg.TLS.KeyFile,
			Reflection:  cfg.GRPCReflection,
		},
		logger,
	)
	if err != nil {
		return err
	}

	// HTTP server.
	validator, err := validation.NewQuoteRequestValidator()
	if err != nil {
		return fmt.Errorf("load quote schema: %w", err)
	}
	router := rest.NewRouter(rest.RouterConfig{
		Health: rest.NewHealthHandler(cfg.ServiceName, map[string]rest.ReadinessCheck{
			"postgres": pkgpostgres.ReadinessCheck(pool),
			"redis":    cache.ReadinessCheck(rdb),
		}, logger),
		Quotes: rest.NewQuoteHandler(useCases.Quote, useCases.Estimate, useCases.Dealerships,
			vehicles, validator, logger),
		Metrics:      metricsHandler,
		RateLimitRPS: cfg.RateLimitRPS,
		Logger:       logger,
	})
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Run until a signal arrives or a component fails.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			return fmt.Errorf("gRPC server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("HTTP server starting", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		logger.Info("notification consumer starting", "topic", cfg.Kafka.Topic)
		return consumer.Start(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		grpcServer.GracefulStop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer shutdownCancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", "error", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info("financed stopped")
	return nil
}
