package main

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"google.golang.org/grpc/credentials"

	"github.com/bibbank/conveyor/internal/application/usecase"
	"github.com/bibbank/conveyor/internal/domain/port"
	"github.com/bibbank/conveyor/internal/domain/service"
	"github.com/bibbank/conveyor/internal/infrastructure/cache"
	"github.com/bibbank/conveyor/internal/infrastructure/config"
	"github.com/bibbank/conveyor/internal/infrastructure/kafka"
	"github.com/bibbank/conveyor/internal/infrastructure/metrics"
	pgRepo "github.com/bibbank/conveyor/internal/infrastructure/persistence/postgres"
	grpcPresentation "github.com/bibbank/conveyor/internal/presentation/grpc"
	"github.com/bibbank/conveyor/internal/presentation/rest"
	"github.com/bibbank/conveyor/pkg/auth"
	pkgkafka "github.com/bibbank/conveyor/pkg/kafka"
	"github.com/bibbank/conveyor/pkg/observability"
	pkgpostgres "github.com/bibbank/conveyor/pkg/postgres"
	"github.com/bibbank/conveyor/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("conveyor stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	logger.Info("starting conveyor",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"base_rate", cfg.Pricing.BaseRate,
	)

	// Tracing is optional; without an endpoint spans go to the no-op provider.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(ctx, observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:            cfg.DB.Host,
		Port:            cfg.DB.Port,
		User:            cfg.DB.User,
		Password:        cfg.DB.Password,
		Database:        cfg.DB.Name,
		SSLMode:         cfg.DB.SSLMode,
		MaxConns:        int32(cfg.DB.MaxConns), //nolint:gosec // small positive int from config
		ApplicationName: cfg.ServiceName,
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	defer dbCancel()

	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrationsFS(dbCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Wire infrastructure adapters.
	appRepo := pgRepo.NewApplicationRepo(pool)
	creditRepo := pgRepo.NewCreditRepo(pool)

	kafkaProducer := pkgkafka.NewProducer(pkgkafka.Config{Brokers: cfg.Kafka.Brokers})
	defer kafkaProducer.Close()
	publisher := kafka.NewKafkaEventPublisher(kafkaProducer, cfg.Kafka.Topic, logger)

	recorder, err := metrics.NewDecisionRecorder(meterProvider)
	if err != nil {
		return fmt.Errorf("init decision metrics: %w", err)
	}

	readiness := map[string]rest.ReadinessCheck{
		"postgres": func(ctx context.Context) error { return pkgpostgres.HealthCheck(ctx, pool) },
	}

	var offerCache port.OfferCache
	if cfg.Redis.Addr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
		offerCache = cache.NewOfferCache(redisClient, cfg.Redis.OfferTTL)
		readiness["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
		logger.Info("offer cache enabled", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.OfferTTL)
	}

	// Domain.
	engine := service.NewRateEngine(cfg.Pricing.BaseRate, cfg.Pricing.MinRate, logger)
	conveyor := service.NewConveyor(engine, service.Premiums{
		Offer:  cfg.Pricing.OfferInsurancePremium,
		Credit: cfg.Pricing.CreditInsurancePremium,
	})

	// Wire use cases.
	settings := usecase.Settings{MaxTermMonths: cfg.Pricing.MaxTermMonths, Logger: logger}
	offersUC := usecase.NewCalculateOffersUseCase(conveyor, appRepo, publisher, offerCache, recorder, settings)
	creditUC := usecase.NewCalculateCreditUseCase(conveyor, appRepo, creditRepo, publisher, recorder, settings)
	getCreditUC := usecase.NewGetCreditUseCase(creditRepo)
	getAppUC := usecase.NewGetApplicationUseCase(appRepo)

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("init JWT service: %w", err)
	}

	var (
		grpcCreds credentials.TransportCredentials
		tlsCfg    *tls.Config
	)
	if cfg.TLS.CertFile != "" {
		tlsCfg, err = tlsutil.ServerConfig(cfg.TLS.CertFile, cfg.TLS.KeyFile)
		if err != nil {
			return fmt.Errorf("load TLS credentials: %w", err)
		}
		grpcCreds = credentials.NewTLS(tlsCfg)
	}

	// gRPC server.
	grpcHandler := grpcPresentation.NewConveyorHandler(offersUC, creditUC, getCreditUC, getAppUC, logger)
	grpcServer := grpcPresentation.NewServer(grpcHandler, logger, jwtSvc, grpcPresentation.ServerOptions{
		Creds:      grpcCreds,
		Reflection: cfg.GRPCReflection,
	})

	// HTTP server.
	router, err := rest.NewRouter(rest.RouterConfig{
		ServiceName:    cfg.ServiceName,
		Conveyor:       rest.NewConveyorHandler(offersUC, creditUC, getCreditUC, getAppUC, logger),
		Health:         rest.NewHealthHandler(cfg.ServiceName, readiness, logger),
		JWT:            jwtSvc,
		Meter:          otel.GetMeterProvider().Meter(cfg.ServiceName),
		MetricsHandler: metricsHandler,
		Logger:         logger,
	})
	if err != nil {
		return fmt.Errorf("build HTTP router: %w", err)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		TLSConfig:         tlsCfg,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort, "tls", tlsCfg != nil)
		var err error
		if tlsCfg != nil {
			err = httpServer.ListenAndServeTLS("", "")
		} else {
			err = httpServer.ListenAndServe()
		}
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("conveyor stopped")
	return serveErr
}

// newJWTService builds a validation-only JWT service: a public key is
// preferred, the shared secret is the fallback.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	switch {
	case cfg.JWTPublicKey != "":
		jwtCfg.PublicKeyPEM = cfg.JWTPublicKey
	case cfg.JWTPublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.JWTPublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.JWTSecret
	}
	return auth.NewJWTService(jwtCfg)
}
