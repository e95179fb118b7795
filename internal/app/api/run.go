package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"gorm.io/gorm"

	adoptionserver "github.com/Apurer/go-gin-adoption-api/go"
	adoptobs "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/observability"
	adoptstore "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/persistence/gormstore"
	adoptworkflows "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/adapters/workflows"
	adoptapp "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/application"
	adoptports "github.com/Apurer/go-gin-adoption-api/internal/domains/adoptions/ports"
	petsobs "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/observability"
	petstore "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/adapters/persistence/gormstore"
	petsapp "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/application"
	petsports "github.com/Apurer/go-gin-adoption-api/internal/domains/pets/ports"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/database"
	"github.com/Apurer/go-gin-adoption-api/internal/platform/migrations"
	platformobservability "github.com/Apurer/go-gin-adoption-api/internal/platform/observability"
)

const serviceName = "adoption-api"

// Services holds the decorated application services sharing one store.
type Services struct {
	Pets      petsports.Service
	Adoptions adoptports.Service
}

// NewServices wires repositories and decorated services over db.
func NewServices(db *gorm.DB, cfg Config, instruments *platformobservability.Instruments) Services {
	petRepo := petstore.NewRepository(db)
	corePets := petsapp.NewService(petRepo)
	coreAdoptions := adoptapp.NewService(adoptstore.NewStore(db), petRepo, adoptapp.WithPolicy(cfg.Policy()))

	logger := effectiveLogger(instruments)
	return Services{
		Pets: petsobs.New(
			corePets,
			petsobs.WithLogger(logger),
			petsobs.WithTracer(instruments.Tracer("internal.pets.application")),
			petsobs.WithMeter(instruments.Meter("internal.pets.application")),
		),
		Adoptions: adoptobs.New(
			coreAdoptions,
			adoptobs.WithLogger(logger),
			adoptobs.WithTracer(instruments.Tracer("internal.adoptions.application")),
			adoptobs.WithMeter(instruments.Meter("internal.adoptions.application")),
		),
	}
}

// OpenStore opens the configured database and applies migrations when enabled.
func OpenStore(ctx context.Context, cfg Config, logger *slog.Logger) (*gorm.DB, func(), error) {
	db, cleanup, err := database.Open(ctx, database.Config{PostgresDSN: cfg.PostgresDSN, SQLitePath: cfg.SQLitePath}, logger)
	if err != nil {
		return nil, cleanup, err
	}
	if cfg.MigrateOnStart || (database.Dialect(db) == database.DialectSQLite && cfg.SQLitePath == "") {
		applied, err := migrations.Up(ctx, db)
		if err != nil {
			cleanup()
			return nil, func() {}, fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied", slog.Int("count", len(applied)))
	}
	return db, cleanup, nil
}

// InitObservability configures slog and OpenTelemetry from cfg.
func InitObservability(ctx context.Context, cfg Config, name string) (*platformobservability.Instruments, func(context.Context) error, error) {
	return platformobservability.Init(ctx, platformobservability.Settings{
		ServiceName:  name,
		Environment:  cfg.Environment,
		LogLevel:     cfg.LogLevel,
		OTLPEndpoint: cfg.OTLPEndpoint,
		OTLPInsecure: cfg.OTLPInsecure,
	})
}

// Run boots the adoption HTTP API with observability, persistence, and workflows wired.
func Run(ctx context.Context) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := InitObservability(ctx, cfg, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, closeDB, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeDB()

	services := NewServices(db, cfg, instruments)
	var workflows adoptports.WorkflowOrchestrator = adoptworkflows.NewInlineAdoptionWorkflows(services.Adoptions)
	if cfg.TemporalEnabled() {
		if temporalClient, err := DialTemporal(cfg, instruments); err != nil {
			logger.Warn("Temporal workflows unavailable, running adoptions inline", slog.String("error", err.Error()))
		} else {
			defer temporalClient.Close()
			workflows = adoptworkflows.NewTemporalAdoptionWorkflows(temporalClient)
			logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
		}
	}

	handlers := adoptionserver.ApiHandleFunctions{
		PetAPI:      adoptionserver.NewPetAPI(services.Pets),
		AdoptionAPI: adoptionserver.NewAdoptionAPI(services.Adoptions, workflows),
		HealthAPI: adoptionserver.NewHealthAPI(func(ctx context.Context) error {
			return database.Ping(ctx, db)
		}),
	}
	router := adoptionserver.NewRouter(handlers,
		otelgin.Middleware(serviceName),
		adoptionserver.RequestLogger(logger),
	)

	srv := &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	listener, err := net.Listen("tcp", cfg.Addr())
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.Addr(), err)
	}
	sigCtx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("adoption API listening", slog.String("addr", listener.Addr().String()))
	if err := serve(sigCtx, srv, listener, cfg.ShutdownTimeout()); err != nil {
		logger.Error("adoption API server exited", slog.String("error", err.Error()))
		return err
	}
	logger.Info("adoption API stopped")
	return nil
}

// serve runs srv until ctx is cancelled, then drains in-flight requests within timeout.
func serve(ctx context.Context, srv *http.Server, listener net.Listener, timeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// DialTemporal connects a traced Temporal client.
func DialTemporal(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if !cfg.TemporalEnabled() {
		return nil, errors.New("temporal disabled: TEMPORAL_ADDRESS unset or TEMPORAL_DISABLED set")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.Default()
}
