package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/Apurer/go-gin-adoption-api/internal/app/api"
	adoptactivities "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/activities/adoptions"
	adoptworkflows "github.com/Apurer/go-gin-adoption-api/internal/platform/temporal/workflows/adoptions"
)

func main() {
	ctx := context.Background()
	const serviceName = "adoption-worker"
	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	instruments, shutdown, err := api.InitObservability(ctx, cfg, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, worker adoptions will not be visible to the API process")
	}
	db, closeDB, err := api.OpenStore(ctx, cfg, logger)
	if err != nil {
		logger.Error("failed to open store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeDB()
	services := api.NewServices(db, cfg, instruments)
	adoptionActivities := adoptactivities.NewActivities(services.Adoptions)

	temporalClient, err := api.DialTemporal(cfg, instruments)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, adoptworkflows.AdoptionTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(adoptworkflows.AdoptionWorkflow, workflow.RegisterOptions{Name: adoptworkflows.AdoptionWorkflowName})
	w.RegisterActivityWithOptions(adoptionActivities.AdoptPet, activity.RegisterOptions{Name: adoptactivities.AdoptPetActivityName})

	logger.Info("worker listening", slog.String("taskQueue", adoptworkflows.AdoptionTaskQueue), slog.String("namespace", cfg.TemporalNamespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
