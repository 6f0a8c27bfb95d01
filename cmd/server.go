package cmd

import (
	"context"
	"log"
	httpNet "net/http"
	"os"
	"os/signal"
	"syscall"

	"tetrades/internal/delivery/http"
	"tetrades/internal/repository"
	"tetrades/internal/service"
	"tetrades/pkg/utils"

	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Run the tetrades API server",
	Run:   Start,
}

func Start(cmd *cobra.Command, args []string) {

	// Create a context that is canceled on interrupt signals
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency(ctx)
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}

	repo, err := repository.NewRepository(appDep.cfg, appDep.cache, appDep.db.DB, appDep.log)
	if err != nil {
		log.Fatalf("Failed to create repository: %v", err)
	}

	services := service.NewService(appDep.cfg, appDep.log, repo)

	httpHandler := http.NewHttpAPIHandler(
		ctx,
		appDep.cfg,
		appDep.log,
		appDep.echo,
		appDep.validator,
		services,
		repo.AuthRepo,
		appDep.cache,
	)

	apiServer := NewHTTPServer(appDep, httpHandler)
	utils.GoSafe(func() {
		if err := apiServer.Start(); err != nil && err != httpNet.ErrServerClosed {
			log.Fatalf("Failed to start HTTP server: %v", err)
		}
	})

	if err := services.EvaluatorService.Start(ctx); err != nil {
		log.Fatalf("Failed to start prediction evaluator: %v", err)
	}

	// Wait for shutdown signal
	<-ctx.Done()
	log.Println("Shutting down gracefully...")

	services.EvaluatorService.Stop()

	if err := apiServer.Stop(); err != nil {
		log.Fatalf("Failed to stop HTTP server: %v", err)
	}

	if err := appDep.Close(); err != nil {
		log.Fatalf("Failed to close app dependency: %v", err)
	}
}
