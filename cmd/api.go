package cmd

import (
	"context"
	"fmt"
	"time"

	"tetrades/internal/delivery/http"

	"go.uber.org/zap"
)

type HTTPServer struct {
	appDep  *AppDependency
	handler *http.HttpAPIHandler
}

func NewHTTPServer(appDep *AppDependency, handler *http.HttpAPIHandler) *HTTPServer {
	return &HTTPServer{
		appDep:  appDep,
		handler: handler,
	}
}

func (s *HTTPServer) Start() error {
	s.appDep.log.Info("Starting HTTP server", zap.Int("port", s.appDep.cfg.API.Port))
	address := fmt.Sprintf(":%d", s.appDep.cfg.API.Port)

	s.handler.SetupRoutes()

	return s.appDep.echo.Start(address)
}

func (s *HTTPServer) Stop() error {
	s.appDep.log.Info("Shutting down HTTP server")

	// The run context is already cancelled by the time Stop is called, so the
	// drain deadline must not derive from it.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	stopDone := make(chan error, 1)
	go func() {
		err := s.appDep.echo.Shutdown(ctx)
		if err != nil {
			s.appDep.log.Error("Error When Stop HTTP server", zap.Error(err))
		}
		stopDone <- nil
	}()

	// Wait for server to stop with timeout
	select {
	case <-stopDone:
		s.appDep.log.Info("HTTP server stopped successfully")
	case <-ctx.Done():
		s.appDep.log.Warn("Timeout while stopping HTTP server, forcing shutdown")
	}
	return nil
}
