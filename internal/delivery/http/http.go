package http

import (
	"context"
	"net/http"

	"tetrades/config"
	"tetrades/internal/repository"
	"tetrades/internal/service"
	"tetrades/pkg/cache"
	"tetrades/pkg/logger"
	pkgMiddleware "tetrades/pkg/middleware"

	goValidator "github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpAPIHandler struct {
	cfg       *config.Config
	log       *logger.Logger
	echo      *echo.Echo
	validator *goValidator.Validate
	service   *service.Service
	authRepo  repository.AuthRepository
	cache     cache.Cache
}

func NewHttpAPIHandler(
	ctx context.Context,
	cfg *config.Config,
	log *logger.Logger,
	echo *echo.Echo,
	validator *goValidator.Validate,
	svc *service.Service,
	authRepo repository.AuthRepository,
	inmemoryCache cache.Cache,
) *HttpAPIHandler {
	return &HttpAPIHandler{
		cfg:       cfg,
		log:       log,
		echo:      echo,
		validator: validator,
		service:   svc,
		authRepo:  authRepo,
		cache:     inmemoryCache,
	}
}

func (h *HttpAPIHandler) SetupRoutes() {
	h.echo.Use(pkgMiddleware.NewRateLimiterMiddleware())
	h.echo.Use(h.SessionMiddleware())

	h.echo.GET("/healthz", h.Health)

	base := h.echo.Group("/api")
	h.SetupAuth(base)
	h.SetupReports(base)
	h.SetupProfiles(base)
}

func (h *HttpAPIHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
