package service

import (
	"tetrades/config"
	"tetrades/internal/repository"
	"tetrades/pkg/logger"
)

type Service struct {
	AuthService      AuthService
	ProfileService   ProfileService
	ReportService    ReportService
	EvaluatorService EvaluatorService
}

func NewService(
	cfg *config.Config,
	log *logger.Logger,
	repo *repository.Repository,
) *Service {
	profileService := NewProfileService(cfg, log, repo.ProfileRepo)
	authService := NewAuthService(cfg, log, repo.AuthRepo, profileService)
	reportService := NewReportService(
		cfg,
		log,
		repo.MarketDataRepo,
		repo.GeminiAIRepo,
		repo.ProfileRepo,
		repo.PredictionRepo,
		repo.ReportRepo,
		repo.UnitOfWork,
	)
	evaluatorService := NewEvaluatorService(cfg, log, repo.MarketDataRepo, repo.PredictionRepo)

	return &Service{
		AuthService:      authService,
		ProfileService:   profileService,
		ReportService:    reportService,
		EvaluatorService: evaluatorService,
	}
}
