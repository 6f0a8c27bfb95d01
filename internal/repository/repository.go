package repository

import (
	"tetrades/config"
	"tetrades/pkg/cache"
	"tetrades/pkg/logger"

	"gorm.io/gorm"
)

type Repository struct {
	MarketDataRepo MarketDataRepository
	GeminiAIRepo   AIRepository
	AuthRepo       AuthRepository
	ProfileRepo    ProfileRepository
	PredictionRepo PredictionRepository
	ReportRepo     ReportRepository
	UnitOfWork     UnitOfWork
}

func NewRepository(cfg *config.Config, inmemoryCache cache.Cache, db *gorm.DB, log *logger.Logger) (*Repository, error) {
	geminiAIRepo, err := NewGeminiAIRepository(cfg, log)
	if err != nil {
		return nil, err
	}

	return &Repository{
		MarketDataRepo: NewFMPRepository(cfg, inmemoryCache, log),
		GeminiAIRepo:   geminiAIRepo,
		AuthRepo:       NewAuthRepository(cfg, log),
		ProfileRepo:    NewProfileRepository(db),
		PredictionRepo: NewPredictionRepository(db),
		ReportRepo:     NewReportRepository(db),
		UnitOfWork:     NewUnitOfWork(db),
	}, nil
}
