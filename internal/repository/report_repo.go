package repository

import (
	"context"

	"tetrades/internal/model"
	"tetrades/pkg/utils"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *model.Report, opts ...utils.DBOption) error
	ListByProfile(ctx context.Context, profileID string, limit int) ([]model.Report, error)
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *model.Report, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Create(report).Error
}

func (r *reportRepository) ListByProfile(ctx context.Context, profileID string, limit int) ([]model.Report, error) {
	var reports []model.Report
	query := r.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Order("created_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}
