package repository

import (
	"context"
	"time"

	"tetrades/internal/model"
	"tetrades/pkg/utils"

	"gorm.io/gorm"
)

type ListPredictionsParam struct {
	ProfileID string
	Ticker    string
	Limit     int
}

type PredictionRepository interface {
	Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error
	List(ctx context.Context, param ListPredictionsParam) ([]model.Prediction, error)
	ListMatured(ctx context.Context, before time.Time, limit int) ([]model.Prediction, error)
	RecordOutcome(ctx context.Context, id uint, outcomePrice float64, hit bool, evaluatedAt time.Time) error
}

type predictionRepository struct {
	db *gorm.DB
}

func NewPredictionRepository(db *gorm.DB) PredictionRepository {
	return &predictionRepository{db: db}
}

func (r *predictionRepository) Create(ctx context.Context, prediction *model.Prediction, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Create(prediction).Error
}

func (r *predictionRepository) List(ctx context.Context, param ListPredictionsParam) ([]model.Prediction, error) {
	query := r.db.WithContext(ctx)

	if param.ProfileID != "" {
		query = query.Where("profile_id = ?", param.ProfileID)
	}
	if param.Ticker != "" {
		query = query.Where("ticker = ?", param.Ticker)
	}
	if param.Limit > 0 {
		query = query.Limit(param.Limit)
	}

	var predictions []model.Prediction
	err := query.Order("created_at DESC").Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

// ListMatured returns predictions whose target date has passed and that have
// never been evaluated. Tickers that fail evaluation stay in this set and are
// picked up again on the next run.
func (r *predictionRepository) ListMatured(ctx context.Context, before time.Time, limit int) ([]model.Prediction, error) {
	var predictions []model.Prediction
	query := r.db.WithContext(ctx).
		Where("target_date <= ?", before).
		Where("evaluated_at IS NULL").
		Order("target_date ASC")

	if limit > 0 {
		query = query.Limit(limit)
	}

	err := query.Find(&predictions).Error
	if err != nil {
		return nil, err
	}
	return predictions, nil
}

func (r *predictionRepository) RecordOutcome(ctx context.Context, id uint, outcomePrice float64, hit bool, evaluatedAt time.Time) error {
	// Pointer fields so a miss (hit=false) is not dropped as a zero value.
	return r.db.WithContext(ctx).
		Model(&model.Prediction{}).
		Where("id = ?", id).
		Updates(model.Prediction{
			OutcomePrice: utils.ToPointer(outcomePrice),
			VerdictHit:   utils.ToPointer(hit),
			EvaluatedAt:  utils.ToPointer(evaluatedAt),
		}).Error
}
