package repository

import (
	"context"

	"tetrades/internal/model"
	"tetrades/pkg/utils"

	"gorm.io/gorm"
)

type ProfileRepository interface {
	Get(ctx context.Context, id string, opts ...utils.DBOption) (*model.Profile, error)
	GetByReferralCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Profile, error)
	Create(ctx context.Context, profile *model.Profile, opts ...utils.DBOption) error
	UpdatePoints(ctx context.Context, id string, points int64, opts ...utils.DBOption) error
	UpdateNickname(ctx context.Context, id, nickname string, opts ...utils.DBOption) error
	TopByPoints(ctx context.Context, limit int) ([]model.Profile, error)
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{
		db: db,
	}
}

func (r *profileRepository) Get(ctx context.Context, id string, opts ...utils.DBOption) (*model.Profile, error) {
	var profile model.Profile
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("id = ?", id).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, result.Error
	}

	return &profile, nil
}

func (r *profileRepository) GetByReferralCode(ctx context.Context, code string, opts ...utils.DBOption) (*model.Profile, error) {
	var profile model.Profile
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)

	result := tx.Where("referral_code = ?", code).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, nil
		}

		return nil, result.Error
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *model.Profile, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Create(profile).Error
}

func (r *profileRepository) UpdatePoints(ctx context.Context, id string, points int64, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Model(&model.Profile{}).Where("id = ?", id).Update("points", points).Error
}

func (r *profileRepository) UpdateNickname(ctx context.Context, id, nickname string, opts ...utils.DBOption) error {
	tx := utils.ApplyOptions(r.db.WithContext(ctx), opts...)
	return tx.Model(&model.Profile{}).Where("id = ?", id).Update("nickname", nickname).Error
}

func (r *profileRepository) TopByPoints(ctx context.Context, limit int) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Order("points DESC, created_at ASC").
		Limit(limit).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
