package service

import (
	"context"
	"fmt"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/internal/model"
	"tetrades/internal/repository"
	"tetrades/pkg/logger"
	"tetrades/pkg/utils"
)

type ProfileService interface {
	GetOrCreate(ctx context.Context, identity *dto.Identity) (*model.Profile, error)
	Me(ctx context.Context, identity *dto.Identity) (*model.Profile, error)
	UpdateNickname(ctx context.Context, identity *dto.Identity, nickname string) (*model.Profile, error)
	ApplyReferralCredit(ctx context.Context, code string) (bool, error)
	Ranking(ctx context.Context, limit int) ([]model.Profile, error)
}

type profileService struct {
	cfg         *config.Config
	log         *logger.Logger
	profileRepo repository.ProfileRepository
}

func NewProfileService(cfg *config.Config, log *logger.Logger, profileRepo repository.ProfileRepository) ProfileService {
	return &profileService{
		cfg:         cfg,
		log:         log,
		profileRepo: profileRepo,
	}
}

// GetOrCreate returns the profile for an identity, creating it on first
// sight with a fresh referral code. Profiles are never deleted.
func (s *profileService) GetOrCreate(ctx context.Context, identity *dto.Identity) (*model.Profile, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}

	profile, err := s.profileRepo.Get(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile != nil {
		return profile, nil
	}

	profile = &model.Profile{
		ID:               identity.ID,
		Email:            identity.Email,
		SubscriptionType: dto.SubscriptionFree,
		Points:           0,
		ReferralCode:     utils.NewReferralCode(),
	}
	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}

	s.log.InfoContext(ctx, "created profile for new identity",
		logger.StringField("profile_id", profile.ID),
		logger.StringField("referral_code", profile.ReferralCode))
	return profile, nil
}

func (s *profileService) Me(ctx context.Context, identity *dto.Identity) (*model.Profile, error) {
	if identity == nil {
		return nil, ErrUnauthorized
	}
	profile, err := s.profileRepo.Get(ctx, identity.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrProfileNotFound
	}
	return profile, nil
}

func (s *profileService) UpdateNickname(ctx context.Context, identity *dto.Identity, nickname string) (*model.Profile, error) {
	profile, err := s.Me(ctx, identity)
	if err != nil {
		return nil, err
	}

	if err := s.profileRepo.UpdateNickname(ctx, profile.ID, nickname); err != nil {
		return nil, fmt.Errorf("failed to update nickname: %w", err)
	}
	profile.Nickname = nickname
	return profile, nil
}

// ApplyReferralCredit credits the profile owning the code one fixed reward.
// An unknown code is a no-op, not an error. This is intentionally not
// idempotent and intentionally read-then-write; it is called exactly once per
// signup. Two concurrent credits to the same profile can lose an update, a
// known hazard accepted for this balance.
func (s *profileService) ApplyReferralCredit(ctx context.Context, code string) (bool, error) {
	referrer, err := s.profileRepo.GetByReferralCode(ctx, code)
	if err != nil {
		return false, fmt.Errorf("failed to look up referral code: %w", err)
	}
	if referrer == nil {
		return false, nil
	}

	newPoints := referrer.Points + s.cfg.Referral.RewardPoints
	if err := s.profileRepo.UpdatePoints(ctx, referrer.ID, newPoints); err != nil {
		return false, fmt.Errorf("failed to credit referral reward: %w", err)
	}

	s.log.InfoContext(ctx, "applied referral credit",
		logger.StringField("referrer_id", referrer.ID),
		logger.Field("points", newPoints))
	return true, nil
}

func (s *profileService) Ranking(ctx context.Context, limit int) ([]model.Profile, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	return s.profileRepo.TopByPoints(ctx, limit)
}
