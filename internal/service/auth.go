package service

import (
	"context"
	"fmt"
	"strings"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/internal/model"
	"tetrades/internal/repository"
	"tetrades/pkg/common"
	"tetrades/pkg/logger"
	"tetrades/pkg/utils"
)

type SignUpResult struct {
	User            dto.AuthUser   `json:"user"`
	Profile         *model.Profile `json:"profile"`
	ReferralApplied bool           `json:"referral_applied"`
}

type SignInResult struct {
	Session *dto.Session   `json:"session"`
	Profile *model.Profile `json:"profile"`
}

type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) (*SignUpResult, error)
	SignIn(ctx context.Context, req dto.SignInRequest) (*SignInResult, error)
	OAuthAuthorizeURL(provider string) (string, error)
	ExchangeOAuthCode(ctx context.Context, authCode, codeVerifier string) (*SignInResult, error)
}

type authService struct {
	cfg        *config.Config
	log        *logger.Logger
	authRepo   repository.AuthRepository
	profileSvc ProfileService
}

func NewAuthService(cfg *config.Config, log *logger.Logger, authRepo repository.AuthRepository, profileSvc ProfileService) AuthService {
	return &authService{
		cfg:        cfg,
		log:        log,
		authRepo:   authRepo,
		profileSvc: profileSvc,
	}
}

// SignUp registers the identity with the provider, creates the profile, and
// applies the referral credit when a code was supplied. The credit is applied
// here and nowhere else, exactly once per signup.
func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) (*SignUpResult, error) {
	user, err := s.authRepo.SignUp(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("sign up failed: %w", err)
	}

	profile, err := s.profileSvc.GetOrCreate(ctx, user.Identity())
	if err != nil {
		return nil, err
	}

	result := &SignUpResult{User: *user, Profile: profile}

	if req.ReferralCode != "" {
		applied, err := s.profileSvc.ApplyReferralCredit(ctx, strings.ToUpper(req.ReferralCode))
		if err != nil {
			// The account exists at this point; a failed credit must not
			// undo the signup.
			s.log.ErrorContext(ctx, "referral credit failed after signup",
				logger.ErrorField(err),
				logger.StringField("referral_code", req.ReferralCode))
		}
		result.ReferralApplied = applied
	}

	return result, nil
}

func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*SignInResult, error) {
	session, err := s.authRepo.SignInWithPassword(ctx, req.Email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("sign in failed: %w", err)
	}

	profile, err := s.profileSvc.GetOrCreate(ctx, session.User.Identity())
	if err != nil {
		return nil, err
	}

	return &SignInResult{Session: session, Profile: profile}, nil
}

func (s *authService) OAuthAuthorizeURL(provider string) (string, error) {
	if !utils.ContainsString(common.GetOAuthProviderList(), provider) {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, provider)
	}
	return s.authRepo.AuthorizeURL(provider), nil
}

func (s *authService) ExchangeOAuthCode(ctx context.Context, authCode, codeVerifier string) (*SignInResult, error) {
	session, err := s.authRepo.ExchangeOAuthCode(ctx, authCode, codeVerifier)
	if err != nil {
		return nil, fmt.Errorf("oauth code exchange failed: %w", err)
	}

	profile, err := s.profileSvc.GetOrCreate(ctx, session.User.Identity())
	if err != nil {
		return nil, err
	}

	return &SignInResult{Session: session, Profile: profile}, nil
}
