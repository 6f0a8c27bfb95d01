package repository

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"tetrades/config"
	"tetrades/internal/dto"
	"tetrades/pkg/httpclient"
	"tetrades/pkg/logger"
)

// AuthRepository is the hosted identity provider (GoTrue-style REST API).
// Sign-up, password sign-in and the OAuth code exchange all happen on the
// provider's side; this repository only relays.
type AuthRepository interface {
	SignUp(ctx context.Context, email, password string) (*dto.AuthUser, error)
	SignInWithPassword(ctx context.Context, email, password string) (*dto.Session, error)
	GetUser(ctx context.Context, accessToken string) (*dto.AuthUser, error)
	AuthorizeURL(provider string) string
	ExchangeOAuthCode(ctx context.Context, authCode, codeVerifier string) (*dto.Session, error)
}

type authRepository struct {
	httpClient httpclient.HTTPClient
	cfg        *config.Config
	logger     *logger.Logger
}

func NewAuthRepository(cfg *config.Config, log *logger.Logger) AuthRepository {
	return &authRepository{
		httpClient: httpclient.New(cfg.Auth.BaseURL, cfg.Auth.Timeout, ""),
		cfg:        cfg,
		logger:     log,
	}
}

func (r *authRepository) baseHeaders() map[string]string {
	return map[string]string{
		"apikey": r.cfg.Auth.APIKey,
	}
}

func (r *authRepository) SignUp(ctx context.Context, email, password string) (*dto.AuthUser, error) {
	body := map[string]string{"email": email, "password": password}

	var signUpResp dto.SignUpResponse
	resp, err := r.httpClient.Post(ctx, "/auth/v1/signup", body, r.baseHeaders(), &signUpResp)
	if err != nil {
		return nil, fmt.Errorf("failed to sign up: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		r.logger.ErrorContext(ctx, "auth provider rejected sign up",
			logger.IntField("status_code", resp.StatusCode))
		return nil, fmt.Errorf("%w: sign up status %d", ErrAuthRejected, resp.StatusCode)
	}

	if signUpResp.User.ID == "" {
		return nil, fmt.Errorf("%w: sign up returned no user", ErrAuthRejected)
	}

	return &signUpResp.User, nil
}

func (r *authRepository) SignInWithPassword(ctx context.Context, email, password string) (*dto.Session, error) {
	body := map[string]string{"email": email, "password": password}

	var session dto.Session
	resp, err := r.httpClient.Post(ctx, "/auth/v1/token?grant_type=password", body, r.baseHeaders(), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: sign in status %d", ErrAuthRejected, resp.StatusCode)
	}

	if session.AccessToken == "" || session.User.ID == "" {
		return nil, fmt.Errorf("%w: sign in returned no session", ErrAuthRejected)
	}

	return &session, nil
}

func (r *authRepository) GetUser(ctx context.Context, accessToken string) (*dto.AuthUser, error) {
	headers := r.baseHeaders()
	headers["Authorization"] = "Bearer " + accessToken

	var user dto.AuthUser
	resp, err := r.httpClient.Get(ctx, "/auth/v1/user", nil, headers, &user)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: get user status %d", ErrAuthRejected, resp.StatusCode)
	}

	if user.ID == "" {
		return nil, fmt.Errorf("%w: get user returned no identity", ErrAuthRejected)
	}

	return &user, nil
}

// AuthorizeURL builds the provider redirect the dashboard sends the browser
// to. The provider handles consent and calls back with a code to exchange.
func (r *authRepository) AuthorizeURL(provider string) string {
	values := url.Values{}
	values.Set("provider", provider)
	if r.cfg.Auth.OAuthRedirectURL != "" {
		values.Set("redirect_to", r.cfg.Auth.OAuthRedirectURL)
	}
	return fmt.Sprintf("%s/auth/v1/authorize?%s", r.cfg.Auth.BaseURL, values.Encode())
}

func (r *authRepository) ExchangeOAuthCode(ctx context.Context, authCode, codeVerifier string) (*dto.Session, error) {
	body := map[string]string{
		"auth_code":     authCode,
		"code_verifier": codeVerifier,
	}

	var session dto.Session
	resp, err := r.httpClient.Post(ctx, "/auth/v1/token?grant_type=pkce", body, r.baseHeaders(), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: code exchange status %d", ErrAuthRejected, resp.StatusCode)
	}

	if session.AccessToken == "" || session.User.ID == "" {
		return nil, fmt.Errorf("%w: code exchange returned no session", ErrAuthRejected)
	}

	return &session, nil
}
