package service

import (
	"context"
	"errors"
	"testing"

	"tetrades/internal/dto"
	"tetrades/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAuthRepo struct {
	user       *dto.AuthUser
	session    *dto.Session
	signUpErr  error
	signInErr  error
	authorized string
}

func (f *fakeAuthRepo) SignUp(ctx context.Context, email, password string) (*dto.AuthUser, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.user, nil
}

func (f *fakeAuthRepo) SignInWithPassword(ctx context.Context, email, password string) (*dto.Session, error) {
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	return f.session, nil
}

func (f *fakeAuthRepo) GetUser(ctx context.Context, accessToken string) (*dto.AuthUser, error) {
	return f.user, nil
}

func (f *fakeAuthRepo) AuthorizeURL(provider string) string {
	f.authorized = provider
	return "https://auth.example.com/authorize?provider=" + provider
}

func (f *fakeAuthRepo) ExchangeOAuthCode(ctx context.Context, authCode, codeVerifier string) (*dto.Session, error) {
	return f.session, nil
}

func newAuthFixture(authRepo *fakeAuthRepo, profiles *fakeProfileRepo) AuthService {
	cfg := testConfig()
	log := testLogger()
	return NewAuthService(cfg, log, authRepo, NewProfileService(cfg, log, profiles))
}

func TestSignUpAppliesReferralOnce(t *testing.T) {
	referrer := &model.Profile{ID: "ref1", ReferralCode: "AB12CD34", Points: 0}
	profiles := newFakeProfileRepo(referrer)
	authRepo := &fakeAuthRepo{user: &dto.AuthUser{ID: "new1", Email: "new@example.com"}}

	svc := newAuthFixture(authRepo, profiles)

	// Lowercase code still resolves, codes are stored uppercased.
	result, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:        "new@example.com",
		Password:     "hunter2hunter2",
		ReferralCode: "ab12cd34",
	})
	require.NoError(t, err)
	assert.True(t, result.ReferralApplied)
	assert.Equal(t, "new1", result.Profile.ID)
	assert.Equal(t, int64(900), referrer.Points)
	assert.Equal(t, []int64{900}, profiles.pointsWrites)
}

func TestSignUpWithoutReferralCode(t *testing.T) {
	profiles := newFakeProfileRepo()
	authRepo := &fakeAuthRepo{user: &dto.AuthUser{ID: "new2", Email: "two@example.com"}}

	svc := newAuthFixture(authRepo, profiles)

	result, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:    "two@example.com",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)
	assert.False(t, result.ReferralApplied)
	assert.Empty(t, profiles.pointsWrites)
}

func TestSignUpUnknownReferralCodeStillSucceeds(t *testing.T) {
	profiles := newFakeProfileRepo()
	authRepo := &fakeAuthRepo{user: &dto.AuthUser{ID: "new3", Email: "three@example.com"}}

	svc := newAuthFixture(authRepo, profiles)

	result, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:        "three@example.com",
		Password:     "hunter2hunter2",
		ReferralCode: "ZZZZ9999",
	})
	require.NoError(t, err)
	assert.False(t, result.ReferralApplied)
	require.NotNil(t, result.Profile)
}

func TestSignUpProviderRejection(t *testing.T) {
	svc := newAuthFixture(&fakeAuthRepo{signUpErr: errors.New("email already registered")}, newFakeProfileRepo())

	_, err := svc.SignUp(context.Background(), dto.SignUpRequest{
		Email:    "dupe@example.com",
		Password: "hunter2hunter2",
	})
	assert.Error(t, err)
}

func TestSignInCreatesProfileLazily(t *testing.T) {
	profiles := newFakeProfileRepo()
	authRepo := &fakeAuthRepo{session: &dto.Session{
		AccessToken: "tok",
		User:        dto.AuthUser{ID: "u9", Email: "nine@example.com"},
	}}

	svc := newAuthFixture(authRepo, profiles)

	result, err := svc.SignIn(context.Background(), dto.SignInRequest{Email: "nine@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "tok", result.Session.AccessToken)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "u9", result.Profile.ID)
	assert.Len(t, profiles.created, 1)
}

func TestOAuthAuthorizeURL(t *testing.T) {
	authRepo := &fakeAuthRepo{}
	svc := newAuthFixture(authRepo, newFakeProfileRepo())

	url, err := svc.OAuthAuthorizeURL("google")
	require.NoError(t, err)
	assert.Contains(t, url, "provider=google")

	_, err = svc.OAuthAuthorizeURL("myspace")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}
