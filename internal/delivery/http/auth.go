package http

import (
	"errors"
	"net/http"

	"tetrades/internal/dto"
	"tetrades/internal/repository"
	"tetrades/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupAuth(base *echo.Group) {
	v1 := base.Group("/v1/auth")
	{
		v1.POST("/signup", h.SignUp)
		v1.POST("/signin", h.SignIn)
		v1.GET("/oauth/callback", h.OAuthCallback)
		v1.GET("/oauth/:provider", h.OAuthAuthorize)
	}
}

func (h *HttpAPIHandler) SignUp(c echo.Context) error {
	req := new(dto.SignUpRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.AuthService.SignUp(c.Request().Context(), *req)
	if err != nil {
		if errors.Is(err, repository.ErrAuthRejected) {
			return c.JSON(http.StatusUnprocessableEntity, dto.NewBaseResponse(http.StatusUnprocessableEntity, "sign up rejected", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to sign up", nil))
	}

	message := "sign up complete, verify your email before signing in"
	if result.ReferralApplied {
		message = "sign up complete, referral reward applied"
	}
	return c.JSON(http.StatusOK, dto.NewSuccessResponse(message, result))
}

func (h *HttpAPIHandler) SignIn(c echo.Context) error {
	req := new(dto.SignInRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	result, err := h.service.AuthService.SignIn(c.Request().Context(), *req)
	if err != nil {
		if errors.Is(err, repository.ErrAuthRejected) {
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "invalid credentials", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to sign in", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("signed in", result))
}

func (h *HttpAPIHandler) OAuthAuthorize(c echo.Context) error {
	provider := c.Param("provider")

	authorizeURL, err := h.service.AuthService.OAuthAuthorizeURL(provider)
	if err != nil {
		if errors.Is(err, service.ErrUnknownProvider) {
			return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("unknown oauth provider"))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to build authorize url", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("authorize url", map[string]string{"url": authorizeURL}))
}

func (h *HttpAPIHandler) OAuthCallback(c echo.Context) error {
	authCode := c.QueryParam("code")
	codeVerifier := c.QueryParam("verifier")
	if authCode == "" {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("missing oauth code"))
	}

	result, err := h.service.AuthService.ExchangeOAuthCode(c.Request().Context(), authCode, codeVerifier)
	if err != nil {
		if errors.Is(err, repository.ErrAuthRejected) {
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "oauth code rejected", nil))
		}
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to exchange oauth code", nil))
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("signed in", result))
}
