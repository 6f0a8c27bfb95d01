package http

import (
	"errors"
	"net/http"
	"strconv"

	"tetrades/internal/dto"
	"tetrades/internal/service"

	"github.com/labstack/echo/v4"
)

func (h *HttpAPIHandler) SetupProfiles(base *echo.Group) {
	v1 := base.Group("/v1")
	{
		v1.GET("/profiles/me", h.Me)
		v1.PATCH("/profiles/me", h.UpdateProfile)
		v1.GET("/rankings", h.Rankings)
	}
}

func (h *HttpAPIHandler) Me(c echo.Context) error {
	profile, err := h.service.ProfileService.Me(c.Request().Context(), IdentityFromContext(c))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "authentication required", nil))
		case errors.Is(err, service.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "profile not found", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to load profile", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("profile", profile))
}

func (h *HttpAPIHandler) UpdateProfile(c echo.Context) error {
	req := new(dto.UpdateProfileRequest)
	if err := c.Bind(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse("invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.NewBadRequestResponse(err.Error()))
	}

	profile, err := h.service.ProfileService.UpdateNickname(c.Request().Context(), IdentityFromContext(c), req.Nickname)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnauthorized):
			return c.JSON(http.StatusUnauthorized, dto.NewBaseResponse(http.StatusUnauthorized, "authentication required", nil))
		case errors.Is(err, service.ErrProfileNotFound):
			return c.JSON(http.StatusNotFound, dto.NewBaseResponse(http.StatusNotFound, "profile not found", nil))
		default:
			return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to update profile", nil))
		}
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("profile updated", profile))
}

func (h *HttpAPIHandler) Rankings(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))

	profiles, err := h.service.ProfileService.Ranking(c.Request().Context(), limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, dto.NewBaseResponse(http.StatusInternalServerError, "failed to load rankings", nil))
	}

	// Only public fields leave the service for the ranking board.
	type rankingEntry struct {
		Nickname string `json:"nickname"`
		Points   int64  `json:"points"`
	}
	entries := make([]rankingEntry, 0, len(profiles))
	for _, p := range profiles {
		nickname := p.Nickname
		if nickname == "" {
			nickname = "analyst-" + p.ReferralCode
		}
		entries = append(entries, rankingEntry{Nickname: nickname, Points: p.Points})
	}

	return c.JSON(http.StatusOK, dto.NewSuccessResponse("rankings", entries))
}
