package http

import (
	"fmt"
	"strings"

	"tetrades/internal/dto"
	"tetrades/pkg/cache"
	"tetrades/pkg/common"
	"tetrades/pkg/logger"
	"tetrades/pkg/utils"

	"github.com/labstack/echo/v4"
)

const identityContextKey = "identity"

// SessionMiddleware resolves the caller identity from a Bearer token through
// the auth provider, with a short cache on the hashed token. A missing or
// rejected token leaves the request anonymous; it never fails the request,
// tier gating happens downstream.
func (h *HttpAPIHandler) SessionMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := bearerToken(c)
			if token == "" {
				return next(c)
			}

			cacheKey := fmt.Sprintf(common.KEY_AUTH_SESSION, utils.HashToken(token))
			if identity, found := cache.GetFromCache[*dto.Identity](h.cache, cacheKey); found {
				c.Set(identityContextKey, identity)
				return next(c)
			}

			user, err := h.authRepo.GetUser(c.Request().Context(), token)
			if err != nil {
				h.log.WarnContext(c.Request().Context(), "session token rejected, treating caller as anonymous",
					logger.ErrorField(err))
				return next(c)
			}

			identity := user.Identity()
			h.cache.Set(cacheKey, identity, h.cfg.Auth.SessionCacheTTL)
			c.Set(identityContextKey, identity)
			return next(c)
		}
	}
}

// IdentityFromContext returns the resolved identity or nil for anonymous
// callers.
func IdentityFromContext(c echo.Context) *dto.Identity {
	identity, ok := c.Get(identityContextKey).(*dto.Identity)
	if !ok {
		return nil
	}
	return identity
}

func bearerToken(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
