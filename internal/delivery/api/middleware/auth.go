// Package middleware contains the API-specific echo middleware.
package middleware

import (
	"strings"

	"nutrilens/internal/domain/entity"
	"nutrilens/internal/usecase"

	"github.com/labstack/echo/v4"
)

// AccessTokenCookie carries the access token for browser clients.
const AccessTokenCookie = "accessToken"

// PrincipalHandlerFunc is a handler that runs on behalf of an authenticated principal.
type PrincipalHandlerFunc func(c echo.Context, principal *entity.Principal) error

// AuthMiddleware resolves the session of the calling principal.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticated adapts next into an echo handler that first resolves the principal.
// Requests without a valid access token fail with 401 and never reach next.
func (m *AuthMiddleware) Authenticated(next PrincipalHandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		principal, err := m.sessions.Authenticate(c.Request().Context(), ExtractAccessToken(c))
		if err != nil {
			return err
		}

		return next(c, principal)
	}
}

// ExtractAccessToken reads the accessToken cookie, falling back to a Bearer Authorization header.
func ExtractAccessToken(c echo.Context) string {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
		return strings.TrimSpace(token)
	}

	return ""
}
