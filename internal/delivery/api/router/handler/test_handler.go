package handler

import (
	"net/http"

	"nutrilens/internal/delivery/api/response"
	"nutrilens/internal/domain/entity"

	"github.com/labstack/echo/v4"
)

// TestHandler handles test endpoints for middleware validation
type TestHandler struct{}

// NewTestHandler creates a new TestHandler instance
func NewTestHandler() *TestHandler {
	return &TestHandler{}
}

// TestAuthMiddleware tests the authentication middleware
// This endpoint requires a valid access token in the accessToken cookie or the Authorization header
func (h *TestHandler) TestAuthMiddleware(c echo.Context, principal *entity.Principal) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message":       "Authentication middleware test successful",
		"principalID":   principal.ID,
		"role":          principal.Role,
		"accountStatus": principal.AccountStatus,
		"status":        "authenticated",
	}, "")
}

// TestPublicEndpoint tests a public endpoint (no authentication required)
func (h *TestHandler) TestPublicEndpoint(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"message": "Public endpoint test successful",
		"status":  "public",
	}, "")
}
